// cmd/driftcheck validates consistency between a project's model and its
// code model.
//
// Generation is deterministic, so regenerating every component, logic stub,
// and runtime file and diffing against the stored code model exposes drift:
// files whose content no longer matches what the generators would produce.
// Manually edited files are expected to drift and are reported separately;
// anything else differing, missing, or left over is a defect.
//
// Phase 1 validates the model itself; phase 2 diffs the code model.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ctrlstudio/modelsync/internal/codegen"
	"github.com/ctrlstudio/modelsync/internal/model"
	"github.com/ctrlstudio/modelsync/internal/validate"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("driftcheck: ")

	in := flag.String("in", "project.json", "project JSON export to check")
	flag.Parse()

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("reading %s: %v", *in, err)
	}
	var project model.CTRLProject
	if err := json.Unmarshal(data, &project); err != nil {
		log.Fatalf("parsing %s: %v", *in, err)
	}

	fmt.Printf("Phase 1: Validating project %q...\n", project.Name)
	res := validate.Project(&project)
	for _, w := range res.Warnings {
		fmt.Printf("  WARNING %s: %s\n", w.Code, w.Message)
	}
	if !res.Valid {
		for _, e := range res.Errors {
			fmt.Printf("  ERROR %s: %s\n", e.Code, e.Message)
		}
		log.Fatalf("model validation failed with %d errors", len(res.Errors))
	}
	fmt.Println("  Model validates.")

	fmt.Println("Phase 2: Checking generated code freshness...")
	gen, err := codegen.ForFramework(project.Settings.Framework)
	if err != nil {
		log.Fatal(err)
	}
	ctx := codegen.Context{Settings: project.Settings, Project: &project}

	expected := map[string]string{}
	for i := range project.Components {
		f, err := gen.Component(&project.Components[i], ctx)
		if err != nil {
			log.Fatalf("regenerating component %s: %v", project.Components[i].Name, err)
		}
		expected[f.Path] = f.Content
	}
	for i := range project.LogicGraph.Nodes {
		f, err := gen.LogicNode(&project.LogicGraph.Nodes[i], ctx)
		if err != nil {
			log.Fatalf("regenerating stub for node %s: %v", project.LogicGraph.Nodes[i].Name, err)
		}
		expected[f.Path] = f.Content
	}
	for _, f := range codegen.RuntimeFiles(project.Settings) {
		expected[f.Path] = f.Content
	}

	manuallyEdited := map[string]bool{}
	for i := range project.Components {
		md := &project.Components[i].CodeMetadata
		if !md.ManuallyEdited {
			continue
		}
		if md.FilePath != "" {
			manuallyEdited[md.FilePath] = true
		}
		for _, g := range md.GeneratedFiles {
			manuallyEdited[g] = true
		}
	}

	var drifted, edited, stale []string
	seen := map[string]bool{}
	for _, f := range project.CodeModel.Files {
		want, ok := expected[f.Path]
		if !ok {
			if f.Generated {
				stale = append(stale, f.Path)
			}
			continue
		}
		seen[f.Path] = true
		if f.Content == want {
			continue
		}
		if manuallyEdited[f.Path] {
			edited = append(edited, f.Path)
		} else {
			drifted = append(drifted, f.Path)
		}
	}
	var missing []string
	for path := range expected {
		if !seen[path] {
			missing = append(missing, path)
		}
	}
	sort.Strings(missing)

	for _, p := range edited {
		fmt.Printf("  edited (expected drift): %s\n", p)
	}
	for _, p := range stale {
		fmt.Printf("  STALE: %s is generated but no longer produced\n", p)
	}
	for _, p := range missing {
		fmt.Printf("  MISSING: %s\n", p)
	}
	for _, p := range drifted {
		fmt.Printf("  DRIFT: %s differs from regenerated output\n", p)
	}

	if n := len(drifted) + len(missing) + len(stale); n > 0 {
		log.Fatalf("%d files out of sync — run the engine's settings update to regenerate", n)
	}
	fmt.Println("\ndriftcheck: OK — code model matches the generators")
}
