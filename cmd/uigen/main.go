// cmd/uigen materializes a project's code model onto disk.
//
// It loads a project snapshot — either a JSON export or the latest row in a
// SQLite store — and writes every file in the code model under the output
// directory, producing the src/components and src/logic tree the generators
// lay out. Manually edited files are written as stored, so local edits
// survive a re-materialization.
//
//	uigen -in project.json -out ./out
//	uigen -db file:modelsync.db -out ./out
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ctrlstudio/modelsync/internal/model"
	"github.com/ctrlstudio/modelsync/internal/store"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("uigen: ")

	in := flag.String("in", "", "project JSON export to materialize")
	db := flag.String("db", "", "SQLite DSN holding the project (used when -in is empty)")
	out := flag.String("out", ".", "output directory")
	flag.Parse()

	project, err := loadProject(*in, *db)
	if err != nil {
		log.Fatal(err)
	}

	written := 0
	for _, f := range project.CodeModel.Files {
		target := filepath.Join(*out, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			log.Fatalf("creating %s: %v", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(f.Content), 0o644); err != nil {
			log.Fatalf("writing %s: %v", target, err)
		}
		written++
	}

	fmt.Printf("uigen: wrote %d files from project %q to %s\n", written, project.Name, *out)
}

func loadProject(in, dsn string) (*model.CTRLProject, error) {
	if in != "" {
		data, err := os.ReadFile(in)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", in, err)
		}
		var p model.CTRLProject
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", in, err)
		}
		return &p, nil
	}
	if dsn == "" {
		return nil, fmt.Errorf("one of -in or -db is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	return store.NewSQLiteStore(db).LatestProject(context.Background())
}
