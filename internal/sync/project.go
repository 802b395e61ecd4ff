package sync

import (
	"encoding/json"
	"fmt"

	"github.com/ctrlstudio/modelsync/internal/codegen"
	"github.com/ctrlstudio/modelsync/internal/model"
	"github.com/ctrlstudio/modelsync/internal/validate"
)

// Project returns a deep copy of the current project. Callers get a
// snapshot they can serialize or inspect without holding the engine up.
func (e *Engine) Project() (*model.CTRLProject, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Clone()
}

// Validate checks the current project's referential integrity.
func (e *Engine) Validate() validate.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return validate.Project(e.project)
}

// Export serializes the current project to indented JSON.
func (e *Engine) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return json.MarshalIndent(e.project, "", "  ")
}

// Import replaces the live project with one parsed from JSON. The incoming
// project is validated first; a project with integrity errors never
// replaces the live one. Warnings are tolerated.
func (e *Engine) Import(data []byte) error {
	var p model.CTRLProject
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("sync: parsing project: %w", err)
	}
	return e.ReplaceProject(&p)
}

// ReplaceProject swaps in a new project wholesale, as used by import and by
// storage on startup. The generator follows the new project's settings.
func (e *Engine) ReplaceProject(p *model.CTRLProject) error {
	if p == nil {
		return fmt.Errorf("sync: nil project")
	}
	if res := validate.Project(p); !res.Valid {
		return fmt.Errorf("sync: project failed validation: %s", res.Errors[0].Message)
	}
	gen, err := codegen.ForFramework(p.Settings.Framework)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = p
	e.gen = gen
	e.conflicts = nil
	return nil
}
