// Package validate walks a project and reports structural errors and
// warnings. Validation is side-effect-free and never mutates the project;
// the sync engine does not call it on every write — it is an on-demand
// integrity check for collaborators, e.g. before import or export.
package validate

import (
	"fmt"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// Issue codes. Errors indicate broken references or missing required
// fields; warnings flag tolerated inconsistencies.
const (
	CodeMissingID         = "MISSING_ID"
	CodeMissingName       = "MISSING_NAME"
	CodeInvalidParent     = "INVALID_PARENT"
	CodeInvalidScreen     = "INVALID_SCREEN"
	CodeInvalidSourceNode = "INVALID_SOURCE_NODE"
	CodeInvalidTargetNode = "INVALID_TARGET_NODE"
	CodeOrphanedComponent = "ORPHANED_COMPONENT_REF"
)

// Issue is one validation finding.
type Issue struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	EntityID   string `json:"entity_id,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Result is the outcome of validating a project. Valid is true when there
// are no errors; warnings alone do not invalidate a project.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Project checks the structural invariants of a project and returns every
// finding. The project is not mutated.
func Project(p *model.CTRLProject) Result {
	r := Result{Errors: []Issue{}, Warnings: []Issue{}}

	componentIDs := make(map[string]bool, len(p.Components))
	for i := range p.Components {
		if p.Components[i].ID != "" {
			componentIDs[p.Components[i].ID] = true
		}
	}
	screenIDs := make(map[string]bool, len(p.Screens))
	for i := range p.Screens {
		if p.Screens[i].ID != "" {
			screenIDs[p.Screens[i].ID] = true
		}
	}
	nodeIDs := make(map[string]bool, len(p.LogicGraph.Nodes))
	for i := range p.LogicGraph.Nodes {
		if p.LogicGraph.Nodes[i].ID != "" {
			nodeIDs[p.LogicGraph.Nodes[i].ID] = true
		}
	}

	for i := range p.Components {
		c := &p.Components[i]
		if c.ID == "" {
			r.Errors = append(r.Errors, Issue{
				Code:    CodeMissingID,
				Message: fmt.Sprintf("component %q has no id", c.Name),
			})
		}
		if c.Name == "" {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeMissingName,
				Message:  fmt.Sprintf("component %s has no name", c.ID),
				EntityID: c.ID,
			})
		}
		if c.ParentID != "" && !componentIDs[c.ParentID] {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeInvalidParent,
				Message:  fmt.Sprintf("component %s references missing parent %s", c.ID, c.ParentID),
				EntityID: c.ID,
			})
		}
		if c.ScreenID != "" && !screenIDs[c.ScreenID] {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeInvalidScreen,
				Message:  fmt.Sprintf("component %s references missing screen %s", c.ID, c.ScreenID),
				EntityID: c.ID,
			})
		}
	}

	for i := range p.LogicGraph.Nodes {
		n := &p.LogicGraph.Nodes[i]
		if n.ID == "" {
			r.Errors = append(r.Errors, Issue{
				Code:    CodeMissingID,
				Message: fmt.Sprintf("logic node %q has no id", n.Name),
			})
		}
		if n.Name == "" {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeMissingName,
				Message:  fmt.Sprintf("logic node %s has no name", n.ID),
				EntityID: n.ID,
			})
		}
	}

	for i := range p.LogicGraph.Connections {
		conn := &p.LogicGraph.Connections[i]
		if !nodeIDs[conn.FromNodeID] {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeInvalidSourceNode,
				Message:  fmt.Sprintf("connection %s references missing source node %s", conn.ID, conn.FromNodeID),
				EntityID: conn.ID,
			})
		}
		if !nodeIDs[conn.ToNodeID] {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeInvalidTargetNode,
				Message:  fmt.Sprintf("connection %s references missing target node %s", conn.ID, conn.ToNodeID),
				EntityID: conn.ID,
			})
		}
	}

	for i := range p.Screens {
		s := &p.Screens[i]
		if s.ID == "" {
			r.Errors = append(r.Errors, Issue{
				Code:    CodeMissingID,
				Message: fmt.Sprintf("screen %q has no id", s.Name),
			})
		}
		if s.Name == "" {
			r.Errors = append(r.Errors, Issue{
				Code:     CodeMissingName,
				Message:  fmt.Sprintf("screen %s has no name", s.ID),
				EntityID: s.ID,
			})
		}
		// Dangling screen→component references are tolerated but flagged.
		for _, cid := range s.ComponentIDs {
			if !componentIDs[cid] {
				r.Warnings = append(r.Warnings, Issue{
					Code:       CodeOrphanedComponent,
					Message:    fmt.Sprintf("screen %s lists missing component %s", s.ID, cid),
					EntityID:   s.ID,
					Suggestion: fmt.Sprintf("remove %s from the screen's component list", cid),
				})
			}
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}
