package model

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed defaults.cue
var defaultsCUE []byte

// ComponentDefaults holds the construction defaults for one component type.
type ComponentDefaults struct {
	Size    Size     `json:"size"`
	Styling Styling  `json:"styling"`
	Props   ValueMap `json:"-"`
}

// rawDefaults matches the CUE shape before props are converted to tagged values.
type rawDefaults struct {
	Size    Size           `json:"size"`
	Styling Styling        `json:"styling"`
	Props   map[string]any `json:"props"`
}

var loadDefaults = sync.OnceValues(func() (map[ComponentType]ComponentDefaults, error) {
	ctx := cuecontext.New()
	val := ctx.CompileBytes(defaultsCUE)
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("compiling defaults.cue: %w", err)
	}
	defs := val.LookupPath(cue.ParsePath("defaults"))
	if err := defs.Err(); err != nil {
		return nil, fmt.Errorf("looking up defaults: %w", err)
	}

	var raw map[string]rawDefaults
	if err := defs.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}

	out := make(map[ComponentType]ComponentDefaults, len(raw))
	for name, rd := range raw {
		t := ComponentType(name)
		if !t.Valid() {
			return nil, fmt.Errorf("defaults.cue declares unknown component type %q", name)
		}
		props := make(ValueMap, len(rd.Props))
		for k, v := range rd.Props {
			pv, err := FromAny(v)
			if err != nil {
				return nil, fmt.Errorf("defaults for %s: prop %s: %w", name, k, err)
			}
			props[k] = pv
		}
		out[t] = ComponentDefaults{Size: rd.Size, Styling: rd.Styling, Props: props}
	}

	// Every declared component type needs defaults, or construction would
	// reject a valid type.
	for t := range componentTypes {
		if _, ok := out[t]; !ok {
			return nil, fmt.Errorf("defaults.cue missing entry for component type %q", t)
		}
	}
	return out, nil
})

// DefaultsFor returns the construction defaults for a component type.
func DefaultsFor(t ComponentType) (ComponentDefaults, error) {
	all, err := loadDefaults()
	if err != nil {
		return ComponentDefaults{}, err
	}
	d, ok := all[t]
	if !ok {
		return ComponentDefaults{}, fmt.Errorf("unknown component type %q", t)
	}
	// Props are shared across calls; hand out a copy.
	d.Props = d.Props.Clone()
	return d, nil
}
