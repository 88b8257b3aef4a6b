// Package yamlmodel loads YAML model documents into the in-memory model
// the parser traverses.
//
// The loader is one possible backing for the ports model view; the parser
// never sees YAML, only the capability interfaces.
package yamlmodel

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/umlstate/umlstate/internal/dto"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
)

// Load reads and parses a YAML model file.
func Load(path string) (*memory.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	model, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return model, nil
}

// Parse decodes a YAML model document and builds the in-memory model.
//
// Decoding goes through a generic map first and then mapstructure, so the
// document schema stays tolerant of extra keys (modeling tools like to
// attach their own metadata).
func Parse(data []byte) (*memory.Model, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	var doc dto.ModelDocument
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid model document: %w", err)
	}

	return build(doc)
}

// pendingTransitions defers endpoint resolution until every state of the
// machine exists, so transitions may reference states declared later in
// the document or in other regions.
type pendingTransition struct {
	region *memory.Region
	spec   dto.Transition
}

func build(doc dto.ModelDocument) (*memory.Model, error) {
	model := memory.NewModel()
	index := make(map[string]*memory.State)
	var pending []pendingTransition

	for _, el := range doc.Elements {
		if el.Kind != dto.ElementKindStateMachine {
			model.AddElement(el.Name)
			continue
		}
		machine := model.AddStateMachine(el.Name)
		for _, regionSpec := range el.Regions {
			region := machine.AddRegion(regionSpec.Name)
			if err := buildRegion(region, regionSpec, index, &pending); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range pending {
		source, ok := index[p.spec.Source]
		if !ok {
			return nil, fmt.Errorf("transition references unknown source %q", p.spec.Source)
		}
		target, ok := index[p.spec.Target]
		if !ok {
			return nil, fmt.Errorf("transition references unknown target %q", p.spec.Target)
		}
		p.region.AddTransition(source, target, triggers(p.spec.Triggers)...)
	}

	return model, nil
}

func buildRegion(region *memory.Region, spec dto.Region, index map[string]*memory.State, pending *[]pendingTransition) error {
	for _, stateSpec := range spec.States {
		if stateSpec.Name == "" {
			return fmt.Errorf("state without name in region %q", spec.Name)
		}
		if _, exists := index[stateSpec.Name]; exists {
			return fmt.Errorf("duplicate state name %q", stateSpec.Name)
		}

		var state *memory.State
		if stateSpec.Pseudo != "" {
			state = region.AddPseudostate(stateSpec.Name)
		} else {
			var opts []memory.StateOption
			if stateSpec.Entry != "" {
				opts = append(opts, memory.WithEntry(stateSpec.Entry))
			}
			if stateSpec.Exit != "" {
				opts = append(opts, memory.WithExit(stateSpec.Exit))
			}
			state = region.AddState(stateSpec.Name, opts...)
		}
		index[stateSpec.Name] = state

		for _, sub := range stateSpec.Regions {
			nested := state.AddRegion(sub.Name)
			if err := buildRegion(nested, sub, index, pending); err != nil {
				return err
			}
		}
	}

	if spec.Initial != "" {
		region.SetInitial(spec.Initial)
	}

	for _, t := range spec.Transitions {
		*pending = append(*pending, pendingTransition{region: region, spec: t})
	}
	return nil
}

func triggers(specs []dto.TriggerSpec) []memory.Trigger {
	out := make([]memory.Trigger, 0, len(specs))
	for _, s := range specs {
		switch {
		case s.Signal != "":
			out = append(out, memory.OnSignal(s.Signal))
		case s.After != "":
			out = append(out, memory.After(s.After))
		case s.Call != "":
			out = append(out, memory.OnCall(s.Call))
		case s.Change != "":
			out = append(out, memory.OnChange(s.Change))
		default:
			out = append(out, memory.Anonymous())
		}
	}
	return out
}
