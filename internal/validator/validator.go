// Package validator checks a parse result for structural consistency.
//
// The parser itself is deliberately permissive: it trusts the model's
// accessors and forwards endpoint names without looking at them. These
// checks run out-of-band (CLI `validate`, facade option) so malformed
// models can be reported without changing the parser's contract.
package validator

import (
	"fmt"
	"strings"

	"github.com/umlstate/umlstate/pkg/domain"
)

// Validate inspects the flattened records and returns an error describing
// every finding, or nil when the machine is consistent.
func Validate(result domain.ParseResult) error {
	var findings []string

	states := result.States()
	byName := make(map[string]int, len(states))
	for _, s := range states {
		byName[s.Name]++
	}

	for _, s := range states {
		if s.Name == "" {
			findings = append(findings, "state with empty name")
			continue
		}
		if byName[s.Name] > 1 {
			findings = append(findings, fmt.Sprintf("duplicate state name %q", s.Name))
		}
		if s.Parent != "" {
			if _, ok := byName[s.Parent]; !ok {
				findings = append(findings, fmt.Sprintf("state %q references unknown parent %q", s.Name, s.Parent))
			}
		}
	}

	for _, t := range result.Transitions() {
		if t.Source == "" || t.Target == "" {
			findings = append(findings, fmt.Sprintf("transition on %q with unnamed endpoint (source=%q target=%q)", t.Event, t.Source, t.Target))
			continue
		}
		if _, ok := byName[t.Source]; !ok {
			findings = append(findings, fmt.Sprintf("transition on %q references unknown source %q", t.Event, t.Source))
		}
		if _, ok := byName[t.Target]; !ok {
			findings = append(findings, fmt.Sprintf("transition on %q references unknown target %q", t.Event, t.Target))
		}
	}

	findings = append(findings, checkInitialMarkers(states)...)
	findings = append(findings, checkReachability(result)...)

	if len(findings) > 0 {
		// Deduplicate repeated findings (duplicate names trip once per record).
		findings = dedupe(findings)
		return fmt.Errorf("found %d problems:\n- %s", len(findings), strings.Join(findings, "\n- "))
	}
	return nil
}

// checkInitialMarkers flags sibling groups with zero or multiple initial
// states. The runtime falls back to document order in both cases, but a
// modeler almost certainly wants exactly one.
func checkInitialMarkers(states []domain.StateRecord) []string {
	initials := make(map[string]int)
	siblings := make(map[string]int)
	for _, s := range states {
		siblings[s.Parent]++
		if s.Initial {
			initials[s.Parent]++
		}
	}

	var findings []string
	for parent, n := range siblings {
		label := "top level"
		if parent != "" {
			label = fmt.Sprintf("children of %q", parent)
		}
		switch {
		case initials[parent] == 0 && n > 1:
			findings = append(findings, fmt.Sprintf("no initial state among %s", label))
		case initials[parent] > 1:
			findings = append(findings, fmt.Sprintf("multiple initial states among %s", label))
		}
	}
	return findings
}

// checkReachability crawls from the initial top-level state across
// transitions and containment, reporting states the machine can never
// visit.
func checkReachability(result domain.ParseResult) []string {
	states := result.States()
	if len(states) == 0 {
		return nil
	}

	start := ""
	for _, s := range states {
		if s.TopLevel() && s.Initial {
			start = s.Name
			break
		}
	}
	if start == "" {
		start = states[0].Name
	}

	children := make(map[string][]string)
	for _, s := range states {
		children[s.Parent] = append(children[s.Parent], s.Name)
	}
	outgoing := make(map[string][]string)
	for _, t := range result.Transitions() {
		outgoing[t.Source] = append(outgoing[t.Source], t.Target)
	}

	visited := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		// Entering a composite state makes its substates enterable.
		queue = append(queue, children[current]...)
		queue = append(queue, outgoing[current]...)
	}

	var findings []string
	for _, s := range states {
		if !visited[s.Name] {
			findings = append(findings, fmt.Sprintf("state %q is unreachable from %q", s.Name, start))
		}
	}
	return findings
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
