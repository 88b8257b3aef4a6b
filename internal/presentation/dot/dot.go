// Package dot renders a parse result as a Graphviz document for
// visualization. Composite states become clusters; transitions become
// edges labeled with their triggering event.
package dot

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/umlstate/umlstate/pkg/domain"
)

const rootGraph = "G"

// Generate produces Graphviz DOT output from flattened records.
func Generate(result domain.ParseResult) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(rootGraph); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	for _, s := range result.States() {
		parentGraph := rootGraph
		if !s.TopLevel() {
			parentGraph = clusterName(s.Parent)
		}

		nodeParent := parentGraph
		if isComposite(result, s.Name) {
			// Substates render inside a cluster; the composite keeps a
			// regular node in it so transitions can point at the state.
			attrs := map[string]string{
				"label": quote(s.Name),
				"style": "rounded",
			}
			if err := g.AddSubGraph(parentGraph, clusterName(s.Name), attrs); err != nil {
				return "", err
			}
			nodeParent = clusterName(s.Name)
		}

		attrs := map[string]string{"shape": "box", "style": "rounded"}
		if s.Initial {
			attrs["penwidth"] = "2"
		}
		if err := g.AddNode(nodeParent, quote(s.Name), attrs); err != nil {
			return "", err
		}
	}

	for _, t := range result.Transitions() {
		attrs := map[string]string{"label": quote(t.Event)}
		if err := g.AddEdge(quote(t.Source), quote(t.Target), true, attrs); err != nil {
			return "", err
		}
	}

	return g.String(), nil
}

// isComposite reports whether any record names the state as its parent.
func isComposite(result domain.ParseResult, name string) bool {
	for _, s := range result.States() {
		if s.Parent == name {
			return true
		}
	}
	return false
}

func clusterName(state string) string {
	return fmt.Sprintf("cluster_%s", state)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
