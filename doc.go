/*
Package umlstate parses hierarchical state machine models into flat,
order-preserving state and transition records, and runs them.

A model is a tree: a state machine owns regions, regions own states,
composite states own further regions. The parser flattens that tree into
two collections — states with parent references and lifecycle actions,
transitions with source, target and triggering signal — which the runtime
(or any external execution engine) consumes.

# Quick start

	reg := registry.New()
	reg.Register("notifyEnter", func(ctx context.Context, vars map[string]any) error {
		fmt.Println("entered")
		return nil
	})

	eng, err := umlstate.New("traffic.yaml", umlstate.WithResolver(reg))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	id, snap, _ := eng.StartSession(ctx)
	snap, _ = eng.SendEvent(ctx, id, "GO")

Models load from YAML documents by default; any backend implementing the
ports model interfaces works the same way (see umlstate.NewFromModel and
pkg/adapters/memory for a programmatic builder).

Action binding is best-effort: a state naming an action the resolver does
not know simply runs without it. The only fatal parse condition is a model
with no state machine element (domain.ErrMachineNotFound).
*/
package umlstate
