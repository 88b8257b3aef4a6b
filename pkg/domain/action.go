package domain

import "context"

// Action is an invocable behavior bound to a state's entry or exit.
// It receives the machine's context variables and may mutate them.
type Action func(ctx context.Context, vars map[string]any) error
