package ports

import "github.com/umlstate/umlstate/pkg/domain"

// ActionResolver maps an opaque action identifier to an invocable Action.
// A miss is not an error: models may reference actions that are optional or
// environment-specific, and the parser simply leaves the slot empty.
type ActionResolver interface {
	Resolve(id string) (domain.Action, bool)
}

// ResolverFunc adapts a plain function to the ActionResolver interface.
type ResolverFunc func(id string) (domain.Action, bool)

func (f ResolverFunc) Resolve(id string) (domain.Action, bool) {
	return f(id)
}
