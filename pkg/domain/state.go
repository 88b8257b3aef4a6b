package domain

// StateRecord represents one state (simple or composite) in the flattened
// hierarchy. Records reference their enclosing composite state by name
// instead of nesting, so an arbitrarily deep model collapses into a flat,
// order-preserving list.
type StateRecord struct {
	// Parent is the name of the immediately enclosing composite state.
	// Empty for top-level states.
	Parent string `json:"parent,omitempty"`

	// Name uniquely identifies the state within the model. Uniqueness is
	// assumed, not enforced here.
	Name string `json:"name"`

	// Initial is true when this state is the designated initial vertex of
	// its containing region.
	Initial bool `json:"initial"`

	// EntryActions and ExitActions hold the resolved lifecycle actions.
	// The model supports at most one behavior per slot, so each holds zero
	// or one element.
	EntryActions []Action `json:"-"`
	ExitActions  []Action `json:"-"`
}

// TopLevel reports whether the state has no enclosing composite state.
func (s StateRecord) TopLevel() bool {
	return s.Parent == ""
}
