package domain

import (
	"context"
	"time"
)

// HookEventType defines the category of a lifecycle event.
type HookEventType string

const (
	HookStateEnter HookEventType = "state_enter"
	HookStateLeave HookEventType = "state_leave"
	HookTransition HookEventType = "transition"
)

// StateEvent represents entry to or exit from a state.
type StateEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      HookEventType `json:"type"`
	State     string        `json:"state"`
}

// TransitionEvent represents a fired transition.
type TransitionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Event     string    `json:"event"`
}

// LifecycleHooks defines callbacks for runtime observability.
type LifecycleHooks struct {
	OnStateEnter func(context.Context, *StateEvent)
	OnStateLeave func(context.Context, *StateEvent)
	OnTransition func(context.Context, *TransitionEvent)
}
