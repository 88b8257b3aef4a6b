package domain

import "errors"

// ErrMachineNotFound is returned when the model contains no state machine
// element among its packaged elements. It is fatal to the parse: no partial
// result is produced.
var ErrMachineNotFound = errors.New("no state machine element in model")

// ErrUnknownState is returned when a session references a state name that
// the parsed machine does not contain.
var ErrUnknownState = errors.New("unknown state")

// ErrRejectedEvent is returned when an event matches no transition from the
// current state or any of its ancestors.
var ErrRejectedEvent = errors.New("event matched no transition")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
