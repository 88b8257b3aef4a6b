/*
Package domain contains the core domain models for the umlstate engine.

It defines the flattened representation of a hierarchical state machine
model, produced by the parser and consumed by the runtime. This package is
kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - StateRecord: One state (simple or composite) with its parent link,
    initial marker and lifecycle actions.
  - TransitionRecord: One event-triggered transition between two states.
  - ParseResult: The ordered pair of state and transition records produced
    by a single parse.
  - Snapshot: The runtime snapshot of a running machine session.
*/
package domain
