/*
Package ports defines the driven ports (interfaces) for the umlstate engine.

These interfaces decouple the parser and runtime from external
implementations, allowing the core to work with any model source, action
catalog or session storage backend.

# Key Interfaces

  - Model and its element interfaces: a narrow, read-only capability view
    over a hierarchical state machine model (regions, vertices, behaviors,
    transitions, triggers). The parser depends only on this view, never on
    a concrete model library or file format.
  - ActionResolver: Maps an opaque action identifier to an invocable Action.
  - SessionStore: Persists and loads running machine session snapshots.
*/
package ports
