/*
Package session serializes concurrent access to machine sessions.

The Manager wraps a ports.SessionStore with per-session mutexes, and
optionally a distributed locker for deployments where multiple replicas
share one store.
*/
package session
