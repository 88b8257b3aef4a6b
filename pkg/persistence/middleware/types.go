// Package middleware provides composable wrappers for session stores:
// encryption at rest and PII masking of session variables.
package middleware

import "github.com/umlstate/umlstate/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore
