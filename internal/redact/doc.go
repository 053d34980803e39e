// Package redact strips likely secrets from diff text before it is sent to
// a remote model. Heuristic pattern matching only; it reduces accidental
// exposure, it does not guarantee it.
package redact
