// Package lint checks commit subjects against a Conventional Commits style
// convention. The type set and length bound come from configuration, not
// from code.
package lint
