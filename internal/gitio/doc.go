// Package gitio wraps the git commands gitscribe depends on as typed
// operations.
//
// Everything shells out to git; nothing here talks to the object store
// directly. Read operations (status, diffs, log windows, upstream lookup)
// return trimmed text or parsed records. Write operations (staging, commits,
// history rewrites) refuse to run when the repository state would make the
// result unsafe — a dirty tree or a merge commit inside a rewrite window is
// reported as a [StateError] before anything is touched.
package gitio
