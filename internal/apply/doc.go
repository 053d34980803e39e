// Package apply executes validated plans against the repository: staging and
// committing plan entries, substituting commit messages, and rewriting the
// unpushed history. All state checks happen before the first write; once
// commits start landing there is no rollback, and a mid-plan failure is
// reported as a PartialError.
package apply
