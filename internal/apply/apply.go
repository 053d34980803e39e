package apply

import (
	"errors"
	"fmt"
	"os"

	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/planner"
)

// Applied records one commit created from a plan entry.
type Applied struct {
	Subject string
	Files   []string
}

// Result is the outcome of applying a commit plan.
type Result struct {
	Committed []Applied
	// Skipped lists plan files that no longer exist on disk and are not
	// tracked, so they could not be staged.
	Skipped []string
}

// PartialError reports a plan that failed partway through. Commits in
// Applied have already landed and are not rolled back; Remaining holds the
// entries that were never attempted plus the one that failed.
type PartialError struct {
	Applied   []Applied
	Remaining []planner.Entry
	Err       error
}

func (e *PartialError) Error() string {
	total := len(e.Applied) + len(e.Remaining)
	return fmt.Sprintf("applied %d of %d commits: %v", len(e.Applied), total, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// IsPartialError checks whether err is (or wraps) a PartialError.
func IsPartialError(err error) bool {
	var pe *PartialError
	return errors.As(err, &pe)
}

// CommitPlan applies a validated plan entry by entry: stage the entry's
// files, commit with the entry's subject and body, move on. Files that have
// vanished since planning and are not tracked are skipped with a note in the
// result. With dryRun set nothing is staged or committed; the result shows
// what would happen.
func CommitPlan(plan planner.CommitPlan, dryRun bool) (Result, error) {
	var res Result

	for i, entry := range plan {
		files := make([]string, 0, len(entry.Files))
		for _, f := range entry.Files {
			if stageable(f) {
				files = append(files, f)
			} else {
				res.Skipped = append(res.Skipped, f)
			}
		}
		if len(files) == 0 {
			continue
		}

		if dryRun {
			res.Committed = append(res.Committed, Applied{Subject: entry.Subject(), Files: files})
			continue
		}

		if err := gitio.Stage(files); err != nil {
			return res, &PartialError{Applied: res.Committed, Remaining: plan[i:], Err: err}
		}
		// Pathspec-limited commit: changes the user had staged but the plan
		// does not mention stay in the index.
		if err := gitio.CreateCommit(entry.Subject(), entry.Body, files); err != nil {
			return res, &PartialError{Applied: res.Committed, Remaining: plan[i:], Err: err}
		}
		res.Committed = append(res.Committed, Applied{Subject: entry.Subject(), Files: files})
	}

	return res, nil
}

// stageable reports whether a plan path can be staged: it exists on disk, or
// it is tracked (a staged deletion is still a legitimate change).
func stageable(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	}
	return gitio.IsTracked(path)
}
