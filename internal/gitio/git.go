package gitio

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// StateError reports a repository state that blocks the requested operation:
// a dirty working tree where a clean one is required, a merge commit inside a
// rewrite window, or similar. It is always raised before any write happens.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }

// IsStateError checks whether err is (or wraps) a StateError.
func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// output runs git with the given arguments and returns trimmed stdout.
// On failure the returned error carries git's stderr.
func output(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return strings.TrimSpace(string(out)), fmt.Errorf("git %s: %s: %s",
				strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// lines splits command output into non-empty lines.
func lines(out string) []string {
	var result []string
	for _, l := range strings.Split(out, "\n") {
		if strings.TrimSpace(l) != "" {
			result = append(result, l)
		}
	}
	return result
}

// IsClean reports whether the working tree and index have no pending changes.
func IsClean() (bool, error) {
	out, err := output("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

// IsTracked reports whether path is known to the index.
func IsTracked(path string) bool {
	cmd := exec.Command("git", "ls-files", "--error-unmatch", "--", path)
	return cmd.Run() == nil
}

// Stage adds the given paths to the index. Uses -A so deletions of tracked
// files are staged too; plain git add errors on removed paths.
func Stage(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := output(args...)
	return err
}

// StageAll stages every change in the working tree.
func StageAll() error {
	_, err := output("add", "-A")
	return err
}

// CreateCommit records a commit with the given subject and optional body.
// With paths set, only changes to those paths are committed; anything else
// sitting in the index stays staged and untouched. Without paths the whole
// index is committed.
func CreateCommit(subject, body string, paths []string) error {
	args := []string{"commit", "-m", subject}
	if strings.TrimSpace(body) != "" {
		args = append(args, "-m", body)
	}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	_, err := output(args...)
	return err
}
