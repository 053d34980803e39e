package gitio

import (
	"errors"
	"os/exec"
	"strings"
)

// ChangeOptions selects which kinds of pending changes to collect.
// When neither Staged nor Unstaged is requested, both are included.
type ChangeOptions struct {
	Staged    bool
	Unstaged  bool
	Untracked bool
}

func (o ChangeOptions) normalized() ChangeOptions {
	if !o.Staged && !o.Unstaged {
		o.Staged = true
		o.Unstaged = true
	}
	return o
}

// ChangeSet is the files and diff text selected by a set of inclusion flags.
// It is recomputed on every invocation and never persisted.
type ChangeSet struct {
	Files     []string
	Untracked []string
	Diff      string
}

// Empty reports whether the change set contains no files.
func (cs ChangeSet) Empty() bool { return len(cs.Files) == 0 }

// Contains reports whether path is part of the change set.
func (cs ChangeSet) Contains(path string) bool {
	for _, f := range cs.Files {
		if f == path {
			return true
		}
	}
	return false
}

// StagedFiles returns the paths with staged changes (index vs HEAD).
func StagedFiles() ([]string, error) {
	out, err := output("diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// UnstagedFiles returns the paths with unstaged changes (working tree vs index).
func UnstagedFiles() ([]string, error) {
	out, err := output("diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// UntrackedFiles returns paths not known to git, excluding ignored files.
func UntrackedFiles() ([]string, error) {
	out, err := output("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// Collect gathers the change set selected by opts: the de-duplicated file
// list in staged, unstaged, untracked order, plus the combined diff text
// used for planning.
func Collect(opts ChangeOptions) (ChangeSet, error) {
	opts = opts.normalized()

	var cs ChangeSet
	seen := make(map[string]bool)
	add := func(files []string) {
		for _, f := range files {
			if f != "" && !seen[f] {
				seen[f] = true
				cs.Files = append(cs.Files, f)
			}
		}
	}

	if opts.Staged {
		files, err := StagedFiles()
		if err != nil {
			return ChangeSet{}, err
		}
		add(files)
	}
	if opts.Unstaged {
		files, err := UnstagedFiles()
		if err != nil {
			return ChangeSet{}, err
		}
		add(files)
	}
	if opts.Untracked {
		files, err := UntrackedFiles()
		if err != nil {
			return ChangeSet{}, err
		}
		cs.Untracked = files
		add(files)
	}

	if cs.Empty() {
		return cs, nil
	}

	diff, err := collectDiff(cs, opts)
	if err != nil {
		return ChangeSet{}, err
	}
	cs.Diff = diff
	return cs, nil
}

func collectDiff(cs ChangeSet, opts ChangeOptions) (string, error) {
	var parts []string

	tracked := trackedOnly(cs)
	if opts.Staged && len(tracked) > 0 {
		out, err := output(append([]string{"diff", "--cached", "--"}, tracked...)...)
		if err != nil {
			return "", err
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	if opts.Unstaged && len(tracked) > 0 {
		out, err := output(append([]string{"diff", "--"}, tracked...)...)
		if err != nil {
			return "", err
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	for _, f := range cs.Untracked {
		out, err := untrackedDiff(f)
		if err != nil {
			return "", err
		}
		if out != "" {
			parts = append(parts, out)
		}
	}

	return strings.Join(parts, "\n"), nil
}

func trackedOnly(cs ChangeSet) []string {
	if len(cs.Untracked) == 0 {
		return cs.Files
	}
	untracked := make(map[string]bool, len(cs.Untracked))
	for _, f := range cs.Untracked {
		untracked[f] = true
	}
	var tracked []string
	for _, f := range cs.Files {
		if !untracked[f] {
			tracked = append(tracked, f)
		}
	}
	return tracked
}

// untrackedDiff renders an untracked file as an all-additions diff.
// git diff --no-index exits 1 when the files differ, which is the expected
// case here, so a non-empty output is treated as success.
func untrackedDiff(path string) (string, error) {
	cmd := exec.Command("git", "diff", "--no-index", "--", "/dev/null", path)
	out, err := cmd.Output()
	if err != nil && len(out) == 0 {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
