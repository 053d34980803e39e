package gitio

import (
	"fmt"
	"os/exec"
	"strings"
)

// Log record separators: unit separator between fields, record separator
// between commits. Subjects and bodies can contain anything printable, so
// control characters are the only safe delimiters.
const logFormat = "%H%x1f%s%x1f%b%x1e"

// Commit is one commit in a rewrite window. For inputs, Subject and Body hold
// the current message; when passed to RewriteMessages they hold the
// replacement message for SHA.
type Commit struct {
	SHA     string
	Subject string
	Body    string
}

// Message returns the full commit message (subject plus optional body).
func (c Commit) Message() string {
	if strings.TrimSpace(c.Body) == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + c.Body
}

// FixCommit is a commit presented to the rewrite planner: full message plus
// the complete diff against its parent.
type FixCommit struct {
	SHA     string `json:"hash"`
	Message string `json:"message"`
	Diff    string `json:"diff"`
}

// UpstreamRef resolves the configured remote-tracking branch. A missing
// upstream is a recoverable condition, reported as an empty string.
func UpstreamRef() string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// SubjectsSincePush returns the subjects of commits not yet on the upstream,
// newest first, with a description of the inspected range. Without an
// upstream it falls back to the last fallbackCount commits.
func SubjectsSincePush(fallbackCount int) (string, []string, error) {
	var (
		desc string
		out  string
		err  error
	)
	if upstream := UpstreamRef(); upstream != "" {
		revRange := upstream + "..HEAD"
		desc = fmt.Sprintf("commits since last push (%s)", revRange)
		out, err = output("log", revRange, "--pretty=format:%s")
	} else {
		desc = fmt.Sprintf("last %d commits (no upstream found)", fallbackCount)
		out, err = output("log", fmt.Sprintf("-%d", fallbackCount), "--pretty=format:%s")
	}
	if err != nil {
		return "", nil, err
	}
	return desc, lines(out), nil
}

// UnpushedCommits returns the unpushed commit window, oldest first. Without
// an upstream it falls back to the last maxCount commits; -n is used rather
// than HEAD~N..HEAD so short histories work.
func UnpushedCommits(maxCount int) (string, []Commit, error) {
	var (
		desc string
		out  string
		err  error
	)
	if upstream := UpstreamRef(); upstream != "" {
		revRange := upstream + "..HEAD"
		desc = fmt.Sprintf("unpushed commits (%s)", revRange)
		out, err = output("log", "--reverse", "--first-parent", "--format="+logFormat, revRange)
	} else {
		desc = fmt.Sprintf("last %d commits (no upstream found)", maxCount)
		out, err = output("log", "--reverse", "--first-parent", "-n", fmt.Sprint(maxCount), "--format="+logFormat, "HEAD")
	}
	if err != nil {
		return "", nil, err
	}
	return desc, parseLogRecords(out), nil
}

// CommitsForFix returns the rewrite-planning window with full per-commit
// diffs, oldest first. Scope is the unpushed range unless force is set, in
// which case the last maxCount commits are used regardless of push state.
func CommitsForFix(maxCount int, force bool) (string, []FixCommit, error) {
	upstream := UpstreamRef()

	var (
		desc string
		out  string
		err  error
	)
	if upstream != "" && !force {
		revRange := upstream + "..HEAD"
		desc = fmt.Sprintf("unpushed commits (%s)", revRange)
		out, err = output("log", "--reverse", "--first-parent", "--format="+logFormat, revRange)
	} else {
		desc = fmt.Sprintf("last %d commits", maxCount)
		if force && upstream != "" {
			desc += " (force enabled)"
		} else if upstream == "" {
			desc += " (no upstream found)"
		}
		out, err = output("log", "--reverse", "--first-parent", "-n", fmt.Sprint(maxCount), "--format="+logFormat, "HEAD")
	}
	if err != nil {
		return "", nil, err
	}

	var commits []FixCommit
	for _, c := range parseLogRecords(out) {
		diff, err := CommitDiff(c.SHA)
		if err != nil {
			return "", nil, fmt.Errorf("reading diff for %s: %w", c.SHA, err)
		}
		commits = append(commits, FixCommit{
			SHA:     c.SHA,
			Message: c.Message(),
			Diff:    diff,
		})
	}
	return desc, commits, nil
}

// CommitDiff returns the full diff a commit introduced.
func CommitDiff(sha string) (string, error) {
	return output("show", sha, "--format=format:")
}

func parseLogRecords(raw string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(raw, "\x1e") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		parts := strings.Split(record, "\x1f")
		if len(parts) < 2 {
			continue
		}
		c := Commit{
			SHA:     strings.TrimSpace(parts[0]),
			Subject: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			c.Body = strings.TrimSpace(parts[2])
		}
		commits = append(commits, c)
	}
	return commits
}

// HasMerges reports whether the revision range contains any merge commits.
func HasMerges(revRange string) (bool, error) {
	out, err := output("rev-list", "--merges", "--first-parent", revRange)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// RewriteRange computes the revision range covering a commit window, for the
// merge-commit check: upstream..HEAD when an upstream exists, otherwise the
// window's own parent..last span. A window starting at a root commit covers
// the last commit's full ancestry; "..sha" would be read as HEAD..sha.
func RewriteRange(commits []Commit) (string, error) {
	if upstream := UpstreamRef(); upstream != "" {
		return upstream + "..HEAD", nil
	}
	if len(commits) == 0 {
		return "", fmt.Errorf("empty commit window")
	}
	base, err := firstParent(commits[0].SHA)
	if err != nil {
		return "", err
	}
	last := commits[len(commits)-1].SHA
	if base == "" {
		return last, nil
	}
	return base + ".." + last, nil
}

// EnsureNoMerges rejects a commit window whose revision range contains merge
// commits. The commit-tree rewrite chain only preserves first-parent history,
// so the check must run before any plan request or write.
func EnsureNoMerges(window []Commit) error {
	revRange, err := RewriteRange(window)
	if err != nil {
		return err
	}
	merges, err := HasMerges(revRange)
	if err != nil {
		return err
	}
	if merges {
		return &StateError{Reason: fmt.Sprintf("range %s contains merge commits; rewrite refused", revRange)}
	}
	return nil
}

func firstParent(sha string) (string, error) {
	out, err := output("show", "-s", "--format=%P", sha)
	if err != nil {
		return "", err
	}
	parents := strings.Fields(out)
	if len(parents) == 0 {
		return "", nil
	}
	return parents[0], nil
}

func treeOf(ref string) (string, error) {
	return output("show", "-s", "--format=%T", ref)
}

// commitTree creates a commit object for tree with the given parent and
// message, without touching the index or working tree.
func commitTree(tree, parent, subject, body string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("empty commit subject in rewrite")
	}
	args := []string{"commit-tree", tree}
	if parent != "" {
		args = append(args, "-p", parent)
	}
	args = append(args, "-m", strings.TrimSpace(subject))
	if strings.TrimSpace(body) != "" {
		args = append(args, "-m", strings.TrimSpace(body))
	}
	return output(args...)
}

func resetHard(ref string) error {
	_, err := output("reset", "--hard", ref)
	return err
}

// RewriteMessages rebuilds the commit chain starting at the first
// amendment's parent, keeping each commit's tree and substituting its
// message, then moves the branch to the new head. The working tree must be
// clean unless allowDirty is set. Returns the new HEAD SHA.
func RewriteMessages(amendments []Commit, allowDirty bool) (string, error) {
	if len(amendments) == 0 {
		return "", nil
	}

	if !allowDirty {
		clean, err := IsClean()
		if err != nil {
			return "", err
		}
		if !clean {
			return "", &StateError{Reason: "working tree not clean; commit or stash changes first, or pass --allow-dirty"}
		}
	}

	base, err := firstParent(amendments[0].SHA)
	if err != nil {
		return "", err
	}

	last := base
	for _, a := range amendments {
		tree, err := treeOf(a.SHA)
		if err != nil {
			return "", err
		}
		last, err = commitTree(tree, last, a.Subject, a.Body)
		if err != nil {
			return "", err
		}
	}
	if last == "" {
		return "", fmt.Errorf("failed to compute new commit chain")
	}

	if err := resetHard(last); err != nil {
		return "", err
	}
	return last, nil
}

// DropRange discards every commit after baseParent by resetting to it.
func DropRange(baseParent string) error {
	if baseParent == "" {
		return &StateError{Reason: "cannot drop range without a parent commit"}
	}
	return resetHard(baseParent)
}

// SquashRange replaces every commit after baseParent with a single commit
// carrying HEAD's tree and the given message. Returns the new HEAD SHA.
func SquashRange(baseParent, subject, body string) (string, error) {
	tree, err := treeOf("HEAD")
	if err != nil {
		return "", err
	}
	sha, err := commitTree(tree, baseParent, subject, body)
	if err != nil {
		return "", err
	}
	if err := resetHard(sha); err != nil {
		return "", err
	}
	return sha, nil
}

// FirstParent exposes the first parent of a commit, empty for a root commit.
func FirstParent(sha string) (string, error) { return firstParent(sha) }
