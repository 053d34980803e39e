package apply

import (
	"fmt"

	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/planner"
)

// Amendments substitutes commit messages across the unpushed window. The
// amendments must already be validated against the window (complete and in
// window order). Merge commits anywhere in the range block the rewrite.
// Returns the new HEAD SHA.
func Amendments(window []gitio.Commit, amendments []planner.Amendment, allowDirty bool) (string, error) {
	if err := gitio.EnsureNoMerges(window); err != nil {
		return "", err
	}

	commits := make([]gitio.Commit, 0, len(amendments))
	for _, a := range amendments {
		commits = append(commits, gitio.Commit{SHA: a.SHA, Subject: a.Subject, Body: a.Body})
	}
	return gitio.RewriteMessages(commits, allowDirty)
}

// Rewrite applies a history rewrite plan to the commit window. Supported
// shapes: drop the whole window, squash it into one commit, or substitute
// messages one-for-one when the plan has as many commits as the window.
// Anything else cannot be applied mechanically and is rejected before any
// write. Returns the new HEAD SHA, empty when the window was dropped to a
// root-less state.
func Rewrite(window []gitio.FixCommit, plan planner.RewritePlan) (string, error) {
	if len(window) == 0 {
		return "", &gitio.StateError{Reason: "no commits to rewrite"}
	}

	clean, err := gitio.IsClean()
	if err != nil {
		return "", err
	}
	if !clean {
		return "", &gitio.StateError{Reason: "working tree not clean; commit or stash changes before rewriting history"}
	}

	windowCommits := make([]gitio.Commit, 0, len(window))
	for _, c := range window {
		windowCommits = append(windowCommits, gitio.Commit{SHA: c.SHA})
	}
	if err := gitio.EnsureNoMerges(windowCommits); err != nil {
		return "", err
	}

	base, err := gitio.FirstParent(window[0].SHA)
	if err != nil {
		return "", err
	}

	switch {
	case plan.MergeStrategy == planner.StrategyDrop:
		if err := gitio.DropRange(base); err != nil {
			return "", err
		}
		return base, nil

	case plan.MergeStrategy == planner.StrategySquash || len(plan.RewrittenCommits) == 1:
		// A squash plan without commits still has a defined outcome.
		subject, body := "chore: squash commits", ""
		if len(plan.RewrittenCommits) > 0 {
			subject, body = plan.RewrittenCommits[0].Title, plan.RewrittenCommits[0].Description
		}
		return gitio.SquashRange(base, subject, body)

	case len(plan.RewrittenCommits) == len(window):
		commits := make([]gitio.Commit, 0, len(window))
		for i, c := range plan.RewrittenCommits {
			commits = append(commits, gitio.Commit{
				SHA:     window[i].SHA,
				Subject: c.Title,
				Body:    c.Description,
			})
		}
		// Tree cleanliness was checked above.
		return gitio.RewriteMessages(commits, true)

	default:
		return "", fmt.Errorf(
			"rewrite plan proposes %d commits for a window of %d; only squash, drop, or a one-for-one rewrite can be applied",
			len(plan.RewrittenCommits), len(window))
	}
}
