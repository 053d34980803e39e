package ui

import (
	"fmt"
	"strings"

	"gitscribe.dev/gitscribe/internal/apply"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/lint"
	"gitscribe.dev/gitscribe/internal/planner"
)

// FormatCommitPlan renders a commit plan preview: one numbered block per
// planned commit with subject, optional body, and the files it covers.
func FormatCommitPlan(plan planner.CommitPlan) string {
	var b strings.Builder
	b.WriteString(Heading(fmt.Sprintf("Proposed commits (%d):", len(plan))))
	b.WriteString("\n")
	for i, e := range plan {
		fmt.Fprintf(&b, "\n  %d. %s\n", i+1, Subject(e.Subject()))
		if strings.TrimSpace(e.Body) != "" {
			for _, line := range strings.Split(strings.TrimSpace(e.Body), "\n") {
				fmt.Fprintf(&b, "     %s\n", Dim(line))
			}
		}
		fmt.Fprintf(&b, "     %s\n", Dim("files: "+strings.Join(e.Files, ", ")))
	}
	return b.String()
}

// FormatApplyResult renders what a plan application did (or, on a dry run,
// would do).
func FormatApplyResult(res apply.Result, dryRun bool) string {
	var b strings.Builder
	verb := "Created"
	if dryRun {
		verb = "Would create"
	}
	for _, c := range res.Committed {
		fmt.Fprintf(&b, "%s %s\n", Success(verb+" commit:"), Subject(c.Subject))
	}
	for _, f := range res.Skipped {
		fmt.Fprintf(&b, "%s\n", Warn(fmt.Sprintf("Skipped %s: no longer present", f)))
	}
	return b.String()
}

// FormatAmendments renders the before/after message pairs for an
// amend-unpushed run, oldest first.
func FormatAmendments(window []gitio.Commit, amendments []planner.Amendment) string {
	bySHA := make(map[string]planner.Amendment, len(amendments))
	for _, a := range amendments {
		bySHA[a.SHA] = a
	}

	var b strings.Builder
	b.WriteString(Heading("Proposed message rewrites:"))
	b.WriteString("\n")
	for i, c := range window {
		a, ok := bySHA[c.SHA]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n  %d. %s %s\n", i+1, Dim(shortSHA(c.SHA)), Dim(c.Subject))
		fmt.Fprintf(&b, "     -> %s\n", Subject(a.Subject))
		if strings.TrimSpace(a.Body) != "" {
			for _, line := range strings.Split(strings.TrimSpace(a.Body), "\n") {
				fmt.Fprintf(&b, "        %s\n", Dim(line))
			}
		}
	}
	return b.String()
}

// FormatRewritePlan renders a history rewrite plan: strategy, the rewritten
// series, and the model's notes.
func FormatRewritePlan(plan planner.RewritePlan) string {
	var b strings.Builder
	b.WriteString(Heading("Proposed history rewrite"))
	if plan.MergeStrategy != "" {
		fmt.Fprintf(&b, " %s", Dim("(strategy: "+plan.MergeStrategy+")"))
	}
	b.WriteString("\n")
	for i, c := range plan.RewrittenCommits {
		fmt.Fprintf(&b, "\n  %d. %s\n", i+1, Subject(c.Title))
		if strings.TrimSpace(c.Description) != "" {
			for _, line := range strings.Split(strings.TrimSpace(c.Description), "\n") {
				fmt.Fprintf(&b, "     %s\n", Dim(line))
			}
		}
		for _, ch := range c.Changes {
			fmt.Fprintf(&b, "     %s\n", Dim(fmt.Sprintf("%s %s: %s", ch.Type, ch.File, ch.Summary)))
		}
		if strings.TrimSpace(c.Rationale) != "" {
			fmt.Fprintf(&b, "     %s\n", Dim("rationale: "+c.Rationale))
		}
	}
	if strings.TrimSpace(plan.Notes) != "" {
		fmt.Fprintf(&b, "\n%s %s\n", Heading("Notes:"), plan.Notes)
	}
	return b.String()
}

// FormatLintResults renders per-subject lint outcomes, flagging each
// violation on its own line.
func FormatLintResults(results []lint.Result) string {
	var b strings.Builder
	for _, r := range results {
		if len(r.Violations) == 0 {
			fmt.Fprintf(&b, "%s %s\n", Success("ok  "), r.Subject)
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", Error("FAIL"), r.Subject)
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "     %s\n", Warn(v))
		}
	}
	return b.String()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
