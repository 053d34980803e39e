package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gitscribe.dev/gitscribe/internal/apply"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/lint"
	"gitscribe.dev/gitscribe/internal/planner"
)

func TestFormatCommitPlan(t *testing.T) {
	plan := planner.CommitPlan{
		{Type: "feat", Title: "add planner", Body: "first pass", Files: []string{"a.go", "b.go"}},
		{Type: "docs", Title: "describe usage", Files: []string{"README.md"}},
	}
	out := FormatCommitPlan(plan)

	for _, want := range []string{
		"Proposed commits (2):",
		"feat: add planner",
		"first pass",
		"files: a.go, b.go",
		"docs: describe usage",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatApplyResult(t *testing.T) {
	res := apply.Result{
		Committed: []apply.Applied{{Subject: "feat: add planner", Files: []string{"a.go"}}},
		Skipped:   []string{"gone.go"},
	}
	out := FormatApplyResult(res, false)
	if !strings.Contains(out, "Created commit:") || !strings.Contains(out, "feat: add planner") {
		t.Errorf("output missing commit line:\n%s", out)
	}
	if !strings.Contains(out, "Skipped gone.go") {
		t.Errorf("output missing skip notice:\n%s", out)
	}

	if out := FormatApplyResult(res, true); !strings.Contains(out, "Would create commit:") {
		t.Errorf("dry run should use conditional phrasing:\n%s", out)
	}
}

func TestFormatAmendments(t *testing.T) {
	window := []gitio.Commit{{SHA: "aaa1111bbb2222", Subject: "wip"}}
	amendments := []planner.Amendment{{SHA: "aaa1111bbb2222", Subject: "feat: add watch loop", Body: "details"}}
	out := FormatAmendments(window, amendments)

	for _, want := range []string{"aaa1111", "wip", "-> ", "feat: add watch loop", "details"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "aaa1111bbb2222") {
		t.Errorf("sha should be shortened:\n%s", out)
	}
}

func TestFormatRewritePlan(t *testing.T) {
	plan := planner.RewritePlan{
		RewrittenCommits: []planner.RewriteCommit{
			{
				Title:       "Add commit planner",
				Description: "one logical change",
				Changes:     []planner.RewriteChange{{File: "a.go", Summary: "new package", Type: "add"}},
				Rationale:   "belongs together",
			},
		},
		MergeStrategy: planner.StrategySquash,
		Notes:         "push after review",
	}
	out := FormatRewritePlan(plan)

	for _, want := range []string{
		"strategy: squash",
		"Add commit planner",
		"one logical change",
		"add a.go: new package",
		"rationale: belongs together",
		"push after review",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatLintResults(t *testing.T) {
	results := []lint.Result{
		{Subject: "feat: add planner"},
		{Subject: "bad subject", Violations: []string{"subject must match the format: <type>(<scope>): <subject>"}},
	}
	out := FormatLintResults(results)

	if !strings.Contains(out, "ok") || !strings.Contains(out, "feat: add planner") {
		t.Errorf("output missing pass line:\n%s", out)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "must match the format") {
		t.Errorf("output missing violation:\n%s", out)
	}
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "thinking")
	s.Start()
	time.Sleep(300 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "thinking") {
		t.Errorf("spinner never rendered its message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner did not clear its line: %q", out)
	}

	// Stop after Stop is a no-op.
	s.Stop()
}
