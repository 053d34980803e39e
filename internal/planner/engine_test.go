package planner

import (
	"context"
	"strings"
	"testing"

	"gitscribe.dev/gitscribe/internal/config"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/providers"
)

// fakeCompleter returns a canned reply and records the last request.
type fakeCompleter struct {
	reply string
	err   error
	last  providers.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req providers.Request) (providers.Response, error) {
	f.last = req
	if f.err != nil {
		return providers.Response{}, f.err
	}
	return providers.Response{Content: f.reply}, nil
}

func (f *fakeCompleter) Name() string { return "fake" }

func TestPlannerCommitPlan(t *testing.T) {
	fake := &fakeCompleter{reply: `[{"type": "feat", "title": "add thing", "files": ["main.go"]}]`}
	p := NewWithCompleter(fake, config.Default())

	cs := gitio.ChangeSet{Files: []string{"main.go"}, Diff: "+func main() {}\n"}
	plan, err := p.CommitPlan(context.Background(), cs)
	if err != nil {
		t.Fatalf("CommitPlan error: %v", err)
	}
	if len(plan) != 1 || plan[0].Subject() != "feat: add thing" {
		t.Errorf("plan = %+v", plan)
	}
	if !strings.Contains(fake.last.Prompt, "main.go") {
		t.Error("prompt should name the changed file")
	}
	if !strings.Contains(fake.last.Prompt, "+func main() {}") {
		t.Error("prompt should carry the diff")
	}
}

func TestPlannerCommitPlan_EmptyChangeSet(t *testing.T) {
	p := NewWithCompleter(&fakeCompleter{reply: "[]"}, config.Default())
	if _, err := p.CommitPlan(context.Background(), gitio.ChangeSet{}); err == nil {
		t.Error("expected error for empty change set")
	}
}

func TestPlannerCommitPlan_ProviderErrorPassesThrough(t *testing.T) {
	wantErr := &providers.UnavailableError{Provider: "fake", Status: 401, Auth: true}
	p := NewWithCompleter(&fakeCompleter{err: wantErr}, config.Default())

	_, err := p.CommitPlan(context.Background(), gitio.ChangeSet{Files: []string{"a.go"}, Diff: "x"})
	if !providers.IsAuthError(err) {
		t.Errorf("provider error should surface unchanged, got %v", err)
	}
}

func TestPlannerCommitPlan_RedactsOutboundDiff(t *testing.T) {
	fake := &fakeCompleter{reply: `[{"type": "chore", "title": "rotate key", "files": ["conf.go"]}]`}
	cfg := config.Default()
	p := NewWithCompleter(fake, cfg)

	cs := gitio.ChangeSet{
		Files: []string{"conf.go"},
		Diff:  `+	apiKey = "abcdefghij1234567890ABCD"` + "\n",
	}
	if _, err := p.CommitPlan(context.Background(), cs); err != nil {
		t.Fatalf("CommitPlan error: %v", err)
	}
	if strings.Contains(fake.last.Prompt, "abcdefghij1234567890ABCD") {
		t.Error("secret leaked into the outbound prompt")
	}
	if !strings.Contains(fake.last.Prompt, "[REDACTED]") {
		t.Error("outbound prompt should carry the redaction placeholder")
	}
}

func TestPlannerCommitPlan_TruncatesLargeDiff(t *testing.T) {
	fake := &fakeCompleter{reply: `[{"type": "chore", "title": "bulk update", "files": ["big.go"]}]`}
	cfg := config.Default()
	cfg.MaxDiffBytes = 100
	p := NewWithCompleter(fake, cfg)

	cs := gitio.ChangeSet{Files: []string{"big.go"}, Diff: strings.Repeat("x", 5000)}
	if _, err := p.CommitPlan(context.Background(), cs); err != nil {
		t.Fatalf("CommitPlan error: %v", err)
	}
	if !strings.Contains(fake.last.Prompt, "diff truncated") {
		t.Error("oversized diff should be truncated with a marker")
	}
	if len(fake.last.Prompt) > 3000 {
		t.Errorf("prompt length = %d, truncation not applied", len(fake.last.Prompt))
	}
}

func TestPlannerAmendments(t *testing.T) {
	fake := &fakeCompleter{reply: `[{"sha": "aaa1111", "subject": "feat: add watch loop"}]`}
	p := NewWithCompleter(fake, config.Default())

	window := []gitio.Commit{{SHA: "aaa1111", Subject: "wip", Body: "scratch"}}
	got, err := p.Amendments(context.Background(), window)
	if err != nil {
		t.Fatalf("Amendments error: %v", err)
	}
	if len(got) != 1 || got[0].Subject != "feat: add watch loop" {
		t.Errorf("amendments = %+v", got)
	}
	if !strings.Contains(fake.last.Prompt, `"aaa1111"`) {
		t.Error("prompt should carry the window commits as JSON")
	}
}

func TestPlannerRewritePlan(t *testing.T) {
	fake := &fakeCompleter{reply: `{"rewrittenCommits": [{"title": "Collapse fixups"}], "mergeStrategy": "squash"}`}
	p := NewWithCompleter(fake, config.Default())

	window := []gitio.FixCommit{
		{SHA: "aaa1111", Message: "wip", Diff: `+	token = "abcdefgh12345678"` + "\n"},
	}
	plan, err := p.RewritePlan(context.Background(), window)
	if err != nil {
		t.Fatalf("RewritePlan error: %v", err)
	}
	if plan.MergeStrategy != StrategySquash {
		t.Errorf("MergeStrategy = %q", plan.MergeStrategy)
	}
	if strings.Contains(fake.last.Prompt, "abcdefgh12345678") {
		t.Error("per-commit diffs should be redacted before leaving the process")
	}
	// The input window must not be mutated by redaction.
	if !strings.Contains(window[0].Diff, "abcdefgh12345678") {
		t.Error("redaction mutated the caller's window")
	}
}
