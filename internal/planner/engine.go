package planner

import (
	"context"
	"fmt"

	"gitscribe.dev/gitscribe/internal/config"
	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/providers"
	"gitscribe.dev/gitscribe/internal/redact"
)

const maxPlanTokens = 8192

// Planner requests plans from a model and validates the replies.
type Planner struct {
	completer providers.Completer
	cfg       config.Config
}

// New creates a Planner for the configured provider. The credential is
// resolved here, before any git or network operation, so a missing key
// fails fast.
func New(cfg config.Config) (*Planner, error) {
	key, err := config.APIKey(cfg.Provider)
	if err != nil {
		return nil, err
	}
	completer, err := providers.New(cfg.Provider, cfg.Model, key)
	if err != nil {
		return nil, err
	}
	return &Planner{completer: completer, cfg: cfg}, nil
}

// NewWithCompleter creates a Planner around an existing Completer.
func NewWithCompleter(completer providers.Completer, cfg config.Config) *Planner {
	return &Planner{completer: completer, cfg: cfg}
}

// CommitPlan asks the model to group the change set into commits and
// returns the validated plan.
func (p *Planner) CommitPlan(ctx context.Context, cs gitio.ChangeSet) (CommitPlan, error) {
	if cs.Empty() {
		return nil, fmt.Errorf("change set is empty")
	}

	diff := p.outboundDiff(cs.Diff)
	resp, err := p.completer.Complete(ctx, providers.Request{
		System:    commitSystemPrompt,
		Prompt:    BuildCommitPrompt(cs.Files, diff, p.cfg.Lint),
		MaxTokens: maxPlanTokens,
	})
	if err != nil {
		return nil, err
	}
	return ParseCommitPlan(resp.Content, cs, p.cfg.Lint)
}

// Amendments asks the model for replacement messages for the commit
// window and returns them validated and in window order.
func (p *Planner) Amendments(ctx context.Context, window []gitio.Commit) ([]Amendment, error) {
	if len(window) == 0 {
		return nil, fmt.Errorf("commit window is empty")
	}

	prompt, err := BuildAmendmentPrompt(window)
	if err != nil {
		return nil, err
	}
	resp, err := p.completer.Complete(ctx, providers.Request{
		System:    amendmentSystemPrompt,
		Prompt:    prompt,
		MaxTokens: maxPlanTokens,
	})
	if err != nil {
		return nil, err
	}
	return ParseAmendments(resp.Content, window, p.cfg.Lint)
}

// RewritePlan asks the model for a rewritten history covering the planning
// window and returns the validated plan.
func (p *Planner) RewritePlan(ctx context.Context, window []gitio.FixCommit) (RewritePlan, error) {
	if len(window) == 0 {
		return RewritePlan{}, fmt.Errorf("commit window is empty")
	}

	outbound := make([]gitio.FixCommit, len(window))
	copy(outbound, window)
	for i := range outbound {
		outbound[i].Diff = p.outboundDiff(outbound[i].Diff)
	}

	prompt, err := BuildFixPrompt(outbound)
	if err != nil {
		return RewritePlan{}, err
	}
	resp, err := p.completer.Complete(ctx, providers.Request{
		System:    fixSystemPrompt,
		Prompt:    prompt,
		MaxTokens: maxPlanTokens,
	})
	if err != nil {
		return RewritePlan{}, err
	}
	return ParseRewritePlan(resp.Content)
}

// outboundDiff applies the redaction policy and the diff size budget to
// text that is about to leave the process.
func (p *Planner) outboundDiff(diff string) string {
	if p.cfg.RedactSecrets {
		diff = redact.Secrets(diff)
	}
	if p.cfg.MaxDiffBytes > 0 && len(diff) > p.cfg.MaxDiffBytes {
		diff = diff[:p.cfg.MaxDiffBytes] + "\n... (diff truncated at maxDiffBytes limit)\n"
	}
	return diff
}
