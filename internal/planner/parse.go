package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/lint"
)

// ParseError reports a model reply that is not valid JSON or does not match
// the expected plan schema. Raw carries the full reply for diagnosis.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string { return "invalid plan response: " + e.Reason }

// IsParseError checks whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

var fenceRE = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON pulls the first JSON value out of a model reply. Fenced code
// blocks are preferred, leading prose before the first JSON token is
// trimmed, and trailing noise after the value is ignored.
func ExtractJSON(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)

	if m := fenceRE.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	start := -1
	for _, idx := range []int{strings.Index(s, "["), strings.Index(s, "{")} {
		if idx >= 0 && (start < 0 || idx < start) {
			start = idx
		}
	}
	if start < 0 {
		return nil, &ParseError{Reason: "no JSON value found", Raw: text}
	}
	s = s[start:]

	dec := json.NewDecoder(strings.NewReader(s))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Reason: "invalid JSON: " + err.Error(), Raw: text}
	}
	return raw, nil
}

// ParseCommitPlan decodes and validates a commit plan reply. Every entry
// must carry a known type, a non-empty title within the subject bound, and
// a non-empty file list whose paths all exist in the presented change set.
func ParseCommitPlan(text string, cs gitio.ChangeSet, rules lint.Rules) (CommitPlan, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var plan CommitPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &ParseError{Reason: "plan is not an array of commits: " + err.Error(), Raw: text}
	}
	if len(plan) == 0 {
		return nil, &ParseError{Reason: "plan is empty", Raw: text}
	}

	for i, e := range plan {
		if err := validateEntry(e, cs, rules); err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("commit %d: %v", i+1, err), Raw: text}
		}
	}
	return plan, nil
}

func validateEntry(e Entry, cs gitio.ChangeSet, rules lint.Rules) error {
	if !rules.HasType(e.Type) {
		return fmt.Errorf("invalid commit type: %q", e.Type)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("commit title is required")
	}
	if len(e.Files) == 0 {
		return fmt.Errorf("commit files are required")
	}
	if rules.MaxSubjectLength > 0 && len(e.Title) > rules.MaxSubjectLength {
		return fmt.Errorf("commit title exceeds %d characters", rules.MaxSubjectLength)
	}
	if !lint.MatchesFormat(e.Subject(), rules) {
		return fmt.Errorf("subject %q does not match the format: <type>(<scope>): <subject>", e.Subject())
	}
	for _, f := range e.Files {
		if !cs.Contains(f) {
			return fmt.Errorf("file %q is not in the change set", f)
		}
	}
	return nil
}

// ParseAmendments decodes and validates an amendment reply against the
// commit window that was presented to the model: every returned SHA must
// exist in the window, every window commit must receive exactly one
// amendment, and every subject must pass the lint convention. The result
// follows the window's order.
func ParseAmendments(text string, window []gitio.Commit, rules lint.Rules) ([]Amendment, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var amendments []Amendment
	if err := json.Unmarshal(raw, &amendments); err != nil {
		return nil, &ParseError{Reason: "amendments are not an array: " + err.Error(), Raw: text}
	}

	known := make(map[string]bool, len(window))
	for _, c := range window {
		known[c.SHA] = true
	}

	bySHA := make(map[string]Amendment, len(amendments))
	for _, a := range amendments {
		if !known[a.SHA] {
			return nil, &ParseError{Reason: fmt.Sprintf("amendment references unknown sha %s", a.SHA), Raw: text}
		}
		if !lint.MatchesFormat(a.Subject, rules) {
			return nil, &ParseError{
				Reason: fmt.Sprintf("amendment for %s: subject %q does not match the format: <type>(<scope>): <subject>", shortSHA(a.SHA), a.Subject),
				Raw:    text,
			}
		}
		bySHA[a.SHA] = a
	}

	ordered := make([]Amendment, 0, len(window))
	for _, c := range window {
		a, ok := bySHA[c.SHA]
		if !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("no amendment returned for %s", shortSHA(c.SHA)), Raw: text}
		}
		ordered = append(ordered, a)
	}
	return ordered, nil
}

// ParseRewritePlan decodes and validates a history rewrite reply. The merge
// strategy must be one of the known values; every rewritten commit needs a
// title unless the strategy is drop with an empty commit list.
func ParseRewritePlan(text string) (RewritePlan, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return RewritePlan{}, err
	}

	var plan RewritePlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return RewritePlan{}, &ParseError{Reason: "rewrite plan is not an object: " + err.Error(), Raw: text}
	}

	strategy := strings.ToLower(strings.TrimSpace(plan.MergeStrategy))
	switch strategy {
	case StrategySquash, StrategyReorder, StrategySplit, StrategyDrop, "":
	default:
		return RewritePlan{}, &ParseError{Reason: fmt.Sprintf("unknown merge strategy %q", plan.MergeStrategy), Raw: text}
	}
	plan.MergeStrategy = strategy

	if len(plan.RewrittenCommits) == 0 && strategy != StrategyDrop {
		return RewritePlan{}, &ParseError{Reason: "rewrite plan has no commits and is not a drop", Raw: text}
	}
	for i, c := range plan.RewrittenCommits {
		if strings.TrimSpace(c.Title) == "" {
			return RewritePlan{}, &ParseError{Reason: fmt.Sprintf("rewritten commit %d has an empty title", i+1), Raw: text}
		}
	}
	return plan, nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
