package lint

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules is the subject convention: the allowed Conventional Commit types and
// the maximum subject length.
type Rules struct {
	Types            []string `json:"types"`
	MaxSubjectLength int      `json:"maxSubjectLength"`
}

// DefaultRules returns the standard Conventional Commits convention with a
// 75-character subject bound.
func DefaultRules() Rules {
	return Rules{
		Types: []string{
			"feat", "fix", "docs", "style", "refactor",
			"perf", "test", "build", "ci", "chore", "revert",
		},
		MaxSubjectLength: 75,
	}
}

// HasType reports whether t is an allowed commit type.
func (r Rules) HasType(t string) bool {
	for _, known := range r.Types {
		if known == t {
			return true
		}
	}
	return false
}

// subjectRE builds the `<type>(<scope>)?: <subject>` pattern for the
// configured type set.
func (r Rules) subjectRE() *regexp.Regexp {
	escaped := make([]string, len(r.Types))
	for i, t := range r.Types {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`^(` + strings.Join(escaped, "|") + `)(\(.+\))?: .+$`)
}

// MatchesFormat reports whether a subject line has the
// `<type>(<scope>)?: <subject>` shape for the configured type set. Unlike
// [CheckSubject] it applies no style heuristics; plan validation uses it to
// reject malformed subjects without second-guessing the model's wording.
func MatchesFormat(subject string, rules Rules) bool {
	return rules.subjectRE().MatchString(subject)
}

// nonImperativeRE flags a leading description word in past or progressive
// tense. A heuristic, not a grammar check.
var nonImperativeRE = regexp.MustCompile(`^[a-zA-Z]+(ed|ing)\b`)

// CheckSubject returns the list of convention rules a subject line violates.
// An empty list means the subject passes.
func CheckSubject(subject string, rules Rules) []string {
	var violations []string

	if strings.TrimSpace(subject) == "" {
		return []string{"subject is empty"}
	}
	if rules.MaxSubjectLength > 0 && len(subject) > rules.MaxSubjectLength {
		violations = append(violations,
			fmt.Sprintf("subject exceeds %d characters", rules.MaxSubjectLength))
	}
	if strings.HasSuffix(strings.TrimSpace(subject), ".") {
		violations = append(violations, "subject ends with a period")
	}

	if !rules.subjectRE().MatchString(subject) {
		violations = append(violations,
			"subject must match the format: <type>(<scope>): <subject>")
		return violations
	}

	// Imperative mood heuristic on the first description word.
	_, desc, ok := strings.Cut(subject, ": ")
	if ok && nonImperativeRE.MatchString(desc) {
		word := strings.Fields(desc)[0]
		violations = append(violations,
			fmt.Sprintf("description starts with %q; use imperative mood", word))
	}

	return violations
}

// Result is the lint outcome for one commit subject.
type Result struct {
	Subject    string
	Violations []string
}

// CheckSubjects lints each subject and returns per-subject results plus the
// total violation count.
func CheckSubjects(subjects []string, rules Rules) ([]Result, int) {
	results := make([]Result, 0, len(subjects))
	total := 0
	for _, s := range subjects {
		v := CheckSubject(s, rules)
		total += len(v)
		results = append(results, Result{Subject: s, Violations: v})
	}
	return results, total
}
