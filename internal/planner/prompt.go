package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitscribe.dev/gitscribe/internal/gitio"
	"gitscribe.dev/gitscribe/internal/lint"
)

const commitSystemPrompt = `You are an AI that analyzes Git diffs and produces commit messages. You respond with ONLY valid JSON, no commentary.`

// BuildCommitPrompt constructs the commit-planning prompt from the change
// set's file list and diff text.
func BuildCommitPrompt(files []string, diff string, rules lint.Rules) string {
	var b strings.Builder

	b.WriteString("Analyze the following Git changes and produce commit messages.\n\n")

	b.WriteString("FILES INVOLVED:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	b.WriteString("\nDIFF:\n```\n")
	b.WriteString(diff)
	b.WriteString("\n```\n\n")

	fmt.Fprintf(&b, `TASKS:
1. Group changes into one or multiple commits logically.
2. For each commit:
   - Use a Conventional Commits type: %s.
   - Provide a short title (under %d characters), without the type prefix, lowercase.
   - Provide a longer body description (can be multi-line, markdown ok).
   - List which files belong to that commit; use only paths from FILES INVOLVED.
   - Fixes should be a fix type, not a feat type.
   - If a feature does not yet feel complete, leave it out of the plan.
3. Output ONLY valid JSON in this structure:

[
  {
    "type": "%s",
    "title": "short descriptive title, no type prefix",
    "body": "longer description of the change",
    "files": ["file1.go", "file2.go"]
  }
]

Do NOT add any commentary outside the JSON.
`, strings.Join(rules.Types, ", "), rules.MaxSubjectLength, strings.Join(rules.Types, "|"))

	return b.String()
}

const amendmentSystemPrompt = `You are helping rewrite commit messages for a linear Git history. You respond with ONLY valid JSON, no commentary.`

// amendmentInput is the shape of a window commit as presented to the model.
type amendmentInput struct {
	SHA     string `json:"sha"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
}

// BuildAmendmentPrompt constructs the message-amendment prompt from the
// unpushed commit window, oldest first.
func BuildAmendmentPrompt(commits []gitio.Commit) (string, error) {
	inputs := make([]amendmentInput, 0, len(commits))
	for _, c := range commits {
		inputs = append(inputs, amendmentInput{SHA: c.SHA, Subject: c.Subject, Body: c.Body})
	}
	encoded, err := json.MarshalIndent(inputs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding commit window: %w", err)
	}

	var b strings.Builder
	b.WriteString(`For each commit, propose a new Conventional Commit subject and optional body.
Keep the same commit order; do not merge or split commits.

Return a JSON array like:
[
  {
    "sha": "<orig sha>",
    "subject": "feat: better subject",
    "body": "optional body"
  }
]

Commits (oldest first):
`)
	b.Write(encoded)
	return b.String(), nil
}

const fixSystemPrompt = `You are an expert at rewriting Git commit history into a clean, logical series. You respond with ONLY valid JSON, no commentary.`

const fixInstructions = `Analyze the un-pushed local commit series and return a rewritten, improved
commit history as JSON only.

You will receive an ordered list of commits (oldest to newest), each with a
hash, message, and full diff.

What to do:
1. Interpret the diffs to infer intent, not just mechanical changes.
2. Produce a new commit history that is clean (one purpose per commit),
   logical (coherent order), minimal (no unnecessary commits), and grouped
   by intent rather than by how the developer originally committed.
   You may squash, split, reorder, or drop commits.
3. For each rewritten commit give a title (72 characters or less, imperative
   mood), an optional description, a changes array summarizing each file,
   and a rationale for why the changes belong together.
4. Declare the primary merge strategy: squash, reorder, split, or drop.

Return only JSON matching this schema:

{
  "rewrittenCommits": [
    {
      "title": "Concise commit title",
      "description": "Optional longer description",
      "changes": [
        {
          "file": "path/to/file",
          "summary": "What changed in this file",
          "type": "add|remove|modify|refactor|rename"
        }
      ],
      "rationale": "Why these changes logically belong in this commit"
    }
  ],
  "mergeStrategy": "squash|reorder|split|drop",
  "notes": "Optional additional recommendations"
}

Constraints: do not return Git commands, do not reference rewriting tools,
do not include text outside the JSON, and base everything on the provided
diffs only.`

// BuildFixPrompt constructs the history-rewrite prompt from the planning
// window with full per-commit diffs.
func BuildFixPrompt(commits []gitio.FixCommit) (string, error) {
	encoded, err := json.MarshalIndent(commits, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding commit window: %w", err)
	}
	return fmt.Sprintf("%s\n\nCommits (oldest to newest):\n%s", fixInstructions, encoded), nil
}
