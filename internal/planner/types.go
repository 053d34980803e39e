package planner

// Entry is one planned commit: the files it should contain and the
// generated Conventional Commit message.
type Entry struct {
	Type  string   `json:"type"`
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
	Files []string `json:"files"`
}

// Subject returns the commit subject line for the entry.
func (e Entry) Subject() string { return e.Type + ": " + e.Title }

// CommitPlan is an ordered sequence of planned commits. Consumed once by
// the applier, then discarded.
type CommitPlan []Entry

// AllFiles returns the union of file paths across all entries, in plan order.
func (p CommitPlan) AllFiles() []string {
	seen := make(map[string]bool)
	var files []string
	for _, e := range p {
		for _, f := range e.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

// Amendment is a replacement message for an existing commit.
type Amendment struct {
	SHA     string `json:"sha"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
}

// RewriteChange summarizes one file inside a rewritten commit.
type RewriteChange struct {
	File    string `json:"file"`
	Summary string `json:"summary"`
	Type    string `json:"type"`
}

// RewriteCommit is one commit in a proposed rewritten history.
type RewriteCommit struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Changes     []RewriteChange `json:"changes,omitempty"`
	Rationale   string          `json:"rationale,omitempty"`
}

// Merge strategies a rewrite plan may declare.
const (
	StrategySquash  = "squash"
	StrategyReorder = "reorder"
	StrategySplit   = "split"
	StrategyDrop    = "drop"
)

// RewritePlan is a proposed replacement for a window of history.
type RewritePlan struct {
	RewrittenCommits []RewriteCommit `json:"rewrittenCommits"`
	MergeStrategy    string          `json:"mergeStrategy"`
	Notes            string          `json:"notes,omitempty"`
}
