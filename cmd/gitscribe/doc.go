// Gitscribe is a CLI that automates git commit workflows with LLM providers.
//
// It groups pending changes into Conventional Commits, rewrites the messages
// of unpushed commits, restructures unpushed history into a clean series, and
// lints commit subjects, with deterministic exit codes suitable for scripting
// and git hooks.
//
// Usage:
//
//	gitscribe generate                # propose a commit plan, change nothing
//	gitscribe commit                  # plan, stage, and commit pending changes
//	gitscribe amend-unpushed          # rewrite unpushed commit messages
//	gitscribe fix                     # rewrite unpushed history into a clean series
//	gitscribe status                  # show pending changes and unpushed commits
//	gitscribe lint [count]            # check commit subjects against the convention
//	gitscribe watch --interval 60     # poll and auto-commit pending changes
package main
