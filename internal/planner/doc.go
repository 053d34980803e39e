// Package planner turns repository state into model prompts and model
// replies into validated plans.
//
// The model reply is untrusted text until it survives [ParseCommitPlan],
// [ParseAmendments], or [ParseRewritePlan]: strict JSON decoding plus a
// cross-check of every referenced file path or commit SHA against the
// input that was presented to the model. Anything that fails is a
// [ParseError] carrying the raw reply for diagnosis; nothing is written
// to the repository from an unvalidated plan.
package planner
