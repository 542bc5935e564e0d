// Package standards defines the compliance rules evaluated against a
// repository source.
//
// Each rule is an Evaluator pairing immutable Definition metadata (code,
// category, severity, remediation) with the evaluation logic producing an
// Outcome. Registration order and aggregation are owned by the inspect
// package.
package standards
