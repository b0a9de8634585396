// Package diagnostic provides ordered, severity-graded validation results
// shared by the dictionary registry, the mapping validator and the binding
// graph validator.
//
// Results are data, not failures: callers decide whether an error-severity
// result blocks their next step (for example an editor refusing to deploy a
// graph with orphaned bindings).
package diagnostic
