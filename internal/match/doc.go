// Package match ranks near-miss names for "did you mean" suggestions and
// scores value-kind compatibility between a declared key type and a value.
//
// Key functions:
//   - NormalizeIdent: folds key ids, aliases and transform names for fuzzy matching
//   - Similarity: normalized Levenshtein similarity
//   - Rank / Suggest: rank candidate names against a query
//   - ScoreKindCompatibility: how a value kind fits a declared key type
package match
