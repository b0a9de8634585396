// Package dictionary defines the canonical key contract: the schema of a
// provider-agnostic key, the hierarchical dictionary that groups keys, and
// the validation that guarantees a dictionary is structurally sound before
// anything reads from it.
//
// # Shape
//
// A dictionary is declared as JSON or YAML:
//
//	dictionaryId: hockey
//	version: 1.2.0
//	domain: sports
//	root:
//	  type: node
//	  name: game
//	  children:
//	    - type: key
//	      keyId: 01J8Z4V0R8KQ3M5N7P9S1T3W5Y
//	      alias: home.score
//	      valueType: number
//	      kind: state
//	      canonicalPath: game.home.score
//	      scope: scoreboard
//
// # Normalization
//
// The legacy "path" field is folded into "canonicalPath" once, at load time.
// canonicalPath wins when both are present; when neither is present the key
// is unmapped (empty canonical path) and callers must not try to resolve it.
//
// # Uniqueness
//
// Key ids and non-empty canonical paths are unique within one dictionary.
// Validate enforces both; BuildPathIndex is the single place a duplicate
// canonical path is reported.
package dictionary
