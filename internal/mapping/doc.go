// Package mapping turns provider-shaped payloads into canonical Snapshot
// envelopes.
//
// A mapping spec names the output dictionary and lists rules. A rule either
// assigns a constant to a key or resolves a provider path and pipes the
// result through named transforms:
//
//	id: acme-hockey
//	inputSchemaId: acme.v2
//	outputDictionaryId: hockey
//	outputDictionaryVersion: 1.0.0
//	rules:
//	  - fromPath: game.home.score
//	    toKeyId: K_HOME_SCORE
//	  - fromPath: players[0].name
//	    toKeyId: K_TOP_SCORER
//	    transforms: [upper]
//	  - fromPath: game.possession
//	    toKeyId: K_POSSESSION
//	    transforms: pct
//	  - constant: acme
//	    toKeyId: K_PROVIDER
//
// # Paths
//
// Paths are dotted with optional bracket indices: "a[0].b" is read as
// "a.0.b". A missing or null intermediate segment resolves to
// value.Absent; resolution never fails. Absent results are left out of the
// snapshot.
//
// # Transforms
//
// Transforms run strictly left to right. Unknown names are ignored.
//
//   - upper, lower: change case of strings; other kinds pass through
//   - number: numeric coercion (strings are parsed, booleans become 1/0,
//     null becomes 0, anything unparsable becomes null)
//   - pct: numbers times 100 with zero decimals and a "%" suffix
//   - fixed(n): numbers with n decimals, ties rounded away from zero as in
//     pct; n is taken from the digits in the name and defaults to 0, so
//     "fixed", "fixed2" and "fixed(2)" all work
//   - json: two-space indented JSON text
//
// Validate reports malformed rules as errors and unresolvable references
// (unknown key ids, unknown transforms) as warnings: a mapping still emits a
// value under an unknown key id.
package mapping
