// Package graph validates consumer binding graphs against the dictionary
// registry.
//
// A node bound to a key id that the registry cannot resolve is an orphan.
// Orphans are error results and make the report fail; editors use
// Report.Offending to flag or clear the bindings. Fixing the graph is the
// editor's job, not this package's.
package graph
