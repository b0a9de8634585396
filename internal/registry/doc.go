// Package registry merges read-only built-in dictionaries with
// organization-scoped imported dictionaries and resolves key ids across
// them.
//
// Organization scoping is explicit: callers obtain a *Scope for an org id and
// pass it to everything that needs key lookups. There is no ambient "current
// organization".
//
// Lookup order is built-ins first, then imports in import order; the first
// dictionary that declares a key id wins. A later declaration of the same id
// is shadowed and reported as a warning diagnostic on the scope.
package registry
