package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"keyspace/internal/diagnostic"
	"keyspace/internal/dictionary"
)

// Scope is the merged dictionary view for one organization. It is the
// explicit context object passed to mapping and graph validation. A Scope is
// not safe for concurrent use.
type Scope struct {
	orgID   string
	reg     *Registry
	imports []*dictionary.Dictionary

	index     map[string]Ref
	order     []string // key ids in first-seen order
	loadDiags diagnostic.Diagnostics
	diags     diagnostic.Diagnostics
}

// OrgID returns the organization this scope belongs to.
func (s *Scope) OrgID() string {
	return s.orgID
}

// ListDictionaries returns built-ins (first, read-only) followed by imports in
// import order.
func (s *Scope) ListDictionaries() []*dictionary.Dictionary {
	out := make([]*dictionary.Dictionary, 0, len(s.reg.builtins)+len(s.imports))
	out = append(out, s.reg.builtins...)
	out = append(out, s.imports...)

	return out
}

// Imports returns only the organization's imported dictionaries.
func (s *Scope) Imports() []*dictionary.Dictionary {
	return slices.Clone(s.imports)
}

// Dictionary finds a dictionary by id, built-ins first.
func (s *Scope) Dictionary(dictID string) (*dictionary.Dictionary, bool) {
	for _, d := range s.ListDictionaries() {
		if d.ID == dictID {
			return d, true
		}
	}

	return nil, false
}

// GetKey resolves keyID across the merged dictionaries; first match wins.
// A nil Scope resolves nothing.
func (s *Scope) GetKey(keyID string) (Ref, bool) {
	if s == nil {
		return Ref{}, false
	}

	ref, ok := s.index[keyID]

	return ref, ok
}

// Keys returns every resolvable key in merge order. Shadowed declarations
// are not included.
func (s *Scope) Keys() []Ref {
	if s == nil {
		return nil
	}

	out := make([]Ref, len(s.order))
	for i, id := range s.order {
		out[i] = s.index[id]
	}

	return out
}

// Diagnostics returns load and merge diagnostics: invalid persisted imports
// (errors) and shadowed key ids (warnings).
func (s *Scope) Diagnostics() diagnostic.Diagnostics {
	var out diagnostic.Diagnostics

	out.Merge(s.loadDiags)
	out.Merge(s.diags)

	return out
}

// Import adds validated dictionaries to the organization and persists the
// result. An import with the id of an existing import replaces it in place;
// an import with the id of a built-in fails with ErrReadOnly.
//
// The stored list is re-read first, so imports written through another
// Scope for the same organization are kept.
func (s *Scope) Import(ctx context.Context, dicts ...*dictionary.Dictionary) error {
	if s.orgID == "" {
		return ErrNoOrg
	}

	for _, d := range dicts {
		if d != nil && s.reg.isBuiltin(d.ID) {
			return fmt.Errorf("import %s: %w", d.ID, ErrReadOnly)
		}
	}

	next, err := s.reg.loadImports(ctx, s.orgID)
	if err != nil {
		return err
	}

	for _, d := range dicts {
		if d == nil {
			continue
		}

		st := stored{raw: d.Raw(), dict: d}

		i := slices.IndexFunc(next, func(x stored) bool { return x.id() == d.ID })
		if i >= 0 {
			next[i] = st
		} else {
			next = append(next, st)
		}
	}

	err = s.reg.saveImports(ctx, s.orgID, next)
	if err != nil {
		return err
	}

	s.setImports(next)
	s.rebuild()

	s.reg.logger.Info("imported dictionaries",
		slog.String("org_id", s.orgID),
		slog.Int("count", len(dicts)),
		slog.Int("imports", len(s.imports)))

	return nil
}

// Remove deletes an imported dictionary and persists the result.
func (s *Scope) Remove(ctx context.Context, dictID string) error {
	if s.orgID == "" {
		return ErrNoOrg
	}

	if s.reg.isBuiltin(dictID) {
		return fmt.Errorf("remove %s: %w", dictID, ErrReadOnly)
	}

	current, err := s.reg.loadImports(ctx, s.orgID)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(current, func(x stored) bool { return x.id() == dictID })
	if i < 0 {
		return fmt.Errorf("remove %s: %w", dictID, ErrNotFound)
	}

	next := slices.Delete(current, i, i+1)

	err = s.reg.saveImports(ctx, s.orgID, next)
	if err != nil {
		return err
	}

	s.setImports(next)
	s.rebuild()

	return nil
}

// setImports keeps the valid imports and reports the rest as load errors.
func (s *Scope) setImports(imports []stored) {
	s.imports = s.imports[:0:0]
	s.loadDiags = diagnostic.Diagnostics{}

	for _, st := range imports {
		if st.dict != nil {
			s.imports = append(s.imports, st.dict)
			continue
		}

		s.loadDiags.AddError("invalid_import", st.err.Error(), st.raw.DictionaryID)
		s.reg.logger.Warn("skipping invalid imported dictionary",
			slog.String("org_id", s.orgID),
			slog.String("dictionary_id", st.raw.DictionaryID),
			slog.Any("error", st.err))
	}
}

// rebuild recomputes the first-match-wins key index and shadowing warnings.
func (s *Scope) rebuild() {
	s.index = make(map[string]Ref)
	s.order = s.order[:0]
	s.diags = diagnostic.Diagnostics{}

	builtins := len(s.reg.builtins)

	for i, d := range s.ListDictionaries() {
		for _, e := range dictionary.Flatten(d) {
			id := e.Key.ID

			if prev, taken := s.index[id]; taken {
				s.diags.AddWarning("duplicate_key_id",
					fmt.Sprintf("key %q in dictionary %s is shadowed by dictionary %s", id, d.ID, prev.Dictionary.ID),
					id)
				s.reg.logger.Warn("shadowed key id",
					slog.String("org_id", s.orgID),
					slog.String("key_id", id),
					slog.String("dictionary_id", d.ID),
					slog.String("winner", prev.Dictionary.ID))

				continue
			}

			s.index[id] = Ref{Key: e.Key, Dictionary: d, Builtin: i < builtins}
			s.order = append(s.order, id)
		}
	}
}
