package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"keyspace/internal/dictionary"
)

var (
	// ErrReadOnly is returned when an import would replace a built-in.
	ErrReadOnly = errors.New("built-in dictionary is read-only")
	// ErrNoOrg is returned when a scope without an organization is mutated.
	ErrNoOrg = errors.New("organization id is required")
	// ErrNotFound is returned when a dictionary id is unknown to the scope.
	ErrNotFound = errors.New("dictionary not found")
)

// Ref is a resolved key together with the dictionary that owns it.
type Ref struct {
	Key        *dictionary.Key
	Dictionary *dictionary.Dictionary
	// Builtin is true when the owning dictionary is a built-in.
	Builtin bool
}

// Resolver resolves key ids. *Scope implements it.
type Resolver interface {
	GetKey(keyID string) (Ref, bool)
}

// Lister enumerates every resolvable key. *Scope implements it.
type Lister interface {
	Keys() []Ref
}

// Registry holds the built-in dictionaries and the import store.
type Registry struct {
	builtins []*dictionary.Dictionary
	store    Store
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for load and merge diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a registry. Built-ins keep the given order and must have
// distinct dictionary ids. A nil store behaves as an empty MemoryStore.
func New(store Store, builtins []*dictionary.Dictionary, opts ...Option) (*Registry, error) {
	seen := map[string]struct{}{}

	for _, d := range builtins {
		if d == nil {
			return nil, errors.New("nil built-in dictionary")
		}

		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("duplicate built-in dictionary %q", d.ID)
		}

		seen[d.ID] = struct{}{}
	}

	if store == nil {
		store = NewMemoryStore()
	}

	r := &Registry{
		builtins: slices.Clone(builtins),
		store:    store,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = resolveLogger(r.logger)

	return r, nil
}

// Builtins returns the built-in dictionaries in declaration order.
func (r *Registry) Builtins() []*dictionary.Dictionary {
	return slices.Clone(r.builtins)
}

// ListDictionaries returns built-ins followed by orgID's imports.
func (r *Registry) ListDictionaries(ctx context.Context, orgID string) ([]*dictionary.Dictionary, error) {
	s, err := r.Scope(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return s.ListDictionaries(), nil
}

// Scope loads orgID's imports and returns the merged view. An empty orgID
// yields a read-only scope over the built-ins.
//
// Persisted imports are re-validated; an import that no longer passes the
// contract is skipped and reported as an error diagnostic on the scope.
func (r *Registry) Scope(ctx context.Context, orgID string) (*Scope, error) {
	s := &Scope{
		orgID: strings.TrimSpace(orgID),
		reg:   r,
	}

	if s.orgID != "" {
		imports, err := r.loadImports(ctx, s.orgID)
		if err != nil {
			return nil, err
		}

		s.setImports(imports)
	}

	s.rebuild()

	return s, nil
}

// stored is one persisted import. dict is nil when raw no longer passes the
// contract; raw is still written back so nothing is lost on save.
type stored struct {
	raw  *dictionary.RawDictionary
	dict *dictionary.Dictionary
	err  error
}

func (st stored) id() string {
	if st.dict != nil {
		return st.dict.ID
	}

	return strings.TrimSpace(st.raw.DictionaryID)
}

// loadImports reads and re-validates orgID's imports in import order.
func (r *Registry) loadImports(ctx context.Context, orgID string) ([]stored, error) {
	data, ok, err := r.store.Get(ctx, StorageKey(orgID))
	if err != nil {
		return nil, fmt.Errorf("load imports for %s: %w", orgID, err)
	}

	if !ok || len(data) == 0 {
		return nil, nil
	}

	var raws []*dictionary.RawDictionary

	err = json.Unmarshal(data, &raws)
	if err != nil {
		return nil, fmt.Errorf("decode imports for %s: %w", orgID, err)
	}

	out := make([]stored, 0, len(raws))

	for _, raw := range raws {
		if raw == nil {
			continue
		}

		d, err := dictionary.Validate(raw)
		out = append(out, stored{raw: raw, dict: d, err: err})
	}

	return out, nil
}

func (r *Registry) saveImports(ctx context.Context, orgID string, imports []stored) error {
	raws := make([]*dictionary.RawDictionary, len(imports))
	for i, st := range imports {
		raws[i] = st.raw
	}

	data, err := json.Marshal(raws)
	if err != nil {
		return fmt.Errorf("encode imports for %s: %w", orgID, err)
	}

	err = r.store.Set(ctx, StorageKey(orgID), data)
	if err != nil {
		return fmt.Errorf("save imports for %s: %w", orgID, err)
	}

	return nil
}

func (r *Registry) isBuiltin(dictID string) bool {
	return slices.ContainsFunc(r.builtins, func(d *dictionary.Dictionary) bool {
		return d.ID == dictID
	})
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}

	return logger
}
