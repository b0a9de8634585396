package dictionary

import (
	"strings"

	"golang.org/x/mod/semver"

	"keyspace/value"
)

// Validate checks raw against the dictionary contract and returns the
// normalized dictionary. Any failure is a *ContractViolation; the dictionary
// is rejected as a whole.
func Validate(raw *RawDictionary) (*Dictionary, error) {
	if raw == nil {
		return nil, violation("", "", "dictionary is nil")
	}

	id := strings.TrimSpace(raw.DictionaryID)
	if id == "" {
		return nil, violation("", "", "dictionaryId is required")
	}

	if !IsSemver(raw.Version) {
		return nil, violation(id, "", "version %q is not a semantic version", raw.Version)
	}

	if raw.Root == nil {
		return nil, violation(id, "", "root is required")
	}

	if raw.Root.Type != NodeTypeBranch {
		return nil, violation(id, "", "root must be of type %q, got %q", NodeTypeBranch, raw.Root.Type)
	}

	v := &validator{dictID: id, domain: raw.Domain, seenIDs: map[string]string{}}

	root, err := v.node(raw.Root, nil)
	if err != nil {
		return nil, err
	}

	dict := &Dictionary{
		ID:      id,
		Version: raw.Version,
		Domain:  raw.Domain,
		Root:    root,
	}

	if _, err := BuildPathIndex(dict); err != nil {
		return nil, err
	}

	return dict, nil
}

// IsSemver reports whether s is a semantic version, with or without the
// leading "v".
func IsSemver(s string) bool {
	if s == "" {
		return false
	}

	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}

	return semver.IsValid(s) && hasFullCore(s)
}

// hasFullCore rejects the "v1" and "v1.2" shorthands x/mod/semver accepts.
func hasFullCore(s string) bool {
	core := s
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}

	return strings.Count(core, ".") == 2
}

type validator struct {
	dictID  string
	domain  string
	seenIDs map[string]string // key id -> location
}

func (v *validator) node(raw *RawNode, crumbs []string) (*Node, error) {
	switch raw.Type {
	case NodeTypeBranch:
		return v.branch(raw, crumbs)
	case NodeTypeKey:
		return v.key(raw, crumbs)
	default:
		return nil, violation(v.dictID, location(crumbs), "unknown node type %q", raw.Type)
	}
}

func (v *validator) branch(raw *RawNode, crumbs []string) (*Node, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil, violation(v.dictID, location(crumbs), "branch node requires a name")
	}

	here := append(append([]string{}, crumbs...), name)
	out := &Node{Name: name, Children: make([]*Node, 0, len(raw.Children))}

	for i, child := range raw.Children {
		if child == nil {
			return nil, violation(v.dictID, location(here), "child %d is null", i)
		}

		n, err := v.node(child, here)
		if err != nil {
			return nil, err
		}

		out.Children = append(out.Children, n)
	}

	return out, nil
}

func (v *validator) key(raw *RawNode, crumbs []string) (*Node, error) {
	loc := location(crumbs)

	id := strings.TrimSpace(raw.KeyID)
	if id == "" {
		return nil, violation(v.dictID, loc, "key node requires keyId")
	}

	loc = loc + "/" + id

	if len(raw.Children) > 0 {
		return nil, violation(v.dictID, loc, "key node cannot have children")
	}

	if prev, dup := v.seenIDs[id]; dup {
		return nil, violation(v.dictID, loc, "duplicate keyId %q (first declared at %s)", id, prev)
	}

	v.seenIDs[id] = loc

	vt, ok := value.ParseKind(raw.ValueType)
	if !ok || vt == value.KindNull {
		return nil, violation(v.dictID, loc, "invalid valueType %q", raw.ValueType)
	}

	kind := KeyKind(raw.Kind)
	if !kind.IsValid() {
		return nil, violation(v.dictID, loc, "invalid kind %q (want %q or %q)", raw.Kind, KindState, KindEvent)
	}

	domain := raw.Domain
	if domain == "" {
		domain = v.domain
	}

	for i, h := range raw.ProviderHints {
		if strings.TrimSpace(h.Provider) == "" {
			return nil, violation(v.dictID, loc, "providerHints[%d] requires provider", i)
		}
	}

	return &Node{
		Name: raw.Alias,
		Key: &Key{
			ID:            id,
			Alias:         raw.Alias,
			ValueType:     vt,
			Domain:        domain,
			Kind:          kind,
			CanonicalPath: NormalizePath(raw.CanonicalPath, raw.Path),
			Scope:         raw.Scope,
			DataType:      raw.DataType,
			Tags:          raw.Tags,
			ProviderHints: raw.ProviderHints,
			Unit:          raw.Unit,
			Example:       raw.Example,
		},
	}, nil
}

// NormalizePath folds the legacy path into the canonical one. canonicalPath
// wins; an empty result means the key is unmapped.
func NormalizePath(canonicalPath, legacyPath *string) string {
	if canonicalPath != nil && strings.TrimSpace(*canonicalPath) != "" {
		return strings.TrimSpace(*canonicalPath)
	}

	if legacyPath != nil {
		return strings.TrimSpace(*legacyPath)
	}

	return ""
}

func location(crumbs []string) string {
	if len(crumbs) == 0 {
		return "root"
	}

	return strings.Join(crumbs, "/")
}
