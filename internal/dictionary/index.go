package dictionary

// Flatten walks the dictionary depth-first in declaration order and returns
// every key with its breadcrumb of ancestor branch names (root first).
// The order is traversal order, not sorted.
func Flatten(d *Dictionary) []Entry {
	if d == nil || d.Root == nil {
		return nil
	}

	var out []Entry

	var walk func(n *Node, crumbs []string)

	walk = func(n *Node, crumbs []string) {
		if n.IsKey() {
			out = append(out, Entry{Key: n.Key, Breadcrumb: crumbs})
			return
		}

		here := append(append(make([]string, 0, len(crumbs)+1), crumbs...), n.Name)
		for _, c := range n.Children {
			walk(c, here)
		}
	}

	walk(d.Root, nil)

	return out
}

// BuildKeyIndex maps key id to key. A later duplicate id overwrites an
// earlier one; Validate rejects such dictionaries, so only hand-built trees
// can hit that case.
func BuildKeyIndex(d *Dictionary) map[string]*Key {
	entries := Flatten(d)
	index := make(map[string]*Key, len(entries))

	for _, e := range entries {
		index[e.Key.ID] = e.Key
	}

	return index
}

// BuildPathIndex maps canonical path to key id. It fails with a
// *ContractViolation naming the dictionary and the path the first time a
// canonical path repeats. Unmapped keys (empty path) are skipped.
func BuildPathIndex(d *Dictionary) (map[string]string, error) {
	entries := Flatten(d)
	index := make(map[string]string, len(entries))

	for _, e := range entries {
		p := e.Key.CanonicalPath
		if p == "" {
			continue
		}

		if prev, dup := index[p]; dup {
			return nil, violation(d.ID, "", "duplicate canonicalPath %q (keys %s and %s)", p, prev, e.Key.ID)
		}

		index[p] = e.Key.ID
	}

	return index, nil
}

// Keys returns the flattened keys without breadcrumbs.
func (d *Dictionary) Keys() []*Key {
	entries := Flatten(d)
	out := make([]*Key, len(entries))

	for i, e := range entries {
		out[i] = e.Key
	}

	return out
}
