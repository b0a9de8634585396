package registry

import (
	"keyspace/internal/match"
)

// SuggestKeys returns the key ids closest to keyID, matched on id and alias.
// It returns nil when res cannot enumerate its keys.
func SuggestKeys(res Resolver, keyID string) []string {
	lister, ok := res.(Lister)
	if !ok {
		return nil
	}

	refs := lister.Keys()
	entries := make([]match.Entry, len(refs))

	for i, ref := range refs {
		entries[i] = match.Entry{ID: ref.Key.ID, Aliases: []string{ref.Key.Alias}}
	}

	return match.Suggest(keyID, entries)
}
