package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"keyspace/internal/diagnostic"
	"keyspace/internal/dictionary"
	"keyspace/internal/mapping"
	"keyspace/internal/registry"
)

// Rejection names a dictionary that was not imported and why.
type Rejection struct {
	DictionaryID string `json:"dictionaryId"`
	Reason       string `json:"reason"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	Imported []string    `json:"imported"`
	Rejected []Rejection `json:"rejected"`
	// Diagnostics covers embedded mappings (checked against the updated
	// scope) and the sample snapshot.
	Diagnostics diagnostic.Diagnostics `json:"diagnostics"`
}

// Import validates each embedded dictionary independently and imports the
// valid ones into scope. Only a scope without an organization or a store
// failure aborts the import.
func Import(ctx context.Context, scope *registry.Scope, b *Bundle, logger *slog.Logger) (*ImportResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if scope.OrgID() == "" {
		return nil, registry.ErrNoOrg
	}

	res := &ImportResult{Imported: []string{}, Rejected: []Rejection{}}

	for i, raw := range b.Dictionaries {
		d, err := decodeDictionary(raw)
		if err == nil {
			err = scope.Import(ctx, d)
		}

		if err != nil {
			if !isRejection(err) {
				return res, fmt.Errorf("import dictionary %d: %w", i, err)
			}

			rej := Rejection{DictionaryID: dictionaryID(raw, i), Reason: err.Error()}
			res.Rejected = append(res.Rejected, rej)
			logger.Warn("rejected bundled dictionary",
				slog.String("org_id", scope.OrgID()),
				slog.String("dictionary_id", rej.DictionaryID),
				slog.String("reason", rej.Reason))

			continue
		}

		res.Imported = append(res.Imported, d.ID)
	}

	for _, spec := range b.Mappings {
		res.Diagnostics.Merge(*mapping.Validate(spec, scope, nil))
	}

	if b.SampleSnapshot != nil {
		if err := b.SampleSnapshot.Validate(); err != nil {
			res.Diagnostics.AddWarning("invalid_sample_snapshot", err.Error(), "sampleSnapshot")
		}
	}

	logger.Info("imported bundle",
		slog.String("org_id", scope.OrgID()),
		slog.String("bundle_org_id", b.OrgID),
		slog.Int("imported", len(res.Imported)),
		slog.Int("rejected", len(res.Rejected)))

	return res, nil
}

func decodeDictionary(raw json.RawMessage) (*dictionary.Dictionary, error) {
	var rd dictionary.RawDictionary

	err := json.Unmarshal(raw, &rd)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed dictionary: %v", dictionary.ErrContractViolation, err)
	}

	return dictionary.Validate(&rd)
}

// isRejection separates per-dictionary failures from store failures.
func isRejection(err error) bool {
	return errors.Is(err, dictionary.ErrContractViolation) || errors.Is(err, registry.ErrReadOnly)
}

// dictionaryID reads the id even from a dictionary that failed to decode.
func dictionaryID(raw json.RawMessage, i int) string {
	if id := gjson.GetBytes(raw, "dictionaryId"); id.Type == gjson.String && id.Str != "" {
		return id.Str
	}

	return fmt.Sprintf("dictionaries[%d]", i)
}
