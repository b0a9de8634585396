package match

import (
	"slices"
	"strings"
)

// Default thresholds for suggestions.
const (
	// DefaultMinScore is the similarity a candidate needs to be suggested.
	DefaultMinScore = 0.6
	// DefaultLimit caps the number of suggestions.
	DefaultLimit = 3
)

// Entry is a suggestible name plus aliases scored alongside it.
type Entry struct {
	ID      string
	Aliases []string
}

// Candidate is a scored Entry.
type Candidate struct {
	ID string
	// MatchedOn is the ID or alias that produced Score.
	MatchedOn string
	Score     float64
}

// CandidateList is sorted by score descending, then by id.
type CandidateList []Candidate

// Rank scores every entry against query and sorts the result. An entry's
// score is the best of its id and aliases.
func Rank(query string, entries []Entry) CandidateList {
	q := NormalizeIdent(query)
	out := make(CandidateList, 0, len(entries))

	for _, e := range entries {
		best := Candidate{ID: e.ID, MatchedOn: e.ID, Score: Similarity(q, NormalizeIdent(e.ID))}

		for _, a := range e.Aliases {
			if a == "" {
				continue
			}

			if s := Similarity(q, NormalizeIdent(a)); s > best.Score {
				best.Score = s
				best.MatchedOn = a
			}
		}

		out = append(out, best)
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}

		return strings.Compare(a.ID, b.ID)
	})

	return out
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold keeps candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IDs lists candidate ids in order.
func (c CandidateList) IDs() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.ID
	}

	return out
}

// Suggest returns up to DefaultLimit ids scoring DefaultMinScore or better.
// An exact match of the query is never suggested.
func Suggest(query string, entries []Entry) []string {
	var out []string

	for _, cand := range Rank(query, entries).AboveThreshold(DefaultMinScore) {
		if cand.ID == query {
			continue
		}

		out = append(out, cand.ID)
		if len(out) == DefaultLimit {
			break
		}
	}

	return out
}

// Names wraps plain names as entries without aliases.
func Names(names ...string) []Entry {
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{ID: n}
	}

	return out
}
