// Package id generates canonical key identifiers: 26-character,
// lexicographically sortable strings built from time-ordered UUIDs.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeyIDLength is the length of every generated key id.
const KeyIDLength = 26

// crockford is the Crockford base32 alphabet. Its characters are in ascending
// ASCII order, so encoded ids sort the same way as the underlying bytes.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var encoding = base32.NewEncoding(crockford).WithPadding(base32.NoPadding)

// NewKeyID returns a new sortable key id. Ids minted later sort after ids
// minted earlier (millisecond resolution, monotonic within a process).
func NewKeyID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return encoding.EncodeToString(u[:]), nil
}

// MustNewKeyID is NewKeyID for callers that treat entropy failure as fatal.
func MustNewKeyID() string {
	k, err := NewKeyID()
	if err != nil {
		panic(err)
	}

	return k
}

// IsKeyID reports whether s has the shape NewKeyID produces.
func IsKeyID(s string) bool {
	if len(s) != KeyIDLength {
		return false
	}

	for _, r := range s {
		if !strings.ContainsRune(crockford, r) {
			return false
		}
	}

	_, err := encoding.DecodeString(s)

	return err == nil
}
