package match

import (
	"keyspace/value"
)

// KindCompatibility is how well a value kind fits a declared key type.
type KindCompatibility int

const (
	// KindIncompatible means no built-in transform bridges the kinds.
	KindIncompatible KindCompatibility = iota
	// KindNeedsTransform means a transform such as "number" or "json" bridges them.
	KindNeedsTransform
	// KindIdentical means the value already has the declared kind.
	KindIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

func (c KindCompatibility) String() string {
	switch c {
	case KindIdentical:
		return VerdictIdentical
	case KindNeedsTransform:
		return VerdictNeedsTransform
	case KindIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// ScoreKindCompatibility scores a value of kind got against a key declared
// as want. Null and absent fit any declaration: they mean "no value".
func ScoreKindCompatibility(got, want value.Kind) KindCompatibility {
	switch {
	case got == want, got == value.KindNull, got == value.KindAbsent:
		return KindIdentical
	case want == value.KindString:
		// json, fixed(n) and pct all produce strings
		return KindNeedsTransform
	case want == value.KindNumber && (got == value.KindString || got == value.KindBool):
		return KindNeedsTransform
	}

	return KindIncompatible
}
