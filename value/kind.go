package value

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the closed set of shapes a Value can take.
type Kind int

const (
	KindAbsent Kind = iota // absent
	KindNull               // null
	KindBool               // bool
	KindNumber             // number
	KindString             // string
	KindArray              // array
	KindObject             // object

	// KindTotal is the number of kinds defined above.
	KindTotal = int(iota)
)

// IsScalar reports whether the kind holds a single non-container value.
func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
}

// IsContainer reports whether the kind nests other values.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// ParseKind maps a declared dictionary value type onto a Kind.
// "boolean" is the dictionary spelling of KindBool.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "string":
		return KindString, true
	case "number":
		return KindNumber, true
	case "boolean", "bool":
		return KindBool, true
	case "object":
		return KindObject, true
	case "array":
		return KindArray, true
	case "null":
		return KindNull, true
	default:
		return KindAbsent, false
	}
}
