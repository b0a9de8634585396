package mapping

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"keyspace/value"
)

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// Segments rewrites bracket indices and splits path on dots.
// "players[0].name" yields ["players", "0", "name"].
func Segments(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(indexPattern.ReplaceAllString(path, ".$1"), ".")
}

// ValidatePath checks path syntax: no empty segments and no brackets other
// than numeric indices.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("empty path")
	}

	for i, seg := range Segments(path) {
		if seg == "" {
			return fmt.Errorf("invalid path %q: empty segment %d", path, i)
		}

		if strings.ContainsAny(seg, "[]") {
			return fmt.Errorf("invalid path %q: malformed index in %q", path, seg)
		}
	}

	return nil
}

// ResolvePath walks v along path. Objects are indexed by field name and
// arrays by numeric segment. It returns value.Absent at the first missing or
// null intermediate segment; a null at the final segment is returned as
// null.
func ResolvePath(v value.Value, path string) value.Value {
	segs := Segments(path)
	if len(segs) == 0 {
		return value.Absent
	}

	cur := v

	for _, seg := range segs {
		switch cur.Kind() {
		case value.KindObject:
			cur = cur.Field(seg)
		case value.KindArray:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 {
				return value.Absent
			}

			cur = cur.Index(i)
		default:
			return value.Absent
		}
	}

	return cur
}

// ResolveJSON is ResolvePath over raw JSON, without decoding the whole
// document. Invalid JSON resolves to value.Absent.
func ResolveJSON(raw []byte, path string) value.Value {
	p := JSONPath(path)
	if p == "" {
		return value.Absent
	}

	res := gjson.GetBytes(raw, p)
	if !res.Exists() {
		return value.Absent
	}

	v, err := value.FromAny(res.Value())
	if err != nil {
		return value.Absent
	}

	return v
}

// JSONPath converts path into a gjson/sjson path whose components are
// matched literally: bracket indices become segments and wildcard, modifier
// and query characters are escaped.
func JSONPath(path string) string {
	segs := Segments(path)
	for i, seg := range segs {
		segs[i] = escapeSegment(seg)
	}

	return strings.Join(segs, ".")
}

// jsonPathSpecials are the characters gjson and sjson give meaning to.
const jsonPathSpecials = `\.*?|#@!=<>%~:,()[]{}"`

func escapeSegment(seg string) string {
	if !strings.ContainsAny(seg, jsonPathSpecials) {
		return seg
	}

	var b strings.Builder

	for _, r := range seg {
		if strings.ContainsRune(jsonPathSpecials, r) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}
