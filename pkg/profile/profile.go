package profile

import (
	"strings"

	"github.com/formweave/aster/pkg/models"
)

// Tree is the read-only nested profile data as decoded from JSON: maps of
// maps with string or array-of-string leaves. The engine never mutates or
// re-serializes it; ownership stays with the encrypted-storage collaborator.
type Tree map[string]any

// Resolve walks the dotted path through the tree and returns the leaf as a
// Value. The second return is false when any segment is missing, a non-leaf
// segment is not an object, or the leaf is not a string or array of strings.
func (t Tree) Resolve(path models.ProfilePath) (Value, bool) {
	if t == nil {
		return Value{}, false
	}

	segments := strings.Split(string(path), ".")
	var current any = map[string]any(t)

	for i, segment := range segments {
		obj, ok := asObject(current)
		if !ok {
			return Value{}, false
		}
		next, ok := obj[segment]
		if !ok {
			return Value{}, false
		}

		if i == len(segments)-1 {
			return asLeaf(next)
		}
		current = next
	}

	return Value{}, false
}

// asObject coerces an intermediate node to a string-keyed map.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Tree:
		return m, true
	default:
		return nil, false
	}
}

// asLeaf coerces a terminal node to a Value. Arrays with non-string elements
// and any other leaf types are treated as unresolvable rather than an error;
// one malformed leaf must never block matching of the rest of the profile.
func asLeaf(v any) (Value, bool) {
	switch leaf := v.(type) {
	case string:
		return NewScalar(leaf), true
	case []string:
		return NewList(leaf), true
	case []any:
		items := make([]string, 0, len(leaf))
		for _, item := range leaf {
			s, ok := item.(string)
			if !ok {
				return Value{}, false
			}
			items = append(items, s)
		}
		return NewList(items), true
	default:
		return Value{}, false
	}
}
