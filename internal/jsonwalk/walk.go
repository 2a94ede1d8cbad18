// Package jsonwalk enumerates the values of a decoded JSON document in a
// deterministic depth-first pre-order, yielding each value together with
// its position so callers can rewrite it in place. The enrichment driver
// collects positions, sends the values off for translation in one batch
// and then rewrites each position, so the order values are collected in
// must match the order results are attached in. Go randomizes map
// iteration, so object entries are visited in sorted key order, which
// makes the walk deterministic by construction.
package jsonwalk

import "sort"

// Visit is one visited position: the value found there plus enough
// context to rewrite it in place.
type Visit struct {
	// Value is the value that was at this position when it was visited.
	Value any

	// Key is the entry key when Container is a JSON object; empty for
	// array elements.
	Key string

	// Index is the element position when Container is a JSON array; -1
	// for object entries.
	Index int

	// Container is the enclosing map[string]any or []any.
	Container any
}

// Replace rewrites the visited position in place. The walk itself is not
// disturbed: positions already visited may be replaced freely, and the
// walker never descends into a replacement value.
func (v Visit) Replace(value any) {
	switch c := v.Container.(type) {
	case map[string]any:
		c[v.Key] = value
	case []any:
		c[v.Index] = value
	}
}

// Sibling returns another entry of the visited position's container, if
// the container is a JSON object and the entry exists.
func (v Visit) Sibling(key string) (any, bool) {
	m, ok := v.Container.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := m[key]
	return value, ok
}

// SelectFunc decides whether a position is reported to the caller. It
// controls emission only; the walk recurses into every array element and
// object entry regardless of what it returns.
type SelectFunc func(Visit) bool

// WalkFunc receives each selected position. Returning false stops the
// walk early.
type WalkFunc func(Visit) bool

// Walk traverses root depth-first. Array elements are visited in index
// order and object entries in sorted key order. A selected position is
// reported before the walk descends into its value (pre-order), so a
// selected object or array is reported and then still traversed.
//
// The root value itself is never reported: it has no container and so
// cannot be rewritten.
func Walk(root any, sel SelectFunc, fn WalkFunc) {
	walk(root, sel, fn)
}

func walk(v any, sel SelectFunc, fn WalkFunc) bool {
	switch c := v.(type) {
	case []any:
		for i, elem := range c {
			visit := Visit{Value: elem, Index: i, Container: c}
			if sel(visit) && !fn(visit) {
				return false
			}
			if !walk(elem, sel, fn) {
				return false
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			visit := Visit{Value: c[k], Key: k, Index: -1, Container: c}
			if sel(visit) && !fn(visit) {
				return false
			}
			if !walk(visit.Value, sel, fn) {
				return false
			}
		}
	}
	return true
}

// Collect returns every selected position in walk order.
func Collect(root any, sel SelectFunc) []Visit {
	var visits []Visit
	Walk(root, sel, func(v Visit) bool {
		visits = append(visits, v)
		return true
	})
	return visits
}
