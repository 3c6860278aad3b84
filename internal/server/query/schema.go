package query

import (
	"cmp"
	"strconv"
)

// Field describes how one record attribute takes part in a query. A nil
// Compare makes the field unsortable, a nil Format makes it unfilterable.
type Field[T any] struct {
	Compare func(a, b T) int
	Format  func(T) string
}

// Schema lists the queryable fields of a resource by their wire name.
type Schema[T any] map[string]Field[T]

func (s Schema[T]) sortable(name string) (Field[T], bool) {
	f, ok := s[name]
	return f, ok && f.Compare != nil
}

func (s Schema[T]) filterable(name string) (Field[T], bool) {
	f, ok := s[name]
	return f, ok && f.Format != nil
}

// IntField builds a sortable, filterable field from an int accessor.
func IntField[T any](get func(T) int) Field[T] {
	return Field[T]{
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
		Format:  func(v T) string { return strconv.Itoa(get(v)) },
	}
}

// StringField builds a sortable, filterable field from a string accessor.
func StringField[T any](get func(T) string) Field[T] {
	return Field[T]{
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
		Format:  get,
	}
}
