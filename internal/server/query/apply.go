package query

import (
	"fmt"
	"slices"
)

// Page is the result of a list read. Start and End echo the requested bounds
// and Total is the number of records that passed the filters.
type Page[T any] struct {
	Items []T
	Total int
	Start int
	End   int
}

// ContentRange formats the page for the Content-Range header.
func (p Page[T]) ContentRange(resource string) string {
	return fmt.Sprintf("%s %d-%d/%d", resource, p.Start, p.End, p.Total)
}

// Identified is a record with an integer id.
type Identified interface {
	GetID() int
}

// Apply filters, sorts and slices records. The input slice is not modified.
func Apply[T Identified](records []T, d Descriptor, schema Schema[T]) Page[T] {
	items := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(rec, d, schema) {
			items = append(items, rec)
		}
	}

	if f, ok := schema.sortable(d.Sort); ok {
		slices.SortStableFunc(items, func(a, b T) int {
			if d.Order == Desc {
				return f.Compare(b, a)
			}
			return f.Compare(a, b)
		})
	}

	total := len(items)
	end := total
	if d.End != nil {
		end = *d.End
	}

	lo := min(max(d.Start, 0), total)
	hi := min(max(end, lo), total)

	return Page[T]{
		Items: slices.Clone(items[lo:hi]),
		Total: total,
		Start: d.Start,
		End:   end,
	}
}

func matches[T Identified](rec T, d Descriptor, schema Schema[T]) bool {
	if len(d.IDs) > 0 && !slices.Contains(d.IDs, rec.GetID()) {
		return false
	}
	for key, want := range d.Filters {
		f, ok := schema.filterable(key)
		if !ok {
			continue
		}
		if f.Format(rec) != want {
			return false
		}
	}
	return true
}
