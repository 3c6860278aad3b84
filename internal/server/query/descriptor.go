// Package query turns list request parameters into filtered, sorted and
// paginated slices of records.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// Order is the sort direction of a list read.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// Reserved query parameter names.
const (
	ParamID    = "id"
	ParamSort  = "_sort"
	ParamOrder = "_order"
	ParamStart = "_start"
	ParamEnd   = "_end"
)

// Descriptor is a parsed list request.
type Descriptor struct {
	// ID is set when the request asks for exactly one record.
	ID *int
	// IDs restricts a list read to the given ids.
	IDs     []int
	Filters map[string]string
	Sort    string
	Order   Order
	Start   int
	// End is nil when the request did not bound the slice.
	End *int
}

// Single reports whether the descriptor targets one record.
func (d Descriptor) Single() (int, bool) {
	if d.ID == nil {
		return 0, false
	}
	return *d.ID, true
}

// Parse reads a Descriptor from URL query values. Unknown parameters are
// ignored; malformed ids, sort fields and orders are validation errors.
func Parse[T any](values url.Values, schema Schema[T]) (Descriptor, error) {
	d := Descriptor{Order: Asc, Filters: map[string]string{}}

	if err := parseIDs(values[ParamID], &d); err != nil {
		return Descriptor{}, err
	}

	if sortField := values.Get(ParamSort); sortField != "" {
		if _, ok := schema.sortable(sortField); !ok {
			return Descriptor{}, common.NewError(common.ErrorValidation,
				fmt.Sprintf("cannot sort by %q", sortField))
		}
		d.Sort = sortField
	}

	if order := values.Get(ParamOrder); order != "" {
		switch Order(strings.ToUpper(order)) {
		case Asc:
			d.Order = Asc
		case Desc:
			d.Order = Desc
		default:
			return Descriptor{}, common.NewError(common.ErrorValidation,
				fmt.Sprintf("invalid sort order %q", order))
		}
	}

	if v, err := strconv.Atoi(values.Get(ParamStart)); err == nil && v > 0 {
		d.Start = v
	}

	if v, err := strconv.Atoi(values.Get(ParamEnd)); err == nil {
		d.End = &v
	}

	for key, vals := range values {
		if strings.HasPrefix(key, "_") || key == ParamID || len(vals) == 0 {
			continue
		}
		if _, ok := schema.filterable(key); ok {
			d.Filters[key] = vals[0]
		}
	}

	return d, nil
}

// parseIDs accepts id=1, id=1&id=2 and id=1,2. Only the first form selects a
// single record.
func parseIDs(raw []string, d *Descriptor) error {
	var parts []string
	for _, v := range raw {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) == 0 {
		return nil
	}

	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return common.NewError(common.ErrorValidation, fmt.Sprintf("invalid id %q", p))
		}
		ids = append(ids, id)
	}

	if len(raw) == 1 && !strings.Contains(raw[0], ",") {
		d.ID = &ids[0]
		return nil
	}
	d.IDs = ids
	return nil
}
