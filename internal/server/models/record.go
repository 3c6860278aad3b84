// Package models defines the records served by the admin API.
package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// Record is a value type keyed by an integer id.
type Record[T any] interface {
	GetID() int
	WithID(id int) T
}

// MergeJSON shallow-merges a JSON object onto current. Keys present in body
// overwrite fields, absent keys keep their values and unknown keys are
// ignored. The id of current always survives.
func MergeJSON[T Record[T]](current T, body []byte) (T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return current, common.NewError(common.ErrorValidation, "request body must be a JSON object")
	}

	merged := current
	if err := json.Unmarshal(body, &merged); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return current, common.NewError(common.ErrorValidation,
				fmt.Sprintf("field %q must be %s", typeErr.Field, typeErr.Type))
		}
		return current, common.NewError(common.ErrorValidation, "invalid request body")
	}

	return merged.WithID(current.GetID()), nil
}
