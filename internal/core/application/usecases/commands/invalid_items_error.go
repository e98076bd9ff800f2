package commands

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ItemError is the validation failure of one item of a bulk request.
type ItemError struct {
	ID  int64
	Err error
}

// InvalidItemsError lists every rejected item of a bulk request. Nothing of
// the request is applied when it is returned.
type InvalidItemsError struct {
	ParamName string
	Items     []ItemError
}

func (e *InvalidItemsError) Error() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = fmt.Sprintf("%d: %v", item.ID, item.Err)
	}
	return fmt.Sprintf("%s: %s [%s]", errs.ErrValueIsInvalid, e.ParamName, strings.Join(parts, "; "))
}

func (e *InvalidItemsError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// IDs returns the ids of the rejected items in request order.
func (e *InvalidItemsError) IDs() []int64 {
	ids := make([]int64, len(e.Items))
	for i, item := range e.Items {
		ids[i] = item.ID
	}
	return ids
}

// collectItemErrors builds an InvalidItemsError, or returns nil when items is empty.
func collectItemErrors(paramName string, items []ItemError) error {
	if len(items) == 0 {
		return nil
	}
	return &InvalidItemsError{ParamName: paramName, Items: items}
}
