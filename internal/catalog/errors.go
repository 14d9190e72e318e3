package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound = errors.New("catalog: product not found")
	ErrHandleRequired  = errors.New("catalog: product handle is required")
	ErrTitleRequired   = errors.New("catalog: product title is required")
)

// ProductNotFoundError reports a missing product lookup by handle.
type ProductNotFoundError struct {
	Handle string
}

func (e *ProductNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Handle) == "" {
		return ErrProductNotFound.Error()
	}
	return fmt.Sprintf("%s: handle=%s", ErrProductNotFound.Error(), e.Handle)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}
