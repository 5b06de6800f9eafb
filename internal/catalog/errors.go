package catalog

import (
	"errors"
	"fmt"
	"strings"

	appErrors "attrpicker/internal/errors"
)

// RESTConflictCode is the error code a WooCommerce store answers with when
// an attribute cannot be created, typically because the slug is taken.
const RESTConflictCode = "woocommerce_rest_cannot_create"

var (
	// ErrEmptyName rejects blank attribute names before any I/O.
	ErrEmptyName = errors.New("catalog: attribute name is empty")
)

// RESTError is the JSON error body of the store API.
type RESTError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e RESTError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("store api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("store api %d %s", e.Status, e.Code)
}

func classifyRESTError(err RESTError) error {
	if err.Code == RESTConflictCode {
		return appErrors.New(appErrors.CodeCreateConflict, err.Message, err)
	}
	if err.Status == 404 {
		return appErrors.New(appErrors.CodeNotFound, "store endpoint not found", err)
	}
	return appErrors.New(appErrors.CodeCreateFailed, err.Error(), err)
}

func conflictError(slug string, err error) error {
	msg := fmt.Sprintf("Slug %q is already in use. Change it, please.", slug)
	return appErrors.New(appErrors.CodeCreateConflict, msg, err)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
