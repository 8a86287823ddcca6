package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single normalized shape every backend failure is reduced to.
// Higher layers branch on Status; they never see transport-level detail.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// genericMessage is used when the backend gave no usable message.
const genericMessage = "something went wrong, please try again"

// IsUnauthorized reports whether err is a normalized 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a normalized 404. Views render these
// inline as a "not found" state rather than an error banner.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
