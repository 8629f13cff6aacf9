// Package apperr defines the error taxonomy shared by all request handlers.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrInvalidID marks a malformed process identifier, detected before any
	// store access.
	ErrInvalidID = errors.New("invalid ad_process_id")

	// ErrNotFound marks a well-formed identifier with no matching document.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest marks missing required input or an unmet step precondition.
	ErrBadRequest = errors.New("bad request")

	// ErrUpstream marks a failed call to an external service (network, auth,
	// non-2xx status).
	ErrUpstream = errors.New("upstream service error")

	// ErrUploadFailed marks a file decode or write failure during upload.
	ErrUploadFailed = errors.New("upload failed")
)

// FormatError reports that an external service returned content that could not
// be parsed as JSON after code-fence stripping. Raw carries the upstream text
// for diagnosis.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("response is not valid JSON: %s", e.Raw)
}

func (e *FormatError) Unwrap() error { return e.Err }

// HTTPStatus maps an error to the HTTP status code it should surface with.
func HTTPStatus(err error) int {
	var fe *FormatError
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &fe), errors.Is(err, ErrUpstream), errors.Is(err, ErrUploadFailed):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes the error as a {"detail": ...} body with the mapped status.
func Respond(c *fiber.Ctx, err error) error {
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{"detail": err.Error()})
}
