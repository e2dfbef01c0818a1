package processor

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	errNullBody     = errors.New("response body is null")
	errTrailingData = errors.New("unexpected data after JSON value")
)

// TransportError reports a non-2xx answer from the digest service.
// Any error body is kept for logging; it is not a service message.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to process video (HTTP %d %s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is allows for error checking with errors.Is().
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}
