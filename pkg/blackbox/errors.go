package blackbox

import (
	"fmt"
	"strings"
)

// ModelNotFoundError is returned when a chat names a model that does not
// exist. The message lists every valid friendly name.
type ModelNotFoundError struct {
	Name string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("invalid model %q, available models: %s", e.Name, strings.Join(modelNames, ", "))
}

// APIRequestError is returned when a request against one of the upstream
// endpoints fails. StatusCode is set when the upstream replied with a non-2xx
// status; Err carries the underlying cause when one exists.
type APIRequestError struct {
	Op         string // Endpoint name: "chat" or "sources".
	StatusCode int
	Err        error
}

func (e *APIRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status code: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *APIRequestError) Unwrap() error { return e.Err }
