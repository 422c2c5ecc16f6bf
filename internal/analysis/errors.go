package analysis

import (
	"errors"

	"github.com/sells-group/variant-cli/pkg/variantapi"
)

// ValidationError means the submitted rows contained no valid sample; no
// network call was made and the user can correct the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServiceError is a remote service or transport failure during an
// orchestration stage. Detail carries the service's human-readable message
// when one was provided.
type ServiceError struct {
	Detail string
	Err    error
}

func (e *ServiceError) Error() string {
	return e.Detail
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// genericFailure is shown when the service supplied no detail message.
const genericFailure = "Analysis failed. Please try again."

// newServiceError surfaces the service-provided detail verbatim, falling
// back to a generic message.
func newServiceError(err error) *ServiceError {
	var de *variantapi.DetailError
	if errors.As(err, &de) && de.Detail != "" {
		return &ServiceError{Detail: de.Detail, Err: err}
	}
	return &ServiceError{Detail: genericFailure, Err: err}
}
