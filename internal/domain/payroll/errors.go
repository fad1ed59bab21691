package payroll

import (
	"errors"
	"fmt"
)

var ErrInvalidRequest = errors.New("invalid payroll request")

// BatchError identifies the employee whose calculation failed during a
// batch preview. The batch is all-or-nothing, so one of these aborts
// the whole preview.
type BatchError struct {
	EmployeeID string
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("employee %s: %v", e.EmployeeID, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
