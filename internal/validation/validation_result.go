package validation

import "out-of-office/internal/shared/apperror"

// Result is the outcome of a gate check. Errors lists every failed field;
// it is empty exactly when Valid is true.
type Result struct {
	Valid  bool
	Errors []apperror.FieldError
}

func newResult(errs []apperror.FieldError) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Err converts an invalid result into a VALIDATION_ERROR.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return apperror.Validation(r.Errors)
}
