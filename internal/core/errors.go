package core

import "errors"

// Form field names, as used in HTML forms and in ValidationError.Field.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDate        = "date"
)

// ValidationError reports the first field of a form that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message is the notice shown to the user. Missing fields share one message.
func (e *ValidationError) Message() string {
	switch {
	case errors.Is(e.Err, ErrEmptyDescription),
		errors.Is(e.Err, ErrMissingAmount),
		errors.Is(e.Err, ErrMissingDate):
		return "Please fill in all required fields"
	case errors.Is(e.Err, ErrNonPositiveAmount):
		return "Amount must be greater than 0"
	case errors.Is(e.Err, ErrInvalidAmount):
		return "Amount must be a number"
	case errors.Is(e.Err, ErrAmountTooLarge):
		return "Amount has too many digits"
	case errors.Is(e.Err, ErrInvalidDate):
		return "Date must be a valid calendar date"
	case errors.Is(e.Err, ErrInvalidCategory):
		return "Please choose a category from the list"
	default:
		return e.Error()
	}
}

// AsValidationError unwraps err into a *ValidationError if it holds one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
