package core

import (
	"strings"
	"time"
)

// Form holds the raw, editable values of the new-expense form.
type Form struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// NewForm returns a form with default values for the given day.
func NewForm(now time.Time) Form {
	var f Form
	f.Reset(now)
	return f
}

// Reset restores the defaults. Callers reset only after a successful submit
// so the user can correct rejected input.
func (f *Form) Reset(now time.Time) {
	f.Description = ""
	f.Amount = ""
	f.Category = string(Food)
	f.Date = Today(now)
}

// Validate checks the raw values and returns the normalized payload.
// Description is trimmed, amount is parsed; category and date pass through.
// It never assigns an ID.
func (f Form) Validate() (Draft, error) {
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return Draft{}, &ValidationError{Field: FieldDescription, Err: ErrEmptyDescription}
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Draft{}, &ValidationError{Field: FieldAmount, Err: err}
	}

	date := strings.TrimSpace(f.Date)
	if _, err := ParseDate(date); err != nil {
		return Draft{}, &ValidationError{Field: FieldDate, Err: err}
	}

	category, err := ParseCategory(f.Category)
	if err != nil {
		return Draft{}, &ValidationError{Field: FieldCategory, Err: err}
	}

	return Draft{
		Description: desc,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}
