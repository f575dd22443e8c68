package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Entertainment  Category = "Entertainment"
	Other          Category = "Other"
)

type (
	// Category is the closed set of expense classifications.
	Category string

	// Expense is a recorded expenditure. Values are immutable once created.
	Expense struct {
		ID          int64
		Description string
		Amount      decimal.Decimal
		Category    Category
		Date        string // YYYY-MM-DD as entered
	}

	// Draft is a validated expense that has not been assigned an ID yet.
	Draft struct {
		Description string
		Amount      decimal.Decimal
		Category    Category
		Date        string
	}
)

var (
	ErrEmptyDescription  = errors.New("description is required")
	ErrMissingAmount     = errors.New("amount is required")
	ErrInvalidAmount     = errors.New("amount is not a number")
	ErrNonPositiveAmount = errors.New("amount must be greater than 0")
	ErrAmountTooLarge    = errors.New("amount has too many digits")
	ErrMissingDate       = errors.New("date is required")
	ErrInvalidDate       = errors.New("date is not a calendar date")
	ErrInvalidCategory   = errors.New("unknown category")
)

var categories = []Category{Food, Transportation, Entertainment, Other}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case Food, Transportation, Entertainment, Other:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// WithID turns the draft into an Expense carrying the host-assigned id.
func (d Draft) WithID(id int64) Expense {
	return Expense{
		ID:          id,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    d.Category,
		Date:        d.Date,
	}
}

// Validate checks the invariants every stored expense must hold.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: FieldDescription, Err: ErrEmptyDescription}
	}
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: FieldAmount, Err: ErrNonPositiveAmount}
	}
	if !amountInBounds(e.Amount) {
		return &ValidationError{Field: FieldAmount, Err: ErrAmountTooLarge}
	}
	if !e.Category.IsValid() {
		return &ValidationError{Field: FieldCategory, Err: ErrInvalidCategory}
	}
	if _, err := ParseDate(e.Date); err != nil {
		return &ValidationError{Field: FieldDate, Err: err}
	}
	return nil
}
