package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validForm() Form {
	return Form{Description: "Lunch", Amount: "12.50", Category: "Food", Date: "2025-09-10"}
}

func TestFormValidateAccepts(t *testing.T) {
	d, err := validForm().Validate()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Description != "Lunch" || !d.Amount.Equal(decimal.RequireFromString("12.5")) || d.Category != Food || d.Date != "2025-09-10" {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestFormValidateNormalizes(t *testing.T) {
	f := Form{Description: "  Bus ticket  ", Amount: " 2.75 ", Category: "Transportation", Date: "2025-01-31"}
	d, err := f.Validate()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Description != "Bus ticket" {
		t.Fatalf("description not trimmed: %q", d.Description)
	}
	if !d.Amount.Equal(decimal.RequireFromString("2.75")) {
		t.Fatalf("unexpected amount %s", d.Amount)
	}
}

func TestFormValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Form)
		field string
		err   error
	}{
		{"empty description", func(f *Form) { f.Description = "" }, FieldDescription, ErrEmptyDescription},
		{"blank description", func(f *Form) { f.Description = "   " }, FieldDescription, ErrEmptyDescription},
		{"empty amount", func(f *Form) { f.Amount = "" }, FieldAmount, ErrMissingAmount},
		{"zero amount", func(f *Form) { f.Amount = "0" }, FieldAmount, ErrNonPositiveAmount},
		{"negative amount", func(f *Form) { f.Amount = "-5" }, FieldAmount, ErrNonPositiveAmount},
		{"non-numeric amount", func(f *Form) { f.Amount = "ten" }, FieldAmount, ErrInvalidAmount},
		{"exponent amount", func(f *Form) { f.Amount = "1e2000000000" }, FieldAmount, ErrInvalidAmount},
		{"huge amount", func(f *Form) { f.Amount = "12345678901234567890" }, FieldAmount, ErrAmountTooLarge},
		{"missing date", func(f *Form) { f.Date = "" }, FieldDate, ErrMissingDate},
		{"invalid date", func(f *Form) { f.Date = "10/09/2025" }, FieldDate, ErrInvalidDate},
		{"unknown category", func(f *Form) { f.Category = "Foodd" }, FieldCategory, ErrInvalidCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.edit(&f)
			before := f
			_, err := f.Validate()
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if f != before {
				t.Fatalf("validation must not modify the form")
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrEmptyDescription, "Please fill in all required fields"},
		{ErrMissingAmount, "Please fill in all required fields"},
		{ErrMissingDate, "Please fill in all required fields"},
		{ErrNonPositiveAmount, "Amount must be greater than 0"},
		{ErrAmountTooLarge, "Amount has too many digits"},
	}
	for _, tc := range cases {
		ve := &ValidationError{Field: "x", Err: tc.err}
		if got := ve.Message(); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.err, tc.want, got)
		}
	}
}

func TestFormReset(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	f := Form{Description: "x", Amount: "3", Category: "Other", Date: "2024-01-01"}
	f.Reset(now)
	want := Form{Description: "", Amount: "", Category: "Food", Date: "2025-09-10"}
	if f != want {
		t.Fatalf("expected %+v, got %+v", want, f)
	}
	if NewForm(now) != want {
		t.Fatalf("NewForm should return the defaults")
	}
}
