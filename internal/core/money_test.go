package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		err error
	}{
		{"1", "1", nil},
		{"12.50", "12.5", nil},
		{" 2.50 ", "2.5", nil},
		{"0.01", "0.01", nil},
		{"1.005", "1.005", nil}, // no rounding at parse time
		{"", "", ErrMissingAmount},
		{"   ", "", ErrMissingAmount},
		{"abc", "", ErrInvalidAmount},
		{"12abc", "", ErrInvalidAmount},
		{"1.2.3", "", ErrInvalidAmount},
		{"0", "", ErrNonPositiveAmount},
		{"0.00", "", ErrNonPositiveAmount},
		{"-5", "", ErrNonPositiveAmount},
		{"+5", "5", nil},
		{".5", "0.5", nil},
		{"999999999999.999999", "999999999999.999999", nil},
		{"000000000000001", "1", nil},
		{"1e5", "", ErrInvalidAmount},
		{"1e2000000000", "", ErrInvalidAmount},
		{"1E-3", "", ErrInvalidAmount},
		{"5.", "", ErrInvalidAmount},
		{"-", "", ErrInvalidAmount},
		{"0x10", "", ErrInvalidAmount},
		{"1 000", "", ErrInvalidAmount},
		{"1000000000000", "", ErrAmountTooLarge},
		{"1.0000001", "", ErrAmountTooLarge},
		{"99999999999999999999999999999999999999", "", ErrAmountTooLarge},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
			}
			continue
		}
		if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"0", "$0.00"},
		{"10", "$10.00"},
		{"12.5", "$12.50"},
		{"0.005", "$0.01"},
		{"1234.5", "$1,234.50"},
		{"-1234.5", "-$1,234.50"},
		{"999999999999.999999", "$1,000,000,000,000.00"},
		{"9007199254740993.01", "$9,007,199,254,740,993.01"},
		{"12345678901234567.89", "$12,345,678,901,234,567.89"},
		{"123456789012345678901234.5", "$123,456,789,012,345,678,901,234.50"},
	}
	for _, tc := range cases {
		if got := FormatUSD(decimal.RequireFromString(tc.in)); got != tc.out {
			t.Fatalf("%s expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestAmountInBounds(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"12.5", true},
		{"999999999999", true},
		{"1000000000000", false},
		{"0.000001", true},
		{"0.0000001", false},
		{"12.5000000000", true},
		{"1e11", true},
		{"1e12", false},
		{"1e2000000000", false},
		{"1e-2000000000", false},
	}
	for _, tc := range cases {
		if got := amountInBounds(decimal.RequireFromString(tc.in)); got != tc.ok {
			t.Fatalf("%s expected %v, got %v", tc.in, tc.ok, got)
		}
	}
}

func TestParseAndFormatDate(t *testing.T) {
	if _, err := ParseDate(""); !errors.Is(err, ErrMissingDate) {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
	if _, err := ParseDate("2025-13-40"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if got := FormatDate("2025-09-10"); got != "Sep 10, 2025" {
		t.Fatalf("unexpected display date %q", got)
	}
	if got := FormatDate("2025-09-10T08:30:00Z"); got != "Sep 10, 2025" {
		t.Fatalf("unexpected display date for timestamp %q", got)
	}
	if got := FormatDate("someday"); got != "someday" {
		t.Fatalf("unparsable dates must be shown raw, got %q", got)
	}
	if got := Today(time.Date(2025, 9, 3, 23, 0, 0, 0, time.UTC)); got != "2025-09-03" {
		t.Fatalf("unexpected today %q", got)
	}
}
