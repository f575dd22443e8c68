package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Level: level, Component: ComponentApp, Output: buf})
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.out {
			t.Fatalf("ParseLevel(%q) = %v, want %v", c.in, got, c.out)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf, slog.LevelDebug).WithComponent(ComponentStorage)

	l.Info("opened", "path", "/tmp/x.db")

	out := buf.String()
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "path=/tmp/x.db") {
		t.Fatalf("unexpected log line: %s", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component logged more than once: %s", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestFieldsWithExpense(t *testing.T) {
	e := core.Expense{ID: 3, Description: "Lunch", Amount: decimal.RequireFromString("12.50"), Category: core.Food, Date: "2025-09-10"}
	f := NewFields().WithExpense(e).WithError(nil)

	if f[FieldExpenseID] != int64(3) || f[FieldAmount] != "12.5" || f[FieldCategory] != "Food" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if _, ok := f[FieldError]; ok {
		t.Fatal("nil error must not be recorded")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice length mismatch")
	}
}

func TestMiddlewareAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf, slog.LevelInfo)

	var got *Logger
	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = FromContext(r.Context())
			got.Info("inside")
		})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("request id not propagated: %s", buf.String())
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("unexpected default logger: %+v", l)
	}
}

func TestLogValidationFailed(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelInfo))

	_, err := core.Form{Description: "Lunch", Amount: "-1", Category: "Food", Date: "2025-09-10"}.Validate()
	sl.LogValidationFailed(context.Background(), err)
	sl.LogError(context.Background(), "boom", errors.New("disk full"), ComponentStorage, OpCreate, nil)

	out := buf.String()
	if !strings.Contains(out, "field=amount") || !strings.Contains(out, "level=WARN") {
		t.Fatalf("unexpected validation log: %s", out)
	}
	if !strings.Contains(out, `error="disk full"`) || !strings.Contains(out, "component=storage") {
		t.Fatalf("unexpected error log: %s", out)
	}
}

func TestLogHTTPEndLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{200, "level=INFO"},
		{404, "level=WARN"},
		{503, "level=ERROR"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentHTTP))
		r := httptest.NewRequest(http.MethodGet, "/ui/expenses", nil)

		sl.LogHTTPStart(context.Background(), r, "1.2.3.4")
		sl.LogHTTPEnd(context.Background(), r, c.status, 3, "1.2.3.4")

		out := buf.String()
		if strings.Contains(out, "HTTP request started") {
			t.Errorf("start line should be debug only: %s", out)
		}
		if !strings.Contains(out, c.level) || strings.Count(out, "component=http") != 1 {
			t.Errorf("status %d: unexpected log %s", c.status, out)
		}
	}
}
