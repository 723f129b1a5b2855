package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func captureExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	oldErr, oldExit := stderr, exitFunc
	stderr = &buf
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { stderr, exitFunc = oldErr, oldExit })
	return &buf, &code
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("database locked"), "Error: database locked"},
		{
			"hinted error",
			WithHint(errors.New("database not initialized"), "run `beastmode init` first"),
			"Error: database not initialized\nHint: run `beastmode init` first",
		},
		{
			"hint survives wrapping",
			fmt.Errorf("load: %w", WithHint(errors.New("missing"), "check --db")),
			"Error: load: missing\nHint: check --db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWithHintNil(t *testing.T) {
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should return nil")
	}
}

func TestWithHintUnwraps(t *testing.T) {
	base := errors.New("base")
	if !errors.Is(WithHint(base, "x"), base) {
		t.Error("hinted error should unwrap to its cause")
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("session %q not found", "brunch"); got != `Error: session "brunch" not found` {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestFatal(t *testing.T) {
	buf, code := captureExit(t)
	Fatal(errors.New("test error"))
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if !strings.Contains(buf.String(), "Error: test error") {
		t.Errorf("stderr = %q", buf.String())
	}
}

func TestFatalNil(t *testing.T) {
	buf, code := captureExit(t)
	Fatal(nil)
	if *code != -1 || buf.Len() != 0 {
		t.Errorf("Fatal(nil) should do nothing, got code %d output %q", *code, buf.String())
	}
}

func TestFatalf(t *testing.T) {
	buf, code := captureExit(t)
	Fatalf("connection to %s:%d failed", "localhost", 5432)
	if *code != 1 || !strings.Contains(buf.String(), "Error: connection to localhost:5432 failed") {
		t.Errorf("unexpected Fatalf result: code %d, %q", *code, buf.String())
	}
}
