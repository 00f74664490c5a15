package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Config{Level: "WARN", Output: &buf, Prefix: "formdialog"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "dialog", "Connect")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "dialog=Connect") {
		t.Fatalf("expected warn line with fields: %q", out)
	}
	if !strings.Contains(out, "formdialog") {
		t.Fatalf("expected prefix in %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	Discard().Error("nothing to see")
}
