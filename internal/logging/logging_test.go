package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

func TestLogLevels(t *testing.T) {
	out := captureLogOutput(func() {
		Debug("debug message", "k", "v")
		Info("info message")
		Warn("warn message")
		Error("error message")
	})

	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestCitationTest(t *testing.T) {
	out := captureLogOutput(func() {
		CitationTest("tlg0012.tlg001.xml", true, 2)
	})

	if !strings.Contains(out, "citation_test") {
		t.Error("missing citation_test event")
	}
	if !strings.Contains(out, "tlg0012.tlg001.xml") {
		t.Error("missing filename field")
	}
	if !strings.Contains(out, `"levels":2`) {
		t.Error("missing levels field")
	}
}

func TestDocumentSkipped(t *testing.T) {
	out := captureLogOutput(func() {
		DocumentSkipped("greekLit-tlg0012", "no online element")
	})

	if !strings.Contains(out, "document_skipped") {
		t.Error("missing document_skipped event")
	}
	if !strings.Contains(out, "no online element") {
		t.Error("missing reason field")
	}
}

func TestInventoryLoaded(t *testing.T) {
	out := captureLogOutput(func() {
		InventoryLoaded(1, 2, 3)
	})

	if !strings.Contains(out, "inventory_loaded") {
		t.Error("missing inventory_loaded event")
	}
	if !strings.Contains(out, `"works":2`) {
		t.Error("missing works field")
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
}
