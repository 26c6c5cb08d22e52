package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func capturedLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:     slog.LevelDebug,
		Component: component,
		Handler:   slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	return logger, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"  Warn ", slog.LevelWarn},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_TagsComponent(t *testing.T) {
	logger, buf := capturedLogger(ComponentImport)

	logger.Info("Import complete", FieldRecords, 66)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid log record %q: %v", buf.String(), err)
	}
	if record[FieldComponent] != ComponentImport {
		t.Errorf("component = %v, want %s", record[FieldComponent], ComponentImport)
	}
	if record[FieldRecords] != float64(66) {
		t.Errorf("records = %v, want 66", record[FieldRecords])
	}
}

func TestLogger_WithComponent(t *testing.T) {
	logger, buf := capturedLogger(ComponentApp)
	backendLogger := logger.WithComponent(ComponentBackend)

	backendLogger.Error("store init failed", FieldError, "boom")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid log record %q: %v", buf.String(), err)
	}
	if record[FieldComponent] != ComponentBackend {
		t.Errorf("component = %v, want %s", record[FieldComponent], ComponentBackend)
	}
	if backendLogger.Component() != ComponentBackend {
		t.Errorf("Component() = %q, want %q", backendLogger.Component(), ComponentBackend)
	}
}
