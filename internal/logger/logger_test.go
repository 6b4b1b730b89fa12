package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCommonFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	WithCommonFields(base, " claude ", "").Info("generated")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[FieldProvider] != "claude" {
		t.Errorf("expected provider field %q, got %v", "claude", fields[FieldProvider])
	}
	if _, ok := fields[FieldModel]; ok {
		t.Error("empty model should not be attached")
	}
}

func TestWithCommonFieldsNilLogger(t *testing.T) {
	if l := WithCommonFields(nil, "", ""); l == nil {
		t.Fatal("expected a no-op logger for nil input")
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		limit    int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"zero limit", "hello", 0, ""},
		{"multibyte", "héllo wörld", 4, "héll..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.in, tt.limit); got != tt.expected {
				t.Errorf("TruncateForLog(%q, %d) = %q, expected %q", tt.in, tt.limit, got, tt.expected)
			}
		})
	}
}
