package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/getmockd/mockswitch/pkg/messages"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		{"DEBUG", LevelDebug},
		{"WARNING", LevelWarn},
		{"Error", LevelError},
		{"dEbUg", LevelDebug},

		// Empty and unrecognized default to Info
		{"", LevelInfo},
		{"trace", LevelInfo},
		{"fatal", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}

	log.Warn("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestServiceAndComponentAttrs(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Output = &buf

	Component(New(cfg), "admin").Info("listening")

	rec := decodeRecord(t, &buf)
	if rec[KeyService] != ServiceName {
		t.Errorf("service = %v, want %s", rec[KeyService], ServiceName)
	}
	if rec[KeyComponent] != "admin" {
		t.Errorf("component = %v, want admin", rec[KeyComponent])
	}
}

func TestComponentNilLogger(t *testing.T) {
	// Must not panic.
	Component(nil, "store").Info("dropped")
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("record is not JSON: %v (%q)", err, buf.String())
	}
	return rec
}

func TestReporterRendersAtMessageLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	r := NewReporter(log, messages.English)

	r.Report(context.Background(), messages.HandlerNotFound{ID: "h9"})

	rec := decodeRecord(t, &buf)
	if rec["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", rec["level"])
	}
	if rec["msg"] != "[mockswitch console] Handler ID 'h9' not found." {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["handler"] != "h9" {
		t.Errorf("handler attr = %v, want h9", rec["handler"])
	}
}

func TestReporterErrorField(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(New(Config{Format: FormatJSON, Output: &buf}), messages.English)

	r.Report(context.Background(), messages.WorkerStartFailed{Err: errors.New("address in use")})

	rec := decodeRecord(t, &buf)
	if rec["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", rec["level"])
	}
	if rec["error"] != "address in use" {
		t.Errorf("error attr = %v", rec["error"])
	}
}

func TestReporterSilent(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(New(Config{Level: LevelDebug, Output: &buf}), messages.Silent)

	r.Report(context.Background(), messages.WorkerStartFailed{Err: errors.New("x")})
	r.Report(context.Background(), messages.WorkerStarted{Count: 1})

	if buf.Len() != 0 {
		t.Errorf("silent reporter wrote %q", buf.String())
	}
	if !r.Silent() {
		t.Error("Silent() = false, want true")
	}
}

func TestNilReporter(t *testing.T) {
	var r *Reporter
	// Must not panic.
	r.Report(context.Background(), messages.WorkerStopped{})
}

func TestNopReporter(t *testing.T) {
	r := NopReporter()
	if !r.Silent() {
		t.Error("NopReporter is not silent")
	}
	if r.Catalog() == nil {
		t.Error("NopReporter has no catalog")
	}
}
