package logger

import (
	"strings"
	"testing"
	"time"
)

func TestFormatEntry_Keyed(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	r := &Record{
		Level:   INFO,
		Target:  "vending",
		Message: "Message with UUID",
		Attrs:   map[string]string{AttrKeyUUID: "format-test-uuid"},
	}

	entry := formatEntry(r, now)

	// No space after the colon in the keyed shape. The asymmetry with the
	// non-keyed shape is an observable contract.
	if !strings.HasSuffix(entry, "INFO|[vending]<format-test-uuid>:Message with UUID") {
		t.Errorf("Keyed entry has wrong shape: %s", entry)
	}
	if !strings.HasPrefix(entry, "2024-03-07T10:30:00+01:00-") {
		t.Errorf("Expected RFC3339 timestamp with local offset, got: %s", entry)
	}
}

func TestFormatEntry_NonKeyed(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 30, 0, 0, time.UTC)
	r := &Record{
		Level:   WARN,
		Target:  "vending",
		Message: "Message with UUID",
	}

	entry := formatEntry(r, now)

	if !strings.HasSuffix(entry, "WARN|[vending]: Message with UUID") {
		t.Errorf("Non-keyed entry has wrong shape: %s", entry)
	}
}

func TestFormatEntry_UnknownAttrsIgnored(t *testing.T) {
	now := time.Now()
	r := &Record{
		Level:   INFO,
		Target:  "vending",
		Message: "msg",
		Attrs:   map[string]string{"customer": "c-1", "amount": "12"},
	}

	entry := formatEntry(r, now)

	// Attributes other than the correlation key have no defined effect.
	if strings.Contains(entry, "customer") || strings.Contains(entry, "c-1") {
		t.Errorf("Unknown attributes leaked into the entry: %s", entry)
	}
	if !strings.Contains(entry, "[vending]: msg") {
		t.Errorf("Expected non-keyed shape, got: %s", entry)
	}
}

func TestColorize(t *testing.T) {
	tests := []struct {
		level Level
		code  string
	}{
		{ERROR, "\x1b[31m"},
		{WARN, "\x1b[33m"},
		{INFO, "\x1b[32m"},
		{DEBUG, "\x1b[37m"},
		{TRACE, "\x1b[90m"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := colorize(tt.level, "entry")
			want := tt.code + "entry" + colorReset
			if got != want {
				t.Errorf("colorize(%s) = %q, want %q", tt.level, got, want)
			}
		})
	}
}
