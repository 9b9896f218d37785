package logger

import (
	"testing"
	"time"
)

func TestDailyFileName(t *testing.T) {
	// Month and day must not be zero-padded.
	at := time.Date(2024, 3, 7, 12, 0, 0, 0, time.Local)
	if got := DailyFileName(at); got != "log_2024_3_7.log" {
		t.Errorf("DailyFileName = %q, want %q", got, "log_2024_3_7.log")
	}

	at = time.Date(2024, 11, 23, 12, 0, 0, 0, time.Local)
	if got := DailyFileName(at); got != "log_2024_11_23.log" {
		t.Errorf("DailyFileName = %q, want %q", got, "log_2024_11_23.log")
	}
}

func TestDailyFileName_Rollover(t *testing.T) {
	// The name is a pure function of the calendar date, so two writes on
	// different dates target different files with no rotation logic.
	before := time.Date(2024, 3, 7, 23, 59, 59, 0, time.Local)
	after := before.Add(2 * time.Second)

	if DailyFileName(before) == DailyFileName(after) {
		t.Errorf("Expected different file names across midnight, got %q for both", DailyFileName(before))
	}
}

func TestOrderFileName(t *testing.T) {
	if got := OrderFileName("test-order-123"); got != "order_test-order-123.log" {
		t.Errorf("OrderFileName = %q, want %q", got, "order_test-order-123.log")
	}
}
