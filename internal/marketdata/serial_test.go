package marketdata

import (
	"testing"
	"time"

	"tariff-event-lab/internal/domain"
)

func TestSerialToDate(t *testing.T) {
	tests := []struct {
		serial float64
		want   time.Time
	}{
		{45292, domain.DateYMD(2024, time.January, 1)},
		{45658, domain.DateYMD(2025, time.January, 1)},
		{45749, domain.DateYMD(2025, time.April, 2)},
		{45749.5, domain.DateYMD(2025, time.April, 2)}, // intra-day fraction discarded
	}
	for _, tt := range tests {
		got := serialToDate(tt.serial)
		if !got.Equal(tt.want) {
			t.Errorf("serialToDate(%v): expected %v, got %v", tt.serial, tt.want, got)
		}
	}
}

func TestParseDateCell_Serial(t *testing.T) {
	date, ok, err := parseDateCell("45658")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok for serial cell")
	}
	if !date.Equal(domain.DateYMD(2025, time.January, 1)) {
		t.Errorf("expected 2025-01-01, got %v", date)
	}
}

func TestParseDateCell_ISOFallback(t *testing.T) {
	date, ok, err := parseDateCell("2025-04-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok for ISO cell")
	}
	if !date.Equal(domain.DateYMD(2025, time.April, 2)) {
		t.Errorf("expected 2025-04-02, got %v", date)
	}
}

func TestParseDateCell_Null(t *testing.T) {
	for _, cell := range []string{"", "NA", "N/A", "null", "#N/A"} {
		_, ok, err := parseDateCell(cell)
		if err != nil {
			t.Errorf("cell %q: unexpected error: %v", cell, err)
		}
		if ok {
			t.Errorf("cell %q: expected null, got ok", cell)
		}
	}
}

func TestParseDateCell_Garbage(t *testing.T) {
	_, _, err := parseDateCell("yesterday")
	if err == nil {
		t.Error("expected error for unparseable date cell")
	}
}
