package entity

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

func TestParsePeriodKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    Period
		wantErr bool
	}{
		{name: "unpadded month", key: "3-2025", want: Period{Month: 3, Year: 2025}},
		{name: "padded month", key: "03-2025", want: Period{Month: 3, Year: 2025}},
		{name: "december", key: "12-2024", want: Period{Month: 12, Year: 2024}},
		{name: "surrounding spaces", key: " 7-2025 ", want: Period{Month: 7, Year: 2025}},
		{name: "month zero", key: "0-2025", wantErr: true},
		{name: "month thirteen", key: "13-2025", wantErr: true},
		{name: "missing year", key: "3", wantErr: true},
		{name: "text", key: "march-2025", wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriodKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidPeriod) {
					t.Fatalf("expected ErrInvalidPeriod, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePeriodKey(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestPeriod_Key(t *testing.T) {
	p := Period{Month: 3, Year: 2025}
	if p.Key() != "3-2025" {
		t.Errorf("Key() = %q, want 3-2025", p.Key())
	}
	if p.String() != p.Key() {
		t.Errorf("String() = %q, want %q", p.String(), p.Key())
	}
}

func TestPeriod_DaysInMonth(t *testing.T) {
	tests := []struct {
		period Period
		want   int
	}{
		{Period{Month: 1, Year: 2025}, 31},
		{Period{Month: 2, Year: 2025}, 28},
		{Period{Month: 2, Year: 2024}, 29},
		{Period{Month: 4, Year: 2025}, 30},
		{Period{Month: 12, Year: 2025}, 31},
	}

	for _, tt := range tests {
		t.Run(tt.period.Key(), func(t *testing.T) {
			if got := tt.period.DaysInMonth(); got != tt.want {
				t.Errorf("DaysInMonth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPeriod_ShiftAndContains(t *testing.T) {
	p := Period{Month: 1, Year: 2025}

	if got := p.Shift(-1); got != (Period{Month: 12, Year: 2024}) {
		t.Errorf("Shift(-1) = %+v", got)
	}
	if got := p.Shift(13); got != (Period{Month: 2, Year: 2026}) {
		t.Errorf("Shift(13) = %+v", got)
	}
	if !p.Contains(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected 31/01/2025 inside 1-2025")
	}
	if p.Contains(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected 01/02/2025 outside 1-2025")
	}
	if !p.Start().Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start() = %v", p.Start())
	}
}
