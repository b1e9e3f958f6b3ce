package ipo

import (
	"testing"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		label   string
		year    int
		partial bool
		ok      bool
	}{
		{"31Mar2024", 2024, false, true},
		{"Mar2024", 2024, false, true},
		{"30Sep2025", 2026, true, true},
		{"FY2024", 0, false, false},
		{"", 0, false, false},
	}

	for _, tt := range tests {
		year, partial, ok := fiscalYear(tt.label)
		if year != tt.year || partial != tt.partial || ok != tt.ok {
			t.Errorf("fiscalYear(%q) = (%d, %v, %v), want (%d, %v, %v)",
				tt.label, year, partial, ok, tt.year, tt.partial, tt.ok)
		}
	}
}

func TestYoYGrowth(t *testing.T) {
	yoy := yoyGrowth(map[int]float64{2023: 100, 2024: 150})
	if got := yoy[2024]; got != 50 {
		t.Errorf("yoy 100->150 = %v, want 50", got)
	}

	// A non-positive base year is skipped, never divided.
	yoy = yoyGrowth(map[int]float64{2023: 0, 2024: 150})
	if _, ok := yoy[2024]; ok {
		t.Errorf("yoy with zero base should be skipped, got %v", yoy[2024])
	}
}

func TestCAGR(t *testing.T) {
	got := cagr(map[int]float64{2023: 100, 2024: 121})
	if got == nil || *got != 21.0 {
		t.Fatalf("cagr 100->121 over 1y = %v, want 21.0", got)
	}

	// Two-period geometric mean: 100 -> 144 over two years is 20%.
	got = cagr(map[int]float64{2022: 100, 2023: 110, 2024: 144})
	if got == nil || *got != 20.0 {
		t.Fatalf("cagr 100->144 over 2y = %v, want 20.0", got)
	}

	if cagr(map[int]float64{2024: 100}) != nil {
		t.Error("cagr with one period should be nil")
	}
	if cagr(map[int]float64{2023: 0, 2024: 100}) != nil {
		t.Error("cagr with zero start should be nil")
	}
}

func TestMarginTrend(t *testing.T) {
	tests := []struct {
		name    string
		revenue map[int]float64
		profit  map[int]float64
		want    string
	}{
		{
			name:    "improving",
			revenue: map[int]float64{2023: 100, 2024: 100},
			profit:  map[int]float64{2023: 10, 2024: 20},
			want:    "improving",
		},
		{
			name:    "compressed",
			revenue: map[int]float64{2023: 100, 2024: 200},
			profit:  map[int]float64{2023: 10, 2024: 10},
			want:    "compressed",
		},
		{
			name:    "stable",
			revenue: map[int]float64{2023: 100, 2024: 200},
			profit:  map[int]float64{2023: 10, 2024: 20},
			want:    "stable",
		},
		{
			name:    "missing profit year",
			revenue: map[int]float64{2023: 100, 2024: 200},
			profit:  map[int]float64{2024: 10},
			want:    "insufficient data",
		},
	}

	for _, tt := range tests {
		if got := marginTrend(tt.revenue, tt.profit); got != tt.want {
			t.Errorf("%s: marginTrend = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAnalyzeFinancialsExcludesPartialYears(t *testing.T) {
	fin := &models.IPOFinancials{
		Revenue: map[string]float64{
			"31Mar2023": 100,
			"31Mar2024": 150,
			"30Sep2024": 90, // half year, must not enter growth math
		},
		Profit: map[string]float64{
			"31Mar2023": 10,
			"31Mar2024": 18,
		},
		IsProfitable: true,
	}

	a := AnalyzeFinancials(fin)

	if !a.Partial[2025] {
		t.Error("Sep2024 reading should map to partial FY2025")
	}
	if got := a.YoY[2024]; got != 50 {
		t.Errorf("YoY[2024] = %v, want 50", got)
	}
	if _, ok := a.YoY[2025]; ok {
		t.Error("partial year must not produce a YoY entry")
	}
	if a.CAGR == nil || *a.CAGR != 50 {
		t.Fatalf("CAGR = %v, want 50 over completed years only", a.CAGR)
	}
	if a.GrowthLabel != "strong growth" {
		t.Errorf("GrowthLabel = %q, want strong growth", a.GrowthLabel)
	}
	if a.MarginTrend != "improving" {
		t.Errorf("MarginTrend = %q, want improving", a.MarginTrend)
	}
	if a.Assessment != "Strong growth business with profitability and improving margins." {
		t.Errorf("Assessment = %q", a.Assessment)
	}
}

func TestGrowthLabelBands(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		cagr *float64
		want string
	}{
		{f(15), "strong growth"},
		{f(14.99), "moderate growth"},
		{f(8), "moderate growth"},
		{f(7.99), "low growth"},
		{nil, "low growth"},
	}

	for _, tt := range tests {
		if got := growthLabel(tt.cagr); got != tt.want {
			t.Errorf("growthLabel(%v) = %q, want %q", tt.cagr, got, tt.want)
		}
	}
}
