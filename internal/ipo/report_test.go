package ipo

import (
	"strings"
	"testing"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

func TestConfidence(t *testing.T) {
	strongFin := &FinancialAnalysis{
		CAGR:       ptr(20.0),
		Assessment: "Strong growth business with profitability and improving margins.",
	}
	strongSent := models.SentimentBundle{Assessment: "Strong positive retail sentiment."}
	flagged := models.RedFlagSet{Flags: []string{"High leverage"}}

	tests := []struct {
		name      string
		fin       *FinancialAnalysis
		sentiment models.SentimentBundle
		flags     models.RedFlagSet
		want      int
	}{
		{"base", nil, models.SentimentBundle{}, models.RedFlagSet{}, 60},
		{"all bonuses", strongFin, strongSent, models.RedFlagSet{}, 75},
		{"bonuses minus flag", strongFin, strongSent, flagged, 70},
		{"flag alone", nil, models.SentimentBundle{}, flagged, 55},
		{
			name:      "cagr bonus needs more than 15",
			fin:       &FinancialAnalysis{CAGR: ptr(15.0), Assessment: "Low growth business."},
			sentiment: models.SentimentBundle{},
			flags:     models.RedFlagSet{},
			want:      60,
		},
	}

	for _, tt := range tests {
		if got := Confidence(tt.fin, tt.sentiment, tt.flags); got != tt.want {
			t.Errorf("%s: Confidence = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestConfidenceClamp(t *testing.T) {
	// The lower clamp holds even when nothing contributes upward.
	got := Confidence(nil, models.SentimentBundle{}, models.RedFlagSet{Flags: []string{"a"}})
	if got < confidenceMin || got > confidenceMax {
		t.Fatalf("Confidence %d outside [%d, %d]", got, confidenceMin, confidenceMax)
	}
}

func TestRenderDegradesWithoutFiling(t *testing.T) {
	r := &Report{
		Company: "Lenskart",
		State:   StateSpeculation,
		Sentiment: models.SentimentBundle{
			PostsAnalyzed: 3, Positive: 2, Neutral: 1,
			Assessment: "Strong positive retail sentiment.",
		},
		RedFlags: models.RedFlagSet{
			Assessment: "No filing is available yet, so structural risks cannot be assessed.",
		},
		Confidence: 65,
	}

	out := r.Render()

	for _, want := range []string{
		"IPO Analysis: Lenskart",
		"Stage: SPECULATION",
		"No audited financials are available yet",
		"No filing has been located",
		"Posts analyzed: 3",
		"Final IPO Entry Confidence: 65%",
		"not an investment recommendation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFullReport(t *testing.T) {
	fin := AnalyzeFinancials(&models.IPOFinancials{
		Revenue:      map[string]float64{"31Mar2023": 100, "31Mar2024": 150},
		Profit:       map[string]float64{"31Mar2023": 10, "31Mar2024": 18},
		IsProfitable: true,
	})
	doc := &models.IPODocument{
		Company: "Acme",
		Issue: models.IPOIssue{
			PriceBand:    "₹95 to ₹100",
			IssueSize:    "₹500 Cr",
			Subscription: "2.1x",
		},
	}

	r := &Report{
		Company:    "Acme",
		State:      StateOpen,
		Document:   doc,
		Financials: fin,
		Sentiment:  models.SentimentBundle{PostsAnalyzed: 1, Neutral: 1, Assessment: "Retail interest present, sentiment broadly balanced."},
		RedFlags:   models.RedFlagSet{Assessment: "No structural red flags identified."},
		GMP:        &models.GMPQuote{Low: 20, High: 25, HasImplied: true, ImpliedPct: [2]int{20, 25}, Source: "chittorgarh.com", Confidence: "medium"},
		Confidence: 70,
	}

	out := r.Render()

	for _, want := range []string{
		"Stage: OPEN",
		"FY2023: revenue 100.0, profit 10.0",
		"FY2024 YoY revenue growth: 50.00%",
		"Revenue CAGR: 50.00%",
		"Price band: ₹95 to ₹100",
		"Subscription: 2.1x",
		"Reported premium: ₹20 to ₹25",
		"Implied listing gain: 20% to 25%",
		"No structural red flags identified.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestResolveState(t *testing.T) {
	withBand := &models.IPODocument{Issue: models.IPOIssue{PriceBand: "₹95 to ₹100"}}
	open := &models.IPODocument{Issue: models.IPOIssue{PriceBand: "₹95 to ₹100", Subscription: "2x"}}
	subOnly := &models.IPODocument{Issue: models.IPOIssue{Subscription: "2x"}}
	filed := &models.IPODocument{Financials: &models.IPOFinancials{
		Revenue: map[string]float64{"31Mar2024": 100},
	}}

	tests := []struct {
		name  string
		doc   *models.IPODocument
		posts int
		want  State
	}{
		{"no doc no chatter", nil, 0, StateUnknown},
		{"no doc with chatter", nil, 4, StateSpeculation},
		{"financials only", filed, 0, StateFiled},
		{"band announced", withBand, 0, StatePreApply},
		{"subscription running", open, 0, StateOpen},
		{"subscription without parsed band", subOnly, 0, StateOpen},
		{"empty filing", &models.IPODocument{}, 0, StateUnknown},
	}

	for _, tt := range tests {
		sentiment := models.SentimentBundle{PostsAnalyzed: tt.posts}
		if got := ResolveState(tt.doc, sentiment); got != tt.want {
			t.Errorf("%s: ResolveState = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func ptr(v float64) *float64 { return &v }
