package capabilities

import (
	"context"
	"fmt"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/llm"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

// Clarification strings for the historical capabilities.
const (
	ClarifyRangeTimeframe = "Please specify a timeframe like last week, last month, or last year " +
		"to get the high and low."
	ClarifyRangeAsset = "Please mention the company name for the high and low range."
	NoRangeData       = "Intraday high and low data isn't available for this stock at the moment. " +
		"This can happen outside market hours."

	ClarifyPerformanceTimeframe = "Please specify a timeframe like last month, last quarter, or last year " +
		"to check performance."
	ClarifyPerformanceAsset = "Please mention the company name to check performance."
	NoPerformanceData       = "I couldn't fetch performance data for the requested stock(s)."
)

// HighLow answers trading-range questions over a named timeframe.
type HighLow struct {
	Market MarketData
	LLM    llm.Completer
}

func (h *HighLow) Run(ctx context.Context, candidates []string, timeframe string) string {
	if timeframe == "" {
		return ClarifyRangeTimeframe
	}
	if len(candidates) == 0 {
		return ClarifyRangeAsset
	}

	symbols := resolveEach(ctx, h.Market, candidates)
	results := collectEach(ctx, symbols, func(ctx context.Context, symbol string) (*models.RangeStats, error) {
		return h.Market.HighLow(ctx, symbol, timeframe)
	})
	if len(results) == 0 {
		return NoRangeData
	}

	var lines []string
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s traded between ₹%s and ₹%s from %s to %s.",
			r.Symbol, r.Low, r.High, r.StartDate, r.EndDate))
	}

	block := "Historical price range data:\n" + strings.Join(lines, "\n")
	return summarize(ctx, h.LLM, block,
		"Explain this clearly in 1-2 sentences using only the data above.")
}

// PerformanceReport answers "how did X do over Y" questions.
type PerformanceReport struct {
	Market MarketData
	LLM    llm.Completer
}

func (p *PerformanceReport) Run(ctx context.Context, candidates []string, timeframe string) string {
	if timeframe == "" {
		return ClarifyPerformanceTimeframe
	}
	if len(candidates) == 0 {
		return ClarifyPerformanceAsset
	}

	symbols := resolveEach(ctx, p.Market, candidates)
	results := collectEach(ctx, symbols, func(ctx context.Context, symbol string) (*models.Performance, error) {
		return p.Market.Performance(ctx, symbol, timeframe)
	})
	if len(results) == 0 {
		return NoPerformanceData
	}

	var lines []string
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s moved from ₹%s to ₹%s between %s and %s (%s / %s%%).",
			r.Symbol, r.StartPrice, r.EndPrice, r.StartDate, r.EndDate, r.Change, r.ChangePct))
	}

	block := "Historical performance data:\n" + strings.Join(lines, "\n")
	return summarize(ctx, p.LLM, block,
		"Summarize this performance clearly without judgment or advice.")
}
