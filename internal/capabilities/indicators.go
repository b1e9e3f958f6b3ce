package capabilities

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/llm"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

// Clarification strings for the indicator capability.
const (
	ClarifyIndicatorAsset = "Please mention the company name to check indicators."
	NoIndicatorData       = "I couldn't compute indicators for the requested stock(s)."
)

// minIndicatorBars is the daily history needed for the 200-day mean.
const minIndicatorBars = 200

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sma is the arithmetic mean of the last window closes.
func sma(closes []float64, window int) float64 {
	return mean(closes[len(closes)-window:])
}

// ema is the exponential moving average over the whole series with
// smoothing 2/(span+1), seeded from the first close.
func ema(closes []float64, span int) float64 {
	alpha := 2.0 / (float64(span) + 1.0)
	value := closes[0]
	for _, c := range closes[1:] {
		value = alpha*c + (1-alpha)*value
	}
	return value
}

// rsi is the 14-period relative strength index using simple moving
// averages of gains and losses.
func rsi(closes []float64, window int) float64 {
	gains := make([]float64, 0, window)
	losses := make([]float64, 0, window)

	start := len(closes) - window - 1
	for i := start + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains = append(gains, delta)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -delta)
		}
	}

	avgGain := mean(gains)
	avgLoss := mean(losses)
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// ComputeIndicators derives the indicator set from daily closes,
// oldest first. It returns nil when the history is too short.
func ComputeIndicators(symbol string, closes []float64) *models.IndicatorSet {
	if len(closes) < minIndicatorBars {
		return nil
	}

	return &models.IndicatorSet{
		Symbol: symbol,
		Price:  round2(closes[len(closes)-1]),
		SMA20:  round2(sma(closes, 20)),
		SMA50:  round2(sma(closes, 50)),
		SMA200: round2(sma(closes, 200)),
		EMA20:  round2(ema(closes, 20)),
		EMA50:  round2(ema(closes, 50)),
		RSI14:  round2(rsi(closes, 14)),
	}
}

// ComputeSignals labels an indicator set. The labels are a pure
// function of the values: no external state, fixed thresholds.
func ComputeSignals(ind *models.IndicatorSet) models.SignalSet {
	var sig models.SignalSet

	switch {
	case ind.Price > ind.SMA50 && ind.SMA50 > ind.SMA200:
		sig.Trend = "bullish"
		sig.TrendReason = "price > 50-day SMA and 50-day SMA > 200-day SMA"
	case ind.Price < ind.SMA50 && ind.SMA50 < ind.SMA200:
		sig.Trend = "bearish"
		sig.TrendReason = "price < 50-day SMA and 50-day SMA < 200-day SMA"
	default:
		sig.Trend = "neutral"
		sig.TrendReason = "mixed positioning relative to key moving averages"
	}

	switch {
	case ind.RSI14 >= 70:
		sig.Momentum = "overbought"
		sig.MomentumReason = "RSI is at or above 70"
	case ind.RSI14 <= 30:
		sig.Momentum = "oversold"
		sig.MomentumReason = "RSI is at or below 30"
	default:
		sig.Momentum = "neutral"
		sig.MomentumReason = "RSI is between 30 and 70"
	}

	switch {
	case ind.Price > ind.SMA20:
		sig.Structure = "breakout"
		sig.StructureReason = "price is above its 20-day average"
	case ind.Price < ind.SMA20:
		sig.Structure = "breakdown"
		sig.StructureReason = "price is below its 20-day average"
	default:
		sig.Structure = "none"
		sig.StructureReason = "price is near its 20-day average"
	}

	return sig
}

// Indicators answers technical-indicator questions with computed
// values and their rule-based signal labels.
type Indicators struct {
	Market MarketData
	LLM    llm.Completer
}

type indicatorResult struct {
	ind models.IndicatorSet
	sig models.SignalSet
}

func (c *Indicators) fetchOne(ctx context.Context, symbol string) (*indicatorResult, error) {
	closes, err := c.Market.DailyCloses(ctx, symbol)
	if err != nil {
		return nil, err
	}

	ind := ComputeIndicators(symbol, closes)
	if ind == nil {
		return nil, nil
	}
	return &indicatorResult{ind: *ind, sig: ComputeSignals(ind)}, nil
}

func (c *Indicators) Run(ctx context.Context, candidates []string) string {
	if len(candidates) == 0 {
		return ClarifyIndicatorAsset
	}

	symbols := resolveEach(ctx, c.Market, candidates)
	results := collectEach(ctx, symbols, c.fetchOne)
	if len(results) == 0 {
		return NoIndicatorData
	}

	var blocks []string
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf(
			"%s:\n"+
				"- Price: ₹%.2f\n"+
				"- SMA (20/50/200): ₹%.2f / ₹%.2f / ₹%.2f\n"+
				"- EMA (20/50): ₹%.2f / ₹%.2f\n"+
				"- RSI (14): %.2f\n"+
				"- Trend bias: %s (%s)\n"+
				"- Momentum: %s (%s)\n"+
				"- Structure: %s (%s)",
			r.ind.Symbol,
			r.ind.Price,
			r.ind.SMA20, r.ind.SMA50, r.ind.SMA200,
			r.ind.EMA20, r.ind.EMA50,
			r.ind.RSI14,
			r.sig.Trend, r.sig.TrendReason,
			r.sig.Momentum, r.sig.MomentumReason,
			r.sig.Structure, r.sig.StructureReason))
	}

	block := "Technical indicator states derived from rule-based conditions:\n" +
		strings.Join(blocks, "\n\n")
	return summarize(ctx, c.LLM, block,
		"Explain these states descriptively. Do not provide advice, predictions, or actions.")
}
