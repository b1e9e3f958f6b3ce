package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viratraj194/Finance-Agent/internal/capabilities"
	"github.com/viratraj194/Finance-Agent/internal/dataflows"
	"github.com/viratraj194/Finance-Agent/internal/ipo"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeMarket struct {
	symbols map[string]string
	closes  []float64
}

func (m *fakeMarket) Resolve(ctx context.Context, query string) dataflows.Resolution {
	if s, ok := m.symbols[query]; ok {
		return dataflows.Resolution{Status: dataflows.ResolveFound, Symbol: s}
	}
	return dataflows.Resolution{Status: dataflows.ResolveNotFound}
}

func (m *fakeMarket) Quote(ctx context.Context, symbol string) (*models.AssetSnapshot, error) {
	return &models.AssetSnapshot{
		Symbol:    symbol,
		Status:    models.ResolvedWithData,
		Price:     decimal.NewFromInt(100),
		PrevClose: decimal.NewFromInt(98),
		PrevDate:  "2026-08-27",
		Change:    decimal.NewFromInt(2),
		ChangePct: decimal.NewFromFloat(2.04),
		Direction: "up",
	}, nil
}

func (m *fakeMarket) HighLow(ctx context.Context, symbol, timeframe string) (*models.RangeStats, error) {
	return nil, errors.New("no data")
}

func (m *fakeMarket) Performance(ctx context.Context, symbol, timeframe string) (*models.Performance, error) {
	return nil, errors.New("no data")
}

func (m *fakeMarket) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	if m.closes == nil {
		return nil, errors.New("no data")
	}
	return m.closes, nil
}

type fakeSocial struct {
	posts []models.RedditPost
}

func (f *fakeSocial) FetchPosts(ctx context.Context, query string, limit int) ([]models.RedditPost, error) {
	return f.posts, nil
}

type fakeNews struct{}

func (f *fakeNews) Fetch(ctx context.Context, query string, limit int) ([]models.NewsItem, error) {
	return nil, nil
}

type emptyDocs struct{}

func (emptyDocs) Fetch(ctx context.Context, company string) (*models.IPODocument, error) {
	return nil, nil
}

func (emptyDocs) GMPQuote(ctx context.Context, company string, bandHigh int) (*models.GMPQuote, error) {
	return nil, nil
}

type emptyDiscussion struct{}

func (emptyDiscussion) FetchIPOPosts(ctx context.Context, company string, limit int) ([]models.RedditPost, error) {
	return nil, nil
}

type emptyCoverage struct{}

func (emptyCoverage) FetchIPONews(ctx context.Context, company string, maxItems int) ([]models.NewsItem, error) {
	return nil, nil
}

type memoryRecorder struct {
	intents []string
}

func (r *memoryRecorder) SaveTurn(sessionID, query, intent, response string, latency time.Duration) error {
	r.intents = append(r.intents, intent)
	return nil
}

func testAgent(completer *fakeCompleter, market *fakeMarket, rec *memoryRecorder) *Agent {
	social := &fakeSocial{posts: []models.RedditPost{
		{Title: "solid quarter", Subreddit: "IndianStockMarket", Score: 42},
	}}

	a := &Agent{
		LLM:         completer,
		Snapshot:    &capabilities.Snapshot{Market: market, LLM: completer},
		Context:     &capabilities.Context{Market: market, LLM: completer},
		Events:      &capabilities.Events{News: &fakeNews{}, LLM: completer},
		HighLow:     &capabilities.HighLow{Market: market, LLM: completer},
		Performance: &capabilities.PerformanceReport{Market: market, LLM: completer},
		Indicators:  &capabilities.Indicators{Market: market, LLM: completer},
		Sentiment:   &capabilities.Sentiment{Social: social, LLM: completer},
		IPO: &ipo.Pipeline{
			Docs:       emptyDocs{},
			Discussion: emptyDiscussion{},
			Coverage:   emptyCoverage{},
		},
		SessionID: "test",
	}
	if rec != nil {
		a.Recorder = rec
	}
	return a
}

func nseMarket() *fakeMarket {
	return &fakeMarket{symbols: map[string]string{
		"reliance": "RELIANCE.NS",
		"tcs":      "TCS.NS",
		"infosys":  "INFY.NS",
	}}
}

func TestHandleCompare(t *testing.T) {
	completer := &fakeCompleter{reply: "Both stocks are summarized."}
	rec := &memoryRecorder{}
	a := testAgent(completer, nseMarket(), rec)

	got := a.Handle(context.Background(), "compare reliance and tcs")
	if got != "Both stocks are summarized." {
		t.Fatalf("Handle = %q", got)
	}
	if len(rec.intents) != 1 || rec.intents[0] != "compare" {
		t.Errorf("recorded intents = %v, want [compare]", rec.intents)
	}
}

func TestHandleIndicators(t *testing.T) {
	closes := make([]float64, 220)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	market := nseMarket()
	market.closes = closes

	// The model failing means the raw data block comes back.
	completer := &fakeCompleter{err: errors.New("down")}
	a := testAgent(completer, market, nil)

	got := a.Handle(context.Background(), "rsi of infosys")
	if !strings.Contains(got, "INFY.NS") || !strings.Contains(got, "RSI") {
		t.Fatalf("indicator answer missing data block: %q", got)
	}
}

func TestHandleSentiment(t *testing.T) {
	completer := &fakeCompleter{reply: "Tone is constructive."}
	rec := &memoryRecorder{}
	a := testAgent(completer, nseMarket(), rec)

	got := a.Handle(context.Background(), "what are people saying about zomato")
	if got != "Tone is constructive." {
		t.Fatalf("Handle = %q", got)
	}
	if rec.intents[0] != "sentiment" {
		t.Errorf("intent = %q, want sentiment", rec.intents[0])
	}
}

func TestHandleIPO(t *testing.T) {
	completer := &fakeCompleter{reply: "unused"}
	a := testAgent(completer, nseMarket(), nil)

	got := a.Handle(context.Background(), "should i apply for lenskart ipo")
	if !strings.Contains(got, "IPO Analysis: Lenskart") {
		t.Fatalf("IPO answer missing report header: %q", got)
	}
	if !strings.Contains(got, "Final IPO Entry Confidence:") {
		t.Fatalf("IPO answer missing confidence: %q", got)
	}
}

func TestHandleIPOWithoutCompany(t *testing.T) {
	a := testAgent(&fakeCompleter{}, nseMarket(), nil)

	got := a.Handle(context.Background(), "ipo")
	if got != ClarifyIPO {
		t.Fatalf("Handle = %q, want clarification", got)
	}
}

func TestHandleUnresolvable(t *testing.T) {
	a := testAgent(&fakeCompleter{reply: "ignored"}, nseMarket(), nil)

	got := a.Handle(context.Background(), "price of ??")
	if got != capabilities.ClarifySnapshot {
		t.Fatalf("Handle = %q, want snapshot clarification", got)
	}
}

func TestHandleNoCandidatesFallsBackToModel(t *testing.T) {
	completer := &fakeCompleter{reply: "General market answer."}
	a := testAgent(completer, nseMarket(), nil)

	got := a.Handle(context.Background(), "price of the stock")
	if got != "General market answer." {
		t.Fatalf("Handle = %q", got)
	}
	if completer.calls != 1 {
		t.Errorf("model calls = %d, want 1", completer.calls)
	}
}

func TestHandleRangeNeedsTimeframe(t *testing.T) {
	a := testAgent(&fakeCompleter{}, nseMarket(), nil)

	got := a.Handle(context.Background(), "high low of reliance")
	if got != capabilities.ClarifyRangeTimeframe {
		t.Fatalf("Handle = %q, want timeframe clarification", got)
	}
}
