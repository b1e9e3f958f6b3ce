package capabilities

import (
	"context"
	"strings"
	"testing"

	"github.com/viratraj194/Finance-Agent/internal/dataflows"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

type stubMarket struct {
	symbols map[string]string
}

func (m *stubMarket) Resolve(ctx context.Context, query string) dataflows.Resolution {
	if symbol, ok := m.symbols[query]; ok {
		return dataflows.Resolution{Status: dataflows.ResolveFound, Symbol: symbol}
	}
	return dataflows.Resolution{Status: dataflows.ResolveNotFound}
}

func (m *stubMarket) Quote(ctx context.Context, symbol string) (*models.AssetSnapshot, error) {
	return nil, nil
}

func (m *stubMarket) HighLow(ctx context.Context, symbol, timeframe string) (*models.RangeStats, error) {
	return nil, nil
}

func (m *stubMarket) Performance(ctx context.Context, symbol, timeframe string) (*models.Performance, error) {
	return nil, nil
}

func (m *stubMarket) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	return nil, nil
}

type stubCompleter struct {
	reply string
}

func (c *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return c.reply, nil
}

func TestContextClarifications(t *testing.T) {
	c := &Context{
		Market: &stubMarket{symbols: map[string]string{"infosys": "INFY.NS"}},
		LLM:    &stubCompleter{reply: "An IT services company."},
	}
	ctx := context.Background()

	if got := c.Run(ctx, nil); got != ClarifyContextAsset {
		t.Errorf("no candidates: got %q, want %q", got, ClarifyContextAsset)
	}
	if got := c.Run(ctx, []string{"zzqq"}); got != ClarifyContext {
		t.Errorf("unresolved candidate: got %q, want %q", got, ClarifyContext)
	}

	got := c.Run(ctx, []string{"infosys"})
	if !strings.Contains(got, "INFY.NS") || !strings.Contains(got, "IT services") {
		t.Errorf("resolved candidate: got %q", got)
	}
}
