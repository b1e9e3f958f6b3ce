// Package capabilities implements the per-category answer pipelines.
// Every capability follows the same contract: resolve the extracted
// candidates (silently dropping what cannot be resolved), return a
// fixed clarification string when nothing resolves, otherwise format a
// deterministic data block and hand it to the language model for a
// constrained summary. The formatted numbers are the source of truth;
// the model only renders language around them.
package capabilities

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/viratraj194/Finance-Agent/internal/dataflows"
	"github.com/viratraj194/Finance-Agent/internal/llm"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

// MarketData is the market collaborator surface.
type MarketData interface {
	Resolve(ctx context.Context, query string) dataflows.Resolution
	Quote(ctx context.Context, symbol string) (*models.AssetSnapshot, error)
	HighLow(ctx context.Context, symbol, timeframe string) (*models.RangeStats, error)
	Performance(ctx context.Context, symbol, timeframe string) (*models.Performance, error)
	DailyCloses(ctx context.Context, symbol string) ([]float64, error)
}

// NewsSource is the news collaborator surface.
type NewsSource interface {
	Fetch(ctx context.Context, query string, limit int) ([]models.NewsItem, error)
}

// SocialSource is the social-discussion collaborator surface.
type SocialSource interface {
	FetchPosts(ctx context.Context, query string, limit int) ([]models.RedditPost, error)
}

// fanOutLimit bounds per-message concurrency for multi-asset queries.
const fanOutLimit = 4

// resolveEach maps candidates to symbols concurrently, preserving
// request order. Unresolved candidates produce empty slots which the
// caller compacts; a resolution failure is treated the same as not
// found.
func resolveEach(ctx context.Context, market MarketData, candidates []string) []string {
	symbols := make([]string, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i, candidate := range candidates {
		g.Go(func() error {
			res := market.Resolve(gctx, candidate)
			if res.Status == dataflows.ResolveFound {
				symbols[i] = res.Symbol
			}
			return nil
		})
	}
	_ = g.Wait()

	var resolved []string
	for _, s := range symbols {
		if s != "" {
			resolved = append(resolved, s)
		}
	}
	return resolved
}

// collectEach runs one fetch per symbol concurrently and returns the
// non-nil results in request order. A failing symbol is omitted, never
// fatal.
func collectEach[T any](ctx context.Context, symbols []string, fetch func(ctx context.Context, symbol string) (*T, error)) []*T {
	slots := make([]*T, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i, symbol := range symbols {
		g.Go(func() error {
			if v, err := fetch(gctx, symbol); err == nil {
				slots[i] = v
			}
			return nil
		})
	}
	_ = g.Wait()

	var results []*T
	for _, v := range slots {
		if v != nil {
			results = append(results, v)
		}
	}
	return results
}

// summarize routes a data block through the language model under the
// shared no-advice system prompt. When the model call fails the raw
// data block is returned as-is, so the user still gets the numbers.
func summarize(ctx context.Context, completer llm.Completer, dataBlock, instruction string) string {
	reply, err := completer.Complete(ctx, llm.SystemPrompt, dataBlock+"\n\n"+instruction)
	if err != nil || reply == "" {
		return dataBlock
	}
	return reply
}
