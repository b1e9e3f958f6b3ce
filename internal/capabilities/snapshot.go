package capabilities

import (
	"context"
	"fmt"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/llm"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

// ClarifySnapshot is returned when no candidate resolves to a listed
// stock with data behind it.
const ClarifySnapshot = "I couldn't identify valid Indian stocks in your request. " +
	"Please try using clear company names."

// Snapshot answers current-price questions and, in compare mode,
// side-by-side comparisons.
type Snapshot struct {
	Market MarketData
	LLM    llm.Completer
}

// Fetch resolves candidates and collects their snapshots in request
// order, dropping anything unresolved or without data.
func (s *Snapshot) Fetch(ctx context.Context, candidates []string) []*models.AssetSnapshot {
	symbols := resolveEach(ctx, s.Market, candidates)
	return collectEach(ctx, symbols, s.Market.Quote)
}

// Run produces a snapshot or comparison narrative for the candidates.
func (s *Snapshot) Run(ctx context.Context, candidates []string, compare bool) string {
	snapshots := s.Fetch(ctx, candidates)
	if len(snapshots) == 0 {
		return ClarifySnapshot
	}

	if compare && len(snapshots) >= 2 {
		var lines []string
		for _, snap := range snapshots {
			lines = append(lines, fmt.Sprintf("%s: ₹%s (%s / %s%%), previous close on %s",
				snap.Symbol, snap.Price, snap.Change, snap.ChangePct, snap.PrevDate))
		}

		block := "Market comparison data:\n" + strings.Join(lines, "\n")
		return summarize(ctx, s.LLM, block,
			"Compare these stocks briefly using only the data above. "+
				"Do not give opinions or predictions.")
	}

	var lines []string
	for _, snap := range snapshots {
		lines = append(lines, fmt.Sprintf("%s: ₹%s (%s / %s%%) vs previous close on %s",
			snap.Symbol, snap.Price, snap.Change, snap.ChangePct, snap.PrevDate))
	}

	block := "Market snapshot data:\n" + strings.Join(lines, "\n")
	return summarize(ctx, s.LLM, block,
		"Summarize this information clearly without comparison or advice.")
}
