// Package agent routes a user message to the capability that can
// answer it. Routing is keyword first: specialized intents are checked
// in a fixed order before falling back to snapshot or comparison.
package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/viratraj194/Finance-Agent/config"
	"github.com/viratraj194/Finance-Agent/internal/capabilities"
	"github.com/viratraj194/Finance-Agent/internal/classify"
	"github.com/viratraj194/Finance-Agent/internal/dataflows"
	"github.com/viratraj194/Finance-Agent/internal/extract"
	"github.com/viratraj194/Finance-Agent/internal/ipo"
	"github.com/viratraj194/Finance-Agent/internal/llm"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

const (
	// ClarifyIPO asks for a company when an IPO query names none.
	ClarifyIPO = "Please mention the IPO name you want to analyze."

	llmUnavailable = "Sorry, I am having trouble answering right now."
)

// Recorder persists completed turns. Nil disables recording.
type Recorder interface {
	SaveTurn(sessionID, query, intent, response string, latency time.Duration) error
}

// Agent owns the capability set and dispatches one message at a time.
type Agent struct {
	LLM llm.Completer

	Snapshot    *capabilities.Snapshot
	Context     *capabilities.Context
	Events      *capabilities.Events
	HighLow     *capabilities.HighLow
	Performance *capabilities.PerformanceReport
	Indicators  *capabilities.Indicators
	Sentiment   *capabilities.Sentiment
	IPO         *ipo.Pipeline

	Recorder  Recorder
	SessionID string
}

// New wires an agent from config with live data sources.
func New(cfg *config.Config, completer llm.Completer, rec Recorder) *Agent {
	yahoo := dataflows.NewYahooClient()
	news := dataflows.NewNewsClient(cfg.GNewsAPIKey)
	reddit := dataflows.NewRedditClient(cfg.RedditUserAgent)
	docs := dataflows.NewIPODocsClient()
	rss := dataflows.NewGoogleNewsClient()

	return &Agent{
		LLM:         completer,
		Snapshot:    &capabilities.Snapshot{Market: yahoo, LLM: completer},
		Context:     &capabilities.Context{Market: yahoo, LLM: completer},
		Events:      &capabilities.Events{News: news, LLM: completer},
		HighLow:     &capabilities.HighLow{Market: yahoo, LLM: completer},
		Performance: &capabilities.PerformanceReport{Market: yahoo, LLM: completer},
		Indicators:  &capabilities.Indicators{Market: yahoo, LLM: completer},
		Sentiment:   &capabilities.Sentiment{Social: reddit, LLM: completer},
		IPO: &ipo.Pipeline{
			Docs:       docs,
			Discussion: reddit,
			Coverage:   rss,
		},
		Recorder: rec,
	}
}

// Handle answers one message. It always returns something to show the
// user, even when every upstream source fails.
func (a *Agent) Handle(ctx context.Context, text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	start := time.Now()
	intent, answer := a.route(ctx, text, lowered)
	a.record(text, intent, answer, time.Since(start))
	return answer
}

func (a *Agent) route(ctx context.Context, text, lowered string) (models.Intent, string) {
	switch {
	case classify.IsSentimentQuery(lowered):
		return models.IntentSentiment, a.handleSentiment(ctx, lowered)

	case classify.IsIPOQuery(lowered):
		return models.IntentIPO, a.handleIPO(ctx, lowered)
	}

	candidates := extract.AssetCandidates(lowered)

	switch {
	case classify.IsContextQuery(lowered):
		return models.IntentContext, a.Context.Run(ctx, candidates)

	case classify.IsEventQuery(lowered):
		return models.IntentEvent, a.Events.Run(ctx, candidates)

	case classify.IsRangeQuery(lowered):
		return models.IntentRange, a.HighLow.Run(ctx, candidates, classify.DetectTimeframe(lowered))

	case classify.IsPerformanceQuery(lowered):
		return models.IntentPerformance, a.Performance.Run(ctx, candidates, classify.DetectTimeframe(lowered))

	case classify.IsIndicatorQuery(lowered):
		return models.IntentIndicator, a.Indicators.Run(ctx, candidates)
	}

	if len(candidates) == 0 {
		// Nothing extractable. Let the model answer the raw question
		// under the conservative assistant rules.
		answer, err := a.LLM.Complete(ctx, llm.SystemPrompt, text)
		if err != nil {
			log.Printf("agent: fallback completion failed: %v", err)
			return models.IntentSnapshot, llmUnavailable
		}
		return models.IntentSnapshot, answer
	}

	if classify.IsCompareQuery(lowered) {
		return models.IntentCompare, a.Snapshot.Run(ctx, candidates, true)
	}
	return models.IntentSnapshot, a.Snapshot.Run(ctx, candidates, false)
}

// handleSentiment extracts the asset with the trailing-token heuristic
// and falls back to the model when the heuristic is unconvincing.
func (a *Agent) handleSentiment(ctx context.Context, lowered string) string {
	asset := extract.CleanCandidate(extract.SentimentAsset(lowered))
	if asset == "" || len(strings.Fields(asset)) > 2 {
		asset = extract.AssetAI(ctx, a.LLM, lowered)
	}
	if asset == "" {
		return capabilities.ClarifySentiment
	}
	return a.Sentiment.Run(ctx, asset)
}

func (a *Agent) handleIPO(ctx context.Context, lowered string) string {
	company := extract.IPOCompany(lowered)
	if company == "" {
		return ClarifyIPO
	}
	return a.IPO.Analyze(ctx, company).Render()
}

func (a *Agent) record(query string, intent models.Intent, answer string, latency time.Duration) {
	if a.Recorder == nil {
		return
	}
	if err := a.Recorder.SaveTurn(a.SessionID, query, intent.String(), answer, latency); err != nil {
		log.Printf("agent: record turn: %v", err)
	}
}
