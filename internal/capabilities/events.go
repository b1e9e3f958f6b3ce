package capabilities

import (
	"context"
	"fmt"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/extract"
	"github.com/viratraj194/Finance-Agent/internal/llm"
)

// ClarifyEvents is returned when no company could be extracted.
const ClarifyEvents = "Please mention the company name to check recent events."

const maxEventsPerAsset = 5

// Events explains recent news per asset. When no live news exists the
// model is asked for general context, explicitly labeled as not live.
type Events struct {
	News NewsSource
	LLM  llm.Completer
}

func (e *Events) withNews(ctx context.Context, asset string, lines []string) string {
	block := fmt.Sprintf("The following are recent news events related to %s:\n\n%s",
		extract.TitleCase(asset), strings.Join(lines, "\n"))

	return summarize(ctx, e.LLM, block,
		"Your task:\n"+
			"- Explain what happened\n"+
			"- Explain why these events matter\n"+
			"- Separate short-term impact vs long-term impact\n"+
			"- Explain potential portfolio relevance\n"+
			"- Do NOT give buy/sell advice\n"+
			"- Do NOT predict price levels\n"+
			"- Keep it factual and risk-aware")
}

func (e *Events) withoutNews(ctx context.Context, asset string) string {
	prompt := fmt.Sprintf(
		"No live, verifiable news was found for %s from current sources.\n\n"+
			"Provide contextual insight ONLY based on general business understanding:\n"+
			"- Explain what typically influences this company's stock\n"+
			"- Separate short-term vs long-term factors\n"+
			"- Clearly state this is NOT live news\n"+
			"- Do NOT invent events, analyst calls, numbers, or dates\n"+
			"- Do NOT give buy/sell advice",
		extract.TitleCase(asset))

	reply, err := e.LLM.Complete(ctx, llm.SystemPrompt, prompt)
	if err != nil || reply == "" {
		return fmt.Sprintf("No live news was found for %s, and analysis could not be generated at this time.",
			extract.TitleCase(asset))
	}
	return reply
}

// Run fetches news per candidate and joins the per-asset paragraphs.
func (e *Events) Run(ctx context.Context, candidates []string) string {
	if len(candidates) == 0 {
		return ClarifyEvents
	}

	var responses []string
	for _, asset := range candidates {
		items, err := e.News.Fetch(ctx, asset, maxEventsPerAsset)
		if err != nil || len(items) == 0 {
			responses = append(responses, e.withoutNews(ctx, asset))
			continue
		}

		var lines []string
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s (%s): %s", item.Title, item.Source, item.Description))
		}
		responses = append(responses, e.withNews(ctx, asset, lines))
	}

	return strings.Join(responses, "\n\n")
}
