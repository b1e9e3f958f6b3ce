package capabilities

import (
	"context"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/llm"
)

const (
	// ClarifyContextAsset is returned when no candidate could be
	// extracted from the question at all.
	ClarifyContextAsset = "Please mention the company or asset you want to know about."

	// ClarifyContext is returned when candidates existed but none
	// resolved to a listed symbol.
	ClarifyContext = "I couldn't identify the asset clearly. " +
		"Please try using the company name."
)

// contextSystem constrains the model to descriptive reference answers.
const contextSystem = `You are a financial reference assistant.

Rules:
- Explain what the asset is, not whether it is good or bad
- Do NOT give investment advice
- Do NOT mention prices or performance
- Keep explanations neutral, factual, and concise
- If unsure, say so clearly`

// Context answers "what is X" questions with a symbol-anchored
// description, one block per resolved asset.
type Context struct {
	Market MarketData
	LLM    llm.Completer
}

func (c *Context) describe(ctx context.Context, query, symbol string) string {
	prompt := "Asset identifier:\n" +
		"- Query: " + query + "\n" +
		"- Symbol: " + symbol + "\n\n" +
		"Explain in 2-3 sentences:\n" +
		"- What this asset represents\n" +
		"- The sector or category it belongs to\n" +
		"- What kind of business or exposure it has\n\n" +
		"Do not include prices, performance, or opinions."

	desc, err := c.LLM.Complete(ctx, contextSystem, prompt)
	if err != nil || desc == "" {
		return ""
	}
	return desc
}

// Run resolves each candidate and returns the joined descriptions.
func (c *Context) Run(ctx context.Context, candidates []string) string {
	if len(candidates) == 0 {
		return ClarifyContextAsset
	}

	var replies []string
	for _, candidate := range candidates {
		res := c.Market.Resolve(ctx, candidate)
		if res.Symbol == "" {
			continue
		}
		if desc := c.describe(ctx, candidate, res.Symbol); desc != "" {
			replies = append(replies, res.Symbol+":\n"+desc)
		}
	}

	if len(replies) == 0 {
		return ClarifyContext
	}
	return strings.Join(replies, "\n\n")
}
