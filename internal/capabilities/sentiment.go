package capabilities

import (
	"context"
	"fmt"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/extract"
	"github.com/viratraj194/Finance-Agent/internal/llm"
)

// ClarifySentiment is returned when no asset could be extracted.
const ClarifySentiment = "Please mention the company or asset you want sentiment on."

const maxAttentionPosts = 6

// Sentiment reports what investors are discussing about one asset.
// It takes a single already-extracted asset name; normalization of
// list-valued extraction happens in the dispatcher.
type Sentiment struct {
	Social SocialSource
	LLM    llm.Completer
}

func (s *Sentiment) Run(ctx context.Context, asset string) string {
	if asset == "" {
		return ClarifySentiment
	}

	posts, err := s.Social.FetchPosts(ctx, asset, maxAttentionPosts)
	if err != nil || len(posts) == 0 {
		return fmt.Sprintf("No meaningful Reddit discussion was found for %s.", extract.TitleCase(asset))
	}

	var points []string
	for _, p := range posts {
		points = append(points, fmt.Sprintf("- (%s, score %d): %s", p.Subreddit, p.Score, p.Title))
	}

	analysisInput := fmt.Sprintf("Reddit discussions related to %s:\n\n%s", asset, strings.Join(points, "\n"))

	prompt := "You are a conservative equity research analyst.\n\n" +
		analysisInput + "\n\n" +
		"Provide a concise investor-focused assessment:\n" +
		"- Summarize the dominant narrative\n" +
		"- Describe the emotional tone\n" +
		"- Assess whether this is short-term noise, medium-term uncertainty, " +
		"or potential long-term risk\n" +
		"- Explain portfolio relevance (monitor vs concern)\n" +
		"- Do NOT give buy/sell advice\n" +
		"- Do NOT predict price"

	reply, err := s.LLM.Complete(ctx, llm.SystemPrompt, prompt)
	if err != nil || reply == "" {
		return analysisInput
	}
	return reply
}
