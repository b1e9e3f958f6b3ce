package ipo

import (
	"sort"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

var positiveWords = []string{
	"good", "strong", "positive", "profit", "growth",
	"subscribed", "oversubscribed", "demand", "well priced",
}

var negativeWords = []string{
	"bad", "poor", "loss", "overpriced", "risk",
	"avoid", "weak", "concern", "muted",
}

// themeWords are counted in a fixed order so tied themes rank
// deterministically.
var themeWords = []string{"valuation", "subscription", "growth", "profit", "risk"}

const maxSampleItems = 5

func keywordScore(text string, words []string) int {
	score := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			score++
		}
	}
	return score
}

// classify labels one discussion item by keyword presence. Equal
// positive and negative scores read as neutral.
func classify(text string) string {
	lowered := strings.ToLower(text)
	pos := keywordScore(lowered, positiveWords)
	neg := keywordScore(lowered, negativeWords)

	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	}
	return "neutral"
}

// AnalyzeSentiment classifies posts and articles and aggregates them
// into a retail-sentiment bundle. Posts drive the aggregate label;
// articles contribute themes and samples only.
func AnalyzeSentiment(posts []models.RedditPost, articles []models.NewsItem) models.SentimentBundle {
	bundle := models.SentimentBundle{
		PostsAnalyzed:    len(posts),
		ArticlesAnalyzed: len(articles),
	}

	themeCounts := map[string]int{}
	countThemes := func(text string) {
		lowered := strings.ToLower(text)
		for _, theme := range themeWords {
			if strings.Contains(lowered, theme) {
				themeCounts[theme]++
			}
		}
	}

	for _, p := range posts {
		switch classify(p.Title + " " + p.Selftext) {
		case "positive":
			bundle.Positive++
		case "negative":
			bundle.Negative++
		default:
			bundle.Neutral++
		}
		countThemes(p.Title + " " + p.Selftext)
	}
	for _, a := range articles {
		countThemes(a.Title + " " + a.Description)
	}

	bundle.Themes = topThemes(themeCounts, 3)
	bundle.SamplePosts = posts[:min(len(posts), maxSampleItems)]
	bundle.SampleNews = articles[:min(len(articles), maxSampleItems)]
	bundle.Assessment = aggregate(bundle)

	return bundle
}

func topThemes(counts map[string]int, n int) []string {
	themes := make([]string, 0, len(counts))
	for _, theme := range themeWords {
		if counts[theme] > 0 {
			themes = append(themes, theme)
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return counts[themes[i]] > counts[themes[j]]
	})

	if len(themes) > n {
		themes = themes[:n]
	}
	return themes
}

func aggregate(b models.SentimentBundle) string {
	switch {
	case b.PostsAnalyzed == 0:
		return "Low retail visibility."
	case b.Positive >= b.Negative*2:
		return "Strong positive retail sentiment."
	case b.Negative > b.Positive:
		return "Cautious to negative retail sentiment."
	}
	return "Retail interest present, sentiment broadly balanced."
}
