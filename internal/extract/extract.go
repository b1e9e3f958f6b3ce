// Package extract pulls asset-name candidates out of free text. The
// rule-based paths are heuristics, not parsers: they strip domain
// vocabulary and treat whatever survives as candidate names. When the
// rules produce nothing usable, an AI fallback asks the language model
// for the name alone.
package extract

import (
	"context"
	"strings"
	"unicode"
)

// stopWords is the domain vocabulary removed before grouping the
// remaining tokens into candidate phrases. A stop word breaks the
// current run and starts a new candidate.
var stopWords = map[string]bool{
	"price": true, "prices": true, "of": true, "share": true, "shares": true,
	"stock": true, "stocks": true,
	"compare": true, "vs": true, "versus": true, "which": true, "is": true,
	"are": true, "the": true, "and": true, "between": true, "tell": true,
	"me": true, "about": true, "how": true, "doing": true,
	"what": true, "explain": true, "explanation": true,
	"last": true, "previous": true, "month": true, "week": true, "year": true,
	"months": true, "weeks": true, "years": true, "yesterday": true,
	"quarter": true, "hour": true, "hours": true, "today": true,
	"intraday": true, "1h": true, "4h": true,
	"performance": true, "high": true, "low": true, "range": true,
	"indicator": true, "indicators": true, "bullish": true, "bearish": true,
	"breakout": true, "breakdown": true, "rsi": true, "sma": true,
	"ema": true, "ma": true,
	"news": true, "latest": true, "recent": true, "events": true,
	"event": true, "happened": true, "happen": true, "with": true,
	"update": true, "updates": true, "owner": true,
	"sentiment": true, "people": true, "saying": true, "reddit": true,
	"opinion": true, "fear": true, "panic": true,
}

// sentimentStopWords is the smaller set used on the looser sentiment
// path, where the asset name is assumed to sit at the end of the
// sentence.
var sentimentStopWords = map[string]bool{
	"sentiment": true, "reddit": true, "people": true, "saying": true,
	"opinion": true, "about": true, "on": true, "is": true, "there": true,
	"any": true, "what": true, "are": true,
	"bullish": true, "bearish": true, "fear": true, "panic": true,
}

// candidateJunk strips filler left around an extracted candidate.
var candidateJunk = map[string]bool{
	"say": true, "people": true, "what": true, "about": true, "for": true,
	"on": true, "reddit": true, "sentiment": true, "news": true,
	"latest": true, "recent": true,
}

// ipoJunk is removed before treating the remainder as an IPO name.
var ipoJunk = map[string]bool{
	"ipo": true, "apply": true, "analysis": true, "review": true,
	"should": true, "i": true, "invest": true, "in": true, "for": true,
}

func tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, ",", " "))
	return strings.Fields(text)
}

// AssetCandidates splits the text on stop words and returns the
// surviving token runs as candidate phrases, deduplicated in
// first-seen order, with single-character junk removed.
func AssetCandidates(text string) []string {
	words := tokenize(text)

	var candidates []string
	var current []string

	for _, word := range words {
		if stopWords[word] {
			if len(current) > 0 {
				candidates = append(candidates, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, word)
	}
	if len(current) > 0 {
		candidates = append(candidates, strings.Join(current, " "))
	}

	var cleaned []string
	seen := map[string]bool{}
	for _, c := range candidates {
		if len(c) > 1 && !seen[c] {
			seen[c] = true
			cleaned = append(cleaned, c)
		}
	}
	return cleaned
}

// SentimentAsset assumes the asset name ends the sentence and returns
// the last one or two meaningful tokens joined as a single candidate.
func SentimentAsset(text string) []string {
	words := tokenize(text)

	var kept []string
	for _, w := range words {
		if !sentimentStopWords[w] && len(w) > 1 {
			kept = append(kept, w)
		}
	}

	switch {
	case len(kept) >= 2:
		return []string{strings.Join(kept[len(kept)-2:], " ")}
	case len(kept) == 1:
		return []string{kept[0]}
	}
	return nil
}

// CleanCandidate normalizes a list-valued extraction to its first
// element and strips filler words from it.
func CleanCandidate(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	var kept []string
	for _, w := range strings.Fields(candidates[0]) {
		if !candidateJunk[w] {
			kept = append(kept, w)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// IPOCompany strips intent vocabulary and title-cases the remainder so
// downstream scrapers can match filing pages by name.
func IPOCompany(text string) string {
	var kept []string
	for _, w := range tokenize(text) {
		if !ipoJunk[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return TitleCase(strings.Join(kept, " "))
}

// TitleCase upper-cases the first letter of each space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Completer is the language-model surface the AI fallback needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const fallbackSystem = "You extract asset names only."

// AssetAI asks the language model for the asset name alone. It returns
// "" when the model reports the NONE sentinel, answers with something
// too long to be a name, or the call fails.
func AssetAI(ctx context.Context, llm Completer, userText string) string {
	prompt := "Extract the company or asset name from the text below.\n" +
		"Rules:\n" +
		"- Return ONLY the asset name\n" +
		"- No explanations\n" +
		"- No extra words\n" +
		"- If none found, return NONE\n\n" +
		"Text: " + userText

	result, err := llm.Complete(ctx, fallbackSystem, prompt)
	if err != nil {
		return ""
	}

	result = strings.TrimSpace(result)
	if result == "" || strings.EqualFold(result, "none") {
		return ""
	}
	if len(strings.Fields(result)) > 3 {
		return ""
	}

	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(result), "on reddit", ""))
}
