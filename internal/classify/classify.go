// Package classify turns free text into a routing decision using fixed
// keyword sets. All predicates expect lower-cased input and test plain
// substring membership; the first matching category wins.
package classify

import "strings"

var sentimentKeywords = []string{
	"sentiment", "people saying", "reddit", "opinion",
	"fear", "panic", "bullish", "bearish",
}

var ipoKeywords = []string{
	"ipo", "apply", "listing", "drhp", "issue",
	"should i apply", "ipo analysis", "ipo review",
}

var eventKeywords = []string{
	"news", "events", "latest", "recent",
	"announcement", "updates", "what happened",
}

var rangeKeywords = []string{"high", "low", "high low", "range"}

var performanceKeywords = []string{"performance", "return", "returns", "gained", "lost"}

var indicatorKeywords = []string{
	"indicator", "indicators", "moving average", "ma", "ema", "sma",
	"rsi", "bullish", "bearish", "breakout", "breakdown",
}

var contextKeywords = []string{"what is", "tell me about", "explain", "about"}

var compareKeywords = []string{"compare", "vs", "versus", "which", "difference", "better"}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func IsSentimentQuery(text string) bool { return containsAny(text, sentimentKeywords) }

func IsIPOQuery(text string) bool { return containsAny(text, ipoKeywords) }

func IsEventQuery(text string) bool { return containsAny(text, eventKeywords) }

func IsRangeQuery(text string) bool { return containsAny(text, rangeKeywords) }

func IsPerformanceQuery(text string) bool { return containsAny(text, performanceKeywords) }

func IsIndicatorQuery(text string) bool { return containsAny(text, indicatorKeywords) }

func IsContextQuery(text string) bool { return containsAny(text, contextKeywords) }

func IsCompareQuery(text string) bool { return containsAny(text, compareKeywords) }

// DetectIntent picks the default-branch intent: context phrases first,
// then comparison words, otherwise a plain snapshot.
func DetectIntent(text string) string {
	for _, phrase := range contextKeywords {
		if strings.Contains(text, phrase) {
			return "context"
		}
	}
	for _, word := range compareKeywords {
		if strings.Contains(text, word) {
			return "compare"
		}
	}
	return "snapshot"
}

// timeframePhrases maps spoken timeframe phrases to discrete tokens.
// Checked in declaration order.
var timeframePhrases = []struct {
	phrase string
	token  string
}{
	{"1 hour", "1h"},
	{"one hour", "1h"},
	{"last hour", "1h"},
	{"1h", "1h"},

	{"4 hour", "4h"},
	{"four hour", "4h"},
	{"last 4 hours", "4h"},
	{"4h", "4h"},

	{"today", "today"},
	{"intraday", "today"},

	{"yesterday", "1d"},
	{"previous day", "1d"},
	{"last day", "1d"},

	{"last week", "1w"},
	{"previous week", "1w"},

	{"last month", "1m"},
	{"previous month", "1m"},

	{"last quarter", "3m"},
	{"last 3 months", "3m"},

	{"last 6 months", "6m"},

	{"last year", "1y"},
	{"previous year", "1y"},

	{"last 3 years", "3y"},
	{"last 5 years", "5y"},
}

// DetectTimeframe returns the timeframe token mentioned in the text,
// or "" when no known phrase occurs.
func DetectTimeframe(text string) string {
	for _, tf := range timeframePhrases {
		if strings.Contains(text, tf.phrase) {
			return tf.token
		}
	}
	return ""
}
