package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Intent is the routing category derived from a user message.
type Intent int

const (
	IntentSnapshot Intent = iota
	IntentCompare
	IntentContext
	IntentSentiment
	IntentIPO
	IntentEvent
	IntentRange
	IntentPerformance
	IntentIndicator
)

func (i Intent) String() string {
	switch i {
	case IntentSnapshot:
		return "snapshot"
	case IntentCompare:
		return "compare"
	case IntentContext:
		return "context"
	case IntentSentiment:
		return "sentiment"
	case IntentIPO:
		return "ipo"
	case IntentEvent:
		return "event"
	case IntentRange:
		return "range"
	case IntentPerformance:
		return "performance"
	case IntentIndicator:
		return "indicator"
	}
	return "unknown"
}

// Query is one incoming message after classification and extraction.
// It lives for a single turn and is never persisted.
type Query struct {
	Raw        string
	Intent     Intent
	Candidates []string
}

// ResolutionStatus tells callers whether a free-text candidate mapped
// to a listed symbol, and whether that symbol had data behind it.
type ResolutionStatus int

const (
	Unresolved ResolutionStatus = iota
	ResolvedNoData
	ResolvedWithData
)

// AssetSnapshot is the current-price view of one resolved symbol.
type AssetSnapshot struct {
	Symbol    string
	Status    ResolutionStatus
	Price     decimal.Decimal
	PrevClose decimal.Decimal
	PrevDate  string
	Change    decimal.Decimal
	ChangePct decimal.Decimal
	Direction string // up, down, flat
}

// RangeStats is the high/low band over one timeframe.
type RangeStats struct {
	Symbol    string
	Timeframe string
	High      decimal.Decimal
	Low       decimal.Decimal
	StartDate string
	EndDate   string
}

// Performance is the start-to-end move over one timeframe.
type Performance struct {
	Symbol     string
	Timeframe  string
	StartPrice decimal.Decimal
	EndPrice   decimal.Decimal
	Change     decimal.Decimal
	ChangePct  decimal.Decimal
	StartDate  string
	EndDate    string
}

// IndicatorSet holds raw indicator values for one symbol. Signal
// labels are derived from these values alone.
type IndicatorSet struct {
	Symbol string
	Price  float64
	SMA20  float64
	SMA50  float64
	SMA200 float64
	EMA20  float64
	EMA50  float64
	RSI14  float64
}

// SignalSet is the deterministic interpretation of an IndicatorSet.
type SignalSet struct {
	Trend           string
	TrendReason     string
	Momentum        string
	MomentumReason  string
	Structure       string
	StructureReason string
}

// NewsItem is one article from the news collaborator.
type NewsItem struct {
	Title       string
	Description string
	Source      string
	PublishedAt string
	URL         string
}

// RedditPost is one discussion item from the social collaborator.
type RedditPost struct {
	Title     string
	Selftext  string
	Subreddit string
	Score     int
	Comments  int
	Created   time.Time
	URL       string
}

// IPOFinancials is the raw statement block parsed from a filing page.
// Revenue and profit are keyed by the page's period labels
// (e.g. "31Mar2024", "30Sep2025") before fiscal-year normalization.
type IPOFinancials struct {
	Revenue      map[string]float64
	Profit       map[string]float64
	Debt         float64
	Equity       float64
	IsProfitable bool
	GrowthTrend  string
}

// IPOIssue carries the offer terms visible on the filing page.
type IPOIssue struct {
	PriceBand    string
	IssueSize    string
	Subscription string
	OFSPct       float64
}

// IPODocument is the acquired filing view for one company.
type IPODocument struct {
	Company    string
	URL        string
	Financials *IPOFinancials
	Issue      IPOIssue
	Sector     string
	Source     string
}

// SentimentBundle aggregates classified discussion items for an IPO.
// Positive+Neutral+Negative always equals PostsAnalyzed.
type SentimentBundle struct {
	PostsAnalyzed    int
	ArticlesAnalyzed int
	Positive         int
	Neutral          int
	Negative         int
	Themes           []string
	SamplePosts      []RedditPost
	SampleNews       []NewsItem
	Assessment       string
}

// RedFlagSet lists triggered structural risk rules.
type RedFlagSet struct {
	Flags      []string
	Notes      []string
	Assessment string
}

// GMPQuote is a grey-market premium reading, when one is available.
type GMPQuote struct {
	Low        int
	High       int
	ImpliedPct [2]int
	HasImplied bool
	Trend      string
	Source     string
	Confidence string
}
