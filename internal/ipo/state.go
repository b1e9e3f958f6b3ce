package ipo

import "github.com/viratraj194/Finance-Agent/internal/models"

// State places an IPO on its lifecycle. Speculation means no filing
// exists yet but the street is already talking.
type State int

const (
	StateUnknown State = iota
	StateFiled
	StatePreApply
	StateOpen
	StateSpeculation
)

func (s State) String() string {
	switch s {
	case StateFiled:
		return "FILED"
	case StatePreApply:
		return "PRE_APPLY"
	case StateOpen:
		return "OPEN"
	case StateSpeculation:
		return "SPECULATION"
	}
	return "UNKNOWN"
}

// ResolveState derives the lifecycle stage from what the filing page
// and the discussion stream show.
func ResolveState(doc *models.IPODocument, sentiment models.SentimentBundle) State {
	if doc == nil {
		if sentiment.PostsAnalyzed > 0 {
			return StateSpeculation
		}
		return StateUnknown
	}

	hasFinancials := doc.Financials != nil &&
		(len(doc.Financials.Revenue) > 0 || len(doc.Financials.Profit) > 0)

	// Subscription figures only exist once the issue is open, so they
	// outrank the price band even when the band was not parsed.
	switch {
	case doc.Issue.Subscription != "":
		return StateOpen
	case doc.Issue.PriceBand != "":
		return StatePreApply
	case hasFinancials:
		return StateFiled
	}
	return StateUnknown
}
