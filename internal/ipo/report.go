package ipo

import (
	"fmt"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

const (
	confidenceBase = 60
	confidenceMin  = 55
	confidenceMax  = 80
)

// Confidence scores how decision-ready the evidence is. The number
// reflects information quality, not a buy or sell call.
func Confidence(fin *FinancialAnalysis, sentiment models.SentimentBundle, flags models.RedFlagSet) int {
	score := confidenceBase

	if fin != nil {
		if fin.CAGR != nil && *fin.CAGR > 15 {
			score += 5
		}
		if strings.HasPrefix(strings.ToLower(fin.Assessment), "strong") {
			score += 5
		}
	}
	if strings.HasPrefix(strings.ToLower(sentiment.Assessment), "strong") {
		score += 5
	}
	if len(flags.Flags) > 0 {
		score -= 5
	}

	if score < confidenceMin {
		score = confidenceMin
	}
	if score > confidenceMax {
		score = confidenceMax
	}
	return score
}

// Report is everything the pipeline learned about one IPO.
type Report struct {
	Company    string
	State      State
	Document   *models.IPODocument
	Financials *FinancialAnalysis
	Sentiment  models.SentimentBundle
	RedFlags   models.RedFlagSet
	GMP        *models.GMPQuote
	Confidence int
}

// Render assembles the final narrative. Sections degrade individually:
// a missing filing narrows the fundamentals section instead of
// suppressing the report.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "IPO Analysis: %s\n", r.Company)
	fmt.Fprintf(&b, "Stage: %s\n\n", r.State)

	b.WriteString("1. Business Fundamentals\n")
	r.renderFundamentals(&b)

	b.WriteString("\n2. Issue Structure\n")
	r.renderIssue(&b)

	b.WriteString("\n3. Retail Sentiment\n")
	r.renderSentiment(&b)

	if r.GMP != nil {
		b.WriteString("\n4. Grey Market Premium\n")
		r.renderGMP(&b)
		b.WriteString("\n5. Risk Factors\n")
	} else {
		b.WriteString("\n4. Risk Factors\n")
	}
	r.renderRedFlags(&b)

	fmt.Fprintf(&b, "\nFinal IPO Entry Confidence: %d%%\n", r.Confidence)
	b.WriteString("This reflects information quality and visibility, not an investment recommendation.\n")

	return b.String()
}

func (r *Report) renderFundamentals(b *strings.Builder) {
	if r.Financials == nil || len(r.Financials.Revenue) == 0 {
		b.WriteString("- No audited financials are available yet. Fundamental analysis is limited to public commentary.\n")
		return
	}

	fin := r.Financials
	for _, year := range sortedYears(fin.Revenue) {
		suffix := ""
		if fin.Partial[year] {
			suffix = " (partial year)"
		}
		line := fmt.Sprintf("- FY%d: revenue %.1f", year, fin.Revenue[year])
		if profit, ok := fin.Profit[year]; ok {
			line += fmt.Sprintf(", profit %.1f", profit)
		}
		b.WriteString(line + suffix + "\n")
	}

	for _, year := range sortedYears(fin.YoY) {
		fmt.Fprintf(b, "- FY%d YoY revenue growth: %.2f%%\n", year, fin.YoY[year])
	}
	if fin.CAGR != nil {
		fmt.Fprintf(b, "- Revenue CAGR: %.2f%%\n", *fin.CAGR)
	}
	fmt.Fprintf(b, "- Margin trend: %s\n", fin.MarginTrend)
	fmt.Fprintf(b, "- Assessment: %s\n", fin.Assessment)
}

func (r *Report) renderIssue(b *strings.Builder) {
	if r.Document == nil {
		b.WriteString("- No filing has been located. Issue terms are not public yet.\n")
		return
	}

	issue := r.Document.Issue
	wrote := false
	if issue.PriceBand != "" {
		fmt.Fprintf(b, "- Price band: %s\n", issue.PriceBand)
		wrote = true
	}
	if issue.IssueSize != "" {
		fmt.Fprintf(b, "- Issue size: %s\n", issue.IssueSize)
		wrote = true
	}
	if issue.Subscription != "" {
		fmt.Fprintf(b, "- Subscription: %s\n", issue.Subscription)
		wrote = true
	}
	if issue.OFSPct > 0 {
		fmt.Fprintf(b, "- Offer for sale share: ~%.0f%%\n", issue.OFSPct)
		wrote = true
	}
	if !wrote {
		b.WriteString("- Offer terms have not been announced.\n")
	}
}

func (r *Report) renderSentiment(b *strings.Builder) {
	s := r.Sentiment
	fmt.Fprintf(b, "- Posts analyzed: %d, articles: %d\n", s.PostsAnalyzed, s.ArticlesAnalyzed)
	if s.PostsAnalyzed > 0 {
		fmt.Fprintf(b, "- Breakdown: %d positive, %d neutral, %d negative\n",
			s.Positive, s.Neutral, s.Negative)
	}
	if len(s.Themes) > 0 {
		fmt.Fprintf(b, "- Recurring themes: %s\n", strings.Join(s.Themes, ", "))
	}
	fmt.Fprintf(b, "- Assessment: %s\n", s.Assessment)
}

func (r *Report) renderGMP(b *strings.Builder) {
	g := r.GMP
	if g.High > 0 {
		fmt.Fprintf(b, "- Reported premium: ₹%d to ₹%d (%s)\n", g.Low, g.High, g.Source)
	} else {
		fmt.Fprintf(b, "- Premium is being discussed but no figure is disclosed yet (%s)\n", g.Source)
	}
	if g.HasImplied {
		fmt.Fprintf(b, "- Implied listing gain: %d%% to %d%% over the upper band\n",
			g.ImpliedPct[0], g.ImpliedPct[1])
	}
	if g.Trend != "" {
		fmt.Fprintf(b, "- Trend: %s\n", g.Trend)
	}
	fmt.Fprintf(b, "- Confidence in reading: %s. Grey market figures are unofficial and volatile.\n", g.Confidence)
}

func (r *Report) renderRedFlags(b *strings.Builder) {
	for i, flag := range r.RedFlags.Flags {
		fmt.Fprintf(b, "- %s: %s\n", flag, r.RedFlags.Notes[i])
	}
	fmt.Fprintf(b, "- Assessment: %s\n", r.RedFlags.Assessment)
}
