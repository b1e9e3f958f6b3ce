package ipo

import (
	"context"
	"log"
	"regexp"
	"strconv"

	"github.com/viratraj194/Finance-Agent/internal/dataflows"
	"github.com/viratraj194/Finance-Agent/internal/models"
)

const (
	maxIPOPosts    = 20
	maxIPOArticles = 8
)

// DocumentSource acquires the filing view for a company.
type DocumentSource interface {
	Fetch(ctx context.Context, company string) (*models.IPODocument, error)
	GMPQuote(ctx context.Context, company string, priceBandHigh int) (*models.GMPQuote, error)
}

// DiscussionSource searches IPO-focused communities.
type DiscussionSource interface {
	FetchIPOPosts(ctx context.Context, company string, limit int) ([]models.RedditPost, error)
}

// CoverageSource pulls IPO press coverage.
type CoverageSource interface {
	FetchIPONews(ctx context.Context, company string, maxItems int) ([]models.NewsItem, error)
}

// Pipeline runs the IPO stages in order: document lookup, financial
// analysis, sentiment, red flags, grey market, report. Each stage is
// best-effort; a failed source logs and leaves its section empty.
type Pipeline struct {
	Docs       DocumentSource
	Discussion DiscussionSource
	Coverage   CoverageSource
}

var bandNumberRe = regexp.MustCompile(`\d+`)

// priceBandHigh extracts the upper bound of a band like "₹95 to ₹100".
func priceBandHigh(band string) int {
	nums := bandNumberRe.FindAllString(band, -1)
	if len(nums) == 0 {
		return 0
	}
	v, _ := strconv.Atoi(nums[len(nums)-1])
	return v
}

// Analyze produces the full report for one company. It never returns
// an error: when every source comes back empty the report says so.
func (p *Pipeline) Analyze(ctx context.Context, company string) *Report {
	report := &Report{Company: company}

	doc, err := p.Docs.Fetch(ctx, company)
	if err != nil {
		log.Printf("ipo: document lookup for %q failed: %v", company, err)
	}

	articles, err := p.Coverage.FetchIPONews(ctx, company, maxIPOArticles)
	if err != nil {
		log.Printf("ipo: coverage for %q failed: %v", company, err)
	}

	// A consumer brand may file under a differently named legal
	// entity. Retry the lookup once under the resolved name.
	if doc == nil {
		if entity := ResolveEntity(company, articles); entity != nil {
			retried, retryErr := p.Docs.Fetch(ctx, entity.Name)
			if retryErr == nil && retried != nil {
				doc = retried
				report.Company = entity.Name
			}
		}
	}
	report.Document = doc

	if doc != nil && doc.Financials != nil {
		report.Financials = AnalyzeFinancials(doc.Financials)
	}

	posts, err := p.Discussion.FetchIPOPosts(ctx, report.Company, maxIPOPosts)
	if err != nil {
		log.Printf("ipo: discussion for %q failed: %v", report.Company, err)
	}
	report.Sentiment = AnalyzeSentiment(posts, articles)

	if doc != nil {
		report.RedFlags = DetectRedFlags(doc)
	} else {
		report.RedFlags = models.RedFlagSet{
			Assessment: "No filing is available yet, so structural risks cannot be assessed.",
		}
	}

	report.GMP = p.lookupGMP(ctx, report.Company, doc, articles)
	report.State = ResolveState(doc, report.Sentiment)
	report.Confidence = Confidence(report.Financials, report.Sentiment, report.RedFlags)

	return report
}

func (p *Pipeline) lookupGMP(ctx context.Context, company string, doc *models.IPODocument, articles []models.NewsItem) *models.GMPQuote {
	bandHigh := 0
	if doc != nil {
		bandHigh = priceBandHigh(doc.Issue.PriceBand)
	}

	quote, err := p.Docs.GMPQuote(ctx, company, bandHigh)
	if err != nil {
		log.Printf("ipo: gmp lookup for %q failed: %v", company, err)
	}
	if quote != nil {
		return quote
	}
	return dataflows.InferGMPFromNews(articles)
}
