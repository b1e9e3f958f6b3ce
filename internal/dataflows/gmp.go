package dataflows

import (
	"bytes"
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

var (
	gmpRangeRe  = regexp.MustCompile(`(₹?\d+)\s*(?:to|–|-)\s*(₹?\d+)`)
	gmpNumberRe = regexp.MustCompile(`₹?\d{2,3}`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// gmpNewsKeywords mark articles that talk about grey-market pricing.
var gmpNewsKeywords = []string{
	"grey market premium",
	"gmp",
	"listing premium",
	"grey market buzz",
	"expected premium",
}

// GMPQuote looks up the grey-market premium for an IPO from its GMP
// page. Nil result means the premium is not disclosed.
func (dc *IPODocsClient) GMPQuote(ctx context.Context, company string, priceBandHigh int) (*models.GMPQuote, error) {
	slug := strings.ReplaceAll(strings.ToLower(company), " ", "-")
	pageURL := "https://www.chittorgarh.com/ipo/ipo-gmp/" + slug + "/"

	resp, err := dc.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 || !strings.Contains(string(resp.Body()), "GMP") {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, err
	}

	m := gmpRangeRe.FindStringSubmatch(doc.Text())
	if m == nil {
		return nil, nil
	}

	low, _ := strconv.Atoi(nonDigitRe.ReplaceAllString(m[1], ""))
	high, _ := strconv.Atoi(nonDigitRe.ReplaceAllString(m[2], ""))

	quote := &models.GMPQuote{
		Low:        low,
		High:       high,
		Trend:      "stable",
		Source:     "chittorgarh.com",
		Confidence: "medium",
	}

	if priceBandHigh > 0 {
		quote.HasImplied = true
		quote.ImpliedPct = [2]int{
			int(float64(low)/float64(priceBandHigh)*100 + 0.5),
			int(float64(high)/float64(priceBandHigh)*100 + 0.5),
		}
	}
	return quote, nil
}

// InferGMPFromNews falls back to media commentary when no GMP page
// exists, extracting a rough range from premium-related headlines.
func InferGMPFromNews(items []models.NewsItem) *models.GMPQuote {
	var hits []string
	for _, n := range items {
		text := strings.ToLower(n.Title + " " + n.Description)
		for _, kw := range gmpNewsKeywords {
			if strings.Contains(text, kw) {
				hits = append(hits, text)
				break
			}
		}
	}
	if len(hits) == 0 {
		return nil
	}

	valueSet := map[int]bool{}
	for _, h := range hits {
		for _, raw := range gmpNumberRe.FindAllString(h, -1) {
			if v, err := strconv.Atoi(nonDigitRe.ReplaceAllString(raw, "")); err == nil {
				valueSet[v] = true
			}
		}
	}

	if len(valueSet) == 0 {
		// Commentary exists but discloses no numbers.
		return &models.GMPQuote{Trend: "forming", Source: "news consensus", Confidence: "low"}
	}

	values := make([]int, 0, len(valueSet))
	for v := range valueSet {
		values = append(values, v)
	}
	sort.Ints(values)

	return &models.GMPQuote{
		Low:        values[0],
		High:       values[len(values)-1],
		Trend:      "forming",
		Source:     "news consensus",
		Confidence: "medium",
	}
}
