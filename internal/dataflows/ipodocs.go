package dataflows

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

const ipoListURL = "https://www.chittorgarh.com/report/mainboard-ipo-list-in-india-bse-nse/83/"

var (
	digitRe    = regexp.MustCompile(`\d`)
	amountRe   = regexp.MustCompile(`[^\d.-]`)
	ofsShareRe = regexp.MustCompile(`(?i)offer\s+for\s+sale.*?([\d.]+)\s*%`)
)

// IPODocsClient scrapes public IPO filing summaries. Parsing is
// best-effort: a company with no matching page yields a nil document,
// not an error.
type IPODocsClient struct {
	http *resty.Client
}

func NewIPODocsClient() *IPODocsClient {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0")

	return &IPODocsClient{http: client}
}

func (dc *IPODocsClient) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := dc.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode())
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
}

// findIPOPage locates the filing page for a company on the mainboard
// list, or "" when no anchor matches.
func (dc *IPODocsClient) findIPOPage(ctx context.Context, company string) (string, error) {
	doc, err := dc.document(ctx, ipoListURL)
	if err != nil {
		return "", err
	}

	lowered := strings.ToLower(company)
	pageURL := ""

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(strings.ToLower(a.Text()), lowered) && strings.Contains(href, "/ipo/") {
			if strings.HasPrefix(href, "http") {
				pageURL = href
			} else {
				pageURL = "https://www.chittorgarh.com" + href
			}
			return false
		}
		return true
	})
	return pageURL, nil
}

// parseFinancials reads the statement table: period labels come from
// the header row (whitespace removed, e.g. "31Mar2024"), values from
// the revenue and profit-after-tax rows.
func parseFinancials(doc *goquery.Document) *models.IPOFinancials {
	fin := &models.IPOFinancials{
		Revenue: map[string]float64{},
		Profit:  map[string]float64{},
	}
	debt := map[string]float64{}
	equity := map[string]float64{}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		text := strings.ToLower(table.Text())
		if !strings.Contains(text, "profit after tax") && !strings.Contains(text, "total revenue") {
			return
		}

		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		var headers []string
		rows.First().Find("th, td").Each(func(_ int, c *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(c.Text()))
		})

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			var cols []string
			row.Find("th, td").Each(func(_ int, c *goquery.Selection) {
				cols = append(cols, strings.TrimSpace(c.Text()))
			})
			if len(cols) == 0 {
				return
			}

			label := strings.ToLower(cols[0])
			for i := 1; i < len(cols) && i < len(headers); i++ {
				period := strings.ReplaceAll(headers[i], " ", "")
				raw := strings.ReplaceAll(cols[i], ",", "")
				if !digitRe.MatchString(raw) {
					continue
				}

				num, err := strconv.ParseFloat(amountRe.ReplaceAllString(raw, ""), 64)
				if err != nil {
					continue
				}

				switch {
				case strings.Contains(label, "revenue") || strings.Contains(label, "income"):
					fin.Revenue[period] = num
				case strings.Contains(label, "profit after tax") || label == "pat":
					fin.Profit[period] = num
				case strings.Contains(label, "borrowing") || strings.Contains(label, "total debt"):
					debt[period] = num
				case strings.Contains(label, "net worth") || strings.Contains(label, "total equity"):
					equity[period] = num
				}
			}
		})
	})

	for _, v := range fin.Profit {
		if v > 0 {
			fin.IsProfitable = true
			break
		}
	}

	fin.Debt = latestValue(debt)
	fin.Equity = latestValue(equity)
	fin.GrowthTrend = crudeGrowthTrend(fin.Revenue)
	return fin
}

// latestValue picks the most recent period in label order, or 0 when
// the row was absent.
func latestValue(series map[string]float64) float64 {
	if len(series) == 0 {
		return 0
	}

	labels := make([]string, 0, len(series))
	for label := range series {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return series[labels[len(labels)-1]]
}

// crudeGrowthTrend compares the last two periods in label order; the
// real fiscal-year analysis happens downstream.
func crudeGrowthTrend(revenue map[string]float64) string {
	if len(revenue) < 2 {
		return "insufficient data"
	}

	labels := make([]string, 0, len(revenue))
	for label := range revenue {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if revenue[labels[len(labels)-1]] > revenue[labels[len(labels)-2]] {
		return "improving"
	}
	return "flat"
}

func parseIssue(doc *goquery.Document) models.IPOIssue {
	var issue models.IPOIssue

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		key := strings.ToLower(strings.TrimSpace(cols.Eq(0).Text()))
		val := strings.TrimSpace(cols.Eq(1).Text())

		switch {
		case strings.Contains(key, "price band"):
			issue.PriceBand = val
		case strings.Contains(key, "issue size"):
			issue.IssueSize = val
		case strings.Contains(key, "subscription"):
			issue.Subscription = val
		}
	})

	if m := ofsShareRe.FindStringSubmatch(doc.Text()); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			issue.OFSPct = pct
		}
	}

	return issue
}

// Fetch acquires the filing view for a company. A nil document with a
// nil error means no matching filing page exists.
func (dc *IPODocsClient) Fetch(ctx context.Context, company string) (*models.IPODocument, error) {
	pageURL, err := dc.findIPOPage(ctx, company)
	if err != nil {
		return nil, err
	}
	if pageURL == "" {
		return nil, nil
	}

	doc, err := dc.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return &models.IPODocument{
		Company:    company,
		URL:        pageURL,
		Financials: parseFinancials(doc),
		Issue:      parseIssue(doc),
		Sector:     detectSector(doc.Text()),
		Source:     "chittorgarh.com",
	}, nil
}

var sectorHints = []string{
	"infrastructure", "commodities", "shipping",
	"pharmaceutical", "technology", "financial services",
}

func detectSector(text string) string {
	lowered := strings.ToLower(text)
	for _, hint := range sectorHints {
		if strings.Contains(lowered, hint) {
			return hint
		}
	}
	return ""
}
