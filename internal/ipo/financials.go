// Package ipo implements the composite IPO report pipeline: document
// acquisition, financial normalization, red-flag rules, sentiment
// aggregation, and final narrative assembly. Every stage degrades to a
// neutral default instead of failing; an IPO query always produces a
// report.
package ipo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

// FinancialAnalysis is the normalized statement view with derived
// growth metrics. Fiscal years follow the Indian April-March
// convention; partial years are kept for display but excluded from
// growth math.
type FinancialAnalysis struct {
	Revenue map[int]float64
	Profit  map[int]float64
	Partial map[int]bool
	YoY     map[int]float64
	CAGR    *float64

	MarginTrend string
	GrowthLabel string
	Assessment  string
}

// fiscalYear maps a period label to its fiscal year. Labels ending in
// Mar<YYYY> close fiscal year YYYY; Sep<YYYY> sits inside fiscal year
// YYYY+1 and marks a half-year (partial) reading.
func fiscalYear(label string) (year int, partial bool, ok bool) {
	if len(label) < 4 {
		return 0, false, false
	}

	tail, err := strconv.Atoi(label[len(label)-4:])
	if err != nil {
		return 0, false, false
	}

	switch {
	case strings.Contains(label, "Mar"):
		return tail, false, true
	case strings.Contains(label, "Sep"):
		return tail + 1, true, true
	}
	return 0, false, false
}

func normalize(raw map[string]float64, years map[int]float64, partial map[int]bool) {
	for label, value := range raw {
		year, isPartial, ok := fiscalYear(label)
		if !ok {
			continue
		}
		years[year] = value
		if isPartial {
			partial[year] = true
		}
	}
}

func sortedYears(series map[int]float64) []int {
	years := make([]int, 0, len(series))
	for y := range series {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}

// yoyGrowth computes year-over-year revenue growth between consecutive
// entries of the sorted series. A pair whose earlier value is not
// positive is skipped, never divided.
func yoyGrowth(revenue map[int]float64) map[int]float64 {
	yoy := map[int]float64{}
	years := sortedYears(revenue)

	for i := 1; i < len(years); i++ {
		prev := revenue[years[i-1]]
		curr := revenue[years[i]]
		if prev > 0 {
			yoy[years[i]] = round2f((curr - prev) / prev * 100)
		}
	}
	return yoy
}

// cagr is the compound annual growth rate across the full series as a
// percentage, or nil when fewer than two periods exist or the start
// value is not positive.
func cagr(revenue map[int]float64) *float64 {
	if len(revenue) < 2 {
		return nil
	}

	years := sortedYears(revenue)
	start := revenue[years[0]]
	end := revenue[years[len(years)-1]]
	n := float64(len(years) - 1)

	if start <= 0 {
		return nil
	}

	v := round2f((math.Pow(end/start, 1/n) - 1) * 100)
	return &v
}

// marginTrend compares the profit margin of the two most recent fiscal
// years with both revenue and profit on record.
func marginTrend(revenue, profit map[int]float64) string {
	var common []int
	for _, y := range sortedYears(revenue) {
		if _, ok := profit[y]; ok {
			common = append(common, y)
		}
	}
	if len(common) < 2 {
		return "insufficient data"
	}

	latest := common[len(common)-1]
	prev := common[len(common)-2]
	if revenue[latest] <= 0 || revenue[prev] <= 0 {
		return "insufficient data"
	}

	lastMargin := profit[latest] / revenue[latest]
	prevMargin := profit[prev] / revenue[prev]

	switch {
	case lastMargin > prevMargin:
		return "improving"
	case lastMargin < prevMargin:
		return "compressed"
	}
	return "stable"
}

func growthLabel(c *float64) string {
	switch {
	case c != nil && *c >= 15:
		return "strong growth"
	case c != nil && *c >= 8:
		return "moderate growth"
	}
	return "low growth"
}

// completedOnly drops partial fiscal years from a series.
func completedOnly(series map[int]float64, partial map[int]bool) map[int]float64 {
	out := map[int]float64{}
	for y, v := range series {
		if !partial[y] {
			out[y] = v
		}
	}
	return out
}

// AnalyzeFinancials normalizes the raw statement and derives the
// growth metrics. Partial (half-year) readings are excluded from YoY
// and CAGR.
func AnalyzeFinancials(fin *models.IPOFinancials) *FinancialAnalysis {
	a := &FinancialAnalysis{
		Revenue: map[int]float64{},
		Profit:  map[int]float64{},
		Partial: map[int]bool{},
	}

	normalize(fin.Revenue, a.Revenue, a.Partial)
	normalize(fin.Profit, a.Profit, a.Partial)

	completed := completedOnly(a.Revenue, a.Partial)
	a.YoY = yoyGrowth(completed)
	a.CAGR = cagr(completed)

	a.MarginTrend = marginTrend(a.Revenue, a.Profit)
	a.GrowthLabel = growthLabel(a.CAGR)

	profitability := "losses"
	if fin.IsProfitable {
		profitability = "profitability"
	}
	a.Assessment = fmt.Sprintf("%s business with %s and %s margins.",
		capitalize(a.GrowthLabel), profitability, a.MarginTrend)

	return a
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
