package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

const yahooSearchURL = "https://query1.finance.yahoo.com/v1/finance/search"

// nseExchangeCode is Yahoo's code for the National Stock Exchange of
// India; resolution only accepts NSE listings.
const nseExchangeCode = "NSI"

// ResolveStatus distinguishes "no such listing" from a collaborator
// failure, so capabilities can treat them differently if they need to.
type ResolveStatus int

const (
	ResolveFound ResolveStatus = iota
	ResolveNotFound
	ResolveError
)

// Resolution is the outcome of mapping free text to a listed symbol.
type Resolution struct {
	Status ResolveStatus
	Symbol string
	Err    error
}

// YahooClient resolves names and fetches price data from Yahoo
// Finance, using the public search endpoint for resolution and
// finance-go for quotes and charts.
type YahooClient struct {
	http *resty.Client
}

func NewYahooClient() *YahooClient {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("User-Agent", "FinanceAgent/1.0")

	return &YahooClient{http: client}
}

type yahooSearchResponse struct {
	Quotes []struct {
		Symbol   string `json:"symbol"`
		Exchange string `json:"exchange"`
	} `json:"quotes"`
}

// Resolve maps a company name or ticker fragment to an NSE symbol.
func (yc *YahooClient) Resolve(ctx context.Context, query string) Resolution {
	resp, err := yc.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           query,
			"quotesCount": "5",
			"newsCount":   "0",
		}).
		Get(yahooSearchURL)
	if err != nil {
		return Resolution{Status: ResolveError, Err: fmt.Errorf("yahoo search: %w", err)}
	}
	if resp.StatusCode() != 200 {
		return Resolution{Status: ResolveError, Err: fmt.Errorf("yahoo search: HTTP %d", resp.StatusCode())}
	}

	var result yahooSearchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return Resolution{Status: ResolveError, Err: fmt.Errorf("yahoo search: parse: %w", err)}
	}

	for _, q := range result.Quotes {
		if q.Exchange == nseExchangeCode {
			return Resolution{Status: ResolveFound, Symbol: q.Symbol}
		}
	}
	return Resolution{Status: ResolveNotFound}
}

// bar is one chart candle with its trading day.
type bar struct {
	Date  time.Time
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

func fetchBars(symbol string, start, end time.Time, interval datetime.Interval) ([]bar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: interval,
	}

	iter := chart.Get(params)

	var bars []bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, bar{
			Date:  time.Unix(int64(b.Timestamp), 0),
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("chart data for %s: %w", symbol, err)
	}
	return bars, nil
}

// Quote builds the current snapshot for a symbol from its last two
// daily closes.
func (yc *YahooClient) Quote(ctx context.Context, symbol string) (*models.AssetSnapshot, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -7)

	bars, err := fetchBars(symbol, start, end, datetime.OneDay)
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		return nil, nil
	}

	latest := bars[len(bars)-1]
	previous := bars[len(bars)-2]

	price := latest.Close.Round(2)
	prevClose := previous.Close.Round(2)
	change := price.Sub(prevClose).Round(2)

	changePct := decimal.Zero
	if !prevClose.IsZero() {
		changePct = change.Div(prevClose).Mul(decimal.NewFromInt(100)).Round(2)
	}

	direction := "flat"
	switch {
	case change.IsPositive():
		direction = "up"
	case change.IsNegative():
		direction = "down"
	}

	return &models.AssetSnapshot{
		Symbol:    symbol,
		Status:    models.ResolvedWithData,
		Price:     price,
		PrevClose: prevClose,
		PrevDate:  previous.Date.Format("2006-01-02"),
		Change:    change,
		ChangePct: changePct,
		Direction: direction,
	}, nil
}

// rangeWindow is the provider lookback behind one timeframe token.
type rangeWindow struct {
	lookback time.Duration
	months   int
	years    int
	interval datetime.Interval
	cutoff   time.Duration // trailing filter for sub-day tokens
}

var rangeWindows = map[string]rangeWindow{
	"1h":    {lookback: 24 * time.Hour, interval: datetime.FiveMins, cutoff: time.Hour},
	"4h":    {lookback: 24 * time.Hour, interval: datetime.FiveMins, cutoff: 4 * time.Hour},
	"today": {lookback: 24 * time.Hour, interval: datetime.FiveMins},
	"1d":    {lookback: 48 * time.Hour, interval: datetime.OneDay},
	"1w":    {lookback: 7 * 24 * time.Hour, interval: datetime.OneDay},
	"1m":    {months: 1, interval: datetime.OneDay},
	"3m":    {months: 3, interval: datetime.OneDay},
	"6m":    {months: 6, interval: datetime.OneDay},
	"1y":    {years: 1, interval: datetime.OneDay},
	"3y":    {years: 3, interval: datetime.OneDay},
	"5y":    {years: 5, interval: datetime.OneDay},
}

// performanceWindows pad the lookback so the first close predates the
// nominal window even across holidays.
var performanceWindows = map[string]rangeWindow{
	"1m": {months: 2, interval: datetime.OneDay},
	"3m": {months: 4, interval: datetime.OneDay},
	"6m": {months: 7, interval: datetime.OneDay},
	"1y": {months: 13, interval: datetime.OneDay},
	"3y": {years: 4, interval: datetime.OneDay},
	"5y": {years: 6, interval: datetime.OneDay},
}

func (w rangeWindow) start(now time.Time) time.Time {
	if w.lookback > 0 {
		return now.Add(-w.lookback)
	}
	return now.AddDate(-w.years, -w.months, 0)
}

// HighLow returns the traded band over one timeframe, or nil when the
// provider has no bars for the window.
func (yc *YahooClient) HighLow(ctx context.Context, symbol, timeframe string) (*models.RangeStats, error) {
	window, ok := rangeWindows[timeframe]
	if !ok {
		return nil, nil
	}

	now := time.Now()
	bars, err := fetchBars(symbol, window.start(now), now, window.interval)
	if err != nil {
		return nil, err
	}

	if window.cutoff > 0 {
		limit := now.Add(-window.cutoff)
		var trimmed []bar
		for _, b := range bars {
			if !b.Date.Before(limit) {
				trimmed = append(trimmed, b)
			}
		}
		bars = trimmed
	}

	if len(bars) == 0 {
		return nil, nil
	}

	high := bars[0].High
	low := bars[0].Low
	for _, b := range bars[1:] {
		if b.High.GreaterThan(high) {
			high = b.High
		}
		if b.Low.LessThan(low) {
			low = b.Low
		}
	}

	return &models.RangeStats{
		Symbol:    symbol,
		Timeframe: timeframe,
		High:      high.Round(2),
		Low:       low.Round(2),
		StartDate: bars[0].Date.Format("2006-01-02"),
		EndDate:   bars[len(bars)-1].Date.Format("2006-01-02"),
	}, nil
}

// Performance returns the absolute and percentage move over one
// timeframe, or nil when fewer than two closes are available.
func (yc *YahooClient) Performance(ctx context.Context, symbol, timeframe string) (*models.Performance, error) {
	window, ok := performanceWindows[timeframe]
	if !ok {
		return nil, nil
	}

	now := time.Now()
	bars, err := fetchBars(symbol, window.start(now), now, window.interval)
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		return nil, nil
	}

	startPrice := bars[0].Close.Round(2)
	endPrice := bars[len(bars)-1].Close.Round(2)
	change := endPrice.Sub(startPrice).Round(2)

	changePct := decimal.Zero
	if !startPrice.IsZero() {
		changePct = change.Div(startPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &models.Performance{
		Symbol:     symbol,
		Timeframe:  timeframe,
		StartPrice: startPrice,
		EndPrice:   endPrice,
		Change:     change,
		ChangePct:  changePct,
		StartDate:  bars[0].Date.Format("2006-01-02"),
		EndDate:    bars[len(bars)-1].Date.Format("2006-01-02"),
	}, nil
}

// DailyCloses returns up to a year of daily closing prices, oldest
// first, for indicator computation.
func (yc *YahooClient) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	end := time.Now()
	start := end.AddDate(-1, 0, 0)

	bars, err := fetchBars(symbol, start, end, datetime.OneDay)
	if err != nil {
		return nil, err
	}

	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		closes = append(closes, b.Close.InexactFloat64())
	}
	return closes, nil
}
