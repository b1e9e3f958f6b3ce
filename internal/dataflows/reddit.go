package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

// allowedSubreddits is the community allow-list for general stock
// discussion; posts from anywhere else are dropped.
var allowedSubreddits = map[string]bool{
	"IndianStockMarket": true,
	"IndiaInvestments":  true,
	"IndianStreetBets":  true,
	"stocks":            true,
	"investing":         true,
	"IndiaStockPulse":   true,
	"IPO_india":         true,
}

// signalKeywords filters search hits down to investor-relevant posts.
var signalKeywords = []string{
	"why", "worried", "concern", "fear", "panic", "risk", "problem",
	"fall", "down", "drop", "crash", "up", "rally", "spike",
	"results", "earnings", "margin", "guidance", "revenue", "profit", "loss",
	"regulation", "sebi", "rbi", "ban", "rule", "policy", "audit",
	"holding", "hold", "sell", "exit", "buy", "invest", "portfolio",
}

// ipoSubreddits are searched one by one for IPO-specific discussion.
var ipoSubreddits = []string{
	"IndianStockMarket",
	"IndiaInvestments",
	"IndianIPO",
	"DalalStreetTalks",
	"StockMarketIndia",
}

// RedditClient reads the public Reddit JSON endpoints; no API key is
// required.
type RedditClient struct {
	http *resty.Client
}

func NewRedditClient(userAgent string) *RedditClient {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("User-Agent", userAgent)

	return &RedditClient{http: client}
}

type redditPostData struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPostData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (d redditPostData) toPost() models.RedditPost {
	return models.RedditPost{
		Title:     strings.TrimSpace(d.Title),
		Selftext:  strings.TrimSpace(d.Selftext),
		Subreddit: d.Subreddit,
		Score:     d.Score,
		Comments:  d.NumComments,
		Created:   time.Unix(int64(d.CreatedUTC), 0),
		URL:       "https://www.reddit.com" + d.Permalink,
	}
}

func (rc *RedditClient) search(ctx context.Context, searchURL string, params map[string]string) (*redditListing, error) {
	resp, err := rc.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit search: HTTP %d", resp.StatusCode())
	}

	var listing redditListing
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("reddit search: parse: %w", err)
	}
	return &listing, nil
}

// FetchPosts returns investor-relevant discussion about a stock,
// restricted to the allow-listed subreddits and to posts containing at
// least one relevance keyword.
func (rc *RedditClient) FetchPosts(ctx context.Context, query string, limit int) ([]models.RedditPost, error) {
	if limit <= 0 {
		limit = 10
	}

	listing, err := rc.search(ctx, "https://www.reddit.com/search.json", map[string]string{
		"q":     query + " stock",
		"sort":  "new",
		"limit": strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	var posts []models.RedditPost
	for _, child := range listing.Data.Children {
		d := child.Data

		if !allowedSubreddits[d.Subreddit] {
			continue
		}

		blob := strings.ToLower(d.Title + " " + d.Selftext)
		relevant := false
		for _, kw := range signalKeywords {
			if strings.Contains(blob, kw) {
				relevant = true
				break
			}
		}
		if !relevant {
			continue
		}

		posts = append(posts, d.toPost())
		if len(posts) >= limit {
			break
		}
	}
	return posts, nil
}

// FetchIPOPosts searches the Indian IPO subreddits for discussion of a
// named IPO. A failing subreddit is skipped, not fatal.
func (rc *RedditClient) FetchIPOPosts(ctx context.Context, company string, limit int) ([]models.RedditPost, error) {
	if limit <= 0 {
		limit = 30
	}

	var posts []models.RedditPost
	for _, subreddit := range ipoSubreddits {
		searchURL := fmt.Sprintf("https://www.reddit.com/r/%s/search.json", subreddit)

		listing, err := rc.search(ctx, searchURL, map[string]string{
			"q":           company + " IPO",
			"restrict_sr": "on",
			"sort":        "new",
			"limit":       strconv.Itoa(limit),
		})
		if err != nil {
			continue
		}

		for _, child := range listing.Data.Children {
			posts = append(posts, child.Data.toPost())
		}
	}
	return posts, nil
}
