package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

const gnewsSearchURL = "https://gnews.io/api/v4/search"

// NewsClient fetches recent articles from the GNews API, scoped to the
// Indian market.
type NewsClient struct {
	http   *resty.Client
	apiKey string
}

func NewNewsClient(apiKey string) *NewsClient {
	client := resty.New()
	client.SetTimeout(10 * time.Second)

	return &NewsClient{http: client, apiKey: apiKey}
}

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns up to limit recent articles matching the query. Any
// failure yields an empty slice and the reason.
func (nc *NewsClient) Fetch(ctx context.Context, query string, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 5
	}

	resp, err := nc.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       query,
			"lang":    "en",
			"country": "in",
			"max":     strconv.Itoa(limit),
			"apikey":  nc.apiKey,
		}).
		Get(gnewsSearchURL)
	if err != nil {
		return nil, fmt.Errorf("gnews search: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gnews search: HTTP %d", resp.StatusCode())
	}

	var result gnewsResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("gnews search: parse: %w", err)
	}

	items := make([]models.NewsItem, 0, len(result.Articles))
	for _, a := range result.Articles {
		source := a.Source.Name
		if source == "" {
			source = "GNews"
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			Source:      source,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
		})
	}
	return items, nil
}
