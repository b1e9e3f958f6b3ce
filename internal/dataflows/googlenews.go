package dataflows

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

const googleNewsRSS = "https://news.google.com/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en"

// GoogleNewsClient reads the Google News RSS feed for IPO coverage.
// It carries no credentials; availability is best-effort.
type GoogleNewsClient struct {
	parser *gofeed.Parser
}

func NewGoogleNewsClient() *GoogleNewsClient {
	return &GoogleNewsClient{parser: gofeed.NewParser()}
}

// FetchIPONews returns recent articles about a company's IPO, newest
// first as the feed delivers them.
func (gc *GoogleNewsClient) FetchIPONews(ctx context.Context, company string, maxItems int) ([]models.NewsItem, error) {
	if maxItems <= 0 {
		maxItems = 20
	}

	query := url.QueryEscape(company + " IPO")
	feed, err := gc.parser.ParseURLWithContext(fmt.Sprintf(googleNewsRSS, query), ctx)
	if err != nil {
		return nil, fmt.Errorf("google news feed: %w", err)
	}

	items := make([]models.NewsItem, 0, maxItems)
	for _, entry := range feed.Items {
		if len(items) >= maxItems {
			break
		}

		published := ""
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.Format("2006-01-02")
		}

		items = append(items, models.NewsItem{
			Title:       strings.TrimSpace(entry.Title),
			Description: strings.TrimSpace(entry.Description),
			Source:      "google_news",
			PublishedAt: published,
			URL:         entry.Link,
		})
	}
	return items, nil
}
