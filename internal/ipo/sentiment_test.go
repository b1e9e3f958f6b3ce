package ipo

import (
	"reflect"
	"testing"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

func post(title string) models.RedditPost {
	return models.RedditPost{Title: title}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"strong growth and huge demand", "positive"},
		{"overpriced, avoid this one", "negative"},
		{"listing tomorrow", "neutral"},
		// One positive and one negative word cancel out.
		{"good company but overpriced", "neutral"},
	}

	for _, tt := range tests {
		if got := classify(tt.text); got != tt.want {
			t.Errorf("classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyzeSentimentCounts(t *testing.T) {
	posts := []models.RedditPost{
		post("strong demand, oversubscribed already"),
		post("good growth story"),
		post("solid profit numbers"),
		post("looks positive to me"),
		post("overpriced, avoid"),
	}

	b := AnalyzeSentiment(posts, nil)

	if b.PostsAnalyzed != 5 {
		t.Fatalf("PostsAnalyzed = %d, want 5", b.PostsAnalyzed)
	}
	if b.Positive+b.Neutral+b.Negative != b.PostsAnalyzed {
		t.Fatalf("classification counts %d+%d+%d do not sum to %d",
			b.Positive, b.Neutral, b.Negative, b.PostsAnalyzed)
	}
	if b.Positive != 4 || b.Negative != 1 {
		t.Fatalf("breakdown = %d pos / %d neg, want 4 / 1", b.Positive, b.Negative)
	}
	if b.Assessment != "Strong positive retail sentiment." {
		t.Errorf("Assessment = %q", b.Assessment)
	}
}

func TestAggregateLabels(t *testing.T) {
	tests := []struct {
		posts, pos, neg int
		want            string
	}{
		{0, 0, 0, "Low retail visibility."},
		{5, 4, 1, "Strong positive retail sentiment."},
		{3, 1, 2, "Cautious to negative retail sentiment."},
		{4, 2, 2, "Retail interest present, sentiment broadly balanced."},
	}

	for _, tt := range tests {
		b := models.SentimentBundle{PostsAnalyzed: tt.posts, Positive: tt.pos, Negative: tt.neg}
		if got := aggregate(b); got != tt.want {
			t.Errorf("aggregate(%d posts, %d pos, %d neg) = %q, want %q",
				tt.posts, tt.pos, tt.neg, got, tt.want)
		}
	}
}

func TestTopThemes(t *testing.T) {
	posts := []models.RedditPost{
		post("valuation looks stretched"),
		post("valuation debate again"),
		post("subscription numbers are in"),
		post("profit and growth both fine"),
		post("growth story intact"),
		post("growth compounding"),
	}

	b := AnalyzeSentiment(posts, nil)
	want := []string{"growth", "valuation", "subscription"}
	if !reflect.DeepEqual(b.Themes, want) {
		t.Errorf("Themes = %v, want %v", b.Themes, want)
	}
}

func TestAnalyzeSentimentSamples(t *testing.T) {
	posts := make([]models.RedditPost, 8)
	for i := range posts {
		posts[i] = post("discussion")
	}

	b := AnalyzeSentiment(posts, nil)
	if len(b.SamplePosts) != maxSampleItems {
		t.Errorf("SamplePosts = %d, want %d", len(b.SamplePosts), maxSampleItems)
	}
}
