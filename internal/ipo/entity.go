package ipo

import (
	"regexp"
	"sort"
	"strings"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

// legalEntityRe matches a company name followed by an Indian legal
// suffix, e.g. "Jio Financial Services Ltd".
var legalEntityRe = regexp.MustCompile(
	`(?i)\b([a-z][a-z]+(?:\s+[a-z][a-z]+){0,4})\s+(ltd|limited|private|pvt|llp)\b`)

// Entity is a resolved issuing company behind a brand name.
type Entity struct {
	Name       string
	Confidence string
}

// ResolveEntity finds the legal issuing entity behind a consumer brand
// by scanning IPO coverage for legal-suffix names. A name seen in two
// or more articles resolves with high confidence.
func ResolveEntity(brand string, articles []models.NewsItem) *Entity {
	counts := map[string]int{}
	for _, a := range articles {
		text := a.Title + " " + a.Description
		for _, m := range legalEntityRe.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if strings.EqualFold(name, brand) {
				continue
			}
			counts[strings.ToLower(name)]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	best := names[0]
	confidence := "low"
	if counts[best] >= 2 {
		confidence = "high"
	}
	return &Entity{Name: titleWords(best), Confidence: confidence}
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
