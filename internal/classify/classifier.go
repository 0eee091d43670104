// Package classify assigns free-text strings to categories by
// case-insensitive keyword substring matching.
package classify

import (
	"strings"
)

// Category names used for activity classification.
const (
	CategoryBeach     = "beach"
	CategoryCultural  = "cultural"
	CategoryAdventure = "adventure"
	CategoryLeisure   = "leisure"
)

// ActivityCategories is the fixed activity category order.
var ActivityCategories = []string{CategoryBeach, CategoryCultural, CategoryAdventure, CategoryLeisure}

// ActivityKeywords maps each activity category to its lowercase keywords.
var ActivityKeywords = map[string][]string{
	CategoryBeach:     {"beach", "water", "swimming", "snorkeling", "scuba", "diving"},
	CategoryCultural:  {"temple", "museum", "heritage", "historical", "cultural", "monument"},
	CategoryAdventure: {"trek", "hiking", "adventure", "kayak", "rafting", "climb"},
	CategoryLeisure:   {"spa", "relax", "cruise", "sunset", "shopping", "sightseeing"},
}

// PremiumKeywords mark an inclusion as a premium feature.
var PremiumKeywords = []string{"luxury", "premium", "ac", "air-conditioned", "royal", "deluxe", "complimentary"}

// EssentialKeywords are the essential services a package should cover.
var EssentialKeywords = []string{"meals", "breakfast", "accommodation", "transport", "ferry", "sightseeing"}

// Classifier matches text against a category -> keywords table. Matching is
// non-exclusive: a text counts toward every category it hits.
type Classifier struct {
	order    []string
	keywords map[string][]string
}

// New creates a [Classifier]. order fixes the iteration order of categories
// in results; categories missing from keywords never match.
func New(order []string, keywords map[string][]string) *Classifier {
	kw := make(map[string][]string, len(keywords))
	for cat, words := range keywords {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			lowered = append(lowered, strings.ToLower(w))
		}
		kw[cat] = lowered
	}
	return &Classifier{
		order:    append([]string(nil), order...),
		keywords: kw,
	}
}

// NewActivityClassifier returns a classifier over the four activity categories.
func NewActivityClassifier() *Classifier {
	return New(ActivityCategories, ActivityKeywords)
}

// Categories returns the category order.
func (c *Classifier) Categories() []string {
	return append([]string(nil), c.order...)
}

// Classify returns the categories, in classifier order, for which any
// keyword is a substring of the lowercased text. Empty text never matches.
func (c *Classifier) Classify(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []string
	for _, cat := range c.order {
		if ContainsAny(lower, c.keywords[cat]) {
			matched = append(matched, cat)
		}
	}
	return matched
}

// Tally classifies every text and counts hits per category. Every category
// in the classifier order is present in the result, possibly with zero.
func (c *Classifier) Tally(texts []string) map[string]int {
	counts := make(map[string]int, len(c.order))
	for _, cat := range c.order {
		counts[cat] = 0
	}
	for _, t := range texts {
		for _, cat := range c.Classify(t) {
			counts[cat]++
		}
	}
	return counts
}

// ContainsAny reports whether any keyword is a substring of the lowercased text.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CountMatching returns how many items contain at least one keyword.
func CountMatching(items []string, keywords []string) int {
	n := 0
	for _, item := range items {
		if ContainsAny(item, keywords) {
			n++
		}
	}
	return n
}

// CountKeywordsPresent returns how many distinct keywords occur in at least
// one item. Each keyword counts once however many items contain it.
func CountKeywordsPresent(items []string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		for _, item := range items {
			if strings.Contains(strings.ToLower(item), strings.ToLower(kw)) {
				n++
				break
			}
		}
	}
	return n
}
