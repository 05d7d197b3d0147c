// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tallyhq/tally/models"
)

// GeneralCategory is the suggestion of last resort for every heuristic in
// this package.
const GeneralCategory = "General"

// VoiceConfidence is the fixed confidence attached to transcript-derived
// suggestions. The heuristics have no probabilistic model behind them, so a
// single honest mid-high value beats a fabricated per-item score.
const VoiceConfidence = 0.85

// namePatterns are tried in order against the lowercased transcript; the
// first capture group that matches becomes the suggested name. The
// terminator alternations stop the lazy group at trailing price and
// location phrases.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:add|create|new|i have a?)\s+([^.!?]+?)(?:\s+(?:to|in|for|worth|costs?|priced)\s+|$)`),
	regexp.MustCompile(`(?:this is a?)\s+([^.!?]+?)(?:\s+(?:that|which|in)\s+|$)`),
	regexp.MustCompile(`^(.+?)\s+(?:in the|from|for)\s+`),
	regexp.MustCompile(`^([^.!?]+?)(?:\s+(?:worth|costs?|priced at)\s+|$)`),
}

var (
	leadingArticles = regexp.MustCompile(`^(?:a|an|the|my|this|that)\s+`)
	trailingFillers = regexp.MustCompile(`\s+(?:item|thing|object)$`)
	priceMention    = regexp.MustCompile(`(?:worth|costs?|priced at|value)\s*\$?(\d+(?:\.\d{2})?)`)
	locationMention = regexp.MustCompile(`(?:in the|from the|located in)\s+([^.!?]+)`)
	conditionWords  = []string{"new", "used", "old", "broken", "mint", "excellent", "good", "fair", "poor"}
)

// categoryKeywords maps spoken keywords to category suggestions. Order
// matters: the first entry with a matching keyword wins, so the more
// specific vocabularies sit on top.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Electronics", []string{"phone", "laptop", "computer", "tablet", "camera", "headphones", "speaker", "charger", "electronic"}},
	{"Kitchen & Dining", []string{"cup", "mug", "plate", "bowl", "fork", "knife", "spoon", "pot", "pan", "kitchen", "dining"}},
	{"Furniture", []string{"chair", "table", "desk", "bed", "sofa", "couch", "shelf", "furniture"}},
	{"Clothing", []string{"shirt", "pants", "dress", "jacket", "shoes", "socks", "hat", "clothing", "clothes"}},
	{"Books & Media", []string{"book", "magazine", "cd", "dvd", "vinyl", "record", "media"}},
	{"Tools & Hardware", []string{"hammer", "screwdriver", "wrench", "drill", "tool", "hardware"}},
	{"Personal Care", []string{"toothbrush", "shampoo", "soap", "lotion", "perfume", "makeup", "cosmetic"}},
	{"Sports & Recreation", []string{"ball", "racket", "bike", "bicycle", "sports", "exercise", "game"}},
	{"Home & Garden", []string{"plant", "flower", "vase", "candle", "decoration", "garden", "home decor"}},
	{"Food & Beverages", []string{"food", "snack", "drink", "beverage", "coffee", "tea", "juice"}},
}

// ProcessTranscript turns a final speech transcript into item suggestions.
// Confidence is always [VoiceConfidence].
func ProcessTranscript(transcript string) (models.VoiceResult, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return models.VoiceResult{}, ErrEmptyTranscript
	}

	lower := strings.ToLower(transcript)
	name := ExtractItemName(lower)

	return models.VoiceResult{
		Transcript:           transcript,
		Confidence:           VoiceConfidence,
		SuggestedName:        name,
		SuggestedCategory:    CategorizeText(lower),
		SuggestedDescription: SynthesizeDescription(transcript, name),
	}, nil
}

// PrefillFromVoice converts transcript suggestions into form prefill data.
func PrefillFromVoice(result models.VoiceResult) models.Prefill {
	return models.Prefill{
		Name:        result.SuggestedName,
		Category:    result.SuggestedCategory,
		Description: result.SuggestedDescription,
		Source:      MethodVoice.String(),
	}
}

// ExtractItemName pulls the likely item name out of a lowercased
// transcript. Falls back to the first three words when no pattern matches.
func ExtractItemName(text string) string {
	for _, pattern := range namePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil && match[1] != "" {
			return cleanItemName(strings.TrimSpace(match[1]))
		}
	}

	words := strings.Fields(text)
	if len(words) > 3 {
		words = words[:3]
	}
	return cleanItemName(strings.Join(words, " "))
}

func cleanItemName(name string) string {
	name = leadingArticles.ReplaceAllString(name, "")
	name = trailingFillers.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// CategorizeText suggests a category for free-form lowercased text by
// keyword lookup. Unmatched text maps to [GeneralCategory].
func CategorizeText(text string) string {
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}
	return GeneralCategory
}

// SynthesizeDescription assembles a description from the price, location,
// and condition phrases found in the transcript. When none are present the
// raw transcript is quoted instead, so no spoken detail is ever lost.
func SynthesizeDescription(transcript, itemName string) string {
	lower := strings.ToLower(transcript)

	var details []string

	if match := priceMention.FindStringSubmatch(lower); match != nil {
		details = append(details, "Worth $"+match[1])
	}
	if match := locationMention.FindStringSubmatch(lower); match != nil {
		details = append(details, "Located in "+strings.TrimSpace(match[1]))
	}
	for _, word := range conditionWords {
		if strings.Contains(lower, word) {
			details = append(details, "Condition: "+word)
			break
		}
	}

	if len(details) > 0 {
		return strings.Join(details, ". ")
	}
	return fmt.Sprintf("Added via voice input: %q", transcript)
}
