// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"sort"
	"strings"

	"github.com/tallyhq/tally/models"
)

// labelCategories maps detector class names to category suggestions. Labels
// come from a COCO-style object detector vocabulary.
var labelCategories = map[string]string{
	"laptop":       "Electronics",
	"cell phone":   "Electronics",
	"tv":           "Electronics",
	"book":         "Books & Media",
	"bottle":       "Kitchen & Dining",
	"wine glass":   "Kitchen & Dining",
	"cup":          "Kitchen & Dining",
	"fork":         "Kitchen & Dining",
	"knife":        "Kitchen & Dining",
	"spoon":        "Kitchen & Dining",
	"bowl":         "Kitchen & Dining",
	"banana":       "Food & Beverages",
	"apple":        "Food & Beverages",
	"orange":       "Food & Beverages",
	"chair":        "Furniture",
	"couch":        "Furniture",
	"bed":          "Furniture",
	"dining table": "Furniture",
	"clock":        "Home & Garden",
	"vase":         "Home & Garden",
	"scissors":     "Tools & Hardware",
	"toothbrush":   "Personal Care",
	"hair drier":   "Personal Care",
	"handbag":      "Fashion & Accessories",
	"tie":          "Fashion & Accessories",
	"suitcase":     "Travel & Luggage",
	"backpack":     "Travel & Luggage",
	"umbrella":     "Fashion & Accessories",
	"bicycle":      "Sports & Recreation",
	"motorcycle":   "Vehicles",
	"car":          "Vehicles",
}

// CategorizeLabel suggests a category for a single detector label.
func CategorizeLabel(label string) string {
	if category, ok := labelCategories[strings.ToLower(strings.TrimSpace(label))]; ok {
		return category
	}
	return GeneralCategory
}

// RankDetections turns scored detector labels into a confidence-descending
// detection list with category suggestions attached.
func RankDetections(scored map[string]float64) []models.Detection {
	detections := make([]models.Detection, 0, len(scored))
	for label, confidence := range scored {
		detections = append(detections, models.Detection{
			Label:             label,
			Confidence:        confidence,
			SuggestedCategory: CategorizeLabel(label),
		})
	}

	sort.Slice(detections, func(i, j int) bool {
		if detections[i].Confidence != detections[j].Confidence {
			return detections[i].Confidence > detections[j].Confidence
		}
		return detections[i].Label < detections[j].Label
	})

	return detections
}

// DemoDetections is the canned detection set returned when no real
// classifier output is available. Callers must present it as sample data,
// never as a real analysis result.
func DemoDetections() []models.Detection {
	return []models.Detection{
		{Label: "laptop", Confidence: 0.85, SuggestedCategory: "Electronics"},
		{Label: "book", Confidence: 0.72, SuggestedCategory: "Books & Media"},
		{Label: "cup", Confidence: 0.68, SuggestedCategory: "Kitchen & Dining"},
	}
}

// productCategoryRules classify a product title or merchant category string.
// First match wins.
var productCategoryRules = []struct {
	category string
	keywords []string
}{
	{"Food & Beverages", []string{"food", "grocery", "snack"}},
	{"Electronics", []string{"electronic", "computer", "phone"}},
	{"Books & Media", []string{"book", "media"}},
	{"Kitchen & Dining", []string{"kitchen", "dining", "cookware"}},
	{"Personal Care", []string{"health", "beauty", "personal"}},
	{"Fashion & Accessories", []string{"clothing", "fashion", "apparel"}},
	{"Home & Garden", []string{"home", "garden", "decor"}},
	{"Tools & Hardware", []string{"tool", "hardware"}},
	{"Sports & Recreation", []string{"sport", "outdoor", "recreation"}},
}

// CategorizeProduct suggests a category from a product's merchant category
// string or title.
func CategorizeProduct(categoryOrTitle string) string {
	text := strings.ToLower(categoryOrTitle)
	for _, rule := range productCategoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return GeneralCategory
}
