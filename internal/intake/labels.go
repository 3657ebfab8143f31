package intake

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldLabels = map[string]string{
	"business_name":    "Business Name",
	"contact_name":     "Contact Name",
	"contact_email":    "Email",
	"contact_phone":    "Phone",
	"website_url":      "Current Website",
	"elevator_pitch":   "What does your business do?",
	"services":         "Top Services/Products",
	"audience":         "Target Audience",
	"competitors":      "Competitors or Inspiration",
	"style_adjectives": "Style Adjectives",
	"colors":           "Preferred Colors",
	"pages_needed":     "Pages Needed",
	"features":         "Special Features",
	"deadline":         "Deadline",
	"additional_notes": "Additional Notes",
}

// Label returns the display label for a form field key. Unknown keys are
// title-cased with underscores turned into spaces.
func Label(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	// Casers are stateful; build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
