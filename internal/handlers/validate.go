package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxTitleLen     = 300
	maxSlugLen      = 300
	maxFieldLen     = 100_000
	maxFieldNameLen = 100
	maxPromptLen    = 2_000
	maxBusinessLen  = 200
)

// validatePageMeta checks the page fields of a metadata update. Nil
// pointers are fields the request leaves alone.
func validatePageMeta(title, slug *string) string {
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return "Title is required."
		}
		if utf8.RuneCountInString(t) > maxTitleLen {
			return "Title is too long (max 300 characters)."
		}
	}
	if slug != nil && utf8.RuneCountInString(*slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validateFieldUpdate checks a component field update.
func validateFieldUpdate(field, value string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return "Field is required."
	}
	if utf8.RuneCountInString(field) > maxFieldNameLen {
		return "Field name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(value) > maxFieldLen {
		return "Value is too long (max 100,000 characters)."
	}
	return ""
}

// validatePrompt checks a synthesis prompt and its optional business type.
func validatePrompt(prompt, businessType string) string {
	if strings.TrimSpace(prompt) == "" {
		return "Please enter a prompt."
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "Prompt is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(businessType) > maxBusinessLen {
		return "Business type is too long (max 200 characters)."
	}
	return ""
}
