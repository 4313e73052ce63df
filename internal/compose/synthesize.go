// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pagecomposer/internal/models"
)

// fallbackTitleLen caps the prompt-derived hero title of a fallback template.
const fallbackTitleLen = 50

const (
	defaultTemplateEmoji = "✨"
	defaultTemplateColor = "from-purple-500 to-pink-500"
)

// TemplateFromReply maps a generator reply onto a template. Explicit
// components win; without any usable ones the canonical hero, text and
// call-to-action fields are used. Reports false when the reply carries
// neither.
func TemplateFromReply(reply *models.GeneratorReply, prompt string) (models.Template, bool) {
	components := componentsFromReply(reply.Components)
	if len(components) == 0 {
		if !reply.HasTriple() {
			return models.Template{}, false
		}
		components = tripleFromReply(reply)
	}

	t := models.Template{
		Name:        firstNonEmpty(reply.Name, truncateRunes(prompt, fallbackTitleLen)),
		Thumbnail:   firstNonEmpty(reply.Emoji, defaultTemplateEmoji),
		Color:       firstNonEmpty(reply.Color, defaultTemplateColor),
		Description: firstNonEmpty(reply.Description, prompt),
		Components:  components,
		Origin:      models.TemplateOriginGenerated,
	}
	return t, true
}

// FallbackTemplate builds the two-component template used when generation
// fails. The hero title is the prompt, truncated and upper-cased.
func FallbackTemplate(prompt string) models.Template {
	prompt = strings.TrimSpace(prompt)
	title := upper(truncateRunes(prompt, fallbackTitleLen))

	hero := models.Component{
		ID: newComponentID(),
		Fields: models.Hero{
			Title:       title,
			Subtitle:    prompt,
			ButtonLabel: defaultHeroButton,
		},
	}
	cta := models.Component{
		ID: newComponentID(),
		Fields: models.CallToAction{
			Title:       "Limited time only",
			Description: prompt,
			ButtonLabel: "Shop now",
		},
	}

	return models.Template{
		Name:        truncateRunes(prompt, fallbackTitleLen),
		Thumbnail:   defaultTemplateEmoji,
		Color:       defaultTemplateColor,
		Description: prompt,
		Components:  []models.Component{hero, cta},
		Origin:      models.TemplateOriginFallback,
	}
}

func componentsFromReply(in []models.ReplyComponent) []models.Component {
	var out []models.Component
	for _, rc := range in {
		var fields models.Fields
		switch strings.ToLower(strings.TrimSpace(rc.Type)) {
		case "hero":
			fields = models.Hero{
				Title:         rc.Title,
				Subtitle:      firstNonEmpty(rc.Subtitle, rc.Description),
				BackgroundURL: rc.Image,
				ButtonLabel:   firstNonEmpty(rc.ButtonText, defaultHeroButton),
			}
		case "product", "promoted_item", "promoted":
			fields = models.PromotedItem{
				ProductID:   rc.ProductID,
				Title:       rc.Title,
				Description: firstNonEmpty(rc.Description, rc.Content, rc.Subtitle),
				ImageURL:    rc.Image,
				Price:       rc.Price,
				ActionLabel: firstNonEmpty(rc.ButtonText, defaultProductAction),
			}
		case "text", "section":
			fields = models.Text{
				Title: rc.Title,
				Body:  firstNonEmpty(rc.Content, rc.Description, rc.Subtitle),
			}
		case "cta", "call_to_action", "banner":
			fields = models.CallToAction{
				Title:       rc.Title,
				Description: firstNonEmpty(rc.Description, rc.Subtitle, rc.Content),
				ButtonLabel: firstNonEmpty(rc.ButtonText, defaultCTAButton),
			}
		default:
			continue
		}
		out = append(out, models.Component{ID: newComponentID(), Fields: fields})
	}
	return out
}

func tripleFromReply(r *models.GeneratorReply) []models.Component {
	return []models.Component{
		{ID: newComponentID(), Fields: models.Hero{
			Title:         r.HeroTitle,
			Subtitle:      r.HeroSubtitle,
			BackgroundURL: r.HeroImage,
			ButtonLabel:   firstNonEmpty(r.CTAText, defaultHeroButton),
		}},
		{ID: newComponentID(), Fields: models.Text{
			Title: r.SectionTitle,
			Body:  r.SectionContent,
		}},
		{ID: newComponentID(), Fields: models.CallToAction{
			Title:       r.CTATitle,
			Description: r.CTADescription,
			ButtonLabel: firstNonEmpty(r.CTAButton, defaultCTAButton),
		}},
	}
}

// upper builds a fresh caser per call; casers keep state between calls.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
