// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"fmt"

	"pagecomposer/internal/models"
)

// BuiltinTemplates returns the hand-authored template catalog. A new set
// of values is built on every call, so no caller can alter another's copy.
// Component identifiers are derived from the template id and position.
func BuiltinTemplates() []models.Template {
	templates := []models.Template{
		{
			ID:          "black-friday",
			Name:        "Black Friday",
			Thumbnail:   "🖤",
			Color:       "from-gray-900 to-black",
			Description: "High-contrast campaign with a featured deal and a countdown call to action.",
			Components: []models.Component{
				{
					Style: map[string]string{"background": "#000000", "text_color": "#ffffff"},
					Fields: models.Hero{
						Title:       "BLACK FRIDAY",
						Subtitle:    "Up to 70% off across the store. This weekend only.",
						ButtonLabel: "See the deals",
					},
				},
				{Fields: models.PromotedItem{
					Title:       "Deal of the day",
					Description: "Our best seller at the lowest price of the year.",
					ActionLabel: "Grab it",
				}},
				{Fields: models.Text{
					Title: "How it works",
					Body:  "Discounts apply automatically at checkout. Stock is limited and prices return to normal on Monday.",
				}},
				{
					Style: map[string]string{"background": "#facc15"},
					Fields: models.CallToAction{
						Title:       "Do not miss out",
						Description: "Sign up and get early access to every Black Friday drop.",
						ButtonLabel: "Get early access",
					},
				},
			},
		},
		{
			ID:          "mothers-day",
			Name:        "Mother's Day",
			Thumbnail:   "💐",
			Color:       "from-pink-400 to-rose-500",
			Description: "Soft palette with gift ideas and a gift-wrapping reminder.",
			Components: []models.Component{
				{
					Style: map[string]string{"background": "#fce7f3"},
					Fields: models.Hero{
						Title:       "For the one who gave you everything",
						Subtitle:    "Gifts she will remember, delivered on time.",
						ButtonLabel: "Shop gifts",
					},
				},
				{Fields: models.PromotedItem{
					Title:       "Gift pick",
					Description: "A favourite chosen by our team.",
					ActionLabel: "Add to cart",
				}},
				{Fields: models.CallToAction{
					Title:       "Free gift wrapping",
					Description: "Every order this week ships wrapped with a handwritten card.",
					ButtonLabel: "Order now",
				}},
			},
		},
		{
			ID:          "christmas",
			Name:        "Christmas",
			Thumbnail:   "🎄",
			Color:       "from-red-600 to-green-700",
			Description: "Festive layout with a holiday story and shipping cut-off notice.",
			Components: []models.Component{
				{Fields: models.Hero{
					Title:       "Merry Christmas",
					Subtitle:    "Thoughtful gifts for everyone on your list.",
					ButtonLabel: "Explore the collection",
				}},
				{Fields: models.Text{
					Title: "Our holiday story",
					Body:  "Every piece in this collection was made by hand in our workshop during the season.",
				}},
				{Fields: models.PromotedItem{
					Title:       "Holiday favourite",
					ActionLabel: "Buy now",
				}},
				{Fields: models.CallToAction{
					Title:       "Order by December 18",
					Description: "Guaranteed delivery before Christmas Eve.",
					ButtonLabel: "Shop now",
				}},
			},
		},
		{
			ID:          "valentines",
			Name:        "Valentine's Day",
			Thumbnail:   "💘",
			Color:       "from-rose-500 to-red-600",
			Description: "Romantic campaign for couples' gifts.",
			Components: []models.Component{
				{Fields: models.Hero{
					Title:       "Made for two",
					Subtitle:    "Gifts that say it better than words.",
					ButtonLabel: "Find the perfect gift",
				}},
				{Fields: models.PromotedItem{
					Title:       "Couples' set",
					ActionLabel: "Add to cart",
				}},
				{Fields: models.CallToAction{
					Title:       "Personalise it",
					Description: "Add initials or a short message at no extra cost.",
					ButtonLabel: "Start now",
				}},
			},
		},
		{
			ID:          "summer-sale",
			Name:        "Summer Sale",
			Thumbnail:   "☀️",
			Color:       "from-yellow-400 to-orange-500",
			Description: "Bright clearance layout for seasonal promotions.",
			Components: []models.Component{
				{Fields: models.Hero{
					Title:       "Summer Sale",
					Subtitle:    "Fresh picks, warm prices.",
					ButtonLabel: "Shop the sale",
				}},
				{Fields: models.Text{
					Title: "While stocks last",
					Body:  "Seasonal items are discounted until the end of the month.",
				}},
				{Fields: models.CallToAction{
					Title:       "Free shipping over 50",
					Description: "On every order placed during the sale.",
					ButtonLabel: "Start shopping",
				}},
			},
		},
		{
			ID:          "product-launch",
			Name:        "Product Launch",
			Thumbnail:   "🚀",
			Color:       "from-indigo-500 to-purple-600",
			Description: "Introduce a new product with a story and a pre-order button.",
			Components: []models.Component{
				{Fields: models.Hero{
					Title:       "Something new is here",
					Subtitle:    "Meet the latest addition to our collection.",
					ButtonLabel: "Discover it",
				}},
				{Fields: models.PromotedItem{
					Title:       "New arrival",
					ActionLabel: "Pre-order",
				}},
				{Fields: models.Text{
					Title: "Why we made it",
					Body:  "We listened to your feedback and spent months getting the details right.",
				}},
				{Fields: models.CallToAction{
					Title:       "Be the first to know",
					Description: "Join the list for launch-day news.",
					ButtonLabel: "Notify me",
				}},
			},
		},
	}

	for i := range templates {
		templates[i].Origin = models.TemplateOriginCatalog
		for j := range templates[i].Components {
			templates[i].Components[j].ID = fmt.Sprintf("%s-%d", templates[i].ID, j+1)
		}
	}
	return templates
}
