// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// whitespace matches any run of spaces, tabs, or newlines.
	whitespace = regexp.MustCompile(`\s+`)
	// nonSlug matches anything that isn't a lowercase letter, digit, or hyphen.
	nonSlug = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// valid is the shape every stored slug must have.
	valid = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Generate creates a URL-friendly slug from the given string. Accented
// letters are folded to their base letter before anything else is dropped.
// Example: "Dia das Mães, 2026!" → "dia-das-maes-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(foldAccents(s)))
	result = whitespace.ReplaceAllString(result, "-")
	result = nonSlug.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether s is a non-empty slug made only of lowercase
// ASCII letters, digits, and hyphens.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// foldAccents strips combining marks after canonical decomposition.
// Transformers carry state, so a fresh chain is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
