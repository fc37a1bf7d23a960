/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClassNameFor derives the default target class name of an association:
// "chapters" -> "Chapter", "line_items" -> "LineItem".
func ClassNameFor(association string) string {
	return Camelize(inflection.Singular(association))
}

// ForeignKeyFor derives the foreign key a class is referenced by:
// "Music.Album" -> "album_id".
func ForeignKeyFor(qualified string) string {
	return Underscore(BaseName(qualified)) + "_id"
}

// Camelize turns a snake_case word into CamelCase.
func Camelize(word string) string {
	// Casers carry state, so one per call.
	title := cases.Title(language.Und)

	var b strings.Builder
	for _, part := range strings.Split(word, "_") {
		if part == "" {
			continue
		}
		b.WriteString(title.String(part))
	}
	return b.String()
}

// Underscore turns a CamelCase word into snake_case.
func Underscore(word string) string {
	runes := []rune(word)

	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
