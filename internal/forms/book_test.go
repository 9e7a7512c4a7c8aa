// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forms

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

// validBookInput returns an input that passes every rule. Tests override
// single fields to probe individual rules.
func validBookInput() BookInput {
	return BookInput{
		Title:           "The Left Hand of Darkness",
		Description:     "A science fiction classic about a planet without fixed gender.",
		Category:        "science",
		Rating:          "4.5",
		PublicationYear: "1969",
		Pages:           "304",
		ISBN:            "978-0441478125",
		AuthorName:      "Ursula K. Le Guin",
	}
}

func TestBookInputValid(t *testing.T) {
	form, errs := validBookInput().Validate()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if form.Rating != 4.5 || form.PublicationYear != 1969 || form.Pages != 304 {
		t.Errorf("parsed values wrong: %+v", form)
	}
	if form.Category != "science" {
		t.Errorf("category = %q, want science", form.Category)
	}
}

func TestBookInputFieldRules(t *testing.T) {
	currentYear := strconv.Itoa(time.Now().Year())
	nextYear := strconv.Itoa(time.Now().Year() + 1)

	tests := []struct {
		name    string
		mutate  func(*BookInput)
		field   string
		wantKey string
	}{
		{"empty title", func(in *BookInput) { in.Title = "" }, "title", "forms.book.titleRequired"},
		{"whitespace title", func(in *BookInput) { in.Title = "   " }, "title", "forms.book.titleRequired"},
		{"short title", func(in *BookInput) { in.Title = "A" }, "title", "forms.book.titleTooShort"},
		{"long title", func(in *BookInput) { in.Title = strings.Repeat("a", 201) }, "title", "forms.book.titleTooLong"},
		{"title at max", func(in *BookInput) { in.Title = strings.Repeat("a", 200) }, "title", ""},

		{"short description", func(in *BookInput) { in.Description = "too short" }, "description", "forms.book.descriptionTooShort"},
		{"long description", func(in *BookInput) { in.Description = strings.Repeat("a", 1001) }, "description", "forms.book.descriptionTooLong"},

		{"unknown category", func(in *BookInput) { in.Category = "poetry" }, "category", "forms.book.categoryInvalid"},
		{"empty category", func(in *BookInput) { in.Category = "" }, "category", "forms.book.categoryInvalid"},

		{"rating zero", func(in *BookInput) { in.Rating = "0" }, "rating", ""},
		{"rating five", func(in *BookInput) { in.Rating = "5" }, "rating", ""},
		{"rating below zero", func(in *BookInput) { in.Rating = "-0.5" }, "rating", "forms.book.ratingRange"},
		{"rating above five", func(in *BookInput) { in.Rating = "5.5" }, "rating", "forms.book.ratingRange"},
		{"rating not a number", func(in *BookInput) { in.Rating = "great" }, "rating", "forms.book.ratingRange"},

		{"year 1950", func(in *BookInput) { in.PublicationYear = "1950" }, "publicationYear", ""},
		{"year 1949", func(in *BookInput) { in.PublicationYear = "1949" }, "publicationYear", "forms.book.yearTooEarly"},
		{"current year", func(in *BookInput) { in.PublicationYear = currentYear }, "publicationYear", ""},
		{"next year", func(in *BookInput) { in.PublicationYear = nextYear }, "publicationYear", "forms.book.yearInFuture"},
		{"year not a number", func(in *BookInput) { in.PublicationYear = "abc" }, "publicationYear", "forms.book.yearNotANumber"},
		{"year empty", func(in *BookInput) { in.PublicationYear = "" }, "publicationYear", "forms.book.yearNotANumber"},
		{"year fractional", func(in *BookInput) { in.PublicationYear = "1990.5" }, "publicationYear", "forms.book.yearWholeNumber"},

		{"one page", func(in *BookInput) { in.Pages = "1" }, "pages", ""},
		{"zero pages", func(in *BookInput) { in.Pages = "0" }, "pages", "forms.book.pagesTooFew"},
		{"pages not a number", func(in *BookInput) { in.Pages = "many" }, "pages", "forms.book.pagesNotANumber"},
		{"pages fractional", func(in *BookInput) { in.Pages = "10.5" }, "pages", "forms.book.pagesWholeNumber"},

		{"empty isbn", func(in *BookInput) { in.ISBN = "" }, "isbn", "forms.book.isbnRequired"},
		{"long isbn", func(in *BookInput) { in.ISBN = strings.Repeat("9", 21) }, "isbn", "forms.book.isbnTooLong"},
		{"isbn at max", func(in *BookInput) { in.ISBN = strings.Repeat("9", 20) }, "isbn", ""},

		{"empty author", func(in *BookInput) { in.AuthorName = "" }, "authorName", "forms.book.authorRequired"},
		{"short author", func(in *BookInput) { in.AuthorName = "X" }, "authorName", "forms.book.authorTooShort"},
		{"long author", func(in *BookInput) { in.AuthorName = strings.Repeat("a", 101) }, "authorName", "forms.book.authorTooLong"},
		{"author with digits", func(in *BookInput) { in.AuthorName = "Agent 007" }, "authorName", "forms.book.authorCharset"},
		{"author with punctuation", func(in *BookInput) { in.AuthorName = "Jean-Luc O'Brien Jr." }, "authorName", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBookInput()
			tt.mutate(&in)
			_, errs := in.Validate()
			if got := errs[tt.field]; got != tt.wantKey {
				t.Errorf("errs[%q] = %q, want %q (all: %v)", tt.field, got, tt.wantKey, errs)
			}
		})
	}
}

// A field with several violations reports only its first rule in
// declaration order.
func TestBookInputFirstRuleWins(t *testing.T) {
	in := validBookInput()
	in.AuthorName = "7" // both too short and wrong charset
	_, errs := in.Validate()
	if errs["authorName"] != "forms.book.authorTooShort" {
		t.Errorf("errs[authorName] = %q, want forms.book.authorTooShort", errs["authorName"])
	}
}

func TestBookInputTrimsBeforeChecks(t *testing.T) {
	in := validBookInput()
	in.Title = "  " + strings.Repeat("a", 200) + "  "
	form, errs := in.Validate()
	if errs["title"] != "" {
		t.Errorf("trimmed title at max length should pass, got %q", errs["title"])
	}
	if form.Title != strings.Repeat("a", 200) {
		t.Error("expected trimmed title in the typed form")
	}
}
