// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms validates the book and review submission forms. Rules run
// field by field in declaration order; the first violated rule per field
// wins, so error messages are stable as the user types. Validation errors
// are message keys resolved by the i18n layer, never display text.
package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"bookdeck/internal/models"
)

// Publication years before modern ISBN assignment are rejected outright.
const MinPublicationYear = 1950

// authorNamePattern allows letters, spaces, periods, hyphens, and apostrophes.
var authorNamePattern = regexp.MustCompile(`^[a-zA-Z\s.\-']+$`)

// BookInput holds the raw book form values exactly as submitted. Numeric
// fields stay strings here: text inputs can carry anything, and rejecting
// non-numbers explicitly is part of the contract.
type BookInput struct {
	Title           string
	Description     string
	Category        string
	Rating          string
	PublicationYear string
	Pages           string
	ISBN            string
	AuthorName      string
}

// BookForm is the validated, typed payload ready for submission to the
// backend.
type BookForm struct {
	Title           string
	Description     string
	Category        models.Category
	Rating          float64
	PublicationYear int
	Pages           int
	ISBN            string
	AuthorName      string
}

// Validate checks every field and returns the typed form plus a map of
// field name to message key for each violated field. An empty map means
// the form is valid. String fields are trimmed before length checks.
func (in BookInput) Validate() (BookForm, map[string]string) {
	errs := make(map[string]string)
	var form BookForm

	form.Title = strings.TrimSpace(in.Title)
	switch {
	case form.Title == "":
		errs["title"] = "forms.book.titleRequired"
	case utf8.RuneCountInString(form.Title) < 2:
		errs["title"] = "forms.book.titleTooShort"
	case utf8.RuneCountInString(form.Title) > 200:
		errs["title"] = "forms.book.titleTooLong"
	}

	form.Description = strings.TrimSpace(in.Description)
	switch {
	case form.Description == "":
		errs["description"] = "forms.book.descriptionRequired"
	case utf8.RuneCountInString(form.Description) < 10:
		errs["description"] = "forms.book.descriptionTooShort"
	case utf8.RuneCountInString(form.Description) > 1000:
		errs["description"] = "forms.book.descriptionTooLong"
	}

	if !models.ValidCategory(in.Category) {
		errs["category"] = "forms.book.categoryInvalid"
	} else {
		form.Category = models.Category(in.Category)
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(in.Rating), 64)
	if err != nil || rating < 0 || rating > 5 {
		errs["rating"] = "forms.book.ratingRange"
	} else {
		form.Rating = rating
	}

	if year, key := parseYear(in.PublicationYear); key != "" {
		errs["publicationYear"] = key
	} else {
		form.PublicationYear = year
	}

	if pages, key := parsePages(in.Pages); key != "" {
		errs["pages"] = key
	} else {
		form.Pages = pages
	}

	form.ISBN = strings.TrimSpace(in.ISBN)
	switch {
	case form.ISBN == "":
		errs["isbn"] = "forms.book.isbnRequired"
	case utf8.RuneCountInString(form.ISBN) > 20:
		errs["isbn"] = "forms.book.isbnTooLong"
	}

	form.AuthorName = strings.TrimSpace(in.AuthorName)
	switch {
	case form.AuthorName == "":
		errs["authorName"] = "forms.book.authorRequired"
	case utf8.RuneCountInString(form.AuthorName) < 2:
		errs["authorName"] = "forms.book.authorTooShort"
	case utf8.RuneCountInString(form.AuthorName) > 100:
		errs["authorName"] = "forms.book.authorTooLong"
	case !authorNamePattern.MatchString(form.AuthorName):
		errs["authorName"] = "forms.book.authorCharset"
	}

	return form, errs
}

// parseYear validates the publication year: a whole number between 1950
// and the current calendar year. Non-numeric input is rejected explicitly
// rather than coerced.
func parseYear(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "forms.book.yearNotANumber"
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return 0, "forms.book.yearNotANumber"
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "forms.book.yearWholeNumber"
	}
	if year < MinPublicationYear {
		return 0, "forms.book.yearTooEarly"
	}
	if year > time.Now().Year() {
		return 0, "forms.book.yearInFuture"
	}
	return year, ""
}

// parsePages validates the page count: a whole number of at least 1.
func parsePages(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "forms.book.pagesNotANumber"
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return 0, "forms.book.pagesNotANumber"
	}
	pages, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "forms.book.pagesWholeNumber"
	}
	if pages < 1 {
		return 0, "forms.book.pagesTooFew"
	}
	return pages, ""
}
