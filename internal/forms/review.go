// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern checks basic email shape. Deliverability is the backend's
// problem; this only rejects obviously malformed addresses.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ReviewInput holds the raw review form values as submitted.
type ReviewInput struct {
	Name    string
	Email   string
	Content string
}

// ReviewForm is the validated review payload.
type ReviewForm struct {
	Name    string
	Email   string
	Content string
}

// Validate checks every field and returns the typed form plus a map of
// field name to message key for each violated field.
func (in ReviewInput) Validate() (ReviewForm, map[string]string) {
	errs := make(map[string]string)
	var form ReviewForm

	form.Name = strings.TrimSpace(in.Name)
	switch {
	case form.Name == "":
		errs["name"] = "forms.review.nameRequired"
	case utf8.RuneCountInString(form.Name) < 2:
		errs["name"] = "forms.review.nameTooShort"
	case utf8.RuneCountInString(form.Name) > 100:
		errs["name"] = "forms.review.nameTooLong"
	}

	form.Email = strings.TrimSpace(in.Email)
	switch {
	case form.Email == "":
		errs["email"] = "forms.review.emailRequired"
	case !emailPattern.MatchString(form.Email):
		errs["email"] = "forms.review.emailInvalid"
	case utf8.RuneCountInString(form.Email) > 100:
		errs["email"] = "forms.review.emailTooLong"
	}

	form.Content = strings.TrimSpace(in.Content)
	switch {
	case form.Content == "":
		errs["content"] = "forms.review.contentRequired"
	case utf8.RuneCountInString(form.Content) > 1000:
		errs["content"] = "forms.review.contentTooLong"
	}

	return form, errs
}
