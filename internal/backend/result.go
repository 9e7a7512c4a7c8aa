// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"encoding/json"
	"strings"
)

// isbnDuplicateMessage is the backend's ISBN uniqueness violation text.
// It can arrive under more than one status code, so it is matched on the
// body rather than the status.
const isbnDuplicateMessage = "A book with this ISBN already exists"

// Result is the outcome of a mutation. OK distinguishes success from a
// business rejection; MessageKey is a stable, language-neutral key the
// localization layer resolves for the toast.
type Result struct {
	OK         bool
	MessageKey string
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// successKeys maps a mutation scope ("book.add", "review.add", ...) to its
// success message key.
var successKeys = map[string]string{
	"book.add":    "actions.book.addSuccess",
	"book.update": "actions.book.updateSuccess",
	"book.delete": "actions.book.deleteSuccess",
	"review.add":  "actions.review.addSuccess",
}

// mapResponse converts a mutation response into a Result. 2xx succeeds;
// the ISBN duplicate message wins over the generic status mapping; the
// remaining statuses collapse onto the closed outcome set.
func mapResponse(scope string, status int, body []byte) Result {
	if status >= 200 && status <= 299 {
		return Result{OK: true, MessageKey: successKeys[scope]}
	}

	domain := strings.SplitN(scope, ".", 2)[0]

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if strings.Contains(eb.Error, isbnDuplicateMessage) {
			return Result{MessageKey: "actions.book.isbnExists"}
		}
	}

	switch status {
	case 400:
		return Result{MessageKey: "actions." + domain + ".invalidData"}
	case 404:
		return Result{MessageKey: "actions." + domain + ".notFound"}
	case 409:
		return Result{MessageKey: "actions." + domain + ".conflictError"}
	case 500:
		return Result{MessageKey: "actions." + domain + ".serverError"}
	default:
		return Result{MessageKey: "actions." + domain + ".unexpectedError"}
	}
}
