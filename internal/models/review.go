// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a reader review attached to a book. Created via the review
// form; the backend enforces uniqueness, the client only tracks an
// advisory "already submitted" flag per browser.
type Review struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt int64     `json:"created_at"`
}

// Created returns the creation timestamp as time.Time.
func (r *Review) Created() time.Time {
	return time.Unix(r.CreatedAt, 0)
}

// ReviewList is the payload of GET /reviews/book/{bookId}.
type ReviewList struct {
	Data []Review `json:"data"`
}
