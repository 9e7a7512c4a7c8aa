// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"bookdeck/internal/forms"
	"bookdeck/internal/models"
)

// ListReviews fetches all reviews for a book. A book with no reviews yet
// returns an empty list, not an error; (nil, nil) means the read failed
// with a non-2xx status.
func (c *Client) ListReviews(ctx context.Context, bookID uuid.UUID) (*models.ReviewList, error) {
	var list models.ReviewList
	ok, err := c.get(ctx, c.baseURL+"/reviews/book/"+bookID.String(), &list)
	if err != nil || !ok {
		return nil, err
	}
	return &list, nil
}

// CreateReview submits a review for a book as JSON.
func (c *Client) CreateReview(ctx context.Context, bookID uuid.UUID, form forms.ReviewForm) (Result, error) {
	payload, err := json.Marshal(map[string]string{
		"name":    form.Name,
		"email":   form.Email,
		"content": form.Content,
		"book_id": bookID.String(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal review: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reviews", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(ctx, req, "review.add")
}
