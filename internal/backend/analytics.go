// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"net/url"

	"bookdeck/internal/models"
)

// aggregateEnvelope wraps the dashboard aggregate payloads.
type aggregateEnvelope struct {
	Data []models.NamedCount `json:"data"`
}

// ReviewsData fetches the reviews-per-reviewer aggregate for the analytics
// page. Returns (nil, nil) when the read fails with a non-2xx status.
func (c *Client) ReviewsData(ctx context.Context) ([]models.NamedCount, error) {
	var envelope aggregateEnvelope
	ok, err := c.get(ctx, c.baseURL+"/dashboard/reviews-data", &envelope)
	if err != nil || !ok {
		return nil, err
	}
	return envelope.Data, nil
}

// BooksData fetches the books-by-dimension aggregate, grouped by the
// filter_by key ("category" by default on the backend).
func (c *Client) BooksData(ctx context.Context, filterBy string) ([]models.NamedCount, error) {
	target := c.baseURL + "/dashboard/books-data"
	if filterBy != "" {
		target += "?filter_by=" + url.QueryEscape(filterBy)
	}

	var envelope aggregateEnvelope
	ok, err := c.get(ctx, target, &envelope)
	if err != nil || !ok {
		return nil, err
	}
	return envelope.Data, nil
}
