// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backend is the HTTP client for the catalog REST API. It owns all
// durable state; this client fetches transient copies per request and
// forwards mutations.
//
// Business rejections (4xx/5xx on mutations) are returned as Result values
// with a message key, never as errors. A Go error from any method means the
// backend could not be reached at all; callers let that propagate to the
// top-level boundary.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// requestTimeout bounds every backend call.
	requestTimeout = 15 * time.Second

	// maxErrorBody caps how much of an error response is read when mapping
	// it to an outcome.
	maxErrorBody = 64 << 10
)

// Client talks to the backend REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// New creates a backend client for the given API origin, e.g.
// "http://localhost:8080/api". Outbound calls are rate limited to rps
// requests per second so a busy dashboard cannot stampede the backend.
func New(baseURL string, rps int) *Client {
	if rps <= 0 {
		rps = 50
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), rps),
	}
}

// get issues a GET request and decodes a 2xx JSON body into target.
// A non-2xx status returns (false, nil): missing or failing reads render
// as empty states, they are not errors. Transport failures return an error.
func (c *Client) get(ctx context.Context, url string, target any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Filter, sort, and pagination changes must always be reflected.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("backend get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode %s: %w", url, err)
	}
	return true, nil
}

// send issues a state-changing request and maps the response onto the
// closed outcome set for the given scope. Transport failures return an
// error; everything else is a Result.
func (c *Client) send(ctx context.Context, req *http.Request, scope string) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("backend %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return mapResponse(scope, resp.StatusCode, body), nil
}
