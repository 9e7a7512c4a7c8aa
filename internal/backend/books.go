// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"bookdeck/internal/forms"
	"bookdeck/internal/models"
	"bookdeck/internal/query"
)

// Upload is a staged cover image attached to a book submission.
type Upload struct {
	Filename string
	Data     []byte
}

// ListBooks fetches one page of the catalog with the given filters applied.
// Returns (nil, nil) when the backend answers with a non-2xx status; an
// empty or out-of-range page is a normal state.
func (c *Client) ListBooks(ctx context.Context, filters query.Filters, p query.Pagination) (*models.BookList, error) {
	params := filters.Values()
	params.Set("limit", strconv.Itoa(p.Limit))
	params.Set("offset", strconv.Itoa(p.Offset()))

	var list models.BookList
	ok, err := c.get(ctx, c.baseURL+"/books?"+params.Encode(), &list)
	if err != nil || !ok {
		return nil, err
	}
	return &list, nil
}

// GetBook fetches a single book by ID. Returns (nil, nil) when the book
// does not exist.
func (c *Client) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	ok, err := c.get(ctx, c.baseURL+"/books/"+id.String(), &book)
	if err != nil || !ok {
		return nil, err
	}
	return &book, nil
}

// CreateBook submits a new book as a multipart form. The image part is
// attached only when an upload is staged; a book without a cover omits the
// field entirely.
func (c *Client) CreateBook(ctx context.Context, form forms.BookForm, image *Upload) (Result, error) {
	body, contentType, err := encodeBookForm(BookFields(form), image)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/books", body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(ctx, req, "book.add")
}

// UpdateBook submits a partial update for an existing book. Only the given
// fields are sent; the image part is attached only when staged.
func (c *Client) UpdateBook(ctx context.Context, id uuid.UUID, fields map[string]string, image *Upload) (Result, error) {
	body, contentType, err := encodeBookForm(fields, image)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/books/"+id.String(), body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(ctx, req, "book.update")
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, id uuid.UUID) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/books/"+id.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	return c.send(ctx, req, "book.delete")
}

// BookFields serializes a validated book form into the backend's multipart
// field names. Exposed so callers can build full-update field sets for
// UpdateBook.
func BookFields(form forms.BookForm) map[string]string {
	return map[string]string{
		"title":            form.Title,
		"isbn":             form.ISBN,
		"description":      form.Description,
		"author_name":      form.AuthorName,
		"category":         string(form.Category),
		"publication_year": strconv.Itoa(form.PublicationYear),
		"pages":            strconv.Itoa(form.Pages),
		"rating":           strconv.FormatFloat(form.Rating, 'f', -1, 64),
	}
}

// encodeBookForm builds the multipart body for a book submission.
func encodeBookForm(fields map[string]string, image *Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if image != nil {
		part, err := writer.CreateFormFile("image", image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(image.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
