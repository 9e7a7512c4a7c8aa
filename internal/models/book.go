// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the catalog types exchanged with the backend REST
// API. The backend owns all durable state; these are transient, read-mostly
// copies held for the duration of a single request.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of book categories accepted by the backend.
type Category string

const (
	CategoryFiction    Category = "fiction"
	CategoryNonFiction Category = "non_fiction"
	CategoryScience    Category = "science"
	CategoryHistory    Category = "history"
	CategoryFantasy    Category = "fantasy"
	CategoryMystery    Category = "mystery"
	CategoryBiography  Category = "biography"
	CategoryRomance    Category = "romance"
	CategoryThriller   Category = "thriller"
	CategorySelfHelp   Category = "self_help"
	CategoryCooking    Category = "cooking"
	CategoryTravel     Category = "travel"
	CategoryClassics   Category = "classics"
	CategoryComics     Category = "comics"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFiction,
	CategoryNonFiction,
	CategoryScience,
	CategoryHistory,
	CategoryFantasy,
	CategoryMystery,
	CategoryBiography,
	CategoryRomance,
	CategoryThriller,
	CategorySelfHelp,
	CategoryCooking,
	CategoryTravel,
	CategoryClassics,
	CategoryComics,
}

// ValidCategory reports whether s is one of the known category values.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// SortOptions lists the sort keys the list page offers. The values are
// passed through to the backend unchanged.
var SortOptions = []string{
	"title",
	"rating",
	"recently_added",
	"recently_updated",
	"publication_year",
	"pages",
}

// Book is a catalog entry as the backend serializes it. Timestamps are
// Unix seconds.
type Book struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	Image           string    `json:"image"`
	PublicationYear int       `json:"publication_year"`
	Rating          float64   `json:"rating"`
	Pages           int       `json:"pages"`
	ISBN            string    `json:"isbn"`
	AuthorName      string    `json:"author_name"`
	CreatedAt       int64     `json:"created_at"`
	UpdatedAt       int64     `json:"updated_at"`
}

// Created returns the creation timestamp as time.Time.
func (b *Book) Created() time.Time {
	return time.Unix(b.CreatedAt, 0)
}

// Updated returns the last-update timestamp as time.Time.
func (b *Book) Updated() time.Time {
	return time.Unix(b.UpdatedAt, 0)
}

// PaginationMeta is the list envelope metadata the backend returns
// alongside paged data.
type PaginationMeta struct {
	TotalCount int64 `json:"total_count"`
	Offset     int   `json:"offset"`
	Limit      int   `json:"limit"`
}

// BookList is the payload of GET /books.
type BookList struct {
	Data []Book         `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NamedCount is one slice of a dashboard aggregate, e.g. reviews per
// reviewer or books per category.
type NamedCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
