// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookdeck/internal/backend"
	"bookdeck/internal/cache"
	"bookdeck/internal/forms"
	"bookdeck/internal/i18n"
	"bookdeck/internal/middleware"
	"bookdeck/internal/models"
	"bookdeck/internal/query"
	"bookdeck/internal/render"
	"bookdeck/internal/session"
)

// Books groups the catalog handlers: the list page, the detail page with
// reviews, and the create/update/delete forms. pageCache and sessions may
// be nil, in which case caching and viewer flags are disabled.
type Books struct {
	api       *backend.Client
	renderer  *render.Renderer
	pageCache *cache.PageCache
	sessions  *session.Store
	tr        *i18n.Translator
}

// Dropdown values for the list page's range filters: half-star rating
// floors, page-count ceilings, and decade steps down to the earliest
// accepted publication year. The selected value passes through to the
// backend unchanged.
var (
	ratingFilterOptions = []string{"0.5", "1", "1.5", "2", "2.5", "3", "3.5", "4", "4.5", "5"}
	pagesFilterOptions  = []string{"1000", "2000", "3000", "4000", "5000", "6000", "7000", "8000", "9000", "10000"}
)

func yearFilterOptions() []string {
	now := time.Now().Year()
	years := []string{strconv.Itoa(now)}
	for y := now - now%10; y >= forms.MinPublicationYear; y -= 10 {
		if y != now {
			years = append(years, strconv.Itoa(y))
		}
	}
	return years
}

// NewBooks creates a new Books handler group.
func NewBooks(api *backend.Client, renderer *render.Renderer, pageCache *cache.PageCache, sessions *session.Store, tr *i18n.Translator) *Books {
	return &Books{
		api:       api,
		renderer:  renderer,
		pageCache: pageCache,
		sessions:  sessions,
		tr:        tr,
	}
}

// List renders the catalog list page with search, filters, sorting, and
// pagination, all driven by the URL query string.
func (h *Books) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filters := query.Normalize(r.URL.Query())
	pag := query.ResolvePage(r.URL.Query().Get("page"))

	key := cache.ListKey(canonicalListQuery(filters, pag))
	if serveCached(h.pageCache, w, r, key) {
		return
	}

	list, err := h.api.ListBooks(ctx, filters, pag)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if list == nil {
		list = &models.BookList{}
	}

	locale := lang(r, h.tr)
	data := &render.PageData{
		Title:   h.tr.T(locale, "list.title"),
		Section: "books",
		Lang:    locale,
		Flashes: flashes(r, h.tr, locale),
		Data: map[string]any{
			"Books":         list.Data,
			"Meta":          list.Meta,
			"Pagination":    pag,
			"Filters":       filters,
			"Categories":    models.Categories,
			"SortOptions":   models.SortOptions,
			"YearOptions":   yearFilterOptions(),
			"RatingOptions": ratingFilterOptions,
			"PagesOptions":  pagesFilterOptions,
		},
	}

	renderCached(h.pageCache, h.renderer, w, r, key, "books_list", data)
}

// Detail renders a single book with its reviews and the review form.
func (h *Books) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	key := cache.BookKey(id.String())
	if serveCached(h.pageCache, w, r, key) {
		return
	}

	book, err := h.api.GetBook(ctx, id)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if book == nil {
		h.notFound(w, r)
		return
	}

	reviews, err := h.api.ListReviews(ctx, id)
	if err != nil {
		h.backendError(w, r, err)
		return
	}

	renderCached(h.pageCache, h.renderer, w, r, key, "book_detail", h.detailData(r, book, reviews, nil, nil, ""))
}

// NewForm renders the empty add-book form.
func (h *Books) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "book_form", h.formData(r, forms.BookInput{}, map[string]string{}, addFormMeta()))
}

// Create validates the submitted book form and forwards it to the backend.
func (h *Books) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input := bookInputFromRequest(r)
	form, errs := input.Validate()

	upload, imageKey := readUpload(r)
	if imageKey != "" {
		errs["image"] = imageKey
	}

	if len(errs) > 0 {
		h.renderer.Page(w, r, "book_form", h.formData(r, input, errs, addFormMeta()))
		return
	}

	res, err := h.api.CreateBook(ctx, form, upload)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if !res.OK {
		data := h.formData(r, input, errs, addFormMeta())
		data.Data["Message"] = res.MessageKey
		h.renderer.Page(w, r, "book_form", data)
		return
	}

	h.invalidateLists(ctx)
	redirect(w, r, flashURL("/", res.MessageKey, "success"))
}

// EditForm renders the edit form prefilled with the book's current values.
func (h *Books) EditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	book, err := h.api.GetBook(ctx, id)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if book == nil {
		h.notFound(w, r)
		return
	}

	input := forms.BookInput{
		Title:           book.Title,
		Description:     book.Description,
		Category:        string(book.Category),
		Rating:          strconv.FormatFloat(book.Rating, 'f', -1, 64),
		PublicationYear: strconv.Itoa(book.PublicationYear),
		Pages:           strconv.Itoa(book.Pages),
		ISBN:            book.ISBN,
		AuthorName:      book.AuthorName,
	}

	h.renderer.Page(w, r, "book_form", h.formData(r, input, map[string]string{}, editFormMeta(id, book.Image)))
}

// Update validates the edit form and forwards the full field set to the
// backend as a partial update.
func (h *Books) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	input := bookInputFromRequest(r)
	form, errs := input.Validate()

	upload, imageKey := readUpload(r)
	if imageKey != "" {
		errs["image"] = imageKey
	}

	if len(errs) > 0 {
		h.renderer.Page(w, r, "book_form", h.formData(r, input, errs, editFormMeta(id, "")))
		return
	}

	res, err := h.api.UpdateBook(ctx, id, backend.BookFields(form), upload)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if !res.OK {
		data := h.formData(r, input, errs, editFormMeta(id, ""))
		data.Data["Message"] = res.MessageKey
		h.renderer.Page(w, r, "book_form", data)
		return
	}

	h.invalidateBook(ctx, id)
	redirect(w, r, flashURL("/books/"+id.String(), res.MessageKey, "success"))
}

// Delete removes a book and returns to the list page.
func (h *Books) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	res, err := h.api.DeleteBook(ctx, id)
	if err != nil {
		h.backendError(w, r, err)
		return
	}

	kind := "success"
	if !res.OK {
		kind = "error"
	} else {
		h.invalidateBook(ctx, id)
	}
	redirect(w, r, flashURL("/", res.MessageKey, kind))
}

// CreateReview validates and submits a review for a book, then marks the
// viewer session so the form is replaced by the already-reviewed notice.
func (h *Books) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	book, err := h.api.GetBook(ctx, id)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if book == nil {
		h.notFound(w, r)
		return
	}

	input := forms.ReviewInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Content: r.FormValue("content"),
	}
	form, errs := input.Validate()

	if len(errs) > 0 {
		h.renderReviewForm(w, r, book, &input, errs, "")
		return
	}

	res, err := h.api.CreateReview(ctx, id, form)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	if !res.OK {
		h.renderReviewForm(w, r, book, &input, map[string]string{}, res.MessageKey)
		return
	}

	if h.sessions != nil {
		if err := h.sessions.MarkReviewed(ctx, w, r, id.String()); err != nil {
			slog.Warn("mark reviewed failed", "error", err, "book", id)
		}
	}
	h.invalidateBook(ctx, id)
	redirect(w, r, flashURL("/books/"+id.String(), res.MessageKey, "success"))
}

// Validate runs the book form rules without submitting anything, returning
// the error-summary fragment. Wired to field change events on the form.
func (h *Books) Validate(w http.ResponseWriter, r *http.Request) {
	input := bookInputFromRequest(r)
	_, errs := input.Validate()

	locale := lang(r, h.tr)
	h.renderer.Fragment(w, "book_form", "form_errors", &render.PageData{
		Lang: locale,
		Data: map[string]any{"Errors": errs},
	})
}

// renderReviewForm re-renders the review section with validation errors.
// HTMX requests get just the form fragment; plain posts get the full page.
func (h *Books) renderReviewForm(w http.ResponseWriter, r *http.Request, book *models.Book, input *forms.ReviewInput, errs map[string]string, messageKey string) {
	if r.Header.Get("HX-Request") == "true" {
		h.renderer.Fragment(w, "book_detail", "review_form", h.detailData(r, book, nil, input, errs, messageKey))
		return
	}

	reviews, err := h.api.ListReviews(r.Context(), book.ID)
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.renderer.Page(w, r, "book_detail", h.detailData(r, book, reviews, input, errs, messageKey))
}

// detailData assembles the template data for the detail page.
func (h *Books) detailData(r *http.Request, book *models.Book, reviews *models.ReviewList, input *forms.ReviewInput, errs map[string]string, messageKey string) *render.PageData {
	locale := lang(r, h.tr)

	var reviewItems []models.Review
	if reviews != nil {
		reviewItems = reviews.Data
	}
	if errs == nil {
		errs = map[string]string{}
	}

	viewer := middleware.ViewerFromCtx(r.Context())

	data := map[string]any{
		"Book":            book,
		"Reviews":         reviewItems,
		"AlreadyReviewed": viewer.HasReviewed(book.ID.String()),
		"ReviewErrors":    errs,
	}
	if input != nil {
		data["ReviewInput"] = *input
	}
	if messageKey != "" {
		data["ReviewMessage"] = messageKey
	}

	return &render.PageData{
		Title:   book.Title,
		Section: "books",
		Lang:    locale,
		Flashes: flashes(r, h.tr, locale),
		Data:    data,
	}
}

// formMeta carries the add/edit differences of the book form page.
type formMeta struct {
	heading      string
	action       string
	cancelURL    string
	currentImage string
}

func addFormMeta() formMeta {
	return formMeta{heading: "form.newBookTitle", action: "/books", cancelURL: "/"}
}

func editFormMeta(id uuid.UUID, image string) formMeta {
	return formMeta{
		heading:      "form.editBookTitle",
		action:       "/books/" + id.String(),
		cancelURL:    "/books/" + id.String(),
		currentImage: image,
	}
}

// formData assembles the template data for the book form page.
func (h *Books) formData(r *http.Request, input forms.BookInput, errs map[string]string, meta formMeta) *render.PageData {
	locale := lang(r, h.tr)
	return &render.PageData{
		Title:   h.tr.T(locale, meta.heading),
		Section: "new",
		Lang:    locale,
		Data: map[string]any{
			"Heading":      meta.heading,
			"Action":       meta.action,
			"CancelURL":    meta.cancelURL,
			"CurrentImage": meta.currentImage,
			"Form":         input,
			"Errors":       errs,
			"Categories":   models.Categories,
		},
	}
}

// bookInputFromRequest collects the raw book form values.
func bookInputFromRequest(r *http.Request) forms.BookInput {
	return forms.BookInput{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		Category:        r.FormValue("category"),
		Rating:          r.FormValue("rating"),
		PublicationYear: r.FormValue("publication_year"),
		Pages:           r.FormValue("pages"),
		ISBN:            r.FormValue("isbn"),
		AuthorName:      r.FormValue("author_name"),
	}
}

// readUpload stages the cover image from the multipart form, if one was
// chosen. Returns a message key when the file fails validation.
func readUpload(r *http.Request) (*backend.Upload, string) {
	file, header, err := r.FormFile("image")
	if err != nil {
		// No file input or nothing chosen.
		return nil, ""
	}
	defer file.Close()

	if header.Filename == "" || header.Size == 0 {
		return nil, ""
	}

	data, err := io.ReadAll(io.LimitReader(file, forms.MaxImageSize+1))
	if err != nil {
		return nil, "forms.image.invalidType"
	}

	if key := forms.ValidateImage(data, header.Size); key != "" {
		return nil, key
	}

	return &backend.Upload{Filename: header.Filename, Data: data}, ""
}

// notFound renders the 404 page.
func (h *Books) notFound(w http.ResponseWriter, r *http.Request) {
	locale := lang(r, h.tr)
	h.renderer.PageWithStatus(w, r, "not_found", http.StatusNotFound, &render.PageData{
		Title:   h.tr.T(locale, "detail.notFound"),
		Section: "books",
		Lang:    locale,
		Data:    map[string]any{},
	})
}

// backendError renders the 502 page when the catalog backend is unreachable.
func (h *Books) backendError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("backend request failed", "error", err, "path", r.URL.Path)
	locale := lang(r, h.tr)
	h.renderer.PageWithStatus(w, r, "backend_error", http.StatusBadGateway, &render.PageData{
		Title:   h.tr.T(locale, "actions.backendUnavailable"),
		Section: "books",
		Lang:    locale,
		Data:    map[string]any{},
	})
}

// canonicalListQuery rebuilds the list cache key from the normalized
// filters and page, so tracking params never fragment the cache.
func canonicalListQuery(filters query.Filters, pag query.Pagination) string {
	v := filters.Values()
	if pag.CurrentPage > 1 {
		v.Set("page", strconv.Itoa(pag.CurrentPage))
	}
	return v.Encode()
}

func (h *Books) invalidateLists(ctx context.Context) {
	if h.pageCache == nil {
		return
	}
	h.pageCache.InvalidateLists(ctx)
	h.pageCache.InvalidateAnalytics(ctx)
}

func (h *Books) invalidateBook(ctx context.Context, id uuid.UUID) {
	if h.pageCache == nil {
		return
	}
	h.pageCache.InvalidateBook(ctx, id.String())
	h.pageCache.InvalidateLists(ctx)
	h.pageCache.InvalidateAnalytics(ctx)
}
