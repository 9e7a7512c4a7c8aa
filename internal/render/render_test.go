package render

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"bookdeck/internal/forms"
	"bookdeck/internal/i18n"
	"bookdeck/internal/models"
	"bookdeck/internal/query"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	tr, err := i18n.Load()
	if err != nil {
		t.Fatalf("i18n.Load() returned error: %v", err)
	}
	rn, err := New(true, tr)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return rn
}

func listData(books []models.Book, page int, total int64) map[string]any {
	return map[string]any{
		"Books":       books,
		"Meta":        models.PaginationMeta{TotalCount: total, Limit: query.PageSize},
		"Pagination":  query.Pagination{CurrentPage: page, Limit: query.PageSize},
		"Filters":     query.Filters{},
		"Categories":  models.Categories,
		"SortOptions": models.SortOptions,
	}
}

func sampleBook(title string) models.Book {
	return models.Book{
		ID:              uuid.New(),
		Title:           title,
		Description:     "A story about rendering templates.",
		Category:        models.CategoryFiction,
		Rating:          4.2,
		Pages:           320,
		PublicationYear: 2001,
		ISBN:            "978-0000000001",
		AuthorName:      "Jane Roe",
	}
}

func TestNew(t *testing.T) {
	rn := newRenderer(t)
	for _, name := range []string{"books_list", "book_detail", "book_form", "analytics", "not_found", "backend_error"} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestListPageRendersPagination(t *testing.T) {
	rn := newRenderer(t)

	// 15 books total, 10 per page: page 2 holds the last 5 and no Next link.
	books := []models.Book{sampleBook("The Last Five")}
	data := &PageData{
		Title:   "Books",
		Section: "books",
		Data:    listData(books, 2, 15),
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/?page=2", nil), "books_list", data)

	body := rec.Body.String()
	if !strings.Contains(body, "(15 Results) Page 2 of 2") {
		t.Errorf("missing pagination summary, got:\n%s", body)
	}
	if !strings.Contains(body, "Previous") {
		t.Error("expected Previous link on page 2")
	}
	if strings.Contains(body, ">Next<") {
		t.Error("unexpected Next link on the last page")
	}
	if !strings.Contains(body, "<html") {
		t.Error("full page load should include the base layout")
	}
}

func TestListPageHTMXRendersFragment(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{
		Title: "Books",
		Data:  listData([]models.Book{sampleBook("Fragment")}, 1, 1),
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	rn.Page(rec, req, "books_list", data)

	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("HTMX request should not include the base layout")
	}
	if !strings.Contains(body, "Fragment") {
		t.Error("fragment should include the book title")
	}
}

func TestListPageEmptyState(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{Title: "Books", Data: listData(nil, 1, 0)}
	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/", nil), "books_list", data)

	if !strings.Contains(rec.Body.String(), "No books found") {
		t.Error("expected empty-state message")
	}
}

func TestSearchInputDebounce(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{Title: "Books", Data: listData(nil, 1, 0)}
	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/", nil), "books_list", data)

	if !strings.Contains(rec.Body.String(), "keyup changed delay:350ms") {
		t.Error("search input should debounce keystrokes")
	}
}

func TestNotFoundPageStatus(t *testing.T) {
	rn := newRenderer(t)

	rec := httptest.NewRecorder()
	rn.PageWithStatus(rec, httptest.NewRequest("GET", "/books/nope", nil), "not_found", 404, &PageData{
		Title: "Not found",
		Data:  map[string]any{},
	})

	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Book not found") {
		t.Error("expected not-found message")
	}
}

func TestLocaleFallback(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{Title: "Books", Lang: "ro", Data: listData(nil, 1, 0)}
	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/", nil), "books_list", data)

	body := rec.Body.String()
	if !strings.Contains(body, `lang="ro"`) {
		t.Error("page should carry the requested locale")
	}
}

func TestDetailPageReviewStates(t *testing.T) {
	rn := newRenderer(t)
	book := sampleBook("Detail")

	base := func(already bool) *PageData {
		return &PageData{
			Title: book.Title,
			Data: map[string]any{
				"Book":            book,
				"Reviews":         []models.Review{},
				"AlreadyReviewed": already,
				"ReviewErrors":    map[string]string{},
			},
		}
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/books/x", nil), "book_detail", base(false))
	if !strings.Contains(rec.Body.String(), "Add a review") {
		t.Error("fresh viewer should see the review form")
	}

	rec = httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/books/x", nil), "book_detail", base(true))
	body := rec.Body.String()
	if !strings.Contains(body, "already submitted a review") {
		t.Error("returning reviewer should see the already-reviewed notice")
	}
	if strings.Contains(body, "Add a review") {
		t.Error("returning reviewer should not see the review form")
	}
}

func TestFormPageShowsFieldErrors(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{
		Title: "New book",
		Data: map[string]any{
			"Heading":    "form.newBookTitle",
			"Action":     "/books",
			"CancelURL":  "/",
			"Form":       forms.BookInput{},
			"Categories": models.Categories,
			"Errors": map[string]string{
				"title": "forms.book.titleRequired",
				"image": "forms.image.tooLarge",
			},
		},
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/books/new", nil), "book_form", data)

	body := rec.Body.String()
	if !strings.Contains(body, "Title is required") {
		t.Error("expected title validation message")
	}
	if !strings.Contains(body, "smaller than 4MB") {
		t.Error("expected image size message")
	}
}

func TestFormPageLocalizedLabels(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{
		Title: "New book",
		Lang:  "ro",
		Data: map[string]any{
			"Heading":    "form.newBookTitle",
			"Action":     "/books",
			"CancelURL":  "/",
			"Form":       forms.BookInput{},
			"Categories": models.Categories,
			"Errors":     map[string]string{},
		},
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/books/new", nil), "book_form", data)

	body := rec.Body.String()
	for _, label := range []string{"Titlu", "Autor", "Descriere", "Anul publicării"} {
		if !strings.Contains(body, label) {
			t.Errorf("expected localized label %q", label)
		}
	}
	if strings.Contains(body, ">Title<") {
		t.Error("field labels should come from the locale catalog")
	}
}

func TestFormPageImagePreviewControls(t *testing.T) {
	rn := newRenderer(t)

	data := &PageData{
		Title: "New book",
		Data: map[string]any{
			"Heading":    "form.newBookTitle",
			"Action":     "/books",
			"CancelURL":  "/",
			"Form":       forms.BookInput{},
			"Categories": models.Categories,
			"Errors":     map[string]string{},
		},
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, httptest.NewRequest("GET", "/books/new", nil), "book_form", data)

	body := rec.Body.String()
	for _, marker := range []string{`id="image-preview"`, `id="image-remove"`, "URL.createObjectURL"} {
		if !strings.Contains(body, marker) {
			t.Errorf("expected image preview control %s", marker)
		}
	}
	if !strings.Contains(body, "Remove image") {
		t.Error("expected remove-image control label")
	}
}
