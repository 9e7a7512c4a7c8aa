package i18n

import "testing"

func TestLoad(t *testing.T) {
	tr, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !tr.Has("en") {
		t.Error("expected embedded en dictionary")
	}
	if !tr.Has("ro") {
		t.Error("expected embedded ro dictionary")
	}
}

func TestTranslateFlattensNestedKeys(t *testing.T) {
	tr, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := tr.T("en", "actions.book.isbnExists")
	if got != "A book with this ISBN already exists" {
		t.Errorf("T(en, actions.book.isbnExists) = %q", got)
	}
}

func TestTranslateFallsBackToDefaultLocale(t *testing.T) {
	tr, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Unknown locale falls back entirely.
	got := tr.T("zz", "nav.books")
	if got != "Books" {
		t.Errorf("expected en fallback for unknown locale, got %q", got)
	}

	// A key missing from one dictionary falls back per key.
	sparse := &Translator{locales: map[string]map[string]string{
		"en": {"nav.books": "Books"},
		"xx": {},
	}}
	if got := sparse.T("xx", "nav.books"); got != "Books" {
		t.Errorf("expected en fallback for missing key, got %q", got)
	}
}

func TestLocaleCatalogParity(t *testing.T) {
	tr, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	en := tr.locales[DefaultLocale]
	for _, code := range tr.Locales() {
		if code == DefaultLocale {
			continue
		}
		dict := tr.locales[code]
		for key := range en {
			if _, ok := dict[key]; !ok {
				t.Errorf("locale %s is missing key %s", code, key)
			}
		}
		for key := range dict {
			if _, ok := en[key]; !ok {
				t.Errorf("locale %s has key %s absent from %s", code, key, DefaultLocale)
			}
		}
	}
}

func TestTranslateUnknownKeyStaysVisible(t *testing.T) {
	tr, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := tr.T("en", "no.such.key")
	if got != "no.such.key" {
		t.Errorf("unknown key should echo itself, got %q", got)
	}
}

func TestLocales(t *testing.T) {
	tr, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	codes := tr.Locales()
	if len(codes) != 2 || codes[0] != "en" || codes[1] != "ro" {
		t.Errorf("Locales() = %v, want [en ro]", codes)
	}
}
