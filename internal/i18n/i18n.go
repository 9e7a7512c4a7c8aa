// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves stable, language-neutral message keys (for example
// "actions.book.isbnExists") to display text. Handlers and forms only emit
// keys; the dictionaries are data, embedded per locale.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is used when a request carries no locale preference and as
// the fallback for keys missing from other dictionaries.
const DefaultLocale = "en"

// Translator holds the flattened dictionaries for all embedded locales.
type Translator struct {
	locales map[string]map[string]string
}

// Load parses every embedded locale dictionary. Nested JSON objects are
// flattened to dotted keys ("actions.book.addSuccess").
func Load() (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	t := &Translator{locales: make(map[string]map[string]string)}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}

		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		t.locales[strings.TrimSuffix(name, ".json")] = flat
	}

	if _, ok := t.locales[DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q is missing", DefaultLocale)
	}

	return t, nil
}

// T resolves key in the given locale, falling back to the default locale
// and finally to the key itself so untranslated keys stay visible instead
// of rendering as empty strings.
func (t *Translator) T(locale, key string) string {
	if dict, ok := t.locales[locale]; ok {
		if msg, ok := dict[key]; ok {
			return msg
		}
	}
	if msg, ok := t.locales[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Has reports whether the locale has an embedded dictionary.
func (t *Translator) Has(locale string) bool {
	_, ok := t.locales[locale]
	return ok
}

// Locales returns the embedded locale codes, sorted.
func (t *Translator) Locales() []string {
	codes := make([]string, 0, len(t.locales))
	for code := range t.locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// flatten walks a nested JSON object, writing leaf strings into flat under
// dotted paths. Non-string leaves are ignored.
func flatten(prefix string, nested map[string]any, flat map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			flat[key] = val
		case map[string]any:
			flatten(key, val, flat)
		}
	}
}
