package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang is the fallback language for unknown or missing translations.
// The site's primary audience is French.
const DefaultLang = "fr"

// Bundle holds all translations, flattened to "lang:key.path" for O(1)
// lookups. It is immutable after Load, safe for concurrent use.
type Bundle struct {
	translations map[string]string
	defaultLang  string
	languages    []string
}

// Load parses every embedded locale file. The file name (without extension)
// is the language code.
func Load() (*Bundle, error) {
	b := &Bundle{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir: %w", err)
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))

		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}

		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", entry.Name(), err)
		}

		for key, value := range flatten(nested, "") {
			b.translations[lang+":"+key] = value
		}

		b.languages = append(b.languages, lang)
	}

	sort.Strings(b.languages)

	if !b.Has(b.defaultLang) {
		return nil, fmt.Errorf("i18n: default language %q has no dictionary", b.defaultLang)
	}

	return b, nil
}

// T returns the translation for key in lang, falling back to the default
// language, then to the key itself so missing entries stay visible.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.translations[lang+":"+key]; ok {
		return v
	}
	if v, ok := b.translations[b.defaultLang+":"+key]; ok {
		return v
	}
	return key
}

// Resolve normalizes a requested language to one with a dictionary.
// Unknown languages are not an error, they get the default copy.
func (b *Bundle) Resolve(lang string) string {
	if b.Has(lang) {
		return lang
	}
	return b.defaultLang
}

// Has reports whether lang has a loaded dictionary.
func (b *Bundle) Has(lang string) bool {
	for _, l := range b.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Languages returns the loaded language codes, sorted.
func (b *Bundle) Languages() []string {
	return b.languages
}

// flatten converts nested JSON objects into dotted keys.
func flatten(nested map[string]any, prefix string) map[string]string {
	flat := make(map[string]string)
	for key, value := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			flat[full] = v
		case map[string]any:
			for k, s := range flatten(v, full) {
				flat[k] = s
			}
		}
	}
	return flat
}
