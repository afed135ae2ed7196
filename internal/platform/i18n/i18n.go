// Package i18n resolves message codes into localized text using golang.org/x/text.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// FallbackCode is used for codes missing from the catalog.
const FallbackCode = "error.unexpected"

// Formatter renders message codes in the language best matching a request.
type Formatter interface {
	// Format renders code with args in the given language.
	Format(tag language.Tag, code string, args ...any) string
	// Match picks the supported language best matching an Accept-Language header value.
	Match(acceptLanguage string) language.Tag
}

// CatalogFormatter is a Formatter backed by an x/text catalog.
type CatalogFormatter struct {
	catalog   *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
	known     map[string]struct{}
}

// Ensure CatalogFormatter implements Formatter
var _ Formatter = (*CatalogFormatter)(nil)

// NewFormatter builds the catalog of every bundled language. defaultLocale (e.g. "en") is
// chosen when a request expresses no usable preference.
func NewFormatter(defaultLocale string) (*CatalogFormatter, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	f := &CatalogFormatter{catalog: b, known: map[string]struct{}{}}

	var defaultFound bool
	tags := []language.Tag{}
	for tag, messages := range bundles {
		for code, text := range messages {
			if err := b.SetString(tag, code, text); err != nil {
				return nil, fmt.Errorf("failed to register %s/%s: %w", tag, code, err)
			}
			f.known[code] = struct{}{}
		}
		if tag == def {
			defaultFound = true
			continue
		}
		tags = append(tags, tag)
	}
	if !defaultFound {
		return nil, fmt.Errorf("no messages bundled for default locale %q", defaultLocale)
	}

	// the matcher falls back to its first tag
	f.supported = append([]language.Tag{def}, tags...)
	f.matcher = language.NewMatcher(f.supported)
	return f, nil
}

func (f *CatalogFormatter) Format(tag language.Tag, code string, args ...any) string {
	if _, ok := f.known[code]; !ok {
		code = FallbackCode
		args = nil
	}
	// identifiers must not pick up locale digit grouping
	plain := make([]any, len(args))
	for i, a := range args {
		plain[i] = fmt.Sprint(a)
	}
	return message.NewPrinter(tag, message.Catalog(f.catalog)).Sprintf(code, plain...)
}

func (f *CatalogFormatter) Match(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return f.supported[0]
	}
	_, idx, _ := f.matcher.Match(prefs...)
	return f.supported[idx]
}
