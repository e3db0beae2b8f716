package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to the missing handler when a Localizer has
// no translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale. Keys are the default
// (English) texts: labels, legends, help and validation messages.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a key has no
// translation. err is the translator's error, or ErrMissingTranslator.
type MissingTranslationHandler func(locale, key string, err error) string

// Localizer translates user-facing text at render time. A nil Localizer
// returns text unchanged.
type Localizer struct {
	Translator Translator
	Locale     string
	// OnMissing defaults to returning the key.
	OnMissing MissingTranslationHandler
}

// Text translates text, falling back per OnMissing.
func (l *Localizer) Text(text string) string {
	if l == nil || strings.TrimSpace(text) == "" {
		return text
	}
	if l.Translator == nil {
		if l.OnMissing != nil {
			return l.OnMissing(l.Locale, text, ErrMissingTranslator)
		}
		return text
	}
	result, err := l.Translator.Translate(l.Locale, text)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if l.OnMissing != nil {
		return l.OnMissing(l.Locale, text, err)
	}
	return text
}

// Texts translates every entry of texts into a new slice.
func (l *Localizer) Texts(texts []string) []string {
	if len(texts) == 0 {
		return nil
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = l.Text(text)
	}
	return out
}

// MapTranslator is a Translator backed by locale -> key -> text maps.
type MapTranslator map[string]map[string]string

// Translate looks key up for locale, then for its base language ("pt" for
// "pt-BR").
func (m MapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	for _, candidate := range localeCandidates(locale) {
		if msg, ok := m[candidate][key]; ok {
			return msg, nil
		}
	}
	return "", errMissingKey
}

var errMissingKey = errors.New("render: translation not found")

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	out := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		out = append(out, locale[:idx])
	}
	return out
}
