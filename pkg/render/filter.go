package render

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Filter converts a value into text that is safe to embed in HTML, both as
// element content and inside a double-quoted attribute.
type Filter func(value string) string

// Filter names accepted by FilterByName.
const (
	FilterEscape = "escape"
	FilterStrict = "strict"
)

// Escape is the default filter. It escapes &, <, >, " and '.
func Escape(value string) string {
	return html.EscapeString(value)
}

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// StrictFilter drops every tag from the value before escaping what is left.
// Use it when values may carry markup that must not survive even as text.
func StrictFilter(value string) string {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy.Sanitize(value)
}

// FilterByName resolves a configured filter name. An empty name selects
// Escape.
func FilterByName(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FilterEscape:
		return Escape, nil
	case FilterStrict:
		return StrictFilter, nil
	default:
		return nil, fmt.Errorf("render: unknown filter %q", name)
	}
}
