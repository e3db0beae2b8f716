package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

// DefaultCSRFName is the input name used by CSRFToken when none is given.
const DefaultCSRFName = "_csrf"

// HiddenField is a hidden input emitted at the top of a rendered form, outside
// the declared field tree.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair. Values are
// formatted the same way field values are filled in.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: field.FormatValue(value),
	}
}

// CSRFToken returns a hidden field carrying token. An empty name selects
// DefaultCSRFName.
func CSRFToken(name, token string) HiddenField {
	if strings.TrimSpace(name) == "" {
		name = DefaultCSRFName
	}
	return Hidden(name, token)
}

// MergeHiddenFields returns a name-keyed copy of base with fields applied.
// Blank names are dropped and later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if key := strings.TrimSpace(name); key != "" {
			out[key] = value
		}
	}
	for _, hf := range fields {
		if hf.Name == "" {
			continue
		}
		out[hf.Name] = hf.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		if key := strings.TrimSpace(name); key != "" {
			out = append(out, HiddenField{Name: key, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) == 0 {
		return nil
	}
	return out
}
