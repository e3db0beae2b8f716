package field

import (
	"fmt"
	"strings"
)

// Result is the per-pass runtime state of one field: what was submitted, what
// the field inflated it to, what to fill back into the rendered input, and the
// validation errors. Results are created fresh for every process/validate pass.
type Result struct {
	Name     string
	Input    any
	HasInput bool
	Value    any
	HasValue bool
	FIF      string
	Errors   []string
}

// SetInput records submitted input for the field.
func (r *Result) SetInput(input any) {
	r.Input = input
	r.HasInput = true
}

// SetValue records the validated value.
func (r *Result) SetValue(value any) {
	r.Value = value
	r.HasValue = true
}

// ClearValue drops any value recorded during the pass.
func (r *Result) ClearValue() {
	r.Value = nil
	r.HasValue = false
}

// AddError appends a validation message. Blank messages are ignored.
func (r *Result) AddError(message string) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return
	}
	r.Errors = append(r.Errors, trimmed)
}

// HasErrors reports whether validation recorded any message.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// Results holds the Result of every field touched in a pass, keyed by full
// name and kept in first-touch order.
type Results struct {
	byName map[string]*Result
	order  []string
}

// NewResults returns an empty result set.
func NewResults() *Results {
	return &Results{byName: make(map[string]*Result)}
}

// For returns the result for f, creating it on first use.
func (rs *Results) For(f *Field) *Result {
	name := f.FullName()
	if res, ok := rs.byName[name]; ok {
		return res
	}
	res := &Result{Name: name}
	rs.byName[name] = res
	rs.order = append(rs.order, name)
	return res
}

// Get returns the result recorded under a full field name.
func (rs *Results) Get(fullName string) (*Result, bool) {
	if rs == nil {
		return nil, false
	}
	res, ok := rs.byName[fullName]
	return res, ok
}

// All returns the results in first-touch order.
func (rs *Results) All() []*Result {
	if rs == nil {
		return nil
	}
	out := make([]*Result, 0, len(rs.order))
	for _, name := range rs.order {
		out = append(out, rs.byName[name])
	}
	return out
}

// HasErrors reports whether any result carries an error.
func (rs *Results) HasErrors() bool {
	for _, res := range rs.All() {
		if res.HasErrors() {
			return true
		}
	}
	return false
}

// ErrorResults returns the results that carry errors, in first-touch order.
func (rs *Results) ErrorResults() []*Result {
	var out []*Result
	for _, res := range rs.All() {
		if res.HasErrors() {
			out = append(out, res)
		}
	}
	return out
}

// FormatValue renders a value the way it is filled back into an input.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
