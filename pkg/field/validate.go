package field

import "strings"

// ValidateField validates the field's input recorded in rs. Compound fields
// validate their children and collect the children's values into a map.
// Problems are recorded on the field's Result; nothing is returned.
func (f *Field) ValidateField(rs *Results) {
	res := rs.For(f)
	res.Errors = nil
	res.ClearValue()
	if f.Static {
		return
	}

	if f.children != nil {
		f.children.Validate(rs, f)
		value := make(map[string]any)
		for _, child := range f.children.fields {
			if child.NoUpdate || child.Static || child.Inactive {
				continue
			}
			if cr, ok := rs.Get(child.FullName()); ok && cr.HasValue {
				value[child.Name] = cr.Value
			}
		}
		if len(value) == 0 {
			if f.Required {
				res.AddError(f.RequiredMessageText())
			}
			return
		}
		res.SetValue(value)
		return
	}

	input, ok := textInput(res)
	if !ok {
		if f.Required {
			res.AddError(f.RequiredMessageText())
		}
		return
	}
	f.variant.Validate(f, input, res)
}

// Bind records the submitted input for the field (and its children) from
// params keyed by HTML name. A field missing from params takes its
// InputWithoutParam, if any.
func (f *Field) Bind(rs *Results, params map[string]any) {
	res := rs.For(f)
	if f.children != nil {
		for _, child := range f.children.fields {
			child.Bind(rs, params)
		}
		return
	}
	if f.Static {
		return
	}
	if value, ok := params[f.HTMLName()]; ok {
		res.SetInput(value)
		return
	}
	if f.InputWithoutParam != nil {
		res.SetInput(f.InputWithoutParam)
	}
}

// FillIn computes the fill-in-form string of the field's result. Submitted
// input wins over initial, and initial over the declared default. Write-only
// and static fields never fill in.
func (f *Field) FillIn(res *Result, initial any, hasInitial bool) {
	res.FIF = ""
	if f.WriteOnly || f.Static || f.children != nil {
		return
	}
	switch {
	case res.HasInput:
		res.FIF = inputString(res.Input)
	case hasInitial:
		res.FIF = FormatValue(initial)
	case f.Default != nil:
		res.FIF = FormatValue(f.Default)
	}
}

func textInput(res *Result) (string, bool) {
	if !res.HasInput || res.Input == nil {
		return "", false
	}
	input := inputString(res.Input)
	if strings.TrimSpace(input) == "" {
		return "", false
	}
	return input, true
}

// inputString reduces submitted input to a single string. Multi-valued
// params (url.Values style) contribute their first value.
func inputString(input any) string {
	switch v := input.(type) {
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case []any:
		if len(v) == 0 {
			return ""
		}
		return FormatValue(v[0])
	default:
		return FormatValue(v)
	}
}
