package widgets

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/render"
)

type wrapOptions struct {
	label bool
	// labelAfter places the label after the control (checkboxes).
	labelAfter bool
}

// wrap surrounds control with the field's container div, label, error
// messages and help text.
func wrap(f *field.Field, res *field.Result, rc *Context, control string, opts wrapOptions) string {
	classes := rc.classes()

	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(rc.filter(joinClasses(classes.Field, f.CSSClass, errorState(res))))
	builder.WriteString(`">`)
	builder.WriteByte('\n')

	label := func() {
		builder.WriteString(`<label class="`)
		builder.WriteString(rc.filter(classes.Label))
		builder.WriteString(`" for="`)
		builder.WriteString(rc.filter(f.ID()))
		builder.WriteString(`">`)
		builder.WriteString(rc.text(f.LabelText()))
		if f.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	if opts.label && !opts.labelAfter {
		label()
	}
	builder.WriteString(control)
	builder.WriteByte('\n')
	if opts.label && opts.labelAfter {
		label()
	}

	writeErrors(&builder, res, rc)

	if help := render.SanitizeHelp(rc.Localizer.Text(f.Help)); help != "" {
		builder.WriteString(`<small class="`)
		builder.WriteString(rc.filter(classes.Help))
		builder.WriteString(`">`)
		builder.WriteString(help)
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func writeErrors(builder *strings.Builder, res *field.Result, rc *Context) {
	if res == nil {
		return
	}
	class := rc.filter(rc.classes().Error)
	for _, message := range res.Errors {
		builder.WriteString(`<span class="`)
		builder.WriteString(class)
		builder.WriteString(`">`)
		builder.WriteString(rc.text(message))
		builder.WriteString("</span>\n")
	}
}

func errorState(res *field.Result) string {
	if res.HasErrors() {
		return "error"
	}
	return ""
}

func joinClasses(values ...string) string {
	var out []string
	for _, value := range values {
		out = append(out, strings.Fields(value)...)
	}
	return strings.Join(out, " ")
}

// attrs accumulates ` key="value"` pairs with filtered values.
type attrs struct {
	builder strings.Builder
	rc      *Context
}

func (a *attrs) set(key, value string) *attrs {
	a.builder.WriteByte(' ')
	a.builder.WriteString(key)
	a.builder.WriteString(`="`)
	a.builder.WriteString(a.rc.filter(value))
	a.builder.WriteByte('"')
	return a
}

func (a *attrs) setIf(ok bool, key, value string) *attrs {
	if ok {
		a.set(key, value)
	}
	return a
}

func (a *attrs) setInt(key string, value int) *attrs {
	if value > 0 {
		a.set(key, strconv.Itoa(value))
	}
	return a
}

// common writes the attributes shared by every input control.
func (a *attrs) common(f *field.Field) *attrs {
	a.set("name", f.HTMLName())
	a.set("id", f.ID())
	a.setIf(f.Title != "", "title", f.Title)
	a.setIf(f.Disabled, "disabled", "disabled")
	a.setIf(f.ReadOnly, "readonly", "readonly")
	return a
}

func (a *attrs) String() string {
	return a.builder.String()
}
