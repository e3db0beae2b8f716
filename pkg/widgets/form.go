package widgets

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/render"
)

// DefaultMethod is emitted when FormAttrs.Method is blank.
const DefaultMethod = "post"

// FormAttrs describe the <form> element wrapping rendered fields.
type FormAttrs struct {
	ID     string
	Method string
	Action string
	// AutoFieldsetWrap encloses the fields in <fieldset class="main_fieldset">.
	AutoFieldsetWrap bool
	Hidden           []render.HiddenField
	// Errors are form-level messages not tied to any field.
	Errors []string
}

// RenderForm emits the form start tag, hidden inputs, form-level errors and
// every active field in the given sequence, then closes the form. Callers pass
// fields already sorted by order.
func RenderForm(fa FormAttrs, fields []*field.Field, rc *Context) (string, error) {
	if rc == nil {
		rc = &Context{}
	}
	classes := rc.classes()

	method := strings.TrimSpace(fa.Method)
	if method == "" {
		method = DefaultMethod
	}

	start := &attrs{rc: rc}
	start.setIf(fa.ID != "", "id", fa.ID)
	start.set("method", method)
	start.setIf(fa.Action != "", "action", fa.Action)
	start.setIf(classes.Form != "", "class", classes.Form)

	var builder strings.Builder
	builder.WriteString("<form")
	builder.WriteString(start.String())
	builder.WriteString(">\n")
	if fa.AutoFieldsetWrap {
		builder.WriteString("<fieldset class=\"main_fieldset\">\n")
	}

	for _, hf := range fa.Hidden {
		h := &attrs{rc: rc}
		h.set("type", "hidden").set("name", hf.Name).set("value", hf.Value)
		builder.WriteString("<input")
		builder.WriteString(h.String())
		builder.WriteString(" />\n")
	}

	if len(fa.Errors) > 0 {
		builder.WriteString("<div class=\"form_errors\">\n")
		writeErrors(&builder, &field.Result{Errors: fa.Errors}, rc)
		builder.WriteString("</div>\n")
	}

	for _, f := range fields {
		if f.Inactive {
			continue
		}
		markup, err := rc.RenderField(f)
		if err != nil {
			return "", err
		}
		builder.WriteString(markup)
	}

	if fa.AutoFieldsetWrap {
		builder.WriteString("</fieldset>\n")
	}
	builder.WriteString("</form>\n")
	return builder.String(), nil
}
