package widgets

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

// compound renders a fieldset with a legend and the children in order.
type compound struct{}

func (compound) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	a := &attrs{rc: rc}
	class := joinClasses(f.CSSClass, errorState(res))
	a.setIf(class != "", "class", class)
	a.set("id", f.ID())

	var builder strings.Builder
	builder.WriteString("<fieldset")
	builder.WriteString(a.String())
	builder.WriteString(">\n<legend>")
	builder.WriteString(rc.text(f.LabelText()))
	builder.WriteString("</legend>\n")

	writeErrors(&builder, res, rc)

	for _, child := range f.Children().Sorted() {
		if child.Inactive {
			continue
		}
		markup, err := rc.RenderField(child)
		if err != nil {
			return "", err
		}
		builder.WriteString(markup)
	}
	builder.WriteString("</fieldset>\n")
	return builder.String(), nil
}
