package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

type textInput struct {
	inputType string
}

func (w textInput) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	a := &attrs{rc: rc}
	a.set("type", w.inputType).common(f)
	a.set("value", res.FIF)
	a.setInt("size", f.Size).setInt("maxlength", f.MaxLength)
	a.setIf(f.Required, "required", "required")
	control := "<input" + a.String() + " />"
	return wrap(f, res, rc, control, wrapOptions{label: true}), nil
}

type hiddenInput struct{}

func (hiddenInput) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	a := &attrs{rc: rc}
	a.set("type", "hidden").set("name", f.HTMLName()).set("id", f.ID()).set("value", res.FIF)
	return "<input" + a.String() + " />\n", nil
}

type textArea struct{}

func (textArea) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	a := &attrs{rc: rc}
	a.common(f)
	a.setInt("maxlength", f.MaxLength)
	a.setIf(f.Required, "required", "required")
	control := "<textarea" + a.String() + ">" + rc.filter(res.FIF) + "</textarea>"
	return wrap(f, res, rc, control, wrapOptions{label: true}), nil
}

type checkbox struct{}

func (checkbox) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	on := f.CheckboxValue
	if on == "" {
		on = "1"
	}
	a := &attrs{rc: rc}
	a.set("type", "checkbox").common(f)
	a.set("value", on)
	a.setIf(res.FIF == on, "checked", "checked")
	control := "<input" + a.String() + " />"
	return wrap(f, res, rc, control, wrapOptions{label: true, labelAfter: true}), nil
}

type selectInput struct{}

func (selectInput) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	a := &attrs{rc: rc}
	a.common(f)
	a.setIf(f.Required, "required", "required")

	var builder strings.Builder
	builder.WriteString("<select")
	builder.WriteString(a.String())
	builder.WriteString(">\n")
	for _, choice := range f.Choices {
		opt := &attrs{rc: rc}
		opt.set("value", choice.Value)
		opt.setIf(choice.Value == res.FIF, "selected", "selected")
		builder.WriteString("<option")
		builder.WriteString(opt.String())
		builder.WriteString(">")
		builder.WriteString(rc.text(choiceLabel(choice)))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("</select>")
	return wrap(f, res, rc, builder.String(), wrapOptions{label: true}), nil
}

// radio renders one radio input per choice, or a single input carrying the
// fill-in value when the field declares no choices.
type radio struct{}

func (radio) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	if len(f.Choices) == 0 {
		a := &attrs{rc: rc}
		a.set("type", "radio").common(f)
		a.set("value", res.FIF)
		return wrap(f, res, rc, "<input"+a.String()+" />", wrapOptions{label: true}), nil
	}

	var builder strings.Builder
	for idx, choice := range f.Choices {
		a := &attrs{rc: rc}
		a.set("type", "radio")
		a.set("name", f.HTMLName())
		a.set("id", fmt.Sprintf("%s.%d", f.ID(), idx))
		a.set("value", choice.Value)
		a.setIf(choice.Value == res.FIF, "checked", "checked")
		a.setIf(f.Disabled, "disabled", "disabled")
		builder.WriteString("<label><input")
		builder.WriteString(a.String())
		builder.WriteString(" /> ")
		builder.WriteString(rc.text(choiceLabel(choice)))
		builder.WriteString("</label>")
		if idx < len(f.Choices)-1 {
			builder.WriteByte('\n')
		}
	}
	return wrap(f, res, rc, builder.String(), wrapOptions{label: true}), nil
}

type submit struct{}

func (submit) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	value := field.FormatValue(f.Default)
	if value == "" {
		value = f.LabelText()
	}
	a := &attrs{rc: rc}
	a.set("type", "submit").common(f)
	a.set("value", rc.Localizer.Text(value))
	return wrap(f, res, rc, "<input"+a.String()+" />", wrapOptions{}), nil
}

func choiceLabel(choice field.Choice) string {
	if choice.Label != "" {
		return choice.Label
	}
	return choice.Value
}
