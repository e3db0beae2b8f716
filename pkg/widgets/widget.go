package widgets

import (
	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Widget renders one field to an HTML fragment using the field's result for
// the current pass.
type Widget interface {
	Render(f *field.Field, res *field.Result, rc *Context) (string, error)
}

// WidgetFunc adapts a plain function to the Widget interface.
type WidgetFunc func(f *field.Field, res *field.Result, rc *Context) (string, error)

// Render calls fn.
func (fn WidgetFunc) Render(f *field.Field, res *field.Result, rc *Context) (string, error) {
	return fn(f, res, rc)
}

// Context carries what widgets need besides the field itself. The zero value
// renders with Escape, the default registry and default classes, and leaves
// text untranslated.
type Context struct {
	Filter    render.Filter
	Results   *field.Results
	Registry  *Registry
	Classes   Classes
	Localizer *render.Localizer
}

// RenderField renders f with the widget resolved for it.
func (rc *Context) RenderField(f *field.Field) (string, error) {
	w, err := rc.registry().For(f)
	if err != nil {
		return "", err
	}
	return w.Render(f, rc.Result(f), rc)
}

// Result returns the result recorded for f in this pass, or an empty one.
func (rc *Context) Result(f *field.Field) *field.Result {
	if res, ok := rc.Results.Get(f.FullName()); ok {
		return res
	}
	return &field.Result{Name: f.FullName()}
}

func (rc *Context) filter(value string) string {
	if rc.Filter == nil {
		return render.Escape(value)
	}
	return rc.Filter(value)
}

// text translates and filters user-facing text.
func (rc *Context) text(value string) string {
	return rc.filter(rc.Localizer.Text(value))
}

func (rc *Context) registry() *Registry {
	if rc.Registry == nil {
		rc.Registry = NewRegistry()
	}
	return rc.Registry
}

func (rc *Context) classes() Classes {
	return rc.Classes.withDefaults()
}
