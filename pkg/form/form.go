package form

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Form owns a field tree built from declaration sources and the results of
// the latest process or validate pass. A Form is meant to serve one request;
// it is not safe for concurrent use.
type Form struct {
	name       string
	collection *field.Collection

	registry   *fields.Registry
	namespaces []string
	guess      fields.Guesser
	orphans    fields.OrphanPolicy
	logger     *zap.Logger

	widgets   *widgets.Registry
	filter    render.Filter
	classes   widgets.Classes
	localizer *render.Localizer

	action       string
	method       string
	htmlID       string
	htmlPrefix   string
	autoFieldset bool
	hidden       map[string]string

	validators map[string][]FieldValidator
	init       map[string]any

	results    *field.Results
	formErrors []string
	validated  bool
	bound      bool
}

// New builds the form named name from sources, most-base first. Construction
// fails when a type cannot be resolved, an auto field has no guessable type,
// or, under fields.OrphanFail, a dotted field has no parent.
func New(name string, sources []fields.Source, opts ...Option) (*Form, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("form: name is required")
	}
	f := &Form{
		name:       name,
		collection: &field.Collection{},
		logger:     zap.NewNop(),
		filter:     render.Escape,
		method:     widgets.DefaultMethod,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.registry == nil {
		f.registry = fields.NewRegistry()
	}
	for _, ns := range f.namespaces {
		f.registry.AddNamespace(ns)
	}
	if f.widgets == nil {
		f.widgets = widgets.NewRegistry()
	}
	if f.method == "" {
		f.method = widgets.DefaultMethod
	}

	decls, err := fields.Collect(sources, f.guess)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", name, err)
	}
	err = fields.Build(f.collection, decls, fields.BuildOptions{
		Registry: f.registry,
		Owner:    f,
		Orphans:  f.orphans,
		Logger:   f.logger.With(zap.String("form", name)),
	})
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", name, err)
	}
	return f, nil
}

// Name returns the form name.
func (f *Form) Name() string { return f.name }

// HTMLPrefix returns the prefix added to every input name.
func (f *Form) HTMLPrefix() string { return f.htmlPrefix }

// HTMLID returns the id of the rendered form element.
func (f *Form) HTMLID() string {
	if f.htmlID != "" {
		return f.htmlID
	}
	return f.name
}

// Action returns the form's action attribute.
func (f *Form) Action() string { return f.action }

// Method returns the form's method attribute.
func (f *Form) Method() string { return f.method }

// AutoFieldsetWrap reports whether rendered fields are wrapped in a fieldset.
func (f *Form) AutoFieldsetWrap() bool { return f.autoFieldset }

// Fields exposes the top-level field collection in insertion order.
func (f *Form) Fields() *field.Collection { return f.collection }

// SortedFields returns the top-level fields in render order.
func (f *Form) SortedFields() []*field.Field { return f.collection.Sorted() }

// Field returns the field with the given full or leaf name, or an error
// wrapping field.ErrFieldNotFound.
func (f *Form) Field(name string) (*field.Field, error) {
	fld, err := f.collection.Field(name)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", f.name, err)
	}
	return fld, nil
}

// Lookup is the non-failing variant of Field.
func (f *Form) Lookup(name string) (*field.Field, bool) {
	return f.collection.Lookup(name)
}

// FieldIndex returns the position of a top-level field, or -1.
func (f *Form) FieldIndex(fullName string) int {
	return f.collection.Index(fullName)
}

// ValidateFieldHook runs the validators registered for the field.
func (f *Form) ValidateFieldHook(fld *field.Field, res *field.Result) {
	for _, fn := range f.validators[fld.FullName()] {
		fn(fld, res)
	}
}

// Process binds params (keyed by HTML input name), validates, and reports
// whether the form is valid. Results of any earlier pass are discarded.
func (f *Form) Process(params map[string]any) bool {
	f.Clear()
	for _, fld := range f.collection.Fields() {
		fld.Bind(f.results, params)
	}
	f.bound = true
	f.fill()
	return f.Validate()
}

// Validate runs the validation pass over the bound input and reports whether
// the form is valid. Without a preceding Process every required field fails.
func (f *Form) Validate() bool {
	if f.results == nil {
		f.Clear()
		f.fill()
	}
	f.collection.Validate(f.results, nil)
	f.validated = true
	return !f.HasErrors()
}

// Validated reports whether a validation pass has run since the last Clear.
func (f *Form) Validated() bool { return f.validated }

// HasErrors reports whether any field or the form itself carries errors.
func (f *Form) HasErrors() bool {
	return len(f.formErrors) > 0 || f.results.HasErrors()
}

// IsValid reports whether a validation pass ran and found no errors.
func (f *Form) IsValid() bool {
	return f.validated && !f.HasErrors()
}

// Clear discards the results of the current pass.
func (f *Form) Clear() {
	f.results = field.NewResults()
	f.formErrors = nil
	f.validated = false
	f.bound = false
}

// Result returns the result of the named field in the current pass.
func (f *Form) Result(name string) (*field.Result, bool) {
	fld, ok := f.collection.Lookup(name)
	if !ok {
		return nil, false
	}
	return f.results.Get(fld.FullName())
}

// ErrorFields returns the fields carrying errors, depth first in insertion
// order.
func (f *Form) ErrorFields() []*field.Field {
	var out []*field.Field
	_ = f.collection.Walk(func(fld *field.Field) error {
		if res, ok := f.results.Get(fld.FullName()); ok && res.HasErrors() {
			out = append(out, fld)
		}
		return nil
	})
	return out
}

// Errors returns every message of the pass: form-level ones first, then field
// messages in field order.
func (f *Form) Errors() []string {
	out := append([]string(nil), f.formErrors...)
	for _, fld := range f.ErrorFields() {
		res, _ := f.results.Get(fld.FullName())
		out = append(out, res.Errors...)
	}
	return out
}

// FormErrors returns messages not tied to any field.
func (f *Form) FormErrors() []string {
	return append([]string(nil), f.formErrors...)
}

// Values returns the validated values of the top-level fields keyed by name.
// Compound fields contribute nested maps. Before validation it returns a
// copy of the init values.
func (f *Form) Values() map[string]any {
	out := make(map[string]any)
	if !f.validated {
		for key, value := range f.init {
			out[key] = value
		}
		return out
	}
	for _, fld := range f.collection.Fields() {
		if fld.NoUpdate || fld.Static || fld.Inactive {
			continue
		}
		if res, ok := f.results.Get(fld.FullName()); ok && res.HasValue {
			out[fld.Name] = res.Value
		}
	}
	return out
}

// FIF returns the fill-in-form string of every leaf field keyed by full name.
func (f *Form) FIF() map[string]string {
	if f.results == nil {
		f.Clear()
		f.fill()
	}
	out := make(map[string]string)
	_ = f.collection.Walk(func(fld *field.Field) error {
		if fld.IsCompound() || fld.Static || fld.WriteOnly {
			return nil
		}
		if res, ok := f.results.Get(fld.FullName()); ok {
			out[fld.FullName()] = res.FIF
		}
		return nil
	})
	return out
}

// ApplyErrors maps a server error payload onto the fields of the form. Keys
// that match no field become form-level errors.
func (f *Form) ApplyErrors(payload map[string][]string) {
	if f.results == nil {
		f.Clear()
		f.fill()
	}
	mapping := render.MapErrorPayload(f.collection, payload)
	for path, messages := range mapping.Fields {
		fld, ok := f.collection.Lookup(path)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		res := f.results.For(fld)
		for _, message := range messages {
			res.AddError(message)
		}
	}
	if len(mapping.Form) > 0 {
		f.logger.Warn("error payload mapped to form level",
			zap.String("form", f.name),
			zap.Strings("messages", mapping.Form),
		)
		f.formErrors = render.MergeFormErrors(f.formErrors, mapping.Form...)
	}
}

// Render renders the whole form with its fields in order.
func (f *Form) Render() (string, error) {
	rc := f.renderContext()
	out, err := widgets.RenderForm(widgets.FormAttrs{
		ID:               f.HTMLID(),
		Method:           f.method,
		Action:           f.action,
		AutoFieldsetWrap: f.autoFieldset,
		Hidden:           render.SortedHiddenFields(f.hidden),
		Errors:           f.formErrors,
	}, f.collection.Sorted(), rc)
	if err != nil {
		return "", fmt.Errorf("form %q: render: %w", f.name, err)
	}
	return out, nil
}

// RenderField renders a single field, looked up by full or leaf name.
func (f *Form) RenderField(name string) (string, error) {
	fld, err := f.Field(name)
	if err != nil {
		return "", err
	}
	out, err := f.renderContext().RenderField(fld)
	if err != nil {
		return "", fmt.Errorf("form %q: render: %w", f.name, err)
	}
	return out, nil
}

func (f *Form) renderContext() *widgets.Context {
	if f.results == nil {
		f.Clear()
		f.fill()
	}
	return &widgets.Context{
		Filter:    f.filter,
		Results:   f.results,
		Registry:  f.widgets,
		Classes:   f.classes,
		Localizer: f.localizer,
	}
}

// fill computes the fill-in-form string of every field. Init values are only
// consulted when no params were bound.
func (f *Form) fill() {
	_ = f.collection.Walk(func(fld *field.Field) error {
		res := f.results.For(fld)
		initial, ok := any(nil), false
		if !f.bound {
			initial, ok = f.initialValue(fld.FullName())
		}
		fld.FillIn(res, initial, ok)
		return nil
	})
}

func (f *Form) initialValue(fullName string) (any, bool) {
	if len(f.init) == 0 {
		return nil, false
	}
	if value, ok := f.init[fullName]; ok {
		return value, true
	}
	var current any = f.init
	for _, segment := range strings.Split(fullName, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}
