package widgets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/field"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetEmail    = "email"
	WidgetPassword = "password"
	WidgetHidden   = "hidden"
	WidgetTextArea = "textarea"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetSubmit   = "submit"
	WidgetCompound = "compound"
)

// DefaultWidget is used when neither a hint nor a matcher selects a widget.
const DefaultWidget = WidgetText

// ErrUnknownWidget is returned when a field resolves to a widget name that was
// never defined.
var ErrUnknownWidget = errors.New("widgets: unknown widget")

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(f *field.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on the field's explicit widget
// hint or registered matchers. Higher priority wins; ties fall back to
// registration order.
type Registry struct {
	mu      sync.RWMutex
	rules   []rule
	widgets map[string]Widget
}

// NewRegistry constructs a registry with the built-in widgets defined and
// their matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{widgets: make(map[string]Widget)}
	reg.registerBuiltins()
	return reg
}

// Define makes w available under name. Existing definitions are replaced.
func (r *Registry) Define(name string, w Widget) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("widgets: widget name is required")
	}
	if w == nil {
		return fmt.Errorf("widgets: widget %q is nil", trimmed)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.widgets == nil {
		r.widgets = make(map[string]Widget)
	}
	r.widgets[trimmed] = w
	return nil
}

// MustDefine panics on definition failure. Useful for init-time wiring.
func (r *Registry) MustDefine(name string, w Widget) {
	if err := r.Define(name, w); err != nil {
		panic(err)
	}
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. The field's Widget hint is
// honoured before matcher evaluation and DefaultWidget is the fallback.
func (r *Registry) Resolve(f *field.Field) string {
	if hint := strings.TrimSpace(f.Widget); hint != "" {
		return hint
	}
	if r == nil {
		return DefaultWidget
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(f) {
			return entry.name
		}
	}
	return DefaultWidget
}

// Widget returns the widget defined under name.
func (r *Registry) Widget(name string) (Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[name]
	if !ok {
		return nil, fmt.Errorf("widgets: %q: %w", name, ErrUnknownWidget)
	}
	return w, nil
}

// For resolves and returns the widget that renders f.
func (r *Registry) For(f *field.Field) (Widget, error) {
	name := r.Resolve(f)
	w, err := r.Widget(name)
	if err != nil {
		return nil, fmt.Errorf("widgets: field %q: %w", f.FullName(), err)
	}
	return w, nil
}

// Names returns the defined widget names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.widgets))
	for name := range r.widgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func typeIs(tag string) Matcher {
	return func(f *field.Field) bool {
		return f.Type == tag
	}
}

func (r *Registry) registerBuiltins() {
	r.MustDefine(WidgetText, textInput{inputType: "text"})
	r.MustDefine(WidgetEmail, textInput{inputType: "email"})
	r.MustDefine(WidgetPassword, textInput{inputType: "password"})
	r.MustDefine(WidgetHidden, hiddenInput{})
	r.MustDefine(WidgetTextArea, textArea{})
	r.MustDefine(WidgetCheckbox, checkbox{})
	r.MustDefine(WidgetSelect, selectInput{})
	r.MustDefine(WidgetRadio, radio{})
	r.MustDefine(WidgetSubmit, submit{})
	r.MustDefine(WidgetCompound, compound{})

	r.Register(WidgetCompound, 100, func(f *field.Field) bool {
		return f.IsCompound()
	})
	r.Register(WidgetSubmit, 90, typeIs(field.TypeSubmit))
	r.Register(WidgetHidden, 90, typeIs(field.TypeHidden))
	r.Register(WidgetCheckbox, 80, typeIs(field.TypeCheckbox))
	r.Register(WidgetSelect, 70, typeIs(field.TypeSelect))
	r.Register(WidgetRadio, 70, typeIs(field.TypeRadio))
	r.Register(WidgetPassword, 60, typeIs(field.TypePassword))
	r.Register(WidgetTextArea, 60, typeIs(field.TypeTextArea))
	r.Register(WidgetEmail, 50, typeIs(field.TypeEmail))
}
