package fields

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/goliatone/go-formkit/pkg/field"
)

const (
	// DefaultNamespace prefixes bare type tags of the built-in field classes.
	DefaultNamespace = "field"
	// ClassMarker in front of a type tag selects a fully-qualified class name
	// verbatim, bypassing namespace resolution.
	ClassMarker = "+"
	// DefaultType is used when a declaration names no type at all.
	DefaultType = field.TypeText
)

// ErrUnknownFieldType is wrapped by MakeField when a type tag resolves to no
// registered class.
var ErrUnknownFieldType = errors.New("fields: unknown field type")

// Factory constructs a fresh field with the supplied name.
type Factory func(name string) *field.Field

// Registry maps fully-qualified class names ("field.Text", "acme.Zip") to
// field factories. Bare type tags are resolved by trying each namespace in
// turn; custom namespaces are searched before the default one.
type Registry struct {
	mu         sync.RWMutex
	factories  map[string]Factory
	namespaces []string
}

// NewRegistry returns a registry with the built-in field classes registered
// under DefaultNamespace.
func NewRegistry() *Registry {
	reg := &Registry{
		factories:  make(map[string]Factory),
		namespaces: []string{DefaultNamespace},
	}
	reg.registerBuiltins()
	return reg
}

// Register associates a fully-qualified class name with a factory. Existing
// entries are replaced.
func (r *Registry) Register(class string, factory Factory) error {
	class = strings.TrimSpace(class)
	if class == "" {
		return errors.New("fields: class name is required")
	}
	if factory == nil {
		return fmt.Errorf("fields: factory for %q is nil", class)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[class] = factory
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying init-time
// wiring.
func (r *Registry) MustRegister(class string, factory Factory) {
	if err := r.Register(class, factory); err != nil {
		panic(err)
	}
}

// AddNamespace makes bare tags resolve against ns before the namespaces
// already configured.
func (r *Registry) AddNamespace(ns string) {
	ns = strings.Trim(strings.TrimSpace(ns), ".")
	if ns == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.namespaces {
		if existing == ns {
			return
		}
	}
	r.namespaces = append([]string{ns}, r.namespaces...)
}

// Classes returns the registered class names, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a type tag to its class name and factory. On failure the
// returned class is the name that was expected under the default namespace
// (or the verbatim class for marked tags).
func (r *Registry) Resolve(tag string) (string, Factory, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = DefaultType
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.HasPrefix(tag, ClassMarker) {
		class := strings.TrimPrefix(tag, ClassMarker)
		if factory, ok := r.factories[class]; ok {
			return class, factory, nil
		}
		return class, nil, ErrUnknownFieldType
	}

	for _, ns := range r.namespaces {
		class := ns + "." + tag
		if factory, ok := r.factories[class]; ok {
			return class, factory, nil
		}
	}
	return DefaultNamespace + "." + tag, nil, ErrUnknownFieldType
}

// MakeField instantiates the field declared by spec. The field is returned
// fully configured or not at all.
func (r *Registry) MakeField(name string, spec Spec) (*field.Field, error) {
	class, factory, err := r.Resolve(spec.TypeTag())
	if err != nil {
		return nil, fmt.Errorf("fields: field %q: could not load field class %q: %w", name, class, err)
	}
	f := factory(name)
	if f == nil {
		return nil, fmt.Errorf("fields: field %q: factory for %q returned nil", name, class)
	}
	opts, err := DecodeOptions(spec.Attrs)
	if err != nil {
		return nil, fmt.Errorf("fields: field %q: %w", name, err)
	}
	if err := f.Apply(opts); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	return f, nil
}

// DecodeOptions converts an attribute mapping into field.Options. Unknown keys
// are rejected; scalar values are weakly converted ("40" -> 40).
func DecodeOptions(attrs map[string]any) (field.Options, error) {
	var opts field.Options
	if len(attrs) == 0 {
		return opts, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       choiceHook,
	})
	if err != nil {
		return opts, fmt.Errorf("configure attribute decoder: %w", err)
	}
	if err := decoder.Decode(attrs); err != nil {
		return opts, fmt.Errorf("decode attributes: %w", err)
	}
	return opts, nil
}

var choiceType = reflect.TypeOf(field.Choice{})

// choiceHook lets option lists be written as plain strings.
func choiceHook(from, to reflect.Type, data any) (any, error) {
	if to != choiceType || from.Kind() != reflect.String {
		return data, nil
	}
	value := reflect.ValueOf(data).String()
	return field.Choice{Value: value, Label: value}, nil
}

func (r *Registry) registerBuiltins() {
	builtins := map[string]Factory{
		field.TypeText:     field.NewText,
		field.TypePassword: field.NewPassword,
		field.TypeHidden:   field.NewHidden,
		field.TypeTextArea: field.NewTextArea,
		field.TypeInteger:  field.NewInteger,
		field.TypeEmail:    field.NewEmail,
		field.TypeCheckbox: field.NewCheckbox,
		field.TypeSelect:   field.NewSelect,
		field.TypeRadio:    field.NewRadio,
		field.TypeSubmit:   field.NewSubmit,
		field.TypeCompound: field.NewCompound,
	}
	for tag, factory := range builtins {
		r.MustRegister(DefaultNamespace+"."+tag, factory)
	}
}
