package fields

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTypeGuess is returned when an auto field's type cannot be inferred from
// its name.
var ErrNoTypeGuess = errors.New("fields: no type could be guessed")

// Spec declares one field: its (possibly dotted) name and either a bare type
// tag or an attribute mapping carrying a "type" key.
type Spec struct {
	Name  string
	Type  string
	Attrs map[string]any
}

// TypeTag returns the declared type, preferring the "type" attribute.
func (s Spec) TypeTag() string {
	if raw, ok := s.Attrs["type"]; ok {
		if tag, ok := raw.(string); ok && strings.TrimSpace(tag) != "" {
			return strings.TrimSpace(tag)
		}
	}
	return strings.TrimSpace(s.Type)
}

// Source is one unit of declarations: a form class or a role mixed into one.
// Groups are merged in the order Required, Optional, Fields, AutoRequired,
// AutoOptional.
type Source struct {
	Name         string
	Required     []Spec
	Optional     []Spec
	Fields       []Spec
	AutoRequired []string
	AutoOptional []string
}

// Declaration is a merged field declaration ready for instantiation. Required
// is nil when the declaring group says nothing about requiredness.
type Declaration struct {
	Name     string
	Spec     Spec
	Required *bool
	Source   string
}

// Guesser infers a field type tag from a field name.
type Guesser func(name string) (string, bool)

// Collect merges sources, most-base first, into one ordered declaration list.
// A name declared again replaces the earlier declaration at its original
// position; a redeclaration silent on requiredness keeps the earlier flag.
// Auto fields get their type from guess; a name with no guess fails the whole
// collection.
func Collect(sources []Source, guess Guesser) ([]Declaration, error) {
	if guess == nil {
		guess = DefaultGuesser
	}
	var out []Declaration
	index := make(map[string]int)

	put := func(decl Declaration) error {
		if decl.Name == "" {
			return fmt.Errorf("fields: source %q declares a field without a name", decl.Source)
		}
		if pos, ok := index[decl.Name]; ok {
			if decl.Required == nil {
				decl.Required = out[pos].Required
			}
			out[pos] = decl
			return nil
		}
		index[decl.Name] = len(out)
		out = append(out, decl)
		return nil
	}

	putSpecs := func(src Source, specs []Spec, required *bool) error {
		for _, spec := range specs {
			spec.Name = strings.TrimSpace(spec.Name)
			if err := put(Declaration{Name: spec.Name, Spec: spec, Required: required, Source: src.Name}); err != nil {
				return err
			}
		}
		return nil
	}

	putAuto := func(src Source, names []string, required bool) error {
		for _, raw := range names {
			name := strings.TrimSpace(raw)
			tag, ok := guess(name)
			if !ok {
				return fmt.Errorf("fields: source %q: auto field %q: %w", src.Name, name, ErrNoTypeGuess)
			}
			flag := required
			if err := put(Declaration{Name: name, Spec: Spec{Name: name, Type: tag}, Required: &flag, Source: src.Name}); err != nil {
				return err
			}
		}
		return nil
	}

	yes, no := true, false
	for _, src := range sources {
		if err := putSpecs(src, src.Required, &yes); err != nil {
			return nil, err
		}
		if err := putSpecs(src, src.Optional, &no); err != nil {
			return nil, err
		}
		if err := putSpecs(src, src.Fields, nil); err != nil {
			return nil, err
		}
		if err := putAuto(src, src.AutoRequired, true); err != nil {
			return nil, err
		}
		if err := putAuto(src, src.AutoOptional, false); err != nil {
			return nil, err
		}
	}
	return out, nil
}
