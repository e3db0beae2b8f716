package definition

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/fields"
)

type documentFile struct {
	Roles map[string]classFile `yaml:"roles"`
	Forms map[string]classFile `yaml:"forms"`
}

type classFile struct {
	Extends      stringList `yaml:"extends"`
	Roles        stringList `yaml:"roles"`
	Required     specList   `yaml:"required"`
	Optional     specList   `yaml:"optional"`
	Fields       specList   `yaml:"fields"`
	AutoRequired stringList `yaml:"auto_required"`
	AutoOptional stringList `yaml:"auto_optional"`

	Action       string `yaml:"action"`
	Method       string `yaml:"method"`
	HTMLID       string `yaml:"html_id"`
	HTMLPrefix   string `yaml:"html_prefix"`
	AutoFieldset *bool  `yaml:"auto_fieldset"`
}

// stringList accepts a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if value := strings.TrimSpace(node.Value); value != "" && node.Tag != "!!null" {
			*l = stringList{value}
		}
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := node.Decode(&out); err != nil {
			return err
		}
		for _, value := range out {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				*l = append(*l, trimmed)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: expected a name or a list of names", node.Line)
	}
}

// specList keeps field declarations in document order. It accepts either a
// sequence whose items are a bare name or a single-key map, or a mapping of
// name to type/attributes.
type specList []fields.Spec

func (l *specList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			spec, err := specFromItem(item)
			if err != nil {
				return err
			}
			*l = append(*l, spec)
		}
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			spec, err := specFromPair(node.Content[i], node.Content[i+1])
			if err != nil {
				return err
			}
			*l = append(*l, spec)
		}
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
	}
	return fmt.Errorf("line %d: expected a list of field declarations", node.Line)
}

func specFromItem(item *yaml.Node) (fields.Spec, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		return fields.Spec{Name: strings.TrimSpace(item.Value)}, nil
	case yaml.MappingNode:
		if len(item.Content) != 2 {
			return fields.Spec{}, fmt.Errorf("line %d: field entry must have exactly one key", item.Line)
		}
		return specFromPair(item.Content[0], item.Content[1])
	default:
		return fields.Spec{}, fmt.Errorf("line %d: unsupported field entry", item.Line)
	}
}

func specFromPair(key, value *yaml.Node) (fields.Spec, error) {
	spec := fields.Spec{Name: strings.TrimSpace(key.Value)}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!null" {
			spec.Type = strings.TrimSpace(value.Value)
		}
	case yaml.MappingNode:
		attrs := make(map[string]any)
		if err := value.Decode(&attrs); err != nil {
			return fields.Spec{}, fmt.Errorf("line %d: field %q: %w", value.Line, spec.Name, err)
		}
		spec.Attrs = attrs
	default:
		return fields.Spec{}, fmt.Errorf("line %d: field %q: expected a type name or attribute mapping", value.Line, spec.Name)
	}
	return spec, nil
}
