package field

import (
	"fmt"
	"regexp"
	"strings"
)

// Owner is the non-owning view a field keeps of the form that built it. The
// form implements it; fields never manage the owner's lifetime.
type Owner interface {
	Name() string
	HTMLPrefix() string
	// ValidateFieldHook runs form-level validation for a single field after the
	// field's own validation left it with a value.
	ValidateFieldHook(f *Field, res *Result)
}

// Choice is a selectable option for Select and Radio fields.
type Choice struct {
	Value string `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// Field is the static declaration of one form input. Runtime state (input,
// value, fill-in-form string, errors) lives in a Result so a single field tree
// can be validated and rendered without carrying request data around.
type Field struct {
	Name            string
	Type            string
	Order           int
	Required        bool
	RequiredMessage string
	Label           string
	Title           string
	CSSClass        string
	Size            int
	MaxLength       int
	MinLength       int
	Min             *int
	Max             *int
	Pattern         string
	Default         any
	Widget          string
	Help            string
	CheckboxValue   string
	// InputWithoutParam is bound as the input when the submitted params do not
	// mention the field at all (unchecked checkboxes).
	InputWithoutParam any
	Choices           []Choice

	NoUpdate  bool
	WriteOnly bool
	Static    bool
	Inactive  bool
	Disabled  bool
	ReadOnly  bool
	Clear     bool

	variant  Variant
	parent   *Field
	owner    Owner
	children *Collection
	pattern  *regexp.Regexp
}

// New constructs a field of the supplied variant. The type tag is taken from the
// variant; callers normally go through the variant constructors (NewText,
// NewCheckbox, ...) or a fields.Registry.
func New(name string, variant Variant) *Field {
	if variant == nil {
		variant = textVariant{}
	}
	return &Field{
		Name:    strings.TrimSpace(name),
		Type:    variant.Tag(),
		variant: variant,
	}
}

// Variant reports the behaviour attached to the field.
func (f *Field) Variant() Variant {
	return f.variant
}

// FullName returns the dotted path of the field through its parents.
func (f *Field) FullName() string {
	if f.parent == nil {
		return f.Name
	}
	return f.parent.FullName() + "." + f.Name
}

// HTMLName is the input name used in rendered markup and submitted params.
func (f *Field) HTMLName() string {
	if f.owner == nil {
		return f.FullName()
	}
	return f.owner.HTMLPrefix() + f.FullName()
}

// ID is the element id used by widgets; it matches the HTML name.
func (f *Field) ID() string {
	return f.HTMLName()
}

// Parent returns the structural parent, or nil for top-level fields.
func (f *Field) Parent() *Field {
	return f.parent
}

// SetParent attaches the field below p without transferring ownership; use
// AddField on the parent to also record the child.
func (f *Field) SetParent(p *Field) {
	f.parent = p
}

// Form returns the owning form, if the field was built by one.
func (f *Field) Form() Owner {
	return f.owner
}

// SetForm records the owning form on the field and all of its children.
func (f *Field) SetForm(owner Owner) {
	f.owner = owner
	if f.children == nil {
		return
	}
	for _, child := range f.children.fields {
		child.SetForm(owner)
	}
}

// IsCompound reports whether the field holds child fields.
func (f *Field) IsCompound() bool {
	return f.children != nil
}

// Children exposes the child collection of compound fields. It is nil for leaf
// fields.
func (f *Field) Children() *Collection {
	return f.children
}

// AddField appends child to the field's own collection and re-parents it.
func (f *Field) AddField(child *Field) {
	if child == nil {
		return
	}
	if f.children == nil {
		f.children = &Collection{}
	}
	child.parent = f
	if child.owner == nil {
		child.owner = f.owner
	}
	f.children.Add(child)
}

// LabelText returns the explicit label or one derived from the leaf name.
func (f *Field) LabelText() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// RequiredMessageText returns the message recorded when required input is
// missing.
func (f *Field) RequiredMessageText() string {
	if f.RequiredMessage != "" {
		return f.RequiredMessage
	}
	return fmt.Sprintf("%s field is required", f.LabelText())
}

// Apply copies declared options onto the field. Zero values leave the current
// setting untouched so variant defaults survive.
func (f *Field) Apply(opts Options) error {
	if opts.Label != "" {
		f.Label = opts.Label
	}
	if opts.Order != 0 {
		f.Order = opts.Order
	}
	if opts.Required != nil {
		f.Required = *opts.Required
	}
	if opts.RequiredMessage != "" {
		f.RequiredMessage = opts.RequiredMessage
	}
	if opts.Title != "" {
		f.Title = opts.Title
	}
	if opts.CSSClass != "" {
		f.CSSClass = opts.CSSClass
	}
	if opts.Size != 0 {
		f.Size = opts.Size
	}
	if opts.MaxLength != 0 {
		f.MaxLength = opts.MaxLength
	}
	if opts.MinLength != 0 {
		f.MinLength = opts.MinLength
	}
	if opts.Min != nil {
		value := *opts.Min
		f.Min = &value
	}
	if opts.Max != nil {
		value := *opts.Max
		f.Max = &value
	}
	if opts.Pattern != "" {
		compiled, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return fmt.Errorf("field %q: invalid pattern: %w", f.Name, err)
		}
		f.Pattern = opts.Pattern
		f.pattern = compiled
	}
	if opts.Default != nil {
		f.Default = opts.Default
	}
	if opts.Widget != "" {
		f.Widget = opts.Widget
	}
	if opts.Help != "" {
		f.Help = opts.Help
	}
	if opts.CheckboxValue != "" {
		f.CheckboxValue = opts.CheckboxValue
	}
	if opts.InputWithoutParam != nil {
		f.InputWithoutParam = opts.InputWithoutParam
	}
	if len(opts.Choices) > 0 {
		f.Choices = append([]Choice(nil), opts.Choices...)
	}
	f.NoUpdate = f.NoUpdate || opts.NoUpdate
	f.WriteOnly = f.WriteOnly || opts.WriteOnly
	f.Inactive = f.Inactive || opts.Inactive
	f.Disabled = f.Disabled || opts.Disabled
	f.ReadOnly = f.ReadOnly || opts.ReadOnly
	return nil
}

func (f *Field) compiledPattern() *regexp.Regexp {
	if f.Pattern == "" {
		return nil
	}
	if f.pattern == nil || f.pattern.String() != f.Pattern {
		compiled, err := regexp.Compile(f.Pattern)
		if err != nil {
			return nil
		}
		f.pattern = compiled
	}
	return f.pattern
}
