package field

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Type tags of the built-in variants.
const (
	TypeText     = "Text"
	TypePassword = "Password"
	TypeHidden   = "Hidden"
	TypeTextArea = "TextArea"
	TypeInteger  = "Integer"
	TypeEmail    = "Email"
	TypeCheckbox = "Checkbox"
	TypeSelect   = "Select"
	TypeRadio    = "Radio"
	TypeSubmit   = "Submit"
	TypeCompound = "Compound"
)

// Variant carries the behaviour that differs between field types. Validate is
// only invoked for fields with non-blank input; required handling happens in
// Field.ValidateField.
type Variant interface {
	Tag() string
	Validate(f *Field, input string, res *Result)
}

// NewText returns a single-line text field.
func NewText(name string) *Field {
	return New(name, textVariant{tag: TypeText})
}

// NewPassword returns a write-only text field whose value is never filled back
// into rendered markup.
func NewPassword(name string) *Field {
	f := New(name, textVariant{tag: TypePassword})
	f.WriteOnly = true
	return f
}

// NewHidden returns a hidden input field.
func NewHidden(name string) *Field {
	return New(name, textVariant{tag: TypeHidden})
}

// NewTextArea returns a multi-line text field.
func NewTextArea(name string) *Field {
	return New(name, textVariant{tag: TypeTextArea})
}

// NewInteger returns a field whose value is inflated to an int.
func NewInteger(name string) *Field {
	f := New(name, integerVariant{})
	f.Size = 8
	return f
}

// NewEmail returns a text field that only accepts a single mail address.
func NewEmail(name string) *Field {
	return New(name, emailVariant{})
}

// NewCheckbox returns a checkbox whose checked value is "1" and whose value is
// "0" when the submitted params omit it.
func NewCheckbox(name string) *Field {
	f := New(name, checkboxVariant{})
	f.CheckboxValue = "1"
	f.InputWithoutParam = "0"
	return f
}

// NewSelect returns a field restricted to its Choices.
func NewSelect(name string) *Field {
	return New(name, choiceVariant{tag: TypeSelect})
}

// NewRadio returns a radio field. It is a placeholder variant: it behaves like
// Select when Choices are set and like Text otherwise.
func NewRadio(name string) *Field {
	return New(name, choiceVariant{tag: TypeRadio})
}

// NewSubmit returns a static submit button. Its value is never read from input,
// filled in, or included in update values.
func NewSubmit(name string) *Field {
	f := New(name, submitVariant{})
	f.Static = true
	f.NoUpdate = true
	f.Default = "Save"
	return f
}

// NewCompound returns a container field whose value is the map of its
// children's values.
func NewCompound(name string) *Field {
	f := New(name, compoundVariant{})
	f.children = &Collection{}
	return f
}

type textVariant struct {
	tag string
}

func (v textVariant) Tag() string {
	if v.tag == "" {
		return TypeText
	}
	return v.tag
}

func (textVariant) Validate(f *Field, input string, res *Result) {
	if !checkLength(f, input, res) {
		return
	}
	if re := f.compiledPattern(); re != nil && !re.MatchString(input) {
		res.AddError("Value does not match the required pattern")
		return
	}
	res.SetValue(input)
}

func checkLength(f *Field, input string, res *Result) bool {
	length := utf8.RuneCountInString(input)
	if f.MaxLength > 0 && length > f.MaxLength {
		res.AddError(fmt.Sprintf("Field should not exceed %d characters. You entered %d", f.MaxLength, length))
		return false
	}
	if f.MinLength > 0 && length < f.MinLength {
		res.AddError(fmt.Sprintf("Field must be at least %d characters. You entered %d", f.MinLength, length))
		return false
	}
	return true
}

type integerVariant struct{}

func (integerVariant) Tag() string { return TypeInteger }

func (integerVariant) Validate(f *Field, input string, res *Result) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		res.AddError("Value must be an integer")
		return
	}
	switch {
	case f.Min != nil && f.Max != nil && (value < *f.Min || value > *f.Max):
		res.AddError(fmt.Sprintf("Value must be between %d and %d", *f.Min, *f.Max))
		return
	case f.Min != nil && value < *f.Min:
		res.AddError(fmt.Sprintf("Value must be greater than or equal to %d", *f.Min))
		return
	case f.Max != nil && value > *f.Max:
		res.AddError(fmt.Sprintf("Value must be less than or equal to %d", *f.Max))
		return
	}
	res.SetValue(value)
}

type emailVariant struct{}

func (emailVariant) Tag() string { return TypeEmail }

func (emailVariant) Validate(f *Field, input string, res *Result) {
	trimmed := strings.TrimSpace(input)
	if !checkLength(f, trimmed, res) {
		return
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		res.AddError("Email should be of the format someuser@example.com")
		return
	}
	res.SetValue(addr.Address)
}

type checkboxVariant struct{}

func (checkboxVariant) Tag() string { return TypeCheckbox }

func (checkboxVariant) Validate(_ *Field, input string, res *Result) {
	res.SetValue(input)
}

type choiceVariant struct {
	tag string
}

func (v choiceVariant) Tag() string { return v.tag }

func (choiceVariant) Validate(f *Field, input string, res *Result) {
	if len(f.Choices) == 0 {
		res.SetValue(input)
		return
	}
	for _, choice := range f.Choices {
		if choice.Value == input {
			res.SetValue(input)
			return
		}
	}
	res.AddError(fmt.Sprintf("'%s' is not a valid value", input))
}

type submitVariant struct{}

func (submitVariant) Tag() string { return TypeSubmit }

func (submitVariant) Validate(*Field, string, *Result) {}

type compoundVariant struct{}

func (compoundVariant) Tag() string { return TypeCompound }

// Validate is never reached for compounds: ValidateField recurses into the
// children instead.
func (compoundVariant) Validate(*Field, string, *Result) {}
