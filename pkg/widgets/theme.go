package widgets

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys read by ClassesFromTokens.
const (
	TokenFormClass  = "form.class"
	TokenFieldClass = "field.class"
	TokenLabelClass = "label.class"
	TokenErrorClass = "error.class"
	TokenHelpClass  = "help.class"
)

// Classes are the CSS classes widgets put on the markup they emit. Blank
// entries fall back to DefaultClasses.
type Classes struct {
	Form  string
	Field string
	Label string
	Error string
	Help  string
}

// DefaultClasses returns the classes used when no theme is configured.
func DefaultClasses() Classes {
	return Classes{
		Form:  "",
		Field: "ctrl",
		Label: "label",
		Error: "error_message",
		Help:  "help",
	}
}

func (c Classes) withDefaults() Classes {
	defaults := DefaultClasses()
	if c.Form == "" {
		c.Form = defaults.Form
	}
	if c.Field == "" {
		c.Field = defaults.Field
	}
	if c.Label == "" {
		c.Label = defaults.Label
	}
	if c.Error == "" {
		c.Error = defaults.Error
	}
	if c.Help == "" {
		c.Help = defaults.Help
	}
	return c
}

// ClassesFromTokens overrides the default classes with theme tokens.
func ClassesFromTokens(tokens map[string]string) Classes {
	classes := DefaultClasses()
	set := func(key string, dest *string) {
		if value := strings.TrimSpace(tokens[key]); value != "" {
			*dest = value
		}
	}
	set(TokenFormClass, &classes.Form)
	set(TokenFieldClass, &classes.Field)
	set(TokenLabelClass, &classes.Label)
	set(TokenErrorClass, &classes.Error)
	set(TokenHelpClass, &classes.Help)
	return classes
}

// ClassesFromSelection reads class tokens from a go-theme selection. A nil
// selection or manifest yields the defaults.
func ClassesFromSelection(selection *theme.Selection) Classes {
	if selection == nil || selection.Manifest == nil {
		return DefaultClasses()
	}
	return ClassesFromTokens(selection.Manifest.Tokens)
}
