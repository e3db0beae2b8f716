package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

// Option customises a Form during New.
type Option func(*Form)

// FieldValidator is a form-level check for one field. It runs after the
// field's own validation, only when the field ended with a value, and records
// problems with res.AddError.
type FieldValidator func(f *field.Field, res *field.Result)

// WithRegistry injects the field type registry used to instantiate
// declarations.
func WithRegistry(registry *fields.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithNamespaces adds namespaces searched before the default one when type
// tags are resolved.
func WithNamespaces(namespaces ...string) Option {
	return func(f *Form) {
		f.namespaces = append(f.namespaces, namespaces...)
	}
}

// WithGuesser overrides the type guesser used for auto fields.
func WithGuesser(guess fields.Guesser) Option {
	return func(f *Form) {
		f.guess = guess
	}
}

// WithOrphanPolicy selects what happens to dotted fields without a parent.
func WithOrphanPolicy(policy fields.OrphanPolicy) Option {
	return func(f *Form) {
		f.orphans = policy
	}
}

// WithLogger injects a logger. The form logs nothing unless something is off.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithAction sets the form's action attribute.
func WithAction(action string) Option {
	return func(f *Form) {
		f.action = strings.TrimSpace(action)
	}
}

// WithMethod sets the form's method attribute. Blank means "post".
func WithMethod(method string) Option {
	return func(f *Form) {
		f.method = strings.ToLower(strings.TrimSpace(method))
	}
}

// WithHTMLID overrides the form element id, which defaults to the form name.
func WithHTMLID(id string) Option {
	return func(f *Form) {
		f.htmlID = strings.TrimSpace(id)
	}
}

// WithHTMLPrefix prefixes every input name, for example "user." so that
// several forms can share one request.
func WithHTMLPrefix(prefix string) Option {
	return func(f *Form) {
		f.htmlPrefix = prefix
	}
}

// WithAutoFieldset encloses rendered fields in a main fieldset.
func WithAutoFieldset(enabled bool) Option {
	return func(f *Form) {
		f.autoFieldset = enabled
	}
}

// WithFilter replaces the filter applied to every value before it is
// embedded in markup.
func WithFilter(filter render.Filter) Option {
	return func(f *Form) {
		if filter != nil {
			f.filter = filter
		}
	}
}

// WithWidgets injects the widget registry used by Render.
func WithWidgets(registry *widgets.Registry) Option {
	return func(f *Form) {
		f.widgets = registry
	}
}

// WithClasses sets the CSS classes used by widgets.
func WithClasses(classes widgets.Classes) Option {
	return func(f *Form) {
		f.classes = classes
	}
}

// WithTheme reads widget classes from a go-theme selection.
func WithTheme(selection *theme.Selection) Option {
	return func(f *Form) {
		f.classes = widgets.ClassesFromSelection(selection)
	}
}

// WithTranslator translates labels, legends, help and messages into locale
// when the form is rendered. Keys are the untranslated texts.
func WithTranslator(translator render.Translator, locale string) Option {
	return func(f *Form) {
		if f.localizer == nil {
			f.localizer = &render.Localizer{}
		}
		f.localizer.Translator = translator
		f.localizer.Locale = locale
	}
}

// WithMissingTranslation sets the handler used for texts without a
// translation.
func WithMissingTranslation(handler render.MissingTranslationHandler) Option {
	return func(f *Form) {
		if f.localizer == nil {
			f.localizer = &render.Localizer{}
		}
		f.localizer.OnMissing = handler
	}
}

// WithFieldValidator registers a form-level validator for the field with the
// given full name. Several validators per field run in registration order.
func WithFieldValidator(fullName string, fn FieldValidator) Option {
	return func(f *Form) {
		if fn == nil {
			return
		}
		if f.validators == nil {
			f.validators = make(map[string][]FieldValidator)
		}
		f.validators[fullName] = append(f.validators[fullName], fn)
	}
}

// WithInitValues pre-populates the form. Keys are full field names or nested
// maps keyed by the compound field's name.
func WithInitValues(values map[string]any) Option {
	return func(f *Form) {
		f.init = values
	}
}

// WithHiddenFields adds hidden inputs emitted with the rendered form.
func WithHiddenFields(hidden ...render.HiddenField) Option {
	return func(f *Form) {
		f.hidden = render.MergeHiddenFields(f.hidden, hidden...)
	}
}

// WithCSRFToken adds a hidden CSRF token input. A blank name selects
// render.DefaultCSRFName.
func WithCSRFToken(name, token string) Option {
	return WithHiddenFields(render.CSRFToken(name, token))
}
