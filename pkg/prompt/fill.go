package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

// NoneLabel is the extra first option offered for optional choice fields.
const NoneLabel = "(none)"

// Option customises Fill.
type Option func(*filler)

// WithLogger injects a logger; each question is logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(f *filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

type filler struct {
	driver Driver
	logger *zap.Logger
	fif    map[string]string
	params map[string]any
}

// Fill asks driver for every field of frm in render order, descending into
// compound fields, and returns the answers keyed by HTML input name. Current
// fill-in-form strings (init values, defaults) are offered as defaults.
// Static and inactive fields are skipped; hidden, disabled and read-only
// fields keep their current value without a question. An unchecked checkbox
// is left out so that its missing-param value applies.
func Fill(ctx context.Context, frm *form.Form, driver Driver, opts ...Option) (map[string]any, error) {
	if frm == nil {
		return nil, errors.New("prompt: form is nil")
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	f := &filler{
		driver: driver,
		logger: zap.NewNop(),
		fif:    frm.FIF(),
		params: make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	for _, fld := range frm.SortedFields() {
		if err := f.ask(ctx, fld); err != nil {
			return nil, err
		}
	}
	return f.params, nil
}

func (f *filler) ask(ctx context.Context, fld *field.Field) error {
	if fld.Static || fld.Inactive {
		return nil
	}
	if fld.IsCompound() {
		for _, child := range fld.Children().Sorted() {
			if err := f.ask(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	key := fld.HTMLName()
	current := f.fif[fld.FullName()]
	if fld.Type == field.TypeHidden || fld.Disabled || fld.ReadOnly {
		if current != "" {
			f.params[key] = current
		}
		return nil
	}
	f.logger.Debug("prompting field", zap.String("field", fld.FullName()), zap.String("type", fld.Type))

	var (
		answer any
		err    error
	)
	switch {
	case fld.Type == field.TypeCheckbox:
		answer, err = f.confirm(ctx, fld, current)
	case len(fld.Choices) > 0:
		answer, err = f.choose(ctx, fld, current)
	case fld.Type == field.TypePassword:
		answer, err = f.driver.Password(ctx, InputConfig{
			Message:   message(fld),
			Help:      fld.Help,
			Validator: validator(fld),
		})
	case fld.Type == field.TypeTextArea:
		answer, err = f.driver.TextArea(ctx, TextAreaConfig{
			Message: message(fld),
			Default: current,
			Help:    fld.Help,
		})
	default:
		answer, err = f.driver.Input(ctx, InputConfig{
			Message:   message(fld),
			Default:   current,
			Help:      fld.Help,
			Validator: validator(fld),
		})
	}
	if err != nil {
		return fmt.Errorf("prompt: field %q: %w", fld.FullName(), err)
	}
	if answer != nil {
		f.params[key] = answer
	}
	return nil
}

func (f *filler) confirm(ctx context.Context, fld *field.Field, current string) (any, error) {
	checked, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: message(fld),
		Default: current != "" && current == fld.CheckboxValue,
		Help:    fld.Help,
	})
	if err != nil || !checked {
		return nil, err
	}
	return fld.CheckboxValue, nil
}

func (f *filler) choose(ctx context.Context, fld *field.Field, current string) (any, error) {
	var (
		labels []string
		values []string
	)
	if !fld.Required {
		labels = append(labels, NoneLabel)
		values = append(values, "")
	}
	defaultIndex := 0
	for _, choice := range fld.Choices {
		if choice.Value == current {
			defaultIndex = len(values)
		}
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		labels = append(labels, label)
		values = append(values, choice.Value)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      message(fld),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         fld.Help,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return nil, fmt.Errorf("selection %d out of range", idx)
	}
	return values[idx], nil
}

func message(fld *field.Field) string {
	if fld.Required {
		return fld.LabelText() + " *"
	}
	return fld.LabelText()
}

// validator checks an answer the way the field's own validation would, so
// problems are reported before the form is processed.
func validator(fld *field.Field) func(string) error {
	return func(answer string) error {
		if strings.TrimSpace(answer) == "" {
			if fld.Required {
				return errors.New(fld.RequiredMessageText())
			}
			return nil
		}
		res := &field.Result{Name: fld.FullName()}
		fld.Variant().Validate(fld, answer, res)
		if res.HasErrors() {
			return errors.New(strings.Join(res.Errors, "; "))
		}
		return nil
	}
}
