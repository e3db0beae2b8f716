package formkit

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
)

// Form aliases form.Form for callers that only import the root package.
type Form = form.Form

// Option aliases form.Option.
type Option = form.Option

// Source aliases fields.Source, one unit of field declarations.
type Source = fields.Source

// Spec aliases fields.Spec, a single field declaration.
type Spec = fields.Spec

// Definitions aliases definition.Store.
type Definitions = definition.Store

// NewForm builds a form from declaration sources, most-base first.
func NewForm(name string, sources []Source, options ...Option) (*Form, error) {
	return form.New(name, sources, options...)
}

// LoadDefinitions parses every YAML definition file in fsys.
func LoadDefinitions(fsys fs.FS) (*Definitions, error) {
	return definition.LoadFS(fsys)
}

// FormFromOperation builds a form from the request body of an OpenAPI
// operation. The form is named after the operation.
func FormFromOperation(ctx context.Context, document []byte, operationID string, options ...Option) (*Form, error) {
	src, err := openapi.SourceFromOperation(ctx, document, operationID)
	if err != nil {
		return nil, err
	}
	return form.New(operationID, []fields.Source{src}, options...)
}

// RenderHTML builds the named form from defs and renders it. When params is
// non-nil the form processes it first, so values and errors are rendered.
func RenderHTML(defs *Definitions, formName string, params map[string]any, options ...Option) (string, error) {
	frm, err := defs.NewForm(formName, options...)
	if err != nil {
		return "", err
	}
	if params != nil {
		frm.Process(params)
	}
	return frm.Render()
}
