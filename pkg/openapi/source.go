package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/fields"
)

// ExtensionKey names the schema extension whose object is merged into the
// generated field attributes, for example {"widget": "textarea", "order": 2}.
const ExtensionKey = "x-formkit"

var (
	// ErrOperationNotFound is returned when no operation carries the requested
	// operationId.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestSchema is returned when the operation has no object request
	// body schema.
	ErrNoRequestSchema = errors.New("openapi: operation has no request body schema")
)

// DefaultMediaTypes is the request body media type preference.
var DefaultMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option customises SourceFromOperation.
type Option func(*options)

type options struct {
	externalRefs bool
	mediaTypes   []string
	skipReadOnly bool
}

// WithExternalRefs lets the loader follow $refs into other documents.
func WithExternalRefs(enabled bool) Option {
	return func(o *options) {
		o.externalRefs = enabled
	}
}

// WithMediaTypes replaces DefaultMediaTypes.
func WithMediaTypes(mediaTypes ...string) Option {
	return func(o *options) {
		if len(mediaTypes) > 0 {
			o.mediaTypes = append([]string(nil), mediaTypes...)
		}
	}
}

// WithReadOnly keeps readOnly properties, which are skipped by default.
func WithReadOnly() Option {
	return func(o *options) {
		o.skipReadOnly = false
	}
}

// Load parses an OpenAPI document.
func Load(ctx context.Context, data []byte, opts ...Option) (*openapi3.T, error) {
	cfg := newOptions(opts)
	return load(ctx, data, cfg)
}

// LoadFile reads and parses the OpenAPI document at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*openapi3.T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Load(ctx, data, opts...)
}

// OperationIDs lists the operationIds of doc, sorted.
func OperationIDs(doc *openapi3.T) []string {
	var ids []string
	if doc == nil || doc.Paths == nil {
		return ids
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID != "" {
				ids = append(ids, op.OperationID)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// SourceFromOperation parses data and converts the request body of the
// operation with the given operationId into a declaration source.
func SourceFromOperation(ctx context.Context, data []byte, operationID string, opts ...Option) (fields.Source, error) {
	cfg := newOptions(opts)
	doc, err := load(ctx, data, cfg)
	if err != nil {
		return fields.Source{}, err
	}
	return sourceFromDocument(doc, operationID, cfg)
}

// SourceFromDocument converts the request body of an operation of an already
// loaded document.
func SourceFromDocument(doc *openapi3.T, operationID string, opts ...Option) (fields.Source, error) {
	return sourceFromDocument(doc, operationID, newOptions(opts))
}

func newOptions(opts []Option) options {
	cfg := options{mediaTypes: DefaultMediaTypes, skipReadOnly: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func load(ctx context.Context, data []byte, cfg options) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = cfg.externalRefs
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

func sourceFromDocument(doc *openapi3.T, operationID string, cfg options) (fields.Source, error) {
	op, err := findOperation(doc, operationID)
	if err != nil {
		return fields.Source{}, err
	}
	schema := requestSchema(op, cfg.mediaTypes)
	if schema == nil || len(schema.Properties) == 0 {
		return fields.Source{}, fmt.Errorf("openapi: operation %q: %w", operationID, ErrNoRequestSchema)
	}

	c := &converter{cfg: cfg, visiting: map[*openapi3.Schema]bool{}}
	src := fields.Source{Name: operationID}
	if err := c.properties(&src, "", schema); err != nil {
		return fields.Source{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return src, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	id := strings.TrimSpace(operationID)
	if doc != nil && doc.Paths != nil && id != "" {
		for _, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID == id {
					return op, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("openapi: %q: %w", operationID, ErrOperationNotFound)
}

func requestSchema(op *openapi3.Operation, mediaTypes []string) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type converter struct {
	cfg      options
	visiting map[*openapi3.Schema]bool
}

// properties declares the properties of schema in name order, each object
// property followed by its own properties under a dotted path.
func (c *converter) properties(src *fields.Source, prefix string, schema *openapi3.Schema) error {
	if c.visiting[schema] {
		return fmt.Errorf("schema at %q is recursive", strings.TrimSuffix(prefix, "."))
	}
	c.visiting[schema] = true
	defer delete(c.visiting, schema)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if prop.ReadOnly && c.cfg.skipReadOnly {
			continue
		}
		fullName := prefix + name
		spec, ok, err := specFor(fullName, prop, required[name])
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		src.Fields = append(src.Fields, spec)
		if spec.TypeTag() == field.TypeCompound {
			if err := c.properties(src, fullName+".", prop); err != nil {
				return err
			}
		}
	}
	return nil
}

// specFor maps one property schema onto a field declaration. Arrays and
// untyped properties have no field equivalent and are skipped.
func specFor(name string, prop *openapi3.Schema, required bool) (fields.Spec, bool, error) {
	typeTag := typeFor(prop)
	if typeTag == "" {
		return fields.Spec{}, false, nil
	}
	attrs := map[string]any{"type": typeTag}
	if required {
		attrs["required"] = true
	}
	if prop.Title != "" {
		attrs["label"] = prop.Title
	}
	if prop.Description != "" {
		attrs["help"] = prop.Description
	}
	if prop.Default != nil && typeTag != field.TypeCompound {
		attrs["default"] = prop.Default
	}
	if prop.MaxLength != nil {
		attrs["max_length"] = int(*prop.MaxLength)
	}
	if prop.MinLength > 0 {
		attrs["min_length"] = int(prop.MinLength)
	}
	if prop.Pattern != "" {
		attrs["pattern"] = prop.Pattern
	}
	if typeTag == field.TypeInteger {
		if prop.Min != nil {
			attrs["min"] = int(*prop.Min)
		}
		if prop.Max != nil {
			attrs["max"] = int(*prop.Max)
		}
	}
	if len(prop.Enum) > 0 {
		choices := make([]string, 0, len(prop.Enum))
		for _, value := range prop.Enum {
			choices = append(choices, field.FormatValue(value))
		}
		attrs["options"] = choices
	}
	if prop.WriteOnly {
		attrs["writeonly"] = true
	}
	if prop.ReadOnly {
		attrs["readonly"] = true
	}
	if err := mergeExtension(name, attrs, prop.Extensions[ExtensionKey]); err != nil {
		return fields.Spec{}, false, err
	}
	return fields.Spec{Name: name, Attrs: attrs}, true, nil
}

func typeFor(prop *openapi3.Schema) string {
	if len(prop.Enum) > 0 {
		return field.TypeSelect
	}
	switch primaryType(prop.Type) {
	case openapi3.TypeObject:
		if len(prop.Properties) == 0 {
			return ""
		}
		return field.TypeCompound
	case openapi3.TypeBoolean:
		return field.TypeCheckbox
	case openapi3.TypeInteger:
		return field.TypeInteger
	case openapi3.TypeNumber:
		return field.TypeText
	case openapi3.TypeString:
		switch strings.ToLower(prop.Format) {
		case "email":
			return field.TypeEmail
		case "password":
			return field.TypePassword
		}
		if prop.MaxLength != nil && *prop.MaxLength > 255 {
			return field.TypeTextArea
		}
		return field.TypeText
	case "":
		if len(prop.Properties) > 0 {
			return field.TypeCompound
		}
	}
	return ""
}

func primaryType(types *openapi3.Types) string {
	for _, typ := range types.Slice() {
		if typ != openapi3.TypeNull {
			return typ
		}
	}
	return ""
}

func mergeExtension(name string, attrs map[string]any, raw any) error {
	if raw == nil {
		return nil
	}
	ext, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("field %q: %s must be an object", name, ExtensionKey)
	}
	for key, value := range ext {
		// set when openapi3.IncludeOrigin is enabled
		if key == "__origin__" {
			continue
		}
		attrs[key] = value
	}
	return nil
}
