package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

const usersDoc = `
openapi: 3.0.3
info:
  title: Users
  version: "1.0"
paths:
  /users:
    get:
      operationId: listUsers
      responses:
        "200":
          description: ok
    post:
      operationId: createUser
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/NewUser'
      responses:
        "201":
          description: created
components:
  schemas:
    NewUser:
      type: object
      required: [email, name]
      properties:
        name:
          type: string
          title: Full name
          maxLength: 40
        email:
          type: string
          format: email
        password:
          type: string
          format: password
          minLength: 8
        age:
          type: integer
          minimum: 18
          maximum: 130
        role:
          type: string
          enum: [admin, editor]
        newsletter:
          type: boolean
          description: Monthly digest
        bio:
          type: string
          maxLength: 1000
          x-formkit:
            order: 99
        id:
          type: string
          readOnly: true
        tags:
          type: array
          items:
            type: string
        address:
          type: object
          required: [city]
          properties:
            city:
              type: string
            zip:
              type: string
              pattern: '^[0-9]{5}$'
`

func TestSourceFromOperation_DeclaresPropertiesInNameOrder(t *testing.T) {
	src, err := SourceFromOperation(context.Background(), []byte(usersDoc), "createUser")
	if err != nil {
		t.Fatalf("SourceFromOperation: %v", err)
	}
	if src.Name != "createUser" {
		t.Fatalf("source name = %q", src.Name)
	}

	var names []string
	for _, spec := range src.Fields {
		names = append(names, spec.Name)
	}
	want := []string{
		"address", "address.city", "address.zip", "age", "bio",
		"email", "name", "newsletter", "password", "role",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	byName := map[string]fields.Spec{}
	for _, spec := range src.Fields {
		byName[spec.Name] = spec
	}
	wantName := map[string]any{
		"type":       field.TypeText,
		"required":   true,
		"label":      "Full name",
		"max_length": 40,
	}
	if diff := cmp.Diff(wantName, byName["name"].Attrs); diff != "" {
		t.Fatalf("name attrs mismatch (-want +got):\n%s", diff)
	}
	if got := byName["role"].Attrs["options"]; !cmp.Equal(got, []string{"admin", "editor"}) {
		t.Fatalf("role options = %v", got)
	}
}

func TestSourceFromOperation_BuildsForm(t *testing.T) {
	src, err := SourceFromOperation(context.Background(), []byte(usersDoc), "createUser")
	if err != nil {
		t.Fatalf("SourceFromOperation: %v", err)
	}
	frm, err := form.New("user", []fields.Source{src})
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}

	tags := map[string]string{}
	for _, fld := range frm.Fields().Fields() {
		tags[fld.Name] = fld.Variant().Tag()
	}
	wantTags := map[string]string{
		"address":    field.TypeCompound,
		"age":        field.TypeInteger,
		"bio":        field.TypeTextArea,
		"email":      field.TypeEmail,
		"name":       field.TypeText,
		"newsletter": field.TypeCheckbox,
		"password":   field.TypePassword,
		"role":       field.TypeSelect,
	}
	if diff := cmp.Diff(wantTags, tags); diff != "" {
		t.Fatalf("variants mismatch (-want +got):\n%s", diff)
	}

	email, _ := frm.Lookup("email")
	if !email.Required {
		t.Fatalf("expected email to be required")
	}
	age, _ := frm.Lookup("age")
	if age.Required || age.Min == nil || *age.Min != 18 || age.Max == nil || *age.Max != 130 {
		t.Fatalf("unexpected age bounds: required=%v min=%v max=%v", age.Required, age.Min, age.Max)
	}
	bio, _ := frm.Lookup("bio")
	if bio.Order != 99 {
		t.Fatalf("bio order = %d, want 99 from the extension", bio.Order)
	}
	password, _ := frm.Lookup("password")
	if !password.WriteOnly || password.MinLength != 8 {
		t.Fatalf("unexpected password field: %+v", password)
	}
	newsletter, _ := frm.Lookup("newsletter")
	if newsletter.Help != "Monthly digest" {
		t.Fatalf("newsletter help = %q", newsletter.Help)
	}

	city, ok := frm.Lookup("address.city")
	if !ok || !city.Required {
		t.Fatalf("expected required address.city, got %v", city)
	}
	zip, ok := frm.Lookup("address.zip")
	if !ok || zip.Pattern != "^[0-9]{5}$" {
		t.Fatalf("expected address.zip pattern, got %v", zip)
	}
	if _, ok := frm.Lookup("id"); ok {
		t.Fatalf("readOnly property should not become a field")
	}

	valid := frm.Process(map[string]any{
		"name":         "Ada",
		"email":        "ada@example.com",
		"address.city": "London",
		"address.zip":  "12345",
		"age":          "36",
	})
	if !valid {
		t.Fatalf("expected valid submission, got %v", frm.Errors())
	}
}

func TestSourceFromOperation_ReadOnlyOptIn(t *testing.T) {
	src, err := SourceFromOperation(context.Background(), []byte(usersDoc), "createUser", WithReadOnly())
	if err != nil {
		t.Fatalf("SourceFromOperation: %v", err)
	}
	for _, spec := range src.Fields {
		if spec.Name == "id" {
			if spec.Attrs["readonly"] != true {
				t.Fatalf("expected readonly attr, got %v", spec.Attrs)
			}
			return
		}
	}
	t.Fatalf("expected id to be declared")
}

func TestSourceFromOperation_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := SourceFromOperation(ctx, []byte(usersDoc), "deleteUser"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := SourceFromOperation(ctx, []byte(usersDoc), "listUsers"); !errors.Is(err, ErrNoRequestSchema) {
		t.Fatalf("expected ErrNoRequestSchema, got %v", err)
	}
	if _, err := SourceFromOperation(ctx, []byte(usersDoc), "createUser", WithMediaTypes("multipart/form-data")); !errors.Is(err, ErrNoRequestSchema) {
		t.Fatalf("expected ErrNoRequestSchema for missing media type, got %v", err)
	}
	if _, err := SourceFromOperation(ctx, []byte("  "), "createUser"); err == nil {
		t.Fatalf("expected error for empty document")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := SourceFromOperation(cancelled, []byte(usersDoc), "createUser"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOperationIDs(t *testing.T) {
	doc, err := Load(context.Background(), []byte(usersDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"createUser", "listUsers"}, OperationIDs(doc)); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}
	if got := OperationIDs(nil); len(got) != 0 {
		t.Fatalf("expected no ids for nil document, got %v", got)
	}
}
