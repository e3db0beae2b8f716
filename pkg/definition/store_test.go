package definition_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/fields"
)

const userDefinitions = `
roles:
  Auditable:
    auto_optional: [updated_by_id]
  Contact:
    roles: Auditable
    required:
      - email: Email
    fields:
      - phone
forms:
  Base:
    action: /base
    method: post
    required:
      - name
    fields:
      - notes: TextArea
  User:
    extends: Base
    roles: [Contact, Auditable]
    html_id: user_form
    auto_fieldset: true
    optional:
      - age: {type: Integer, min: 18}
    fields:
      name: {type: Text, label: Full name, max_length: 40}
      address: Compound
      address.street:
      address.city: {required: true}
`

func mustLoad(t *testing.T, doc string) *definition.Store {
	t.Helper()
	store, err := definition.Load([]byte(doc), "inline.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return store
}

func sourceNames(sources []fields.Source) []string {
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Name)
	}
	return out
}

func TestSources_LinearisedBaseFirst(t *testing.T) {
	store := mustLoad(t, userDefinitions)

	sources, err := store.Sources("User")
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	want := []string{"Base", "Auditable", "Contact", "User"}
	if diff := cmp.Diff(want, sourceNames(sources)); diff != "" {
		t.Fatalf("ancestry mismatch (-want +got):\n%s", diff)
	}

	user := sources[3]
	wantFields := []fields.Spec{
		{Name: "name", Attrs: map[string]any{"type": "Text", "label": "Full name", "max_length": 40}},
		{Name: "address", Type: "Compound"},
		{Name: "address.street"},
		{Name: "address.city", Attrs: map[string]any{"required": true}},
	}
	if diff := cmp.Diff(wantFields, user.Fields); diff != "" {
		t.Fatalf("field specs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]fields.Spec{{Name: "email", Type: "Email"}}, sources[2].Required); diff != "" {
		t.Fatalf("role specs mismatch (-want +got):\n%s", diff)
	}
}

func TestAttrs_MostDerivedWins(t *testing.T) {
	store := mustLoad(t, userDefinitions)
	attrs, err := store.Attrs("User")
	if err != nil {
		t.Fatalf("attrs: %v", err)
	}
	if attrs.Action != "/base" || attrs.HTMLID != "user_form" || attrs.AutoFieldset == nil || !*attrs.AutoFieldset {
		t.Fatalf("unexpected attrs %+v", attrs)
	}
}

func TestNewForm_BuildsFromDefinitions(t *testing.T) {
	store := mustLoad(t, userDefinitions)
	f, err := store.NewForm("User")
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	var top []string
	for _, fld := range f.Fields().Fields() {
		top = append(top, fld.Name)
	}
	want := []string{"name", "notes", "updated_by_id", "email", "phone", "age", "address"}
	if diff := cmp.Diff(want, top); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	name, _ := f.Field("name")
	if !name.Required || name.Label != "Full name" || name.MaxLength != 40 {
		t.Fatalf("derived declaration should keep base requiredness and apply attrs: %+v", name)
	}
	if f.HTMLID() != "user_form" || f.Action() != "/base" || !f.AutoFieldsetWrap() {
		t.Fatalf("form attributes not applied")
	}

	out, err := f.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<form id="user_form" method="post" action="/base">`) {
		t.Fatalf("unexpected form start:\n%s", out)
	}
}

func TestSources_Errors(t *testing.T) {
	store := mustLoad(t, `
forms:
  A:
    extends: B
  B:
    extends: A
  C:
    extends: Missing
  D:
    roles: [Nope]
`)
	if _, err := store.Sources("A"); !errors.Is(err, definition.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	for _, name := range []string{"C", "D", "Z"} {
		if _, err := store.Sources(name); !errors.Is(err, definition.ErrUnknownForm) {
			t.Fatalf("%s: expected ErrUnknownForm, got %v", name, err)
		}
	}
}

func TestLoad_RejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":         "   ",
		"multi-key":     "forms:\n  A:\n    fields:\n      - a: Text\n        b: Text\n",
		"role extends":  "roles:\n  R:\n    extends: X\n",
		"bad field set": "forms:\n  A:\n    fields: 3\n",
	}
	for name, doc := range cases {
		if _, err := definition.Load([]byte(doc), name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFS_MergesFilesAndRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"roles.yaml":      {Data: []byte("roles:\n  Named:\n    required: [name]\n")},
		"forms/user.yml":  {Data: []byte("forms:\n  User:\n    roles: Named\n")},
		"forms/README.md": {Data: []byte("ignored")},
	}
	store, err := definition.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"User"}, store.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Named"}, store.Roles()); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}

	fsys["more.yaml"] = &fstest.MapFile{Data: []byte("forms:\n  User: {}\n")}
	if _, err := definition.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate form error")
	}
}
