package fields

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func declNames(decls []Declaration) []string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Name)
	}
	return out
}

func TestCollect_GroupOrderAndOverride(t *testing.T) {
	base := Source{
		Name:     "Base",
		Fields:   []Spec{{Name: "notes", Type: "TextArea"}},
		Required: []Spec{{Name: "name"}},
		Optional: []Spec{{Name: "email", Type: "Email"}},
	}
	role := Source{
		Name:         "Auditable",
		AutoOptional: []string{"created_by_id"},
	}
	derived := Source{
		Name:     "Derived",
		Optional: []Spec{{Name: "name", Type: "Text"}},
	}

	decls, err := Collect([]Source{base, role, derived}, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "email", "notes", "created_by_id"}, declNames(decls)); diff != "" {
		t.Fatalf("declaration order mismatch (-want +got):\n%s", diff)
	}
	if decls[0].Source != "Derived" || decls[0].Required == nil || *decls[0].Required {
		t.Fatalf("expected derived optional declaration for name, got %+v", decls[0])
	}
	if decls[2].Required != nil {
		t.Fatalf("fields group must not set requiredness")
	}
	if decls[3].Spec.Type != "Hidden" {
		t.Fatalf("expected guessed Hidden type, got %q", decls[3].Spec.Type)
	}
}

func TestCollect_AutoFieldWithoutGuess(t *testing.T) {
	_, err := Collect([]Source{{Name: "Odd", AutoRequired: []string{"frobnicator"}}}, nil)
	if !errors.Is(err, ErrNoTypeGuess) {
		t.Fatalf("expected ErrNoTypeGuess, got %v", err)
	}
}

func TestCollect_CustomGuesser(t *testing.T) {
	guess := func(string) (string, bool) { return "Integer", true }
	decls, err := Collect([]Source{{AutoRequired: []string{"frobnicator"}}}, guess)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if decls[0].Spec.Type != "Integer" || !*decls[0].Required {
		t.Fatalf("unexpected declaration %+v", decls[0])
	}
}

func TestCollect_RejectsBlankName(t *testing.T) {
	if _, err := Collect([]Source{{Name: "Broken", Fields: []Spec{{Name: " "}}}}, nil); err == nil {
		t.Fatalf("expected error for blank field name")
	}
}

func TestSpec_TypeTag(t *testing.T) {
	spec := Spec{Type: "Text", Attrs: map[string]any{"type": " Integer "}}
	if got := spec.TypeTag(); got != "Integer" {
		t.Fatalf("attrs type should win, got %q", got)
	}
	if got := (Spec{}).TypeTag(); got != "" {
		t.Fatalf("expected empty tag, got %q", got)
	}
}
