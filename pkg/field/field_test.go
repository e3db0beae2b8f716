package field

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type prefixOwner string

func (p prefixOwner) Name() string                      { return "form" }
func (p prefixOwner) HTMLPrefix() string                { return string(p) }
func (p prefixOwner) ValidateFieldHook(*Field, *Result) {}

func TestNames(t *testing.T) {
	address := NewCompound("address")
	street := NewText("street")
	address.AddField(street)
	address.SetForm(prefixOwner("user."))

	if street.FullName() != "address.street" {
		t.Fatalf("unexpected full name %q", street.FullName())
	}
	if street.HTMLName() != "user.address.street" || street.ID() != street.HTMLName() {
		t.Fatalf("unexpected html name %q", street.HTMLName())
	}
	if street.Parent() != address {
		t.Fatalf("expected parent to be address")
	}
}

func TestLabels(t *testing.T) {
	cases := map[string]string{
		"first_name":     "First Name",
		"address.street": "Street",
		"zipCode":        "Zip Code",
		"line2":          "Line 2",
	}
	for name, want := range cases {
		if got := NewText(name).LabelText(); got != want {
			t.Fatalf("label for %q: want %q, got %q", name, want, got)
		}
	}
	f := NewText("email")
	f.Label = "E-mail"
	if got := f.RequiredMessageText(); got != "E-mail field is required" {
		t.Fatalf("unexpected required message %q", got)
	}
}

func TestApply(t *testing.T) {
	required := true
	max := 10
	f := NewCheckbox("agree")
	err := f.Apply(Options{
		Label:    "I agree",
		Required: &required,
		Max:      &max,
		Pattern:  `^\d+$`,
		Choices:  []Choice{{Value: "a"}},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if f.CheckboxValue != "1" || f.InputWithoutParam != "0" {
		t.Fatalf("variant defaults lost: %q %v", f.CheckboxValue, f.InputWithoutParam)
	}
	if !f.Required || f.Label != "I agree" || *f.Max != 10 {
		t.Fatalf("options not applied: %+v", f)
	}
	max = 20
	if *f.Max != 10 {
		t.Fatalf("Max must not alias the options value")
	}

	if err := NewText("bad").Apply(Options{Pattern: "("}); err == nil {
		t.Fatalf("expected invalid pattern error")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "1"},
		{false, "0"},
		{42, "42"},
		{[]byte("raw"), "raw"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.in); got != tc.want {
			t.Fatalf("FormatValue(%v): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestResults_OrderAndErrors(t *testing.T) {
	rs := NewResults()
	a, b := NewText("a"), NewText("b")
	rs.For(b).AddError("  ")
	rs.For(a).AddError("bad")
	rs.For(b)

	var got []string
	for _, res := range rs.All() {
		got = append(got, res.Name)
	}
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Fatalf("result order mismatch (-want +got):\n%s", diff)
	}
	if !rs.HasErrors() || len(rs.ErrorResults()) != 1 {
		t.Fatalf("expected exactly one erroring result")
	}
}
