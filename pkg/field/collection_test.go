package field

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func leafNames(list []*Field) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.Name)
	}
	return out
}

func withOrder(f *Field, order int) *Field {
	f.Order = order
	return f
}

func TestSorted_StableForEqualOrders(t *testing.T) {
	c := &Collection{}
	c.Add(withOrder(NewText("a"), 5))
	c.Add(withOrder(NewText("b"), 5))
	c.Add(withOrder(NewText("c"), 1))

	if diff := cmp.Diff([]string{"c", "a", "b"}, leafNames(c.Sorted())); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, leafNames(c.Fields())); diff != "" {
		t.Fatalf("stored order changed (-want +got):\n%s", diff)
	}
}

func TestField_RaisesWhileLookupDoesNot(t *testing.T) {
	c := &Collection{}
	c.Add(NewText("name"))

	if _, err := c.Field("foo"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
	if f, ok := c.Lookup("foo"); ok || f != nil {
		t.Fatalf("expected empty lookup, got %v", f)
	}
	if f, err := c.Field("name"); err != nil || f.Name != "name" {
		t.Fatalf("expected name field, got %v %v", f, err)
	}
}

func TestLookup_FullLeafAndDotted(t *testing.T) {
	c := &Collection{}
	address := NewCompound("address")
	address.AddField(NewText("street"))
	c.Add(address)

	if f, ok := c.Lookup("address.street"); !ok || f.FullName() != "address.street" {
		t.Fatalf("dotted lookup failed: %v", f)
	}
	if _, ok := c.Lookup("street"); ok {
		t.Fatalf("leaf names only match fields held directly")
	}
	if _, ok := c.Lookup("address.zip"); ok {
		t.Fatalf("unexpected match for address.zip")
	}
}

func TestIndex(t *testing.T) {
	c := &Collection{}
	c.Add(NewText("a"))
	c.Add(NewText("b"))

	if got := c.Index("b"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := c.Index("z"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	var empty *Collection
	if got := empty.Index("a"); got != -1 {
		t.Fatalf("nil collection should report -1, got %d", got)
	}
}

func TestWalk_DepthFirst(t *testing.T) {
	c := &Collection{}
	address := NewCompound("address")
	address.AddField(NewText("street"))
	address.AddField(NewText("city"))
	c.Add(NewText("name"))
	c.Add(address)
	c.Add(NewText("email"))

	var seen []string
	_ = c.Walk(func(f *Field) error {
		seen = append(seen, f.FullName())
		return nil
	})
	want := []string{"name", "address", "address.street", "address.city", "email"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	count := 0
	err := c.Walk(func(*Field) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) || count != 1 {
		t.Fatalf("expected walk to stop after first visit, count=%d err=%v", count, err)
	}
}

type recordingOwner struct {
	hooked []string
}

func (o *recordingOwner) Name() string       { return "owner" }
func (o *recordingOwner) HTMLPrefix() string { return "" }
func (o *recordingOwner) ValidateFieldHook(f *Field, _ *Result) {
	o.hooked = append(o.hooked, f.FullName())
}

func TestValidate_SkipsClearedAndForeignChildren(t *testing.T) {
	owner := &recordingOwner{}
	c := &Collection{}

	cleared := NewText("cleared")
	cleared.Clear = true
	plain := NewText("plain")
	address := NewCompound("address")
	street := NewText("street")
	address.AddField(street)
	// street is also held flat, as it is before re-parenting completes.
	for _, f := range []*Field{plain, cleared, address, street} {
		f.SetForm(owner)
		c.Add(f)
	}

	rs := NewResults()
	for _, f := range []*Field{plain, cleared, street} {
		rs.For(f).SetInput("value")
	}
	c.Validate(rs, nil)

	want := []string{"plain", "address.street", "address"}
	if diff := cmp.Diff(want, owner.hooked); diff != "" {
		t.Fatalf("hooked fields mismatch (-want +got):\n%s", diff)
	}
	if res, _ := rs.Get("cleared"); res.HasValue {
		t.Fatalf("cleared field must not be validated")
	}
}
