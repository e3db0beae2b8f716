package field

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrFieldNotFound is returned by Collection.Field when no field matches.
var ErrFieldNotFound = errors.New("field: not found")

// Collection is an ordered list of fields. Forms own one for their top-level
// fields and compound fields own one for their children. Insertion order is
// the declaration order; rendering order comes from Sorted.
type Collection struct {
	fields []*Field
}

// Len returns the number of fields held directly by the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Fields returns a copy of the fields in insertion order.
func (c *Collection) Fields() []*Field {
	if c == nil {
		return nil
	}
	return append([]*Field(nil), c.fields...)
}

// At returns the field stored at index i.
func (c *Collection) At(i int) *Field {
	return c.fields[i]
}

// Add appends a field.
func (c *Collection) Add(f *Field) {
	c.fields = append(c.fields, f)
}

// SetAt replaces the field stored at index i, keeping its position.
func (c *Collection) SetAt(i int, f *Field) {
	c.fields[i] = f
}

// RemoveAt removes and returns the field stored at index i.
func (c *Collection) RemoveAt(i int) *Field {
	removed := c.fields[i]
	c.fields = append(c.fields[:i], c.fields[i+1:]...)
	return removed
}

// Index returns the position of the field with the given full name, or -1.
func (c *Collection) Index(fullName string) int {
	if c == nil {
		return -1
	}
	for i, f := range c.fields {
		if f.FullName() == fullName {
			return i
		}
	}
	return -1
}

// Field looks a field up by full or leaf name. Dotted names that are not held
// flat are resolved through compound children. It returns ErrFieldNotFound
// when nothing matches.
func (c *Collection) Field(name string) (*Field, error) {
	if f, ok := c.Lookup(name); ok {
		return f, nil
	}
	return nil, fmt.Errorf("field %q: %w", name, ErrFieldNotFound)
}

// Lookup is the non-failing variant of Field.
func (c *Collection) Lookup(name string) (*Field, bool) {
	if c == nil || name == "" {
		return nil, false
	}
	for _, f := range c.fields {
		if f.FullName() == name || f.Name == name {
			return f, true
		}
	}
	head, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		return nil, false
	}
	for _, f := range c.fields {
		if f.Name != head || f.children == nil {
			continue
		}
		if child, ok := f.children.Lookup(rest); ok {
			return child, true
		}
	}
	return nil, false
}

// Sorted returns a new slice ordered by Order. Equal orders keep their
// insertion order; the collection itself is not modified.
func (c *Collection) Sorted() []*Field {
	sorted := c.Fields()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// Walk visits every field depth first in insertion order, children after
// their parent. Returning an error stops the walk.
func (c *Collection) Walk(fn func(*Field) error) error {
	if c == nil {
		return nil
	}
	for _, f := range c.fields {
		if err := fn(f); err != nil {
			return err
		}
		if err := f.children.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate runs the validation pass over the collection in insertion order.
// Cleared and inactive fields are skipped, as are fields whose structural
// parent is not owner: those are validated by their parent. After a field's
// own validation, the form-level hook runs if the field ended with a value.
func (c *Collection) Validate(rs *Results, owner *Field) {
	if c == nil {
		return
	}
	for _, f := range c.fields {
		if f.Clear || f.Inactive {
			continue
		}
		if f.parent != owner {
			continue
		}
		f.ValidateField(rs)
		res := rs.For(f)
		if res.HasValue && f.owner != nil {
			f.owner.ValidateFieldHook(f, res)
		}
	}
}
