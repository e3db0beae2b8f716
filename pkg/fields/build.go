package fields

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/field"
)

// ErrOrphanField is wrapped by Build under OrphanFail when a dotted field has
// no parent to attach to.
var ErrOrphanField = errors.New("fields: parent field not found")

// OrphanPolicy decides what happens to a dotted field whose parent cannot be
// located (or cannot hold children).
type OrphanPolicy int

const (
	// OrphanDrop removes the field without any signal.
	OrphanDrop OrphanPolicy = iota
	// OrphanWarn removes the field and logs a warning.
	OrphanWarn
	// OrphanFail aborts the build with an error wrapping ErrOrphanField.
	OrphanFail
)

// ParseOrphanPolicy maps "drop", "warn" and "fail" to a policy.
func ParseOrphanPolicy(raw string) (OrphanPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "drop":
		return OrphanDrop, nil
	case "warn":
		return OrphanWarn, nil
	case "fail":
		return OrphanFail, nil
	default:
		return OrphanDrop, fmt.Errorf("fields: unknown orphan policy %q", raw)
	}
}

func (p OrphanPolicy) String() string {
	switch p {
	case OrphanWarn:
		return "warn"
	case OrphanFail:
		return "fail"
	default:
		return "drop"
	}
}

// BuildOptions configures Build.
type BuildOptions struct {
	// Registry resolves type tags; NewRegistry() is used when nil.
	Registry *Registry
	// Owner is recorded on every built field as its form.
	Owner field.Owner
	// Parent is the structural parent of the collection, nil when the
	// collection belongs to the form directly.
	Parent  *field.Field
	Orphans OrphanPolicy
	Logger  *zap.Logger
}

// Build instantiates decls into c. Fields whose full name already exists in c
// are replaced in place, others are appended. Fields without an explicit order
// are then numbered after the highest explicit order, in declaration
// sequence. Finally dotted fields are moved under their parents, shallowest
// paths first.
func Build(c *field.Collection, decls []Declaration, opts BuildOptions) error {
	if c == nil {
		return errors.New("fields: collection is nil")
	}
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, decl := range decls {
		f, err := registry.MakeField(decl.Name, decl.Spec)
		if err != nil {
			return err
		}
		if decl.Required != nil && !f.Required {
			f.Required = *decl.Required
		}
		f.SetParent(opts.Parent)
		f.SetForm(opts.Owner)

		if idx := c.Index(f.FullName()); idx >= 0 {
			c.SetAt(idx, f)
		} else {
			c.Add(f)
		}
	}

	AssignOrder(c)
	return reparent(c, opts.Orphans, logger)
}

// AssignOrder numbers every field without an explicit order, starting after
// the highest explicit order and following insertion order.
func AssignOrder(c *field.Collection) {
	highest := 0
	for _, f := range c.Fields() {
		if f.Order > highest {
			highest = f.Order
		}
	}
	next := highest + 1
	for _, f := range c.Fields() {
		if f.Order != 0 {
			continue
		}
		f.Order = next
		next++
	}
}

func reparent(c *field.Collection, policy OrphanPolicy, logger *zap.Logger) error {
	var dotted []string
	for _, f := range c.Fields() {
		if strings.Contains(f.Name, ".") {
			dotted = append(dotted, f.Name)
		}
	}
	sort.SliceStable(dotted, func(i, j int) bool {
		di, dj := strings.Count(dotted[i], "."), strings.Count(dotted[j], ".")
		if di != dj {
			return di < dj
		}
		return dotted[i] < dotted[j]
	})

	for _, name := range dotted {
		idx := indexByName(c, name)
		if idx < 0 {
			continue
		}
		split := strings.LastIndexByte(name, '.')
		parentPath, leaf := name[:split], name[split+1:]

		parent, ok := c.Lookup(parentPath)
		if !ok || !parent.IsCompound() {
			orphan := c.RemoveAt(idx)
			if err := handleOrphan(orphan, parentPath, ok, policy, logger); err != nil {
				return err
			}
			continue
		}

		child := c.RemoveAt(idx)
		child.Name = leaf
		parent.AddField(child)
	}
	return nil
}

func indexByName(c *field.Collection, name string) int {
	for i, f := range c.Fields() {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func handleOrphan(orphan *field.Field, parentPath string, parentExists bool, policy OrphanPolicy, logger *zap.Logger) error {
	reason := "parent not found"
	if parentExists {
		reason = "parent cannot hold child fields"
	}
	switch policy {
	case OrphanFail:
		return fmt.Errorf("fields: field %q: %s (%q): %w", orphan.Name, reason, parentPath, ErrOrphanField)
	case OrphanWarn:
		logger.Warn("dropping compound field",
			zap.String("field", orphan.Name),
			zap.String("parent", parentPath),
			zap.String("reason", reason),
		)
	}
	return nil
}
