package definition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

var (
	// ErrUnknownForm is returned when a form, a parent form or a role is not
	// defined.
	ErrUnknownForm = errors.New("definition: unknown form")
	// ErrCycle is returned when extends/roles references loop back.
	ErrCycle = errors.New("definition: inheritance cycle")
)

// Kind tells forms and roles apart.
type Kind string

const (
	KindForm Kind = "form"
	KindRole Kind = "role"
)

// Attrs are the form element settings declared by a form definition.
type Attrs struct {
	Action       string
	Method       string
	HTMLID       string
	HTMLPrefix   string
	AutoFieldset *bool
}

// Class is one form or role definition.
type Class struct {
	Name    string
	Kind    Kind
	Extends []string
	Roles   []string
	Source  fields.Source
	Attrs   Attrs
	// File is the path of the document that defined the class.
	File string
}

// Store holds the form and role definitions of one or more documents.
type Store struct {
	forms map[string]*Class
	roles map[string]*Class
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		forms: make(map[string]*Class),
		roles: make(map[string]*Class),
	}
}

// Load parses a single YAML document. source names the document in errors.
func Load(data []byte, source string) (*Store, error) {
	store := NewStore()
	if err := store.Add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile reads and parses the YAML document at path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFS parses every .yaml/.yml file in fsys into one store. Names must be
// unique across files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		return store.Add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Add parses a YAML document into the store.
func (s *Store) Add(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("definition: file %s is empty", source)
	}
	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("definition: parse %s: %w", source, err)
	}
	if err := s.addClasses(doc.Roles, KindRole, s.roles, source); err != nil {
		return err
	}
	return s.addClasses(doc.Forms, KindForm, s.forms, source)
}

func (s *Store) addClasses(raw map[string]classFile, kind Kind, dest map[string]*Class, source string) error {
	for rawName, cf := range raw {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("definition: file %s defines a %s without a name", source, kind)
		}
		if existing, ok := dest[name]; ok {
			return fmt.Errorf("definition: duplicate %s %q (files %s and %s)", kind, name, existing.File, source)
		}
		if kind == KindRole && len(cf.Extends) > 0 {
			return fmt.Errorf("definition: role %q (file %s) cannot extend; use roles", name, source)
		}
		dest[name] = &Class{
			Name:    name,
			Kind:    kind,
			Extends: cf.Extends,
			Roles:   cf.Roles,
			Source: fields.Source{
				Name:         name,
				Required:     cf.Required,
				Optional:     cf.Optional,
				Fields:       cf.Fields,
				AutoRequired: cf.AutoRequired,
				AutoOptional: cf.AutoOptional,
			},
			Attrs: Attrs{
				Action:       strings.TrimSpace(cf.Action),
				Method:       strings.TrimSpace(cf.Method),
				HTMLID:       strings.TrimSpace(cf.HTMLID),
				HTMLPrefix:   cf.HTMLPrefix,
				AutoFieldset: cf.AutoFieldset,
			},
			File: source,
		}
	}
	return nil
}

// Forms returns the defined form names, sorted.
func (s *Store) Forms() []string {
	return sortedKeys(s.forms)
}

// Roles returns the defined role names, sorted.
func (s *Store) Roles() []string {
	return sortedKeys(s.roles)
}

// Form returns the definition of the named form.
func (s *Store) Form(name string) (*Class, error) {
	class, ok := s.forms[name]
	if !ok {
		return nil, fmt.Errorf("definition: form %q: %w", name, ErrUnknownForm)
	}
	return class, nil
}

// Ancestry returns the classes contributing to the named form, most-base
// first: for every form, its parents come first, then its roles, then the
// form itself. A class reached twice keeps its first position.
func (s *Store) Ancestry(name string) ([]*Class, error) {
	root, err := s.Form(name)
	if err != nil {
		return nil, err
	}
	l := &lineariser{store: s, visiting: map[string]bool{}, seen: map[string]bool{}}
	if err := l.visit(root, nil); err != nil {
		return nil, err
	}
	return l.out, nil
}

// Sources returns the declaration sources of the named form in ancestry
// order, ready for form.New.
func (s *Store) Sources(name string) ([]fields.Source, error) {
	classes, err := s.Ancestry(name)
	if err != nil {
		return nil, err
	}
	out := make([]fields.Source, 0, len(classes))
	for _, class := range classes {
		out = append(out, class.Source)
	}
	return out, nil
}

// Attrs merges the form element settings along the ancestry; the most
// derived non-empty value wins.
func (s *Store) Attrs(name string) (Attrs, error) {
	classes, err := s.Ancestry(name)
	if err != nil {
		return Attrs{}, err
	}
	var merged Attrs
	for _, class := range classes {
		if class.Kind != KindForm {
			continue
		}
		a := class.Attrs
		if a.Action != "" {
			merged.Action = a.Action
		}
		if a.Method != "" {
			merged.Method = a.Method
		}
		if a.HTMLID != "" {
			merged.HTMLID = a.HTMLID
		}
		if a.HTMLPrefix != "" {
			merged.HTMLPrefix = a.HTMLPrefix
		}
		if a.AutoFieldset != nil {
			value := *a.AutoFieldset
			merged.AutoFieldset = &value
		}
	}
	return merged, nil
}

// NewForm builds the named form. Settings from the definition are applied
// first so opts can override them.
func (s *Store) NewForm(name string, opts ...form.Option) (*form.Form, error) {
	sources, err := s.Sources(name)
	if err != nil {
		return nil, err
	}
	attrs, err := s.Attrs(name)
	if err != nil {
		return nil, err
	}
	all := []form.Option{
		form.WithAction(attrs.Action),
		form.WithMethod(attrs.Method),
		form.WithHTMLID(attrs.HTMLID),
		form.WithHTMLPrefix(attrs.HTMLPrefix),
	}
	if attrs.AutoFieldset != nil {
		all = append(all, form.WithAutoFieldset(*attrs.AutoFieldset))
	}
	return form.New(name, sources, append(all, opts...)...)
}

type lineariser struct {
	store    *Store
	visiting map[string]bool
	seen     map[string]bool
	out      []*Class
}

func (l *lineariser) visit(class *Class, path []string) error {
	key := string(class.Kind) + ":" + class.Name
	path = append(append([]string(nil), path...), class.Name)
	if l.visiting[key] {
		return fmt.Errorf("definition: %s: %w", strings.Join(path, " -> "), ErrCycle)
	}
	l.visiting[key] = true
	defer delete(l.visiting, key)

	for _, parent := range class.Extends {
		next, ok := l.store.forms[parent]
		if !ok {
			return fmt.Errorf("definition: %s %q extends %q: %w", class.Kind, class.Name, parent, ErrUnknownForm)
		}
		if err := l.visit(next, path); err != nil {
			return err
		}
	}
	for _, role := range class.Roles {
		next, ok := l.store.roles[role]
		if !ok {
			return fmt.Errorf("definition: %s %q uses role %q: %w", class.Kind, class.Name, role, ErrUnknownForm)
		}
		if err := l.visit(next, path); err != nil {
			return err
		}
	}

	if !l.seen[key] {
		l.seen[key] = true
		l.out = append(l.out, class)
	}
	return nil
}

func sortedKeys(m map[string]*Class) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
