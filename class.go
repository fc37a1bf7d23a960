/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	"fmt"
	"sync"

	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/errors"
	"github.com/suparena/attribution/registry"
)

// Class is a declared record type: an ordered attribute list, an association
// list and the lookup collaborators other classes use to load it.
type Class struct {
	schema *Schema
	name   string
	parent *Class

	attributes   []AttributeDefinition
	attrIndex    map[string]int
	associations []AssociationDefinition
	assocIndex   map[string]int
	autoload     bool

	mu     sync.RWMutex
	finder Finder
	lister Lister
}

func newClass(s *Schema, name string) *Class {
	return &Class{
		schema:     s,
		name:       name,
		attrIndex:  make(map[string]int),
		assocIndex: make(map[string]int),
		autoload:   true,
	}
}

// Name returns the qualified class name ("Music.Album").
func (c *Class) Name() string { return c.name }

// BaseName returns the class name without its namespace.
func (c *Class) BaseName() string { return registry.BaseName(c.name) }

// Namespace returns the enclosing namespace, "" at top level.
func (c *Class) Namespace() string { return registry.Namespace(c.name) }

// Parent returns the class this one extends, or nil.
func (c *Class) Parent() *Class { return c.parent }

// Schema returns the schema the class is declared in.
func (c *Class) Schema() *Schema { return c.schema }

// AutoloadAssociations reports whether lazy association lookups are allowed.
func (c *Class) AutoloadAssociations() bool { return c.autoload }

// Attributes returns the attribute definitions, inherited ones first.
func (c *Class) Attributes() []AttributeDefinition {
	out := make([]AttributeDefinition, len(c.attributes))
	copy(out, c.attributes)
	return out
}

// AttributeNames returns the attribute names in declaration order.
func (c *Class) AttributeNames() []string {
	out := make([]string, len(c.attributes))
	for i, a := range c.attributes {
		out[i] = a.Name
	}
	return out
}

// Attribute returns the named attribute definition.
func (c *Class) Attribute(name string) (AttributeDefinition, bool) {
	i, ok := c.attrIndex[name]
	if !ok {
		return AttributeDefinition{}, false
	}
	return c.attributes[i], true
}

// Associations returns the association definitions in declaration order.
func (c *Class) Associations() []AssociationDefinition {
	out := make([]AssociationDefinition, len(c.associations))
	copy(out, c.associations)
	return out
}

// Association returns the named association definition.
func (c *Class) Association(name string) (AssociationDefinition, bool) {
	i, ok := c.assocIndex[name]
	if !ok {
		return AssociationDefinition{}, false
	}
	return c.associations[i], true
}

// IsA reports whether c is other or extends it.
func (c *Class) IsA(other *Class) bool {
	for k := c; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}

// SetFinder binds the single-record lookup used by belongs_to associations
// pointing at this class.
func (c *Class) SetFinder(f Finder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finder = f
}

// SetLister binds the multi-record lookup used by has_many associations
// pointing at this class.
func (c *Class) SetLister(l Lister) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lister = l
}

// Finder returns the bound single-record lookup, inherited from ancestors.
func (c *Class) Finder() Finder {
	for k := c; k != nil; k = k.parent {
		k.mu.RLock()
		f := k.finder
		k.mu.RUnlock()
		if f != nil {
			return f
		}
	}
	return nil
}

// Lister returns the bound multi-record lookup, inherited from ancestors.
func (c *Class) Lister() Lister {
	for k := c; k != nil; k = k.parent {
		k.mu.RLock()
		l := k.lister
		k.mu.RUnlock()
		if l != nil {
			return l
		}
	}
	return nil
}

func (c *Class) String() string { return c.name }

// target resolves the class an association points at.
func (c *Class) target(def AssociationDefinition) (*Class, error) {
	from := def.declaredIn
	if from == "" {
		from = c.name
	}
	t, _, ok := c.schema.classes.Resolve(from, def.ClassName)
	if !ok {
		return nil, errors.NewUnresolvedClassError(c.name, def.Name, def.ClassName)
	}
	return t, nil
}

// Builder collects the declarations of a class body. The first failing
// declaration is kept and returned by Schema.Define.
type Builder struct {
	class    *Class
	declared bool
	err      error

	// foreign keys added by BelongsTo in this body
	implicitKeys map[string]bool
}

func (b *Builder) fail(member string, err error) {
	if b.err == nil {
		b.err = errors.NewDeclarationError(b.class.name, member, err)
	}
}

// Extends copies the parent's attributes, associations and autoload switch.
// It must come before any other declaration.
func (b *Builder) Extends(parent *Class) *Builder {
	c := b.class
	switch {
	case parent == nil:
		b.fail("", fmt.Errorf("nil parent: %w", errors.ErrUnresolvedClass))
		return b
	case b.declared || c.parent != nil:
		b.fail("", fmt.Errorf("extends %s after other declarations", parent.name))
		return b
	case parent.schema != c.schema:
		b.fail("", fmt.Errorf("parent %s belongs to another schema", parent.name))
		return b
	}

	c.parent = parent
	c.autoload = parent.autoload
	c.attributes = append(c.attributes, parent.attributes...)
	for i, a := range c.attributes {
		c.attrIndex[a.Name] = i
	}
	c.associations = append(c.associations, parent.associations...)
	for i, a := range c.associations {
		c.assocIndex[a.Name] = i
	}
	return b
}

// Attribute declares an attribute of the given kind.
func (b *Builder) Attribute(name string, kind coerce.Kind, opts ...AttributeOption) *Builder {
	b.declared = true
	switch {
	case name == "":
		b.fail(name, fmt.Errorf("empty attribute name: %w", errors.ErrInvalidInput))
		return b
	case !kind.Valid():
		b.fail(name, fmt.Errorf("invalid attribute type %s: %w", kind, errors.ErrInvalidInput))
		return b
	}
	if _, exists := b.class.attrIndex[name]; exists {
		b.fail(name, errors.ErrDuplicateAttribute)
		return b
	}
	if _, exists := b.class.assocIndex[name]; exists {
		b.fail(name, fmt.Errorf("attribute shadows association: %w", errors.ErrDuplicateAttribute))
		return b
	}

	def := AttributeDefinition{Name: name, Type: kind}
	for _, opt := range opts {
		opt(&def)
	}
	b.addAttribute(def)
	return b
}

func (b *Builder) addAttribute(def AttributeDefinition) {
	c := b.class
	c.attrIndex[def.Name] = len(c.attributes)
	c.attributes = append(c.attributes, def)
}

// Integer declares an integer attribute.
func (b *Builder) Integer(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Integer, opts...)
}

// String declares a string attribute.
func (b *Builder) String(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.String, opts...)
}

// Decimal declares an arbitrary-precision decimal attribute.
func (b *Builder) Decimal(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Decimal, opts...)
}

// Date declares a calendar date attribute.
func (b *Builder) Date(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Date, opts...)
}

// Boolean declares a boolean attribute.
func (b *Builder) Boolean(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Boolean, opts...)
}

// Float declares a floating point attribute.
func (b *Builder) Float(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Float, opts...)
}

// Time declares a timestamp attribute.
func (b *Builder) Time(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Time, opts...)
}

// TimeZone declares a time zone attribute.
func (b *Builder) TimeZone(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.TimeZone, opts...)
}

// Array declares an untyped sequence attribute.
func (b *Builder) Array(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Array, opts...)
}

// Hash declares an untyped mapping attribute.
func (b *Builder) Hash(name string, opts ...AttributeOption) *Builder {
	return b.Attribute(name, coerce.Hash, opts...)
}

// Autoload enables or disables lazy association lookups for the class and
// the classes that extend it afterwards.
func (b *Builder) Autoload(enabled bool) *Builder {
	b.declared = true
	b.class.autoload = enabled
	return b
}

// Finder binds the single-record lookup for this class.
func (b *Builder) Finder(f Finder) *Builder {
	b.declared = true
	b.class.finder = f
	return b
}

// Lister binds the multi-record lookup for this class.
func (b *Builder) Lister(l Lister) *Builder {
	b.declared = true
	b.class.lister = l
	return b
}
