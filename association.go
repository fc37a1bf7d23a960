/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	"context"
	"fmt"

	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/errors"
	"github.com/suparena/attribution/metrics"
	"github.com/suparena/attribution/registry"
)

// AssociationKind distinguishes the two relationship shapes.
type AssociationKind int

const (
	// BelongsTo points at one owner through a foreign key on this record.
	BelongsTo AssociationKind = iota + 1
	// HasMany points at zero or more children carrying this record's id.
	HasMany
)

func (k AssociationKind) String() string {
	switch k {
	case BelongsTo:
		return "belongs_to"
	case HasMany:
		return "has_many"
	default:
		return "invalid"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k AssociationKind) MarshalText() ([]byte, error) {
	if k != BelongsTo && k != HasMany {
		return nil, fmt.Errorf("invalid association kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AssociationKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "belongs_to":
		*k = BelongsTo
	case "has_many":
		*k = HasMany
	default:
		return fmt.Errorf("unknown association kind %q: %w", text, errors.ErrInvalidInput)
	}
	return nil
}

// AssociationDefinition describes a declared relationship.
type AssociationDefinition struct {
	Name       string          `json:"name" yaml:"name"`
	Kind       AssociationKind `json:"type" yaml:"kind"`
	ClassName  string          `json:"class_name" yaml:"class_name"`
	ForeignKey string          `json:"foreign_key" yaml:"foreign_key"`

	// declaredIn is the class whose namespace ClassName resolves from.
	declaredIn string
}

// AssociationOption overrides association defaults.
type AssociationOption func(*AssociationDefinition)

// ClassName sets the target class name. Namespaced targets use "." as the
// separator; unqualified names resolve from the declaring class's namespace.
func ClassName(name string) AssociationOption {
	return func(d *AssociationDefinition) {
		d.ClassName = name
	}
}

// ForeignKey overrides the foreign key attribute name.
func ForeignKey(key string) AssociationOption {
	return func(d *AssociationDefinition) {
		d.ForeignKey = key
	}
}

// Query constrains a multi-record lookup.
type Query map[string]any

// Finder loads a single record by key. A nil record with a nil error means
// the key matched nothing.
type Finder interface {
	Find(ctx context.Context, key any) (*Record, error)
}

// Lister loads every record matching a query.
type Lister interface {
	All(ctx context.Context, q Query) ([]*Record, error)
}

// FinderFunc adapts a function to Finder.
type FinderFunc func(ctx context.Context, key any) (*Record, error)

// Find calls f.
func (f FinderFunc) Find(ctx context.Context, key any) (*Record, error) {
	return f(ctx, key)
}

// ListerFunc adapts a function to Lister.
type ListerFunc func(ctx context.Context, q Query) ([]*Record, error)

// All calls f.
func (f ListerFunc) All(ctx context.Context, q Query) ([]*Record, error) {
	return f(ctx, q)
}

// BelongsTo declares a single-owner association and its integer foreign key.
func (b *Builder) BelongsTo(name string, opts ...AssociationOption) *Builder {
	def := AssociationDefinition{
		Name:       name,
		Kind:       BelongsTo,
		ClassName:  registry.ClassNameFor(name),
		ForeignKey: name + "_id",
		declaredIn: b.class.name,
	}
	for _, opt := range opts {
		opt(&def)
	}

	var previous *AssociationDefinition
	if i, ok := b.class.assocIndex[name]; ok {
		prev := b.class.associations[i]
		previous = &prev
	}
	if !b.addAssociation(def) {
		return b
	}
	if previous != nil && previous.Kind == BelongsTo && previous.ForeignKey != def.ForeignKey {
		b.dropImplicitKey(previous.ForeignKey)
	}
	if _, exists := b.class.attrIndex[def.ForeignKey]; !exists {
		b.addAttribute(AttributeDefinition{Name: def.ForeignKey, Type: coerce.Integer})
		if b.implicitKeys == nil {
			b.implicitKeys = make(map[string]bool)
		}
		b.implicitKeys[def.ForeignKey] = true
	}
	return b
}

// dropImplicitKey removes a foreign key attribute BelongsTo added in this body
// once no belongs_to association refers to it.
func (b *Builder) dropImplicitKey(key string) {
	if !b.implicitKeys[key] {
		return
	}
	c := b.class
	for _, a := range c.associations {
		if a.Kind == BelongsTo && a.ForeignKey == key {
			return
		}
	}
	i, ok := c.attrIndex[key]
	if !ok {
		return
	}
	c.attributes = append(c.attributes[:i:i], c.attributes[i+1:]...)
	delete(c.attrIndex, key)
	for j := i; j < len(c.attributes); j++ {
		c.attrIndex[c.attributes[j].Name] = j
	}
	delete(b.implicitKeys, key)
}

// HasMany declares a one-to-many association. The foreign key lives on the
// target class and defaults to the declaring class's underscored name + "_id".
func (b *Builder) HasMany(name string, opts ...AssociationOption) *Builder {
	def := AssociationDefinition{
		Name:       name,
		Kind:       HasMany,
		ClassName:  registry.ClassNameFor(name),
		ForeignKey: registry.ForeignKeyFor(b.class.name),
		declaredIn: b.class.name,
	}
	for _, opt := range opts {
		opt(&def)
	}
	b.addAssociation(def)
	return b
}

func (b *Builder) addAssociation(def AssociationDefinition) bool {
	b.declared = true
	c := b.class
	switch {
	case def.Name == "":
		b.fail(def.Name, fmt.Errorf("empty association name: %w", errors.ErrInvalidInput))
		return false
	case def.ClassName == "":
		b.fail(def.Name, fmt.Errorf("empty class name: %w", errors.ErrInvalidInput))
		return false
	case def.ForeignKey == "":
		b.fail(def.Name, fmt.Errorf("empty foreign key: %w", errors.ErrInvalidInput))
		return false
	}
	if _, exists := c.attrIndex[def.Name]; exists {
		b.fail(def.Name, fmt.Errorf("association shadows attribute: %w", errors.ErrDuplicateAttribute))
		return false
	}

	if i, exists := c.assocIndex[def.Name]; exists {
		c.associations[i] = def
		return true
	}
	c.assocIndex[def.Name] = len(c.associations)
	c.associations = append(c.associations, def)
	return true
}

type cellState int

const (
	unresolved cellState = iota
	assigned
	cached
)

// cell holds the resolution state of one association on one record.
type cell struct {
	state cellState
	one   *Record
	many  []*Record
}

func (r *Record) cellFor(name string) *cell {
	c, ok := r.assoc[name]
	if !ok {
		c = &cell{}
		r.assoc[name] = c
	}
	return c
}

func (r *Record) association(name string, kind AssociationKind) (AssociationDefinition, error) {
	def, ok := r.class.Association(name)
	if !ok || def.Kind != kind {
		return AssociationDefinition{}, fmt.Errorf("%s.%s (%s): %w", r.class.name, name, kind, errors.ErrUnknownAssociation)
	}
	return def, nil
}

func outcome(s cellState) string {
	if s == assigned {
		return metrics.OutcomeAssigned
	}
	return metrics.OutcomeCached
}

// BelongsTo returns the owner record of a belongs_to association, calling the
// target class's Finder with the foreign key on first access. Assigned and
// previously loaded values are returned without a lookup. It returns nil
// without a lookup when autoloading is disabled or the foreign key is unset.
func (r *Record) BelongsTo(ctx context.Context, name string) (*Record, error) {
	def, err := r.association(name, BelongsTo)
	if err != nil {
		return nil, err
	}

	s := r.class.schema
	kind := BelongsTo.String()
	c := r.cellFor(name)
	if c.state != unresolved {
		s.metrics.Resolved(r.class.name, name, kind, outcome(c.state))
		return c.one, nil
	}
	if !r.class.autoload {
		s.metrics.Resolved(r.class.name, name, kind, metrics.OutcomeSkipped)
		return nil, nil
	}
	key := r.values[def.ForeignKey]
	if key == nil {
		return nil, nil
	}

	target, err := r.class.target(def)
	if err != nil {
		return nil, err
	}
	finder := target.Finder()
	if finder == nil {
		return nil, fmt.Errorf("%s.%s: %s has no finder: %w", r.class.name, name, target.name, errors.ErrNoLookup)
	}

	s.metrics.Lookup(r.class.name, name, kind)
	s.logger.Debug().
		Str("class", r.class.name).
		Str("association", name).
		Str("kind", kind).
		Interface("key", key).
		Msg("finding owner")

	owner, err := finder.Find(ctx, key)
	if err != nil {
		s.metrics.LookupError(r.class.name, name, kind)
		s.logger.Warn().Err(err).
			Str("class", r.class.name).
			Str("association", name).
			Msg("owner lookup failed")
		return nil, err
	}

	c.state, c.one = cached, owner
	return owner, nil
}

// HasMany returns the children of a has_many association. The target class's
// Lister receives the foreign key set to this record's id merged with the
// extra queries, whose keys win. Only calls without extra query keys are
// memoized, and an assigned value is returned regardless of the query.
func (r *Record) HasMany(ctx context.Context, name string, query ...Query) ([]*Record, error) {
	def, err := r.association(name, HasMany)
	if err != nil {
		return nil, err
	}

	extra := Query{}
	for _, q := range query {
		for k, v := range q {
			extra[k] = v
		}
	}

	s := r.class.schema
	kind := HasMany.String()
	c := r.cellFor(name)
	if c.state == assigned || (c.state == cached && len(extra) == 0) {
		s.metrics.Resolved(r.class.name, name, kind, outcome(c.state))
		return c.many, nil
	}
	if !r.class.autoload {
		s.metrics.Resolved(r.class.name, name, kind, metrics.OutcomeSkipped)
		return []*Record{}, nil
	}

	target, err := r.class.target(def)
	if err != nil {
		return nil, err
	}
	lister := target.Lister()
	if lister == nil {
		return nil, fmt.Errorf("%s.%s: %s has no lister: %w", r.class.name, name, target.name, errors.ErrNoLookup)
	}

	q := Query{def.ForeignKey: r.ID()}
	for k, v := range extra {
		q[k] = v
	}

	s.metrics.Lookup(r.class.name, name, kind)
	s.logger.Debug().
		Str("class", r.class.name).
		Str("association", name).
		Str("kind", kind).
		Interface("query", q).
		Msg("listing children")

	children, err := lister.All(ctx, q)
	if err != nil {
		s.metrics.LookupError(r.class.name, name, kind)
		s.logger.Warn().Err(err).
			Str("class", r.class.name).
			Str("association", name).
			Msg("children lookup failed")
		return nil, err
	}
	if children == nil {
		children = []*Record{}
	}

	if len(extra) == 0 {
		c.state, c.many = cached, children
	}
	return children, nil
}

// Assign sets an association explicitly, replacing any loaded value. It
// accepts what construction accepts: records, maps of attributes, sequences
// of either for has_many, and nil.
func (r *Record) Assign(name string, value any) error {
	def, ok := r.class.Association(name)
	if !ok {
		return fmt.Errorf("%s.%s: %w", r.class.name, name, errors.ErrUnknownAssociation)
	}
	return r.assign(def, value)
}
