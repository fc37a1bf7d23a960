/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/config"
	"github.com/suparena/attribution/errors"
	"github.com/suparena/attribution/metrics"
	"github.com/suparena/attribution/registry"
)

// Schema is a set of classes that resolve associations against each other.
// Classes are declared once during initialization and read-only afterwards.
type Schema struct {
	classes *registry.Names[*Class]
	coercer *coerce.Coercer
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// Option configures a Schema.
type Option func(*Schema)

// WithCoercer sets the coercer used for every attribute write.
func WithCoercer(c *coerce.Coercer) Option {
	return func(s *Schema) {
		if c != nil {
			s.coercer = c
		}
	}
}

// WithLogger sets the logger association lookups are reported to.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Schema) {
		s.logger = l
	}
}

// WithMetrics sets the collector association lookups are counted in.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Schema) {
		s.metrics = m
	}
}

// NewSchema creates an empty Schema.
func NewSchema(opts ...Option) *Schema {
	s := &Schema{
		classes: registry.New[*Class](),
		coercer: coerce.Default(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OptionsFromConfig translates a loaded config into schema options.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	c, err := cfg.Coercer()
	if err != nil {
		return nil, fmt.Errorf("build coercer: %w", err)
	}
	return []Option{
		WithCoercer(c),
		WithLogger(cfg.Logger(nil)),
		WithMetrics(cfg.Metrics()),
	}, nil
}

// DefaultSchema backs the package-level Define, MustDefine, Lookup and Validate.
var DefaultSchema = NewSchema()

// Define declares a class in the default schema.
func Define(name string, fn func(*Builder)) (*Class, error) {
	return DefaultSchema.Define(name, fn)
}

// MustDefine declares a class in the default schema and panics on failure.
func MustDefine(name string, fn func(*Builder)) *Class {
	return DefaultSchema.MustDefine(name, fn)
}

// Lookup returns a class of the default schema by qualified name.
func Lookup(name string) (*Class, bool) {
	return DefaultSchema.Lookup(name)
}

// Validate checks every association target of the default schema.
func Validate() error {
	return DefaultSchema.Validate()
}

// Define declares a class. fn runs the class body against a Builder; the
// class is registered only if every declaration in it succeeded.
func (s *Schema) Define(name string, fn func(*Builder)) (*Class, error) {
	c := newClass(s, name)
	b := &Builder{class: c}
	if fn != nil {
		fn(b)
	}
	if b.err != nil {
		return nil, b.err
	}

	if err := s.classes.Register(name, c); err != nil {
		return nil, errors.NewDeclarationError(name, "", err)
	}

	s.logger.Debug().
		Str("class", name).
		Int("attributes", len(c.attributes)).
		Int("associations", len(c.associations)).
		Msg("class defined")
	return c, nil
}

// MustDefine is Define that panics, for use in package-level var blocks.
func (s *Schema) MustDefine(name string, fn func(*Builder)) *Class {
	c, err := s.Define(name, fn)
	if err != nil {
		panic(fmt.Sprintf("attribution: %v", err))
	}
	return c
}

// Lookup returns a class by qualified name.
func (s *Schema) Lookup(name string) (*Class, bool) {
	return s.classes.Get(name)
}

// Classes returns every class in declaration order.
func (s *Schema) Classes() []*Class {
	names := s.classes.Names()
	out := make([]*Class, 0, len(names))
	for _, name := range names {
		if c, ok := s.classes.Get(name); ok {
			out = append(out, c)
		}
	}
	return out
}

// New builds a record of the named class.
func (s *Schema) New(className string, input any) (*Record, error) {
	c, ok := s.Lookup(className)
	if !ok {
		return nil, fmt.Errorf("class %q: %w", className, errors.ErrUnresolvedClass)
	}
	return c.New(input)
}

// Validate resolves every association target and reports all that fail.
func (s *Schema) Validate() error {
	var errs []error
	for _, c := range s.Classes() {
		for _, def := range c.associations {
			if _, err := c.target(def); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return stderrors.Join(errs...)
}
