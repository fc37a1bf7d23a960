/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/attribution"
	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/errors"
)

// Manifest is the YAML document a schema is declared from.
type Manifest struct {
	Classes []ClassEntry `yaml:"classes"`
}

// ClassEntry declares one class.
type ClassEntry struct {
	Name         string             `yaml:"name"`
	Extends      string             `yaml:"extends,omitempty"`
	Autoload     *bool              `yaml:"autoload,omitempty"`
	Attributes   []AttributeEntry   `yaml:"attributes,omitempty"`
	Associations []AssociationEntry `yaml:"associations,omitempty"`
}

// AttributeEntry declares one attribute.
type AttributeEntry struct {
	Name     string      `yaml:"name"`
	Type     coerce.Kind `yaml:"type"`
	Required bool        `yaml:"required,omitempty"`
	Doc      string      `yaml:"doc,omitempty"`
}

// AssociationEntry declares one association. ClassName and ForeignKey fall
// back to the names derived from Name.
type AssociationEntry struct {
	Name       string                      `yaml:"name"`
	Kind       attribution.AssociationKind `yaml:"kind"`
	ClassName  string                      `yaml:"class_name,omitempty"`
	ForeignKey string                      `yaml:"foreign_key,omitempty"`
}

// Decode parses a manifest, rejecting unknown fields.
func Decode(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return &m, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Load declares every class of the manifest read from r in s, in document
// order, and validates the schema.
func Load(r io.Reader, s *attribution.Schema) ([]*attribution.Class, error) {
	m, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return m.Apply(s)
}

// LoadFile is Load for a file path.
func LoadFile(path string, s *attribution.Schema) ([]*attribution.Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Load(f, s)
}

// Apply declares the manifest's classes in s.
func (m *Manifest) Apply(s *attribution.Schema) ([]*attribution.Class, error) {
	classes := make([]*attribution.Class, 0, len(m.Classes))
	for _, entry := range m.Classes {
		c, err := entry.define(s)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return classes, nil
}

func (entry ClassEntry) define(s *attribution.Schema) (*attribution.Class, error) {
	if entry.Name == "" {
		return nil, errors.NewValidationError("name", "class name is required")
	}

	for _, a := range entry.Associations {
		if a.Kind != attribution.BelongsTo && a.Kind != attribution.HasMany {
			return nil, errors.NewValidationError(entry.Name+"."+a.Name, "association kind is required")
		}
	}

	var parent *attribution.Class
	if entry.Extends != "" {
		p, ok := s.Lookup(entry.Extends)
		if !ok {
			return nil, errors.NewUnresolvedClassError(entry.Name, "extends", entry.Extends)
		}
		parent = p
	}

	return s.Define(entry.Name, func(b *attribution.Builder) {
		if parent != nil {
			b.Extends(parent)
		}
		if entry.Autoload != nil {
			b.Autoload(*entry.Autoload)
		}
		for _, a := range entry.Attributes {
			var opts []attribution.AttributeOption
			if a.Required {
				opts = append(opts, attribution.Required())
			}
			if a.Doc != "" {
				opts = append(opts, attribution.Doc(a.Doc))
			}
			b.Attribute(a.Name, a.Type, opts...)
		}
		for _, a := range entry.Associations {
			var opts []attribution.AssociationOption
			if a.ClassName != "" {
				opts = append(opts, attribution.ClassName(a.ClassName))
			}
			if a.ForeignKey != "" {
				opts = append(opts, attribution.ForeignKey(a.ForeignKey))
			}
			switch a.Kind {
			case attribution.BelongsTo:
				b.BelongsTo(a.Name, opts...)
			case attribution.HasMany:
				b.HasMany(a.Name, opts...)
			}
		}
	})
}
