/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"github.com/suparena/attribution/errors"
)

// Record is an instance of a Class. It stores coerced attribute values and
// the resolution state of its associations. A Record is not safe for
// concurrent use.
type Record struct {
	class  *Class
	values map[string]any
	assoc  map[string]*cell
}

func newRecord(c *Class) *Record {
	return &Record{
		class:  c,
		values: make(map[string]any, len(c.attributes)),
		assoc:  make(map[string]*cell),
	}
}

// Class returns the record's class.
func (r *Record) Class() *Class { return r.class }

// Set coerces raw and stores it under the named attribute.
func (r *Record) Set(name string, raw any) error {
	def, ok := r.class.Attribute(name)
	if !ok {
		return fmt.Errorf("%s.%s: %w", r.class.name, name, errors.ErrUnknownAttribute)
	}
	return r.set(def, raw)
}

func (r *Record) set(def AttributeDefinition, raw any) error {
	v, err := r.class.schema.coercer.Coerce(def.Type, raw)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", r.class.name, def.Name, err)
	}
	r.values[def.Name] = v
	return nil
}

// Get returns the stored value of an attribute, nil when it was never set.
func (r *Record) Get(name string) any {
	return r.values[name]
}

// Has reports whether the attribute was supplied, even as nil.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// ID returns the value of the "id" attribute.
func (r *Record) ID() any {
	return r.values["id"]
}

// Int reads an integer attribute.
func (r *Record) Int(name string) (int64, bool) {
	v, ok := r.values[name].(int64)
	return v, ok
}

// Text reads a string attribute.
func (r *Record) Text(name string) (string, bool) {
	v, ok := r.values[name].(string)
	return v, ok
}

// Decimal reads a decimal attribute.
func (r *Record) Decimal(name string) (decimal.Decimal, bool) {
	v, ok := r.values[name].(decimal.Decimal)
	return v, ok
}

// Float reads a float attribute.
func (r *Record) Float(name string) (float64, bool) {
	v, ok := r.values[name].(float64)
	return v, ok
}

// Bool reads a boolean attribute. ok is false when the value is nil.
func (r *Record) Bool(name string) (bool, bool) {
	v, ok := r.values[name].(bool)
	return v, ok
}

// Is is the predicate form of Bool and reads the same value.
func (r *Record) Is(name string) (bool, bool) {
	return r.Bool(name)
}

// Date reads a date attribute.
func (r *Record) Date(name string) (strfmt.Date, bool) {
	v, ok := r.values[name].(strfmt.Date)
	return v, ok
}

// Time reads a time attribute.
func (r *Record) Time(name string) (time.Time, bool) {
	v, ok := r.values[name].(time.Time)
	return v, ok
}

// TimeZone reads a time zone attribute.
func (r *Record) TimeZone(name string) (*time.Location, bool) {
	v, ok := r.values[name].(*time.Location)
	return v, ok && v != nil
}

// Array reads an array attribute. A supplied nil reads as an empty slice; an
// attribute that was never supplied reads as (nil, false).
func (r *Record) Array(name string) (any, bool) {
	v, ok := r.values[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Hash reads a hash attribute with the same supplied/unsupplied rule as Array.
func (r *Record) Hash(name string) (any, bool) {
	v, ok := r.values[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
