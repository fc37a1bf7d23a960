/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Field is one attribute name and value in declaration order.
type Field struct {
	Name  string
	Value any
}

// Fields returns every declared attribute with its current value, nil for
// attributes that were never supplied. Associations are not included.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.class.attributes))
	for i, def := range r.class.attributes {
		out[i] = Field{Name: def.Name, Value: r.values[def.Name]}
	}
	return out
}

// ToMap returns every declared attribute keyed by name.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, len(r.class.attributes))
	for _, def := range r.class.attributes {
		out[def.Name] = r.values[def.Name]
	}
	return out
}

// ToJSON encodes the declared attributes as a JSON object whose keys follow
// declaration order.
func (r *Record) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(jsonValue(f.Value))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: encode: %w", r.class.name, f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.ToJSON()
}

func jsonValue(v any) any {
	if loc, ok := v.(*time.Location); ok && loc != nil {
		return loc.String()
	}
	return v
}
