/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/suparena/attribution/errors"
)

// New builds a record from input: nil, a map[string]any, or JSON object text
// as string, []byte or json.RawMessage. Keys that name neither an attribute
// nor an association are ignored.
func (c *Class) New(input any) (*Record, error) {
	fields, err := decodeInput(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	r := newRecord(c)
	if err := r.SetAttributes(fields); err != nil {
		return nil, err
	}
	return r, nil
}

// SetAttributes coerces and stores every known attribute in fields, then
// assigns every known association. Unknown keys are ignored.
func (r *Record) SetAttributes(fields map[string]any) error {
	for _, def := range r.class.attributes {
		raw, ok := fields[def.Name]
		if !ok {
			continue
		}
		if err := r.set(def, raw); err != nil {
			return err
		}
	}
	for _, def := range r.class.associations {
		raw, ok := fields[def.Name]
		if !ok {
			continue
		}
		if err := r.assign(def, raw); err != nil {
			return err
		}
	}
	return nil
}

func decodeInput(input any) (map[string]any, error) {
	switch v := input.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case string:
		return decodeJSON([]byte(v))
	case []byte:
		return decodeJSON(v)
	case json.RawMessage:
		return decodeJSON(v)
	}
	if m, ok := stringKeyed(input); ok {
		return m, nil
	}
	return nil, errors.NewValidationError("", fmt.Sprintf("unsupported input type %T", input))
}

func decodeJSON(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errors.NewValidationError("", fmt.Sprintf("decode json: %v", err))
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// stringKeyed converts any map with string keys, such as map[string]string.
func stringKeyed(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func (r *Record) assign(def AssociationDefinition, raw any) error {
	switch def.Kind {
	case BelongsTo:
		return r.assignOwner(def, raw)
	case HasMany:
		return r.assignChildren(def, raw)
	}
	return fmt.Errorf("%s.%s: %w", r.class.name, def.Name, errors.ErrUnknownAssociation)
}

func (r *Record) assignOwner(def AssociationDefinition, raw any) error {
	var owner *Record
	switch v := raw.(type) {
	case nil:
	case *Record:
		owner = v
	default:
		target, err := r.class.target(def)
		if err != nil {
			return err
		}
		fields, ok := stringKeyed(raw)
		if !ok {
			return errors.NewValidationError(r.class.name+"."+def.Name,
				fmt.Sprintf("expected a record or mapping, got %T", raw))
		}
		if owner, err = target.New(fields); err != nil {
			return err
		}
	}

	c := r.cellFor(def.Name)
	c.state, c.one = assigned, owner
	if owner != nil && owner.ID() != nil {
		return r.Set(def.ForeignKey, owner.ID())
	}
	return nil
}

func (r *Record) assignChildren(def AssociationDefinition, raw any) error {
	field := r.class.name + "." + def.Name

	items, err := sequence(raw)
	if err != nil {
		return errors.NewValidationError(field, err.Error())
	}

	children := make([]*Record, 0, len(items))
	var target *Class
	for _, item := range items {
		child, ok := item.(*Record)
		if !ok {
			if target == nil {
				if target, err = r.class.target(def); err != nil {
					return err
				}
			}
			fields, isMap := stringKeyed(item)
			if !isMap {
				return errors.NewValidationError(field,
					fmt.Sprintf("expected a record or mapping, got %T", item))
			}
			if child, err = target.New(fields); err != nil {
				return err
			}
		}
		if child == nil {
			continue
		}
		if err := child.adopt(r); err != nil {
			return err
		}
		children = append(children, child)
	}

	c := r.cellFor(def.Name)
	c.state, c.many = assigned, children
	return nil
}

// adopt points the child's belongs_to association at owner, matching by the
// owner's class or one of its ancestors.
func (r *Record) adopt(owner *Record) error {
	for _, def := range r.class.associations {
		if def.Kind != BelongsTo {
			continue
		}
		target, err := r.class.target(def)
		if err != nil || !owner.class.IsA(target) {
			continue
		}
		c := r.cellFor(def.Name)
		c.state, c.one = assigned, owner
		if id := owner.ID(); id != nil {
			return r.Set(def.ForeignKey, id)
		}
		return nil
	}
	return nil
}

// sequence flattens has_many input: nil, a slice, or a mapping keyed by
// positional indices ordered by ascending index.
func sequence(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []*Record:
		out := make([]any, len(v))
		for i, rec := range v {
			out[i] = rec
		}
		return out, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		m, ok := stringKeyed(raw)
		if !ok {
			break
		}
		return indexed(m)
	}
	return nil, fmt.Errorf("expected a sequence or index-keyed mapping, got %T", raw)
}

func indexed(m map[string]any) ([]any, error) {
	type entry struct {
		index int
		value any
	}
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("mapping key %q is not a positional index", k)
		}
		entries = append(entries, entry{index: i, value: v})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].index < entries[b].index })

	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out, nil
}
