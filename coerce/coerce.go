/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"github.com/suparena/attribution/timezone"
)

var defaultZones = timezone.NewCatalog()

// timeLayouts are parsed in the coercer's location before the ISO formats
// strfmt knows and the free-form fallback.
var timeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Coercer converts raw input into the canonical value for a Kind.
//
// Canonical values: Integer int64, String string, Decimal decimal.Decimal,
// Float float64, Boolean bool, Date strfmt.Date (midnight UTC), Time time.Time,
// TimeZone *time.Location, Array a slice, Hash a map.
type Coercer struct {
	// Zones resolves time_zone values. Nil means a default Catalog.
	Zones timezone.Directory
	// Location is used for times that carry no offset. Nil means time.Local.
	Location *time.Location
}

// New creates a Coercer.
func New(zones timezone.Directory, loc *time.Location) *Coercer {
	return &Coercer{Zones: zones, Location: loc}
}

// Default returns a Coercer with the default zone catalog in the local zone.
func Default() *Coercer {
	return New(defaultZones, time.Local)
}

// Coerce converts raw to the canonical value of kind. Malformed input yields
// nil; the only error is an unknown time zone name.
func (c *Coercer) Coerce(kind Kind, raw any) (any, error) {
	switch kind {
	case Integer:
		return toInteger(raw), nil
	case String:
		return toString(raw), nil
	case Decimal:
		return toDecimal(raw), nil
	case Float:
		return toFloat(raw), nil
	case Boolean:
		return toBoolean(raw), nil
	case Date:
		return c.toDate(raw), nil
	case Time:
		return c.toTime(raw), nil
	case TimeZone:
		return c.toTimeZone(raw)
	case Array:
		return toArray(raw), nil
	case Hash:
		return toHash(raw), nil
	default:
		return nil, fmt.Errorf("coerce: unsupported kind %s", kind)
	}
}

func (c *Coercer) location() *time.Location {
	if c == nil || c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Coercer) zones() timezone.Directory {
	if c == nil || c.Zones == nil {
		return defaultZones
	}
	return c.Zones
}

func toInteger(raw any) any {
	switch v := raw.(type) {
	case nil, bool:
		return nil
	case int64:
		return v
	case decimal.Decimal:
		return decimalInteger(v)
	}
	if s, ok := text(raw); ok {
		return parseInteger(s)
	}
	if i, ok := integral(raw); ok {
		return i
	}
	if n, ok := number(raw); ok {
		return floatInteger(n)
	}
	return nil
}

func parseInteger(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return decimalInteger(d)
	}
	return nil
}

// decimalInteger truncates d, or returns nil when the result overflows int64.
func decimalInteger(d decimal.Decimal) any {
	i := d.BigInt()
	if !i.IsInt64() {
		return nil
	}
	return i.Int64()
}

// floatInteger truncates f, or returns nil when f is not finite or the result
// overflows int64.
func floatInteger(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f = math.Trunc(f)
	if f >= 0x1p63 || f < -0x1p63 {
		return nil
	}
	return int64(f)
}

func toString(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return string(v)
	case *time.Location:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(raw)
}

func toDecimal(raw any) any {
	switch v := raw.(type) {
	case nil, bool:
		return nil
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		return *v
	}
	if s, ok := text(raw); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		return d
	}
	if i, ok := integral(raw); ok {
		return decimal.NewFromInt(i)
	}
	if n, ok := number(raw); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return decimal.NewFromFloat(n)
	}
	return nil
}

func toFloat(raw any) any {
	switch v := raw.(type) {
	case nil, bool:
		return nil
	case float64:
		return v
	case decimal.Decimal:
		return v.InexactFloat64()
	}
	if s, ok := text(raw); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return f
	}
	if n, ok := number(raw); ok {
		return n
	}
	return nil
}

var (
	truthy = map[string]bool{"yes": true, "true": true, "y": true, "t": true, "on": true, "1": true}
	falsy  = map[string]bool{"no": true, "false": true, "n": true, "f": true, "off": true, "0": true}
)

func toBoolean(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		return v
	case decimal.Decimal:
		return !v.IsZero()
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return f != 0
	}
	if s, ok := text(raw); ok {
		token := strings.ToLower(strings.TrimSpace(s))
		switch {
		case truthy[token]:
			return true
		case falsy[token]:
			return false
		}
		return nil
	}
	if n, ok := number(raw); ok {
		return n != 0
	}
	return nil
}

func (c *Coercer) toDate(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case strfmt.Date:
		return v
	case *strfmt.Date:
		if v == nil {
			return nil
		}
		return *v
	case time.Time:
		return dateOf(v)
	case strfmt.DateTime:
		return dateOf(time.Time(v))
	}
	if s, ok := text(raw); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		var d strfmt.Date
		if err := d.UnmarshalText([]byte(s)); err == nil {
			return dateOf(time.Time(d))
		}
		t, err := dateparse.ParseIn(s, c.location())
		if err != nil {
			return nil
		}
		return dateOf(t)
	}
	if parts, ok := components(raw); ok {
		return c.dateFromParts(parts)
	}
	return nil
}

func dateOf(t time.Time) strfmt.Date {
	y, m, d := t.Date()
	return strfmt.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// dateFromParts builds the most specific date the present components allow:
// year alone is Jan 1, year+month the first of that month.
func (c *Coercer) dateFromParts(parts map[string]any) any {
	year, ok := part(parts, "year")
	if !ok {
		return nil
	}
	month, day := 1, 1
	if m, ok := part(parts, "month"); ok {
		month = m
		if d, ok := part(parts, "day"); ok {
			day = d
		}
	}
	return strfmt.Date(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

func (c *Coercer) toTime(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		return v
	case *time.Time:
		if v == nil {
			return nil
		}
		return *v
	case strfmt.DateTime:
		return time.Time(v)
	case strfmt.Date:
		y, m, d := time.Time(v).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, c.location())
	}
	if s, ok := text(raw); ok {
		return c.parseTime(s)
	}
	if parts, ok := components(raw); ok {
		return c.timeFromParts(parts)
	}
	return nil
}

func (c *Coercer) parseTime(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, c.location()); err == nil {
			return t
		}
	}
	if dt, err := strfmt.ParseDateTime(s); err == nil {
		return time.Time(dt)
	}
	t, err := dateparse.ParseIn(s, c.location())
	if err != nil {
		return nil
	}
	return t
}

func (c *Coercer) timeFromParts(parts map[string]any) any {
	year, ok := part(parts, "year")
	if !ok {
		return nil
	}
	month := partOr(parts, "month", 1)
	day := partOr(parts, "day", 1)
	hour := partOr(parts, "hour", 0)
	minute := partOr(parts, "min", 0)
	sec := partOr(parts, "sec", 0)

	loc := c.location()
	if offset, ok := part(parts, "utc_offset"); ok {
		loc = time.FixedZone("", offset)
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
}

func (c *Coercer) toTimeZone(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *time.Location:
		if v == nil {
			return nil, nil
		}
		return v, nil
	}
	s, ok := text(raw)
	if !ok {
		s = fmt.Sprint(raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	loc, err := c.zones().Lookup(s)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

func toArray(raw any) any {
	if raw == nil {
		return []any{}
	}
	switch reflect.ValueOf(raw).Kind() {
	case reflect.Slice, reflect.Array:
		return raw
	}
	return []any{raw}
}

func toHash(raw any) any {
	if raw == nil {
		return map[string]any{}
	}
	if reflect.ValueOf(raw).Kind() == reflect.Map {
		return raw
	}
	return nil
}

// text extracts string-like input.
func text(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.Number:
		return string(v), true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// number extracts any Go numeric kind as float64.
func number(raw any) (float64, bool) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// integral extracts integer kinds without a float round trip. Unsigned values
// above math.MaxInt64 are reported as not integral.
func integral(raw any) (int64, bool) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

// components normalises any map with string keys into map[string]any.
func components(raw any) (map[string]any, bool) {
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

// part reads an integer component; blank or malformed components are absent.
func part(parts map[string]any, key string) (int, bool) {
	v, ok := parts[key]
	if !ok {
		return 0, false
	}
	i, ok := toInteger(v).(int64)
	if !ok {
		return 0, false
	}
	return int(i), true
}

func partOr(parts map[string]any, key string, fallback int) int {
	if v, ok := part(parts, key); ok {
		return v
	}
	return fallback
}
