/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package coerce

import (
	"fmt"
	"strings"
)

// Kind is the declared type of an attribute.
type Kind int

const (
	Invalid Kind = iota
	Integer
	String
	Decimal
	Date
	Boolean
	Float
	Time
	TimeZone
	Array
	Hash
)

var kindNames = [...]string{
	Invalid:  "invalid",
	Integer:  "integer",
	String:   "string",
	Decimal:  "decimal",
	Date:     "date",
	Boolean:  "boolean",
	Float:    "float",
	Time:     "time",
	TimeZone: "time_zone",
	Array:    "array",
	Hash:     "hash",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declarable kinds.
func (k Kind) Valid() bool {
	return k > Invalid && int(k) < len(kindNames)
}

// Kinds returns every declarable kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := Integer; int(k) < len(kindNames); k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind maps a kind name to its Kind. "hash_attr" is accepted for Hash.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "hash_attr" {
		return Hash, nil
	}
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("unknown attribute type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
