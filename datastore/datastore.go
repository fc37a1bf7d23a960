/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/suparena/attribution"
)

// Source serves both association lookups for one class.
type Source interface {
	attribution.Finder
	attribution.Lister
}

// Bind makes s the Finder and Lister of c.
func Bind(c *attribution.Class, s Source) {
	c.SetFinder(s)
	c.SetLister(s)
}

// Key renders a lookup key or query value in a canonical text form, so that
// int64(42), json.Number("42"), 42.0 and "42" compare equal.
func Key(v any) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case float64:
		if k == math.Trunc(k) && math.Abs(k) < 1e15 {
			return strconv.FormatInt(int64(k), 10)
		}
		return strconv.FormatFloat(k, 'f', -1, 64)
	case json.Number:
		if i, err := k.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return k.String()
	case decimal.Decimal:
		return k.String()
	case fmt.Stringer:
		return k.String()
	}
	return fmt.Sprint(v)
}
