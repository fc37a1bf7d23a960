/*
Package coerce maps raw input values onto the canonical value of a declared
attribute type.

Kind is a closed enum; Coercer.Coerce dispatches on it with a switch:

	c := coerce.New(timezone.NewCatalog(), time.UTC)

	v, _ := c.Coerce(coerce.Integer, "1")          // int64(1)
	v, _ = c.Coerce(coerce.Decimal, "22.00")       // decimal.Decimal
	v, _ = c.Coerce(coerce.Date, "March 9, 2010")  // strfmt.Date 2010-03-09
	v, _ = c.Coerce(coerce.Date, map[string]any{   // strfmt.Date 2013-05-01
	    "year": "2013", "month": "5", "day": "",
	})
	v, _ = c.Coerce(coerce.Array, 42)              // []any{42}
	v, _ = c.Coerce(coerce.Array, nil)             // []any{}

Coercion never fails on malformed scalars: they become nil. The single error
case is a time_zone name the Directory does not know. Coercing an already
canonical value returns it unchanged.
*/
package coerce
