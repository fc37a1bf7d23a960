/*
Package errors provides semantic error types for the attribution library.

Errors fall into three groups:

  - coercion errors: malformed scalar input is absorbed into nil, the only
    coercion error is an unknown time zone name (ErrUnknownTimeZone)
  - lookup errors: whatever a Finder or Lister returns is passed through
    unchanged; ErrNotFound is offered to collaborators that want a sentinel
  - configuration errors: duplicate attributes or classes and unresolved
    association targets are reported when classes are declared or validated

Common Errors:

	var (
	    ErrNotFound           = errors.New("record not found")
	    ErrUnknownTimeZone    = errors.New("unknown time zone")
	    ErrDuplicateAttribute = errors.New("duplicate attribute")
	    ErrDuplicateClass     = errors.New("duplicate class")
	    ErrUnresolvedClass    = errors.New("unresolved class")
	    ErrUnknownAttribute   = errors.New("unknown attribute")
	    ErrNoLookup           = errors.New("no lookup collaborator")
	)

Usage:

	book, err := attribution.Lookup("Book")
	rec, err := book.New(map[string]any{"time_zone": "Atlantis"})
	if err != nil {
	    if errors.IsUnknownTimeZone(err) {
	        return fmt.Errorf("bad zone in payload: %w", err)
	    }
	    return err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
