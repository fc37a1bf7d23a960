/*
Package attribution turns a plain declaration into a typed, coercing record
with lazy belongs_to and has_many associations.

A Class is declared once through a Builder and is read-only afterwards:
  - Attributes are typed with a coerce.Kind and kept in declaration order,
    inherited attributes first
  - Raw input is coerced on every write; malformed values become nil
  - belongs_to registers an integer foreign key and loads the owner through
    the target class's Finder
  - has_many loads children through the target class's Lister, queried by
    the owner's id
  - Records serialize to ordered maps and JSON over the declared attributes

Basic Usage:

	schema := attribution.NewSchema()

	book := schema.MustDefine("Book", func(b *attribution.Builder) {
		b.Integer("id")
		b.String("title")
		b.Decimal("price")
		b.HasMany("chapters")
	})

	schema.MustDefine("Chapter", func(b *attribution.Builder) {
		b.Integer("id")
		b.String("title")
		b.BelongsTo("book")
	})

	// Targets resolve by name, so classes may refer to ones declared
	// later. Validate once everything is declared.
	if err := schema.Validate(); err != nil {
		log.Fatal(err)
	}

	rec, _ := book.New(`{"id": 1, "title": "Rainy Day", "chapters": [{"title": "Rain"}]}`)
	chapters, _ := rec.HasMany(ctx, "chapters")
	owner, _ := chapters[0].BelongsTo(ctx, "book") // rec, no lookup

Validate reports every association whose target class is missing. Without
it the first read of such an association fails with ErrUnresolvedClass.

Lookups for records that were not supplied inline go to the Finder and
Lister bound on the target class; see datastore/mock and datastore/ddb.
*/
package attribution
