/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/suparena/attribution"
	"github.com/suparena/attribution/datastore"
	"github.com/suparena/attribution/datastore/mock"
	"github.com/suparena/attribution/metrics"
)

// library is a fresh schema with the classes the tests share and an
// in-memory source bound to each class that is looked up.
type library struct {
	schema  *attribution.Schema
	metrics *metrics.Collector
	log     *bytes.Buffer

	Address, Person, Book, Reader, Chapter, Page *attribution.Class
	Parent, Child, Grandchild                    *attribution.Class
	Album, Track                                 *attribution.Class
	StoreModel, Product, Order                   *attribution.Class

	books, readers, chapters, pages, products, orders, albums, tracks *mock.Source
}

func newLibrary(t *testing.T) *library {
	t.Helper()

	l := &library{
		metrics: metrics.New(metrics.Config{Prefix: "test"}),
		log:     &bytes.Buffer{},
	}
	l.schema = attribution.NewSchema(
		attribution.WithMetrics(l.metrics),
		attribution.WithLogger(zerolog.New(l.log).Level(zerolog.DebugLevel)),
	)
	s := l.schema

	define := func(name string, fn func(*attribution.Builder)) *attribution.Class {
		c, err := s.Define(name, fn)
		require.NoError(t, err)
		return c
	}

	l.Address = define("Address", func(b *attribution.Builder) {
		b.Integer("id")
		b.String("street")
		b.String("city")
		b.String("state")
		b.String("zip")
		b.BelongsTo("author", attribution.ClassName("Person"))
	})

	l.Person = define("Person", func(b *attribution.Builder) {
		b.Integer("id")
		b.String("first_name")
		b.String("last_name")
		b.HasMany("addresses")
		b.HasMany("books")
	})

	l.Book = define("Book", func(b *attribution.Builder) {
		b.Integer("id")
		b.String("title")
		b.Decimal("price")
		b.Date("published_on")
		b.Boolean("ebook_available")
		b.Boolean("used")
		b.Float("shipping_weight")
		b.Time("created_at")
		b.Time("updated_at")
		b.TimeZone("time_zone")
		b.Array("numbers")
		b.Hash("location")
		b.HasMany("chapters")
		b.HasMany("readers")
	})

	l.Reader = define("Reader", func(b *attribution.Builder) {
		b.Integer("id")
	})

	l.Chapter = define("Chapter", func(b *attribution.Builder) {
		b.Integer("id")
		b.Integer("number", attribution.Required(), attribution.Doc("Starts from 1"))
		b.String("title")
		b.Integer("page_number")
		b.BelongsTo("book")
		b.HasMany("pages")
	})

	l.Page = define("Page", func(b *attribution.Builder) {
		b.Integer("id")
		b.Integer("page_number")
		b.BelongsTo("book")
	})

	l.Parent = define("Parent", func(b *attribution.Builder) {
		b.String("foo")
	})
	l.Child = define("Child", func(b *attribution.Builder) {
		b.Extends(l.Parent)
		b.String("bar")
	})
	l.Grandchild = define("Grandchild", func(b *attribution.Builder) {
		b.Extends(l.Child)
		b.String("baz")
	})

	l.Album = define("Music.Album", func(b *attribution.Builder) {
		b.HasMany("tracks")
		b.String("artist")
		b.String("title")
	})
	l.Track = define("Music.Track", func(b *attribution.Builder) {
		b.BelongsTo("album")
		b.Integer("number")
		b.String("title")
	})

	l.StoreModel = define("StoreModel", func(b *attribution.Builder) {
		b.Autoload(false)
	})
	l.Product = define("Product", func(b *attribution.Builder) {
		b.Extends(l.StoreModel)
		b.Integer("id")
		b.HasMany("orders")
	})
	l.Order = define("Order", func(b *attribution.Builder) {
		b.Extends(l.StoreModel)
		b.Integer("id")
		b.BelongsTo("product")
	})

	require.NoError(t, s.Validate())

	bind := func(c *attribution.Class) *mock.Source {
		src := mock.New(c.Name())
		datastore.Bind(c, src)
		return src
	}
	l.books = bind(l.Book)
	l.readers = bind(l.Reader)
	l.chapters = bind(l.Chapter)
	l.pages = bind(l.Page)
	l.products = bind(l.Product)
	l.orders = bind(l.Order)
	l.albums = bind(l.Album)
	l.tracks = bind(l.Track)

	return l
}

func (l *library) build(t *testing.T, c *attribution.Class, input any) *attribution.Record {
	t.Helper()
	r, err := c.New(input)
	require.NoError(t, err)
	return r
}
