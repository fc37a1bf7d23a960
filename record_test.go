/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/attribution"
	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/errors"
)

func date(y int, m time.Month, d int) strfmt.Date {
	return strfmt.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

const reworkJSON = `{
	"id": 1,
	"title": "Rework",
	"price": "22.00",
	"published_on": "March 9, 2010",
	"ebook_available": "yes",
	"used": "no",
	"shipping_weight": "14.4",
	"created_at": "2013-02-20 05:39:45 -0500",
	"updated_at": "2013-02-20T05:40:37-05:00",
	"time_zone": "Eastern Time (US & Canada)",
	"chapters": [
		{"number": "1", "title": "Introduction", "page_number": "1"},
		{"number": "2", "title": "Takedowns", "page_number": "7"},
		{"number": "3", "title": "Go", "page_number": "29"}
	]
}`

func TestCreateFromJSON(t *testing.T) {
	l := newLibrary(t)
	ctx := context.Background()

	book := l.build(t, l.Book, reworkJSON)

	assert.Equal(t, int64(1), book.ID())

	title, ok := book.Text("title")
	assert.True(t, ok)
	assert.Equal(t, "Rework", title)

	price, ok := book.Decimal("price")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("22.00").Equal(price))

	published, ok := book.Date("published_on")
	require.True(t, ok)
	assert.Equal(t, date(2010, time.March, 9), published)

	ebook, ok := book.Bool("ebook_available")
	assert.True(t, ok)
	assert.True(t, ebook)
	ebook, ok = book.Is("ebook_available")
	assert.True(t, ok)
	assert.True(t, ebook)

	used, ok := book.Bool("used")
	assert.True(t, ok)
	assert.False(t, used)
	used, ok = book.Is("used")
	assert.True(t, ok)
	assert.False(t, used)

	weight, ok := book.Float("shipping_weight")
	assert.True(t, ok)
	assert.Equal(t, 14.4, weight)

	est := time.FixedZone("EST", -5*3600)
	created, ok := book.Time("created_at")
	require.True(t, ok)
	assert.True(t, time.Date(2013, 2, 20, 5, 39, 45, 0, est).Equal(created), "created_at = %v", created)

	updated, ok := book.Time("updated_at")
	require.True(t, ok)
	assert.True(t, time.Date(2013, 2, 20, 5, 40, 37, 0, est).Equal(updated), "updated_at = %v", updated)

	zone, ok := book.TimeZone("time_zone")
	require.True(t, ok)
	assert.Equal(t, "America/New_York", zone.String())

	chapters, err := book.HasMany(ctx, "chapters")
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	number, _ := chapters[0].Int("number")
	assert.Equal(t, int64(1), number)
	page, _ := chapters[2].Int("page_number")
	assert.Equal(t, int64(29), page)

	owner, err := chapters[0].BelongsTo(ctx, "book")
	require.NoError(t, err)
	assert.Same(t, book, owner)
	assert.Equal(t, int64(1), chapters[0].Get("book_id"))

	assert.Empty(t, l.books.FindCalls())
	assert.Empty(t, l.chapters.AllCalls())
}

func TestAttributesIntrospection(t *testing.T) {
	l := newLibrary(t)

	assert.Equal(t, []attribution.AttributeDefinition{
		{Name: "id", Type: coerce.Integer},
		{Name: "number", Type: coerce.Integer, Required: true, Doc: "Starts from 1"},
		{Name: "title", Type: coerce.String},
		{Name: "page_number", Type: coerce.Integer},
		{Name: "book_id", Type: coerce.Integer},
	}, l.Chapter.Attributes())

	chapter := l.build(t, l.Chapter, map[string]any{"number": "1"})
	assert.Equal(t, map[string]any{
		"id":          nil,
		"number":      int64(1),
		"title":       nil,
		"page_number": nil,
		"book_id":     nil,
	}, chapter.ToMap())
}

func TestDateFromParts(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]any
		want  any
	}{
		{"full", map[string]any{"year": "2013", "month": "03", "day": "17"}, date(2013, time.March, 17)},
		{"just year", map[string]any{"year": "2013", "month": "", "day": ""}, date(2013, time.January, 1)},
		{"year and month", map[string]any{"year": "2013", "month": "5", "day": ""}, date(2013, time.May, 1)},
		{"empty", map[string]any{"year": "", "month": "", "day": ""}, nil},
	}

	l := newLibrary(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := l.build(t, l.Book, map[string]any{"published_on": tt.parts})
			assert.Equal(t, tt.want, book.Get("published_on"))
		})
	}
}

func TestTimeFromParts(t *testing.T) {
	local := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}
	tests := []struct {
		name  string
		parts map[string]any
		want  time.Time
	}{
		{
			"with offset",
			map[string]any{"year": "2013", "month": "03", "day": "17", "hour": "07", "min": "30", "sec": "11", "utc_offset": "3600"},
			time.Date(2013, 3, 17, 7, 30, 11, 0, time.FixedZone("", 3600)),
		},
		{"just year", map[string]any{"year": "2013"}, local(2013, time.January, 1)},
		{"year and month", map[string]any{"year": "2013", "month": "03"}, local(2013, time.March, 1)},
		{"year month day", map[string]any{"year": "2013", "month": "03", "day": "17"}, local(2013, time.March, 17)},
	}

	l := newLibrary(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := l.build(t, l.Book, map[string]any{"created_at": tt.parts})
			got, ok := book.Time("created_at")
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		book := l.build(t, l.Book, map[string]any{"created_at": map[string]any{
			"year": "", "month": "", "day": "", "hour": "", "min": "", "sec": "", "utc_offset": "",
		}})
		assert.Nil(t, book.Get("created_at"))
	})
}

func TestNothingSupplied(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, nil)

	for _, name := range l.Book.AttributeNames() {
		assert.Nil(t, book.Get(name), name)
		assert.False(t, book.Has(name), name)
	}
	_, ok := book.Array("numbers")
	assert.False(t, ok)
	_, ok = book.Hash("location")
	assert.False(t, ok)

	chapters, err := book.HasMany(context.Background(), "chapters")
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestNilSupplied(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, map[string]any{
		"id":              nil,
		"title":           nil,
		"price":           nil,
		"published_on":    nil,
		"ebook_available": nil,
		"used":            nil,
		"shipping_weight": nil,
		"created_at":      nil,
		"time_zone":       nil,
		"numbers":         nil,
		"location":        nil,
	})

	for _, name := range []string{"id", "title", "price", "published_on", "ebook_available", "used", "shipping_weight", "created_at", "time_zone"} {
		assert.Nil(t, book.Get(name), name)
		assert.True(t, book.Has(name), name)
	}
	_, ok := book.Bool("used")
	assert.False(t, ok)
	_, ok = book.Is("used")
	assert.False(t, ok)

	numbers, ok := book.Array("numbers")
	assert.True(t, ok)
	assert.Equal(t, []any{}, numbers)

	location, ok := book.Hash("location")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{}, location)

	chapters, err := book.HasMany(context.Background(), "chapters")
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestArrayAndHash(t *testing.T) {
	l := newLibrary(t)

	book := l.build(t, l.Book, map[string]any{"numbers": 42})
	assert.Equal(t, []any{42}, book.Get("numbers"))

	book = l.build(t, l.Book, `{"numbers": [1, 2, 3]}`)
	numbers, _ := book.Array("numbers")
	assert.Len(t, numbers, 3)

	location := map[string]any{"lat": 39.27983915, "lon": -76.60873889}
	book = l.build(t, l.Book, map[string]any{"location": location})
	got, ok := book.Hash("location")
	require.True(t, ok)
	assert.Equal(t, 39.27983915, got.(map[string]any)["lat"])
	assert.Equal(t, -76.60873889, got.(map[string]any)["lon"])
}

func TestSetAttributes(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, nil)

	require.NoError(t, book.SetAttributes(map[string]any{"title": "Whatever", "price": 50, "foo": "bar"}))

	title, _ := book.Text("title")
	assert.Equal(t, "Whatever", title)
	price, _ := book.Decimal("price")
	assert.True(t, decimal.NewFromInt(50).Equal(price))
	assert.Nil(t, book.ID())
	assert.Nil(t, book.Get("foo"))
}

func TestSet(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, nil)

	require.NoError(t, book.Set("shipping_weight", "2.5"))
	weight, _ := book.Float("shipping_weight")
	assert.Equal(t, 2.5, weight)

	err := book.Set("isbn", "123")
	assert.ErrorIs(t, err, errors.ErrUnknownAttribute)

	err = book.Set("time_zone", "Atlantis/Lost")
	assert.True(t, errors.IsUnknownTimeZone(err))
}

func TestCoercionIsIdempotent(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, reworkJSON)
	require.NoError(t, book.SetAttributes(map[string]any{
		"numbers":  []any{1, 2},
		"location": map[string]any{"lat": 1.5},
	}))

	again := l.build(t, l.Book, book.ToMap())
	assert.Equal(t, book.ToMap(), again.ToMap())
}

func TestUnknownInputKeysAreIgnored(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, map[string]any{"id": 1, "foo": "bar"})

	assert.Nil(t, book.Get("foo"))
	assert.NotContains(t, book.ToMap(), "foo")
}

func TestJSONAndMapInputAgree(t *testing.T) {
	l := newLibrary(t)

	tests := []struct {
		name string
		json string
		raw  map[string]any
	}{
		{"nonzero integer", `{"used": 2, "ebook_available": 1}`, map[string]any{"used": 2, "ebook_available": 1}},
		{"fraction", `{"used": 0.5, "ebook_available": 1.0}`, map[string]any{"used": 0.5, "ebook_available": 1.0}},
		{"zero", `{"used": 0, "ebook_available": 0.0}`, map[string]any{"used": 0, "ebook_available": 0.0}},
		{"large id", `{"id": 99999999999999999999}`, map[string]any{"id": "99999999999999999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromJSON := l.build(t, l.Book, tt.json)
			fromMap := l.build(t, l.Book, tt.raw)
			for _, name := range []string{"id", "used", "ebook_available"} {
				assert.Equal(t, fromMap.Get(name), fromJSON.Get(name), name)
			}
		})
	}

	used, ok := l.build(t, l.Book, `{"used": 2}`).Bool("used")
	require.True(t, ok)
	assert.True(t, used)
	assert.Nil(t, l.build(t, l.Book, `{"id": 99999999999999999999}`).ID())
}

func TestNewRejectsBadInput(t *testing.T) {
	l := newLibrary(t)

	_, err := l.Book.New(`{"id": `)
	assert.True(t, errors.IsValidationError(err))

	_, err = l.Book.New(42)
	assert.True(t, errors.IsValidationError(err))

	_, err = l.Book.New(`{"time_zone": "Atlantis/Lost"}`)
	assert.ErrorIs(t, err, errors.ErrUnknownTimeZone)

	_, err = l.Book.New(map[string]any{"chapters": "none"})
	assert.True(t, errors.IsValidationError(err))

	_, err = l.Book.New(map[string]any{"chapters": map[string]any{"first": map[string]any{}}})
	assert.True(t, errors.IsValidationError(err))
}

func TestNewFromStringMap(t *testing.T) {
	l := newLibrary(t)
	book := l.build(t, l.Book, map[string]string{"id": "7", "title": "Getting Real"})

	assert.Equal(t, int64(7), book.ID())
	title, _ := book.Text("title")
	assert.Equal(t, "Getting Real", title)
}

func TestSchemaNew(t *testing.T) {
	l := newLibrary(t)

	track, err := l.schema.New("Music.Track", map[string]any{"number": 1})
	require.NoError(t, err)
	assert.Equal(t, l.Track, track.Class())

	_, err = l.schema.New("Music.Missing", nil)
	assert.ErrorIs(t, err, errors.ErrUnresolvedClass)
}
