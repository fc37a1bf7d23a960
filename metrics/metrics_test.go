/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := New(Config{Labels: map[string]string{"service": "catalog"}})

	c.Lookup("Book", "chapters", "has_many")
	c.Lookup("Book", "chapters", "has_many")
	c.LookupError("Chapter", "book", "belongs_to")
	c.Resolved("Book", "chapters", "has_many", OutcomeCached)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.lookupsTotal.WithLabelValues("Book", "chapters", "has_many")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lookupErrors.WithLabelValues("Chapter", "book", "belongs_to")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolvedTotal.WithLabelValues("Book", "chapters", "has_many", OutcomeCached)))

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "attribution_lookups_total")
	assert.Contains(t, names, "attribution_lookup_errors_total")
	assert.Contains(t, names, "attribution_resolutions_total")
}

func TestCollectorPrefix(t *testing.T) {
	c := New(Config{Prefix: "catalog"})
	c.Lookup("Book", "readers", "has_many")

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "catalog_lookups_total", families[0].GetName())
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Lookup("Book", "chapters", "has_many")
		c.LookupError("Book", "chapters", "has_many")
		c.Resolved("Book", "chapters", "has_many", OutcomeSkipped)
	})
	assert.Nil(t, c.Registry())
}
