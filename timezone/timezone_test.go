/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package timezone

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/attribution/errors"
)

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog()

	t.Run("FriendlyName", func(t *testing.T) {
		loc, err := c.Lookup("Eastern Time (US & Canada)")
		require.NoError(t, err)
		assert.Equal(t, "America/New_York", loc.String())

		again, err := c.Lookup("Eastern Time (US & Canada)")
		require.NoError(t, err)
		assert.Same(t, loc, again)
	})

	t.Run("IANAName", func(t *testing.T) {
		loc, err := c.Lookup("Europe/Berlin")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", loc.String())
	})

	t.Run("Unknown", func(t *testing.T) {
		for _, name := range []string{"Atlantis", "", "Local"} {
			_, err := c.Lookup(name)
			assert.True(t, errors.IsUnknownTimeZone(err), "name %q", name)
		}
	})
}

func TestCatalogAliases(t *testing.T) {
	c := NewCatalog()

	require.NoError(t, c.LoadYAML(strings.NewReader(`"Head Office": Europe/Berlin`)))
	loc, err := c.Lookup("Head Office")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
	names := c.Names()
	assert.Contains(t, names, "Head Office")
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, names, c.Names())

	err = c.Alias("Nowhere", "Mars/Olympus_Mons")
	assert.True(t, errors.IsUnknownTimeZone(err))

	require.NoError(t, c.LoadYAML(strings.NewReader("")))
}

func TestCatalogLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Warehouse: America/Chicago\n"), 0o600))

	c := NewCatalog()
	require.NoError(t, c.LoadFile(path))

	loc, err := c.Lookup("Warehouse")
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())

	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestDirectoryFunc(t *testing.T) {
	var d Directory = DirectoryFunc(func(name string) (*time.Location, error) {
		return time.UTC, nil
	})
	loc, err := d.Lookup("anything")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}
