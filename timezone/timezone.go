/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package timezone

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/suparena/attribution/errors"
)

// Directory resolves a zone name to a location.
// Unknown names are an error, never a silent fallback.
type Directory interface {
	Lookup(name string) (*time.Location, error)
}

// DirectoryFunc adapts a plain function to Directory.
type DirectoryFunc func(name string) (*time.Location, error)

// Lookup calls f(name).
func (f DirectoryFunc) Lookup(name string) (*time.Location, error) {
	return f(name)
}

// Catalog is a Directory that accepts friendly zone names (as used by Rails,
// e.g. "Eastern Time (US & Canada)") as well as IANA names.
type Catalog struct {
	mu      sync.RWMutex
	aliases map[string]string
	cache   map[string]*time.Location
}

// NewCatalog creates a catalog preloaded with the friendly names in DefaultAliases.
func NewCatalog() *Catalog {
	c := &Catalog{
		aliases: make(map[string]string, len(DefaultAliases)),
		cache:   make(map[string]*time.Location),
	}
	for name, iana := range DefaultAliases {
		c.aliases[name] = iana
	}
	return c
}

// Alias maps a friendly name onto an IANA zone name.
func (c *Catalog) Alias(name, iana string) error {
	if _, err := time.LoadLocation(iana); err != nil {
		return fmt.Errorf("alias %q: %w", name, errors.NewUnknownTimeZoneError(iana))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[name] = iana
	delete(c.cache, name)
	return nil
}

// LoadYAML reads a mapping of friendly name to IANA name and adds every entry.
func (c *Catalog) LoadYAML(r io.Reader) error {
	var aliases map[string]string
	if err := yaml.NewDecoder(r).Decode(&aliases); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("parse zone aliases: %w", err)
	}
	for name, iana := range aliases {
		if err := c.Alias(name, iana); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads zone aliases from a YAML file.
func (c *Catalog) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read zone aliases: %w", err)
	}
	defer f.Close()
	return c.LoadYAML(f)
}

// Lookup resolves a friendly or IANA name.
func (c *Catalog) Lookup(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)

	c.mu.RLock()
	loc, cached := c.cache[name]
	iana, aliased := c.aliases[name]
	c.mu.RUnlock()
	if cached {
		return loc, nil
	}
	if !aliased {
		iana = name
	}

	// LoadLocation treats "" as UTC and "Local" as the host zone; neither is a zone name here.
	if iana == "" || iana == "Local" {
		return nil, errors.NewUnknownTimeZoneError(name)
	}
	loc, err := time.LoadLocation(iana)
	if err != nil {
		return nil, errors.NewUnknownTimeZoneError(name)
	}

	c.mu.Lock()
	c.cache[name] = loc
	c.mu.Unlock()
	return loc, nil
}

// Names returns the friendly names known to the catalog.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.aliases))
	for name := range c.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
