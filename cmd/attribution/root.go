/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suparena/attribution"
	"github.com/suparena/attribution/config"
	"github.com/suparena/attribution/manifest"
)

var (
	// Global flags
	envFile      string
	manifestFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "attribution",
	Short: "Typed attributes and associations for plain data",
	Long: `attribution declares classes of typed attributes and associations
and builds records from JSON input.

Examples:
  attribution coerce date "2010-03-09"
  attribution describe -f library.yaml Book
  attribution build -f library.yaml Book book.json`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file with ATTRIBUTION_* settings")
}

// loadSchema builds a schema from the env config and declares the manifest's
// classes in it.
func loadSchema(cmd *cobra.Command) (*attribution.Schema, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	opts, err := attribution.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, attribution.WithLogger(cfg.Logger(cmd.ErrOrStderr())))

	s := attribution.NewSchema(opts...)
	if manifestFile == "" {
		return nil, fmt.Errorf("a manifest is required (-f)")
	}
	if _, err := manifest.LoadFile(manifestFile, s); err != nil {
		return nil, err
	}
	return s, nil
}

func lookupClass(s *attribution.Schema, name string) (*attribution.Class, error) {
	c, ok := s.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("class %q not declared in %s", name, manifestFile)
	}
	return c, nil
}
