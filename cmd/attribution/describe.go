/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suparena/attribution"
)

var describeCmd = &cobra.Command{
	Use:   "describe -f <manifest> [class...]",
	Short: "Show the attributes and associations of declared classes",
	Long: `Describe classes declared in a manifest, including inherited members
and the foreign keys belongs_to associations add.

Examples:
  attribution describe -f library.yaml
  attribution describe -f library.yaml Book Chapter`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&manifestFile, "file", "f", "", "class manifest (YAML)")
}

type classDescription struct {
	Name         string                              `yaml:"name"`
	Extends      string                              `yaml:"extends,omitempty"`
	Autoload     bool                                `yaml:"autoload"`
	Attributes   []attribution.AttributeDefinition   `yaml:"attributes"`
	Associations []attribution.AssociationDefinition `yaml:"associations,omitempty"`
}

func describe(c *attribution.Class) classDescription {
	d := classDescription{
		Name:         c.Name(),
		Autoload:     c.AutoloadAssociations(),
		Attributes:   c.Attributes(),
		Associations: c.Associations(),
	}
	if p := c.Parent(); p != nil {
		d.Extends = p.Name()
	}
	return d
}

func runDescribe(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(cmd)
	if err != nil {
		return err
	}

	classes := s.Classes()
	if len(args) > 0 {
		classes = classes[:0:0]
		for _, name := range args {
			c, err := lookupClass(s, name)
			if err != nil {
				return err
			}
			classes = append(classes, c)
		}
	}

	out := make([]classDescription, 0, len(classes))
	for _, c := range classes {
		out = append(out, describe(c))
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
