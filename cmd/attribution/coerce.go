/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/config"
)

var coerceJSON bool

var coerceCmd = &cobra.Command{
	Use:   "coerce <kind> <value>",
	Short: "Coerce a value to an attribute kind",
	Long: `Coerce a raw value the way a record attribute of the given kind would.

Kinds: integer, string, decimal, date, boolean, float, time, time_zone,
array, hash.

With --json the value is decoded as JSON first, so numbers, arrays and
objects reach the coercer as such.

Examples:
  attribution coerce integer "42"
  attribution coerce date "2010-03-09"
  attribution coerce --json array '[1,2]'`,
	Args: cobra.ExactArgs(2),
	RunE: runCoerce,
}

func init() {
	rootCmd.AddCommand(coerceCmd)

	coerceCmd.Flags().BoolVar(&coerceJSON, "json", false, "decode the value as JSON")
}

func runCoerce(cmd *cobra.Command, args []string) error {
	kind, err := coerce.ParseKind(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	c, err := cfg.Coercer()
	if err != nil {
		return err
	}

	var raw any = args[1]
	if coerceJSON {
		if err := json.Unmarshal([]byte(args[1]), &raw); err != nil {
			return fmt.Errorf("decode value: %w", err)
		}
	}

	v, err := c.Coerce(kind, raw)
	if err != nil {
		return err
	}
	if loc, ok := v.(*time.Location); ok && loc != nil {
		v = loc.String()
	}

	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", kind, out)
	return nil
}
