/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build -f <manifest> <class> [file|-]",
	Short: "Build a record from JSON and print its attributes",
	Long: `Build a record of a declared class from a JSON object and print the
coerced attributes as JSON, in declaration order. Input is read from the
named file, or from stdin when the file is "-" or omitted.

Examples:
  attribution build -f library.yaml Book book.json
  echo '{"id":"1"}' | attribution build -f library.yaml Book`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&manifestFile, "file", "f", "", "class manifest (YAML)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	c, err := lookupClass(s, args[0])
	if err != nil {
		return err
	}

	input, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}
	r, err := c.New(input)
	if err != nil {
		return err
	}

	data, err := r.ToJSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
