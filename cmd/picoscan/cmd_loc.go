package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava12/picoscan/source"
)

func newLocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loc <file> <offset>",
		Short: "Print line and column of a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}

			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			line, col := source.New(args[0], string(data)).LineCol(offset)
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\n", line, col)
			return nil
		},
	}
}
