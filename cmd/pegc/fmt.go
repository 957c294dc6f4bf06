package main

import (
	"fmt"
	"os"

	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/spf13/cobra"
)

func newFmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <grammar.peg>",
		Short: "round-trip a grammar's AST back to canonical text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			f, errs := grammar.ParseFile(string(src))
			if errs.HasErrors() {
				return fmt.Errorf("parsing %s:\n%s", path, errs.String())
			}

			out := grammar.Format(f)
			if write {
				return os.WriteFile(path, []byte(out), 0644)
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the formatted grammar back to the file instead of stdout")
	return cmd
}
