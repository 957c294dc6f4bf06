package main

import (
	"fmt"
	"os"

	"github.com/abstractparser/pegc/internal/emitter"
	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/abstractparser/pegc/internal/rule"
	"github.com/abstractparser/pegc/internal/stream"
	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	var full bool
	var inputFile string

	cmd := &cobra.Command{
		Use:   "parse <grammar.peg> <rule> [input]",
		Short: "build a grammar then run one rule against an input",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFrom(cmd.Context())
			grammarPath, ruleName := args[0], args[1]

			src, err := os.ReadFile(grammarPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", grammarPath, err)
			}

			f, errs := grammar.ParseFile(string(src))
			if errs.HasErrors() {
				return fmt.Errorf("parsing %s:\n%s", grammarPath, errs.String())
			}

			g, err := emitter.Build(f)
			if err != nil {
				return fmt.Errorf("emitting %s: %w", grammarPath, err)
			}
			log.GrammarLoaded(grammarPath, len(g.Order))

			target, ok := g.Rule(ruleName)
			if !ok {
				return fmt.Errorf("rule %q not found in %s", ruleName, grammarPath)
			}

			input, err := readInput(args, inputFile)
			if err != nil {
				return err
			}

			s := rule.NewCharStream(stream.New(input))
			var value any
			var perr *rule.ParseError
			if full {
				value, perr = rule.FullParse(s, target)
			} else {
				value, perr = rule.Parse(s, target)
			}
			if perr != nil {
				return fmt.Errorf("%s: residue %q", perr.Error(), perr.Residue)
			}

			fmt.Printf("%#v\n", value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "require the entire input to be consumed")
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read input from a file instead of the third argument")
	return cmd
}

func readInput(args []string, inputFile string) (string, error) {
	if inputFile != "" {
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("reading input file %s: %w", inputFile, err)
		}
		return string(b), nil
	}
	if len(args) < 3 {
		return "", fmt.Errorf("no input given: pass an input argument or --file")
	}
	return args[2], nil
}
