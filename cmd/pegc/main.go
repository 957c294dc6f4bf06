// Command pegc is the grammar-DSL front end's command line: compile a
// `.peg` grammar source into a runtime rule tree, run it against an
// input, or round-trip a grammar back to canonical text. Structured as
// a spf13/cobra tree (grounded on open-policy-agent-opa's cmd/commands.go
// root-command-plus-init* shape) rather than the teacher's hand-rolled
// flag.FlagSet dispatch, since cobra is the dominant CLI idiom across
// the retrieved pack's compiler-shaped repos.
package main

import (
	"os"

	"github.com/abstractparser/pegc/internal/logx"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "pegc",
		Short:         "pegc: a packrat parser-combinator runtime with a grammar DSL front end",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withLogger(cmd.Context(), logx.New(verbose)))
	}

	root.AddCommand(newBuildCommand())
	root.AddCommand(newParseCommand())
	root.AddCommand(newFmtCommand())
	return root
}
