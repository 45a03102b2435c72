package cmd

import (
	"github.com/spf13/cobra"

	"github.com/glebzikunov/MTRAN/internal/compiler"
	"github.com/glebzikunov/MTRAN/internal/logging"
	"github.com/glebzikunov/MTRAN/internal/tui/explorer"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse the tree, diagnostics and source interactively",
	Long: `Opens a full-screen explorer with three panes: the syntax tree, the
diagnostics and the numbered source. Press r to re-run the compiler
after editing the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		// The alternate screen owns the terminal, so nothing is logged.
		logger = logging.Discard()
		compile := func() (*compiler.Result, error) {
			return compiler.CompileFile(path, compileOptions()...)
		}
		r, err := compile()
		if err != nil {
			return err
		}
		return explorer.Run(r, explorer.Config{Reload: compile, Indent: cfg.Tree.Indent})
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
