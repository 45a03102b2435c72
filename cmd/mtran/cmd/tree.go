package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/compiler"
	"github.com/glebzikunov/MTRAN/internal/diag"
)

var treeIndent string

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the syntax tree of a source file",
	Long: `Parses a source file without type checking and prints its syntax tree,
one node per line. Lexical and syntax errors are reported instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		r := compiler.Parse(args[0], string(data), compiler.WithLogger(logger))
		w := cmd.OutOrStdout()
		if r.Failed() {
			rd := diag.Renderer{Color: cfg.General.Color}
			if err := rd.Render(w, r.Filename, r.Source, r.Diagnostics); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %s\n", r.Filename, rd.Summary(len(r.Diagnostics), 0))
			return errFailed
		}
		indent := cfg.Tree.Indent
		if treeIndent != "" {
			indent = treeIndent
		}
		return ast.Printer{Indent: indent}.Fprint(w, r.Program)
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeIndent, "indent", "", "indentation per tree level (default from config)")
	rootCmd.AddCommand(treeCmd)
}
