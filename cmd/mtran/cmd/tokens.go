package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glebzikunov/MTRAN/internal/compiler"
	"github.com/glebzikunov/MTRAN/internal/diag"
	"github.com/glebzikunov/MTRAN/internal/lexer"
	"github.com/glebzikunov/MTRAN/internal/tokentab"
)

var (
	tokensTable  string
	tokensUnique bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token tables of a source file",
	Long: `Lexes a source file and prints its tokens as tables. By default all
tables are printed; --table selects one of:
  all, literals, reserved, operators, ids, numbers, strings`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensTable, "table", "t", "", "print only this table")
	tokensCmd.Flags().BoolVarP(&tokensUnique, "unique", "u", true, "keep only the first occurrence of each token")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	kinds := tokentab.Kinds
	if tokensTable != "" {
		k, err := tokentab.ParseKind(tokensTable)
		if err != nil {
			return err
		}
		kinds = []tokentab.Kind{k}
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	toks, err := lexer.Tokenize(string(data))
	if err != nil {
		d := compiler.Diagnose(err)
		rd := diag.Renderer{Color: cfg.General.Color}
		if err := rd.Render(w, args[0], string(data), []diag.Diagnostic{d}); err != nil {
			return err
		}
		return errFailed
	}
	logger.Debug("lexed", "file", args[0], "tokens", len(toks))

	for i, k := range kinds {
		if i > 0 {
			fmt.Fprintln(w)
		}
		tb := tokentab.Build(toks, k, tokensUnique)
		fmt.Fprintf(w, "%s:\n%s\n", k.Title(), tb.Render(cfg.General.Color))
	}
	return nil
}
