package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/glebzikunov/MTRAN/internal/config"
	"github.com/glebzikunov/MTRAN/internal/logging"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
)

// errFailed marks a run that reported diagnostics. They have already been
// printed, so Execute only sets the exit status.
var errFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:   "mtran",
	Short: "Front end for a small C-like language",
	Long: `mtran lexes, parses and type-checks programs written in a small
C-like language and reports lexical, syntax and semantic errors.

Commands:
  check   - full pipeline with diagnostics
  tree    - print the syntax tree
  tokens  - print token tables
  view    - interactive explorer`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: mtran.toml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		c.General.Color = false
	}
	lc := c.Logger("mtran")
	if verbose {
		lc.Level = logging.LevelDebug.String()
	}
	cfg = c
	logger = logging.New(lc)
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if path, ok := config.Discover("."); ok {
		return config.Load(path)
	}
	return config.Default(), nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
