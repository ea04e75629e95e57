package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/faq/internal/app"
)

var (
	verbose bool
	noColor bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "faq",
	Short: "Sentinel Secure Services FAQ assistant",
	Long:  "Answers client questions from a curated knowledge base using deterministic keyword scoring.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := os.Getenv(app.EnvLogLevel)
		if level == "" {
			level = "warn"
		}
		var err error
		logger, err = app.NewLogger(level, verbose)
		if err != nil {
			return err
		}
		useColor = resolveColor(noColor)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
}
