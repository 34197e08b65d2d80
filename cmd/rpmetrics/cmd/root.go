// Package cmd implements the rpmetrics command-line interface.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
)

var configFile string

// Version information set by main.
var (
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rpmetrics",
	Short: "Open access publishing metrics pipeline",
	Long: `rpmetrics merges the CAUL journal list with SCImago, JCR and
CiteScore exports and the Cap and Link agreement metadata into one
journal-level report.

Each source lives in its own subfolder of the input root; the pipeline
normalizes ISSNs, reconciles conflicting values, and writes a CSV plus
a markdown summary report.`,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errors.ErrInputRootMissing) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.rpmetrics.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log warnings and errors")

	cobra.CheckErr(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))
	cobra.CheckErr(viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Load .env if present; environment always wins over config files.
	_ = godotenv.Load()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".rpmetrics")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RPMETRICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; anything else is worth a warning.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configFile != "" {
			logging.Default().Warn().Err(err).Msg("Failed to read config file")
		}
	}
}

// setup configures logging before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	switch {
	case viper.GetBool("verbose"):
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case viper.GetBool("quiet"):
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	return nil
}
