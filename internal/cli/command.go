package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sheettranslate/internal"
)

// EnvPrefix prefixes environment overrides, e.g. SHEETTRANSLATE_SETTINGS_ROWS_PER_BATCH
const EnvPrefix = "SHEETTRANSLATE"

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheettranslate",
		Short: "Spreadsheet column translator",
		Long: `sheettranslate translates a spreadsheet column into another language
using an LLM completion API.

Rows are sent in batches; after every batch the complete table, including
the new translation columns, is written to the output workbook.

Examples:
  sheettranslate                          # Use ./config.yaml
  sheettranslate --config job.yaml        # Use a specific config file
  sheettranslate --lang German -b 20      # Override language and batch size
  sheettranslate --list-models            # Show usable OpenAI models`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.sheettranslate.yaml)")

	// Local flags
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output file into an archive directory next to it before translating")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every batch")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", flags.LogFile, "Log file mirroring the console log (empty to disable)")

	// Settings overrides
	cmd.Flags().StringVarP(&flags.TargetLang, "lang", "l", "", "Target language (settings.translate_lang)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Output workbook (settings.new_file_name)")
	cmd.Flags().IntVarP(&flags.RowsPerBatch, "batch-size", "b", flags.RowsPerBatch, "Rows per request (settings.rows_per_batch)")
	cmd.Flags().Float64Var(&flags.Interval, "interval", flags.Interval, "Seconds to pause after each batch (settings.batch_interval)")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Completion provider: openai or gemini (settings.provider)")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (settings.model)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("settings.translate_lang", cmd.Flags().Lookup("lang"))
	viper.BindPFlag("settings.new_file_name", cmd.Flags().Lookup("output"))
	viper.BindPFlag("settings.rows_per_batch", cmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("settings.batch_interval", cmd.Flags().Lookup("interval"))
	viper.BindPFlag("settings.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("settings.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("settings.log_file", cmd.Flags().Lookup("log-file"))
}

// InitConfig initializes viper configuration. A config file named with
// --config must exist; otherwise config.yaml in the working directory or
// .sheettranslate.yaml in the home directory is used when present.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	err := viper.ReadInConfig()
	if err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		return nil
	}
	if cfgFile != "" {
		return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Fall back to the dotfile in the home directory
	home, herr := os.UserHomeDir()
	if herr != nil {
		return nil
	}
	viper.AddConfigPath(home)
	viper.SetConfigName(".sheettranslate")
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}
