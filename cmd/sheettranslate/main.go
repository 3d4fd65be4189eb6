package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sheettranslate/internal"
	"codeberg.org/snonux/sheettranslate/internal/archive"
	"codeberg.org/snonux/sheettranslate/internal/cli"
	"codeberg.org/snonux/sheettranslate/internal/config"
	"codeberg.org/snonux/sheettranslate/internal/logging"
	"codeberg.org/snonux/sheettranslate/internal/models"
	"codeberg.org/snonux/sheettranslate/internal/pacing"
	"codeberg.org/snonux/sheettranslate/internal/processor"
	"codeberg.org/snonux/sheettranslate/internal/sheet"
	"codeberg.org/snonux/sheettranslate/internal/translation"
)

const (
	previewRows  = 5
	previewWidth = 40
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Load secrets and config before the run function
	var initErr error
	cobra.OnInitialize(func() {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
		}
		initErr = cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runCommand(ctx, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	v := viper.GetViper()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewListerWithConfig(config.OpenAIKey(v), v.GetString("settings.base_url"))
		return lister.ListCompletionModels(ctx, os.Stdout)
	}

	s, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := zerolog.InfoLevel
	if flags.Verbose {
		level = zerolog.DebugLevel
	}
	log, logCloser, err := logging.Setup(os.Stderr, s.LogFile, level)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	log.Info().
		Str("version", internal.Version).
		Str("language", s.TargetLang).
		Str("file", s.SourceFile).
		Str("sheet", s.SheetName).
		Int("batch_size", s.RowsPerBatch).
		Dur("interval", s.BatchInterval).
		Str("provider", s.Provider).
		Str("model", s.Model).
		Msg("Starting translation")

	// Handle --archive flag
	if flags.Archive {
		dst, err := archive.ArchiveFile(s.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to archive previous output: %w", err)
		}
		if dst != "" {
			log.Info().Str("file", dst).Msg("Archived previous output")
		}
	}

	apiKey, err := s.APIKey(v)
	if err != nil {
		return err
	}
	completer, err := translation.NewCompleter(ctx, s, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", s.Provider, err)
	}
	translator, err := translation.New(s, completer)
	if err != nil {
		return err
	}

	pacer, err := pacing.New(s.Pacing, s.BatchInterval)
	if err != nil {
		return err
	}

	table, err := sheet.Load(s.SourceFile, s.SheetName)
	if err != nil {
		return err
	}
	log.Info().Int("rows", table.Len()).Strs("header", table.Header).Msg("Loaded sheet")
	for i, row := range table.Head(previewRows) {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = internal.Truncate(cell, previewWidth)
		}
		log.Debug().Int("row", i+1).Strs("cells", cells).Msg("Preview")
	}

	bar := progressbar.NewOptions(table.Len(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Translating"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	proc := processor.NewProcessor(s, processor.Options{
		Translator: translator,
		Pacer:      pacer,
		Progress:   bar,
		Save: func(t *sheet.Table) error {
			return sheet.Save(t, s.OutputFile, s.SheetName)
		},
		Logger: log,
	})

	summary, err := proc.Run(ctx, table)
	if err != nil {
		log.Error().Err(err).Str("output", s.OutputFile).Msg("Translation aborted")
		return err
	}

	log.Info().
		Str("output", s.OutputFile).
		Int("rows", summary.Rows).
		Int("batches", summary.Batches).
		Int("requests", summary.Requests).
		Int("translated", summary.Translated).
		Int("empty", summary.Empty).
		Msgf("Translation completed, saved to %s", s.OutputFile)
	return nil
}
