package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ozenlabs/ozenembed/internal/utils"
	"github.com/ozenlabs/ozenembed/internal/version"
)

var cyan = color.New(color.FgHiCyan).SprintFunc()

var logLevel = new(slog.LevelVar)

var rootCmd = &cobra.Command{
	Use:   "ozenembed [audio-file]",
	Short: "Generate HTML embed snippets for the Ozen audio viewer",
	Long: `ozenembed generates HTML iframe snippets that embed the Ozen audio viewer
into documentation pages. Point it at an audio file to get a snippet whose
audio path is computed relative to the viewer page, so the snippet keeps
working when the whole doc tree moves.`,
	Version: version.Detailed(),
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logLevel.Set(slog.LevelDebug)
		}
		return loadConfig(cmd)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		bindSnippetFlags(cmd)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// bare invocation with an audio file behaves like "embed"
		if len(args) == 0 {
			return cmd.Help()
		}
		return runEmbed(cmd, args[0])
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	addSnippetFlags(rootCmd)
	rootCmd.Flags().Bool("json", false, "print the snippet as JSON instead of HTML")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default searches . and ~/.config/ozenembed)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	// publish credentials usually live in a local .env
	if utils.FileExists(".env") {
		_ = godotenv.Load()
	}

	// logs go to stderr so stdout stays clean for piping snippets
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
