package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ozenlabs/ozenembed/internal/snippet"
)

var (
	home, _        = os.UserHomeDir()
	configFileName = "ozenembed"
)

// loadConfig wires the precedence chain: flags > OZENEMBED_* env vars >
// config file > built in defaults.
func loadConfig(cmd *cobra.Command) error {
	if cfgFlag := cmd.Flag("config"); cfgFlag != nil && cfgFlag.Changed {
		viper.SetConfigFile(cfgFlag.Value.String())
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(home, ".config", "ozenembed"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("yaml")
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	// Set up environment variables
	viper.SetEnvPrefix("OZENEMBED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return nil
}

// addSnippetFlags declares the flags shared by every snippet producing
// command.
func addSnippetFlags(cmd *cobra.Command) {
	cmd.Flags().String("viewer-url", snippet.DefaultViewerURL, "viewer page the iframe points at")
	cmd.Flags().String("overlays", snippet.DefaultOverlays, "comma separated overlay names")
	cmd.Flags().String("height", snippet.DefaultHeight, "iframe height in px")
	cmd.Flags().String("width", snippet.DefaultWidth, "iframe width")
}

// bindSnippetFlags binds the executing command's snippet flags over the
// config file values. Each command binds from its own PreRunE so the flag
// instances stay per command.
func bindSnippetFlags(cmd *cobra.Command) {
	viper.SetDefault("viewer_url", snippet.DefaultViewerURL)
	viper.SetDefault("overlays", snippet.DefaultOverlays)
	viper.SetDefault("height", snippet.DefaultHeight)
	viper.SetDefault("width", snippet.DefaultWidth)

	viper.BindPFlag("viewer_url", cmd.Flags().Lookup("viewer-url"))
	viper.BindPFlag("overlays", cmd.Flags().Lookup("overlays"))
	viper.BindPFlag("height", cmd.Flags().Lookup("height"))
	viper.BindPFlag("width", cmd.Flags().Lookup("width"))
}

func snippetOptions() snippet.Options {
	return snippet.Options{
		ViewerURL: viper.GetString("viewer_url"),
		Overlays:  viper.GetString("overlays"),
		Height:    viper.GetString("height"),
		Width:     viper.GetString("width"),
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := jsonMarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
