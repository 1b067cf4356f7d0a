package main

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ozenlabs/ozenembed/internal/snippet"
)

func init() {
	rootCmd.AddCommand(newDataURICmd())
}

func newDataURICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datauri <audio-file>",
		Aliases: []string{"data-uri"},
		Short:   "Print a self contained snippet with the audio inlined as a data URL",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindSnippetFlags(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			s, size, err := snippet.BuildDataURI(args[0], snippetOptions())
			if err != nil {
				return err
			}

			if size > snippet.DataURLSoftLimit {
				slog.Warn("inlined audio is large, the embedding page will be slow to load",
					"size", humanize.Bytes(uint64(size)),
					"recommended", humanize.Bytes(uint64(snippet.DataURLSoftLimit)))
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(cmd, s)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.HTML)
			return err
		},
	}

	cmd.Flags().SortFlags = false
	addSnippetFlags(cmd)
	cmd.Flags().Bool("json", false, "print the snippet as JSON instead of HTML")

	return cmd
}
