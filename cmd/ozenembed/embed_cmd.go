package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozenlabs/ozenembed/internal/snippet"
)

func init() {
	rootCmd.AddCommand(newEmbedCmd())
}

func newEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed <audio-file>",
		Short: "Print an iframe snippet for a local audio file",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindSnippetFlags(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd, args[0])
		},
	}

	cmd.Flags().SortFlags = false
	addSnippetFlags(cmd)
	cmd.Flags().Bool("json", false, "print the snippet as JSON instead of HTML")

	return cmd
}

func runEmbed(cmd *cobra.Command, audioPath string) error {
	cmd.SilenceUsage = true

	s, err := snippet.Build(audioPath, snippetOptions())
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return writeJSON(cmd, s)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), s.HTML)
	return err
}
