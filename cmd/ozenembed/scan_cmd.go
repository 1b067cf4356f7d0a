package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ozenlabs/ozenembed/internal/scan"
	"github.com/ozenlabs/ozenembed/internal/snippet"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	var glob string
	var format string

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a directory for audio files and print a snippet for each",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindSnippetFlags(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			scanner, err := scan.New(root, glob)
			if err != nil {
				return err
			}
			matches, err := scanner.Scan()
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				slog.Warn("no audio files matched", "dir", scanner.Root())
				return nil
			}

			opts := snippetOptions()
			out := cmd.OutOrStdout()

			switch format {
			case "yaml":
				manifest := &scan.Manifest{
					Viewer:   opts.ViewerURL,
					Overlays: snippet.NormalizeOverlays(opts.Overlays),
				}
				for _, m := range matches {
					s, err := snippet.Build(filepath.Join(scanner.Root(), m), opts)
					if err != nil {
						return err
					}
					manifest.Embeds = append(manifest.Embeds, scan.Embed{Audio: m, Src: s.Src})
				}
				data, err := manifest.YAML()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, string(data))
				return err

			case "html":
				for _, m := range matches {
					s, err := snippet.Build(filepath.Join(scanner.Root(), m), opts)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "<!-- %s -->\n%s\n\n", m, s.HTML)
				}
				return nil

			default:
				return fmt.Errorf("unknown format '%s', expected html or yaml", format)
			}
		},
	}

	cmd.Flags().SortFlags = false
	addSnippetFlags(cmd)
	cmd.Flags().StringVarP(&glob, "glob", "g", "", "glob pattern override (default matches common audio extensions)")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html or yaml")

	return cmd
}
