package main

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ozenlabs/ozenembed/internal/server"
	"github.com/ozenlabs/ozenembed/internal/utils"
)

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a directory over HTTP to preview snippets locally",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			viper.SetDefault("serve.host", "localhost")
			viper.SetDefault("serve.port", 8000)
			viper.BindPFlag("serve.host", cmd.Flags().Lookup("host"))
			viper.BindPFlag("serve.port", cmd.Flags().Lookup("port"))
			viper.BindPFlag("serve.live_reload", cmd.Flags().Lookup("live-reload"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			port := viper.GetInt("serve.port")
			if port == 0 {
				// resolve upfront so the banner prints a usable URL
				free, err := utils.GetFreePort()
				if err != nil {
					return fmt.Errorf("find free port: %w", err)
				}
				port = free
			}

			addr := net.JoinHostPort(viper.GetString("serve.host"), strconv.Itoa(port))
			srv, err := server.New(&server.Config{
				RootDir:    dir,
				Addr:       addr,
				LiveReload: viper.GetBool("serve.live_reload"),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s\n", srv.RootDir(), cyan(srv.URL()))
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

			defer slog.Info("Bye!")
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().String("host", "localhost", "host to bind")
	cmd.Flags().IntP("port", "p", 8000, "port to bind, 0 picks a free one")
	cmd.Flags().Bool("live-reload", false, "reload open pages when files under the directory change")

	return cmd
}
