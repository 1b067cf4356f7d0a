package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ozenlabs/ozenembed/internal/publish"
	"github.com/ozenlabs/ozenembed/internal/snippet"
	"github.com/ozenlabs/ozenembed/internal/utils"
	"github.com/ozenlabs/ozenembed/internal/version"
)

var ozenUserAgent = fmt.Sprintf("OzenEmbed/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

func init() {
	rootCmd.AddCommand(newPublishCmd())
}

func newPublishCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "publish <audio-file>",
		Short: "Upload an audio file to object storage and print a snippet for it",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindSnippetFlags(cmd)
			bindPublishFlags(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			audioPath := args[0]
			if !utils.FileExists(audioPath) {
				return fmt.Errorf("%w: %s", snippet.ErrAudioNotFound, audioPath)
			}

			cfg := publishConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			slog.Debug("publish config",
				"bucket", cfg.Bucket,
				"region", cfg.Region,
				"endpoint", cfg.Endpoint,
				"prefix", cfg.Prefix,
				"access_key", utils.MaskSecret(cfg.AccessKey))

			publisher, err := publish.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			publicURL, err := publisher.Upload(cmd.Context(), audioPath)
			if err != nil {
				return err
			}
			slog.Info("uploaded", "url", publicURL)

			if verify {
				verifyUpload(cmd.Context(), publicURL)
			}

			s, err := snippet.BuildRemote(publicURL, snippetOptions())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.HTML)
			return err
		},
	}

	cmd.Flags().SortFlags = false
	addSnippetFlags(cmd)
	cmd.Flags().String("bucket", "", "target S3 bucket")
	cmd.Flags().String("region", "", "bucket region")
	cmd.Flags().String("endpoint", "", "custom S3 endpoint, e.g. a minio server")
	cmd.Flags().String("prefix", "", "key prefix inside the bucket")
	cmd.Flags().String("public-url", "", "base URL the uploaded file is served from")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the public URL responds after upload")

	return cmd
}

func bindPublishFlags(cmd *cobra.Command) {
	viper.BindPFlag("publish.bucket", cmd.Flags().Lookup("bucket"))
	viper.BindPFlag("publish.region", cmd.Flags().Lookup("region"))
	viper.BindPFlag("publish.endpoint", cmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("publish.prefix", cmd.Flags().Lookup("prefix"))
	viper.BindPFlag("publish.public_url", cmd.Flags().Lookup("public-url"))
}

// credentials come from the config file or OZENEMBED_PUBLISH_* env vars,
// never from argv
func publishConfig() *publish.Config {
	return &publish.Config{
		Bucket:        viper.GetString("publish.bucket"),
		Region:        viper.GetString("publish.region"),
		Endpoint:      viper.GetString("publish.endpoint"),
		Prefix:        viper.GetString("publish.prefix"),
		PublicBaseURL: viper.GetString("publish.public_url"),
		AccessKey:     viper.GetString("publish.access_key"),
		SecretKey:     viper.GetString("publish.secret_key"),
	}
}

// verifyUpload issues a HEAD against the public URL so a broken snippet is
// caught before it lands in a doc. Failures only warn, the upload itself
// already succeeded.
func verifyUpload(ctx context.Context, publicURL string) {
	client := req.C().
		SetTimeout(10 * time.Second).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1 * time.Second).
		SetUserAgent(ozenUserAgent).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	resp, err := client.R().SetContext(ctx).Head(publicURL)
	switch {
	case err != nil:
		slog.Warn("verify request failed", "url", publicURL, "error", err)
	case resp.IsErrorState():
		slog.Warn("published file is not reachable", "url", publicURL, "status", resp.Status)
	default:
		slog.Info("verified", "url", publicURL, "status", resp.Status)
	}
}
