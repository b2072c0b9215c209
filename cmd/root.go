package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/channel"
	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/cmd/comment"
	"github.com/Taichi-iskw/vidshare/cmd/like"
	"github.com/Taichi-iskw/vidshare/cmd/playlist"
	"github.com/Taichi-iskw/vidshare/cmd/subscription"
	"github.com/Taichi-iskw/vidshare/cmd/tweet"
	"github.com/Taichi-iskw/vidshare/cmd/user"
	"github.com/Taichi-iskw/vidshare/cmd/video"
	"github.com/Taichi-iskw/vidshare/internal/config"
	"github.com/Taichi-iskw/vidshare/internal/logging"
)

// flushSentry sends pending defect reports before exit
var flushSentry = func() {}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "vidshare",
	Short:         "Operate a video-sharing backend",
	Long:          `vidshare runs the video-sharing engine against a configured PostgreSQL database and prints JSON response envelopes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, format := "info", "text"
		dsn, environment := "", ""

		// config init runs before any configuration exists
		if cfg, err := config.NewConfig(); err == nil {
			level, format = cfg.LogLevel, cfg.LogFormat
			dsn, environment = cfg.SentryDSN, cfg.Environment
		}
		if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
			level = flag
		}

		if err := logging.Configure(level, format); err != nil {
			return err
		}
		flush, err := logging.InitSentry(dsn, environment)
		if err != nil {
			logrus.WithError(err).Warn("defect reporting disabled")
		}
		flushSentry = flush
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	defer func() { flushSentry() }()

	if err := rootCmd.Execute(); err != nil {
		if !cmdutil.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		logrus.WithError(err).Debug("command failed")
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")

	provider := cmdutil.Default()
	rootCmd.AddCommand(user.NewUserCommand(provider))
	rootCmd.AddCommand(video.NewVideoCommand(provider))
	rootCmd.AddCommand(comment.NewCommentCommand(provider))
	rootCmd.AddCommand(like.NewLikeCommand(provider))
	rootCmd.AddCommand(subscription.NewSubscriptionCommand(provider))
	rootCmd.AddCommand(tweet.NewTweetCommand(provider))
	rootCmd.AddCommand(playlist.NewPlaylistCommand(provider))
	rootCmd.AddCommand(channel.NewChannelCommand(provider))
}
