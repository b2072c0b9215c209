package channel

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
)

// NewChannelCommand creates the main channel command
func NewChannelCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Channel dashboard",
		Long:  `Statistics, profile and videos of a channel`,
	}

	stats := &cobra.Command{
		Use:   "stats [CHANNEL_ID]",
		Short: "Show video, view, like, subscriber and tweet totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				s, err := svc.Stats.ChannelStats(ctx, args[0])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(s, "channel stats fetched"), nil
			})
		},
	}

	profile := &cobra.Command{
		Use:   "profile [USERNAME]",
		Short: "Show a channel profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := cmdutil.Viewer(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				p, err := svc.Accounts.ChannelProfile(ctx, args[0], viewer)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(p, "channel profile fetched"), nil
			})
		},
	}
	cmdutil.AddActorFlag(profile, false)

	videos := &cobra.Command{
		Use:   "videos [CHANNEL_ID]",
		Short: "List a channel's videos",
		Long:  `List a channel's videos. Unpublished videos are included when the viewer owns the channel.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := cmdutil.Viewer(cmd)
			if err != nil {
				return err
			}
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Videos.ListChannelVideos(ctx, viewer, args[0], params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "channel videos fetched"), nil
			})
		},
	}
	cmdutil.AddActorFlag(videos, false)
	cmdutil.AddPageFlags(videos)

	cmd.AddCommand(stats, profile, videos)
	return cmd
}
