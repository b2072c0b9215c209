package subscription

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
)

// NewSubscriptionCommand creates the main subscription command
func NewSubscriptionCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Subscribe to channels and list subscriptions",
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle [CHANNEL_ID]",
		Short: "Subscribe to a channel, or unsubscribe if subscribed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Toggles.ToggleSubscription(ctx, actor, args[0])
				if err != nil {
					return envelope.Success{}, err
				}
				message := "unsubscribed"
				if result.Present {
					message = "subscribed"
				}
				return envelope.OK(result, message), nil
			})
		},
	}
	cmdutil.AddActorFlag(toggleCmd, true)

	subscribers := &cobra.Command{
		Use:   "subscribers [CHANNEL_ID]",
		Short: "List subscribers of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Subscriptions.Subscribers(ctx, args[0], params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "subscribers fetched"), nil
			})
		},
	}
	cmdutil.AddPageFlags(subscribers)

	channels := &cobra.Command{
		Use:   "channels [USER_ID]",
		Short: "List channels a user subscribes to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Subscriptions.SubscribedChannels(ctx, args[0], params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "subscribed channels fetched"), nil
			})
		},
	}
	cmdutil.AddPageFlags(channels)

	cmd.AddCommand(toggleCmd, subscribers, channels)
	return cmd
}
