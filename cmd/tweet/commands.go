package tweet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
)

// NewTweetCommand creates the main tweet command
func NewTweetCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweet",
		Short: "Manage short text posts",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Post a tweet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			content, _ := cmd.Flags().GetString("content")
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				t, err := svc.Tweets.CreateTweet(ctx, actor, content)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.Created(t, "tweet created"), nil
			})
		},
	}
	cmdutil.AddActorFlag(add, true)
	add.Flags().String("content", "", "Tweet text")

	update := &cobra.Command{
		Use:   "update [TWEET_ID]",
		Short: "Edit a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			content, _ := cmd.Flags().GetString("content")
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				t, err := svc.Tweets.UpdateTweet(ctx, actor, args[0], content)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(t, "tweet updated"), nil
			})
		},
	}
	cmdutil.AddActorFlag(update, true)
	update.Flags().String("content", "", "New tweet text")

	del := &cobra.Command{
		Use:   "delete [TWEET_ID]",
		Short: "Delete a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				if err := svc.Tweets.DeleteTweet(ctx, actor, args[0]); err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(nil, "tweet deleted"), nil
			})
		},
	}
	cmdutil.AddActorFlag(del, true)

	list := &cobra.Command{
		Use:   "list [USER_ID]",
		Short: "List a user's tweets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Tweets.ListUserTweets(ctx, args[0], params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "tweets fetched"), nil
			})
		},
	}
	cmdutil.AddPageFlags(list)

	cmd.AddCommand(add, update, del, list)
	return cmd
}
