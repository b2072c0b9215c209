package comment

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
)

// NewCommentCommand creates the main comment command
func NewCommentCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage comments on videos",
	}

	list := &cobra.Command{
		Use:   "list [VIDEO_ID]",
		Short: "List comments of a video",
		Long:  `List comments of a video with their authors. Sort keys: createdAt, updatedAt.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Comments.ListComments(ctx, args[0], params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "comments fetched"), nil
			})
		},
	}
	cmdutil.AddPageFlags(list)

	add := &cobra.Command{
		Use:   "add [VIDEO_ID]",
		Short: "Comment on a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			content, _ := cmd.Flags().GetString("content")
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				c, err := svc.Comments.AddComment(ctx, actor, args[0], content)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.Created(c, "comment added"), nil
			})
		},
	}
	cmdutil.AddActorFlag(add, true)
	add.Flags().String("content", "", "Comment text")

	update := &cobra.Command{
		Use:   "update [COMMENT_ID]",
		Short: "Edit a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			content, _ := cmd.Flags().GetString("content")
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				c, err := svc.Comments.UpdateComment(ctx, actor, args[0], content)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(c, "comment updated"), nil
			})
		},
	}
	cmdutil.AddActorFlag(update, true)
	update.Flags().String("content", "", "New comment text")

	del := &cobra.Command{
		Use:   "delete [COMMENT_ID]",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				if err := svc.Comments.DeleteComment(ctx, actor, args[0]); err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(nil, "comment deleted"), nil
			})
		},
	}
	cmdutil.AddActorFlag(del, true)

	cmd.AddCommand(list, add, update, del)
	return cmd
}
