package video

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
	videosvc "github.com/Taichi-iskw/vidshare/internal/service/video"
)

// NewVideoCommand creates the main video command
func NewVideoCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Manage videos",
		Long:  `Publish, browse, update and delete videos`,
	}

	cmd.AddCommand(newPublishCommand(provider))
	cmd.AddCommand(newListCommand(provider))
	cmd.AddCommand(newGetCommand(provider))
	cmd.AddCommand(newUpdateCommand(provider))
	cmd.AddCommand(newDeleteCommand(provider))
	cmd.AddCommand(newTogglePublishCommand(provider))
	cmd.AddCommand(newViewCommand(provider))
	cmd.AddCommand(newLikedCommand(provider))

	return cmd
}

func newPublishCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload and publish a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			in := videosvc.PublishInput{}
			in.Title, _ = cmd.Flags().GetString("title")
			in.Description, _ = cmd.Flags().GetString("description")
			in.VideoPath, _ = cmd.Flags().GetString("file")
			in.ThumbnailPath, _ = cmd.Flags().GetString("thumbnail")

			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				v, err := svc.Videos.Publish(ctx, actor, in)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.Created(v, "video published"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	cmd.Flags().String("title", "", "Video title")
	cmd.Flags().String("description", "", "Video description")
	cmd.Flags().String("file", "", "Path of the video file")
	cmd.Flags().String("thumbnail", "", "Path of the thumbnail image")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("thumbnail")

	return cmd
}

func newListCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published videos",
		Long:  `List published videos, optionally filtered by a text query or a channel username. Sort keys: createdAt, views, duration, title.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := videosvc.FeedQuery{Params: cmdutil.PageParams(cmd)}
			q.Query, _ = cmd.Flags().GetString("query")
			q.Username, _ = cmd.Flags().GetString("username")

			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Videos.ListVideos(ctx, q)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "videos fetched"), nil
			})
		},
	}

	cmdutil.AddPageFlags(cmd)
	cmd.Flags().String("query", "", "Match title or description")
	cmd.Flags().String("username", "", "Only videos of this channel")

	return cmd
}

func newGetCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [VIDEO_ID]",
		Short: "Get a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := cmdutil.Viewer(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				v, err := svc.Videos.Get(ctx, viewer, args[0])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(v, "video fetched"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, false)
	return cmd
}

func newUpdateCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [VIDEO_ID]",
		Short: "Update title, description or thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			in := videosvc.UpdateInput{
				Title:       cmdutil.OptionalString(cmd, "title"),
				Description: cmdutil.OptionalString(cmd, "description"),
			}
			in.ThumbnailPath, _ = cmd.Flags().GetString("thumbnail")

			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				v, err := svc.Videos.Update(ctx, actor, args[0], in)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(v, "video updated"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("thumbnail", "", "Path of a new thumbnail image")

	return cmd
}

func newDeleteCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [VIDEO_ID]",
		Short: "Delete a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				if err := svc.Videos.Delete(ctx, actor, args[0]); err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(nil, "video deleted"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	return cmd
}

func newTogglePublishCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish-toggle [VIDEO_ID]",
		Short: "Publish or unpublish a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				published, err := svc.Videos.TogglePublish(ctx, actor, args[0])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(map[string]bool{"is_published": published}, "publish status toggled"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	return cmd
}

func newViewCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [VIDEO_ID]",
		Short: "Record a view and add the video to the viewer's history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				if err := svc.Videos.RecordView(ctx, viewer, args[0]); err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(nil, "view recorded"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	return cmd
}

func newLikedCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liked",
		Short: "List videos liked by the acting user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Videos.LikedVideos(ctx, actor, params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "liked videos fetched"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	cmdutil.AddPageFlags(cmd)
	return cmd
}
