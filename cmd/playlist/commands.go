package playlist

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
	playlistrepo "github.com/Taichi-iskw/vidshare/internal/repository/playlist"
)

// NewPlaylistCommand creates the main playlist command
func NewPlaylistCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Manage playlists",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an empty playlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				p, err := svc.Playlists.CreatePlaylist(ctx, actor, name, description)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.Created(p, "playlist created"), nil
			})
		},
	}
	cmdutil.AddActorFlag(create, true)
	create.Flags().String("name", "", "Playlist name")
	create.Flags().String("description", "", "Playlist description")

	get := &cobra.Command{
		Use:   "get [PLAYLIST_ID]",
		Short: "Get a playlist with its videos",
		Long:  `Get a playlist with its videos. Unpublished videos are included only for their owner.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := cmdutil.Viewer(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				p, err := svc.Playlists.GetPlaylist(ctx, viewer, args[0])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(p, "playlist fetched"), nil
			})
		},
	}
	cmdutil.AddActorFlag(get, false)

	list := &cobra.Command{
		Use:   "list [USER_ID]",
		Short: "List a user's playlists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Playlists.ListUserPlaylists(ctx, args[0], params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "playlists fetched"), nil
			})
		},
	}
	cmdutil.AddPageFlags(list)

	add := &cobra.Command{
		Use:   "add [PLAYLIST_ID] [VIDEO_ID]",
		Short: "Append a video to a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				p, err := svc.Playlists.AddVideo(ctx, actor, args[0], args[1])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(p, "video added to playlist"), nil
			})
		},
	}
	cmdutil.AddActorFlag(add, true)

	remove := &cobra.Command{
		Use:   "remove [PLAYLIST_ID] [VIDEO_ID]",
		Short: "Remove every occurrence of a video from a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				p, err := svc.Playlists.RemoveVideo(ctx, actor, args[0], args[1])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(p, "video removed from playlist"), nil
			})
		},
	}
	cmdutil.AddActorFlag(remove, true)

	update := &cobra.Command{
		Use:   "update [PLAYLIST_ID]",
		Short: "Rename a playlist or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			fields := playlistrepo.Update{
				Name:        cmdutil.OptionalString(cmd, "name"),
				Description: cmdutil.OptionalString(cmd, "description"),
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				p, err := svc.Playlists.UpdatePlaylist(ctx, actor, args[0], fields)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(p, "playlist updated"), nil
			})
		},
	}
	cmdutil.AddActorFlag(update, true)
	update.Flags().String("name", "", "New name")
	update.Flags().String("description", "", "New description")

	del := &cobra.Command{
		Use:   "delete [PLAYLIST_ID]",
		Short: "Delete a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				if err := svc.Playlists.DeletePlaylist(ctx, actor, args[0]); err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(nil, "playlist deleted"), nil
			})
		},
	}
	cmdutil.AddActorFlag(del, true)

	cmd.AddCommand(create, get, list, add, remove, update, del)
	return cmd
}
