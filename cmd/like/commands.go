package like

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
	"github.com/Taichi-iskw/vidshare/internal/service/toggle"
)

// NewLikeCommand creates the main like command
func NewLikeCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "like",
		Short: "Like or unlike content",
	}

	toggleCmd := &cobra.Command{
		Use:       "toggle [video|comment|tweet] [ID]",
		Short:     "Like the target, or remove the like if present",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"video", "comment", "tweet"},
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			target, err := parseTarget(args[0], args[1])
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Toggles.ToggleLike(ctx, actor, target)
				if err != nil {
					return envelope.Success{}, err
				}
				message := "like removed"
				if result.Present {
					message = "like added"
				}
				return envelope.OK(result, message), nil
			})
		},
	}
	cmdutil.AddActorFlag(toggleCmd, true)

	cmd.AddCommand(toggleCmd)
	return cmd
}

func parseTarget(kind, id string) (toggle.Target, error) {
	switch kind {
	case "video":
		return toggle.VideoTarget{VideoID: id}, nil
	case "comment":
		return toggle.CommentTarget{CommentID: id}, nil
	case "tweet":
		return toggle.TweetTarget{TweetID: id}, nil
	}
	return nil, fmt.Errorf("unknown like target %q (expected video, comment or tweet)", kind)
}
