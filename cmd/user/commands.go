package user

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
	userrepo "github.com/Taichi-iskw/vidshare/internal/repository/user"
	"github.com/Taichi-iskw/vidshare/internal/service/account"
)

// NewUserCommand creates the main user command
func NewUserCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
		Long:  `Register accounts, edit profiles and read watch history`,
	}

	cmd.AddCommand(newRegisterCommand(provider))
	cmd.AddCommand(newShowCommand(provider))
	cmd.AddCommand(newUpdateCommand(provider))
	cmd.AddCommand(newPasswordCommand(provider))
	cmd.AddCommand(newImageCommand(provider, "avatar"))
	cmd.AddCommand(newImageCommand(provider, "cover"))
	cmd.AddCommand(newHistoryCommand(provider))
	cmd.AddCommand(newProfileCommand(provider))

	return cmd
}

func newRegisterCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := account.RegisterInput{}
			in.Username, _ = cmd.Flags().GetString("username")
			in.Email, _ = cmd.Flags().GetString("email")
			in.DisplayName, _ = cmd.Flags().GetString("display-name")
			in.Password, _ = cmd.Flags().GetString("password")
			in.AvatarPath, _ = cmd.Flags().GetString("avatar")
			in.CoverPath, _ = cmd.Flags().GetString("cover")

			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				u, err := svc.Accounts.Register(ctx, in)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.Created(u, "user registered"), nil
			})
		},
	}

	cmd.Flags().String("username", "", "Unique username")
	cmd.Flags().String("email", "", "Unique email address")
	cmd.Flags().String("display-name", "", "Display name")
	cmd.Flags().String("password", "", "Password")
	cmd.Flags().String("avatar", "", "Path of the avatar image")
	cmd.Flags().String("cover", "", "Path of the cover image (optional)")

	return cmd
}

func newUpdateCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update display name or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			fields := userrepo.AccountUpdate{
				DisplayName: cmdutil.OptionalString(cmd, "display-name"),
				Email:       cmdutil.OptionalString(cmd, "email"),
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				u, err := svc.Accounts.UpdateAccount(ctx, actor, fields)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(u, "account updated"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	cmd.Flags().String("display-name", "", "New display name")
	cmd.Flags().String("email", "", "New email address")

	return cmd
}

func newPasswordCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			oldPassword, _ := cmd.Flags().GetString("old")
			newPassword, _ := cmd.Flags().GetString("new")

			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				if err := svc.Accounts.ChangePassword(ctx, actor, oldPassword, newPassword); err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(nil, "password changed"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	cmd.Flags().String("old", "", "Current password")
	cmd.Flags().String("new", "", "New password")

	return cmd
}

// newImageCommand creates the avatar or cover command
func newImageCommand(provider cmdutil.Provider, kind string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind + " [PATH]",
		Short: "Replace the " + kind + " image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				update := svc.Accounts.UpdateAvatar
				if kind == "cover" {
					update = svc.Accounts.UpdateCover
				}
				u, err := update(ctx, actor, args[0])
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(u, kind+" updated"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	return cmd
}

func newShowCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the acting user's account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				u, err := svc.Accounts.Me(ctx, actor)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(u, "current user fetched"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	return cmd
}

func newHistoryCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the acting user's watch history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := cmdutil.Actor(cmd)
			if err != nil {
				return err
			}
			params := cmdutil.PageParams(cmd)
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				result, err := svc.Accounts.WatchHistory(ctx, actor, params)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(result, "watch history fetched"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, true)
	cmdutil.AddPageFlags(cmd)
	return cmd
}

func newProfileCommand(provider cmdutil.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [USERNAME]",
		Short: "Show a channel profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := cmdutil.Viewer(cmd)
			if err != nil {
				return err
			}
			return cmdutil.Run(cmd, provider, func(ctx context.Context, svc *app.Services) (envelope.Success, error) {
				profile, err := svc.Accounts.ChannelProfile(ctx, args[0], viewer)
				if err != nil {
					return envelope.Success{}, err
				}
				return envelope.OK(profile, "channel profile fetched"), nil
			})
		},
	}

	cmdutil.AddActorFlag(cmd, false)
	return cmd
}
