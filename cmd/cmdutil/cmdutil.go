// Package cmdutil holds helpers shared by the operator commands.
package cmdutil

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/envelope"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

// Timeout bounds one command's work against the store
const Timeout = 30 * time.Second

// Provider returns the services and a cleanup function
type Provider func(ctx context.Context) (*app.Services, func(), error)

// Default connects using the configuration file
func Default() Provider {
	return app.NewFactory().Create
}

// Static always returns svc; used by tests
func Static(svc *app.Services) Provider {
	return func(context.Context) (*app.Services, func(), error) {
		return svc, func() {}, nil
	}
}

// Action runs one operation and returns its envelope
type Action func(ctx context.Context, svc *app.Services) (envelope.Success, error)

// Run resolves the services and runs action, writing the success or failure
// envelope to the command output. A failed operation is also returned so the
// process exits non-zero.
func Run(cmd *cobra.Command, provider Provider, action Action) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, Timeout)
	defer cancel()

	svc, cleanup, err := provider(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := action(ctx, svc)
	if err != nil {
		if werr := envelope.Write(cmd.OutOrStdout(), envelope.Fail(err)); werr != nil {
			return werr
		}
		return reportedError{err}
	}
	return envelope.Write(cmd.OutOrStdout(), result)
}

// reportedError is an operation error already written as a failure envelope
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// Reported reports whether err was already written to the command output
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// AddActorFlag registers --as, the id of the acting user
func AddActorFlag(cmd *cobra.Command, required bool) {
	cmd.Flags().String("as", "", "ID of the acting user")
	if required {
		_ = cmd.MarkFlagRequired("as")
	}
}

// Actor parses --as
func Actor(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("as")
	return ids.Parse("actor id", raw)
}

// Viewer parses --as when it is set and returns uuid.Nil otherwise
func Viewer(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("as")
	if raw == "" {
		return uuid.Nil, nil
	}
	return ids.Parse("viewer id", raw)
}

// AddPageFlags registers the window flags of a listing
func AddPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number, starting at 1")
	cmd.Flags().Int("limit", 0, "Items per page (0 selects the listing default)")
	cmd.Flags().String("sort-by", "", "Sort key")
	cmd.Flags().String("sort-dir", "", "Sort direction (asc or desc)")
}

// PageParams reads the window flags
func PageParams(cmd *cobra.Command) page.Params {
	pageNo, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	sortBy, _ := cmd.Flags().GetString("sort-by")
	sortDir, _ := cmd.Flags().GetString("sort-dir")
	return page.Params{Page: pageNo, Limit: limit, SortBy: sortBy, SortDir: sortDir}
}

// OptionalString returns a pointer to the flag value when the flag was set
func OptionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
