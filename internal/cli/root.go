package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/spf13/cobra"
)

// App holds everything the CLI commands need.
type App struct {
	CRM app.CRM

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Serve runs the HTTP API on addr until ctx is cancelled.
	Serve func(ctx context.Context, addr string) error
	// DefaultAddr is the listen address used when serve gets no --addr.
	DefaultAddr string
	Now         func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

// runner carries the persistent flags into every subcommand.
type runner struct {
	app  *App
	json bool
}

// NewRootCmd creates the top-level "leadflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	r := &runner{app: a}

	root := &cobra.Command{
		Use:           "leadflow",
		Short:         "Leads, opportunities and activities for a moving company",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&r.json, "json", false, "Print the raw result envelope as JSON")

	root.AddCommand(
		newLeadCmd(r),
		newOpportunityCmd(r),
		newActivityCmd(r),
		newDashboardCmd(r),
		newServeCmd(r),
	)

	return root
}
