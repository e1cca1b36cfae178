package cli

import (
	"time"

	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const defaultWatchInterval = 30 * time.Second

func newDashboardCmd(r *runner) *cobra.Command {
	var watch, refresh bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show lead, pipeline and activity statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return runDashboardWatch(cmd, r, interval)
			}

			env := r.app.CRM.GetDashboard(cmd.Context())
			if refresh {
				env = r.app.CRM.RefreshDashboard(cmd.Context())
			}
			return emit(cmd, r, env, func(s *service.DashboardStats) string {
				return formatter.FormatDashboard(s) + "\n"
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the dashboard open and refresh it periodically")
	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "Refresh interval for --watch")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fall back to the last good dashboard if computing fails")

	return cmd
}

func runDashboardWatch(cmd *cobra.Command, r *runner, interval time.Duration) error {
	if r.json {
		return reject(cmd, r, domain.NewValidationError("--watch cannot be combined with --json"))
	}
	if interval <= 0 {
		return reject(cmd, r, domain.NewValidationError("invalid interval",
			domain.FieldError{Field: "interval", Msg: "must be positive"}))
	}

	model := newDashboardModel(cmd.Context(), r.app.CRM, interval, r.app.now)
	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
