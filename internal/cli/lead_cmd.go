package cli

import (
	"fmt"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/scoring"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newLeadCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lead",
		Aliases: []string{"leads"},
		Short:   "Manage leads",
	}

	cmd.AddCommand(
		newLeadAddCmd(r),
		newLeadListCmd(r),
		newLeadShowCmd(r),
		newLeadUpdateCmd(r),
		newLeadStatusCmd(r),
		newLeadConvertCmd(r),
		newLeadScoreCmd(r),
		newLeadHistoryCmd(r),
		newLeadRemoveCmd(r),
	)

	return cmd
}

// leadFlags are the editable lead fields shared by add and update.
type leadFlags struct {
	firstName, lastName, email, phone string
	company, address                  string
	moveFrom, moveTo, moveDate        string
	source, timeline                  string
	assignedTo, notes, tags           string
	budget, estimatedValue            float64
	decisionMaker                     bool
}

func (f *leadFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.firstName, "first-name", "", "First name")
	fs.StringVar(&f.lastName, "last-name", "", "Last name")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.phone, "phone", "", "Phone number")
	fs.StringVar(&f.company, "company", "", "Company name")
	fs.StringVar(&f.address, "address", "", "Street address")
	fs.StringVar(&f.moveFrom, "move-from", "", "Origin of the move")
	fs.StringVar(&f.moveTo, "move-to", "", "Destination of the move")
	fs.StringVar(&f.moveDate, "move-date", "", "Planned move date (YYYY-MM-DD)")
	fs.StringVar(&f.source, "source", "", "Lead source (website, referral, google_ads, ...)")
	fs.StringVar(&f.timeline, "timeline", "", "Purchase timeline (immediate, 1_month, 3_months, 6_months, 1_year)")
	fs.StringVar(&f.assignedTo, "assigned-to", "", "Owning sales rep")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.tags, "tags", "", "Comma-separated tags")
	fs.Float64Var(&f.budget, "budget", 0, "Stated budget")
	fs.Float64Var(&f.estimatedValue, "estimated-value", 0, "Estimated deal value")
	fs.BoolVar(&f.decisionMaker, "decision-maker", false, "Contact is the decision maker")
}

func (f *leadFlags) missingRequired() bool {
	return f.firstName == "" || f.lastName == "" || f.email == "" || f.phone == ""
}

func (f *leadFlags) lead(fs *pflag.FlagSet) (domain.Lead, error) {
	moveDate, err := parseDate("move-date", f.moveDate)
	if err != nil {
		return domain.Lead{}, err
	}
	l := domain.Lead{
		FirstName:     f.firstName,
		LastName:      f.lastName,
		Email:         f.email,
		Phone:         f.phone,
		Company:       f.company,
		Address:       f.address,
		MoveFrom:      f.moveFrom,
		MoveTo:        f.moveTo,
		MoveDate:      moveDate,
		Source:        domain.LeadSource(f.source),
		Timeline:      domain.Timeline(f.timeline),
		Budget:        f.budget,
		DecisionMaker: f.decisionMaker,
		AssignedTo:    f.assignedTo,
		Notes:         f.notes,
		Tags:          splitTags(f.tags),
	}
	if changed(fs, "estimated-value") {
		v := f.estimatedValue
		l.EstimatedValue = &v
	}
	return l, nil
}

// patch builds a partial update from the flags set on the command line only.
func (f *leadFlags) patch(fs *pflag.FlagSet) (domain.LeadPatch, error) {
	var p domain.LeadPatch
	str := func(name string, v string) *string {
		if !changed(fs, name) {
			return nil
		}
		return &v
	}
	p.FirstName = str("first-name", f.firstName)
	p.LastName = str("last-name", f.lastName)
	p.Email = str("email", f.email)
	p.Phone = str("phone", f.phone)
	p.Company = str("company", f.company)
	p.Address = str("address", f.address)
	p.MoveFrom = str("move-from", f.moveFrom)
	p.MoveTo = str("move-to", f.moveTo)
	p.AssignedTo = str("assigned-to", f.assignedTo)
	p.Notes = str("notes", f.notes)

	if changed(fs, "move-date") {
		d, err := parseDate("move-date", f.moveDate)
		if err != nil {
			return p, err
		}
		p.MoveDate = d
	}
	if changed(fs, "source") {
		p.Source = domain.Ptr(domain.LeadSource(f.source))
	}
	if changed(fs, "timeline") {
		p.Timeline = domain.Ptr(domain.Timeline(f.timeline))
	}
	if changed(fs, "budget") {
		p.Budget = &f.budget
	}
	if changed(fs, "estimated-value") {
		p.EstimatedValue = &f.estimatedValue
	}
	if changed(fs, "decision-maker") {
		p.DecisionMaker = &f.decisionMaker
	}
	if changed(fs, "tags") {
		p.Tags = splitTags(f.tags)
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return p, nil
}

func newLeadAddCmd(r *runner) *cobra.Command {
	var f leadFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a lead",
		Long:  "Create a lead. When required fields are missing and the terminal is interactive, a form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.missingRequired() && !r.json && r.app.interactive() {
				if err := runLeadForm(&f); err != nil {
					return err
				}
			}
			in, err := f.lead(cmd.Flags())
			if err != nil {
				return reject(cmd, r, err)
			}
			env := r.app.CRM.CreateLead(cmd.Context(), in)
			return emit(cmd, r, env, formatLeadSummary)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func newLeadListCmd(r *runner) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List leads",
		Example: "  leadflow lead list --filter status=qualified --sort-by score --order desc",
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := q.build()
			if err != nil {
				return reject(cmd, r, err)
			}
			env := r.app.CRM.GetLeads(cmd.Context(), built)
			return emit(cmd, r, env, func(leads []*domain.Lead) string {
				return formatter.FormatLeadList(leads, env.Pagination)
			})
		},
	}
	q.register(cmd.Flags())

	return cmd
}

func newLeadShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a lead with its activity timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.GetLead(cmd.Context(), args[0])
			return emit(cmd, r, env, func(d *app.LeadDetail) string {
				return formatter.FormatLeadDetail(d.Lead, d.Activities) + "\n"
			})
		},
	}
}

func newLeadUpdateCmd(r *runner) *cobra.Command {
	var f leadFlags
	var version int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update lead fields",
		Long:  "Update only the fields whose flags are given. Scoring inputs trigger a re-score.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := f.patch(cmd.Flags())
			if err != nil {
				return reject(cmd, r, err)
			}
			if changed(cmd.Flags(), "version") {
				patch.Version = &version
			}
			env := r.app.CRM.UpdateLead(cmd.Context(), args[0], patch)
			return emit(cmd, r, env, formatLeadSummary)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().IntVar(&version, "version", 0, "Expected current version (optimistic lock)")

	return cmd
}

func newLeadStatusCmd(r *runner) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a lead to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.ChangeLeadStatus(cmd.Context(), args[0], app.StatusChange{
				Status: domain.LeadStatus(args[1]),
				Reason: reason,
			})
			return emit(cmd, r, env, formatLeadSummary)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the lead history")

	return cmd
}

func newLeadConvertCmd(r *runner) *cobra.Command {
	var name, owner, closeDate string
	var amount float64

	cmd := &cobra.Command{
		Use:   "convert <id>",
		Short: "Convert a lead into an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := parseDate("close-date", closeDate)
			if err != nil {
				return reject(cmd, r, err)
			}
			overrides := domain.ConversionOverrides{
				Name:              name,
				Owner:             owner,
				ExpectedCloseDate: expected,
			}
			if changed(cmd.Flags(), "amount") {
				overrides.Amount = &amount
			}
			env := r.app.CRM.ConvertLead(cmd.Context(), args[0], overrides)
			return emit(cmd, r, env, func(res *service.ConversionResult) string {
				return formatter.FormatOpportunity(res.Opportunity) + "\n"
			})
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "Opportunity amount (defaults to the lead's estimate or budget)")
	cmd.Flags().StringVar(&name, "name", "", "Opportunity name")
	cmd.Flags().StringVar(&owner, "owner", "", "Opportunity owner")
	cmd.Flags().StringVar(&closeDate, "close-date", "", "Expected close date (YYYY-MM-DD)")

	return cmd
}

func newLeadScoreCmd(r *runner) *cobra.Command {
	var source, timeline, company string
	var budget float64
	var decisionMaker bool

	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Preview the score for a set of lead attributes",
		Example: "  leadflow lead score --source referral --budget 60000 --timeline immediate --decision-maker",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.ScoreLead(cmd.Context(), scoring.Input{
				Source:        domain.LeadSource(source),
				Budget:        budget,
				Timeline:      domain.Timeline(timeline),
				DecisionMaker: decisionMaker,
				Company:       company,
			})
			return emit(cmd, r, env, formatter.FormatScore)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Lead source")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Stated budget")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Purchase timeline")
	cmd.Flags().BoolVar(&decisionMaker, "decision-maker", false, "Contact is the decision maker")
	cmd.Flags().StringVar(&company, "company", "", "Company name")

	return cmd
}

func newLeadHistoryCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show a lead's status history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.LeadHistory(cmd.Context(), args[0])
			return emit(cmd, r, env, formatter.FormatHistory)
		},
	}
}

func newLeadRemoveCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a lead",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.DeleteLead(cmd.Context(), args[0])
			return emit(cmd, r, env, nil)
		},
	}
}

func formatLeadSummary(l *domain.Lead) string {
	return fmt.Sprintf("%s  %s  %s  %s %s\n",
		l.DisplayID(),
		formatter.Bold(l.FullName()),
		formatter.LeadStatusPill(l.Status),
		formatter.ScoreStyled(l.Score),
		formatter.RatingIndicator(l.Rating),
	)
}
