package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func leadflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// leadFormValues holds the form's text state; numbers and dates are parsed
// when the form is applied back onto the flags.
type leadFormValues struct {
	FirstName, LastName, Email, Phone string
	Company, MoveFrom, MoveTo         string
	MoveDate                          string
	Source, Timeline                  string
	Budget                            string
	DecisionMaker                     bool
}

func newLeadFormValues(f *leadFlags) *leadFormValues {
	v := &leadFormValues{
		FirstName:     f.firstName,
		LastName:      f.lastName,
		Email:         f.email,
		Phone:         f.phone,
		Company:       f.company,
		MoveFrom:      f.moveFrom,
		MoveTo:        f.moveTo,
		MoveDate:      f.moveDate,
		Source:        f.source,
		Timeline:      f.timeline,
		DecisionMaker: f.decisionMaker,
	}
	if v.Source == "" {
		v.Source = string(domain.SourceWebsite)
	}
	if f.budget != 0 {
		v.Budget = strconv.FormatFloat(f.budget, 'f', -1, 64)
	}
	return v
}

func (v *leadFormValues) applyTo(f *leadFlags) error {
	f.firstName = strings.TrimSpace(v.FirstName)
	f.lastName = strings.TrimSpace(v.LastName)
	f.email = strings.TrimSpace(v.Email)
	f.phone = strings.TrimSpace(v.Phone)
	f.company = strings.TrimSpace(v.Company)
	f.moveFrom = strings.TrimSpace(v.MoveFrom)
	f.moveTo = strings.TrimSpace(v.MoveTo)
	f.moveDate = strings.TrimSpace(v.MoveDate)
	f.source = v.Source
	f.timeline = v.Timeline
	f.decisionMaker = v.DecisionMaker

	budget, err := parseAmount(v.Budget)
	if err != nil {
		return err
	}
	f.budget = budget
	return nil
}

var sourceOptions = []domain.LeadSource{
	domain.SourceWebsite, domain.SourceReferral, domain.SourceGoogleAds,
	domain.SourceSocialMedia, domain.SourceColdCall, domain.SourceRepeatCustomer,
	domain.SourceEmailCampaign, domain.SourceWalkIn, domain.SourceOther,
}

var timelineOptions = []domain.Timeline{
	domain.TimelineImmediate, domain.TimelineOneMonth, domain.TimelineThreeMo,
	domain.TimelineSixMo, domain.TimelineOneYear,
}

func leadForm(v *leadFormValues) *huh.Form {
	sources := make([]huh.Option[string], 0, len(sourceOptions))
	for _, s := range sourceOptions {
		sources = append(sources, huh.NewOption(strings.ReplaceAll(string(s), "_", " "), string(s)))
	}
	timelines := []huh.Option[string]{huh.NewOption("not sure yet", "")}
	for _, t := range timelineOptions {
		timelines = append(timelines, huh.NewOption(strings.ReplaceAll(string(t), "_", " "), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First Name").Value(&v.FirstName).Validate(validateRequired),
			huh.NewInput().Title("Last Name").Value(&v.LastName).Validate(validateRequired),
			huh.NewInput().Title("Email").Placeholder("name@example.com").Value(&v.Email).Validate(validateRequired),
			huh.NewInput().Title("Phone").Value(&v.Phone).Validate(validateRequired),
			huh.NewInput().Title("Company").Description("Optional").Value(&v.Company),
		),
		huh.NewGroup(
			huh.NewInput().Title("Moving From").Value(&v.MoveFrom),
			huh.NewInput().Title("Moving To").Value(&v.MoveTo),
			dateInput("Move Date (YYYY-MM-DD, blank for none)", &v.MoveDate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Source").Options(sources...).Value(&v.Source),
			huh.NewInput().Title("Budget").Placeholder("25000").Value(&v.Budget).Validate(validateOptionalAmount),
			huh.NewSelect[string]().Title("Timeline").Options(timelines...).Value(&v.Timeline),
			huh.NewConfirm().Title("Talking to the decision maker?").Value(&v.DecisionMaker),
		),
	).WithTheme(leadflowHuhTheme()).WithShowHelp(false)
}

// runLeadForm prompts for lead details, prefilled from the flags given.
func runLeadForm(f *leadFlags) error {
	v := newLeadFormValues(f)
	if err := leadForm(v).Run(); err != nil {
		return err
	}
	return v.applyTo(f)
}

func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

// parseAmount accepts "25000", "25,000" or "$25,000.50". Blank is zero.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, errors.New("enter a non-negative amount")
	}
	return v, nil
}
