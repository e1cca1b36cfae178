package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardSource is the slice of the façade the live dashboard reads from.
type dashboardSource interface {
	RefreshDashboard(ctx context.Context) app.Envelope[*service.DashboardStats]
}

type dashboardKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

type dashboardLoadedMsg struct {
	env app.Envelope[*service.DashboardStats]
}

type dashboardTickMsg time.Time

// dashboardModel is the live dashboard shown by "dashboard --watch". It
// refreshes on a fixed interval and on demand.
type dashboardModel struct {
	ctx      context.Context
	source   dashboardSource
	interval time.Duration
	now      func() time.Time

	spinner spinner.Model
	help    help.Model
	keys    dashboardKeyMap

	stats     *service.DashboardStats
	notice    string
	err       *app.ErrorBody
	loading   bool
	loads     int
	updatedAt time.Time
	width     int
}

func newDashboardModel(ctx context.Context, source dashboardSource, interval time.Duration, now func() time.Time) dashboardModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StyleHeader),
	)
	return dashboardModel{
		ctx:      ctx,
		source:   source,
		interval: interval,
		now:      now,
		spinner:  sp,
		help:     help.New(),
		keys:     newDashboardKeyMap(),
		loading:  true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), m.scheduleTick())
}

func (m dashboardModel) load() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		return dashboardLoadedMsg{env: source.RefreshDashboard(ctx)}
	}
}

func (m dashboardModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

// startLoad begins a refresh unless one is already in flight.
func (m dashboardModel) startLoad() (dashboardModel, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.load())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.startLoad()
		}
		return m, nil

	case dashboardTickMsg:
		next, cmd := m.startLoad()
		return next, tea.Batch(cmd, m.scheduleTick())

	case dashboardLoadedMsg:
		m.loading = false
		m.loads++
		m.updatedAt = m.now()
		m.notice = msg.env.Message
		if !msg.env.Success {
			m.err = msg.env.Error
			return m, nil
		}
		m.err = nil
		if msg.env.Data != nil {
			m.stats = msg.env.Data
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	status := formatter.Dim(fmt.Sprintf("every %s", m.interval))
	switch {
	case m.loading:
		status = m.spinner.View() + " " + formatter.Dim("refreshing…")
	case !m.updatedAt.IsZero():
		status = formatter.Dim(fmt.Sprintf("updated %s · every %s", formatter.Timestamp(m.updatedAt), m.interval))
	}
	b.WriteString(formatter.Header("Leadflow") + "  " + status + "\n\n")

	if m.stats != nil || !m.loading {
		b.WriteString(formatter.FormatDashboard(m.stats) + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("✖ "+m.err.Message) + "\n")
	} else if m.notice != "" {
		b.WriteString(formatter.StyleYellow.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}
