// Package tui provides a Bubble Tea terminal user interface for nativefy.
package tui

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/nativefy/internal/bundle"
	"github.com/handiism/nativefy/internal/config"
	"github.com/handiism/nativefy/internal/http"
	"github.com/handiism/nativefy/internal/infer"
	"github.com/handiism/nativefy/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInferring
	StateResult
	StateBundling
	StateComplete
	StateError
)

// Inferer selects the icon for a page.
type Inferer interface {
	Infer(ctx context.Context, rawURL string) (*model.Icon, error)
}

// InfererFactory builds an Inferer for one run. onEvent receives the
// run's diagnostics.
type InfererFactory func(settings *config.Settings, onEvent func(infer.Event)) Inferer

// BundlerFactory builds the Bundler used when the user asks for a bundle.
type BundlerFactory func(settings *config.Settings) (bundle.Bundler, error)

func defaultInferer(settings *config.Settings, onEvent func(infer.Event)) Inferer {
	client := http.NewClient(settings.ToClientOptions())
	return infer.New(client, settings.ToInferConfig(), onEvent)
}

func defaultBundler(settings *config.Settings) (bundle.Bundler, error) {
	opts, err := settings.ToBundleOptions()
	if err != nil {
		return nil, err
	}
	return bundle.ForPlatform(settings.Platform, opts)
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings

	newInferer InfererFactory
	newBundler BundlerFactory

	// Inference context
	ctx    context.Context
	cancel context.CancelFunc
	events *eventLog

	// Snapshot of events, refreshed on every tick
	logs  []infer.Event
	done  int
	total int

	// Result
	url      string
	name     string
	icon     *model.Icon
	inferErr error
	path     string
	err      error

	// Options
	verbose  bool
	fallback bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:      StateInput,
		textInput:  ti,
		spinner:    sp,
		progress:   prog,
		settings:   settings,
		newInferer: defaultInferer,
		newBundler: defaultBundler,
		ctx:        ctx,
		cancel:     cancel,
		events:     &eventLog{},
		fallback:   settings.FallbackFavicon,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// InferDoneMsg is sent when icon inference finishes.
	InferDoneMsg struct {
		Icon *model.Icon
		Name string
		Err  error
	}

	// BundleDoneMsg is sent when the bundle has been written.
	BundleDoneMsg struct {
		Path string
		Err  error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateInferring, StateBundling:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.url = strings.TrimSpace(m.textInput.Value())
				m.state = StateInferring
				return m, tea.Batch(m.startInference(), m.spinner.Tick, m.tickProgress())
			}

		case "alt+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "alt+f":
			if m.state == StateInput {
				m.fallback = !m.fallback
				return m, nil
			}

		case "b":
			if m.state == StateResult {
				m.state = StateBundling
				return m, tea.Batch(m.startBundle(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateResult || m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateResult || m.state == StateComplete || m.state == StateError {
				return m.reset(), nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case InferDoneMsg:
		if m.state != StateInferring {
			return m, nil
		}
		m.logs, m.done, m.total = m.events.snapshot(m.verbose)
		m.icon = msg.Icon
		m.name = msg.Name
		m.inferErr = msg.Err
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateResult
		}

	case BundleDoneMsg:
		if m.state != StateBundling {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.path = msg.Path
			m.state = StateComplete
		}

	case TickMsg:
		if m.state == StateInferring {
			m.logs, m.done, m.total = m.events.snapshot(m.verbose)

			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reset returns the model to the input state for a new site.
func (m Model) reset() Model {
	m.cancel()
	m.state = StateInput
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.events = &eventLog{}
	m.logs = nil
	m.done, m.total = 0, 0
	m.url, m.name, m.path = "", "", ""
	m.icon = nil
	m.inferErr, m.err = nil, nil
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// startInference runs icon and name inference in the background.
func (m Model) startInference() tea.Cmd {
	settings := *m.settings
	settings.FallbackFavicon = m.fallback
	ctx, rawURL, events, newInferer := m.ctx, m.url, m.events, m.newInferer

	return func() tea.Msg {
		name := siteName(rawURL)
		icon, err := newInferer(&settings, events.add).Infer(ctx, rawURL)
		return InferDoneMsg{Icon: icon, Name: name, Err: err}
	}
}

// startBundle writes the bundle in the background.
func (m Model) startBundle() tea.Cmd {
	ctx, settings, newBundler := m.ctx, m.settings, m.newBundler
	req := bundle.Request{
		Dir:  settings.OutputDir,
		Name: m.name,
		URL:  m.url,
		Icon: m.icon,
	}

	return func() tea.Msg {
		b, err := newBundler(settings)
		if err != nil {
			return BundleDoneMsg{Err: err}
		}
		path, err := b.Bundle(ctx, req)
		return BundleDoneMsg{Path: path, Err: err}
	}
}

// siteName infers the application name, falling back to the bare host.
func siteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	name, err := infer.InferName(u)
	if err != nil {
		return cmp.Or(u.Hostname(), rawURL)
	}
	return name
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("nativefy"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Turn a website into a desktop application"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInferring:
		b.WriteString(m.viewInferring())
	case StateResult:
		b.WriteString(m.viewResult())
	case StateBundling:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Writing bundle..."))
		b.WriteString("\n")
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter website URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (alt+v)\n", checkbox(m.verbose)))
	b.WriteString(fmt.Sprintf("  %s Try /favicon.ico when no icons are advertised (alt+f)\n", checkbox(m.fallback)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output: %s (%s)", m.settings.OutputDir, m.settings.Platform)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInferring() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Looking for icons on " + m.url))
	b.WriteString("\n\n")

	if m.total > 0 {
		b.WriteString(m.progress.View())
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Candidates: %d/%d", m.done, m.total)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder

	var lines []string
	lines = append(lines, "Name: "+nameStyle.Render(m.name))
	lines = append(lines, "URL:  "+m.url)
	if m.icon != nil {
		lines = append(lines,
			"Icon: "+m.icon.Source,
			fmt.Sprintf("Size: %s (%s)", m.icon.Size(), m.icon.Extension),
		)
	} else {
		lines = append(lines, warningStyle.Render("Icon: none, the bundle will have no icon"))
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.inferErr != nil {
		b.WriteString(warningStyle.Render("! " + m.inferErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf("✨ Bundle created!\n\n%s", m.path))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case infer.LevelError:
			style = errorStyle
			prefix = "✗"
		case infer.LevelWarning:
			style = warningStyle
			prefix = "!"
		case infer.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case infer.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • alt+v: verbose • alt+f: favicon fallback • esc: quit"
	case StateInferring, StateBundling:
		return "esc: cancel"
	case StateResult:
		return "b: bundle • r: another site • q: quit"
	case StateComplete, StateError:
		return "r: another site • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
