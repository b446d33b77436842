package tui

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/huddle/internal/tui/theme"
	"github.com/hilthontt/huddle/pkg/session"
)

type page = int
type size = int

const (
	formPage page = iota
	chatPage
)

const (
	undersized size = iota
	small
	medium
	large
)

type state struct {
	form formState
	chat chatState
}

type model struct {
	renderer        *lipgloss.Renderer
	page            page
	state           state
	context         context.Context
	session         *session.Session
	pollInterval    time.Duration
	pollChain       int
	notice          string
	noticeID        int
	help            help.Model
	viewportWidth   int
	viewportHeight  int
	widthContainer  int
	heightContainer int
	widthContent    int
	heightContent   int
	size            size
	theme           theme.Theme
}

func NewModel(ctx context.Context, renderer *lipgloss.Renderer, sess *session.Session, pollInterval time.Duration) tea.Model {
	if pollInterval <= 0 {
		pollInterval = session.DefaultPollInterval
	}

	m := model{
		context:         ctx,
		page:            formPage,
		renderer:        renderer,
		session:         sess,
		pollInterval:    pollInterval,
		help:            help.New(),
		theme:           theme.BasicTheme(renderer, nil),
		size:            large,
		widthContainer:  80,
		heightContainer: 30,
		widthContent:    78,
		heightContent:   30,
	}
	m = m.initForm()

	return m
}

func (m model) Init() tea.Cmd {
	return m.state.form.focusCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height

		switch {
		case m.viewportWidth < 20 || m.viewportHeight < 10:
			m.size = undersized
			m.widthContainer = m.viewportWidth
			m.heightContainer = m.viewportHeight
		case m.viewportWidth < 50:
			m.size = small
			m.widthContainer = m.viewportWidth
			m.heightContainer = m.viewportHeight
		case m.viewportWidth < 80:
			m.size = medium
			m.widthContainer = 50
			m.heightContainer = int(math.Min(float64(msg.Height), 30))
		default:
			m.size = large
			m.widthContainer = 80
			m.heightContainer = int(math.Min(float64(msg.Height), 30))
		}

		m.widthContent = m.widthContainer - 2
		m.heightContent = m.heightContainer
		m = m.resizeChat()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.page == chatPage {
				return m, tea.Sequence(m.leaveCmd(), tea.Quit)
			}
			return m, tea.Quit
		}
	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	}

	switch m.page {
	case chatPage:
		return m.ChatUpdate(msg)
	default:
		return m.FormUpdate(msg)
	}
}

func (m model) View() string {
	if m.size == undersized {
		return m.theme.TextError().Render("Terminal too small")
	}

	var content string
	switch m.page {
	case chatPage:
		content = m.ChatView()
	default:
		content = m.FormView()
	}

	footer := m.FooterView()
	height := max(m.heightContainer-lipgloss.Height(footer), 0)

	sb := strings.Builder{}
	sb.WriteString(m.theme.Base().Width(m.widthContainer).Height(height).Render(content))
	sb.WriteString("\n")
	sb.WriteString(footer)

	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Base().
			MaxWidth(m.widthContainer).
			MaxHeight(m.heightContainer).
			Render(sb.String()),
	)
}

func (m model) FooterView() string {
	var notice string
	if m.notice != "" {
		notice = m.theme.PanelError().Padding(0, 1).Render(m.notice)
	} else {
		notice = m.theme.Base().Faint(true).Render("anonymous • ephemeral • rooms expire after an hour")
	}

	bar := m.theme.Base().
		Width(m.widthContent).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border()).
		Align(lipgloss.Center).
		Render(m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Center, notice, bar)
}

func (m model) SwitchPage(page page) model {
	m.page = page
	return m
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, sess *session.Session, pollInterval time.Duration) error {
	p := tea.NewProgram(
		NewModel(ctx, lipgloss.DefaultRenderer(), sess, pollInterval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
