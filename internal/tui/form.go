package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formMode int

const (
	createMode formMode = iota
	joinMode
)

const (
	usernameField = iota
	roomField
)

type formState struct {
	mode       formMode
	username   textinput.Model
	roomID     textinput.Model
	focused    int
	submitting bool
}

func (s formState) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m model) initForm() model {
	username := textinput.New()
	username.Placeholder = "Anonymous"
	username.CharLimit = 32
	username.Width = 40
	username.PromptStyle = m.theme.TextBrand()
	username.TextStyle = m.theme.TextAccent()
	username.PlaceholderStyle = m.theme.TextBody()
	username.Focus()

	roomID := textinput.New()
	roomID.Placeholder = "Enter room id..."
	roomID.CharLimit = 64
	roomID.Width = 40
	roomID.PromptStyle = m.theme.TextBrand()
	roomID.TextStyle = m.theme.TextAccent()
	roomID.PlaceholderStyle = m.theme.TextBody()

	prev := m.state.form
	if prev.username.Value() != "" {
		username.SetValue(prev.username.Value())
	}

	m.state.form = formState{
		mode:     prev.mode,
		username: username,
		roomID:   roomID,
		focused:  usernameField,
	}

	return m
}

// FormSwitch returns to the form, keeping the username and the create/join choice.
func (m model) FormSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(formPage)
	m = m.initForm()
	return m, textinput.Blink
}

func (m model) FormView() string {
	s := m.state.form

	var sections []string

	title := "Create Room"
	if s.mode == joinMode {
		title = "Join Room"
	}
	sections = append(sections, m.theme.TextBrand().Bold(true).Render(title))
	sections = append(sections, "")

	instructions := "Start a new room and share its id."
	if s.mode == joinMode {
		instructions = "Enter the id of an existing room."
	}
	sections = append(sections, m.theme.TextBody().Render(instructions))
	sections = append(sections, "")

	sections = append(sections, m.theme.TextAccent().Render("Username:"))
	sections = append(sections, s.username.View())

	if s.mode == joinMode {
		sections = append(sections, "")
		sections = append(sections, m.theme.TextAccent().Render("Room ID:"))
		sections = append(sections, s.roomID.View())
	}

	if s.submitting {
		sections = append(sections, "")
		sections = append(sections, m.theme.TextHighlight().Render("Connecting..."))
	}

	sections = append(sections, "", "")
	sections = append(sections, m.theme.TextBody().Faint(true).Render("Enter to continue • Tab to switch create/join"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return m.theme.Base().
		Width(m.widthContent).
		Height(m.heightContent).
		AlignVertical(lipgloss.Center).
		AlignHorizontal(lipgloss.Center).
		Render(content)
}

func (m model) FormUpdate(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case joinedMsg:
		return m.ChatSwitch()
	case joinFailedMsg:
		m.state.form.submitting = false
		return m.showNotice(noticeFor("join room", msg.err))
	case tea.KeyMsg:
		if m.state.form.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Tab):
			if m.state.form.mode == createMode {
				m.state.form.mode = joinMode
			} else {
				m.state.form.mode = createMode
			}
			return m.focusField(usernameField), nil
		case key.Matches(msg, keys.Up):
			return m.focusField(usernameField), nil
		case key.Matches(msg, keys.Down):
			if m.state.form.mode == joinMode {
				return m.focusField(roomField), nil
			}
			return m, nil
		case key.Matches(msg, keys.Enter):
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	if m.state.form.focused == roomField {
		m.state.form.roomID, cmd = m.state.form.roomID.Update(msg)
	} else {
		m.state.form.username, cmd = m.state.form.username.Update(msg)
	}
	return m, cmd
}

func (m model) submitForm() (model, tea.Cmd) {
	s := m.state.form
	username := s.username.Value()

	if s.mode == createMode {
		m.state.form.submitting = true
		return m, m.createCmd(username)
	}

	if s.focused == usernameField {
		return m.focusField(roomField), nil
	}

	roomID := strings.TrimSpace(s.roomID.Value())
	if roomID == "" {
		return m.showNotice("Room id cannot be empty")
	}

	m.state.form.submitting = true
	return m, m.joinCmd(roomID, username)
}

func (m model) focusField(field int) model {
	m.state.form.focused = field
	if field == roomField {
		m.state.form.username.Blur()
		m.state.form.roomID.Focus()
	} else {
		m.state.form.roomID.Blur()
		m.state.form.username.Focus()
	}
	return m
}
