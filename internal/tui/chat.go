package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/huddle/pkg/session"
)

const roomExpiredNotice = "Room has expired"

type chatState struct {
	viewport viewport.Model
	input    textinput.Model
}

func (m model) ChatSwitch() (model, tea.Cmd) {
	m = m.SwitchPage(chatPage)
	m.state.form.submitting = false

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 1000
	input.PromptStyle = m.theme.TextBrand()
	input.TextStyle = m.theme.TextAccent()
	input.PlaceholderStyle = m.theme.TextBody()
	input.Focus()

	m.state.chat = chatState{
		viewport: viewport.New(m.widthContent, m.chatHeight()),
		input:    input,
	}
	m = m.resizeChat()

	m.pollChain++
	return m, tea.Batch(textinput.Blink, m.pollCmd(m.pollChain))
}

func (m model) ChatUpdate(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		if msg.chain != m.pollChain {
			return m, nil
		}
		return m, m.pollCmd(msg.chain)
	case pollResultMsg:
		if msg.chain != m.pollChain {
			return m, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrNotJoined) {
				return m, nil
			}
			m.pollChain++
			var switchCmd, noticeCmd tea.Cmd
			m, switchCmd = m.FormSwitch()
			m, noticeCmd = m.showNotice(roomExpiredNotice)
			return m, tea.Batch(switchCmd, noticeCmd)
		}
		if len(msg.messages) > 0 {
			m = m.refreshMessages()
		}
		return m, m.pollTickCmd(msg.chain)
	case sentMsg:
		return m.refreshMessages(), nil
	case sendFailedMsg:
		return m.showNotice(noticeFor("send message", msg.err))
	case leftMsg:
		var switchCmd, noticeCmd tea.Cmd
		m, switchCmd = m.FormSwitch()
		if msg.err != nil {
			m, noticeCmd = m.showNotice(noticeFor("leave room", msg.err))
		}
		return m, tea.Batch(switchCmd, noticeCmd)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			m.pollChain++
			return m, m.leaveCmd()
		case key.Matches(msg, keys.Enter):
			text := m.state.chat.input.Value()
			m.state.chat.input.Reset()
			return m, m.sendCmd(text)
		}
	}

	var inputCmd, viewportCmd tea.Cmd
	m.state.chat.input, inputCmd = m.state.chat.input.Update(msg)
	m.state.chat.viewport, viewportCmd = m.state.chat.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m model) ChatView() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.TextBrand().Bold(true).Render("Room "),
		m.theme.TextAccent().Render(m.session.RoomID()),
		m.theme.TextBody().Render("  as "+m.session.Username()),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.theme.Base().
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(m.theme.Border()).
			Render(m.state.chat.viewport.View()),
		m.state.chat.input.View(),
	)
}

func (m model) chatHeight() int {
	return max(m.heightContent-8, 3)
}

func (m model) resizeChat() model {
	m.state.chat.viewport.Width = m.widthContent
	m.state.chat.viewport.Height = m.chatHeight()
	m.state.chat.input.Width = max(m.widthContent-4, 10)
	return m.refreshMessages()
}

func (m model) refreshMessages() model {
	if m.session == nil {
		return m
	}
	m.state.chat.viewport.SetContent(m.renderMessages(m.session.Messages()))
	m.state.chat.viewport.GotoBottom()
	return m
}

func (m model) renderMessages(msgs []session.Message) string {
	if len(msgs) == 0 {
		return m.theme.TextBody().Faint(true).Render("No messages yet.")
	}

	self := m.session.Username()
	width := m.widthContent
	bubbleWidth := max(width*2/3, 10)

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		own := msg.Username == self

		author := msg.Username
		style := m.theme.TextHighlight()
		align := lipgloss.Left
		if own {
			author = "You"
			style = m.theme.TextOwn()
			align = lipgloss.Right
		}

		meta := style.Bold(true).Render(author) + m.theme.TextBody().Faint(true).Render(" "+formatClock(msg.Timestamp))
		body := m.theme.TextAccent().Width(bubbleWidth).Align(align).Render(msg.Text)
		block := lipgloss.JoinVertical(align, meta, body)

		lines = append(lines, lipgloss.PlaceHorizontal(width, align, block))
	}

	return strings.Join(lines, "\n")
}

// formatClock renders a message timestamp as local HH:MM.
func formatClock(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ""
	}
	return t.Local().Format("15:04")
}
