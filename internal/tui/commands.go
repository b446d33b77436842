package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hilthontt/huddle/pkg/session"
)

const noticeDuration = 3 * time.Second

type joinedMsg struct{}

type joinFailedMsg struct {
	err error
}

type pollTickMsg struct {
	chain int
}

type pollResultMsg struct {
	chain    int
	messages []session.Message
	err      error
}

type sentMsg struct {
	message session.Message
}

type sendFailedMsg struct {
	err error
}

type leftMsg struct {
	err error
}

type clearNoticeMsg struct {
	id int
}

func (m model) createCmd(username string) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Create(m.context, username); err != nil {
			return joinFailedMsg{err: err}
		}
		return joinedMsg{}
	}
}

func (m model) joinCmd(roomID, username string) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Join(m.context, roomID, username); err != nil {
			return joinFailedMsg{err: err}
		}
		return joinedMsg{}
	}
}

// pollTickCmd schedules the next poll of the given tick chain.
func (m model) pollTickCmd(chain int) tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{chain: chain}
	})
}

func (m model) pollCmd(chain int) tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.session.Poll(m.context)
		return pollResultMsg{chain: chain, messages: msgs, err: err}
	}
}

func (m model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		msg, err := m.session.Send(m.context, text)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return sentMsg{message: msg}
	}
}

func (m model) leaveCmd() tea.Cmd {
	return func() tea.Msg {
		return leftMsg{err: m.session.Leave(m.context)}
	}
}

// showNotice displays text until the matching clearNoticeMsg arrives.
func (m model) showNotice(text string) (model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	id := m.noticeID
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

func noticeFor(action string, err error) string {
	if errors.Is(err, session.ErrEmptyMessage) || errors.Is(err, session.ErrRoomRequired) {
		return err.Error()
	}
	return "Failed to " + action
}
