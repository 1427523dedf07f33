package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	defaultInputWidth  = 60
	minInputWidth      = 20
	wrapMargin         = 8
	editorWidthPadding = 4
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
)

// session is the interactive loop state. It owns the selection and the
// add-item line editor; the task list itself is shared with main.
type session struct {
	list          *TaskList
	keys          keyMap
	selected      int
	mode          mode
	input         textinput.Model
	renderer      *glamour.TermRenderer
	rendererWidth int
	windowWidth   int
	windowHeight  int
	err           error
}

func newSession(list *TaskList) (session, error) {
	ti := textinput.New()
	ti.CharLimit = 0
	ti.Prompt = ""
	ti.Width = defaultInputWidth
	rend, err := newMarkdownRenderer(0)
	if err != nil {
		return session{}, err
	}
	return session{
		list:     list,
		keys:     defaultKeyMap(),
		selected: 0,
		mode:     modeNormal,
		input:    ti,
		renderer: rend,
	}, nil
}

// Err reports the persistence failure that ended the session, if any.
func (s session) Err() error { return s.err }

func (s session) Init() tea.Cmd {
	return nil
}

func (s session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		logger.Debug("KeyMsg received", "key", msg.String(), "mode", s.mode)
		if s.mode == modeAdd {
			return s.handleAddKey(msg)
		}
		return s.handleNormalKey(msg)
	case tea.WindowSizeMsg:
		logger.Debug("WindowSizeMsg received", "width", msg.Width, "height", msg.Height)
		if msg.Width > 0 {
			s.windowWidth = msg.Width
			s = s.applyEditorWidth()
			s = s.ensureRendererWidth(msg.Width)
		}
		if msg.Height > 0 {
			s.windowHeight = msg.Height
		}
	}
	return s, nil
}

func (s session) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return s, tea.Quit
	case key.Matches(msg, s.keys.Down):
		if n := s.list.PendingLen(); n > 0 && s.selected < n-1 {
			s.selected++
		}
	case key.Matches(msg, s.keys.Up):
		if s.selected > 0 {
			s.selected--
		}
	case key.Matches(msg, s.keys.Add):
		return s.startAdd()
	case key.Matches(msg, s.keys.Complete):
		return s.afterMutation(s.list.CompletePending(s.selected))
	case key.Matches(msg, s.keys.Remove):
		return s.afterMutation(s.list.RemovePending(s.selected))
	case key.Matches(msg, s.keys.Clear):
		return s.afterMutation(s.list.ClearCompleted())
	}
	return s, nil
}

// handleAddKey feeds the line editor. Only Enter leaves the sub-mode; an
// empty line adds nothing.
func (s session) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return s, tea.Quit
	case tea.KeyEnter:
		text := s.input.Value()
		s = s.exitAdd()
		if text == "" {
			return s, nil
		}
		return s.afterMutation(s.list.AddPending(text))
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s session) startAdd() (tea.Model, tea.Cmd) {
	s.mode = modeAdd
	s.input.SetValue("")
	s = s.applyEditorWidth()
	return s, s.input.Focus()
}

func (s session) exitAdd() session {
	s.mode = modeNormal
	s.input.Reset()
	s.input.Blur()
	return s
}

// afterMutation keeps the selection inside the pending list and ends the
// session when the mutation could not be flushed.
func (s session) afterMutation(err error) (tea.Model, tea.Cmd) {
	s.selected = clampCursor(s.selected, s.list.PendingLen())
	if err != nil {
		logger.Error("flush failed", "error", err)
		s.err = err
		return s, tea.Quit
	}
	return s, nil
}

// hasSelection reports whether selected points at a pending item.
func (s session) hasSelection() bool {
	return s.selected >= 0 && s.selected < s.list.PendingLen()
}

func clampCursor(cursor int, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func (s session) applyEditorWidth() session {
	if s.windowWidth <= 0 {
		return s
	}
	width := s.windowWidth - editorWidthPadding
	if width < minInputWidth {
		width = minInputWidth
	}
	s.input.Width = width
	return s
}

func (s session) ensureRendererWidth(totalWidth int) session {
	wrap := totalWidth - wrapMargin
	if wrap < 0 {
		wrap = 0
	}
	if s.renderer != nil && wrap == s.rendererWidth {
		return s
	}
	renderer, err := newMarkdownRenderer(wrap)
	if err != nil {
		logger.Warn("markdown renderer unavailable", "error", err)
		return s
	}
	s.renderer = renderer
	s.rendererWidth = wrap
	return s
}
