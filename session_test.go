package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// newTestSession builds a session without the markdown renderer so rows
// render verbatim.
func newTestSession(t *testing.T, contents string) session {
	t.Helper()
	s, err := newSession(newTestList(t, contents))
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	s.renderer = nil
	return s
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, s session, msgs ...tea.KeyMsg) (session, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = s.Update(msg)
		var ok bool
		s, ok = next.(session)
		if !ok {
			t.Fatalf("Update returned %T, want session", next)
		}
	}
	return s, cmd
}

func keys(text string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, runeKey(r))
	}
	return msgs
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// golden compares got against testdata/<name>.golden. GOLDEN_UPDATE=1
// rewrites the file.
func golden(t *testing.T, name string, got string) {
	t.Helper()
	goldenPath := filepath.Join("testdata", name+".golden")
	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.MkdirAll("testdata", 0o755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}
	if !bytes.Equal([]byte(got), want) {
		t.Errorf("output mismatch for %s\nWant:\n%s\nGot:\n%s", name, want, got)
	}
}

func TestViewLayout(t *testing.T) {
	s := newTestSession(t, "TODO: a\nTODO: b\nDONE: c\n")
	golden(t, "screen", stripANSI(s.View()))
}

func TestNavigation(t *testing.T) {
	s := newTestSession(t, "TODO: a\nTODO: b\nTODO: c\n")

	s, _ = press(t, s, runeKey('k'))
	if s.selected != 0 {
		t.Fatalf("k at top: selected = %d, want 0", s.selected)
	}
	s, _ = press(t, s, runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'))
	if s.selected != 2 {
		t.Fatalf("j past bottom: selected = %d, want 2", s.selected)
	}
	s, _ = press(t, s, runeKey('k'))
	if s.selected != 1 {
		t.Fatalf("k: selected = %d, want 1", s.selected)
	}
	s, _ = press(t, s, runeKey('J'), runeKey('x'), tea.KeyMsg{Type: tea.KeyDown})
	if s.selected != 1 {
		t.Fatalf("unbound keys moved selection to %d", s.selected)
	}
}

func TestNavigationOnEmptyList(t *testing.T) {
	s := newTestSession(t, "")
	s, _ = press(t, s, runeKey('j'), runeKey('k'))
	if s.selected != 0 || s.hasSelection() {
		t.Fatalf("empty list: selected = %d, hasSelection = %v", s.selected, s.hasSelection())
	}
}

func TestAddItem(t *testing.T) {
	s := newTestSession(t, "")
	s, _ = press(t, s, runeKey('a'))
	if s.mode != modeAdd {
		t.Fatalf("a did not enter add mode")
	}
	// q, t and r are text while editing.
	s, _ = press(t, s, keys("buy milkq")...)
	s, _ = press(t, s, tea.KeyMsg{Type: tea.KeyBackspace})
	if !strings.Contains(s.View(), "buy milk") {
		t.Fatalf("typed text not echoed:\n%s", s.View())
	}
	s, _ = press(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.mode != modeAdd {
		t.Fatalf("esc left add mode")
	}
	s, cmd := press(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatalf("enter quit the session")
	}
	if s.mode != modeNormal {
		t.Fatalf("enter did not leave add mode")
	}
	assertItems(t, "pending", s.list.Pending(), []string{"buy milk"})
	if got := readFile(t, s.list.Path()); got != "TODO: buy milk\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestAddEmptyLineAddsNothing(t *testing.T) {
	s := newTestSession(t, "")
	s, _ = press(t, s, runeKey('a'), runeKey('x'), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})
	if s.mode != modeNormal {
		t.Fatalf("enter did not leave add mode")
	}
	assertItems(t, "pending", s.list.Pending(), nil)
	if _, err := os.Stat(s.list.Path()); !os.IsNotExist(err) {
		t.Fatalf("empty submission wrote the file: %v", err)
	}
}

func TestDispatchMutations(t *testing.T) {
	s := newTestSession(t, "TODO: a\nTODO: b\nTODO: c\nDONE: x\n")

	s, _ = press(t, s, runeKey('j'), runeKey('t'))
	assertItems(t, "pending", s.list.Pending(), []string{"a", "c"})
	assertItems(t, "completed", s.list.Completed(), []string{"x", "b"})
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}

	s, _ = press(t, s, runeKey('r'))
	assertItems(t, "pending", s.list.Pending(), []string{"a"})
	if s.selected != 0 {
		t.Fatalf("after removing last row selected = %d, want 0", s.selected)
	}

	s, _ = press(t, s, runeKey('c'))
	assertItems(t, "completed", s.list.Completed(), nil)
	assertItems(t, "pending", s.list.Pending(), []string{"a"})

	if got := readFile(t, s.list.Path()); got != "TODO: a\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestSelectionClampsWhenListShrinks(t *testing.T) {
	s := newTestSession(t, "TODO: a\nTODO: b\nTODO: c\n")
	s, _ = press(t, s, runeKey('j'), runeKey('j'))
	if s.selected != 2 {
		t.Fatalf("selected = %d, want 2", s.selected)
	}
	s, _ = press(t, s, runeKey('r'))
	if s.selected > s.list.PendingLen()-1 {
		t.Fatalf("selected = %d with %d pending", s.selected, s.list.PendingLen())
	}
	s, _ = press(t, s, runeKey('t'), runeKey('t'))
	if s.list.PendingLen() != 0 {
		t.Fatalf("pending = %q, want empty", s.list.Pending())
	}
	if s.hasSelection() {
		t.Fatalf("empty list still has a selection")
	}
	// Nothing left to act on; these must be no-ops.
	s, _ = press(t, s, runeKey('t'), runeKey('r'))
	assertItems(t, "completed", s.list.Completed(), []string{"b", "a"})
	if strings.Contains(stripANSI(s.View()), "- [ ]") {
		t.Fatalf("empty pending list rendered a row:\n%s", s.View())
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		s := newTestSession(t, "")
		if _, cmd := press(t, s, msg); !isQuit(cmd) {
			t.Fatalf("%s did not quit", msg)
		}
	}
}

func TestFlushFailureEndsSession(t *testing.T) {
	s := newTestSession(t, "")
	s.list.path = filepath.Join(t.TempDir(), "missing-dir", "todo")
	s, cmd := press(t, s, runeKey('c'))
	if !isQuit(cmd) {
		t.Fatalf("flush failure did not quit")
	}
	if s.Err() == nil {
		t.Fatalf("flush failure not recorded")
	}
	if !strings.Contains(s.View(), "Error: ") {
		t.Fatalf("flush failure not shown:\n%s", s.View())
	}
}
