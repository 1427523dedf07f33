package main

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	title          = "TUI TODO APP"
	pendingLabel   = "TODO"
	completedLabel = "DONE"
	pendingBox     = "- [ ]  "
	completedBox   = "- [X]  "
	promptMarker   = ">"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

var (
	ansiEscapePattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	// Runs of blanks and escape codes at either end of a rendered line.
	leadingPadPattern  = regexp.MustCompile(`^(?:\x1b\[[0-9;]*m|[ \t])+`)
	trailingPadPattern = regexp.MustCompile(`(?:\x1b\[[0-9;]*m|[ \t])+$`)
)

func (s session) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	for _, line := range s.keys.helpLines() {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(pendingLabel) + "\n")
	highlight := s.hasSelection()
	for i, item := range s.list.pending {
		b.WriteString(s.renderRow(pendingBox, item, highlight && i == s.selected))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(completedLabel) + "\n")
	for _, item := range s.list.completed {
		b.WriteString(s.renderRow(completedBox, item, false))
	}
	b.WriteString("\n")

	b.WriteString(s.renderPrompt())
	if s.err != nil {
		b.WriteString("Error: " + s.err.Error() + "\n")
	}
	return s.padViewToWindow(b.String())
}

func (s session) renderPrompt() string {
	if s.mode == modeAdd {
		return promptMarker + " " + s.input.View() + "\n"
	}
	return promptMarker + "\n"
}

// renderRow draws one checkbox row. Item text goes through the markdown
// renderer, so it is not always shown verbatim and a long item wraps onto
// continuation lines under the text column. The selected row is drawn from
// the plain text so the reversed colors cover it evenly.
func (s session) renderRow(box, text string, selected bool) string {
	body := s.renderMarkdownLine(text)
	if selected {
		body = stripANSI(body)
	}
	contPrefix := strings.Repeat(" ", len(box))
	var b strings.Builder
	for i, line := range strings.Split(body, "\n") {
		prefix := box
		if i > 0 {
			prefix = contPrefix
		}
		if selected {
			b.WriteString(selectedStyle.Render(prefix + line))
		} else {
			b.WriteString(prefix + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s session) renderMarkdownLine(raw string) string {
	if s.renderer == nil {
		return raw
	}
	rendered, err := s.renderer.Render(raw + "\n")
	if err != nil {
		return raw
	}
	// Glamour adds margins, padding to the wrap width and blank lines; drop
	// them so wrapped lines align under the checkbox.
	var lines []string
	for _, line := range strings.Split(rendered, "\n") {
		line = trimPadding(line)
		if stripANSI(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return raw
	}
	return strings.Join(lines, "\n")
}

func (s session) padViewToWindow(view string) string {
	if s.windowHeight <= 0 {
		return view
	}
	// The renderer keeps only the last windowHeight lines, so the view must
	// not end in a newline that would push the title off the top.
	view = strings.TrimSuffix(view, "\n")
	lines := strings.Count(view, "\n") + 1
	if lines >= s.windowHeight {
		return view
	}
	return view + strings.Repeat("\n", s.windowHeight-lines)
}

// trimPadding drops blanks at both ends of line but keeps the escape codes
// mixed in with them.
func trimPadding(line string) string {
	dropBlanks := func(run string) string {
		return strings.NewReplacer(" ", "", "\t", "").Replace(run)
	}
	line = leadingPadPattern.ReplaceAllStringFunc(line, dropBlanks)
	return trailingPadPattern.ReplaceAllStringFunc(line, dropBlanks)
}

// stripANSI removes ANSI escape codes from a string
func stripANSI(s string) string {
	return ansiEscapePattern.ReplaceAllString(s, "")
}

func newMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	wrap := width
	if wrap < 0 {
		wrap = 0
	}
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
}
