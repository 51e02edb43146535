package gui

import (
	"strings"
	"unicode/utf8"

	"github.com/jesseduffield/gocui"
)

// searchInput is the filterInputPanel value while the vault search text is
// being typed.
const searchInput = "search"

// doStartFilter starts filter mode for the focused section panel
func (g *Gui) doStartFilter() error {
	if g.filterInputActive {
		return nil
	}
	p, ok := g.panels[g.currentColumn]
	if !ok {
		return nil
	}
	p.filter = ""
	g.beginInput(g.currentColumn, "")
	return g.Layout(g.g)
}

// doStartSearch starts typing the vault search text, seeded with the
// current text.
func (g *Gui) doStartSearch() error {
	if g.filterInputActive {
		return nil
	}
	g.beginInput(searchInput, g.manager.SearchText())
	return g.Layout(g.g)
}

func (g *Gui) beginInput(target, text string) {
	g.filterInputActive = true
	g.filterInputPanel = target
	g.filterInputText = text
	g.filterCursorPos = len(text)
}

// filterCommit commits the filter
func (g *Gui) filterCommit() error {
	return g.commitFilter(g.g)
}

func (g *Gui) commitFilter(gui *gocui.Gui) error {
	g.applyInput()
	return g.Layout(gui)
}

// applyInput ends input mode and hands the typed text to its target: the
// vault search text, or the filter of a section panel.
func (g *Gui) applyInput() {
	text := g.filterInputText
	target := g.filterInputPanel
	g.endInput()

	if target == searchInput {
		g.manager.SetSearchText(text)
		return
	}
	if p, ok := g.panels[target]; ok {
		p.filter = text
		p.cursor = 0
	}
}

func (g *Gui) endInput() {
	g.filterInputActive = false
	g.filterInputText = ""
	g.filterInputPanel = ""
	g.filterCursorPos = 0
}

func (g *Gui) isFilteringPanel(panel string) bool {
	return g.filterInputActive && g.filterInputPanel == panel
}

func (g *Gui) getFilterForPanel(panel string) string {
	if p, ok := g.panels[panel]; ok {
		return p.filter
	}
	return ""
}

func (g *Gui) hasActiveFilter(panel string) bool {
	return g.getFilterForPanel(panel) != ""
}

func (g *Gui) clearCurrentFilter(gui *gocui.Gui) error {
	if p, ok := g.panels[g.currentColumn]; ok {
		p.filter = ""
		p.cursor = 0
	}
	return g.Layout(gui)
}

func (g *Gui) cancelFilterInput(gui *gocui.Gui) error {
	g.endInput()
	return g.Layout(gui)
}

// doFilterBackspace handles backspace in filter mode
func (g *Gui) doFilterBackspace() error {
	if !g.filterInputActive {
		return nil
	}
	g.deleteFilterRune()
	return g.Layout(g.g)
}

// deleteFilterRune removes the whole rune before the cursor.
func (g *Gui) deleteFilterRune() {
	if g.filterCursorPos == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(g.filterInputText[:g.filterCursorPos])
	g.filterInputText = g.filterInputText[:g.filterCursorPos-size] + g.filterInputText[g.filterCursorPos:]
	g.filterCursorPos -= size
}

// moveFilterCursor moves the cursor one rune left (delta < 0) or right.
func (g *Gui) moveFilterCursor(delta int) {
	switch {
	case delta < 0 && g.filterCursorPos > 0:
		_, size := utf8.DecodeLastRuneInString(g.filterInputText[:g.filterCursorPos])
		g.filterCursorPos -= size
	case delta > 0 && g.filterCursorPos < len(g.filterInputText):
		_, size := utf8.DecodeRuneInString(g.filterInputText[g.filterCursorPos:])
		g.filterCursorPos += size
	}
}

// makeFilterCharAction creates a handler for a specific character
func (g *Gui) makeFilterCharAction(ch rune) func() error {
	return func() error {
		if !g.filterInputActive {
			return nil
		}
		return g.insertFilterChar(g.g, ch)
	}
}

// insertFilterChar inserts a character at the cursor position
func (g *Gui) insertFilterChar(gui *gocui.Gui, ch rune) error {
	g.insertFilterRune(ch)
	return g.Layout(gui)
}

func (g *Gui) insertFilterRune(ch rune) {
	r := string(ch)
	g.filterInputText = g.filterInputText[:g.filterCursorPos] + r + g.filterInputText[g.filterCursorPos:]
	g.filterCursorPos += len(r)
}

// MatchesFilter checks if text contains the filter string (case-insensitive)
func MatchesFilter(text, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(filter))
}
