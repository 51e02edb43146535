package gui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jesseduffield/gocui"

	"github.com/marjoballabani/lazyvault/pkg/gui/icons"
	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

func (g *Gui) Layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()

	// Background view (covers entire screen, behind everything)
	if v, err := gui.SetView(g.views.background, -1, -1, maxX, maxY, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
	}

	leftWidth := maxX / 3
	leftHeight := maxY - 2 // Leave room for help bar
	commandsHeight := 3

	if err := g.layoutSections(gui, leftWidth, leftHeight); err != nil {
		return err
	}

	// Details panel (top-right, big)
	if v, err := gui.SetView(g.views.details, leftWidth, 0, maxX-1, maxY-commandsHeight-3, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Wrap = true
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
		v.SelBgColor = gocui.ColorDefault
		v.SelFgColor = gocui.ColorDefault
		v.FrameRunes = g.roundedFrameRunes
	}

	if v, err := gui.View(g.views.details); err == nil {
		title := " " + icons.DETAILS_ICON + " " + g.i18n.T("activeFilter") + " "
		if g.currentColumn == detailsColumn {
			gui.SelFrameColor = g.theme.ActiveBorderColor
			gui.SelFgColor = g.theme.ActiveBorderColor
			v.Title = title + "(j/k scroll) "
			v.TitleColor = g.theme.ActiveBorderColor
			v.FrameColor = g.theme.ActiveBorderColor
		} else {
			v.Title = title
			v.TitleColor = g.theme.InactiveBorderColor
			v.FrameColor = g.theme.InactiveBorderColor
		}
		g.updateDetailsView(v)
		v.SetOrigin(0, g.detailsScrollPos)
	}

	// Commands panel (bottom-right, single row)
	if v, err := gui.SetView(g.views.commands, leftWidth, maxY-commandsHeight-2, maxX-1, maxY-3, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = " " + icons.COMMAND_ICON + " Commands "
		v.TitleColor = g.theme.InactiveBorderColor
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
		v.SelBgColor = gocui.ColorDefault
		v.SelFgColor = gocui.ColorDefault
		v.FrameRunes = g.roundedFrameRunes
	}

	if v, err := gui.View(g.views.commands); err == nil {
		g.updateCommandsView(v)
	}

	// Help bar (bottom, full width)
	if v, err := gui.SetView(g.views.help, 0, maxY-2, maxX-1, maxY, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
		v.SelBgColor = gocui.ColorDefault
		v.SelFgColor = gocui.ColorDefault
	}

	if v, err := gui.View(g.views.help); err == nil {
		g.updateHelpView(v)
	}

	// Help modal (keyboard shortcuts)
	if g.helpOpen {
		modalWidth := 56
		modalHeight := 22
		if modalHeight > maxY-4 {
			modalHeight = maxY - 4
		}
		modalX := (maxX - modalWidth) / 2
		modalY := (maxY - modalHeight) / 2

		if v, err := gui.SetView(g.views.helpModal, modalX, modalY, modalX+modalWidth, modalY+modalHeight, 0); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.Title = " " + icons.KEYBOARD_ICON + " Keyboard Shortcuts "
			v.TitleColor = g.theme.ActiveBorderColor
			v.FrameColor = g.theme.ActiveBorderColor
			v.FrameRunes = g.roundedFrameRunes
			v.SelBgColor = g.theme.SelectedLineBgColor
			v.SelFgColor = gocui.ColorDefault
		}

		if v, err := gui.View(g.views.helpModal); err == nil {
			g.renderHelpContent(v)
			if _, err := gui.SetCurrentView(g.views.helpModal); err != nil {
				return fmt.Errorf("failed to set help view: %w", err)
			}
		}

		return nil
	}
	gui.DeleteView(g.views.helpModal)

	// Modal (centered popup for command logs)
	if g.modalOpen {
		modalWidth := maxX - 10
		modalHeight := 15
		if modalHeight > maxY-6 {
			modalHeight = maxY - 6
		}
		modalX := (maxX - modalWidth) / 2
		modalY := (maxY - modalHeight) / 2

		if v, err := gui.SetView(g.views.modal, modalX, modalY, modalX+modalWidth, modalY+modalHeight, 0); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.Title = " Command Log "
			v.BgColor = gocui.ColorDefault
			v.FgColor = gocui.ColorDefault
			v.SelBgColor = gocui.ColorDefault
			v.SelFgColor = gocui.ColorDefault
			v.FrameRunes = g.roundedFrameRunes
			v.Wrap = true
		}

		if v, err := gui.View(g.views.modal); err == nil {
			v.Clear()
			if len(g.commandHistory) == 0 {
				fmt.Fprintln(v, "  No commands yet")
			}
			for _, cmd := range g.commandHistory {
				fmt.Fprintf(v, "  [%s] %s%s\033[0m: %s\n", cmd.Timestamp, statusColor(cmd.Status), cmd.Command, cmd.Description)
			}
			fmt.Fprintln(v, "")
			fmt.Fprintln(v, "  \033[36mPress Esc or @ to close\033[0m")
			if _, err := gui.SetCurrentView(g.views.modal); err != nil {
				return fmt.Errorf("failed to set modal view: %w", err)
			}
		}

		return nil
	}
	gui.DeleteView(g.views.modal)

	if _, err := gui.SetCurrentView(g.currentColumn); err != nil {
		return fmt.Errorf("failed to set current view '%s': %w", g.currentColumn, err)
	}

	return nil
}

// layoutSections stacks the section panels down the left column. The
// focused panel, or the last focused one while details has focus, takes
// the spare height.
func (g *Gui) layoutSections(gui *gocui.Gui, width, height int) error {
	focused := -1
	counts := make([]int, len(vaultfilter.SectionOrder))
	for i, kind := range vaultfilter.SectionOrder {
		counts[i] = len(g.visibleRows(string(kind)))
		if string(kind) == g.previousColumn {
			focused = i
		}
	}
	heights := panelHeights(height, focused, counts)

	y := 0
	for i, kind := range vaultfilter.SectionOrder {
		name := string(kind)
		p := g.panels[name]
		y1 := y + heights[i] - 1

		if v, err := gui.SetView(name, 0, y, width-1, y1, 0); err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.BgColor = gocui.ColorDefault
			v.FgColor = gocui.ColorDefault
			v.SelBgColor = g.theme.SelectedLineBgColor
			v.SelFgColor = gocui.ColorDefault
			v.FrameRunes = g.roundedFrameRunes
		}
		y = y1 + 1

		v, err := gui.View(name)
		if err != nil {
			continue
		}

		isFocused := g.currentColumn == name
		hasCommittedFilter := p.filter != ""
		switch {
		case isFocused && hasCommittedFilter:
			gui.SelFrameColor = g.theme.FilterBorderColor
			gui.SelFgColor = g.theme.FilterBorderColor
			v.TitleColor = g.theme.FilterBorderColor
			v.FrameColor = g.theme.FilterBorderColor
		case isFocused:
			gui.SelFrameColor = g.theme.ActiveBorderColor
			gui.SelFgColor = g.theme.ActiveBorderColor
			v.TitleColor = g.theme.ActiveBorderColor
			v.FrameColor = g.theme.ActiveBorderColor
		default:
			v.TitleColor = g.theme.InactiveBorderColor
			v.FrameColor = g.theme.InactiveBorderColor
		}
		v.Title = g.sectionTitle(p)

		rows := g.visibleRows(name)
		total := len(g.rowsFor(p.kind))
		switch {
		case hasCommittedFilter || g.isFilteringPanel(name):
			v.Footer = fmt.Sprintf("%d/%d matched", len(rows), total)
		case isFocused && len(rows) > 0:
			v.Footer = fmt.Sprintf("%d of %d", p.cursor+1, len(rows))
		default:
			v.Footer = ""
		}
		g.updateSectionView(v, p, rows)
	}
	return nil
}

// sectionTitle is the panel title. Sections whose header is hidden are
// titled by their root node instead.
func (g *Gui) sectionTitle(p *panel) string {
	title := g.i18n.T(p.titleKey)
	if p.kind == vaultfilter.SectionOrganization && g.filters.Organization != nil && !g.filters.Organization.Header.ShowHeader {
		if g.orgTree != nil {
			title = g.orgTree.Node.Name
		}
	}
	if icon := p.icon(); icon != "" {
		return " " + icon + " " + title + " "
	}
	return " " + title + " "
}

func (g *Gui) updateSectionView(v *gocui.View, p *panel, rows []row) {
	v.Clear()

	if g.isLoading && len(rows) == 0 {
		v.Highlight = false
		fmt.Fprint(v, g.getLoadingText(g.loadingText))
		return
	}

	v.Highlight = g.currentColumn == string(p.kind) && len(rows) > 0
	for _, r := range rows {
		fmt.Fprintln(v, g.formatRow(r))
	}

	if len(rows) > 0 {
		if p.cursor >= len(rows) {
			p.cursor = len(rows) - 1
		}
		v.FocusPoint(0, p.cursor, true)
	}
}

// formatRow renders one tree line: active marker, indent, collapse arrow,
// icon and name.
func (g *Gui) formatRow(r row) string {
	marker := " "
	if r.active {
		marker = g.getActiveColorCode() + "*" + "\033[0m"
	}

	arrow := "  "
	if r.hasChildren {
		if r.collapsed {
			arrow = icons.ARROW_EXPAND + " "
		} else {
			arrow = icons.ARROW_COLLAPSE + " "
		}
	}

	icon := icons.ForNode(r.icon)
	if icon != "" {
		icon += " "
	}

	name := r.name
	if r.disabled {
		name = fmt.Sprintf("%s%s %s\033[0m", g.theme.DisabledAnsiColorCode(), name, icons.DISABLED)
	}
	return fmt.Sprintf("%s%s%s%s%s", marker, strings.Repeat("  ", r.depth), arrow, icon, name)
}

func (g *Gui) updateDetailsView(v *gocui.View) {
	v.Clear()
	if g.isLoading {
		fmt.Fprint(v, g.getLoadingText(g.loadingText))
		return
	}
	fmt.Fprint(v, renderDetails(detailsData{
		Change:      g.lastChange,
		SearchText:  g.manager.SearchText(),
		Placeholder: g.manager.SearchPlaceholder(),
		Collections: g.manager.CurrentCollections(),
		Collapsed:   g.manager.CollapsedNodes().IDs(),
	}))
}

// detailsData is what the details panel shows about the active filter.
type detailsData struct {
	Change      vaultfilter.FilterChange
	SearchText  string
	Placeholder string
	Collections []vaultfilter.CollectionView
	Collapsed   []string
}

// renderDetails formats the active filter snapshot as highlighted JSON
// followed by the search state.
func renderDetails(d detailsData) string {
	var content strings.Builder
	fmt.Fprintf(&content, "\033[36m─── version %d ───\033[0m\n\n", d.Change.Version)

	data, err := json.MarshalIndent(d.Change.Filter.Snapshot(), "", "  ")
	if err != nil {
		fmt.Fprintf(&content, "Error formatting filter: %v\n", err)
	} else {
		content.WriteString(colorizeJSON(string(data)))
		if !strings.HasSuffix(content.String(), "\n") {
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	if d.SearchText != "" {
		fmt.Fprintf(&content, "\033[33m%s\033[0m %q\n", icons.SELECTED, d.SearchText)
	} else {
		fmt.Fprintf(&content, "\033[90m%s\033[0m\n", d.Placeholder)
	}

	if len(d.Collections) > 0 {
		names := make([]string, 0, len(d.Collections))
		for _, c := range d.Collections {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&content, "\033[90mcollections in scope:\033[0m %s\n", strings.Join(names, ", "))
	}
	if len(d.Collapsed) > 0 {
		fmt.Fprintf(&content, "\033[90mcollapsed:\033[0m %s\n", strings.Join(d.Collapsed, ", "))
	}
	return content.String()
}

func statusColor(status string) string {
	switch status {
	case "running", "warning":
		return "\033[33m" // Yellow
	case "error":
		return "\033[31m" // Red
	case "success":
		return "\033[32m" // Green
	default:
		return "\033[0m"
	}
}

func (g *Gui) updateCommandsView(v *gocui.View) {
	v.Clear()

	if len(g.commandHistory) == 0 {
		return
	}

	cmd := g.commandHistory[len(g.commandHistory)-1]

	var statusIcon string
	switch cmd.Status {
	case "running":
		statusIcon = icons.LOADING
	case "warning":
		statusIcon = icons.WARNING
	case "error":
		statusIcon = icons.ERROR
	case "success":
		statusIcon = icons.SUCCESS
	default:
		statusIcon = "•"
	}

	fmt.Fprintf(v, "%s%s %s\033[0m %s", statusColor(cmd.Status), statusIcon, cmd.Command, cmd.Description)
}

func (g *Gui) updateHelpView(v *gocui.View) {
	v.Clear()

	// Show filter input when typing
	if g.filterInputActive {
		name := g.getPanelNameFor(g.filterInputPanel)
		beforeCursor := g.filterInputText[:g.filterCursorPos]
		afterCursor := g.filterInputText[g.filterCursorPos:]
		// Cursor shown as reverse video - highlight char at cursor or space if at end
		cursorChar, rest := " ", ""
		if len(afterCursor) > 0 {
			cursorChar = string(afterCursor[0])
			rest = afterCursor[1:]
		}
		label := "Filter " + name
		if g.filterInputPanel == searchInput {
			label = name
		}
		prompt := fmt.Sprintf(" %s%s:\033[0m %s\033[7m%s\033[0m%s", g.theme.FilterAnsiColorCode(), label, beforeCursor, cursorChar, rest)
		fmt.Fprintf(v, "%s  \033[90m(Enter to apply, Esc to cancel)\033[0m", prompt)
		return
	}

	if filter := g.getFilterForPanel(g.currentColumn); filter != "" {
		fmt.Fprintf(v, " \033[33m%s filtered:\033[0m '%s'  \033[90m(Esc to clear filter)\033[0m", g.getPanelName(), filter)
		return
	}

	search := g.manager.SearchText()
	if search == "" {
		search = "\033[90m" + g.manager.SearchPlaceholder() + "\033[0m"
	}
	helpText := fmt.Sprintf(" \033[35ms\033[0m %s  \033[36mj/k\033[0m move  \033[33mspace\033[0m apply  \033[32mz\033[0m collapse  \033[32mx\033[0m all  \033[35m?\033[0m help  \033[31mq\033[0m quit", search)
	versionText := fmt.Sprintf("\033[90mv%s\033[0m ", g.version)

	width, _ := v.Size()
	padding := width - visibleLength(helpText) - visibleLength(versionText)
	if padding < 1 {
		padding = 1
	}

	fmt.Fprintf(v, "%s%*s%s", helpText, padding, "", versionText)
}

// visibleLength counts the runes of s outside ANSI escape sequences.
func visibleLength(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			n++
		}
	}
	return n
}
