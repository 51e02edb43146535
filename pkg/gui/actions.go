package gui

import (
	"context"
	"fmt"

	"github.com/jesseduffield/gocui"
	"github.com/pkg/errors"

	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

// Actions - clean handler functions without state checks.
// State checks are handled by the binding system's GetDisabledReason.

// doQuit exits the application
func (g *Gui) doQuit() error {
	return gocui.ErrQuit
}

// doEscape handles escape key - closes modals, cancels filter, or clears filter
func (g *Gui) doEscape() error {
	// Priority: help popup > command modal > filter input > committed filter
	if g.helpOpen {
		g.closeHelp()
		return g.Layout(g.g)
	}
	if g.modalOpen {
		g.modalOpen = false
		return g.Layout(g.g)
	}
	if g.filterInputActive {
		return g.cancelFilterInput(g.g)
	}
	if g.hasActiveFilter(g.currentColumn) {
		return g.clearCurrentFilter(g.g)
	}
	return nil
}

// doToggleHelp toggles the help popup
func (g *Gui) doToggleHelp() error {
	if g.helpOpen {
		g.closeHelp()
	} else {
		g.buildHelpPopup()
		g.helpOpen = true
	}
	return g.Layout(g.g)
}

func (g *Gui) closeHelp() {
	g.helpOpen = false
	g.helpPopup = nil
}

// doToggleModal toggles the command log modal
func (g *Gui) doToggleModal() error {
	g.modalOpen = !g.modalOpen
	return g.Layout(g.g)
}

// Context-specific handlers for help popup
func (g *Gui) helpMoveUp() error {
	if g.helpPopup != nil {
		g.helpPopup.MoveUp()
	}
	return g.Layout(g.g)
}

func (g *Gui) helpMoveDown() error {
	if g.helpPopup != nil {
		g.helpPopup.MoveDown()
	}
	return g.Layout(g.g)
}

func (g *Gui) helpExecute() error {
	popup := g.helpPopup
	g.closeHelp()
	if popup != nil {
		if err := popup.Execute(); err != nil {
			return err
		}
	}
	return g.Layout(g.g)
}

// Context-specific handlers for filter mode
func (g *Gui) filterCursorLeft() error {
	g.moveFilterCursor(-1)
	return g.Layout(g.g)
}

func (g *Gui) filterCursorRight() error {
	g.moveFilterCursor(1)
	return g.Layout(g.g)
}

// Block handler - does nothing (for modal context)
func (g *Gui) blockAction() error {
	return nil
}

// moveColumn shifts focus by delta columns, wrapping around.
func (g *Gui) moveColumn(delta int) error {
	cols := columns()
	idx := 0
	for i, c := range cols {
		if c == g.currentColumn {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(cols)) % len(cols)
	return g.setFocus(g.g, cols[idx])
}

func (g *Gui) doColumnLeft() error  { return g.moveColumn(-1) }
func (g *Gui) doColumnRight() error { return g.moveColumn(1) }
func (g *Gui) doNextColumn() error  { return g.moveColumn(1) }

// doCursorUp moves selection up in current panel
func (g *Gui) doCursorUp() error {
	if g.currentColumn == detailsColumn {
		if g.detailsScrollPos > 0 {
			g.detailsScrollPos--
		}
		return g.Layout(g.g)
	}
	if p, ok := g.panels[g.currentColumn]; ok && p.cursor > 0 {
		p.cursor--
	}
	return g.Layout(g.g)
}

// doCursorDown moves selection down in current panel
func (g *Gui) doCursorDown() error {
	if g.currentColumn == detailsColumn {
		g.detailsScrollPos++
		return g.Layout(g.g)
	}
	if p, ok := g.panels[g.currentColumn]; ok {
		if p.cursor < len(g.visibleRows(g.currentColumn))-1 {
			p.cursor++
		}
	}
	return g.Layout(g.g)
}

// doApply applies the node under the cursor as the active filter.
func (g *Gui) doApply() error {
	r, ok := g.currentRow()
	if !ok {
		return nil
	}
	if r.apply == nil {
		g.logCommand("apply", fmt.Sprintf("%s is a heading", r.name), "warning")
		return g.Layout(g.g)
	}
	return g.runAction("apply", "", r.apply)
}

// doToggleCollapse collapses or expands the node under the cursor.
func (g *Gui) doToggleCollapse() error {
	r, ok := g.currentRow()
	if !ok || !r.hasChildren {
		return nil
	}
	return g.runAction("z", "", func(ctx context.Context) error {
		return g.manager.ToggleCollapse(ctx, r.id)
	})
}

// doAdd runs the add action of the focused section.
func (g *Gui) doAdd() error {
	add := g.sectionAdd(g.currentColumn)
	if add == nil {
		return nil
	}
	if add.Route != "" {
		g.logCommand("a", fmt.Sprintf("%s: open %s", g.i18n.T(add.Text), add.Route), "running")
		return g.Layout(g.g)
	}
	return g.runAction("a", "", add.Action)
}

// doEdit runs the edit action of the node under the cursor.
func (g *Gui) doEdit() error {
	r, ok := g.currentRow()
	if !ok || r.edit == nil {
		return nil
	}
	return g.runAction("e", "", r.edit)
}

// doResetFilter shows all items again.
func (g *Gui) doResetFilter() error {
	return g.runAction("x", "Showing all items", g.manager.ResetFilter)
}

// doRefresh reloads organizations and collections, then rebinds the
// rebuilt sections.
func (g *Gui) doRefresh() error {
	g.logCommand("r", "Reloading vault...", "running")
	g.isLoading = true
	g.loadingText = g.i18n.T("loading")

	go func() {
		err := g.manager.ReloadOrganizations(g.ctx)
		if err == nil {
			err = g.manager.ReloadCollections(g.ctx)
		}
		g.g.Update(func(*gocui.Gui) error {
			g.isLoading = false
			g.loadingText = ""
			if err != nil {
				g.logger.WithError(err).Error("reload failed")
				g.logCommand("r", fmt.Sprintf("Failed: %v", errors.Cause(err)), "error")
				return nil
			}
			g.bindSections()
			g.logCommand("r", "Vault reloaded", "success")
			return nil
		})
	}()
	return g.Layout(g.g)
}

// sectionAdd returns the add entry of a section panel, if any.
func (g *Gui) sectionAdd(name string) *vaultfilter.AddAction {
	switch vaultfilter.SectionKind(name) {
	case vaultfilter.SectionOrganization:
		if g.filters.Organization != nil {
			return g.filters.Organization.Add
		}
	case vaultfilter.SectionType:
		if g.filters.Type != nil {
			return g.filters.Type.Add
		}
	case vaultfilter.SectionFolder:
		if g.filters.Folder != nil {
			return g.filters.Folder.Add
		}
	case vaultfilter.SectionCollection:
		if g.filters.Collection != nil {
			return g.filters.Collection.Add
		}
	case vaultfilter.SectionTrash:
		if g.filters.Trash != nil {
			return g.filters.Trash.Add
		}
	}
	return nil
}

// Mouse click handlers

func (g *Gui) doHelpClick() error {
	if g.helpPopup == nil {
		return nil
	}
	v, _ := g.g.View(g.views.helpModal)
	if v == nil {
		return nil
	}
	_, cy := v.Cursor()
	_, oy := v.Origin()
	clickedLine := cy + oy

	if clickedLine >= 0 && clickedLine < len(g.helpPopup.Items) {
		if !g.helpPopup.Items[clickedLine].IsHeader {
			g.helpPopup.SelectedIdx = clickedLine
		}
	}
	return g.Layout(g.g)
}

// makePanelClick focuses a section panel and moves its cursor to the
// clicked row.
func (g *Gui) makePanelClick(name string) func() error {
	return func() error {
		if g.helpOpen {
			g.closeHelp()
			return g.Layout(g.g)
		}
		if err := g.setFocus(g.g, name); err != nil {
			return err
		}
		v, _ := g.g.View(name)
		p := g.panels[name]
		if v == nil || p == nil {
			return g.Layout(g.g)
		}
		_, cy := v.Cursor()
		_, oy := v.Origin()
		clickedLine := cy + oy

		if clickedLine >= 0 && clickedLine < len(g.visibleRows(name)) {
			p.cursor = clickedLine
		}
		return g.Layout(g.g)
	}
}

func (g *Gui) doDetailsClick() error {
	if g.helpOpen {
		g.closeHelp()
		return g.Layout(g.g)
	}
	return g.setFocus(g.g, detailsColumn)
}

func (g *Gui) doOutsideClick() error {
	if g.helpOpen {
		g.closeHelp()
		return g.Layout(g.g)
	}
	return nil
}
