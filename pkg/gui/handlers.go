package gui

import (
	"github.com/jesseduffield/gocui"

	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

// State checking helpers

func (g *Gui) isModalOpen() bool {
	return g.modalOpen || g.helpOpen
}

// setFocus sets the current column and updates gocui's current view
func (g *Gui) setFocus(gui *gocui.Gui, column string) error {
	g.currentColumn = column
	if _, ok := g.panels[column]; ok {
		g.previousColumn = column
	}
	if _, err := gui.SetCurrentView(column); err != nil {
		return err
	}
	return g.Layout(gui)
}

// Help popup builder

func (g *Gui) buildHelpPopup() {
	reasons := g.newDisabledReasons()
	items := []PopupItem{
		{Label: "Global", IsHeader: true},
		{Key: "←/→ h/l", Label: "Switch panels"},
		{Key: "↑/↓ j/k", Label: "Move up/down"},
		{Key: "/", Label: "Filter panel", Action: g.doStartFilter},
		{Key: "s", Label: g.i18n.T("search"), Action: g.doStartSearch},
		{Key: "x", Label: "Show all items", Action: g.doResetFilter},
		{Key: "r", Label: "Reload vault", Action: g.doRefresh, Disabled: reasons.Loading()},
		{Key: "Esc", Label: "Back / Close"},
		{Key: "@", Label: "Command log", Action: g.doToggleModal},
		{Key: "?", Label: "This help"},
		{Key: "q", Label: "Quit", Action: g.doQuit},
	}

	if _, ok := g.panels[g.currentColumn]; ok {
		items = append(items,
			PopupItem{Label: g.getPanelName(), IsHeader: true},
			PopupItem{Key: "Space/Enter", Label: "Apply filter", Action: g.doApply, Disabled: reasons.NoRow()},
			PopupItem{Key: "z", Label: "Collapse / Expand", Action: g.doToggleCollapse, Disabled: reasons.NoChildren()},
		)
		if add := g.sectionAdd(g.currentColumn); add != nil {
			items = append(items, PopupItem{Key: "a", Label: g.i18n.T(add.Text), Action: g.doAdd})
		}
		if vaultfilter.SectionKind(g.currentColumn) == vaultfilter.SectionFolder {
			items = append(items, PopupItem{Key: "e", Label: g.i18n.T("editFolder"), Action: g.doEdit, Disabled: reasons.NotEditable()})
		}
	} else {
		items = append(items,
			PopupItem{Label: g.getPanelName(), IsHeader: true},
			PopupItem{Key: "j/k", Label: "Scroll content"},
		)
	}

	g.helpPopup = NewPopup("Keyboard Shortcuts", items, g.theme, g.views.helpModal)
}

func (g *Gui) renderHelpContent(v *gocui.View) {
	if g.helpPopup == nil {
		return
	}
	g.helpPopup.Render(v)
}

func (g *Gui) getPanelName() string {
	return g.getPanelNameFor(g.currentColumn)
}

func (g *Gui) getPanelNameFor(name string) string {
	if name == searchInput {
		return g.i18n.T("search")
	}
	if p, ok := g.panels[name]; ok {
		return g.i18n.T(p.titleKey)
	}
	if name == detailsColumn {
		return g.i18n.T("activeFilter")
	}
	return "Panel"
}
