package gui

import "github.com/jesseduffield/gocui"

// filterChars are typed into the filter input. Characters with their own
// context-aware binding are left out.
const filterChars = "bcdfgimnoptuvwyABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
	"-_. " +
	"[]|(){}:\"'`,<>=!+*^$#~;&%\\"

func (g *Gui) setKeybindings() error {
	km := g.newKeybindingManager()

	km.RegisterAll(g.globalBindings(km))
	km.RegisterAll(g.navigationBindings(km))
	km.RegisterAll(g.filterBindings(km))
	km.RegisterAll(g.actionBindings(km))
	km.RegisterAll(g.mouseBindings())

	return km.Apply()
}

// inFilter makes a binding type its key while the filter input is active
// and do nothing under a popup.
func (g *Gui) inFilter(ch rune) map[Context]func() error {
	return map[Context]func() error{
		ContextFilter: g.makeFilterCharAction(ch),
		ContextHelp:   g.blockAction,
		ContextModal:  g.blockAction,
	}
}

// globalBindings - always available (quit, escape, help)
func (g *Gui) globalBindings(km *KeybindingManager) []*Binding {
	return []*Binding{
		{
			Key:         gocui.KeyCtrlC,
			Handler:     g.doQuit,
			Description: "Force quit",
		},
		{
			Key:         'q',
			Handler:     g.doQuit,
			Description: "Quit",
			Contexts:    g.inFilter('q'),
		},
		{
			Key:         gocui.KeyEsc,
			Handler:     g.doEscape,
			Description: "Close/Cancel",
		},
		{
			Key:         '?',
			Handler:     g.doToggleHelp,
			Description: "Show help",
			Contexts: map[Context]func() error{
				ContextFilter: g.makeFilterCharAction('?'),
			},
		},
		{
			Key:         '@',
			Handler:     g.doToggleModal,
			Description: "Command log",
			Contexts: map[Context]func() error{
				ContextFilter: g.makeFilterCharAction('@'),
			},
		},
	}
}

// navigationBindings - panel and list navigation
func (g *Gui) navigationBindings(km *KeybindingManager) []*Binding {
	upDown := func(help func() error) map[Context]func() error {
		return map[Context]func() error{
			ContextHelp:  help,
			ContextModal: g.blockAction,
		}
	}
	vim := func(ch rune, help func() error) map[Context]func() error {
		ctx := g.inFilter(ch)
		ctx[ContextHelp] = help
		return ctx
	}

	return []*Binding{
		{Key: gocui.KeyArrowUp, Handler: g.doCursorUp, Description: "Move up", Contexts: upDown(g.helpMoveUp)},
		{Key: gocui.KeyArrowDown, Handler: g.doCursorDown, Description: "Move down", Contexts: upDown(g.helpMoveDown)},
		{
			Key:         gocui.KeyArrowLeft,
			Handler:     g.doColumnLeft,
			Description: "Move left",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterCursorLeft,
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
			},
		},
		{
			Key:         gocui.KeyArrowRight,
			Handler:     g.doColumnRight,
			Description: "Move right",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterCursorRight,
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
			},
		},
		{Key: 'j', Handler: g.doCursorDown, Description: "Move down", Contexts: vim('j', g.helpMoveDown)},
		{Key: 'k', Handler: g.doCursorUp, Description: "Move up", Contexts: vim('k', g.helpMoveUp)},
		{Key: 'h', Handler: g.doColumnLeft, Description: "Move left", Contexts: g.inFilter('h')},
		{Key: 'l', Handler: g.doColumnRight, Description: "Move right", Contexts: g.inFilter('l')},
		{
			Key:         gocui.KeyTab,
			Handler:     g.doNextColumn,
			Description: "Next panel",
			Contexts: map[Context]func() error{
				ContextFilter: g.blockAction,
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
			},
		},
		{
			Key:               gocui.KeySpace,
			Handler:           g.doApply,
			Description:       "Apply filter",
			GetDisabledReason: km.disabled.NoRow,
			Contexts:          g.inFilter(' '),
		},
		{
			Key:               gocui.KeyEnter,
			Handler:           g.doApply,
			Description:       "Apply filter",
			GetDisabledReason: km.disabled.NoRow,
			Contexts: map[Context]func() error{
				ContextFilter: g.filterCommit,
				ContextHelp:   g.helpExecute,
				ContextModal:  g.blockAction,
			},
		},
	}
}

// filterBindings - filter mode specific
func (g *Gui) filterBindings(km *KeybindingManager) []*Binding {
	bindings := []*Binding{
		{
			Key:         '/',
			Handler:     g.doStartFilter,
			Description: "Filter panel",
			Contexts:    g.inFilter('/'),
		},
		{
			Key:         's',
			Handler:     km.guards.NoPopupOrFilter(g.doStartSearch),
			Description: "Search vault",
			Contexts:    g.inFilter('s'),
		},
		{
			Key:     gocui.KeyBackspace,
			Handler: g.doFilterBackspace,
		},
		{
			Key:     gocui.KeyBackspace2,
			Handler: g.doFilterBackspace,
		},
	}

	for _, ch := range filterChars {
		if ch == ' ' {
			continue // handled by the Space binding
		}
		bindings = append(bindings, &Binding{
			Key:     ch,
			Handler: g.makeFilterCharAction(ch),
		})
	}

	return bindings
}

// actionBindings - filter actions
func (g *Gui) actionBindings(km *KeybindingManager) []*Binding {
	return []*Binding{
		{
			Key:               'z',
			Handler:           g.doToggleCollapse,
			Description:       "Collapse/Expand",
			GetDisabledReason: km.disabled.NoChildren,
			Contexts:          g.inFilter('z'),
		},
		{
			Key:               'a',
			Handler:           g.doAdd,
			Description:       "Add",
			GetDisabledReason: km.disabled.NoAdd,
			Contexts:          g.inFilter('a'),
		},
		{
			Key:               'e',
			Handler:           g.doEdit,
			Description:       "Edit folder",
			GetDisabledReason: km.disabled.NotEditable,
			Contexts:          g.inFilter('e'),
		},
		{
			Key:         'x',
			Handler:     km.guards.NoPopupOrFilter(g.doResetFilter),
			Description: "Show all items",
			Contexts:    g.inFilter('x'),
		},
		{
			Key:               'r',
			Handler:           g.doRefresh,
			Description:       "Reload vault",
			GetDisabledReason: require(km.disabled.PopupOpen, km.disabled.Loading),
			Contexts:          g.inFilter('r'),
		},
	}
}

// mouseBindings - click handlers
func (g *Gui) mouseBindings() []*Binding {
	bindings := []*Binding{
		{Key: gocui.MouseLeft, ViewName: g.views.helpModal, Handler: g.doHelpClick},
		{Key: gocui.MouseLeft, ViewName: g.views.details, Handler: g.doDetailsClick},
		{Key: gocui.MouseLeft, ViewName: g.views.commands, Handler: g.doOutsideClick},
		{Key: gocui.MouseLeft, ViewName: g.views.help, Handler: g.doOutsideClick},
		{Key: gocui.MouseLeft, ViewName: g.views.background, Handler: g.doOutsideClick},
	}
	for name := range g.panels {
		bindings = append(bindings, &Binding{Key: gocui.MouseLeft, ViewName: name, Handler: g.makePanelClick(name)})
	}
	return bindings
}
