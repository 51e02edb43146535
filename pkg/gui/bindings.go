package gui

import "github.com/jesseduffield/gocui"

// Context represents the current UI context/mode
type Context string

const (
	ContextNormal Context = "normal"
	ContextFilter Context = "filter"
	ContextHelp   Context = "help"
	ContextModal  Context = "modal"
)

// Binding represents a keybinding with context-aware handling
type Binding struct {
	Key         interface{} // gocui.Key or rune
	Modifier    gocui.Modifier
	ViewName    string // Empty for global, specific view name otherwise
	Handler     func() error
	Description string
	// GetDisabledReason returns "" if enabled, or a reason string if disabled
	GetDisabledReason func() string
	// Contexts maps specific contexts to different handlers (optional)
	// If current context has a handler here, it's used instead of Handler
	Contexts map[Context]func() error
}

// Guards provides guard functions that wrap handlers with state checks
type Guards struct {
	NoPopup         func(func() error) func() error
	NoFilter        func(func() error) func() error
	NoPopupOrFilter func(func() error) func() error
}

// newGuards creates the guard functions for the GUI
func (g *Gui) newGuards() Guards {
	return Guards{
		NoPopup: func(f func() error) func() error {
			return func() error {
				if g.isModalOpen() {
					return nil
				}
				return f()
			}
		},
		NoFilter: func(f func() error) func() error {
			return func() error {
				if g.filterInputActive {
					return nil
				}
				return f()
			}
		},
		NoPopupOrFilter: func(f func() error) func() error {
			return func() error {
				if g.isModalOpen() || g.filterInputActive {
					return nil
				}
				return f()
			}
		},
	}
}

// DisabledReasons provides common disable-reason check functions
type DisabledReasons struct {
	PopupOpen    func() string
	FilterActive func() string
	Loading      func() string
	NoRow        func() string
	NoChildren   func() string
	NotEditable  func() string
	NoAdd        func() string
}

// newDisabledReasons creates the disabled-reason check functions
func (g *Gui) newDisabledReasons() DisabledReasons {
	return DisabledReasons{
		PopupOpen: func() string {
			if g.isModalOpen() {
				return "Close popup first"
			}
			return ""
		},
		FilterActive: func() string {
			if g.filterInputActive {
				return "Exit filter mode first"
			}
			return ""
		},
		Loading: func() string {
			if g.isLoading {
				return "Still loading"
			}
			return ""
		},
		NoRow: func() string {
			if _, ok := g.currentRow(); !ok {
				return "Nothing selected"
			}
			return ""
		},
		NoChildren: func() string {
			if r, ok := g.currentRow(); !ok || !r.hasChildren {
				return "Nothing to collapse"
			}
			return ""
		},
		NotEditable: func() string {
			if r, ok := g.currentRow(); !ok || r.edit == nil {
				return "Select a folder first"
			}
			return ""
		},
		NoAdd: func() string {
			if g.sectionAdd(g.currentColumn) == nil {
				return "Nothing to add here"
			}
			return ""
		},
	}
}

// require combines multiple disable-reason checks into one
// Returns first non-empty reason, or empty string if all pass
func require(checks ...func() string) func() string {
	return func() string {
		for _, check := range checks {
			if reason := check(); reason != "" {
				return reason
			}
		}
		return ""
	}
}

// getContext returns the current UI context
func (g *Gui) getContext() Context {
	if g.helpOpen {
		return ContextHelp
	}
	if g.modalOpen {
		return ContextModal
	}
	if g.filterInputActive {
		return ContextFilter
	}
	return ContextNormal
}

// KeybindingManager handles registration and execution of keybindings
type KeybindingManager struct {
	gui      *Gui
	bindings []*Binding
	guards   Guards
	disabled DisabledReasons
}

// newKeybindingManager creates a new keybinding manager
func (g *Gui) newKeybindingManager() *KeybindingManager {
	return &KeybindingManager{
		gui:      g,
		bindings: make([]*Binding, 0),
		guards:   g.newGuards(),
		disabled: g.newDisabledReasons(),
	}
}

// RegisterAll adds multiple bindings
func (km *KeybindingManager) RegisterAll(bindings []*Binding) {
	km.bindings = append(km.bindings, bindings...)
}

// Apply registers all bindings with gocui
func (km *KeybindingManager) Apply() error {
	for _, b := range km.bindings {
		handler := km.wrapHandler(b)

		var err error
		switch key := b.Key.(type) {
		case gocui.Key:
			err = km.gui.g.SetKeybinding(b.ViewName, key, b.Modifier, handler)
		case rune:
			err = km.gui.g.SetKeybinding(b.ViewName, key, b.Modifier, handler)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// wrapHandler creates a gocui-compatible handler that checks context and disabled state
func (km *KeybindingManager) wrapHandler(b *Binding) func(*gocui.Gui, *gocui.View) error {
	return func(gui *gocui.Gui, v *gocui.View) error {
		if handler := resolveHandler(b, km.gui.getContext()); handler != nil {
			return handler()
		}
		return nil
	}
}

// resolveHandler picks the handler for ctx: a context override first, then
// the default handler unless the binding is disabled.
func resolveHandler(b *Binding, ctx Context) func() error {
	if b.Contexts != nil {
		if contextHandler, ok := b.Contexts[ctx]; ok {
			return contextHandler
		}
	}
	if b.GetDisabledReason != nil && b.GetDisabledReason() != "" {
		return nil
	}
	return b.Handler
}
