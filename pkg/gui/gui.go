package gui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jesseduffield/gocui"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/marjoballabani/lazyvault/pkg/config"
	"github.com/marjoballabani/lazyvault/pkg/gui/icons"
	"github.com/marjoballabani/lazyvault/pkg/i18n"
	"github.com/marjoballabani/lazyvault/pkg/stream"
	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// maxCommandHistory is how many entries the command log keeps.
const maxCommandHistory = 10

type CommandExecution struct {
	Timestamp   string
	Command     string
	Description string
	Status      string
}

type Gui struct {
	g       *gocui.Gui
	config  *config.Config
	manager *vaultfilter.Manager
	i18n    *i18n.Translator
	logger  logrus.FieldLogger
	version string
	theme   *Theme

	// ctx bounds every Manager call made from a key handler.
	ctx context.Context

	// Latest published section trees, replaced wholesale on each update
	filters        vaultfilter.Filters
	orgTree        *vaultfilter.TreeNode[vaultfilter.OrganizationFilter]
	typeTree       *vaultfilter.TreeNode[vaultfilter.CipherTypeFilter]
	folderTree     *vaultfilter.TreeNode[vaultfilter.FolderFilter]
	collectionTree *vaultfilter.TreeNode[vaultfilter.CollectionFilter]
	trashTree      *vaultfilter.TreeNode[vaultfilter.CipherTypeFilter]
	sectionsCancel context.CancelFunc

	// Last filter change seen; older versions arriving late are dropped
	lastChange vaultfilter.FilterChange

	panels           map[string]*panel
	detailsScrollPos int

	// Command execution tracking
	commandHistory []CommandExecution

	// View names
	views struct {
		background string
		details    string
		commands   string
		help       string
		modal      string
		helpModal  string
	}

	currentColumn  string
	previousColumn string // last section panel, kept expanded while details is focused

	// Modal state
	modalOpen bool
	helpOpen  bool
	helpPopup *Popup

	// Loading state
	isLoading    bool
	loadingText  string
	spinnerFrame uint32

	// Filter state. filterInputPanel is a panel name, or searchInput when
	// typing the vault search text.
	filterInputActive bool
	filterInputText   string
	filterInputPanel  string
	filterCursorPos   int

	// Frame styling
	roundedFrameRunes []rune
}

var _ vaultfilter.Notifier = (*Gui)(nil)

func NewGui(cfg *config.Config, manager *vaultfilter.Manager, translator *i18n.Translator, logger logrus.FieldLogger, version string) (*Gui, error) {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode:      gocui.OutputTrue,
		SupportOverlaps: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gui")
	}

	theme := NewTheme(cfg.UI.Theme)

	// Initialize icons based on config
	if !cfg.UI.ShowIcons {
		icons.SetEnabled(false)
	} else {
		switch cfg.UI.NerdFontsVersion {
		case "2":
			icons.PatchForNerdFontsV2()
		case "3":
			// Default v3 icons, nothing to do
		default:
			icons.SetEnabled(false)
		}
	}

	gui := &Gui{
		g:              g,
		config:         cfg,
		manager:        manager,
		i18n:           translator,
		logger:         logger,
		version:        version,
		theme:          theme,
		ctx:            context.Background(),
		panels:         newPanels(),
		currentColumn:  string(vaultfilter.SectionOrganization),
		previousColumn: string(vaultfilter.SectionOrganization),
	}

	gui.views.details = detailsColumn
	gui.views.commands = "commands"
	gui.views.help = "help"
	gui.views.modal = "modal"
	gui.views.helpModal = "helpModal"
	gui.views.background = "background"

	g.Cursor = false
	g.Mouse = true
	g.InputEsc = true
	g.ShowListFooter = true

	g.BgColor = gocui.ColorDefault
	g.FgColor = gocui.ColorDefault
	g.FrameColor = gui.theme.InactiveBorderColor
	g.SelFrameColor = gui.theme.ActiveBorderColor
	g.SelFgColor = gui.theme.ActiveBorderColor
	g.Highlight = true

	// Rounded frame characters: ─ │ ╭ ╮ ╰ ╯
	gui.roundedFrameRunes = []rune{'─', '│', '╭', '╮', '╰', '╯'}

	g.SetManagerFunc(func(g *gocui.Gui) error {
		return gui.Layout(g)
	})

	if err := gui.setKeybindings(); err != nil {
		return nil, err
	}

	gui.isLoading = true
	gui.loadingText = translator.T("loading")
	gui.logCommand("init", "LazyVault starting...", "running")

	return gui, nil
}

func (g *Gui) getActiveColorCode() string {
	return g.theme.GetAnsiColorCode()
}

func (g *Gui) logCommand(command, description, status string) {
	g.commandHistory = append(g.commandHistory, CommandExecution{
		Timestamp:   time.Now().Format("15:04:05"),
		Command:     command,
		Description: description,
		Status:      status,
	})
	if len(g.commandHistory) > maxCommandHistory {
		g.commandHistory = g.commandHistory[len(g.commandHistory)-maxCommandHistory:]
	}
}

// Notify shows a message from the filter core in the command panel. It may
// be called from any goroutine.
func (g *Gui) Notify(level vaultfilter.NotificationLevel, message string) {
	status := "success"
	switch level {
	case vaultfilter.NotifyError:
		status = "error"
	case vaultfilter.NotifyWarning:
		status = "warning"
	}
	g.g.Update(func(*gocui.Gui) error {
		g.logCommand(string(level), message, status)
		return nil
	})
}

// OnFilterChanged records an applied filter. Changes are delivered
// asynchronously, so one older than the last seen version is ignored.
func (g *Gui) OnFilterChanged(change vaultfilter.FilterChange) {
	g.g.Update(func(*gocui.Gui) error {
		if change.Version < g.lastChange.Version {
			return nil
		}
		g.lastChange = change
		snap := change.Filter.Snapshot()
		desc := string(snap.Selected)
		if snap.NodeName != "" {
			desc += ": " + snap.NodeName
		}
		g.logCommand("filter", desc, "success")
		return nil
	})
}

// OnSearchTextChanged records a new search text.
func (g *Gui) OnSearchTextChanged(text string) {
	g.g.Update(func(*gocui.Gui) error {
		g.logCommand("search", fmt.Sprintf("%q", text), "success")
		return nil
	})
}

// OnAddFolder is called when the folder section's add action runs.
func (g *Gui) OnAddFolder() {
	g.g.Update(func(*gocui.Gui) error {
		g.logCommand("a", g.i18n.T("Add Folder"), "running")
		return nil
	})
}

// OnEditFolder is called when a folder's edit action runs.
func (g *Gui) OnEditFolder(folder vaultfilter.FolderFilter) {
	g.g.Update(func(*gocui.Gui) error {
		g.logCommand("e", fmt.Sprintf("%s: %s", g.i18n.T("editFolder"), folder.Name), "running")
		return nil
	})
}

// Run starts the main loop. The Manager must already be started; its
// sections are subscribed here and released when the loop exits.
func (g *Gui) Run(ctx context.Context) error {
	defer g.g.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.ctx = ctx

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				atomic.AddUint32(&g.spinnerFrame, 1)
				if g.isAnyLoading() {
					g.g.Update(func(gui *gocui.Gui) error {
						return nil
					})
				}
			}
		}
	}()

	g.g.Update(func(gui *gocui.Gui) error {
		if !g.manager.IsLoaded() {
			g.logCommand("load", "filters are not loaded", "error")
			return nil
		}
		g.bindSections()
		g.lastChange = vaultfilter.FilterChange{
			Filter:  g.manager.ActiveFilter(),
			Version: g.manager.Version(),
		}
		g.isLoading = false
		g.loadingText = ""
		g.logCommand("load", "Filters ready", "success")
		return nil
	})

	if err := g.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// bindSections subscribes to the data of the current section set, dropping
// the subscriptions of the previous one. It runs on the main loop.
func (g *Gui) bindSections() {
	filters, ok := g.manager.Filters()
	if !ok {
		return
	}
	if g.sectionsCancel != nil {
		g.sectionsCancel()
	}
	ctx, cancel := context.WithCancel(g.ctx)
	g.sectionsCancel = cancel
	g.filters = filters

	go watchTree(ctx, g.g, filters.Organization.Data, func(t *vaultfilter.TreeNode[vaultfilter.OrganizationFilter]) { g.orgTree = t })
	go watchTree(ctx, g.g, filters.Type.Data, func(t *vaultfilter.TreeNode[vaultfilter.CipherTypeFilter]) { g.typeTree = t })
	go watchTree(ctx, g.g, filters.Folder.Data, func(t *vaultfilter.TreeNode[vaultfilter.FolderFilter]) { g.folderTree = t })
	go watchTree(ctx, g.g, filters.Collection.Data, func(t *vaultfilter.TreeNode[vaultfilter.CollectionFilter]) { g.collectionTree = t })
	go watchTree(ctx, g.g, filters.Trash.Data, func(t *vaultfilter.TreeNode[vaultfilter.CipherTypeFilter]) { g.trashTree = t })
}

// watchTree hands every published tree to set on the main loop.
func watchTree[T vaultfilter.Item](ctx context.Context, gui *gocui.Gui, data stream.Stream[*vaultfilter.TreeNode[T]], set func(*vaultfilter.TreeNode[T])) {
	for tree := range data.Subscribe(ctx) {
		gui.Update(func(*gocui.Gui) error {
			set(tree)
			return nil
		})
	}
}

// getLoadingText returns formatted loading text with animated spinner
func (g *Gui) getLoadingText(text string) string {
	frame := atomic.LoadUint32(&g.spinnerFrame)
	spinner := spinnerFrames[frame%uint32(len(spinnerFrames))]
	return fmt.Sprintf("\033[33m%s %s\033[0m", spinner, text)
}

func (g *Gui) isAnyLoading() bool {
	return g.isLoading
}

// runAction calls fn and reports a failure in the command log. Errors never
// reach gocui, which would end the main loop.
func (g *Gui) runAction(command, description string, fn func(ctx context.Context) error) error {
	if err := fn(g.ctx); err != nil {
		g.logger.WithError(err).WithField("command", command).Error("action failed")
		g.logCommand(command, fmt.Sprintf("Failed: %v", err), "error")
		return g.Layout(g.g)
	}
	if description != "" {
		g.logCommand(command, description, "success")
	}
	return g.Layout(g.g)
}
