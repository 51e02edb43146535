// Package vaultfilter keeps the vault browser's active filter consistent.
//
// A Manager owns a single ActiveFilter. It builds the facet sections from a
// DataProvider, applies user selections so that exactly one of the type,
// folder and collection facets is active, persists collapsed tree nodes, and
// watches folder and collection updates so a selection that disappears is
// replaced by the "all items" type filter.
package vaultfilter

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotLoaded is returned by operations that need the sections built.
	ErrNotLoaded = errors.New("filter sections are not built yet")
	// ErrClosed is returned by operations on a closed Manager.
	ErrClosed = errors.New("filter manager is closed")
)

// FilterChange is emitted after every successful apply.
type FilterChange struct {
	Filter      ActiveFilter
	Version     uint64
	Placeholder string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithInitialFilter seeds the active filter.
func WithInitialFilter(f ActiveFilter) Option {
	return func(m *Manager) {
		m.filter = f
	}
}

// WithOnActiveFilterChanged sets the callback invoked after every apply.
func WithOnActiveFilterChanged(fn func(FilterChange)) Option {
	return func(m *Manager) {
		m.onFilterChanged = fn
	}
}

// WithOnSearchTextChanged sets the callback invoked when the search text changes.
func WithOnSearchTextChanged(fn func(string)) Option {
	return func(m *Manager) {
		m.onSearchTextChanged = fn
	}
}

// WithOnAddFolder sets the callback for add-folder requests.
func WithOnAddFolder(fn func()) Option {
	return func(m *Manager) {
		m.onAddFolder = fn
	}
}

// WithOnEditFolder sets the callback for edit-folder requests.
func WithOnEditFolder(fn func(FolderFilter)) Option {
	return func(m *Manager) {
		m.onEditFolder = fn
	}
}

// Manager owns the active filter of one browsing session.
//
// Every mutation sequence runs under mu, including the provider calls and
// the change callbacks it triggers, so concurrent stream deliveries can never
// observe or produce a filter with two active facets. Callbacks must not
// call back into the Manager synchronously.
type Manager struct {
	provider DataProvider
	notifier Notifier
	i18n     Translator
	logger   logrus.FieldLogger

	mu                 sync.Mutex
	filter             ActiveFilter
	version            uint64
	filters            *Filters
	collapsed          NodeSet
	currentCollections []CollectionView
	searchText         string
	placeholder        string
	loaded             bool
	closed             bool

	cancel context.CancelFunc
	group  *errgroup.Group

	onFilterChanged     func(FilterChange)
	onSearchTextChanged func(string)
	onAddFolder         func()
	onEditFolder        func(FolderFilter)
}

// NewManager creates a Manager. Nothing is subscribed until Start.
func NewManager(provider DataProvider, notifier Notifier, translator Translator, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	m := &Manager{
		provider:    provider,
		notifier:    notifier,
		i18n:        translator,
		logger:      discard,
		collapsed:   NewNodeSet(),
		placeholder: SearchVault,
	}
	if m.i18n == nil {
		m.i18n = identityTranslator{}
	}
	if m.notifier == nil {
		m.notifier = NotifierFunc(func(NotificationLevel, string) {})
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start subscribes to the collapsed-node stream, builds every section,
// applies the root type filter and then starts watching folder and
// collection updates. The subscriptions live until Close or until ctx is
// cancelled. Close must be called even when Start fails.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.group != nil {
		m.mu.Unlock()
		return errors.New("filter manager already started")
	}
	subCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(subCtx)
	m.cancel = cancel
	m.group = group
	m.mu.Unlock()

	group.Go(func() error { return m.watchCollapsedNodes(groupCtx) })

	filters, err := m.BuildAllFilters(ctx)
	if err != nil {
		return err
	}
	root, err := filters.Type.Data.First(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read type tree")
	}
	if err := m.ApplyTypeFilter(ctx, root); err != nil {
		return err
	}

	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()

	group.Go(func() error { return m.watchFolders(groupCtx) })
	group.Go(func() error { return m.watchCollections(groupCtx) })

	m.logger.Info("filter manager started")
	return nil
}

// Close tears down every background subscription and waits for them to
// finish. It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	cancel, group := m.cancel, m.group
	m.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	return group.Wait()
}

// IsLoaded reports whether Start completed.
func (m *Manager) IsLoaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// ActiveFilter returns the current filter.
func (m *Manager) ActiveFilter() ActiveFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// Version counts successful filter mutations.
func (m *Manager) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Filters returns the built sections.
func (m *Manager) Filters() (Filters, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.filters == nil {
		return Filters{}, false
	}
	return *m.filters, true
}

// SearchPlaceholder returns the translated search bar label.
func (m *Manager) SearchPlaceholder() string {
	m.mu.Lock()
	key := m.placeholder
	m.mu.Unlock()
	return m.i18n.T(key)
}

// SearchText returns the current search text.
func (m *Manager) SearchText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchText
}

// CurrentCollections returns the latest filtered collection list.
func (m *Manager) CurrentCollections() []CollectionView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CollectionView(nil), m.currentCollections...)
}

// SetSearchText stores text and emits a search-text change.
func (m *Manager) SetSearchText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchText = text
	if m.onSearchTextChanged != nil {
		m.onSearchTextChanged(text)
	}
}

// ApplyOrganizationFilter narrows the filter to an organization. Selecting a
// disabled organization is reported through the Notifier and changes
// nothing.
func (m *Manager) ApplyOrganizationFilter(ctx context.Context, node *TreeNode[OrganizationFilter]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if node == nil || !node.Node.Selectable() {
		m.logger.WithField("organization", nodeID(node)).Warn("rejected disabled organization filter")
		m.notifier.Notify(NotifyError, m.i18n.T("disabledOrganizationFilterError"))
		return nil
	}

	m.filter = m.filter.WithOrganization(node)
	m.provider.UpdateOrganizationFilter(node.Node)
	if err := m.provider.ExpandOrganizationFilter(ctx); err != nil {
		return errors.Wrap(err, "failed to expand organization filter")
	}
	m.applyVaultFilter(FacetOrganization, node.ID)
	return nil
}

// ApplyTypeFilter selects an item type, favorites, trash, or all items.
func (m *Manager) ApplyTypeFilter(_ context.Context, node *TreeNode[CipherTypeFilter]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.filter = m.filter.WithCipherType(node)
	m.applyVaultFilter(FacetCipherType, nodeID(node))
	return nil
}

// ApplyFolderFilter selects a folder.
func (m *Manager) ApplyFolderFilter(_ context.Context, node *TreeNode[FolderFilter]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.filter = m.filter.WithFolder(node)
	m.applyVaultFilter(FacetFolder, nodeID(node))
	return nil
}

// ApplyCollectionFilter selects a collection.
func (m *Manager) ApplyCollectionFilter(_ context.Context, node *TreeNode[CollectionFilter]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.filter = m.filter.WithCollection(node)
	m.applyVaultFilter(FacetCollection, nodeID(node))
	return nil
}

// AddFolder forwards an add-folder request to the host.
func (m *Manager) AddFolder(_ context.Context) error {
	m.mu.Lock()
	fn := m.onAddFolder
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

// EditFolder forwards an edit-folder request to the host.
func (m *Manager) EditFolder(_ context.Context, folder FolderFilter) error {
	m.mu.Lock()
	fn := m.onEditFolder
	m.mu.Unlock()
	if fn != nil {
		fn(folder)
	}
	return nil
}

// ReloadOrganizations asks the provider to reload organizations and rebuilds
// the sections, since the policies may have changed with them. It does
// nothing before the sections exist.
func (m *Manager) ReloadOrganizations(ctx context.Context) error {
	if _, ok := m.Filters(); !ok {
		return nil
	}
	if err := m.provider.ReloadOrganizations(ctx); err != nil {
		return errors.Wrap(err, "failed to reload organizations")
	}
	_, err := m.BuildAllFilters(ctx)
	return err
}

// ReloadCollections asks the provider to reload collections.
func (m *Manager) ReloadCollections(ctx context.Context) error {
	if err := m.provider.ReloadCollections(ctx); err != nil {
		return errors.Wrap(err, "failed to reload collections")
	}
	if _, ok := m.Filters(); !ok {
		return nil
	}
	_, err := m.BuildAllFilters(ctx)
	return err
}

// applyVaultFilter finishes every successful apply. Callers hold mu.
func (m *Manager) applyVaultFilter(facet Facet, id string) {
	m.version++
	m.placeholder = SearchPlaceholderKey(m.filter)

	m.logger.WithFields(logrus.Fields{
		"facet":   facet,
		"node":    id,
		"version": m.version,
	}).Debug("filter applied")

	if m.onFilterChanged != nil {
		m.onFilterChanged(FilterChange{
			Filter:      m.filter,
			Version:     m.version,
			Placeholder: m.placeholder,
		})
	}
}

func nodeID[T Item](node *TreeNode[T]) string {
	if node == nil {
		return ""
	}
	return node.ID
}
