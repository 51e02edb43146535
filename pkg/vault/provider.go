package vault

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/marjoballabani/lazyvault/pkg/stream"
	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

// CollapsedStore persists the collapsed tree nodes.
type CollapsedStore interface {
	LoadCollapsedNodes(ctx context.Context) ([]string, error)
	SaveCollapsedNodes(ctx context.Context, ids []string) error
}

// Loader produces the current export.
type Loader interface {
	Load(ctx context.Context) (*Export, error)
}

// Provider serves an export to the filter Manager. Every stream is a
// latest-value subject republished whenever the export is reloaded or the
// organization scope changes.
type Provider struct {
	loader Loader
	store  CollapsedStore
	i18n   vaultfilter.Translator
	logger logrus.FieldLogger

	mu     sync.Mutex
	export *Export
	scope  vaultfilter.OrganizationFilter

	collapsed   *stream.Subject[vaultfilter.NodeSet]
	folders     *stream.Subject[[]vaultfilter.FolderView]
	collections *stream.Subject[[]vaultfilter.CollectionView]
	orgTree     *stream.Subject[*vaultfilter.TreeNode[vaultfilter.OrganizationFilter]]
	folderTree  *stream.Subject[*vaultfilter.TreeNode[vaultfilter.FolderFilter]]
	collTree    *stream.Subject[*vaultfilter.TreeNode[vaultfilter.CollectionFilter]]
}

var _ vaultfilter.DataProvider = (*Provider)(nil)

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithProviderLogger sets the logger.
func WithProviderLogger(logger logrus.FieldLogger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider loads the export and the collapsed-node state and publishes
// the first snapshot of every stream.
func NewProvider(ctx context.Context, loader Loader, store CollapsedStore, translator vaultfilter.Translator, opts ...ProviderOption) (*Provider, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Provider{
		loader:      loader,
		store:       store,
		i18n:        translator,
		logger:      discard,
		scope:       vaultfilter.OrganizationFilter{ID: vaultfilter.AllVaultsID, Enabled: true},
		collapsed:   stream.NewSubject[vaultfilter.NodeSet](),
		folders:     stream.NewSubject[[]vaultfilter.FolderView](),
		collections: stream.NewSubject[[]vaultfilter.CollectionView](),
		orgTree:     stream.NewSubject[*vaultfilter.TreeNode[vaultfilter.OrganizationFilter]](),
		folderTree:  stream.NewSubject[*vaultfilter.TreeNode[vaultfilter.FolderFilter]](),
		collTree:    stream.NewSubject[*vaultfilter.TreeNode[vaultfilter.CollectionFilter]](),
	}
	for _, opt := range opts {
		opt(p)
	}

	ids, err := store.LoadCollapsedNodes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load collapsed nodes")
	}
	p.collapsed.Next(vaultfilter.NewNodeSet(ids...))

	if err := p.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload reads the export again and republishes every stream.
func (p *Provider) Reload(ctx context.Context) error {
	export, err := p.loader.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load vault export")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.export = export
	p.publish()

	p.logger.WithFields(logrus.Fields{
		"folders":       len(export.Folders),
		"collections":   len(export.Collections),
		"organizations": len(export.Organizations),
		"items":         len(export.Items),
	}).Debug("vault export loaded")
	return nil
}

// Export returns the last loaded export.
func (p *Provider) Export() *Export {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.export
}

// publish pushes derived data for the current export and scope. Callers
// hold mu.
func (p *Provider) publish() {
	folders := FilterFolders(p.export, p.scope)
	collections := FilterCollections(p.export, p.scope)

	p.orgTree.Next(OrganizationTree(p.export.Organizations, p.export.Policies.PersonalOwnership, p.i18n))
	p.folderTree.Next(FolderTree(folders, p.i18n))
	p.collTree.Next(CollectionTree(collections, p.i18n))
	p.folders.Next(folders)
	p.collections.Next(collections)
}

// FilterFolders returns the folders visible in scope. All vaults shows every
// folder; otherwise only folders holding at least one live item of the scope
// are kept. The "no folder" entry is always last.
func FilterFolders(export *Export, scope vaultfilter.OrganizationFilter) []vaultfilter.FolderView {
	var keep map[string]bool
	if scope.Scope() != vaultfilter.ScopeAllVaults {
		keep = make(map[string]bool)
		for _, item := range export.Items {
			if item.Deleted || item.FolderID == "" || !inScope(item.OrganizationID, scope) {
				continue
			}
			keep[item.FolderID] = true
		}
	}

	folders := make([]vaultfilter.FolderView, 0, len(export.Folders)+1)
	for _, f := range export.Folders {
		if keep != nil && !keep[f.ID] {
			continue
		}
		folders = append(folders, vaultfilter.FolderView{ID: f.ID, Name: f.Name})
	}
	return append(folders, vaultfilter.FolderView{ID: vaultfilter.NoFolderID})
}

// FilterCollections returns the collections visible in scope. My vault has
// none.
func FilterCollections(export *Export, scope vaultfilter.OrganizationFilter) []vaultfilter.CollectionView {
	collections := make([]vaultfilter.CollectionView, 0, len(export.Collections))
	for _, c := range export.Collections {
		switch scope.Scope() {
		case vaultfilter.ScopeMyVault:
			continue
		case vaultfilter.ScopeOrganization:
			if c.OrganizationID != scope.ID {
				continue
			}
		}
		collections = append(collections, vaultfilter.CollectionView{ID: c.ID, Name: c.Name, OrganizationID: c.OrganizationID})
	}
	return collections
}

func inScope(organizationID string, scope vaultfilter.OrganizationFilter) bool {
	switch scope.Scope() {
	case vaultfilter.ScopeMyVault:
		return organizationID == ""
	case vaultfilter.ScopeOrganization:
		return organizationID == scope.ID
	}
	return true
}

func (p *Provider) CollapsedNodes() stream.Stream[vaultfilter.NodeSet] { return p.collapsed }

func (p *Provider) FilteredFolders() stream.Stream[[]vaultfilter.FolderView] { return p.folders }

func (p *Provider) FilteredCollections() stream.Stream[[]vaultfilter.CollectionView] {
	return p.collections
}

func (p *Provider) OrganizationTree() stream.Stream[*vaultfilter.TreeNode[vaultfilter.OrganizationFilter]] {
	return p.orgTree
}

func (p *Provider) FolderTree() stream.Stream[*vaultfilter.TreeNode[vaultfilter.FolderFilter]] {
	return p.folderTree
}

func (p *Provider) CollectionTree() stream.Stream[*vaultfilter.TreeNode[vaultfilter.CollectionFilter]] {
	return p.collTree
}

// BuildTypeTree returns a fixed tree; item types never change at runtime.
func (p *Provider) BuildTypeTree(root vaultfilter.CipherTypeFilter, children []vaultfilter.CipherTypeFilter) stream.Stream[*vaultfilter.TreeNode[vaultfilter.CipherTypeFilter]] {
	return stream.Of(TypeTree(root, children, p.i18n))
}

// StoreCollapsedNodes persists nodes and republishes them.
func (p *Provider) StoreCollapsedNodes(ctx context.Context, nodes vaultfilter.NodeSet) error {
	if err := p.store.SaveCollapsedNodes(ctx, nodes.IDs()); err != nil {
		return errors.Wrap(err, "failed to save collapsed nodes")
	}
	p.collapsed.Next(nodes.Clone())
	return nil
}

func (p *Provider) CheckSingleOrganizationPolicy(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.export.Policies.SingleOrganization, nil
}

func (p *Provider) CheckPersonalOwnershipPolicy(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.export.Policies.PersonalOwnership, nil
}

// UpdateOrganizationFilter narrows folders and collections to org.
func (p *Provider) UpdateOrganizationFilter(org vaultfilter.OrganizationFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scope = org
	p.publish()
}

// ExpandOrganizationFilter makes sure the vault selector is expanded.
func (p *Provider) ExpandOrganizationFilter(ctx context.Context) error {
	nodes, ok := p.collapsed.Value()
	if !ok || !nodes.Has(vaultfilter.AllVaultsID) {
		return nil
	}
	return p.StoreCollapsedNodes(ctx, nodes.Without(vaultfilter.AllVaultsID))
}

func (p *Provider) ReloadOrganizations(ctx context.Context) error {
	return p.Reload(ctx)
}

func (p *Provider) ReloadCollections(ctx context.Context) error {
	return p.Reload(ctx)
}

// Close completes every stream.
func (p *Provider) Close() {
	p.collapsed.Complete()
	p.folders.Complete()
	p.collections.Complete()
	p.orgTree.Complete()
	p.folderTree.Complete()
	p.collTree.Complete()
}
