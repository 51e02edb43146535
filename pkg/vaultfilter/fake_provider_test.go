package vaultfilter

import (
	"context"
	"sync"

	"github.com/marjoballabani/lazyvault/pkg/stream"
)

type fakeProvider struct {
	mu sync.Mutex

	collapsed   *stream.Subject[NodeSet]
	folders     *stream.Subject[[]FolderView]
	collections *stream.Subject[[]CollectionView]
	orgTree     *stream.Subject[*TreeNode[OrganizationFilter]]
	folderTree  *stream.Subject[*TreeNode[FolderFilter]]
	collTree    *stream.Subject[*TreeNode[CollectionFilter]]

	singleOrg         bool
	personalOwnership bool
	policyErr         error
	storeErr          error
	expandErr         error

	stored        []NodeSet
	orgUpdates    []OrganizationFilter
	expandCalls   int
	orgReloads    int
	collReloads   int
	typeTreeCalls int
}

func newFakeProvider() *fakeProvider {
	folderRoot := NewTreeNode(FolderFilter{ID: AllFoldersID, Name: "allFolders"}, nil)
	folderRoot.AddChild(FolderFilter{ID: "F1", Name: "Work"})
	folderRoot.AddChild(FolderFilter{ID: NoFolderID, Name: "noneFolder"})

	collRoot := NewTreeNode(CollectionFilter{ID: AllCollectionsID, Name: "allCollections"}, nil)
	collRoot.AddChild(CollectionFilter{ID: "C1", Name: "Shared", OrganizationID: "O1"})

	orgRoot := NewTreeNode(OrganizationFilter{ID: AllVaultsID, Name: "allVaults", Enabled: true}, nil)
	orgRoot.AddChild(OrganizationFilter{ID: MyVaultID, Name: "myVault", Enabled: true})
	orgRoot.AddChild(OrganizationFilter{ID: "O1", Name: "Acme", Enabled: true})
	orgRoot.AddChild(OrganizationFilter{ID: "O2", Name: "Globex", Enabled: false})

	return &fakeProvider{
		collapsed:   stream.Of(NewNodeSet()),
		folders:     stream.Of([]FolderView{{ID: "F1", Name: "Work"}, {ID: NoFolderID}}),
		collections: stream.Of([]CollectionView{{ID: "C1", Name: "Shared", OrganizationID: "O1"}}),
		orgTree:     stream.Of(orgRoot),
		folderTree:  stream.Of(folderRoot),
		collTree:    stream.Of(collRoot),
	}
}

func (p *fakeProvider) CollapsedNodes() stream.Stream[NodeSet]               { return p.collapsed }
func (p *fakeProvider) FilteredFolders() stream.Stream[[]FolderView]         { return p.folders }
func (p *fakeProvider) FilteredCollections() stream.Stream[[]CollectionView] { return p.collections }
func (p *fakeProvider) OrganizationTree() stream.Stream[*TreeNode[OrganizationFilter]] {
	return p.orgTree
}
func (p *fakeProvider) FolderTree() stream.Stream[*TreeNode[FolderFilter]]         { return p.folderTree }
func (p *fakeProvider) CollectionTree() stream.Stream[*TreeNode[CollectionFilter]] { return p.collTree }

func (p *fakeProvider) BuildTypeTree(root CipherTypeFilter, children []CipherTypeFilter) stream.Stream[*TreeNode[CipherTypeFilter]] {
	p.mu.Lock()
	p.typeTreeCalls++
	p.mu.Unlock()

	head := NewTreeNode(root, nil)
	for _, c := range children {
		head.AddChild(c)
	}
	return stream.Of(head)
}

func (p *fakeProvider) StoreCollapsedNodes(_ context.Context, nodes NodeSet) error {
	p.mu.Lock()
	if p.storeErr != nil {
		p.mu.Unlock()
		return p.storeErr
	}
	p.stored = append(p.stored, nodes.Clone())
	p.mu.Unlock()

	p.collapsed.Next(nodes.Clone())
	return nil
}

func (p *fakeProvider) CheckSingleOrganizationPolicy(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.singleOrg, p.policyErr
}

func (p *fakeProvider) CheckPersonalOwnershipPolicy(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.personalOwnership, p.policyErr
}

func (p *fakeProvider) UpdateOrganizationFilter(org OrganizationFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orgUpdates = append(p.orgUpdates, org)
}

func (p *fakeProvider) ExpandOrganizationFilter(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expandCalls++
	return p.expandErr
}

func (p *fakeProvider) ReloadOrganizations(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orgReloads++
	return nil
}

func (p *fakeProvider) ReloadCollections(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collReloads++
	return nil
}

func (p *fakeProvider) storedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stored)
}

func (p *fakeProvider) lastStored() NodeSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.stored) == 0 {
		return nil
	}
	return p.stored[len(p.stored)-1].Clone()
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ NotificationLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type changeRecorder struct {
	mu      sync.Mutex
	changes []FilterChange
}

func (r *changeRecorder) record(c FilterChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *changeRecorder) last() (FilterChange, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.changes) == 0 {
		return FilterChange{}, false
	}
	return r.changes[len(r.changes)-1], true
}

func (r *changeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}
