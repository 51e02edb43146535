package vaultfilter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	m        *Manager
	provider *fakeProvider
	notifier *recordingNotifier
	changes  *changeRecorder
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		provider: newFakeProvider(),
		notifier: &recordingNotifier{},
		changes:  &changeRecorder{},
	}
	opts = append([]Option{WithOnActiveFilterChanged(h.changes.record)}, opts...)
	h.m = NewManager(h.provider, h.notifier, nil, opts...)
	t.Cleanup(func() { _ = h.m.Close() })
	return h
}

func newStartedHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := newHarness(t, opts...)
	require.NoError(t, h.m.Start(context.Background()))
	return h
}

func (h *harness) orgNode(t *testing.T, id string) *TreeNode[OrganizationFilter] {
	t.Helper()
	root, _ := h.provider.orgTree.Value()
	node := root.Find(id)
	require.NotNil(t, node, "organization %s", id)
	return node
}

func (h *harness) folderNode(t *testing.T, id string) *TreeNode[FolderFilter] {
	t.Helper()
	root, _ := h.provider.folderTree.Value()
	node := root.Find(id)
	require.NotNil(t, node, "folder %s", id)
	return node
}

func (h *harness) collectionNode(t *testing.T, id string) *TreeNode[CollectionFilter] {
	t.Helper()
	root, _ := h.provider.collTree.Value()
	node := root.Find(id)
	require.NotNil(t, node, "collection %s", id)
	return node
}

func typeNode(id string) *TreeNode[CipherTypeFilter] {
	head := NewTreeNode(TypeFilterRoot(), nil)
	for _, c := range TypeFilterChildren(identityTranslator{}) {
		head.AddChild(c)
	}
	return head.Find(id)
}

func TestStartAppliesAllItems(t *testing.T) {
	h := newStartedHarness(t)

	f := h.m.ActiveFilter()
	require.NotNil(t, f.CipherTypeNode)
	assert.Equal(t, AllItemsID, f.CipherTypeNode.ID)
	assert.Equal(t, FacetCipherType, f.Selected())
	assert.True(t, h.m.IsLoaded())
	assert.Equal(t, uint64(1), h.m.Version())
	assert.Equal(t, SearchVault, h.m.SearchPlaceholder())

	filters, ok := h.m.Filters()
	require.True(t, ok)
	assert.True(t, filters.Complete())

	change, ok := h.changes.last()
	require.True(t, ok)
	assert.Equal(t, uint64(1), change.Version)
	assert.Equal(t, SearchVault, change.Placeholder)
}

func TestStartTwice(t *testing.T) {
	h := newStartedHarness(t)
	assert.Error(t, h.m.Start(context.Background()))
}

func TestStartPropagatesPolicyError(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("policy service down")
	h.provider.policyErr = boom

	err := h.m.Start(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, h.m.IsLoaded())
	_, ok := h.m.Filters()
	assert.False(t, ok)
}

func TestApplyOrganizationFilter(t *testing.T) {
	t.Run("disabled organization is rejected", func(t *testing.T) {
		h := newStartedHarness(t)
		before := h.m.ActiveFilter()
		version := h.m.Version()

		require.NoError(t, h.m.ApplyOrganizationFilter(context.Background(), h.orgNode(t, "O2")))

		assert.Equal(t, before, h.m.ActiveFilter())
		assert.Equal(t, version, h.m.Version())
		assert.Equal(t, 1, h.notifier.count())
		assert.Equal(t, "disabledOrganizationFilterError", h.notifier.messages[0])
		assert.Zero(t, h.provider.expandCalls)
		assert.Empty(t, h.provider.orgUpdates)
	})

	t.Run("nil node is rejected", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyOrganizationFilter(context.Background(), nil))
		assert.Equal(t, 1, h.notifier.count())
	})

	t.Run("enabled organization narrows scope", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyOrganizationFilter(context.Background(), h.orgNode(t, "O1")))

		f := h.m.ActiveFilter()
		assert.Equal(t, "O1", f.OrganizationID())
		assert.Equal(t, ScopeOrganization, f.OrganizationScope())
		assert.Equal(t, AllItemsID, f.CipherTypeNode.ID, "type selection is kept")
		assert.Equal(t, SearchOrganization, h.m.SearchPlaceholder())
		assert.Equal(t, 1, h.provider.expandCalls)
		require.Len(t, h.provider.orgUpdates, 1)
		assert.Equal(t, "O1", h.provider.orgUpdates[0].ID)
		assert.Equal(t, uint64(2), h.m.Version())
	})

	t.Run("my vault", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyOrganizationFilter(context.Background(), h.orgNode(t, MyVaultID)))
		assert.Equal(t, ScopeMyVault, h.m.ActiveFilter().OrganizationScope())
		assert.Equal(t, SearchMyVault, h.m.SearchPlaceholder())
	})

	t.Run("all vaults clears organization even when flagged disabled", func(t *testing.T) {
		h := newStartedHarness(t)
		ctx := context.Background()
		require.NoError(t, h.m.ApplyOrganizationFilter(ctx, h.orgNode(t, "O1")))

		allVaults := NewTreeNode(OrganizationFilter{ID: AllVaultsID, Enabled: false}, nil)
		require.NoError(t, h.m.ApplyOrganizationFilter(ctx, allVaults))

		assert.Nil(t, h.m.ActiveFilter().OrganizationNode)
		assert.Equal(t, ScopeAllVaults, h.m.ActiveFilter().OrganizationScope())
		assert.Zero(t, h.notifier.count())
	})

	t.Run("expand failure is returned", func(t *testing.T) {
		h := newStartedHarness(t)
		boom := errors.New("expand failed")
		h.provider.expandErr = boom

		err := h.m.ApplyOrganizationFilter(context.Background(), h.orgNode(t, "O1"))
		require.ErrorIs(t, err, boom)
	})
}

func TestApplyExclusiveFacets(t *testing.T) {
	h := newStartedHarness(t)
	ctx := context.Background()

	require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))
	f := h.m.ActiveFilter()
	assert.Equal(t, FacetFolder, f.Selected())
	assert.Nil(t, f.CipherTypeNode)
	assert.Equal(t, "F1", f.FolderID())
	assert.Equal(t, SearchFolder, h.m.SearchPlaceholder())

	require.NoError(t, h.m.ApplyCollectionFilter(ctx, h.collectionNode(t, "C1")))
	f = h.m.ActiveFilter()
	assert.Equal(t, FacetCollection, f.Selected())
	assert.Nil(t, f.FolderNode)
	assert.Equal(t, "C1", f.CollectionID())
	assert.Equal(t, SearchCollection, h.m.SearchPlaceholder())

	require.NoError(t, h.m.ApplyTypeFilter(ctx, typeNode("card")))
	f = h.m.ActiveFilter()
	assert.Equal(t, FacetCipherType, f.Selected())
	assert.Nil(t, f.CollectionNode)
	ct, ok := f.CipherType()
	require.True(t, ok)
	assert.Equal(t, CipherTypeCard, ct)
	assert.Equal(t, SearchCard, h.m.SearchPlaceholder())

	assert.Equal(t, uint64(4), h.m.Version())
	assert.Equal(t, 4, h.changes.count())
}

func TestRemoveInvalidFolderSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("selection still present", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))
		version := h.m.Version()

		require.NoError(t, h.m.removeInvalidFolderSelection(ctx, []FolderView{{ID: "F1"}, {ID: NoFolderID}}))
		require.NoError(t, h.m.removeInvalidFolderSelection(ctx, []FolderView{{ID: "F1"}}))

		assert.Equal(t, "F1", h.m.ActiveFilter().FolderID())
		assert.Equal(t, version, h.m.Version())
	})

	t.Run("selection removed", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))

		h.provider.folders.Next([]FolderView{{ID: NoFolderID}})
		require.NoError(t, h.m.removeInvalidFolderSelection(ctx, []FolderView{{ID: NoFolderID}}))

		f := h.m.ActiveFilter()
		assert.Nil(t, f.FolderNode)
		require.NotNil(t, f.CipherTypeNode)
		assert.Equal(t, AllItemsID, f.CipherTypeNode.ID)
		assert.Equal(t, SearchVault, h.m.SearchPlaceholder())
	})

	t.Run("newer snapshot still holds selection", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))
		version := h.m.Version()

		// The delivered snapshot lacks F1, but the provider has since
		// published one that has it again.
		require.NoError(t, h.m.removeInvalidFolderSelection(ctx, []FolderView{{ID: NoFolderID}}))

		assert.Equal(t, "F1", h.m.ActiveFilter().FolderID())
		assert.Equal(t, version, h.m.Version())
	})

	t.Run("no selection", func(t *testing.T) {
		h := newStartedHarness(t)
		version := h.m.Version()
		require.NoError(t, h.m.removeInvalidFolderSelection(ctx, nil))
		assert.Equal(t, version, h.m.Version())
	})

	t.Run("head node is never stale", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, AllFoldersID)))
		version := h.m.Version()

		require.NoError(t, h.m.removeInvalidFolderSelection(ctx, nil))
		assert.Equal(t, AllFoldersID, h.m.ActiveFilter().FolderID())
		assert.Equal(t, version, h.m.Version())
	})

	t.Run("before start", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))
		err := h.m.removeInvalidFolderSelection(ctx, nil)
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}

func TestRemoveInvalidCollectionSelection(t *testing.T) {
	ctx := context.Background()
	h := newStartedHarness(t)
	require.NoError(t, h.m.ApplyCollectionFilter(ctx, h.collectionNode(t, "C1")))

	require.NoError(t, h.m.removeInvalidCollectionSelection(ctx, []CollectionView{{ID: "C1"}}))
	assert.Equal(t, "C1", h.m.ActiveFilter().CollectionID())

	require.NoError(t, h.m.removeInvalidCollectionSelection(ctx, []CollectionView{{ID: "C2"}}))
	assert.Equal(t, "C1", h.m.ActiveFilter().CollectionID(), "provider still publishes C1")

	h.provider.collections.Next([]CollectionView{{ID: "C2"}})
	require.NoError(t, h.m.removeInvalidCollectionSelection(ctx, []CollectionView{{ID: "C2"}}))
	f := h.m.ActiveFilter()
	assert.Nil(t, f.CollectionNode)
	assert.Equal(t, AllItemsID, f.CipherTypeNode.ID)
}

func TestWatchersHealStaleSelections(t *testing.T) {
	ctx := context.Background()
	h := newStartedHarness(t)

	require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))
	h.provider.folders.Next([]FolderView{{ID: NoFolderID}})

	assert.Eventually(t, func() bool {
		f := h.m.ActiveFilter()
		return f.CipherTypeNode != nil && f.CipherTypeNode.ID == AllItemsID
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, h.m.ApplyCollectionFilter(ctx, h.collectionNode(t, "C1")))
	h.provider.collections.Next([]CollectionView{})

	assert.Eventually(t, func() bool {
		f := h.m.ActiveFilter()
		return f.CipherTypeNode != nil && len(h.m.CurrentCollections()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCurrentCollectionsMirror(t *testing.T) {
	h := newStartedHarness(t)

	assert.Eventually(t, func() bool {
		return len(h.m.CurrentCollections()) == 1
	}, time.Second, 5*time.Millisecond)

	h.provider.collections.Next([]CollectionView{{ID: "C1"}, {ID: "C2"}})
	assert.Eventually(t, func() bool {
		return len(h.m.CurrentCollections()) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestToggleCollapse(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle persists", func(t *testing.T) {
		h := newStartedHarness(t)
		require.NoError(t, h.m.ToggleCollapse(ctx, AllFoldersID))
		assert.True(t, h.m.IsCollapsed(AllFoldersID))

		require.NoError(t, h.m.ToggleCollapse(ctx, AllFoldersID))
		assert.False(t, h.m.IsCollapsed(AllFoldersID))
		assert.Equal(t, 2, h.provider.storedCount())
		assert.Empty(t, h.provider.lastStored())
	})

	t.Run("sequential toggles are all stored", func(t *testing.T) {
		h := newStartedHarness(t)
		ids := make([]string, 200)
		for i := range ids {
			ids[i] = fmt.Sprintf("node-%03d", i)
			require.NoError(t, h.m.ToggleCollapse(ctx, ids[i]))
		}

		stored := h.provider.lastStored()
		assert.Equal(t, ids, stored.IDs())
		assert.Eventually(t, func() bool {
			return len(h.m.CollapsedNodes()) == len(ids)
		}, time.Second, 5*time.Millisecond)
		for _, id := range ids {
			assert.True(t, h.m.IsCollapsed(id), id)
		}
	})

	t.Run("store failure keeps state", func(t *testing.T) {
		h := newStartedHarness(t)
		boom := errors.New("disk full")
		h.provider.mu.Lock()
		h.provider.storeErr = boom
		h.provider.mu.Unlock()

		err := h.m.ToggleCollapse(ctx, "F1")
		require.ErrorIs(t, err, boom)
		assert.False(t, h.m.IsCollapsed("F1"))
		assert.Equal(t, 0, h.provider.storedCount())
	})

	t.Run("mirror follows provider", func(t *testing.T) {
		h := newStartedHarness(t)
		h.provider.collapsed.Next(NewNodeSet("C1", AllVaultsID))

		assert.Eventually(t, func() bool {
			return h.m.IsCollapsed("C1") && h.m.IsCollapsed(AllVaultsID)
		}, time.Second, 5*time.Millisecond)

		require.NoError(t, h.m.ToggleCollapse(ctx, "F1"))
		assert.Equal(t, []string{AllVaultsID, "C1", "F1"}, h.provider.lastStored().IDs())
	})
}

func TestReloads(t *testing.T) {
	ctx := context.Background()

	t.Run("organizations before build", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.m.ReloadOrganizations(ctx))
		assert.Zero(t, h.provider.orgReloads)
	})

	t.Run("organizations rebuild sections", func(t *testing.T) {
		h := newStartedHarness(t)
		h.provider.singleOrg = true

		require.NoError(t, h.m.ReloadOrganizations(ctx))
		assert.Equal(t, 1, h.provider.orgReloads)
		assert.Equal(t, 4, h.provider.typeTreeCalls)

		filters, ok := h.m.Filters()
		require.True(t, ok)
		assert.Nil(t, filters.Organization.Add)
	})

	t.Run("collections", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.m.ReloadCollections(ctx))
		assert.Equal(t, 1, h.provider.collReloads)
		_, ok := h.m.Filters()
		assert.False(t, ok)
	})
}

func TestHostRequests(t *testing.T) {
	ctx := context.Background()
	var (
		added  int
		edited FolderFilter
		search string
	)
	h := newStartedHarness(t,
		WithOnAddFolder(func() { added++ }),
		WithOnEditFolder(func(f FolderFilter) { edited = f }),
		WithOnSearchTextChanged(func(s string) { search = s }),
	)

	filters, ok := h.m.Filters()
	require.True(t, ok)
	require.NoError(t, filters.Folder.Add.Action(ctx))
	require.NoError(t, filters.Folder.Edit.Action(ctx, FolderFilter{ID: "F1", Name: "Work"}))
	h.m.SetSearchText("github")

	assert.Equal(t, 1, added)
	assert.Equal(t, "F1", edited.ID)
	assert.Equal(t, "github", search)
	assert.Equal(t, "github", h.m.SearchText())
}

func TestResetFilter(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t)
	assert.ErrorIs(t, h.m.ResetFilter(ctx), ErrNotLoaded)

	h = newStartedHarness(t)
	require.NoError(t, h.m.ApplyOrganizationFilter(ctx, h.orgNode(t, "O1")))
	require.NoError(t, h.m.ApplyFolderFilter(ctx, h.folderNode(t, "F1")))
	require.NoError(t, h.m.ResetFilter(ctx))

	f := h.m.ActiveFilter()
	assert.Equal(t, AllItemsID, f.CipherTypeNode.ID)
	assert.Equal(t, "O1", f.OrganizationID())
}

func TestInitialFilter(t *testing.T) {
	seed := ActiveFilter{}.WithOrganization(NewTreeNode(OrganizationFilter{ID: "O1", Enabled: true}, nil))
	h := newStartedHarness(t, WithInitialFilter(seed))

	assert.Equal(t, "O1", h.m.ActiveFilter().OrganizationID())
	assert.Equal(t, SearchOrganization, h.m.SearchPlaceholder())
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	h := newStartedHarness(t)

	require.NoError(t, h.m.Close())
	require.NoError(t, h.m.Close())

	assert.ErrorIs(t, h.m.ApplyTypeFilter(ctx, typeNode("login")), ErrClosed)
	assert.ErrorIs(t, h.m.ToggleCollapse(ctx, "F1"), ErrClosed)
	assert.ErrorIs(t, h.m.Start(ctx), ErrClosed)

	assert.Eventually(t, func() bool {
		return h.provider.folders.SubscriberCount() == 0 &&
			h.provider.collections.SubscriberCount() == 0 &&
			h.provider.collapsed.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)
}
