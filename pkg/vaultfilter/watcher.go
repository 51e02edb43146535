package vaultfilter

import (
	"context"

	"github.com/pkg/errors"
)

// watchCollapsedNodes keeps the local collapsed-node mirror current. A
// delivery only signals a change; the mirror is read from the latest
// published set under the lock, never from the delivered value.
func (m *Manager) watchCollapsedNodes(ctx context.Context) error {
	nodes := m.provider.CollapsedNodes()
	updates := nodes.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			m.mu.Lock()
			latest, err := nodes.First(ctx)
			if err == nil {
				m.collapsed = latest.Clone()
			}
			m.mu.Unlock()
			if err != nil && ctx.Err() == nil {
				m.logger.WithError(err).Error("failed to read collapsed nodes")
			}
		}
	}
}

func (m *Manager) watchFolders(ctx context.Context) error {
	updates := m.provider.FilteredFolders().Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case folders, ok := <-updates:
			if !ok {
				return nil
			}
			if err := m.removeInvalidFolderSelection(ctx, folders); err != nil && ctx.Err() == nil {
				m.logger.WithError(err).Error("failed to reset stale folder selection")
			}
		}
	}
}

func (m *Manager) watchCollections(ctx context.Context) error {
	updates := m.provider.FilteredCollections().Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case collections, ok := <-updates:
			if !ok {
				return nil
			}
			m.mu.Lock()
			m.currentCollections = collections
			m.mu.Unlock()
			if err := m.removeInvalidCollectionSelection(ctx, collections); err != nil && ctx.Err() == nil {
				m.logger.WithError(err).Error("failed to reset stale collection selection")
			}
		}
	}
}

func folderSelectionStale(selected *TreeNode[FolderFilter], folders []FolderView) bool {
	if selected == nil || selected.ID == AllFoldersID {
		return false
	}
	for _, f := range folders {
		if f.ID == selected.Node.ID {
			return false
		}
	}
	return true
}

func collectionSelectionStale(selected *TreeNode[CollectionFilter], collections []CollectionView) bool {
	if selected == nil || selected.ID == AllCollectionsID {
		return false
	}
	for _, c := range collections {
		if c.ID == selected.Node.ID {
			return false
		}
	}
	return true
}

func (m *Manager) removeInvalidFolderSelection(ctx context.Context, folders []FolderView) error {
	m.mu.Lock()
	stale := folderSelectionStale(m.filter.FolderNode, folders)
	m.mu.Unlock()
	if !stale {
		return nil
	}

	return m.resetToTypeRoot(ctx, "folder", func() (bool, error) {
		latest, err := m.provider.FilteredFolders().First(ctx)
		if err != nil {
			return false, errors.Wrap(err, "failed to read folders")
		}
		return folderSelectionStale(m.filter.FolderNode, latest), nil
	})
}

func (m *Manager) removeInvalidCollectionSelection(ctx context.Context, collections []CollectionView) error {
	m.mu.Lock()
	stale := collectionSelectionStale(m.filter.CollectionNode, collections)
	m.mu.Unlock()
	if !stale {
		return nil
	}

	return m.resetToTypeRoot(ctx, "collection", func() (bool, error) {
		latest, err := m.provider.FilteredCollections().First(ctx)
		if err != nil {
			return false, errors.Wrap(err, "failed to read collections")
		}
		return collectionSelectionStale(m.filter.CollectionNode, latest), nil
	})
}

// resetToTypeRoot replaces the selection with the root type node. The root
// is read outside the lock; stillStale is re-evaluated under it against the
// latest published snapshot, so a selection made in between, or a snapshot
// that already brought the selection back, is left alone.
func (m *Manager) resetToTypeRoot(ctx context.Context, facet string, stillStale func() (bool, error)) error {
	root, err := m.typeRoot(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	stale, err := stillStale()
	if err != nil || !stale {
		return err
	}

	m.logger.WithField("facet", facet).Info("selection no longer exists, showing all items")
	m.filter = m.filter.WithCipherType(root)
	m.applyVaultFilter(FacetCipherType, root.ID)
	return nil
}

// ResetFilter drops the type, folder and collection selection and shows all
// items again. The organization selection is kept.
func (m *Manager) ResetFilter(ctx context.Context) error {
	root, err := m.typeRoot(ctx)
	if err != nil {
		return err
	}
	return m.ApplyTypeFilter(ctx, root)
}

func (m *Manager) typeRoot(ctx context.Context) (*TreeNode[CipherTypeFilter], error) {
	filters, ok := m.Filters()
	if !ok {
		return nil, ErrNotLoaded
	}
	root, err := filters.Type.Data.First(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read type tree")
	}
	return root, nil
}
