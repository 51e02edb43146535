package vaultfilter

import (
	"context"

	"github.com/pkg/errors"
)

// ToggleCollapse flips the collapsed state of a tree node and persists the
// whole set through the provider. The toggle applies to the provider's latest
// published set, not to the local mirror.
func (m *Manager) ToggleCollapse(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	current, err := m.provider.CollapsedNodes().First(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read collapsed nodes")
	}
	next := current.Toggle(id)
	if err := m.provider.StoreCollapsedNodes(ctx, next); err != nil {
		return errors.Wrapf(err, "failed to store collapsed state of %q", id)
	}
	m.collapsed = next
	return nil
}

// IsCollapsed reports whether the node is collapsed.
func (m *Manager) IsCollapsed(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collapsed.Has(id)
}

// CollapsedNodes returns a copy of the collapsed set.
func (m *Manager) CollapsedNodes() NodeSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collapsed.Clone()
}
