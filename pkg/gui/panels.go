package gui

import (
	"context"

	"github.com/marjoballabani/lazyvault/pkg/gui/icons"
	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

const detailsColumn = "details"

// panel is the view state of one filter section.
type panel struct {
	kind     vaultfilter.SectionKind
	titleKey string
	icon     func() string
	cursor   int
	filter   string // committed filter, cleared by Esc
}

func newPanels() map[string]*panel {
	return map[string]*panel{
		string(vaultfilter.SectionOrganization): {
			kind: vaultfilter.SectionOrganization, titleKey: "organizations",
			icon: func() string { return icons.ORGANIZATION_ICON },
		},
		string(vaultfilter.SectionType): {
			kind: vaultfilter.SectionType, titleKey: "types",
			icon: func() string { return icons.TYPE_ICON },
		},
		string(vaultfilter.SectionFolder): {
			kind: vaultfilter.SectionFolder, titleKey: "folders",
			icon: func() string { return icons.FOLDER_ICON },
		},
		string(vaultfilter.SectionCollection): {
			kind: vaultfilter.SectionCollection, titleKey: "collections",
			icon: func() string { return icons.COLLECTION_ICON },
		},
		string(vaultfilter.SectionTrash): {
			kind: vaultfilter.SectionTrash, titleKey: "trash",
			icon: func() string { return icons.TRASH_ICON },
		},
	}
}

// columns lists the focusable views from left to right.
func columns() []string {
	cols := make([]string, 0, len(vaultfilter.SectionOrder)+1)
	for _, kind := range vaultfilter.SectionOrder {
		cols = append(cols, string(kind))
	}
	return append(cols, detailsColumn)
}

// row is one rendered line of a filter panel.
type row struct {
	id          string
	name        string
	icon        string
	depth       int
	hasChildren bool
	collapsed   bool
	active      bool
	disabled    bool
	apply       func(ctx context.Context) error
	edit        func(ctx context.Context) error
}

type selectable interface {
	Selectable() bool
}

type noFolder interface {
	IsNoFolder() bool
}

// flattenTree lists the visible nodes of root depth-first. Children of
// collapsed nodes are skipped. The head row only gets an action when the
// section header is selectable.
func flattenTree[T vaultfilter.Item](root *vaultfilter.TreeNode[T], section *vaultfilter.Section[T], isCollapsed func(string) bool, activeID string) []row {
	if root == nil {
		return nil
	}

	var rows []row
	var visit func(n *vaultfilter.TreeNode[T], depth int)
	visit = func(n *vaultfilter.TreeNode[T], depth int) {
		r := row{
			id:          n.ID,
			name:        n.Node.GetName(),
			icon:        n.Node.GetIcon(),
			depth:       depth,
			hasChildren: n.HasChildren(),
			active:      activeID != "" && n.ID == activeID,
		}
		r.collapsed = r.hasChildren && isCollapsed(n.ID)
		if s, ok := any(n.Node).(selectable); ok && !s.Selectable() {
			r.disabled = true
		}

		if section != nil {
			if section.Action != nil && (depth > 0 || section.Header.IsSelectable) {
				action := section.Action
				r.apply = func(ctx context.Context) error { return action(ctx, n) }
			}
			if section.Edit != nil && depth > 0 {
				if nf, ok := any(n.Node).(noFolder); !ok || !nf.IsNoFolder() {
					edit := section.Edit.Action
					r.edit = func(ctx context.Context) error { return edit(ctx, n.Node) }
				}
			}
		}

		rows = append(rows, r)
		if r.collapsed {
			return
		}
		for _, child := range n.Children {
			visit(child, depth+1)
		}
	}
	visit(root, 0)
	return rows
}

// filterRows keeps the rows whose name matches filter. Matching rows keep
// their depth so the tree shape stays readable.
func filterRows(rows []row, filter string) []row {
	if filter == "" {
		return rows
	}
	var filtered []row
	for _, r := range rows {
		if MatchesFilter(r.name, filter) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// rowsFor returns the unfiltered rows of a section panel.
func (g *Gui) rowsFor(kind vaultfilter.SectionKind) []row {
	active := g.manager.ActiveFilter()
	collapsed := g.manager.IsCollapsed

	switch kind {
	case vaultfilter.SectionOrganization:
		return flattenTree(g.orgTree, g.filters.Organization, collapsed, nodeID(active.OrganizationNode))
	case vaultfilter.SectionType:
		return flattenTree(g.typeTree, g.filters.Type, collapsed, nodeID(active.CipherTypeNode))
	case vaultfilter.SectionFolder:
		return flattenTree(g.folderTree, g.filters.Folder, collapsed, nodeID(active.FolderNode))
	case vaultfilter.SectionCollection:
		return flattenTree(g.collectionTree, g.filters.Collection, collapsed, nodeID(active.CollectionNode))
	case vaultfilter.SectionTrash:
		return flattenTree(g.trashTree, g.filters.Trash, collapsed, nodeID(active.CipherTypeNode))
	}
	return nil
}

// visibleRows returns the rows of the named panel after its filter.
func (g *Gui) visibleRows(name string) []row {
	p, ok := g.panels[name]
	if !ok {
		return nil
	}
	filter := p.filter
	if g.isFilteringPanel(name) {
		filter = g.filterInputText
	}
	return filterRows(g.rowsFor(p.kind), filter)
}

// currentRow is the row under the cursor of the focused panel.
func (g *Gui) currentRow() (row, bool) {
	p, ok := g.panels[g.currentColumn]
	if !ok {
		return row{}, false
	}
	rows := g.visibleRows(g.currentColumn)
	if p.cursor < 0 || p.cursor >= len(rows) {
		return row{}, false
	}
	return rows[p.cursor], true
}

func nodeID[T vaultfilter.Item](node *vaultfilter.TreeNode[T]) string {
	if node == nil {
		return ""
	}
	return node.ID
}

// panelHeights splits total rows of screen between the section panels. The
// focused panel takes whatever the others leave; the others shrink to their
// content, between 3 and maxCollapsed lines including borders.
func panelHeights(total, focused int, counts []int) []int {
	const minHeight = 3
	const maxCollapsed = 6

	heights := make([]int, len(counts))
	used := 0
	for i, n := range counts {
		if i == focused {
			continue
		}
		h := n + 2
		if h < minHeight {
			h = minHeight
		}
		if h > maxCollapsed {
			h = maxCollapsed
		}
		heights[i] = h
		used += h
	}
	if focused >= 0 && focused < len(counts) {
		h := total - used
		if h < minHeight {
			h = minHeight
		}
		heights[focused] = h
	}
	return heights
}
