package vault

import (
	"sort"
	"strings"

	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

// NestingDelimiter separates path segments in folder and collection names.
const NestingDelimiter = "/"

// nest adds items under head, nesting "A/B" below "A" when "A" exists.
// Nested nodes carry the remainder of the name relative to their parent.
// Names without an existing parent stay at the top with their full name.
func nest[T vaultfilter.Item](head *vaultfilter.TreeNode[T], items []T, rename func(T, string) T) {
	sorted := append([]T(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetName() < sorted[j].GetName()
	})

	byPath := make(map[string]*vaultfilter.TreeNode[T], len(sorted))
	for _, item := range sorted {
		path := item.GetName()
		parent, prefix := head, ""
		for i := strings.LastIndex(path, NestingDelimiter); i > 0; i = strings.LastIndex(path[:i], NestingDelimiter) {
			if node, ok := byPath[path[:i]]; ok {
				parent, prefix = node, path[:i]
				break
			}
		}

		name := path
		if prefix != "" {
			name = strings.TrimPrefix(path, prefix+NestingDelimiter)
		}
		node := parent.AddChild(rename(item, name))
		if _, dup := byPath[path]; !dup {
			byPath[path] = node
		}
	}
}

// FolderTree builds the folder panel tree. The "no folder" entry, when
// present in folders, is always the last child of the head.
func FolderTree(folders []vaultfilter.FolderView, t vaultfilter.Translator) *vaultfilter.TreeNode[vaultfilter.FolderFilter] {
	head := vaultfilter.NewTreeNode(vaultfilter.FolderFilter{ID: vaultfilter.AllFoldersID, Name: t.T("allFolders")}, nil)

	var (
		named    []vaultfilter.FolderFilter
		noFolder *vaultfilter.FolderFilter
	)
	for _, f := range folders {
		filter := vaultfilter.FolderFilter{ID: f.ID, Name: f.Name}
		if filter.IsNoFolder() {
			filter.Name = t.T("noneFolder")
			noFolder = &filter
			continue
		}
		named = append(named, filter)
	}

	nest(head, named, func(f vaultfilter.FolderFilter, name string) vaultfilter.FolderFilter {
		f.Name = name
		return f
	})
	if noFolder != nil {
		head.AddChild(*noFolder)
	}
	return head
}

// CollectionTree builds the collection panel tree.
func CollectionTree(collections []vaultfilter.CollectionView, t vaultfilter.Translator) *vaultfilter.TreeNode[vaultfilter.CollectionFilter] {
	head := vaultfilter.NewTreeNode(vaultfilter.CollectionFilter{ID: vaultfilter.AllCollectionsID, Name: t.T("allCollections")}, nil)

	items := make([]vaultfilter.CollectionFilter, 0, len(collections))
	for _, c := range collections {
		items = append(items, vaultfilter.CollectionFilter{ID: c.ID, Name: c.Name, OrganizationID: c.OrganizationID})
	}

	nest(head, items, func(c vaultfilter.CollectionFilter, name string) vaultfilter.CollectionFilter {
		c.Name = name
		return c
	})
	return head
}

// OrganizationTree builds the vault selector tree: "all vaults", then "my
// vault" unless personal ownership is restricted, then the organizations by
// name.
func OrganizationTree(orgs []Organization, personalOwnership bool, t vaultfilter.Translator) *vaultfilter.TreeNode[vaultfilter.OrganizationFilter] {
	head := vaultfilter.NewTreeNode(vaultfilter.OrganizationFilter{
		ID:      vaultfilter.AllVaultsID,
		Name:    t.T("allVaults"),
		Enabled: true,
		Icon:    "bwi-vault",
	}, nil)

	if !personalOwnership {
		head.AddChild(vaultfilter.OrganizationFilter{
			ID:      vaultfilter.MyVaultID,
			Name:    t.T("myVault"),
			Enabled: true,
			Icon:    "bwi-user",
		})
	}

	sorted := append([]Organization(nil), orgs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	for _, org := range sorted {
		head.AddChild(vaultfilter.OrganizationFilter{
			ID:      org.ID,
			Name:    org.Name,
			Enabled: org.Enabled,
			Icon:    "bwi-business",
		})
	}
	return head
}

// TypeTree puts children under root in the given order.
func TypeTree(root vaultfilter.CipherTypeFilter, children []vaultfilter.CipherTypeFilter, t vaultfilter.Translator) *vaultfilter.TreeNode[vaultfilter.CipherTypeFilter] {
	root.Name = t.T(root.Name)
	head := vaultfilter.NewTreeNode(root, nil)
	for _, c := range children {
		head.AddChild(c)
	}
	return head
}
