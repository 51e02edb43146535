package vaultfilter

// Facet names which of the mutually exclusive selections is active.
type Facet string

const (
	FacetNone         Facet = ""
	FacetCipherType   Facet = "type"
	FacetFolder       Facet = "folder"
	FacetCollection   Facet = "collection"
	FacetOrganization Facet = "organization"
)

// ActiveFilter is the current combination of facet selections.
//
// At most one of CipherTypeNode, FolderNode and CollectionNode is set.
// OrganizationNode is tracked independently and narrows the scope of the
// other three. Values are immutable in practice: every With* method returns
// an updated copy.
type ActiveFilter struct {
	OrganizationNode *TreeNode[OrganizationFilter]
	CipherTypeNode   *TreeNode[CipherTypeFilter]
	FolderNode       *TreeNode[FolderFilter]
	CollectionNode   *TreeNode[CollectionFilter]
}

// ResetFilter clears the type, folder and collection selection.
func (f ActiveFilter) ResetFilter() ActiveFilter {
	f.CipherTypeNode = nil
	f.FolderNode = nil
	f.CollectionNode = nil
	return f
}

// ResetOrganization clears the organization selection only.
func (f ActiveFilter) ResetOrganization() ActiveFilter {
	f.OrganizationNode = nil
	return f
}

// WithCipherType resets the exclusive facets and selects node.
func (f ActiveFilter) WithCipherType(node *TreeNode[CipherTypeFilter]) ActiveFilter {
	f = f.ResetFilter()
	f.CipherTypeNode = node
	return f
}

// WithFolder resets the exclusive facets and selects node.
func (f ActiveFilter) WithFolder(node *TreeNode[FolderFilter]) ActiveFilter {
	f = f.ResetFilter()
	f.FolderNode = node
	return f
}

// WithCollection resets the exclusive facets and selects node.
func (f ActiveFilter) WithCollection(node *TreeNode[CollectionFilter]) ActiveFilter {
	f = f.ResetFilter()
	f.CollectionNode = node
	return f
}

// WithOrganization replaces the organization selection. The "all vaults"
// node means no organization filter and leaves the selection empty.
func (f ActiveFilter) WithOrganization(node *TreeNode[OrganizationFilter]) ActiveFilter {
	f = f.ResetOrganization()
	if node != nil && node.Node.Scope() != ScopeAllVaults {
		f.OrganizationNode = node
	}
	return f
}

// Selected reports which exclusive facet is active.
func (f ActiveFilter) Selected() Facet {
	switch {
	case f.CipherTypeNode != nil:
		return FacetCipherType
	case f.FolderNode != nil:
		return FacetFolder
	case f.CollectionNode != nil:
		return FacetCollection
	}
	return FacetNone
}

func (f ActiveFilter) filterType() FilterType {
	if f.CipherTypeNode == nil {
		return ""
	}
	return f.CipherTypeNode.Node.Type
}

// IsFavorites reports whether the favorites type node is selected.
func (f ActiveFilter) IsFavorites() bool {
	return f.filterType() == FilterTypeFavorites
}

// IsDeleted reports whether the trash is selected.
func (f ActiveFilter) IsDeleted() bool {
	return f.filterType() == FilterTypeTrash
}

// CipherType returns the selected item kind, if a concrete one is selected.
func (f ActiveFilter) CipherType() (CipherType, bool) {
	return f.filterType().CipherType()
}

// FolderID returns the selected folder id or "".
func (f ActiveFilter) FolderID() string {
	if f.FolderNode == nil {
		return ""
	}
	return f.FolderNode.Node.ID
}

// CollectionID returns the selected collection id or "".
func (f ActiveFilter) CollectionID() string {
	if f.CollectionNode == nil {
		return ""
	}
	return f.CollectionNode.Node.ID
}

// OrganizationID returns the selected organization id, MyVaultID, or "".
func (f ActiveFilter) OrganizationID() string {
	if f.OrganizationNode == nil {
		return ""
	}
	return f.OrganizationNode.Node.ID
}

// OrganizationScope classifies the organization selection.
func (f ActiveFilter) OrganizationScope() OrganizationScope {
	if f.OrganizationNode == nil {
		return ScopeAllVaults
	}
	return f.OrganizationNode.Node.Scope()
}

// Snapshot is a flat, serialisable view of an ActiveFilter.
type Snapshot struct {
	Selected       Facet  `json:"selected,omitempty"`
	NodeID         string `json:"nodeId,omitempty"`
	NodeName       string `json:"nodeName,omitempty"`
	IsFavorites    bool   `json:"isFavorites"`
	IsDeleted      bool   `json:"isDeleted"`
	CipherType     string `json:"cipherType,omitempty"`
	FolderID       string `json:"folderId,omitempty"`
	CollectionID   string `json:"collectionId,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	Scope          string `json:"organizationScope"`
}

// Snapshot flattens the derived properties of f.
func (f ActiveFilter) Snapshot() Snapshot {
	s := Snapshot{
		Selected:       f.Selected(),
		IsFavorites:    f.IsFavorites(),
		IsDeleted:      f.IsDeleted(),
		FolderID:       f.FolderID(),
		CollectionID:   f.CollectionID(),
		OrganizationID: f.OrganizationID(),
		Scope:          f.OrganizationScope().String(),
	}
	if t, ok := f.CipherType(); ok {
		s.CipherType = t.String()
	}
	switch s.Selected {
	case FacetCipherType:
		s.NodeID, s.NodeName = f.CipherTypeNode.ID, f.CipherTypeNode.Node.Name
	case FacetFolder:
		s.NodeID, s.NodeName = f.FolderNode.ID, f.FolderNode.Node.Name
	case FacetCollection:
		s.NodeID, s.NodeName = f.CollectionNode.ID, f.CollectionNode.Node.Name
	}
	return s
}
