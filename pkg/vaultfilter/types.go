package vaultfilter

// Sentinel ids. They are visible to other collaborators (persisted collapsed
// state, item list filtering) and must keep these exact values.
const (
	AllVaultsID      = "AllVaults"
	MyVaultID        = "MyVault"
	AllItemsID       = "AllItems"
	AllFoldersID     = "AllFolders"
	AllCollectionsID = "AllCollections"
	HeadTrashID      = "headTrash"
	TrashID          = "trash"
	NoFolderID       = "NoFolder"
)

// Item is the capability every facet payload shares.
type Item interface {
	GetID() string
	GetName() string
	GetIcon() string
}

// CipherType is the kind of a vault item.
type CipherType int

const (
	CipherTypeLogin      CipherType = 1
	CipherTypeSecureNote CipherType = 2
	CipherTypeCard       CipherType = 3
	CipherTypeIdentity   CipherType = 4
)

func (t CipherType) String() string {
	switch t {
	case CipherTypeLogin:
		return "login"
	case CipherTypeSecureNote:
		return "secureNote"
	case CipherTypeCard:
		return "card"
	case CipherTypeIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// FilterType tags a type-facet node.
type FilterType string

const (
	FilterTypeAll        FilterType = "all"
	FilterTypeFavorites  FilterType = "favorites"
	FilterTypeLogin      FilterType = "login"
	FilterTypeCard       FilterType = "card"
	FilterTypeIdentity   FilterType = "identity"
	FilterTypeSecureNote FilterType = "secureNote"
	FilterTypeTrash      FilterType = "trash"
)

// CipherType maps the tag to an item kind. Pseudo types (all, favorites,
// trash) report false.
func (t FilterType) CipherType() (CipherType, bool) {
	switch t {
	case FilterTypeLogin:
		return CipherTypeLogin, true
	case FilterTypeCard:
		return CipherTypeCard, true
	case FilterTypeIdentity:
		return CipherTypeIdentity, true
	case FilterTypeSecureNote:
		return CipherTypeSecureNote, true
	}
	return 0, false
}

// CipherTypeFilter is the payload of the type and trash facets.
type CipherTypeFilter struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type FilterType `json:"type"`
	Icon string     `json:"icon"`
}

func (f CipherTypeFilter) GetID() string   { return f.ID }
func (f CipherTypeFilter) GetName() string { return f.Name }
func (f CipherTypeFilter) GetIcon() string { return f.Icon }

// FolderFilter is the payload of the folder facet. NoFolderID marks the
// pseudo folder holding items without one.
type FolderFilter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (f FolderFilter) GetID() string   { return f.ID }
func (f FolderFilter) GetName() string { return f.Name }
func (f FolderFilter) GetIcon() string { return "bwi-folder" }

// IsNoFolder reports whether f is the "no folder" sentinel.
func (f FolderFilter) IsNoFolder() bool { return f.ID == NoFolderID }

// CollectionFilter is the payload of the collection facet.
type CollectionFilter struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

func (f CollectionFilter) GetID() string   { return f.ID }
func (f CollectionFilter) GetName() string { return f.Name }
func (f CollectionFilter) GetIcon() string { return "bwi-collection" }

// OrganizationScope classifies an organization node.
type OrganizationScope int

const (
	// ScopeAllVaults means no organization filter at all.
	ScopeAllVaults OrganizationScope = iota
	// ScopeMyVault narrows to personally owned items.
	ScopeMyVault
	// ScopeOrganization narrows to one organization.
	ScopeOrganization
)

func (s OrganizationScope) String() string {
	switch s {
	case ScopeAllVaults:
		return "allVaults"
	case ScopeMyVault:
		return "myVault"
	default:
		return "organization"
	}
}

// OrganizationFilter is the payload of the organization facet.
type OrganizationFilter struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Icon    string `json:"icon"`
}

func (f OrganizationFilter) GetID() string   { return f.ID }
func (f OrganizationFilter) GetName() string { return f.Name }
func (f OrganizationFilter) GetIcon() string { return f.Icon }

// Scope derives the scope from the sentinel ids.
func (f OrganizationFilter) Scope() OrganizationScope {
	switch f.ID {
	case AllVaultsID:
		return ScopeAllVaults
	case MyVaultID:
		return ScopeMyVault
	default:
		return ScopeOrganization
	}
}

// Selectable reports whether the node may become the organization filter.
// "All vaults" always is; anything else must be enabled.
func (f OrganizationFilter) Selectable() bool {
	return f.Scope() == ScopeAllVaults || f.Enabled
}

// FolderView is a folder as the data provider streams it.
type FolderView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CollectionView is a collection as the data provider streams it.
type CollectionView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}
