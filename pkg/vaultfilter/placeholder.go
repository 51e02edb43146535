package vaultfilter

// Search placeholder keys, looked up through the Translator.
const (
	SearchFavorites    = "searchFavorites"
	SearchTrash        = "searchTrash"
	SearchLogin        = "searchLogin"
	SearchCard         = "searchCard"
	SearchIdentity     = "searchIdentity"
	SearchSecureNote   = "searchSecureNote"
	SearchFolder       = "searchFolder"
	SearchCollection   = "searchCollection"
	SearchMyVault      = "searchMyVault"
	SearchOrganization = "searchOrganization"
	SearchVault        = "searchVault"
)

// SearchPlaceholderKey picks the search bar label for f. First match wins:
// favorites, trash, item type, folder, collection, my vault, organization,
// then the vault default.
func SearchPlaceholderKey(f ActiveFilter) string {
	if f.IsFavorites() {
		return SearchFavorites
	}
	if f.IsDeleted() {
		return SearchTrash
	}
	if t, ok := f.CipherType(); ok {
		switch t {
		case CipherTypeLogin:
			return SearchLogin
		case CipherTypeCard:
			return SearchCard
		case CipherTypeIdentity:
			return SearchIdentity
		case CipherTypeSecureNote:
			return SearchSecureNote
		}
	}
	if f.FolderNode != nil {
		return SearchFolder
	}
	if f.CollectionNode != nil {
		return SearchCollection
	}
	switch f.OrganizationScope() {
	case ScopeMyVault:
		return SearchMyVault
	case ScopeOrganization:
		return SearchOrganization
	}
	return SearchVault
}
