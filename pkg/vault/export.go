package vault

// Export is the part of a vault export the browser needs. Field names follow
// the default extraction queries, not the export file itself.
type Export struct {
	Organizations []Organization `json:"organizations"`
	Folders       []Folder       `json:"folders"`
	Collections   []Collection   `json:"collections"`
	Items         []Item         `json:"items"`
	Policies      Policies       `json:"policies"`
}

// Organization is an organization the user belongs to.
type Organization struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Folder is a personal folder. Nested folders use "/" in the name.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Collection belongs to exactly one organization.
type Collection struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

// Item is a vault entry. OrganizationID and FolderID are empty when unset.
type Item struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           int      `json:"type"`
	OrganizationID string   `json:"organizationId"`
	FolderID       string   `json:"folderId"`
	CollectionIDs  []string `json:"collectionIds"`
	Favorite       bool     `json:"favorite"`
	Deleted        bool     `json:"deleted"`
}

// Policies are the organization policies that shape the filter panels.
type Policies struct {
	SingleOrganization bool `json:"singleOrganization"`
	PersonalOwnership  bool `json:"personalOwnership"`
}

// Queries are the jq expressions that extract each entity list from the
// export document.
type Queries struct {
	Folders       string `mapstructure:"folders"`
	Collections   string `mapstructure:"collections"`
	Organizations string `mapstructure:"organizations"`
	Items         string `mapstructure:"items"`
	Policies      string `mapstructure:"policies"`
}

// DefaultQueries match the Bitwarden JSON export layout.
func DefaultQueries() Queries {
	return Queries{
		Folders:       `[.folders[]? | {id, name}]`,
		Collections:   `[.collections[]? | {id, name, organizationId: (.organizationId // "")}]`,
		Organizations: `[.organizations[]? | {id, name, enabled: (.enabled // true)}]`,
		Items: `[.items[]? | {id, name, type: .type, organizationId: (.organizationId // ""), ` +
			`folderId: (.folderId // ""), collectionIds: (.collectionIds // []), ` +
			`favorite: (.favorite // false), deleted: (.deletedDate != null)}]`,
		Policies: `{singleOrganization: (.policies.singleOrganization // false), ` +
			`personalOwnership: (.policies.personalOwnership // false)}`,
	}
}

// withDefaults fills empty queries from DefaultQueries.
func (q Queries) withDefaults() Queries {
	d := DefaultQueries()
	if q.Folders == "" {
		q.Folders = d.Folders
	}
	if q.Collections == "" {
		q.Collections = d.Collections
	}
	if q.Organizations == "" {
		q.Organizations = d.Organizations
	}
	if q.Items == "" {
		q.Items = d.Items
	}
	if q.Policies == "" {
		q.Policies = d.Policies
	}
	return q
}
