package vaultfilter

import (
	"context"

	"github.com/pkg/errors"
)

// buildStep adds one section to the aggregate and returns it.
type buildStep func(ctx context.Context, f Filters) (Filters, error)

// TypeFilterRoot and TypeFilterChildren are the fixed item-type facet. The
// child order is the default browse order.
func TypeFilterRoot() CipherTypeFilter {
	return CipherTypeFilter{ID: AllItemsID, Name: "allItems", Type: FilterTypeAll, Icon: ""}
}

func TypeFilterChildren(t Translator) []CipherTypeFilter {
	return []CipherTypeFilter{
		{ID: "favorites", Name: t.T("favorites"), Type: FilterTypeFavorites, Icon: "bwi-star"},
		{ID: "login", Name: t.T("typeLogin"), Type: FilterTypeLogin, Icon: "bwi-globe"},
		{ID: "card", Name: t.T("typeCard"), Type: FilterTypeCard, Icon: "bwi-credit-card"},
		{ID: "identity", Name: t.T("typeIdentity"), Type: FilterTypeIdentity, Icon: "bwi-id-card"},
		{ID: "note", Name: t.T("typeSecureNote"), Type: FilterTypeSecureNote, Icon: "bwi-sticky-note"},
	}
}

// TrashFilterRoot and TrashFilterChildren are the fixed trash facet.
func TrashFilterRoot() CipherTypeFilter {
	return CipherTypeFilter{ID: HeadTrashID, Name: "HeadTrash", Type: FilterTypeTrash, Icon: "bwi-trash"}
}

func TrashFilterChildren(t Translator) []CipherTypeFilter {
	return []CipherTypeFilter{
		{ID: TrashID, Name: t.T("trash"), Type: FilterTypeTrash, Icon: "bwi-trash"},
	}
}

// BuildAllFilters assembles every section in SectionOrder and publishes the
// result only once all steps have succeeded.
func (m *Manager) BuildAllFilters(ctx context.Context) (Filters, error) {
	steps := []buildStep{
		m.addOrganizationFilter,
		m.addTypeFilter,
		m.addFolderFilter,
		m.addCollectionFilter,
		m.addTrashFilter,
	}

	var f Filters
	for _, step := range steps {
		var err error
		if f, err = step(ctx, f); err != nil {
			return Filters{}, err
		}
	}

	m.mu.Lock()
	m.filters = &f
	m.mu.Unlock()

	m.logger.Debug("filter sections built")
	return f, nil
}

func (m *Manager) addOrganizationFilter(ctx context.Context, f Filters) (Filters, error) {
	singleOrg, err := m.provider.CheckSingleOrganizationPolicy(ctx)
	if err != nil {
		return f, errors.Wrap(err, "failed to check single organization policy")
	}
	personalOwnership, err := m.provider.CheckPersonalOwnershipPolicy(ctx)
	if err != nil {
		return f, errors.Wrap(err, "failed to check personal ownership policy")
	}

	section := &Section[OrganizationFilter]{
		Kind: SectionOrganization,
		Data: m.provider.OrganizationTree(),
		Header: HeaderConfig{
			ShowHeader:   !(singleOrg && personalOwnership),
			IsSelectable: true,
		},
		Action:  m.ApplyOrganizationFilter,
		Divider: true,
	}
	if !personalOwnership {
		section.Options = &OptionsRenderer{Name: "organization-options"}
	}
	if !singleOrg {
		section.Add = &AddAction{Text: "newOrganization", Route: "/create-organization"}
	}

	f.Organization = section
	return f, nil
}

func (m *Manager) addTypeFilter(_ context.Context, f Filters) (Filters, error) {
	f.Type = &Section[CipherTypeFilter]{
		Kind:   SectionType,
		Data:   m.provider.BuildTypeTree(TypeFilterRoot(), TypeFilterChildren(m.i18n)),
		Header: HeaderConfig{ShowHeader: true, IsSelectable: true},
		Action: m.ApplyTypeFilter,
	}
	return f, nil
}

func (m *Manager) addFolderFilter(_ context.Context, f Filters) (Filters, error) {
	f.Folder = &Section[FolderFilter]{
		Kind:   SectionFolder,
		Data:   m.provider.FolderTree(),
		Header: HeaderConfig{ShowHeader: true, IsSelectable: false},
		Action: m.ApplyFolderFilter,
		Edit:   &EditAction[FolderFilter]{Text: "editFolder", Action: m.EditFolder},
		Add:    &AddAction{Text: "Add Folder", Action: m.AddFolder},
	}
	return f, nil
}

func (m *Manager) addCollectionFilter(_ context.Context, f Filters) (Filters, error) {
	f.Collection = &Section[CollectionFilter]{
		Kind:   SectionCollection,
		Data:   m.provider.CollectionTree(),
		Header: HeaderConfig{ShowHeader: true, IsSelectable: true},
		Action: m.ApplyCollectionFilter,
	}
	return f, nil
}

func (m *Manager) addTrashFilter(_ context.Context, f Filters) (Filters, error) {
	f.Trash = &Section[CipherTypeFilter]{
		Kind:   SectionTrash,
		Data:   m.provider.BuildTypeTree(TrashFilterRoot(), TrashFilterChildren(m.i18n)),
		Header: HeaderConfig{ShowHeader: false, IsSelectable: true},
		Action: m.ApplyTypeFilter,
	}
	return f, nil
}
