package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

type keyTranslator struct{}

func (keyTranslator) T(key string) string { return key }

func TestFolderTreeNesting(t *testing.T) {
	folders := []vaultfilter.FolderView{
		{ID: "F2", Name: "Work/Infra"},
		{ID: vaultfilter.NoFolderID},
		{ID: "F1", Name: "Work"},
		{ID: "F4", Name: "Orphan/Child"},
		{ID: "F3", Name: "Personal"},
		{ID: "F5", Name: "Work/Infra/Prod"},
	}

	root := FolderTree(folders, keyTranslator{})

	assert.Equal(t, vaultfilter.AllFoldersID, root.ID)
	assert.Equal(t, "allFolders", root.Node.Name)
	assert.Equal(t, []string{vaultfilter.AllFoldersID, "F4", "F3", "F1", "F2", "F5", vaultfilter.NoFolderID}, root.IDs())

	infra := root.Find("F2")
	require.NotNil(t, infra)
	assert.Equal(t, "Infra", infra.Node.Name)
	assert.Equal(t, "F1", infra.Parent.ID)

	prod := root.Find("F5")
	require.NotNil(t, prod)
	assert.Equal(t, "Prod", prod.Node.Name)
	assert.Equal(t, 3, prod.Depth())

	orphan := root.Find("F4")
	assert.Equal(t, "Orphan/Child", orphan.Node.Name, "no parent keeps the full name")
	assert.Same(t, root, orphan.Parent)

	none := root.Children[len(root.Children)-1]
	assert.Equal(t, "noneFolder", none.Node.Name)
}

func TestCollectionTree(t *testing.T) {
	root := CollectionTree([]vaultfilter.CollectionView{
		{ID: "C2", Name: "Engineering/Backend", OrganizationID: "O1"},
		{ID: "C1", Name: "Engineering", OrganizationID: "O1"},
	}, keyTranslator{})

	assert.Equal(t, []string{vaultfilter.AllCollectionsID, "C1", "C2"}, root.IDs())
	backend := root.Find("C2")
	assert.Equal(t, "Backend", backend.Node.Name)
	assert.Equal(t, "O1", backend.Node.OrganizationID)
}

func TestOrganizationTree(t *testing.T) {
	orgs := []Organization{
		{ID: "O2", Name: "Globex", Enabled: false},
		{ID: "O1", Name: "acme", Enabled: true},
	}

	tests := []struct {
		name              string
		personalOwnership bool
		want              []string
	}{
		{"with my vault", false, []string{vaultfilter.AllVaultsID, vaultfilter.MyVaultID, "O1", "O2"}},
		{"personal ownership restricted", true, []string{vaultfilter.AllVaultsID, "O1", "O2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := OrganizationTree(orgs, tt.personalOwnership, keyTranslator{})
			assert.Equal(t, tt.want, root.IDs())
			assert.False(t, root.Find("O2").Node.Enabled)
		})
	}
}

func TestTypeTree(t *testing.T) {
	root := TypeTree(vaultfilter.TypeFilterRoot(), vaultfilter.TypeFilterChildren(keyTranslator{}), keyTranslator{})
	assert.Equal(t, []string{vaultfilter.AllItemsID, "favorites", "login", "card", "identity", "note"}, root.IDs())
	assert.Equal(t, "allItems", root.Node.Name)
}
