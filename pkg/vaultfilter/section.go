package vaultfilter

import (
	"context"

	"github.com/marjoballabani/lazyvault/pkg/stream"
)

// SectionKind identifies a facet section.
type SectionKind string

const (
	SectionOrganization SectionKind = "organization"
	SectionType         SectionKind = "type"
	SectionFolder       SectionKind = "folder"
	SectionCollection   SectionKind = "collection"
	SectionTrash        SectionKind = "trash"
)

// SectionOrder is the order sections are built and shown in.
var SectionOrder = []SectionKind{
	SectionOrganization,
	SectionType,
	SectionFolder,
	SectionCollection,
	SectionTrash,
}

// HeaderConfig controls the section header.
type HeaderConfig struct {
	ShowHeader   bool
	IsSelectable bool
}

// ActionFunc applies a node of a section.
type ActionFunc[T Item] func(ctx context.Context, node *TreeNode[T]) error

// AddAction is the "add" entry of a section. Route is set when the host
// should navigate somewhere instead of calling Action.
type AddAction struct {
	Text   string
	Route  string
	Action func(ctx context.Context) error
}

// EditAction is the per-node "edit" entry of a section.
type EditAction[T Item] struct {
	Text   string
	Action func(ctx context.Context, node T) error
}

// OptionsRenderer names the extra per-node options a host may render.
type OptionsRenderer struct {
	Name string
}

// Section describes one facet: its tree, header and available actions.
// Sections are values rebuilt whenever their inputs change; they never own
// the ActiveFilter.
type Section[T Item] struct {
	Kind    SectionKind
	Data    stream.Stream[*TreeNode[T]]
	Header  HeaderConfig
	Action  ActionFunc[T]
	Add     *AddAction
	Edit    *EditAction[T]
	Options *OptionsRenderer
	Divider bool
}

// Filters is the complete set of facet sections.
type Filters struct {
	Organization *Section[OrganizationFilter]
	Type         *Section[CipherTypeFilter]
	Folder       *Section[FolderFilter]
	Collection   *Section[CollectionFilter]
	Trash        *Section[CipherTypeFilter]
}

// Complete reports whether every section is present.
func (f Filters) Complete() bool {
	return f.Organization != nil && f.Type != nil && f.Folder != nil &&
		f.Collection != nil && f.Trash != nil
}
