package vaultfilter

import (
	"context"

	"github.com/marjoballabani/lazyvault/pkg/stream"
)

// DataProvider supplies every piece of facet data the Manager consumes. All
// methods may fail; the Manager passes such failures on without retrying.
type DataProvider interface {
	CollapsedNodes() stream.Stream[NodeSet]
	FilteredFolders() stream.Stream[[]FolderView]
	FilteredCollections() stream.Stream[[]CollectionView]

	OrganizationTree() stream.Stream[*TreeNode[OrganizationFilter]]
	FolderTree() stream.Stream[*TreeNode[FolderFilter]]
	CollectionTree() stream.Stream[*TreeNode[CollectionFilter]]
	BuildTypeTree(root CipherTypeFilter, children []CipherTypeFilter) stream.Stream[*TreeNode[CipherTypeFilter]]

	// StoreCollapsedNodes persists nodes and publishes them on CollapsedNodes
	// before returning.
	StoreCollapsedNodes(ctx context.Context, nodes NodeSet) error

	CheckSingleOrganizationPolicy(ctx context.Context) (bool, error)
	CheckPersonalOwnershipPolicy(ctx context.Context) (bool, error)

	// UpdateOrganizationFilter narrows the folder and collection data to the
	// given organization scope.
	UpdateOrganizationFilter(org OrganizationFilter)
	ExpandOrganizationFilter(ctx context.Context) error
	ReloadOrganizations(ctx context.Context) error
	ReloadCollections(ctx context.Context) error
}

// NotificationLevel is the severity of a user-facing message.
type NotificationLevel string

const (
	NotifyError   NotificationLevel = "error"
	NotifyWarning NotificationLevel = "warning"
	NotifyInfo    NotificationLevel = "info"
)

// Notifier shows messages to the user.
type Notifier interface {
	Notify(level NotificationLevel, message string)
}

// Translator resolves localization keys to display strings.
type Translator interface {
	T(key string) string
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level NotificationLevel, message string)

func (f NotifierFunc) Notify(level NotificationLevel, message string) { f(level, message) }

type identityTranslator struct{}

func (identityTranslator) T(key string) string { return key }
