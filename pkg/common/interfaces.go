package common

import (
	"context"
)

// This is the interface for accessing the Modrinth API.
type IModrinthClient interface {
	// Gets the snapshots of all the given projects with one single request.
	GetProjects(ctx context.Context, projectIds []string) ([]*ProjectSnapshot, error)
	// Gets the details of a single version.
	GetVersion(ctx context.Context, versionId string) (*VersionDetail, error)
}

// This is the interface that needs to be implemented by all notifiers.
type INotifier interface {
	// Gets the type of the notifier.
	Type() NotifierType
	// Delivers the notification to the target.
	Notify(ctx context.Context, notification *Notification) error
}

// This is the interface for the storage of the known versions.
type ICacheStore interface {
	// Gets the type of the store.
	Type() CacheType
	// Loads the known versions. A store without data returns an empty map.
	Load() (KnownVersions, error)
	// Replaces the stored data with the given known versions.
	Save(knownVersions KnownVersions) error
}
