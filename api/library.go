package api

import (
	"image"
	"vincit.fi/photo-triage/api/apitype"
)

type LibraryProvider interface {
	RequestAuthorization() apitype.AuthorizationStatus

	FetchCollections() ([]*apitype.CollectionInfo, error)
	// FetchItems returns the items of the collection, or of the whole
	// library when collection is nil, newest first.
	FetchItems(collection *apitype.Collection) ([]*apitype.Item, error)
	// FetchItemsByIds keeps the order of ids and drops ids that no
	// longer exist in the library.
	FetchItemsByIds(ids []apitype.ItemId) ([]*apitype.Item, error)

	// DeleteItems blocks until the items are gone. Must not be called
	// on the dispatcher goroutine.
	DeleteItems(items []*apitype.Item) error

	LoadImage(item *apitype.Item, width int, height int) (image.Image, error)
}

type IdentifierStore interface {
	Set(key string, identifiers []string) error
	Get(key string) ([]string, bool, error)
	Remove(key string) error
}

const (
	KeptIdentifiersKey    = "keptPhotoIdentifiers"
	DeletedIdentifiersKey = "deletedPhotoIdentifiers"
	PendingIdentifiersKey = "pendingPhotoIdentifiers"
)
