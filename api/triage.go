package api

import "vincit.fi/photo-triage/api/apitype"

type TriageService interface {
	Initialize()
	RequestAuthorization() apitype.AuthorizationStatus
	LoadInitialData()

	LoadForSelection(selection apitype.Selection)
	Reload()

	CurrentItem() *apitype.Item
	Swipe(item *apitype.Item, action apitype.SwipeAction)
	Undo()
	CanUndo() bool

	CancelDelete(item *apitype.Item)
	ConfirmDelete(items []*apitype.Item, done func(success bool))
	MoveFromPendingToKeep(item *apitype.Item)
	MoveFromPendingToDelete(item *apitype.Item)
	ResetKeptItems()
	ResetPendingItems()

	Selection() apitype.Selection
	Title() string
	FilteredItems() []*apitype.Item
	Cursor() int
	History() []apitype.HistoryEntry
	TotalItemCount() int

	KeptIdentifiers() []apitype.ItemId
	PendingItems() []*apitype.Item
	DeletedItems() []*apitype.Item

	AuthorizationStatus() apitype.AuthorizationStatus
	Collections() []*apitype.CollectionInfo
	Months() []apitype.PeriodCount
	Years() []apitype.PeriodCount
}
