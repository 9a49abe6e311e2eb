package triage

import (
	"time"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
	"vincit.fi/photo-triage/common/util"
)

// Service holds the triage state for one library. It is not safe for
// concurrent use: every method must be called on the goroutine behind
// the dispatcher.
//
// The filtered sequence is a snapshot taken when a selection is loaded.
// Swipes only move the cursor past decided items; a reload, reset or
// cancelled deletion recomputes the sequence.
type Service struct {
	sender          api.Sender
	library         api.LibraryProvider
	identifierStore api.IdentifierStore
	dispatcher      api.Dispatcher
	now             func() time.Time

	authorizationStatus apitype.AuthorizationStatus
	collections         []*apitype.CollectionInfo
	groups              *periodGroups
	totalItems          int

	selection  apitype.Selection
	candidates []*apitype.Item
	filtered   []*apitype.Item
	cursor     int
	history    []apitype.HistoryEntry

	kept    *util.Set[apitype.ItemId]
	pending []*apitype.Item
	deleted []*apitype.Item

	api.TriageService
}

func NewTriageService(sender api.Sender, library api.LibraryProvider, identifierStore api.IdentifierStore, dispatcher api.Dispatcher) *Service {
	return &Service{
		sender:              sender,
		library:             library,
		identifierStore:     identifierStore,
		dispatcher:          dispatcher,
		now:                 time.Now,
		authorizationStatus: apitype.NOT_DETERMINED,
		groups:              newPeriodGroups(),
		selection:           apitype.AllItems(),
		kept:                util.NewSet[apitype.ItemId](),
	}
}

// Initialize restores the outcome sets from the identifier store.
func (s *Service) Initialize() {
	s.loadOutcomeSets()
	s.sendOutcomeSets()
}

func (s *Service) RequestAuthorization() apitype.AuthorizationStatus {
	s.authorizationStatus = s.library.RequestAuthorization()
	logger.Info.Printf("Library authorization: %s", s.authorizationStatus)
	s.sender.SendCommandToTopic(api.AuthorizationUpdated, &api.AuthorizationCommand{
		Status: s.authorizationStatus,
	})
	return s.authorizationStatus
}

// LoadInitialData fetches collections and period groups and loads the
// current selection. Nothing is fetched without authorization.
func (s *Service) LoadInitialData() {
	if !s.authorizationStatus.IsGranted() {
		logger.Warn.Printf("Library not authorized (%s), not loading", s.authorizationStatus)
		return
	}

	if collections, err := s.library.FetchCollections(); err != nil {
		s.sender.SendError("Could not load albums", err)
		s.collections = nil
	} else {
		s.collections = collections
	}

	if allItems, err := s.library.FetchItems(nil); err != nil {
		s.sender.SendError("Could not load library", err)
		s.groups = newPeriodGroups()
		s.totalItems = 0
	} else {
		s.groups = groupByPeriod(allItems, s.now())
		s.totalItems = len(allItems)
	}

	s.sendLibrary()
	s.LoadForSelection(s.selection)
}

func (s *Service) LoadForSelection(selection apitype.Selection) {
	logger.Debug.Printf("Loading %s", selection)
	s.selection = selection
	s.candidates = s.fetchCandidates(selection)
	s.refilter()
}

// Reload refreshes the library data and reloads the current selection.
func (s *Service) Reload() {
	s.LoadInitialData()
}

func (s *Service) fetchCandidates(selection apitype.Selection) []*apitype.Item {
	switch selection.Kind() {
	case apitype.MONTH, apitype.YEAR:
		return util.Copy(s.groups.itemsOf(selection))
	case apitype.ALBUM:
		items, err := s.library.FetchItems(selection.Collection())
		if err != nil {
			s.sender.SendError("Could not load album "+selection.Title(), err)
			return nil
		}
		return items
	default:
		items, err := s.library.FetchItems(nil)
		if err != nil {
			s.sender.SendError("Could not load library", err)
			return nil
		}
		return items
	}
}

// refilter subtracts every outcome set from the candidates and resets
// the cursor and history.
func (s *Service) refilter() {
	s.filtered = util.Filter(s.candidates, func(item *apitype.Item) bool {
		return !s.isDecided(item.Id())
	})
	s.resetSwipeState()
	s.sendTriage()
}

func (s *Service) resetSwipeState() {
	s.cursor = 0
	s.history = nil
}

func (s *Service) isDecided(id apitype.ItemId) bool {
	return s.kept.Contains(id) || containsItem(s.pending, id) || containsItem(s.deleted, id)
}

func (s *Service) CurrentItem() *apitype.Item {
	if s.cursor < len(s.filtered) {
		return s.filtered[s.cursor]
	}
	return nil
}

func (s *Service) Swipe(item *apitype.Item, action apitype.SwipeAction) {
	if item == nil {
		logger.Warn.Print("Swipe without item")
		return
	}
	if s.isDecided(item.Id()) {
		logger.Warn.Printf("Item '%s' already has an outcome, re-classifying as %s", item.Id(), action)
		s.withdraw(item.Id())
	}
	if current := s.CurrentItem(); !apitype.SameItem(current, item) {
		logger.Debug.Printf("Swiped item '%s' is not the current item '%s'", item.Id(), current.Id())
	}

	switch action {
	case apitype.DELETE:
		s.deleted = append(s.deleted, item)
		s.saveDeleted()
	case apitype.KEEP:
		s.kept.Add(item.Id())
		s.saveKept()
	case apitype.PENDING:
		s.pending = append(s.pending, item)
		s.savePending()
	default:
		logger.Warn.Printf("Unknown swipe action %d", action)
		return
	}
	s.history = append(s.history, apitype.HistoryEntry{Action: action, Item: item})
	if s.cursor < len(s.filtered) {
		s.cursor++
	}
	logger.Debug.Printf("Swiped %s '%s', cursor %d/%d", action, item.Id(), s.cursor, len(s.filtered))

	s.sendTriage()
	s.sendOutcomeSets()
}

// withdraw removes id from whichever outcome set holds it so that a new
// decision keeps the sets disjoint.
func (s *Service) withdraw(id apitype.ItemId) {
	if s.kept.Contains(id) {
		s.kept.Remove(id)
		s.saveKept()
	}
	if containsItem(s.pending, id) {
		s.pending = removeItem(s.pending, id)
		s.savePending()
	}
	if containsItem(s.deleted, id) {
		s.deleted = removeItem(s.deleted, id)
		s.saveDeleted()
	}
}

// Undo reverts the latest swipe. Pending and deleted are reverted by
// removing their last element.
func (s *Service) Undo() {
	if len(s.history) == 0 {
		return
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if s.cursor > 0 {
		s.cursor--
	}

	switch last.Action {
	case apitype.DELETE:
		s.deleted = popTail(s.deleted, last)
		s.saveDeleted()
	case apitype.KEEP:
		s.kept.Remove(last.Item.Id())
		s.saveKept()
	case apitype.PENDING:
		s.pending = popTail(s.pending, last)
		s.savePending()
	}
	logger.Debug.Printf("Undid %s, cursor %d/%d", last, s.cursor, len(s.filtered))

	s.sendTriage()
	s.sendOutcomeSets()
}

func popTail(items []*apitype.Item, entry apitype.HistoryEntry) []*apitype.Item {
	if len(items) == 0 {
		logger.Warn.Printf("Nothing to undo for %s", entry)
		return items
	}
	tail := items[len(items)-1]
	if !apitype.SameItem(tail, entry.Item) {
		logger.Warn.Printf("Undo of %s removes '%s' instead", entry, tail.Id())
	}
	return items[:len(items)-1]
}

func (s *Service) CanUndo() bool {
	return len(s.history) > 0
}

// CancelDelete returns the item from the deleted set to the candidates.
func (s *Service) CancelDelete(item *apitype.Item) {
	if item == nil {
		return
	}
	s.deleted = removeItem(s.deleted, item.Id())
	s.saveDeleted()
	s.refilter()
	s.sendOutcomeSets()
}

// ConfirmDelete asks the library to delete items on a separate goroutine.
// The deleted set is updated and done called through the dispatcher once
// the library has answered. On failure nothing changes.
func (s *Service) ConfirmDelete(items []*apitype.Item, done func(success bool)) {
	if done == nil {
		done = func(bool) {}
	}
	if len(items) == 0 {
		done(true)
		return
	}

	toDelete := util.Copy(items)
	logger.Info.Printf("Deleting %d items", len(toDelete))
	go func() {
		err := s.library.DeleteItems(toDelete)
		s.dispatcher.Dispatch(func() {
			s.completeDelete(toDelete, err)
			done(err == nil)
		})
	}()
}

func (s *Service) completeDelete(items []*apitype.Item, err error) {
	if err != nil {
		s.sender.SendError("Could not delete items", err)
		s.sender.SendCommandToTopic(api.DeleteCompleted, &api.DeleteResultCommand{Items: items, Success: false})
		return
	}

	confirmed := make(map[apitype.ItemId]bool, len(items))
	for _, item := range items {
		confirmed[item.Id()] = true
	}
	s.deleted = util.Filter(s.deleted, func(item *apitype.Item) bool {
		return !confirmed[item.Id()]
	})
	s.saveDeleted()

	before := s.totalItems
	s.groups.remove(confirmed)
	s.totalItems = 0
	for _, count := range s.groups.yearCounts() {
		s.totalItems += count.Count
	}
	logger.Info.Printf("Deleted %d items, library %d -> %d", len(items), before, s.totalItems)

	s.sender.SendCommandToTopic(api.DeleteCompleted, &api.DeleteResultCommand{Items: items, Success: true})
	s.sendOutcomeSets()
	s.sendLibrary()
}

func (s *Service) MoveFromPendingToKeep(item *apitype.Item) {
	if !s.takeFromPending(item) {
		return
	}
	s.kept.Add(item.Id())
	s.saveKept()
	s.sendOutcomeSets()
}

func (s *Service) MoveFromPendingToDelete(item *apitype.Item) {
	if !s.takeFromPending(item) {
		return
	}
	s.deleted = append(s.deleted, item)
	s.saveDeleted()
	s.sendOutcomeSets()
}

func (s *Service) takeFromPending(item *apitype.Item) bool {
	if item == nil || !containsItem(s.pending, item.Id()) {
		logger.Warn.Printf("Item '%s' is not pending", item.Id())
		return false
	}
	s.pending = removeItem(s.pending, item.Id())
	s.savePending()
	return true
}

// ResetKeptItems forgets every keep decision. Cannot be undone.
func (s *Service) ResetKeptItems() {
	logger.Info.Printf("Resetting %d kept items", s.kept.Len())
	s.kept.Clear()
	if err := s.identifierStore.Remove(api.KeptIdentifiersKey); err != nil {
		s.sender.SendError("Could not reset kept items", err)
	}
	s.refilter()
	s.sendOutcomeSets()
}

// ResetPendingItems returns every pending item to the candidates. Cannot
// be undone.
func (s *Service) ResetPendingItems() {
	logger.Info.Printf("Resetting %d pending items", len(s.pending))
	s.pending = nil
	s.savePending()
	s.refilter()
	s.sendOutcomeSets()
}

func (s *Service) Selection() apitype.Selection {
	return s.selection
}

func (s *Service) Title() string {
	return s.selection.Title()
}

func (s *Service) FilteredItems() []*apitype.Item {
	return util.Copy(s.filtered)
}

func (s *Service) Cursor() int {
	return s.cursor
}

func (s *Service) History() []apitype.HistoryEntry {
	return util.Copy(s.history)
}

// TotalItemCount is the number of candidates in the current selection
// before decided items are subtracted.
func (s *Service) TotalItemCount() int {
	return len(s.candidates)
}

func (s *Service) KeptIdentifiers() []apitype.ItemId {
	return s.kept.SortedValues(func(a apitype.ItemId, b apitype.ItemId) bool {
		return a < b
	})
}

func (s *Service) PendingItems() []*apitype.Item {
	return util.Copy(s.pending)
}

func (s *Service) DeletedItems() []*apitype.Item {
	return util.Copy(s.deleted)
}

func (s *Service) AuthorizationStatus() apitype.AuthorizationStatus {
	return s.authorizationStatus
}

func (s *Service) Collections() []*apitype.CollectionInfo {
	return util.Copy(s.collections)
}

func (s *Service) Months() []apitype.PeriodCount {
	return s.groups.monthCounts()
}

func (s *Service) Years() []apitype.PeriodCount {
	return s.groups.yearCounts()
}

func (s *Service) sendTriage() {
	s.sender.SendCommandToTopic(api.TriageUpdated, &api.UpdateTriageCommand{
		Selection:      s.selection,
		Title:          s.Title(),
		Current:        s.CurrentItem(),
		Index:          s.cursor,
		Total:          len(s.filtered),
		CandidateTotal: len(s.candidates),
		CanUndo:        s.CanUndo(),
	})
}

func (s *Service) sendOutcomeSets() {
	s.sender.SendCommandToTopic(api.OutcomeSetsUpdated, &api.OutcomeSetsCommand{
		KeptCount: s.kept.Len(),
		Pending:   s.PendingItems(),
		Deleted:   s.DeletedItems(),
	})
}

func (s *Service) sendLibrary() {
	s.sender.SendCommandToTopic(api.LibraryUpdated, &api.LibraryCommand{
		TotalItems:  s.totalItems,
		Collections: s.Collections(),
		Months:      s.Months(),
		Years:       s.Years(),
	})
}

func containsItem(items []*apitype.Item, id apitype.ItemId) bool {
	return util.IndexOf(items, func(item *apitype.Item) bool {
		return item.Id() == id
	}) >= 0
}

func removeItem(items []*apitype.Item, id apitype.ItemId) []*apitype.Item {
	return util.Filter(items, func(item *apitype.Item) bool {
		return item.Id() != id
	})
}
