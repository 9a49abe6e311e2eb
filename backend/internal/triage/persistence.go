package triage

import (
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
	"vincit.fi/photo-triage/common/util"
)

// loadOutcomeSets restores the outcome sets. Items that no longer exist
// in the library are dropped. An identifier stored in more than one set
// is kept only in the strongest one: deleted, then pending, then kept.
func (s *Service) loadOutcomeSets() {
	keptIds := s.loadIdentifiers(api.KeptIdentifiersKey)
	pendingIds := s.loadIdentifiers(api.PendingIdentifiersKey)
	deletedIds := s.loadIdentifiers(api.DeletedIdentifiersKey)

	deleted, deletedFetched := s.fetchItemsByIds(deletedIds)
	s.deleted = uniqueItems(deleted)
	deletedSet := idSet(s.deleted)

	pending, pendingFetched := s.fetchItemsByIds(pendingIds)
	s.pending = util.Filter(uniqueItems(pending), func(item *apitype.Item) bool {
		return !deletedSet[item.Id()]
	})
	pendingSet := idSet(s.pending)

	s.kept = util.NewSet[apitype.ItemId]()
	for _, id := range keptIds {
		if !deletedSet[id] && !pendingSet[id] {
			s.kept.Add(id)
		}
	}

	logger.Info.Printf("Restored %d kept, %d pending and %d deleted items",
		s.kept.Len(), len(s.pending), len(s.deleted))

	// A failed lookup must not overwrite what is stored.
	if deletedFetched && len(s.deleted) != len(deletedIds) {
		s.saveDeleted()
	}
	if pendingFetched && deletedFetched && len(s.pending) != len(pendingIds) {
		s.savePending()
	}
	if pendingFetched && deletedFetched && s.kept.Len() != len(keptIds) {
		s.saveKept()
	}
}

func (s *Service) loadIdentifiers(key string) []apitype.ItemId {
	values, found, err := s.identifierStore.Get(key)
	if err != nil {
		s.sender.SendError("Could not load "+key, err)
		return nil
	}
	if !found {
		return nil
	}
	return apitype.StringsToItemIds(values)
}

func (s *Service) fetchItemsByIds(ids []apitype.ItemId) ([]*apitype.Item, bool) {
	if len(ids) == 0 {
		return nil, true
	}
	items, err := s.library.FetchItemsByIds(ids)
	if err != nil {
		s.sender.SendError("Could not load items", err)
		return nil, false
	}
	return items, true
}

func (s *Service) saveKept() {
	ids := s.KeptIdentifiers()
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = string(id)
	}
	s.storeIdentifiers(api.KeptIdentifiersKey, values)
}

func (s *Service) savePending() {
	s.storeIdentifiers(api.PendingIdentifiersKey, apitype.ItemIdsAsStrings(s.pending))
}

func (s *Service) saveDeleted() {
	s.storeIdentifiers(api.DeletedIdentifiersKey, apitype.ItemIdsAsStrings(s.deleted))
}

func (s *Service) storeIdentifiers(key string, values []string) {
	if err := s.identifierStore.Set(key, values); err != nil {
		s.sender.SendError("Could not save "+key, err)
	}
}

func uniqueItems(items []*apitype.Item) []*apitype.Item {
	seen := map[apitype.ItemId]bool{}
	return util.Filter(items, func(item *apitype.Item) bool {
		if seen[item.Id()] {
			return false
		}
		seen[item.Id()] = true
		return true
	})
}

func idSet(items []*apitype.Item) map[apitype.ItemId]bool {
	ids := make(map[apitype.ItemId]bool, len(items))
	for _, item := range items {
		ids[item.Id()] = true
	}
	return ids
}
