package database

import (
	"github.com/upper/db/v4"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
)

var itemOrder = []interface{}{"-created_timestamp", "directory", "file_name"}

// ItemStore caches the scanned library. Directories are stored relative
// to the database base path.
type ItemStore struct {
	database   *Database
	collection db.Collection
}

func NewItemStore(database *Database) *ItemStore {
	return &ItemStore{
		database: database,
	}
}

func (s *ItemStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("item")
	}
	return s.collection
}

func (s *ItemStore) AddOrUpdateItem(item *Item) error {
	logger.Trace.Printf("Storing item '%s' (%s/%s)", item.Id, item.Directory, item.FileName)
	_, err := s.getCollection().Session().SQL().Exec(`
		INSERT INTO item (id, directory, file_name, media_kind, byte_size, created_timestamp, modified_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			directory = excluded.directory,
			file_name = excluded.file_name,
			media_kind = excluded.media_kind,
			byte_size = excluded.byte_size,
			created_timestamp = excluded.created_timestamp,
			modified_timestamp = excluded.modified_timestamp
	`, item.Id, item.Directory, item.FileName, item.MediaKind, item.ByteSize, item.CreatedTimestamp, item.ModifiedTimestamp)
	return err
}

// GetStoredItems returns the raw catalog rows by id.
func (s *ItemStore) GetStoredItems() (map[apitype.ItemId]Item, error) {
	var items []Item
	if err := s.getCollection().Find().All(&items); err != nil {
		return nil, err
	}
	itemsById := make(map[apitype.ItemId]Item, len(items))
	for _, item := range items {
		itemsById[apitype.ItemId(item.Id)] = item
	}
	return itemsById, nil
}

func (s *ItemStore) GetItemById(id apitype.ItemId) (*apitype.Item, error) {
	var item Item
	if err := s.getCollection().Find(db.Cond{"id": string(id)}).One(&item); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return toApiItem(&item, s.database.BasePath()), nil
}

// GetItemsByIds returns the items in the order of ids. Unknown ids are
// skipped.
func (s *ItemStore) GetItemsByIds(ids []apitype.ItemId) ([]*apitype.Item, error) {
	if len(ids) == 0 {
		return []*apitype.Item{}, nil
	}
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = string(id)
	}

	var items []Item
	if err := s.getCollection().Find(db.Cond{"id IN": values}).All(&items); err != nil {
		return nil, err
	}
	itemsById := make(map[string]*Item, len(items))
	for i := range items {
		itemsById[items[i].Id] = &items[i]
	}

	result := make([]*apitype.Item, 0, len(items))
	for _, id := range values {
		if item, ok := itemsById[id]; ok {
			result = append(result, toApiItem(item, s.database.BasePath()))
		}
	}
	return result, nil
}

func (s *ItemStore) GetItems() ([]*apitype.Item, error) {
	var items []Item
	if err := s.getCollection().Find().OrderBy(itemOrder...).All(&items); err != nil {
		return nil, err
	}
	return toApiItems(items, s.database.BasePath()), nil
}

func (s *ItemStore) GetItemsInDirectory(directory string) ([]*apitype.Item, error) {
	var items []Item
	if err := s.getCollection().Find(db.Cond{"directory": directory}).OrderBy(itemOrder...).All(&items); err != nil {
		return nil, err
	}
	return toApiItems(items, s.database.BasePath()), nil
}

func (s *ItemStore) GetItemsOfKind(kind apitype.MediaKind) ([]*apitype.Item, error) {
	var items []Item
	if err := s.getCollection().Find(db.Cond{"media_kind": kind.AsId()}).OrderBy(itemOrder...).All(&items); err != nil {
		return nil, err
	}
	return toApiItems(items, s.database.BasePath()), nil
}

func (s *ItemStore) CountItemsOfKind(kind apitype.MediaKind) (int, error) {
	count, err := s.getCollection().Find(db.Cond{"media_kind": kind.AsId()}).Count()
	return int(count), err
}

func (s *ItemStore) GetDirectories() ([]DirectoryCount, error) {
	var directories []DirectoryCount
	err := s.getCollection().Session().SQL().
		Select("directory", db.Raw("COUNT(*) AS item_count")).
		From("item").
		GroupBy("directory").
		OrderBy("directory").
		All(&directories)
	if err != nil {
		return nil, err
	}
	return directories, nil
}

func (s *ItemStore) RemoveItems(ids []apitype.ItemId) error {
	if len(ids) == 0 {
		return nil
	}
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = string(id)
	}
	logger.Debug.Printf("Removing %d items from catalog", len(values))
	return s.getCollection().Find(db.Cond{"id IN": values}).Delete()
}

// RemoveItemsNotIn drops every catalog row whose id is not in keep and
// returns how many were removed.
func (s *ItemStore) RemoveItemsNotIn(keep map[apitype.ItemId]bool) (int, error) {
	stored, err := s.GetStoredItems()
	if err != nil {
		return 0, err
	}
	var stale []apitype.ItemId
	for id := range stored {
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	return len(stale), s.RemoveItems(stale)
}
