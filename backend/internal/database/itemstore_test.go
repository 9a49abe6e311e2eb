package database

import (
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
	"time"
	"vincit.fi/photo-triage/api/apitype"
)

func dbItem(id string, directory string, fileName string, created time.Time, kind apitype.MediaKind) *Item {
	return &Item{
		Id:                id,
		Directory:         directory,
		FileName:          fileName,
		MediaKind:         kind.AsId(),
		ByteSize:          1234,
		CreatedTimestamp:  created.Unix(),
		ModifiedTimestamp: created.UnixNano(),
	}
}

func initItemStoreTest(t *testing.T) *ItemStore {
	sut := NewItemStore(newTestDatabase(t))
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

	r := require.New(t)
	r.Nil(sut.AddOrUpdateItem(dbItem("p1", "trip", "a.jpg", base.Add(2*time.Hour), apitype.IMAGE)))
	r.Nil(sut.AddOrUpdateItem(dbItem("p2", "trip", "b.jpg", base.Add(time.Hour), apitype.LIVE_PHOTO)))
	r.Nil(sut.AddOrUpdateItem(dbItem("p3", "", "c.mov", base, apitype.VIDEO)))
	r.Nil(sut.AddOrUpdateItem(dbItem("p4", "", "d.jpg", base.AddDate(0, -1, 0), apitype.IMAGE)))
	return sut
}

func TestItemStore_GetItems(t *testing.T) {
	a := require.New(t)
	sut := initItemStoreTest(t)

	items, err := sut.GetItems()
	a.Nil(err)
	a.Equal([]apitype.ItemId{"p1", "p2", "p3", "p4"}, apitype.ItemIds(items))

	a.Equal(filepath.Join("/photos", "trip", "a.jpg"), items[0].Path())
	a.Equal(apitype.LIVE_PHOTO, items[1].Kind())
	a.Equal(int64(1234), items[2].ByteSize())
	a.Equal(time.Date(2024, 2, 10, 12, 0, 0, 0, time.Local).Unix(), items[3].Created().Unix())
}

func TestItemStore_GetItemById(t *testing.T) {
	a := require.New(t)
	sut := initItemStoreTest(t)

	item, err := sut.GetItemById("p2")
	a.Nil(err)
	a.Equal("b.jpg", item.FileName())

	item, err = sut.GetItemById("missing")
	a.Nil(err)
	a.Nil(item)
}

func TestItemStore_GetItemsByIds(t *testing.T) {
	a := require.New(t)
	sut := initItemStoreTest(t)

	items, err := sut.GetItemsByIds([]apitype.ItemId{"p4", "missing", "p1"})
	a.Nil(err)
	a.Equal([]apitype.ItemId{"p4", "p1"}, apitype.ItemIds(items))

	items, err = sut.GetItemsByIds(nil)
	a.Nil(err)
	a.Empty(items)
}

func TestItemStore_Queries(t *testing.T) {
	a := require.New(t)
	sut := initItemStoreTest(t)

	t.Run("In directory", func(t *testing.T) {
		items, err := sut.GetItemsInDirectory("trip")
		a.Nil(err)
		a.Equal([]apitype.ItemId{"p1", "p2"}, apitype.ItemIds(items))
	})

	t.Run("Of kind", func(t *testing.T) {
		items, err := sut.GetItemsOfKind(apitype.IMAGE)
		a.Nil(err)
		a.Equal([]apitype.ItemId{"p1", "p4"}, apitype.ItemIds(items))

		count, err := sut.CountItemsOfKind(apitype.VIDEO)
		a.Nil(err)
		a.Equal(1, count)
	})

	t.Run("Directories", func(t *testing.T) {
		directories, err := sut.GetDirectories()
		a.Nil(err)
		a.Equal([]DirectoryCount{{Directory: "", Count: 2}, {Directory: "trip", Count: 2}}, directories)
	})
}

func TestItemStore_Update(t *testing.T) {
	a := require.New(t)
	sut := initItemStoreTest(t)

	updated := dbItem("p1", "trip", "a.jpg", time.Unix(100, 0), apitype.UNSUPPORTED)
	a.Nil(sut.AddOrUpdateItem(updated))

	stored, err := sut.GetStoredItems()
	a.Nil(err)
	a.Equal(4, len(stored))
	a.Equal(*updated, stored["p1"])
}

func TestItemStore_Remove(t *testing.T) {
	a := require.New(t)
	sut := initItemStoreTest(t)

	a.Nil(sut.RemoveItems([]apitype.ItemId{"p3"}))
	a.Nil(sut.RemoveItems(nil))

	removed, err := sut.RemoveItemsNotIn(map[apitype.ItemId]bool{"p1": true, "p2": true})
	a.Nil(err)
	a.Equal(1, removed)

	items, err := sut.GetItems()
	a.Nil(err)
	a.Equal([]apitype.ItemId{"p1", "p2"}, apitype.ItemIds(items))
}
