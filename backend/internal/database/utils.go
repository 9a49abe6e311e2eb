package database

import (
	"path/filepath"
	"time"
	"vincit.fi/photo-triage/api/apitype"
)

func toApiItem(item *Item, basePath string) *apitype.Item {
	return apitype.NewItemWithSize(
		apitype.ItemId(item.Id),
		filepath.Join(basePath, item.Directory),
		item.FileName,
		time.Unix(item.CreatedTimestamp, 0),
		apitype.MediaKindFromId(item.MediaKind),
		item.ByteSize,
	)
}

func toApiItems(items []Item, basePath string) []*apitype.Item {
	apiItems := make([]*apitype.Item, len(items))
	for i := range items {
		apiItems[i] = toApiItem(&items[i], basePath)
	}
	return apiItems
}
