package apitype

import (
	"path/filepath"
	"strings"
	"time"
)

type ItemId string

const NoItem = ItemId("")

type MediaKind int

const (
	IMAGE MediaKind = iota
	VIDEO
	LIVE_PHOTO
	UNSUPPORTED
)

func (s MediaKind) String() string {
	switch s {
	case IMAGE:
		return "image"
	case VIDEO:
		return "video"
	case LIVE_PHOTO:
		return "live-photo"
	case UNSUPPORTED:
		return "unsupported"
	}
	return "unknown"
}

func MediaKindFromId(value int64) MediaKind {
	kind := MediaKind(value)
	if kind < IMAGE || kind > UNSUPPORTED {
		return UNSUPPORTED
	}
	return kind
}

func (s MediaKind) AsId() int64 {
	return int64(s)
}

// Item is a single library entry. Two items are the same entry
// when their ids are equal, regardless of the rest of the fields.
type Item struct {
	id        ItemId
	directory string
	fileName  string
	path      string
	created   time.Time
	kind      MediaKind
	byteSize  int64
}

func NewItem(id ItemId, directory string, fileName string, created time.Time, kind MediaKind) *Item {
	return &Item{
		id:        id,
		directory: directory,
		fileName:  fileName,
		path:      filepath.Join(directory, fileName),
		created:   created,
		kind:      kind,
	}
}

func NewItemWithSize(id ItemId, directory string, fileName string, created time.Time, kind MediaKind, byteSize int64) *Item {
	item := NewItem(id, directory, fileName, created, kind)
	item.byteSize = byteSize
	return item
}

func (s *Item) IsValid() bool {
	return s != nil && s.id != NoItem
}

func (s *Item) Id() ItemId {
	if s != nil {
		return s.id
	} else {
		return NoItem
	}
}

func (s *Item) Directory() string {
	if s != nil {
		return s.directory
	} else {
		return ""
	}
}

func (s *Item) FileName() string {
	if s != nil {
		return s.fileName
	} else {
		return ""
	}
}

func (s *Item) Path() string {
	if s != nil {
		return s.path
	} else {
		return ""
	}
}

func (s *Item) Created() time.Time {
	if s != nil {
		return s.created
	} else {
		return time.Time{}
	}
}

func (s *Item) Kind() MediaKind {
	if s != nil {
		return s.kind
	} else {
		return UNSUPPORTED
	}
}

func (s *Item) ByteSize() int64 {
	if s != nil {
		return s.byteSize
	} else {
		return 0
	}
}

func (s *Item) ByteSizeInMB() float64 {
	return float64(s.ByteSize()) / (1024.0 * 1024.0)
}

func (s *Item) String() string {
	if s != nil {
		if s.IsValid() {
			return "Item{" + s.fileName + "}"
		} else {
			return "Item<invalid>"
		}
	} else {
		return "Item<nil>"
	}
}

func SameItem(a *Item, b *Item) bool {
	return a.IsValid() && b.IsValid() && a.id == b.id
}

func ItemIds(items []*Item) []ItemId {
	ids := make([]ItemId, len(items))
	for i, item := range items {
		ids[i] = item.Id()
	}
	return ids
}

func ItemIdsAsStrings(items []*Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = string(item.Id())
	}
	return ids
}

func StringsToItemIds(values []string) []ItemId {
	ids := make([]ItemId, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			ids = append(ids, ItemId(trimmed))
		}
	}
	return ids
}
