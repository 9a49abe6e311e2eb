package apitype

type CollectionId string

const NoCollection = CollectionId("")

type CollectionKind int

const (
	SMART CollectionKind = iota
	USER
)

func (s CollectionKind) String() string {
	switch s {
	case SMART:
		return "smart"
	case USER:
		return "user"
	}
	return "unknown"
}

type Collection struct {
	id   CollectionId
	name string
	kind CollectionKind
}

func NewCollection(id CollectionId, name string, kind CollectionKind) *Collection {
	return &Collection{
		id:   id,
		name: name,
		kind: kind,
	}
}

func (s *Collection) Id() CollectionId {
	if s != nil {
		return s.id
	} else {
		return NoCollection
	}
}

func (s *Collection) Name() string {
	if s != nil {
		return s.name
	} else {
		return ""
	}
}

func (s *Collection) Kind() CollectionKind {
	return s.kind
}

func (s *Collection) String() string {
	if s != nil {
		return "Collection{" + s.name + "}"
	} else {
		return "Collection<nil>"
	}
}

type CollectionInfo struct {
	Collection *Collection
	Count      int
}
