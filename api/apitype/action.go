package apitype

type SwipeAction int

const (
	DELETE SwipeAction = iota
	KEEP
	PENDING
)

func (s SwipeAction) String() string {
	switch s {
	case DELETE:
		return "delete"
	case KEEP:
		return "keep"
	case PENDING:
		return "pending"
	}
	return "unknown"
}

type HistoryEntry struct {
	Action SwipeAction
	Item   *Item
}

func (s HistoryEntry) String() string {
	return s.Action.String() + ":" + string(s.Item.Id())
}
