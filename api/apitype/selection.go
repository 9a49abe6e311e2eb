package apitype

type SelectionKind int

const (
	ALL_ITEMS SelectionKind = iota
	ALBUM
	MONTH
	YEAR
)

func (s SelectionKind) String() string {
	switch s {
	case ALL_ITEMS:
		return "all"
	case ALBUM:
		return "album"
	case MONTH:
		return "month"
	case YEAR:
		return "year"
	}
	return "unknown"
}

// Selection scopes which items are candidates for triage. Only the
// field matching the kind is meaningful.
type Selection struct {
	kind       SelectionKind
	collection *Collection
	period     PeriodKey
}

func AllItems() Selection {
	return Selection{kind: ALL_ITEMS}
}

func AlbumSelection(collection *Collection) Selection {
	return Selection{kind: ALBUM, collection: collection}
}

func MonthSelection(period PeriodKey) Selection {
	return Selection{kind: MONTH, period: PeriodKey{Year: period.Year, Month: period.Month}}
}

func YearSelection(period PeriodKey) Selection {
	return Selection{kind: YEAR, period: PeriodKey{Year: period.Year}}
}

func (s Selection) Kind() SelectionKind {
	return s.kind
}

func (s Selection) Collection() *Collection {
	return s.collection
}

func (s Selection) Period() PeriodKey {
	return s.period
}

func (s Selection) Equals(other Selection) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case ALBUM:
		return s.collection.Id() == other.collection.Id()
	case MONTH, YEAR:
		return s.period == other.period
	}
	return true
}

func (s Selection) Title() string {
	switch s.kind {
	case ALBUM:
		return s.collection.Name()
	case MONTH, YEAR:
		return s.period.String()
	}
	return "All items"
}

func (s Selection) String() string {
	switch s.kind {
	case ALBUM:
		return "Selection{album:" + string(s.collection.Id()) + "}"
	case MONTH, YEAR:
		return "Selection{" + s.kind.String() + ":" + s.period.String() + "}"
	}
	return "Selection{all}"
}
