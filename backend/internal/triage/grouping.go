package triage

import (
	"sort"
	"time"
	"vincit.fi/photo-triage/api/apitype"
)

// periodGroups buckets the whole library by calendar month and year.
// Items keep the order they were given in, newest first.
type periodGroups struct {
	months map[apitype.PeriodKey][]*apitype.Item
	years  map[apitype.PeriodKey][]*apitype.Item
}

func newPeriodGroups() *periodGroups {
	return &periodGroups{
		months: map[apitype.PeriodKey][]*apitype.Item{},
		years:  map[apitype.PeriodKey][]*apitype.Item{},
	}
}

func groupByPeriod(items []*apitype.Item, now time.Time) *periodGroups {
	groups := newPeriodGroups()
	for _, item := range items {
		created := item.Created()
		if created.IsZero() {
			created = now
		}
		month := apitype.MonthKeyOf(created)
		year := apitype.YearKeyOf(created)
		groups.months[month] = append(groups.months[month], item)
		groups.years[year] = append(groups.years[year], item)
	}
	return groups
}

func (s *periodGroups) itemsOf(selection apitype.Selection) []*apitype.Item {
	switch selection.Kind() {
	case apitype.MONTH:
		return s.months[selection.Period()]
	case apitype.YEAR:
		return s.years[selection.Period()]
	}
	return nil
}

// remove drops the items with the given ids from every bucket. Empty
// buckets disappear.
func (s *periodGroups) remove(ids map[apitype.ItemId]bool) {
	removeFrom := func(buckets map[apitype.PeriodKey][]*apitype.Item) {
		for key, items := range buckets {
			var remaining []*apitype.Item
			for _, item := range items {
				if !ids[item.Id()] {
					remaining = append(remaining, item)
				}
			}
			if len(remaining) == 0 {
				delete(buckets, key)
			} else {
				buckets[key] = remaining
			}
		}
	}
	removeFrom(s.months)
	removeFrom(s.years)
}

func (s *periodGroups) monthCounts() []apitype.PeriodCount {
	return sortedCounts(s.months)
}

func (s *periodGroups) yearCounts() []apitype.PeriodCount {
	return sortedCounts(s.years)
}

func sortedCounts(buckets map[apitype.PeriodKey][]*apitype.Item) []apitype.PeriodCount {
	counts := make([]apitype.PeriodCount, 0, len(buckets))
	for key, items := range buckets {
		counts = append(counts, apitype.PeriodCount{Period: key, Count: len(items)})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[j].Period.Before(counts[i].Period)
	})
	return counts
}
