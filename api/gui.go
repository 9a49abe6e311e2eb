package api

import (
	"vincit.fi/photo-triage/api/apitype"
)

type ErrorCommand struct {
	Message string
}

type UpdateProgressCommand struct {
	Name      string
	Current   int
	Total     int
	CanCancel bool
	Modal     bool
}

type UpdateTriageCommand struct {
	Selection      apitype.Selection
	Title          string
	Current        *apitype.Item
	Index          int
	Total          int
	CandidateTotal int
	CanUndo        bool
}

type OutcomeSetsCommand struct {
	KeptCount int
	Pending   []*apitype.Item
	Deleted   []*apitype.Item
}

type LibraryCommand struct {
	TotalItems  int
	Collections []*apitype.CollectionInfo
	Months      []apitype.PeriodCount
	Years       []apitype.PeriodCount
}

type AuthorizationCommand struct {
	Status apitype.AuthorizationStatus
}

type DeleteResultCommand struct {
	Items   []*apitype.Item
	Success bool
}
