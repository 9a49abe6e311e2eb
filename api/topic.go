package api

type Topic string

const (
	TriageUpdated        Topic = "event-triage-updated"
	OutcomeSetsUpdated   Topic = "event-outcome-sets-updated"
	LibraryUpdated       Topic = "event-library-updated"
	AuthorizationUpdated Topic = "event-authorization-updated"
	DeleteCompleted      Topic = "event-delete-completed"
	ProcessStatusUpdated Topic = "event-process-status-updated"
	ShowError            Topic = "event-show-error"
)
