package api

import "vincit.fi/photo-triage/api/apitype"

type Sender interface {
	SendToTopic(topic Topic)
	SendCommandToTopic(topic Topic, command apitype.Command)
	SendError(message string, err error)
}

// Dispatcher runs functions on the goroutine that owns the triage state.
// Results of asynchronous library calls are delivered through it.
type Dispatcher interface {
	Dispatch(fn func())
}
