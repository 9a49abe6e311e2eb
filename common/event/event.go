package event

import (
	"fmt"
	messagebus "github.com/vardius/message-bus"
	"reflect"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
)

type Broker struct {
	bus messagebus.MessageBus

	api.Sender
}

func InitBus(queueSize int) *Broker {
	return &Broker{
		bus: messagebus.New(queueSize),
	}
}

// InitDevNullBus returns a broker that drops everything sent to it.
func InitDevNullBus() *Broker {
	return &Broker{}
}

func (s *Broker) Subscribe(topic api.Topic, fn interface{}) {
	if s.bus == nil {
		return
	}
	err := s.bus.Subscribe(string(topic), fn)
	if err != nil {
		logger.Error.Panic("Could not subscribe ", err)
	}
}

// ConnectToDispatcher subscribes callback so that it is always invoked
// through the dispatcher instead of the bus goroutine.
func (s *Broker) ConnectToDispatcher(topic api.Topic, dispatcher api.Dispatcher, callback interface{}) {
	if s.bus == nil {
		return
	}
	callbackValue := reflect.ValueOf(callback)
	if callbackValue.Kind() != reflect.Func {
		logger.Error.Panicf("Callback for '%s' is not a function", topic)
	}

	cb := func(params ...interface{}) {
		args := make([]reflect.Value, 0, len(params))
		for _, param := range params {
			args = append(args, reflect.ValueOf(param))
		}
		dispatcher.Dispatch(func() {
			logger.Trace.Printf("Calling topic '%s' with: %s", topic, params)
			callbackValue.Call(args)
		})
	}
	if err := s.bus.Subscribe(string(topic), cb); err != nil {
		logger.Error.Panic("Could not subscribe ", err)
	}
}

func (s *Broker) SendToTopic(topic api.Topic) {
	logger.Trace.Printf("Sending to '%s'", topic)
	if s.bus != nil {
		s.bus.Publish(string(topic))
	}
}

func (s *Broker) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	logger.Trace.Printf("Sending command to '%s'", topic)
	if s.bus != nil {
		s.bus.Publish(string(topic), command)
	}
}

func (s *Broker) SendError(message string, err error) {
	formattedMessage := ""
	if err != nil {
		formattedMessage = fmt.Sprintf("%s\n%s", message, err.Error())
	} else {
		formattedMessage = message
	}
	logger.Error.Printf("Error: %s", formattedMessage)
	s.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: formattedMessage})
}
