package cmd

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"io"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/backend"
	"vincit.fi/photo-triage/common/logger"
	"vincit.fi/photo-triage/common/mainloop"
)

// session runs the triage service on a main loop for commands that have
// no terminal UI. All service calls go through call.
type session struct {
	stores   *backend.Stores
	brokers  *backend.Brokers
	services *backend.Services
	loop     *mainloop.Loop
	cancel   context.CancelFunc
	finished chan error
}

func openSession(cmd *cobra.Command, args []string) (*session, error) {
	rootDir, err := rootDirFromArgs(args)
	if err != nil {
		return nil, err
	}
	params, err := loadParams(cmd, rootDir)
	if err != nil {
		return nil, err
	}
	logger.Initialize(logger.StringToLogLevel(params.LogLevel), cmd.ErrOrStderr())

	stores, err := openStores(cmd, params)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	s := &session{
		stores:   stores,
		brokers:  backend.InitializeEventBrokers(params.EventBusQueueSize),
		loop:     mainloop.New(params.EventBusQueueSize),
		cancel:   cancel,
		finished: make(chan error, 1),
	}
	s.services = backend.InitializeServices(params, stores, s.brokers.Broker, s.loop)
	go func() {
		s.finished <- s.loop.Run(ctx)
	}()

	var startErr error
	if err := s.call(func() {
		startErr = s.services.Start()
	}); err != nil {
		startErr = err
	}
	if startErr != nil {
		s.Close()
		return nil, startErr
	}
	if status := s.triage().AuthorizationStatus(); !status.IsGranted() {
		s.Close()
		return nil, fmt.Errorf("cannot read library '%s' (%s)", rootDir, status)
	}
	return s, nil
}

func (s *session) triage() api.TriageService {
	return s.services.TriageService
}

// call runs fn on the main loop and waits for it.
func (s *session) call(fn func()) error {
	return s.loop.Call(fn)
}

func (s *session) Close() {
	s.loop.Stop()
	<-s.finished
	s.cancel()
	s.stores.Close()
}

func printf(out io.Writer, format string, a ...interface{}) {
	_, _ = fmt.Fprintf(out, format, a...)
}
