package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"sync"
	"vincit.fi/photo-triage/common/logger"
)

type dispatchMsg struct {
	fn func()
}

// ProgramDispatcher runs dispatched functions inside the program's
// Update, on the same goroutine as key handling.
type ProgramDispatcher struct {
	program *tea.Program
	mutex   sync.RWMutex
}

func NewProgramDispatcher() *ProgramDispatcher {
	return &ProgramDispatcher{}
}

func (s *ProgramDispatcher) SetProgram(program *tea.Program) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.program = program
}

func (s *ProgramDispatcher) Dispatch(fn func()) {
	s.mutex.RLock()
	program := s.program
	s.mutex.RUnlock()

	if program == nil {
		logger.Warn.Print("No program to dispatch to, dropping function")
		return
	}
	program.Send(dispatchMsg{fn: fn})
}
