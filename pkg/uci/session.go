// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package uci implements the engine side of the Universal Chess Interface.
// A Session holds the position, the options, and at most one running
// search, and is driven one command at a time by Dispatch or Run.
package uci

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/augur/pkg/options"
	"laptudirm.com/x/augur/pkg/oracle"
	"laptudirm.com/x/augur/pkg/rules"
)

// Rules is the rules engine a Session uses to generate and play moves.
type Rules interface {
	LegalMoves(pos rules.Position) []rules.Move
	MakeMove(pos rules.Position, move rules.Move) (rules.Position, error)
	InCheck(pos rules.Position) bool
}

// OracleFactory builds the oracle a search consults.
type OracleFactory func(ctx context.Context, config oracle.Config) (oracle.Oracle, error)

// Config holds a Session's collaborators. Every field is optional.
type Config struct {
	Output io.Writer     // defaults to os.Stdout
	Rules  Rules         // defaults to rules.Chess
	Oracle OracleFactory // defaults to oracle.New
	Exit   func(int)     // defaults to os.Exit
}

// State is the state of a search.
type State uint8

const (
	Idle State = iota
	Starting
	Attempting
	Succeeded
	FallbackChosen
	Cancelled
)

func (state State) String() string {
	switch state {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Attempting:
		return "attempting"
	case Succeeded:
		return "succeeded"
	case FallbackChosen:
		return "fallback chosen"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// search is the handle of a running search.
type search struct {
	id      string
	state   State
	attempt int // 1-based oracle attempt while Attempting
	cancel  context.CancelFunc
	done    chan struct{}
}

const (
	shutdownPolls    = 100
	shutdownInterval = 5 * time.Millisecond
)

// Session is a UCI engine session. Commands are handled one at a time on
// the caller's goroutine, while a search runs on its own.
type Session struct {
	out *Output

	rules     Rules
	newOracle OracleFactory
	exit      func(int)

	// position and options are only touched by the dispatcher. A search
	// works on copies taken when it starts.
	position rules.Position
	options  *options.Registry

	quit bool

	mu     sync.Mutex
	search *search // nil if no search is running
	last   State   // final state of the previous search
}

// NewSession creates a session on the start position with every option at
// its default.
func NewSession(config Config) *Session {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.Rules == nil {
		config.Rules = rules.Chess{}
	}

	if config.Oracle == nil {
		config.Oracle = oracle.New
	}

	if config.Exit == nil {
		config.Exit = os.Exit
	}

	return &Session{
		out:       NewOutput(config.Output),
		rules:     config.Rules,
		newOracle: config.Oracle,
		exit:      config.Exit,
		position:  rules.StartPosition(),
		options:   options.New(Options),
		last:      Idle,
	}
}

// Options returns the session's option registry.
func (s *Session) Options() *options.Registry {
	return s.options
}

// Position returns the current position.
func (s *Session) Position() rules.Position {
	return s.position
}

// Output returns the session's protocol sink.
func (s *Session) Output() *Output {
	return s.out
}

// Searching reports whether a search is running.
func (s *Session) Searching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.search != nil
}

// Attempt returns the oracle attempt the running search is on, starting at
// 1, or 0 if no search is querying the oracle.
func (s *Session) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search == nil || s.search.state != Attempting {
		return 0
	}

	return s.search.attempt
}

// Status returns the id and state of the running search, or an empty id
// and the final state of the last search if none is running.
func (s *Session) Status() (string, State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search == nil {
		return "", s.last
	}

	return s.search.id, s.search.state
}

// StartSearch starts a search on a snapshot of the current position and
// options. If a search is already running a diagnostic is written and
// nothing else happens.
func (s *Session) StartSearch(limits Limits) {
	s.mu.Lock()
	if s.search != nil {
		s.mu.Unlock()
		s.out.Info("seems another go is running, refusing to run another one")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle := &search{
		id:     uuid.NewString(),
		state:  Starting,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.search = handle
	s.mu.Unlock()

	job := snapshot{
		position: s.position,
		options:  s.options.Snapshot(),
		limits:   limits,
	}

	go s.run(ctx, handle, job)
}

// Stop cancels the running search, if any. A cancelled search writes
// nothing more, not even a bestmove.
func (s *Session) Stop() {
	s.mu.Lock()
	handle := s.search
	s.mu.Unlock()

	if handle == nil {
		return
	}

	logrus.WithField("search", handle.id).Debug("stopping search")

	// a search writes its final lines as one block, so cancelling with the
	// output locked means those lines are either all out or never written
	s.out.Guard(handle.cancel)
}

// Wait blocks until no search is running or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	handle := s.search
	s.mu.Unlock()

	if handle == nil {
		return nil
	}

	select {
	case <-handle.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops the running search and waits a bounded amount of time for
// it to wind down. It reports whether the search is gone.
func (s *Session) Shutdown() bool {
	s.Stop()

	for range shutdownPolls {
		if !s.Searching() {
			return true
		}

		time.Sleep(shutdownInterval)
	}

	return !s.Searching()
}

// Quit shuts the session down and terminates the process with status 0.
func (s *Session) Quit() {
	if !s.Shutdown() {
		logrus.Warn("search did not stop in time, quitting anyway")
	}

	s.quit = true
	s.exit(0)
}

// setAttempt moves the search into its n-th oracle attempt.
func (s *Session) setAttempt(handle *search, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle.state = Attempting
	handle.attempt = n
}

// release clears the search handle and wakes up everyone waiting on it.
func (s *Session) release(handle *search, state State) {
	s.mu.Lock()
	handle.state = state
	if s.search == handle {
		s.search = nil
	}
	s.last = state
	s.mu.Unlock()

	handle.cancel()
	close(handle.done)
}
