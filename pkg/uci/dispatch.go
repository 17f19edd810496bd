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

package uci

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrSyntax is returned by commands with malformed arguments.
var ErrSyntax = errors.New("syntax error")

// Handler handles a single command. Handlers run on the dispatcher, one at
// a time. A returned error is reported to the controller as a diagnostic.
type Handler func(s *Session, args []string) error

var handlers = map[string]Handler{
	"uci":       uciCommand,
	"isready":   isreadyCommand,
	"setoption": setoptionCommand,
	"position":  positionCommand,
	"go":        goCommand,
	"stop":      stopCommand,
	"quit":      quitCommand,
	"debug":     debugCommand,
	"license":   licenseCommand,
}

// Dispatch handles one line of input. Blank lines and unknown commands are
// ignored, and a failing command is reported as a single diagnostic.
func (s *Session) Dispatch(input string) {
	if err := s.Execute(input); err != nil {
		s.out.Info("error: %s", line(err.Error()))
	}
}

// Execute handles one line of input like Dispatch, but returns the error of
// a failing command instead of reporting it.
func (s *Session) Execute(input string) error {
	args := strings.Fields(input)
	if len(args) == 0 {
		return nil
	}

	logrus.Tracef("> %s", input)

	handler, found := handlers[args[0]]
	if !found {
		logrus.WithField("command", args[0]).Debug("ignoring unknown command")
		return nil
	}

	err := handler(s, args[1:])
	if err != nil {
		logrus.WithError(err).WithField("command", args[0]).Debug("command failed")
	}

	return err
}

// maxLine is the longest input line accepted by Run. Move lists of long
// games easily outgrow bufio's default.
const maxLine = 1 << 20

// Run reads commands from r until a quit command or the end of input, which
// is treated the same as quit.
func (s *Session) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	for !s.quit && scanner.Scan() {
		s.Dispatch(scanner.Text())
	}

	if s.quit {
		return nil
	}

	err := scanner.Err()
	if err != nil {
		logrus.WithError(err).Error("unable to read input")
	}

	s.Quit()
	return err
}
