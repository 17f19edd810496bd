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
	"fmt"
	"slices"
	"strings"

	"laptudirm.com/x/augur/pkg/data"
	"laptudirm.com/x/augur/pkg/rules"
)

func uciCommand(s *Session, args []string) error {
	s.out.Printf("id name %s %s", data.Name, data.Version)
	s.out.Printf("id author %s", data.Author)

	for _, option := range s.options.Advertisement() {
		s.out.Printf("%s", option)
	}

	s.out.Printf("uciok")
	return nil
}

// isreadyCommand answers readyok, but only while no search is running.
func isreadyCommand(s *Session, args []string) error {
	if !s.Searching() {
		s.out.Printf("readyok")
	}

	return nil
}

// setoption name <name...> value <value...>
func setoptionCommand(s *Session, args []string) error {
	if len(args) == 0 || args[0] != "name" {
		return fmt.Errorf("%w: setoption needs a name", ErrSyntax)
	}

	valueAt := slices.Index(args, "value")
	if valueAt < 0 {
		return fmt.Errorf("%w: setoption needs a value", ErrSyntax)
	}

	name := strings.Join(args[1:valueAt], " ")
	value := strings.Join(args[valueAt+1:], " ")
	if name == "" {
		return fmt.Errorf("%w: setoption needs a name", ErrSyntax)
	}

	if err := s.options.Set(name, value); err != nil {
		return fmt.Errorf("when setting option %s: %w", name, err)
	}

	return nil
}

// position [startpos | fen <fen>] [moves <move...>]
//
// Moves are played one at a time, and an illegal move stops the replay
// with the moves before it kept.
func positionCommand(s *Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: position needs startpos or fen", ErrSyntax)
	}

	rest := args[1:]
	movesAt := slices.Index(rest, "moves")

	var moves []string
	if movesAt >= 0 {
		moves = rest[movesAt+1:]
		rest = rest[:movesAt]
	}

	var pos rules.Position
	switch args[0] {
	case "startpos":
		pos = rules.StartPosition()
	case "fen":
		if len(rest) == 0 {
			return fmt.Errorf("%w: position fen needs a fen", ErrSyntax)
		}

		var err error
		pos, err = rules.ParsePosition(strings.Join(rest, " "))
		if err != nil {
			return fmt.Errorf("could not parse fen: %w", err)
		}
	default:
		return fmt.Errorf("%w: position needs startpos or fen", ErrSyntax)
	}

	s.position = pos
	for _, str := range moves {
		move, err := rules.ParseMove(str)
		if err != nil {
			return err
		}

		next, err := s.rules.MakeMove(s.position, move)
		if err != nil {
			return err
		}

		s.position = next
	}

	return nil
}

func goCommand(s *Session, args []string) error {
	limits, err := ParseLimits(args)
	if err != nil {
		return err
	}

	s.StartSearch(limits)
	return nil
}

func stopCommand(s *Session, args []string) error {
	s.Stop()
	return nil
}

func quitCommand(s *Session, args []string) error {
	s.Quit()
	return nil
}

// debug [on | off]
//
// Without an argument, the session's state is written as diagnostics.
func debugCommand(s *Session, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "on":
			return s.options.Set(OptDebug, "true")
		case "off":
			return s.options.Set(OptDebug, "false")
		default:
			return fmt.Errorf("%w: debug takes on or off", ErrSyntax)
		}
	}

	s.out.Info("position %s", s.position.FEN())
	s.out.Info("legal moves %s", strings.Join(rules.Strings(s.rules.LegalMoves(s.position)), " "))

	if id, state := s.Status(); id != "" {
		if attempt := s.Attempt(); attempt > 0 {
			s.out.Info("search %s %s, attempt %d", id, state, attempt)
		} else {
			s.out.Info("search %s %s", id, state)
		}
	} else {
		s.out.Info("no search running, last search %s", state)
	}

	s.out.Info("options %s", describeOptions(s.options.Snapshot()))
	return nil
}

func licenseCommand(s *Session, args []string) error {
	for _, text := range strings.Split(strings.TrimRight(data.License, "\n"), "\n") {
		s.out.Printf("%s", text)
	}

	return nil
}
