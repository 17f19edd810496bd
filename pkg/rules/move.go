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

package rules

import (
	"fmt"
	"strings"
)

// Move is a move in long algebraic (UCI) notation, like e2e4 or e7e8q.
type Move struct {
	From, To  string
	Promotion byte // 0 if the move isn't a promotion
}

// ParseMove parses a move in UCI notation. It only checks the notation, not
// whether the move is legal anywhere.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(s)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}

	move := Move{From: s[0:2], To: s[2:4]}
	if !isSquare(move.From) || !isSquare(move.To) {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}

	if len(s) == 5 {
		if !strings.ContainsRune("qrbn", rune(s[4])) {
			return Move{}, fmt.Errorf("%w: bad promotion in %q", ErrMalformedMove, s)
		}
		move.Promotion = s[4]
	}

	return move, nil
}

func (move Move) String() string {
	if move.Promotion == 0 {
		return move.From + move.To
	}

	return move.From + move.To + string(move.Promotion)
}

// Strings converts a list of moves into their UCI notation.
func Strings(moves []Move) []string {
	strs := make([]string, len(moves))
	for i, move := range moves {
		strs[i] = move.String()
	}

	return strs
}

func isSquare(s string) bool {
	return len(s) == 2 &&
		s[0] >= 'a' && s[0] <= 'h' &&
		s[1] >= '1' && s[1] <= '8'
}
