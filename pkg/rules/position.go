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
	"strconv"
	"strings"

	"laptudirm.com/x/augur/pkg/digest"
)

// StartFEN is the FEN string of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is an immutable snapshot of a game. Since it is stored in its
// FEN form, copying a Position copies the whole game state.
type Position struct {
	fen string
}

// StartPosition returns the standard starting position.
func StartPosition() Position {
	return Position{fen: StartFEN}
}

// ParsePosition validates the given FEN string and returns the position
// it describes. On top of the digest's syntactic checks, every rank has to
// cover exactly 8 files, each side needs exactly one king, the en passant
// target has to be a square on the third or sixth rank, and both move clocks
// have to be numbers.
func ParsePosition(fenstr string) (Position, error) {
	fenstr = strings.Join(strings.Fields(fenstr), " ")
	if err := digest.Validate(fenstr); err != nil {
		return Position{}, err
	}

	fields := strings.Fields(fenstr)
	kings := map[rune]int{}
	for i, rank := range strings.Split(fields[0], "/") {
		files := 0
		for _, symbol := range rank {
			if symbol >= '0' && symbol <= '9' {
				files += int(symbol - '0')
				continue
			}

			kings[symbol]++
			files++
		}

		if files != 8 {
			return Position{}, fmt.Errorf("%w: rank %d covers %d files", ErrMalformedPosition, 8-i, files)
		}
	}

	if kings['K'] != 1 || kings['k'] != 1 {
		return Position{}, fmt.Errorf("%w: each side needs exactly one king", ErrMalformedPosition)
	}

	if enPassant := fields[3]; enPassant != "-" {
		if !isSquare(enPassant) || (enPassant[1] != '3' && enPassant[1] != '6') {
			return Position{}, fmt.Errorf("%w: bad en passant square %q", ErrMalformedPosition, enPassant)
		}
	}

	for _, clock := range fields[4:6] {
		if n, err := strconv.Atoi(clock); err != nil || n < 0 {
			return Position{}, fmt.Errorf("%w: bad move clock %q", ErrMalformedPosition, clock)
		}
	}

	return Position{fen: fenstr}, nil
}

// FEN returns the FEN string of the position.
func (pos Position) FEN() string {
	if pos.fen == "" {
		return StartFEN
	}

	return pos.fen
}

func (pos Position) String() string {
	return pos.FEN()
}

// SideToMove returns "w" or "b".
func (pos Position) SideToMove() string {
	return strings.Fields(pos.FEN())[1]
}

// PieceOn returns the FEN symbol of the piece on the given square.
func (pos Position) PieceOn(square string) (rune, bool) {
	if !isSquare(square) {
		return 0, false
	}

	placement := strings.Fields(pos.FEN())[0]
	rank := strings.Split(placement, "/")['8'-square[1]]

	file := 0
	target := int(square[0] - 'a')
	for _, symbol := range rank {
		if symbol >= '0' && symbol <= '9' {
			file += int(symbol - '0')
			if file > target {
				return 0, false
			}
			continue
		}

		if file == target {
			return symbol, true
		}
		file++
	}

	return 0, false
}
