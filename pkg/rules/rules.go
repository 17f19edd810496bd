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

// Package rules provides the rules of chess to the rest of augur: legal move
// generation, move application, and check detection, all backed by mess.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

var (
	ErrIllegalMove       = errors.New("rules: illegal move")
	ErrMalformedMove     = errors.New("rules: malformed move")
	ErrMalformedPosition = errors.New("rules: malformed position")
)

// Chess implements the rules of standard chess.
type Chess struct{}

func (Chess) board(pos Position) *board.Board {
	return board.New(board.FEN(fen.FromString(pos.FEN())))
}

// LegalMoves returns every legal move in the given position.
func (chess Chess) LegalMoves(pos Position) []Move {
	generated := chess.board(pos).GenerateMoves(false)

	moves := make([]Move, 0, len(generated))
	for _, mov := range generated {
		if parsed, err := ParseMove(mov.String()); err == nil {
			moves = append(moves, parsed)
		}
	}

	return moves
}

// MakeMove plays the given move in the position and returns the resulting
// position. The original position is left untouched.
func (chess Chess) MakeMove(pos Position, mov Move) (Position, error) {
	b := chess.board(pos)

	var found *move.Move
	for _, legal := range b.GenerateMoves(false) {
		if strings.EqualFold(legal.String(), mov.String()) {
			found = &legal
			break
		}
	}

	if found == nil {
		if _, occupied := pos.PieceOn(mov.From); !occupied {
			return Position{}, fmt.Errorf("%w %s: there's no piece on %s", ErrIllegalMove, mov, mov.From)
		}

		return Position{}, fmt.Errorf("%w %s", ErrIllegalMove, mov)
	}

	b.MakeMove(*found)

	fields := [6]string(b.FEN())
	return Position{fen: strings.Join(fields[:], " ")}, nil
}

// InCheck reports whether the side to move is in check.
func (chess Chess) InCheck(pos Position) bool {
	b := chess.board(pos)
	return b.IsInCheck(b.SideToMove)
}
