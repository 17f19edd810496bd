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

// Package digest validates FEN strings and turns them into a readable
// description of the position which can be handed to a move oracle.
//
// Validation is purely syntactic: the digest does not know whether the
// described position can be reached, only that it is well formed.
package digest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedPosition = errors.New("digest: malformed position")
	ErrInvalidPieces     = errors.New("digest: invalid pieces")
)

// InvalidPiece is an unknown piece symbol found while scanning the board.
type InvalidPiece struct {
	Symbol rune
	Square string
}

func (piece InvalidPiece) String() string {
	return string(piece.Symbol) + piece.Square
}

// InvalidPiecesError reports every unknown piece symbol on the board, not
// just the first one.
type InvalidPiecesError struct {
	Pieces []InvalidPiece
}

func (err *InvalidPiecesError) Error() string {
	pieces := make([]string, len(err.Pieces))
	for i, piece := range err.Pieces {
		pieces[i] = piece.String()
	}

	return "invalid pieces: " + strings.Join(pieces, ", ")
}

func (err *InvalidPiecesError) Unwrap() error {
	return ErrInvalidPieces
}

var pieceNames = map[rune]string{
	'K': "White king", 'Q': "White queen", 'R': "White rook",
	'B': "White bishop", 'N': "White knight", 'P': "White pawn",

	'k': "Black king", 'q': "Black queen", 'r': "Black rook",
	'b': "Black bishop", 'n': "Black knight", 'p': "Black pawn",
}

var castlingNames = map[rune]string{
	'K': "White can castle short",
	'Q': "White can castle long",
	'k': "Black can castle short",
	'q': "Black can castle long",
}

const none = "-"

// Metadata is the non-placement part of a FEN string.
type Metadata struct {
	SideToMove string // "w" or "b"
	Castling   string // "-" or a subset of "KQkq"
	EnPassant  string // "-" or a square
	Halfmove   string
	Fullmove   string
}

// Validate checks the given FEN string without building a description.
func Validate(fen string) error {
	_, err := Describe(fen)
	return err
}

// Describe validates the given FEN string and returns a deterministic,
// readable description of it. Structural errors wrap ErrMalformedPosition
// and unknown piece symbols are reported together as *InvalidPiecesError.
func Describe(fen string) (string, error) {
	ranks := strings.Split(fen, "/")
	if len(ranks) != 8 {
		return "", fmt.Errorf("%w: expected 8 ranks, found %d", ErrMalformedPosition, len(ranks))
	}

	// The final rank segment carries the placement of the first rank
	// followed by the five metadata fields.
	fields := strings.Fields(ranks[7])
	if len(fields) != 6 {
		return "", fmt.Errorf("%w: expected 5 metadata fields", ErrMalformedPosition)
	}

	ranks[7] = fields[0]
	meta := Metadata{
		SideToMove: fields[1],
		Castling:   fields[2],
		EnPassant:  fields[3],
		Halfmove:   fields[4],
		Fullmove:   fields[5],
	}

	if err := meta.validate(); err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "# Board\nFEN: %s\n\n## Pieces\n", fen)

	var invalid []InvalidPiece
	for i, rank := range ranks {
		rankName := byte('8' - i)
		file := 0

		for _, symbol := range rank {
			if symbol >= '0' && symbol <= '9' {
				file += int(symbol - '0')
				continue
			}

			square := string([]byte{byte('a' + file), rankName})
			file++

			name, found := pieceNames[symbol]
			if !found {
				// keep scanning so that every bad square gets reported
				invalid = append(invalid, InvalidPiece{Symbol: symbol, Square: square})
				continue
			}

			fmt.Fprintf(&out, "%s on %s\n", name, square)
		}
	}

	if len(invalid) > 0 {
		return "", &InvalidPiecesError{Pieces: invalid}
	}

	out.WriteString("\n## State\n")
	meta.describe(&out)
	return out.String(), nil
}

func (meta Metadata) validate() error {
	if meta.SideToMove != "w" && meta.SideToMove != "b" {
		return fmt.Errorf("%w: side to move must be w or b", ErrMalformedPosition)
	}

	if n := len(meta.Castling); n < 1 || n > 4 {
		return fmt.Errorf("%w: invalid castling rights %q", ErrMalformedPosition, meta.Castling)
	}

	if meta.Castling != none {
		for _, right := range meta.Castling {
			if _, found := castlingNames[right]; !found {
				return fmt.Errorf("%w: invalid castling right %q", ErrMalformedPosition, right)
			}
		}
	}

	if n := len(meta.EnPassant); n != 1 && n != 2 {
		return fmt.Errorf("%w: invalid en passant target %q", ErrMalformedPosition, meta.EnPassant)
	}

	return nil
}

func (meta Metadata) describe(out *strings.Builder) {
	if meta.SideToMove == "w" {
		out.WriteString("It is white's turn.\n")
	} else {
		out.WriteString("It is black's turn.\n")
	}

	if meta.Castling == none {
		out.WriteString("No castling available.\n")
	} else {
		out.WriteString("Castling options:\n")
		for _, right := range meta.Castling {
			fmt.Fprintf(out, "- %s\n", castlingNames[right])
		}
	}

	if meta.EnPassant == none {
		out.WriteString("No en passant available.\n")
	} else {
		fmt.Fprintf(out, "En passant available on %s.\n", meta.EnPassant)
	}

	fmt.Fprintf(out, "Halfmove clock (for the 50-move rule): %s\n", meta.Halfmove)
	fmt.Fprintf(out, "Fullmove number: %s\n", meta.Fullmove)
}
