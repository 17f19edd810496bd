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

package digest

import (
	"fmt"
	"strings"
)

// ReadMetadata recovers the metadata fields from a description produced
// by Describe.
func ReadMetadata(description string) (Metadata, error) {
	_, state, found := strings.Cut(description, "\n## State\n")
	if !found {
		return Metadata{}, fmt.Errorf("%w: description has no state section", ErrMalformedPosition)
	}

	var meta Metadata
	var castling strings.Builder

	for _, line := range strings.Split(state, "\n") {
		switch {
		case line == "It is white's turn.":
			meta.SideToMove = "w"
		case line == "It is black's turn.":
			meta.SideToMove = "b"

		case line == "No castling available.":
			castling.WriteString(none)
		case strings.HasPrefix(line, "- "):
			for right, name := range castlingNames {
				if line[2:] == name {
					castling.WriteRune(right)
				}
			}

		case line == "No en passant available.":
			meta.EnPassant = none
		case strings.HasPrefix(line, "En passant available on "):
			meta.EnPassant = strings.TrimSuffix(strings.TrimPrefix(line, "En passant available on "), ".")

		case strings.HasPrefix(line, "Halfmove clock (for the 50-move rule): "):
			meta.Halfmove = strings.TrimPrefix(line, "Halfmove clock (for the 50-move rule): ")
		case strings.HasPrefix(line, "Fullmove number: "):
			meta.Fullmove = strings.TrimPrefix(line, "Fullmove number: ")
		}
	}

	meta.Castling = castling.String()
	if err := meta.validate(); err != nil {
		return Metadata{}, err
	}

	return meta, nil
}
