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
	"strconv"
	"time"
)

// Limits are the search limits passed along with a go command. The oracle
// has no notion of time or depth, so they are only parsed, checked, and
// logged.
type Limits struct {
	SearchMoves []string

	Ponder   bool
	Infinite bool

	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MoveTime     time.Duration

	MovesToGo int
	Depth     int
	Nodes     int
	Mate      int
}

var limitKeywords = []string{
	"searchmoves", "ponder", "infinite",
	"wtime", "btime", "winc", "binc", "movetime",
	"movestogo", "depth", "nodes", "mate",
}

// ParseLimits parses the arguments of a go command. Unknown tokens are
// ignored, while a missing or malformed number is a syntax error.
func ParseLimits(args []string) (Limits, error) {
	var limits Limits

	for i := 0; i < len(args); i++ {
		keyword := args[i]

		switch keyword {
		case "ponder":
			limits.Ponder = true
			continue
		case "infinite":
			limits.Infinite = true
			continue
		case "searchmoves":
			for i+1 < len(args) && !slices.Contains(limitKeywords, args[i+1]) {
				i++
				limits.SearchMoves = append(limits.SearchMoves, args[i])
			}
			continue
		}

		var target *int
		var duration *time.Duration
		switch keyword {
		case "wtime":
			duration = &limits.WTime
		case "btime":
			duration = &limits.BTime
		case "winc":
			duration = &limits.WInc
		case "binc":
			duration = &limits.BInc
		case "movetime":
			duration = &limits.MoveTime
		case "movestogo":
			target = &limits.MovesToGo
		case "depth":
			target = &limits.Depth
		case "nodes":
			target = &limits.Nodes
		case "mate":
			target = &limits.Mate
		default:
			continue
		}

		if i+1 >= len(args) {
			return Limits{}, fmt.Errorf("%w: go %s needs a value", ErrSyntax, keyword)
		}

		i++
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return Limits{}, fmt.Errorf("%w: go %s %q is not a number", ErrSyntax, keyword, args[i])
		}

		if duration != nil {
			*duration = time.Duration(n) * time.Millisecond
		} else {
			*target = n
		}
	}

	return limits, nil
}
