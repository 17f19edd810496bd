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

package data

import "github.com/MakeNowJust/heredoc/v2"

const (
	Name    = "Augur"
	Version = "v0.1.0"
	Author  = "Rak Laptudirm"
)

var Banner = Name + " " + Version + " by " + Author + "; type license to learn more"

var License = heredoc.Doc(`
	Augur, a UCI chess engine backed by a move oracle.
	Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this software except in compliance with the License.
	You may obtain a copy of the License at

	    http://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
`)

// SystemPrompt is sent to the oracle ahead of every position.
var SystemPrompt = heredoc.Doc(`
	You are a strong chess engine. You will be given a chess position and the
	complete list of legal moves in it, in UCI notation.

	Analyse the position and answer with the line you consider best, starting
	with the move to play now. The first move of the line MUST be one of the
	legal moves you were given, written exactly as it appears in that list.
	Later moves of the line are your expected continuation.

	Report your evaluation of the position in centipawns from white's point of
	view: 100 means white is a pawn up, -100 means black is a pawn up and 0 means
	the position is equal. If you see a forced mate, report the number of moves
	until mate, positive if white mates and negative if black mates, otherwise
	report null. If you know roughly how many half-moves deep you looked, report
	it as the depth, otherwise report null.
`)

// ReasoningPrompt is appended to the system prompt when the controller asked
// for the oracle's reasoning.
var ReasoningPrompt = heredoc.Doc(`
	Also explain briefly why you chose the move and why the evaluation is what
	it is, in the reasoning field.
`)
