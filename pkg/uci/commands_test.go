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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/augur/pkg/rules"
)

func TestUCI(t *testing.T) {
	h := newHarness(t, fail)

	h.send("uci")

	lines := h.out.Lines()
	require.Len(t, lines, 2+len(Options)+1)
	assert.Equal(t, "id name Augur v0.1.0", lines[0])
	assert.Equal(t, "id author Rak Laptudirm", lines[1])
	assert.Equal(t, "option name Threads type spin default 1 min 1 max 1024", lines[2])
	assert.Contains(t, lines, "option name APIMaxTries type spin default 3 min 0 max 100")
	assert.Contains(t, lines, "option name FENAsMarkdown type check default true")
	assert.Contains(t, lines, "option name APIKey type string default <empty>")
	assert.Equal(t, "uciok", lines[len(lines)-1])
}

func TestUnknownAndBlankLines(t *testing.T) {
	h := newHarness(t, fail)

	h.send("", "   ", "xboard", "ucinewgame", "register later")
	assert.Empty(t, h.out.Lines())
}

func TestSetOption(t *testing.T) {
	h := newHarness(t, fail)

	h.send("setoption name AdditionalInstructions value play  the   London")
	assert.Empty(t, h.out.Lines())

	value, err := h.session.Options().Get(OptInstructions)
	require.NoError(t, err)
	assert.Equal(t, "play the London", value)

	h.send("setoption name AdditionalInstructions value")
	value, err = h.session.Options().Get(OptInstructions)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSetOptionErrors(t *testing.T) {
	h := newHarness(t, fail)
	before := h.session.Options().Snapshot()

	for _, input := range []string{
		"setoption",
		"setoption value 3",
		"setoption name APIMaxTries",
		"setoption name value 3",
		"setoption name Bogus value 1",
		"setoption name APIMaxTries value lots",
		"setoption name APIMaxTries value 101",
		"setoption name Debug value perhaps",
	} {
		h.out.Reset()
		h.send(input)

		lines := h.out.Lines()
		require.Len(t, lines, 1, input)
		assert.True(t, strings.HasPrefix(lines[0], "info string error: "), input)
	}

	assert.Equal(t, before, h.session.Options().Snapshot())
}

func TestPosition(t *testing.T) {
	h := newHarness(t, fail)

	h.send("position startpos moves e2e4 e7e5")
	assert.Empty(t, h.out.Lines())

	pos := h.session.Position()
	assert.Equal(t, "w", pos.SideToMove())

	piece, found := pos.PieceOn("e5")
	assert.True(t, found)
	assert.Equal(t, 'p', piece)

	h.send("position startpos")
	assert.Equal(t, rules.StartFEN, h.session.Position().FEN())

	h.send("position fen 4k3/8/8/8/8/8/8/4K3 w - - 0 1 moves e1d2")
	piece, found = h.session.Position().PieceOn("d2")
	assert.True(t, found)
	assert.Equal(t, 'K', piece)
}

func TestPositionErrorsKeepPriorPosition(t *testing.T) {
	h := newHarness(t, fail)

	h.send("position startpos moves e2e4")
	prior := h.session.Position()

	for _, input := range []string{
		"position",
		"position banana",
		"position fen",
		"position fen moves e2e4",
		"position fen 8/8/8 w - - 0 1",
		"position fen 4k3/8/8/8/8/8/8/4K2X w - - 0 1",
		"position fen 4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		"position fen 4k3/8/8/8/8/8/8/4K3 w - x 0 1",
		"position fen 4k3/8/8/8/8/8/8/4K3 w - z9 0 1",
		"position fen 4k3/8/8/8/8/8/8/4K3 w - e4 0 1",
	} {
		h.out.Reset()
		h.send(input)

		lines := h.out.Lines()
		require.Len(t, lines, 1, input)
		assert.True(t, strings.HasPrefix(lines[0], "info string error: "), input)
		assert.Equal(t, prior, h.session.Position(), input)
	}
}

func TestPositionIllegalMoveKeepsEarlierMoves(t *testing.T) {
	h := newHarness(t, fail)

	h.send("position startpos moves e2e4 e7e5 e1e3 d2d4")

	lines := h.out.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "illegal move e1e3")

	pos := h.session.Position()
	assert.Equal(t, "w", pos.SideToMove())

	piece, _ := pos.PieceOn("e5")
	assert.Equal(t, 'p', piece)

	piece, _ = pos.PieceOn("d2")
	assert.Equal(t, 'P', piece)

	h.out.Reset()
	h.send("position startpos moves e2e4 e7e9")
	assert.Len(t, h.out.Lines(), 1)
	assert.Equal(t, "b", h.session.Position().SideToMove())
}

func TestGoWithMalformedLimits(t *testing.T) {
	h := newHarness(t, succeed("e2e4"))

	h.send("go wtime soon")

	assert.False(t, h.session.Searching())
	assert.Empty(t, h.oracle.Queries())
	assert.Equal(t, []string{`info string error: syntax error: go wtime "soon" is not a number`}, h.out.Lines())
}

func TestDebug(t *testing.T) {
	h := newHarness(t, fail)

	h.send("debug on")
	assert.True(t, h.session.Options().Snapshot().Bool(OptDebug))

	h.send("debug off")
	assert.False(t, h.session.Options().Snapshot().Bool(OptDebug))

	h.send("debug maybe")
	assert.Len(t, h.out.Lines(), 1)

	h.out.Reset()
	h.send("position fen 7k/8/6K1/8/p7/8/P7/6R1 b - - 0 1", "debug")

	lines := h.out.Lines()
	assert.Contains(t, lines, "info string position 7k/8/6K1/8/p7/8/P7/6R1 b - - 0 1")
	assert.Contains(t, lines, "info string legal moves a4a3")
	assert.Contains(t, lines, "info string no search running, last search idle")
}

func TestLicense(t *testing.T) {
	h := newHarness(t, fail)

	h.send("license")

	lines := h.out.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Augur, a UCI chess engine backed by a move oracle.", lines[0])
	assert.Contains(t, lines, "    http://www.apache.org/licenses/LICENSE-2.0")
}

func TestRunStopsAtQuit(t *testing.T) {
	h := newHarness(t, fail)

	err := h.session.Run(strings.NewReader("isready\nquit\nisready\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"readyok"}, h.out.Lines())
	assert.Equal(t, []int{0}, h.exits)
}

func TestRunQuitsAtEndOfInput(t *testing.T) {
	h := newHarness(t, fail)

	err := h.session.Run(strings.NewReader("isready"))
	require.NoError(t, err)

	assert.Equal(t, []string{"readyok"}, h.out.Lines())
	assert.Equal(t, []int{0}, h.exits)
}

func TestRunAcceptsLongLines(t *testing.T) {
	h := newHarness(t, fail)

	instructions := strings.TrimSpace(strings.Repeat("be careful ", 20000))
	input := "setoption name AdditionalInstructions value " + instructions + "\nquit\n"
	require.NoError(t, h.session.Run(strings.NewReader(input)))

	value, err := h.session.Options().Get(OptInstructions)
	require.NoError(t, err)
	assert.Equal(t, instructions, value)
}

func TestExecuteReturnsErrors(t *testing.T) {
	h := newHarness(t, fail)

	err := h.session.Execute("position fen 4k3/8/8/8/8/8/8/4K3 w - - 0 1 moves e1e3")
	assert.ErrorIs(t, err, rules.ErrIllegalMove)

	err = h.session.Execute("setoption name Threads")
	assert.ErrorIs(t, err, ErrSyntax)

	assert.NoError(t, h.session.Execute("bogus"))
	assert.Empty(t, h.out.Lines())
}
