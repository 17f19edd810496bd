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
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputLinesDoNotInterleave(t *testing.T) {
	sink := &buffer{}
	out := NewOutput(sink)

	var wg sync.WaitGroup
	for writer := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				out.Info("writer %d line %d", writer, i)
			}
		}()
	}
	wg.Wait()

	lines := sink.Lines()
	require.Len(t, lines, 800)

	seen := map[string]bool{}
	for _, line := range lines {
		seen[line] = true
	}

	for writer := range 8 {
		for i := range 100 {
			assert.True(t, seen[fmt.Sprintf("info string writer %d line %d", writer, i)])
		}
	}
}

func TestEmitAfterCancel(t *testing.T) {
	sink := &buffer{}
	out := NewOutput(sink)

	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, out.Emit(ctx, "info depth 1 score cp 0 pv e2e4", "bestmove e2e4"))

	out.Guard(cancel)
	assert.False(t, out.Emit(ctx, "bestmove d2d4"))

	assert.Equal(t, []string{"info depth 1 score cp 0 pv e2e4", "bestmove e2e4"}, sink.Lines())
}

func TestOutputDoesNotFormatArguments(t *testing.T) {
	sink := &buffer{}
	out := NewOutput(sink)

	out.Info("error: %s", "100% broken")
	assert.Equal(t, []string{"info string error: 100% broken"}, sink.Lines())
}
