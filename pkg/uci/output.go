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
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Output is the single ordered sink every protocol line is written to. Each
// line is flushed as soon as it is written, and concurrent writers never
// interleave within a line.
type Output struct {
	mu     sync.Mutex
	writer *bufio.Writer
}

// NewOutput creates an Output writing to w.
func NewOutput(w io.Writer) *Output {
	return &Output{writer: bufio.NewWriter(w)}
}

// Printf writes a single formatted line.
func (out *Output) Printf(format string, a ...any) {
	out.mu.Lock()
	defer out.mu.Unlock()

	out.writeln(fmt.Sprintf(format, a...))
}

// Info writes a diagnostic line.
func (out *Output) Info(format string, a ...any) {
	out.Printf("info string "+format, a...)
}

// Emit writes the given lines as one block, unless ctx has already been
// cancelled, in which case nothing is written. It reports whether the lines
// were written.
func (out *Output) Emit(ctx context.Context, lines ...string) bool {
	out.mu.Lock()
	defer out.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}

	for _, line := range lines {
		out.writeln(line)
	}

	return true
}

// Guard runs fn with the sink locked, so that fn happens either entirely
// before or entirely after any block of lines written with Emit.
func (out *Output) Guard(fn func()) {
	out.mu.Lock()
	defer out.mu.Unlock()

	fn()
}

func (out *Output) writeln(line string) {
	logrus.Tracef("< %s", line)

	if _, err := out.writer.WriteString(line + "\n"); err != nil {
		logrus.WithError(err).Error("unable to write protocol output")
		return
	}

	if err := out.writer.Flush(); err != nil {
		logrus.WithError(err).Error("unable to flush protocol output")
	}
}
