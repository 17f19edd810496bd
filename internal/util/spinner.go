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

package util

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

const SPIN = 31

// StartSpinner starts a ~working~ spinner with the given suffix on w. The
// returned function stops it. Nothing is drawn at Trace level, where the
// spinner would garble the trace output.
func StartSpinner(w io.Writer, suffix string) (stop func()) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return func() {}
	}

	s := spinner.New(
		spinner.CharSets[SPIN], 100*time.Millisecond,
		spinner.WithWriter(w),
		spinner.WithSuffix(" "+suffix),
	)

	s.Start()
	return s.Stop
}
