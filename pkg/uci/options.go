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

import "laptudirm.com/x/augur/pkg/options"

// Names of the options advertised by the engine.
const (
	OptThreads          = "Threads"
	OptDebug            = "Debug"
	OptOutputReasoning  = "OutputReasoning"
	OptAPIProvider      = "APIProvider"
	OptAPIModel         = "APIModel"
	OptAPIBaseURL       = "APIBaseURL"
	OptAPIKey           = "APIKey"
	OptAPIMaxTries      = "APIMaxTries"
	OptAPITimeout       = "APITimeout"
	OptFENAsMarkdown    = "FENAsMarkdown"
	OptInstructions     = "AdditionalInstructions"
	OptInstructionsFile = "AdditionalInstructionsFile"
)

// Options is the engine's option table in advertisement order.
var Options = []options.Descriptor{
	// Threads is accepted for compatibility with controllers which always
	// set it. The oracle does all the work, so it has no effect.
	{Name: OptThreads, Type: options.Spin, Default: 1, Min: 1, Max: 1024},

	{Name: OptDebug, Type: options.Check, Default: false},
	{Name: OptOutputReasoning, Type: options.Check, Default: false},

	{Name: OptAPIProvider, Type: options.String, Default: "openai"},
	{Name: OptAPIModel, Type: options.String, Default: "gpt-4o-mini"},
	{Name: OptAPIBaseURL, Type: options.String, Default: ""},
	{Name: OptAPIKey, Type: options.String, Default: ""},
	{Name: OptAPIMaxTries, Type: options.Spin, Default: 3, Min: 0, Max: 100},
	{Name: OptAPITimeout, Type: options.Spin, Default: 120, Min: 1, Max: 3600},

	{Name: OptFENAsMarkdown, Type: options.Check, Default: true},
	{Name: OptInstructions, Type: options.String, Default: ""},
	{Name: OptInstructionsFile, Type: options.String, Default: "", Loads: OptInstructions},
}
