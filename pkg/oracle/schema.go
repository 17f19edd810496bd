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

package oracle

// Schema returns the JSON schema oracles have to answer with. The first
// move of the line is restricted to the legal moves by an enum.
func Schema(legal []string, reasoning bool) map[string]any {
	properties := map[string]any{
		"ponder": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
				"enum": legal,
			},
			"minItems":    1,
			"description": `The best line, starting with the move to play now. From the starting position the line 1. d4 d5 is ["d2d4","d7d5"].`,
		},
		"eval": map[string]any{
			"type":        "number",
			"description": "Evaluation in centipawns from white's point of view.",
		},
		"mate": map[string]any{
			"type":        []string{"number", "null"},
			"description": "Moves until a forced mate, negative if black mates, null if there is none.",
		},
		"depth": map[string]any{
			"type":        []string{"number", "null"},
			"description": "Approximate depth of the analysis in half-moves, null if unknown.",
		},
	}

	required := []string{"ponder", "eval", "mate", "depth"}

	if reasoning {
		properties["reasoning"] = map[string]any{
			"type":        "string",
			"description": "Why this is the best move and why the evaluation is what it is.",
		}
		required = append(required, "reasoning")
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}
