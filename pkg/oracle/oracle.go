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

// Package oracle talks to the external services which suggest moves for a
// position. Oracles are untrusted: every suggestion has to be validated
// against the position's legal moves before it is used.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"laptudirm.com/x/augur/internal/util"
	"laptudirm.com/x/augur/pkg/data"
)

var (
	ErrEmptyLine         = errors.New("oracle: suggested line is empty")
	ErrIllegalMove       = errors.New("oracle: suggested an illegal move")
	ErrMalformedResponse = errors.New("oracle: malformed response")
	ErrUnknownProvider   = errors.New("oracle: unknown provider")
	ErrMissingKey        = errors.New("oracle: api key not configured")
)

// Oracle suggests a line for a position.
type Oracle interface {
	Suggest(ctx context.Context, query Query) (*Suggestion, error)
}

// Query is a request for a suggestion.
type Query struct {
	// Position is either a readable digest of the position or its raw FEN.
	Position   string
	LegalMoves []string

	Reasoning    bool   // ask the oracle to explain itself
	Instructions string // extra instructions appended to the system prompt
}

// Suggestion is an oracle's answer to a Query.
type Suggestion struct {
	Line      []string `json:"ponder"`
	Eval      float64  `json:"eval"`
	Mate      *float64 `json:"mate"`
	Depth     *float64 `json:"depth"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// Validate checks that the suggested line starts with one of the given
// legal moves.
func (suggestion *Suggestion) Validate(legal []string) error {
	if len(suggestion.Line) == 0 {
		return ErrEmptyLine
	}

	if !slices.Contains(legal, suggestion.Line[0]) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, suggestion.Line[0])
	}

	return nil
}

// Config configures an oracle's transport.
type Config struct {
	Provider string // "openai" or "gemini"
	Model    string
	BaseURL  string // empty for the provider's default endpoint
	APIKey   string
}

// New creates an oracle for the configured provider.
func New(ctx context.Context, config Config) (Oracle, error) {
	switch strings.ToLower(config.Provider) {
	case "", "openai":
		return NewOpenAI(config)
	case "gemini":
		return NewGemini(ctx, config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Provider)
	}
}

// systemPrompt builds the system prompt for a query.
func systemPrompt(query Query) string {
	prompt := data.SystemPrompt
	if query.Reasoning {
		prompt += "\n" + data.ReasoningPrompt
	}

	if instructions := strings.TrimSpace(query.Instructions); instructions != "" {
		prompt += "\n" + instructions + "\n"
	}

	return prompt
}

// legalMovesPrompt lists the legal moves in natural order so that the same
// position always produces the same prompt.
func legalMovesPrompt(query Query) string {
	moves := slices.Clone(query.LegalMoves)
	util.SortNatural(moves)
	return "Legal moves: " + strings.Join(moves, ", ")
}

func parseSuggestion(text string) (*Suggestion, error) {
	text = strings.TrimSpace(text)

	// some models wrap their json in a markdown code block
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &suggestion, nil
}

// DefaultTimeout bounds a single request when the caller's context has no
// deadline of its own.
const DefaultTimeout = 2 * time.Minute

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, DefaultTimeout)
}
