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
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/augur/pkg/digest"
	"laptudirm.com/x/augur/pkg/options"
	"laptudirm.com/x/augur/pkg/oracle"
	"laptudirm.com/x/augur/pkg/rules"
)

// snapshot is everything a search needs, copied out of the session when the
// search starts.
type snapshot struct {
	position rules.Position
	options  options.Values
	limits   Limits
}

func (s *Session) run(ctx context.Context, handle *search, job snapshot) {
	log := logrus.WithField("search", handle.id)
	log.WithFields(logrus.Fields{
		"position": job.position.FEN(),
		"limits":   fmt.Sprintf("%+v", job.limits),
	}).Debug("search started")

	state := Cancelled
	defer func() {
		s.release(handle, state)
		log.WithField("state", state).Debug("search finished")
	}()

	state = s.think(ctx, handle, job, log)
}

func (s *Session) think(ctx context.Context, handle *search, job snapshot, log *logrus.Entry) State {
	if job.options.Bool(OptDebug) {
		if !s.out.Emit(ctx, "info string debug search "+handle.id+" started with options: "+describeOptions(job.options)) {
			return Cancelled
		}
	}

	legal := rules.Strings(s.rules.LegalMoves(job.position))
	switch len(legal) {
	case 0:
		score := "cp 0"
		diagnostic := "info string error: no legal moves, the position is a stalemate"
		if s.rules.InCheck(job.position) {
			score = "mate 0"
			diagnostic = "info string error: no legal moves, the position is a checkmate"
		}

		if !s.out.Emit(ctx, diagnostic, "info depth 1 score "+score) {
			return Cancelled
		}

		return Succeeded

	case 1:
		if !s.out.Emit(ctx, "bestmove "+legal[0]) {
			return Cancelled
		}

		return Succeeded
	}

	maxTries := job.options.Int(OptAPIMaxTries)

	source, err := s.newOracle(ctx, oracle.Config{
		Provider: job.options.Text(OptAPIProvider),
		Model:    job.options.Text(OptAPIModel),
		BaseURL:  job.options.Text(OptAPIBaseURL),
		APIKey:   job.options.Text(OptAPIKey),
	})
	if err != nil {
		log.WithError(err).Error("unable to create oracle")

		diagnostic := "info string error: " + line(err.Error())
		if errors.Is(err, oracle.ErrMissingKey) {
			diagnostic += ", set the " + OptAPIKey + " option or point " + OptAPIBaseURL + " at a local server"
		}

		if !s.out.Emit(ctx, diagnostic) {
			return Cancelled
		}

		return s.fallback(ctx, legal, "no oracle available")
	}

	query, err := buildQuery(job, legal)
	if err != nil {
		log.WithError(err).Error("unable to build query")
		if !s.out.Emit(ctx, "info string error: "+line(err.Error())) {
			return Cancelled
		}

		return s.fallback(ctx, legal, "no query could be built")
	}

	for attempt := 0; attempt <= maxTries; attempt++ {
		s.setAttempt(handle, attempt+1)

		log := log.WithField("attempt", attempt+1)
		log.Debug("querying oracle")

		if job.options.Bool(OptDebug) && !s.out.Emit(ctx, fmt.Sprintf(
			"info string debug query %d/%d with %d legal moves and a %d byte position",
			attempt+1, maxTries+1, len(query.LegalMoves), len(query.Position),
		)) {
			return Cancelled
		}

		timeout := time.Duration(job.options.Int(OptAPITimeout)) * time.Second
		suggestion, err := ask(ctx, source, query, timeout)
		if ctx.Err() != nil {
			return Cancelled
		}

		if err == nil {
			err = suggestion.Validate(legal)
		}

		if err != nil {
			log.WithError(err).Warn("oracle attempt failed")

			var lines []string
			if job.options.Bool(OptDebug) {
				lines = append(lines, "info string debug "+line(err.Error()))
			}

			lines = append(lines, fmt.Sprintf(
				"info string error: no move found, going to try again (%d/%d)",
				attempt+1, maxTries+1,
			))

			if !s.out.Emit(ctx, lines...) {
				return Cancelled
			}

			continue
		}

		var lines []string
		if job.options.Bool(OptDebug) {
			lines = append(lines, fmt.Sprintf(
				"info string debug suggestion %s with eval %g", strings.Join(suggestion.Line, " "), suggestion.Eval,
			))
		}

		if job.options.Bool(OptOutputReasoning) && suggestion.Reasoning != "" {
			lines = append(lines, "info string reasoning: "+line(suggestion.Reasoning))
		}

		lines = append(lines, analysis(suggestion), "bestmove "+suggestion.Line[0])
		if !s.out.Emit(ctx, lines...) {
			return Cancelled
		}

		return Succeeded
	}

	return s.fallback(ctx, legal, fmt.Sprintf("no bestmove was found in %d tries", maxTries+1))
}

// fallback plays a uniformly random legal move.
func (s *Session) fallback(ctx context.Context, legal []string, reason string) State {
	move := legal[rand.IntN(len(legal))]

	if !s.out.Emit(ctx,
		"info string error: "+reason+", going to pick a random move",
		"bestmove "+move,
	) {
		return Cancelled
	}

	return FallbackChosen
}

// ask queries the oracle once. It returns as soon as ctx is cancelled or
// the timeout runs out, even if the oracle is still busy.
func ask(ctx context.Context, source oracle.Oracle, query oracle.Query, timeout time.Duration) (*oracle.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		suggestion *oracle.Suggestion
		err        error
	}

	results := make(chan result, 1)
	go func() {
		suggestion, err := source.Suggest(ctx, query)
		results <- result{suggestion, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.err == nil && result.suggestion == nil {
			return nil, oracle.ErrMalformedResponse
		}

		return result.suggestion, result.err
	}
}

func buildQuery(job snapshot, legal []string) (oracle.Query, error) {
	query := oracle.Query{
		Position:     "FEN: " + job.position.FEN(),
		LegalMoves:   legal,
		Reasoning:    job.options.Bool(OptOutputReasoning),
		Instructions: job.options.Text(OptInstructions),
	}

	if job.options.Bool(OptFENAsMarkdown) {
		description, err := digest.Describe(job.position.FEN())
		if err != nil {
			return oracle.Query{}, fmt.Errorf("could not describe position: %w", err)
		}

		query.Position = description
	}

	return query, nil
}

// analysis formats a suggestion as an info line.
func analysis(suggestion *oracle.Suggestion) string {
	depth := 1
	if suggestion.Depth != nil && *suggestion.Depth >= 1 {
		depth = int(math.Round(*suggestion.Depth))
	}

	score := fmt.Sprintf("cp %d", int(math.Round(suggestion.Eval)))
	if suggestion.Mate != nil {
		score = fmt.Sprintf("mate %d", int(math.Round(*suggestion.Mate)))
	}

	return fmt.Sprintf("info depth %d score %s pv %s", depth, score, strings.Join(suggestion.Line, " "))
}

// line folds text onto a single protocol line.
func line(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// describeOptions lists option values with the api key masked.
func describeOptions(values options.Values) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		value := fmt.Sprint(values[name])
		if name == OptAPIKey && value != "" {
			value = "<hidden>"
		}

		pairs[i] = name + "=" + value
	}

	return strings.Join(pairs, " ")
}
