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

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Gemini is an oracle backed by Google's Gemini API.
type Gemini struct {
	model  string
	client *genai.Client
}

// NewGemini creates a Gemini oracle. If no api key is configured, the
// client falls back to the GOOGLE_API_KEY environment variable.
func NewGemini(ctx context.Context, config Config) (*Gemini, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}

	if config.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("oracle: create gemini client: %w", err)
	}

	return &Gemini{model: config.Model, client: client}, nil
}

func (oracle *Gemini) Suggest(ctx context.Context, query Query) (*Suggestion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(query.Position, genai.RoleUser),
		genai.NewContentFromText(legalMovesPrompt(query), genai.RoleUser),
	}

	res, err := oracle.client.Models.GenerateContent(ctx, oracle.model, contents, &genai.GenerateContentConfig{
		SystemInstruction:  genai.NewContentFromText(systemPrompt(query), genai.RoleUser),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: Schema(query.LegalMoves, query.Reasoning),
	})
	if err != nil {
		return nil, fmt.Errorf("oracle: network error: %w", err)
	}

	text := res.Text()
	logrus.WithField("model", oracle.model).Tracef("gemini response: %s", text)

	return parseSuggestion(text)
}
