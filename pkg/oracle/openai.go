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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

const DefaultOpenAIURL = "https://api.openai.com/v1"

// OpenAI is an oracle backed by an OpenAI compatible chat completions API.
type OpenAI struct {
	config Config
	client *http.Client
}

// NewOpenAI creates an OpenAI oracle. An api key is only required when the
// default endpoint is used, since local servers usually don't need one.
func NewOpenAI(config Config) (*OpenAI, error) {
	if config.BaseURL == "" {
		if config.APIKey == "" {
			return nil, ErrMissingKey
		}

		config.BaseURL = DefaultOpenAIURL
	}

	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	return &OpenAI{config: config, client: &http.Client{}}, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type       string `json:"type"`
	JSONSchema struct {
		Name   string         `json:"name"`
		Strict bool           `json:"strict"`
		Schema map[string]any `json:"schema"`
	} `json:"json_schema"`
}

type openAIRequest struct {
	Model          string               `json:"model"`
	Messages       []openAIMessage      `json:"messages"`
	ResponseFormat openAIResponseFormat `json:"response_format"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (oracle *OpenAI) Suggest(ctx context.Context, query Query) (*Suggestion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	request := openAIRequest{
		Model: oracle.config.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt(query)},
			{Role: "user", Content: query.Position},
			{Role: "user", Content: legalMovesPrompt(query)},
		},
	}

	request.ResponseFormat.Type = "json_schema"
	request.ResponseFormat.JSONSchema.Name = "evaluation"
	request.ResponseFormat.JSONSchema.Strict = true
	request.ResponseFormat.JSONSchema.Schema = Schema(query.LegalMoves, query.Reasoning)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("oracle: marshal request: %w", err)
	}

	logrus.WithField("model", oracle.config.Model).Tracef("openai request: %s", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oracle.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("oracle: create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if oracle.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+oracle.config.APIKey)
	}

	res, err := oracle.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle: network error: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("oracle: read response: %w", err)
	}

	logrus.WithField("status", res.StatusCode).Tracef("openai response: %s", data)

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle: request failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(data)))
	}

	var response openAIResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("oracle: api error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	return parseSuggestion(response.Choices[0].Message.Content)
}
