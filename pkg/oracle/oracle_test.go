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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionValidate(t *testing.T) {
	legal := []string{"e2e4", "d2d4"}

	assert.ErrorIs(t, (&Suggestion{}).Validate(legal), ErrEmptyLine)
	assert.ErrorIs(t, (&Suggestion{Line: []string{"e2e5"}}).Validate(legal), ErrIllegalMove)
	assert.NoError(t, (&Suggestion{Line: []string{"d2d4", "d7d5", "zzzz"}}).Validate(legal))
}

func TestParseSuggestion(t *testing.T) {
	suggestion, err := parseSuggestion("```json\n{\"ponder\":[\"e2e4\",\"e7e5\"],\"eval\":35,\"mate\":null,\"depth\":12}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"e2e4", "e7e5"}, suggestion.Line)
	assert.Equal(t, 35.0, suggestion.Eval)
	assert.Nil(t, suggestion.Mate)
	require.NotNil(t, suggestion.Depth)
	assert.Equal(t, 12.0, *suggestion.Depth)

	_, err = parseSuggestion("I think e4 is best")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSchema(t *testing.T) {
	schema := Schema([]string{"e2e4"}, false)
	assert.Equal(t, []string{"ponder", "eval", "mate", "depth"}, schema["required"])
	assert.NotContains(t, schema["properties"], "reasoning")

	schema = Schema([]string{"e2e4"}, true)
	assert.Contains(t, schema["required"], "reasoning")
	assert.Contains(t, schema["properties"], "reasoning")
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = New(context.Background(), Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrMissingKey)

	o, err := New(context.Background(), Config{Provider: "OpenAI", BaseURL: "http://localhost:1234/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234/v1", o.(*OpenAI).config.BaseURL)
}

func completion(content string) string {
	data, _ := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(data)
}

func TestOpenAISuggest(t *testing.T) {
	var request openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &request))

		_, _ = io.WriteString(w, completion(`{"ponder":["g1f3"],"eval":-20,"mate":null,"depth":null,"reasoning":"develops"}`))
	}))
	defer server.Close()

	o, err := NewOpenAI(Config{Model: "test-model", BaseURL: server.URL + "/v1", APIKey: "secret"})
	require.NoError(t, err)

	suggestion, err := o.Suggest(context.Background(), Query{
		Position:     "FEN: startpos",
		LegalMoves:   []string{"g1f3", "a2a3", "b1c3"},
		Reasoning:    true,
		Instructions: "Prefer quiet moves.",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"g1f3"}, suggestion.Line)
	assert.Equal(t, "develops", suggestion.Reasoning)

	assert.Equal(t, "test-model", request.Model)
	require.Len(t, request.Messages, 3)
	assert.Equal(t, "system", request.Messages[0].Role)
	assert.True(t, strings.HasSuffix(request.Messages[0].Content, "Prefer quiet moves.\n"))
	assert.Equal(t, "FEN: startpos", request.Messages[1].Content)
	assert.Equal(t, "Legal moves: a2a3, b1c3, g1f3", request.Messages[2].Content)
	assert.Equal(t, "json_schema", request.ResponseFormat.Type)
	assert.True(t, request.ResponseFormat.JSONSchema.Strict)
}

func TestOpenAISuggestErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"status", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, nil},
		{"api error", http.StatusOK, `{"error":{"message":"bad model"}}`, nil},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrMalformedResponse},
		{"garbage", http.StatusOK, `not json`, ErrMalformedResponse},
		{"bad content", http.StatusOK, completion("e2e4"), ErrMalformedResponse},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				_, _ = io.WriteString(w, test.body)
			}))
			defer server.Close()

			o, err := NewOpenAI(Config{BaseURL: server.URL})
			require.NoError(t, err)

			_, err = o.Suggest(context.Background(), Query{LegalMoves: []string{"e2e4"}})
			require.Error(t, err)
			if test.want != nil {
				assert.ErrorIs(t, err, test.want)
			}
		})
	}
}

func TestOpenAISuggestCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	o, err := NewOpenAI(Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = o.Suggest(ctx, Query{LegalMoves: []string{"e2e4"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeminiSuggest(t *testing.T) {
	var path string
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": `{"ponder":["d2d4"],"eval":15,"mate":null,"depth":10}`}},
				},
			}},
		})
	}))
	defer server.Close()

	o, err := New(context.Background(), Config{
		Provider: "gemini",
		Model:    "test-model",
		BaseURL:  server.URL,
		APIKey:   "secret",
	})
	require.NoError(t, err)

	suggestion, err := o.Suggest(context.Background(), Query{
		Position:   "FEN: startpos",
		LegalMoves: []string{"e2e4", "d2d4"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"d2d4"}, suggestion.Line)
	assert.Equal(t, 15.0, suggestion.Eval)
	assert.Contains(t, path, "models/test-model:generateContent")
	assert.Contains(t, string(body), "Legal moves: d2d4, e2e4")
}
