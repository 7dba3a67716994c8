// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/datascout/ai"
	"github.com/poiesic/datascout/core"
)

// QueryRefiner implements ai.QueryRefiner using OpenAI-compatible chat APIs.
type QueryRefiner struct {
	client     llms.Model
	maxHistory int
	logger     *slog.Logger
}

// refinementResponse matches the JSON structure the model is asked for.
type refinementResponse struct {
	RefinedQuery        string            `json:"refined_query"`
	ClarifyingQuestions []string          `json:"clarifying_questions"`
	SuggestedFilters    map[string]string `json:"suggested_filters"`
	Reasoning           string            `json:"reasoning"`
}

// newQueryRefiner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryRefiner(config *ai.Config) (*QueryRefiner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryRefiner{
		client:     client,
		maxHistory: config.MaxHistory,
		logger:     slog.Default().With("component", "openai-refiner"),
	}, nil
}

// NewQueryRefiner creates a new query refiner using the provided configuration.
//
// Returns ai.QueryRefiner interface to enforce abstraction.
func NewQueryRefiner(config *ai.Config) (ai.QueryRefiner, error) {
	return newQueryRefiner(config)
}

// AnalyzeQuery asks the model how the query could be improved given the
// results it produced.
func (r *QueryRefiner) AnalyzeQuery(ctx context.Context, query string, results []*core.SearchResult, history []ai.Message) (*ai.Refinement, error) {
	userPrompt := fmt.Sprintf("User query: %q\n\nCurrent search found %d results:\n%s\n\nPlease analyze this query and provide suggestions to help the user find what they need.",
		query, len(results), summarizeResults(results))

	content := buildChatContent(refinerSystemPrompt, userPrompt, history, r.maxHistory)

	var parsed refinementResponse
	if err := generateJSON(ctx, r.client, r.logger, content, &parsed); err != nil {
		return nil, err
	}

	return &ai.Refinement{
		OriginalQuery:       query,
		RefinedQuery:        parsed.RefinedQuery,
		ClarifyingQuestions: parsed.ClarifyingQuestions,
		SuggestedFilters:    parsed.SuggestedFilters,
		Reasoning:           parsed.Reasoning,
	}, nil
}

// buildChatContent assembles the message sequence: system prompt, the last
// maxHistory conversation turns, then the user prompt.
func buildChatContent(systemPrompt, userPrompt string, history []ai.Message, maxHistory int) []llms.MessageContent {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
	}

	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	for _, msg := range history {
		role := llms.ChatMessageTypeHuman
		if msg.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
	})
	return content
}

// generateJSON runs a chat completion and decodes the JSON reply into out.
// Malformed replies are repaired and retried up to 3 times.
func generateJSON(ctx context.Context, client llms.Model, logger *slog.Logger, content []llms.MessageContent, out any) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			logger.Debug("no choices returned from model")
			return fmt.Errorf("model returned no choices")
		}

		responseText := repairJSON(extractJSON(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}
		return nil
	}

	logger.Error("failed to parse model response after retries", "err", lastErr)
	return lastErr
}
