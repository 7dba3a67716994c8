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
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/datascout/ai"
	"github.com/poiesic/datascout/core"
)

// defaultSelectionSize is how many top results feed the schema context when
// the caller doesn't pick tables explicitly.
const defaultSelectionSize = 3

// SQLGenerator implements ai.SQLGenerator using OpenAI-compatible chat APIs.
type SQLGenerator struct {
	client     llms.Model
	maxHistory int
	logger     *slog.Logger
}

// sqlResponse matches the JSON structure the model is asked for.
type sqlResponse struct {
	SQLQuery     string   `json:"sql_query"`
	Explanation  string   `json:"explanation"`
	TablesUsed   []string `json:"tables_used"`
	Assumptions  []string `json:"assumptions"`
	Alternatives []string `json:"alternatives"`
}

// refineResponse matches the JSON structure for SQL refinement.
type refineResponse struct {
	SQLQuery    string   `json:"sql_query"`
	Explanation string   `json:"explanation"`
	Changes     []string `json:"changes"`
}

// newSQLGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSQLGenerator(config *ai.Config) (*SQLGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &SQLGenerator{
		client:     client,
		maxHistory: config.MaxHistory,
		logger:     slog.Default().With("component", "openai-sqlgen"),
	}, nil
}

// NewSQLGenerator creates a new SQL generator using the provided configuration.
//
// Returns ai.SQLGenerator interface to enforce abstraction.
func NewSQLGenerator(config *ai.Config) (ai.SQLGenerator, error) {
	return newSQLGenerator(config)
}

// GenerateSQL produces a SQL query answering the user's need, using the
// selected results as the available schema.
func (g *SQLGenerator) GenerateSQL(ctx context.Context, query string, results []*core.SearchResult, history []ai.Message, selected []int) (*ai.GeneratedSQL, error) {
	if selected == nil {
		selected = topSelection(results, defaultSelectionSize)
	}

	userPrompt := fmt.Sprintf("User wants to: %q\n\nAvailable tables and columns:\n%s\n\nGenerate an appropriate SQL query that answers the user's need.",
		query, buildTablesContext(results, selected))

	content := buildChatContent(sqlSystemPrompt, userPrompt, history, g.maxHistory)

	var parsed sqlResponse
	if err := generateJSON(ctx, g.client, g.logger, content, &parsed); err != nil {
		return nil, err
	}

	return &ai.GeneratedSQL{
		Query:        parsed.SQLQuery,
		Explanation:  parsed.Explanation,
		TablesUsed:   parsed.TablesUsed,
		Assumptions:  parsed.Assumptions,
		Alternatives: parsed.Alternatives,
	}, nil
}

// RefineSQL rewrites an existing SQL query per the user's request.
func (g *SQLGenerator) RefineSQL(ctx context.Context, originalSQL, request string, results []*core.SearchResult) (*ai.RefinedSQL, error) {
	tablesContext := buildTablesContext(results, topSelection(results, defaultSelectionSize))

	userPrompt := fmt.Sprintf("Original SQL:\n```sql\n%s\n```\n\nAvailable tables:\n%s\n\nUser requests: %s\n\nRefine the SQL query accordingly.",
		originalSQL, tablesContext, request)

	content := buildChatContent(refineSQLSystemPrompt, userPrompt, nil, g.maxHistory)

	var parsed refineResponse
	if err := generateJSON(ctx, g.client, g.logger, content, &parsed); err != nil {
		return nil, err
	}

	refined := &ai.RefinedSQL{
		Query:       parsed.SQLQuery,
		Explanation: parsed.Explanation,
		Changes:     parsed.Changes,
	}
	if refined.Query == "" {
		refined.Query = originalSQL
	}
	return refined, nil
}

// ExplainSQL returns a plain-English explanation of a SQL query.
func (g *SQLGenerator) ExplainSQL(ctx context.Context, sql string) (string, error) {
	userPrompt := fmt.Sprintf("Explain this SQL query:\n\n```sql\n%s\n```\n\nProvide a clear, concise explanation.", sql)

	content := buildChatContent(explainSQLSystemPrompt, userPrompt, nil, g.maxHistory)

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("failed to explain sql", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("model returned no choices")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
