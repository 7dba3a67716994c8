package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/datascout/core"
)

const refinerSystemPrompt = `You are a helpful assistant for a data catalog search system.
The system has two data sources: AVS and DLVS, each containing database table metadata.

Your job is to:
1. Understand what the user is looking for
2. Suggest refined queries if the original is vague
3. Ask clarifying questions if needed
4. Suggest filters (source_type, column names, etc.)

Respond in JSON format with:
{
    "refined_query": "optional refined version of the query",
    "clarifying_questions": ["list", "of", "questions"],
    "suggested_filters": {"key": "value"},
    "reasoning": "why you're making these suggestions"
}
`

const sqlSystemPrompt = `You are an expert SQL query writer for data warehouses.
You have access to table metadata including columns, descriptions, and relationships.

Your job is to:
1. Understand what the user wants to query
2. Generate correct SQL using the available tables and columns
3. Use appropriate JOINs based on joinable features
4. Add helpful WHERE clauses, GROUP BY, ORDER BY as needed
5. Follow best practices for readable SQL

Respond in JSON format:
{
    "sql_query": "SELECT ... FROM ... WHERE ...",
    "explanation": "This query retrieves...",
    "tables_used": ["table1", "table2"],
    "assumptions": ["assuming...", "..."],
    "alternatives": ["Could also use...", "..."]
}

Important:
- Use proper table aliases
- Include comments in SQL for clarity
- Consider performance (use appropriate indexes/filters)
- Handle NULL values appropriately
- Use ANSI SQL standard syntax
`

const refineSQLSystemPrompt = `You are an expert SQL query writer.
Refine the given SQL query based on the user's request.

Respond in JSON format:
{
    "sql_query": "refined SQL",
    "explanation": "what changed and why",
    "changes": ["change 1", "change 2"]
}
`

const explainSQLSystemPrompt = `You are an expert at explaining SQL queries in plain English.
Explain what the query does in a way that non-technical users can understand.`

const (
	maxSummaryResults  = 5
	maxContextColumns  = 20
	maxJoinableContext = 5
)

// summarizeResults renders a compact view of search results for the model.
func summarizeResults(results []*core.SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var lines []string
	for i, result := range results {
		if i >= maxSummaryResults {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s (from %s, score: %.1f)",
			i+1, result.TableTitle(), result.SourceType(), result.Score))
	}
	if len(results) > maxSummaryResults {
		lines = append(lines, fmt.Sprintf("... and %d more results", len(results)-maxSummaryResults))
	}
	return strings.Join(lines, "\n")
}

// buildTablesContext renders the schema of the selected results: table
// location, columns with datatypes, and the joinable features descriptions
// contribute.
func buildTablesContext(results []*core.SearchResult, selected []int) string {
	var parts []string

	for _, idx := range selected {
		if idx < 0 || idx >= len(results) {
			continue
		}
		result := results[idx]

		if meta := result.Table; meta != nil {
			info := []string{
				fmt.Sprintf("\nTable: %s", meta.Location),
				fmt.Sprintf("Description: %s", meta.Description),
				"\nColumns:",
			}
			for i, col := range meta.Columns {
				if i >= maxContextColumns {
					break
				}
				line := fmt.Sprintf("  - %s (%s)", col.Name, col.Datatype)
				if col.Description != "" {
					line += ": " + col.Description
				}
				info = append(info, line)
			}
			if len(meta.Columns) > maxContextColumns {
				info = append(info, fmt.Sprintf("  ... and %d more columns", len(meta.Columns)-maxContextColumns))
			}
			parts = append(parts, strings.Join(info, "\n"))
		}

		if desc := result.Description; desc != nil {
			parts = append(parts, fmt.Sprintf("\nPurpose: %s", desc.Purpose))
			if len(desc.JoinableFeatures) > 0 {
				joinable := desc.JoinableFeatures
				if len(joinable) > maxJoinableContext {
					joinable = joinable[:maxJoinableContext]
				}
				parts = append(parts, fmt.Sprintf("Joinable on: %s", strings.Join(joinable, ", ")))
			}
		}
	}

	return strings.Join(parts, "\n\n")
}

// topSelection returns indices of the first n results.
func topSelection(results []*core.SearchResult, n int) []int {
	if len(results) < n {
		n = len(results)
	}
	selected := make([]int, n)
	for i := range selected {
		selected[i] = i
	}
	return selected
}
