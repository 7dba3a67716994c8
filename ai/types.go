package ai

// Message is one turn of the conversation between the user and the catalog
// assistant. Role follows the chat-completion convention: "user" or
// "assistant".
type Message struct {
	Role    string
	Content string
}

// Refinement carries the assistant's suggestions for improving a query.
type Refinement struct {
	// OriginalQuery is the query the user actually ran.
	OriginalQuery string

	// RefinedQuery is a suggested rewrite, empty when the original is
	// already specific enough.
	RefinedQuery string

	// ClarifyingQuestions are questions the assistant wants answered before
	// it can narrow the search further.
	ClarifyingQuestions []string

	// SuggestedFilters maps filter names to suggested values, for example
	// "source_type" -> "avs".
	SuggestedFilters map[string]string

	// Reasoning explains why the suggestions were made.
	Reasoning string
}

// GeneratedSQL is the result of turning a search into a runnable query.
type GeneratedSQL struct {
	// Query is the generated SQL text.
	Query string

	// Explanation describes what the query does.
	Explanation string

	// TablesUsed lists the tables the query references.
	TablesUsed []string

	// Assumptions lists assumptions the generator had to make about the
	// schema or the user's intent.
	Assumptions []string

	// Alternatives suggests other ways the query could be written.
	Alternatives []string
}

// RefinedSQL is the result of rewriting an existing query on request.
type RefinedSQL struct {
	// Query is the rewritten SQL text.
	Query string

	// Explanation describes what changed and why.
	Explanation string

	// Changes itemizes the individual edits.
	Changes []string
}
