package ai

import "fmt"

// SuggestNextSteps returns guidance for the user based on how many results a
// search produced. It needs no model call; the thresholds alone decide.
func SuggestNextSteps(resultCount int) string {
	switch {
	case resultCount == 0:
		return "No results found. Try:\n- Using different keywords\n- Searching for column names\n- Browsing all tables in AVS or DLVS"
	case resultCount == 1:
		return "Found 1 exact match! Review the table details below."
	case resultCount <= 5:
		return fmt.Sprintf("Found %d relevant tables. Review them below to find the best match.", resultCount)
	default:
		return fmt.Sprintf("Found %d tables. Consider refining your query to narrow down results.", resultCount)
	}
}
