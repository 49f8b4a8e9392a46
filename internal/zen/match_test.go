package zen

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestMatchWorkspaces(t *testing.T) {
	workspaces := []Workspace{
		{UUID: "ws-1", Name: "Work"},
		{UUID: "ws-2", Name: "Personal"},
		{UUID: "ws-3", Name: "Side Projects"},
	}

	matches := MatchWorkspaces([]string{"Work", "personal", "Side Projcts", "Cooking"}, workspaces)
	assert.Equal(t, len(matches), 4)

	// Exact.
	assert.Assert(t, matches[0].Workspace != nil)
	assert.Equal(t, matches[0].Workspace.UUID, "ws-1")

	// Case-insensitive.
	assert.Assert(t, matches[1].Workspace != nil)
	assert.Equal(t, matches[1].Workspace.UUID, "ws-2")

	// Typo resolves to a fuzzy suggestion, not a match.
	assert.Assert(t, matches[2].Workspace == nil)
	assert.Assert(t, matches[2].Suggestion != nil)
	assert.Equal(t, matches[2].Suggestion.UUID, "ws-3")

	// Nothing close at all.
	assert.Assert(t, matches[3].Workspace == nil)
}

func TestMatchWorkspaces_TrimsTitles(t *testing.T) {
	matches := MatchWorkspaces([]string{"  Work "}, []Workspace{{UUID: "ws-1", Name: "Work"}})
	assert.Assert(t, matches[0].Workspace != nil)
}
