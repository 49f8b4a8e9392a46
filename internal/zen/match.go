package zen

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is the resolution of one source space title against the workspace
// list. Workspace is nil when no exact or case-insensitive match exists;
// Suggestion then carries the closest fuzzy candidate, if any, for the
// caller to confirm.
type Match struct {
	SpaceTitle string
	Workspace  *Workspace
	Suggestion *Workspace
}

// workspaceNames implements fuzzy.Source over a workspace slice.
type workspaceNames []Workspace

func (w workspaceNames) String(i int) string { return w[i].Name }
func (w workspaceNames) Len() int            { return len(w) }

// MatchWorkspaces resolves each space title: exact match first, then
// case-insensitive, then a fuzzy suggestion.
func MatchWorkspaces(titles []string, workspaces []Workspace) []Match {
	matches := make([]Match, 0, len(titles))
	for _, title := range titles {
		m := Match{SpaceTitle: title}
		name := strings.TrimSpace(title)

		for i := range workspaces {
			if workspaces[i].Name == name {
				m.Workspace = &workspaces[i]
				break
			}
		}
		if m.Workspace == nil {
			for i := range workspaces {
				if strings.EqualFold(workspaces[i].Name, name) {
					m.Workspace = &workspaces[i]
					break
				}
			}
		}
		if m.Workspace == nil {
			if results := fuzzy.FindFrom(name, workspaceNames(workspaces)); len(results) > 0 {
				m.Suggestion = &workspaces[results[0].Index]
			}
		}

		matches = append(matches, m)
	}
	return matches
}
