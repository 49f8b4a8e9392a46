package zen

import (
	"encoding/json"
	"fmt"
	"sort"

	"arczen/internal/model"
	"arczen/internal/mozlz4"
)

// sessionDoc is the decoded entity view of a session document. The primary
// store carries the arrays at the top level; the recovery variant nests
// them one window deeper.
type sessionDoc struct {
	Spaces  []Workspace `json:"spaces"`
	Tabs    []Tab       `json:"tabs"`
	Folders []Folder    `json:"folders"`
	Windows []struct {
		Tabs    []Tab    `json:"tabs"`
		Folders []Folder `json:"folders"`
	} `json:"windows"`
}

// ExportTrees parses a mozlz4 session document (either variant) and
// returns one top-level folder per workspace holding its pinned items,
// with folder sibling order recovered from the prev-sibling chain.
// workspaces supplies display names; unknown workspace ids get a
// truncated-uuid fallback name.
func ExportTrees(raw []byte, workspaces []Workspace) ([]*model.Node, error) {
	jsonBytes, err := mozlz4.Decode(raw)
	if err != nil {
		return nil, err
	}
	var doc sessionDoc
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid session JSON: %v", mozlz4.ErrCorrupt, err)
	}

	tabs, folders := doc.Tabs, doc.Folders
	if len(tabs) == 0 && len(folders) == 0 && len(doc.Windows) > 0 {
		tabs, folders = doc.Windows[0].Tabs, doc.Windows[0].Folders
	}
	if len(workspaces) == 0 {
		workspaces = doc.Spaces
	}

	byWorkspaceTabs := make(map[string][]Tab)
	for _, t := range tabs {
		if !t.Pinned || t.IsEmpty {
			continue
		}
		byWorkspaceTabs[t.Workspace] = append(byWorkspaceTabs[t.Workspace], t)
	}
	byWorkspaceFolders := make(map[string][]Folder)
	for _, f := range folders {
		byWorkspaceFolders[f.WorkspaceID] = append(byWorkspaceFolders[f.WorkspaceID], f)
	}

	var roots []*model.Node
	for _, wsID := range workspaceOrder(byWorkspaceTabs, byWorkspaceFolders, workspaces) {
		children := buildWorkspaceTree(byWorkspaceTabs[wsID], byWorkspaceFolders[wsID])
		if len(children) == 0 {
			continue
		}
		roots = append(roots, model.NewFolder(wsID, workspaceName(workspaces, wsID), children...))
	}
	return roots, nil
}

// workspaceOrder yields known workspaces first (in record order), then any
// remaining ids sorted, so output is deterministic.
func workspaceOrder(tabs map[string][]Tab, folders map[string][]Folder, workspaces []Workspace) []string {
	present := make(map[string]bool)
	for id := range tabs {
		present[id] = true
	}
	for id := range folders {
		present[id] = true
	}

	var order []string
	for _, ws := range workspaces {
		if present[ws.UUID] {
			order = append(order, ws.UUID)
			delete(present, ws.UUID)
		}
	}
	var rest []string
	for id := range present {
		rest = append(rest, id)
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func workspaceName(workspaces []Workspace, id string) string {
	for _, ws := range workspaces {
		if ws.UUID == id {
			return ws.Name
		}
	}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("Workspace %s", short)
}

// buildWorkspaceTree rebuilds one workspace's ordered bookmark tree from
// its flat tab and folder collections.
func buildWorkspaceTree(tabs []Tab, folders []Folder) []*model.Node {
	folderIDs := make(map[string]bool, len(folders))
	byParent := make(map[string][]Folder)
	for _, f := range folders {
		folderIDs[f.ID] = true
		key := ""
		if f.ParentID != nil {
			key = *f.ParentID
		}
		byParent[key] = append(byParent[key], f)
	}

	childTabs := make(map[string][]*model.Node)
	var rootTabs []*model.Node
	for _, t := range tabs {
		url, title := tabPage(t)
		if url == "" {
			continue
		}
		node := model.NewBookmark(t.SyncID, title, url)
		if t.GroupID != "" && folderIDs[t.GroupID] {
			childTabs[t.GroupID] = append(childTabs[t.GroupID], node)
		} else {
			rootTabs = append(rootTabs, node)
		}
	}

	var buildFolder func(f Folder) *model.Node
	buildFolder = func(f Folder) *model.Node {
		children := childTabs[f.ID]
		for _, sub := range OrderBySiblingChain(byParent[f.ID]) {
			if node := buildFolder(sub); node != nil {
				children = append(children, node)
			}
		}
		if len(children) == 0 {
			return nil
		}
		name := f.Name
		if name == "" {
			name = "Unnamed"
		}
		return model.NewFolder(f.ID, name, children...)
	}

	nodes := rootTabs
	for _, f := range OrderBySiblingChain(byParent[""]) {
		if node := buildFolder(f); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// tabPage extracts the display URL and title of a content tab from its
// last history entry, falling back to the pinned initial state for the
// title. Returns an empty URL for tabs that hold no navigable page.
func tabPage(t Tab) (url, title string) {
	if len(t.Entries) == 0 {
		return "", ""
	}
	entry := t.Entries[len(t.Entries)-1]
	if entry.URL == "" || entry.URL == "about:blank" {
		return "", ""
	}
	title = entry.Title
	if title == "" && t.PinnedInitialState != nil {
		title = t.PinnedInitialState.Entry.Title
	}
	if title == "" {
		title = entry.URL
	}
	return entry.URL, title
}
