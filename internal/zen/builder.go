package zen

import (
	"encoding/json"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"arczen/internal/model"
)

// Entities is the flat output of one build pass, in creation order.
type Entities struct {
	Tabs    []Tab
	Folders []Folder
	Groups  []Group
}

// Add appends another entity set, preserving creation order.
func (e *Entities) Add(other Entities) {
	e.Tabs = append(e.Tabs, other.Tabs...)
	e.Folders = append(e.Folders, other.Folders...)
	e.Groups = append(e.Groups, other.Groups...)
}

// Builder converts ordered bookmark trees into the entity collections Zen
// persists: pinned tabs, folders with their paired groups, and exactly one
// placeholder tab per folder.
type Builder struct {
	ids     *model.IDGenerator
	now     func() time.Time
	newUUID func() string
}

// NewBuilder creates a builder with wall-clock time and random UUIDs.
func NewBuilder(ids *model.IDGenerator) *Builder {
	return &Builder{
		ids:     ids,
		now:     time.Now,
		newUUID: func() string { return uuid.New().String() },
	}
}

// NewBuilderAt fixes the clock and UUID source. Used in tests.
func NewBuilderAt(ids *model.IDGenerator, now func() time.Time, newUUID func() string) *Builder {
	return &Builder{ids: ids, now: now, newUUID: newUUID}
}

// Build emits the entities for one tree targeting workspaceID. Depth-first;
// array order at every level becomes tab creation order and the folder
// sibling chain.
func (b *Builder) Build(nodes []*model.Node, workspaceID string) Entities {
	var ents Entities
	b.build(nodes, workspaceID, nil, "", nil, &ents)
	return ents
}

func (b *Builder) build(nodes []*model.Node, workspaceID string, parentID *string, groupID string, ancestors []int, ents *Entities) {
	var prevSibling *string
	for _, n := range nodes {
		if !n.IsFolder() {
			ents.Tabs = append(ents.Tabs, b.contentTab(n.URL, n.Title, workspaceID, groupID))
			continue
		}

		folderID := b.ids.Next()
		name := n.Title
		if name == "" {
			name = "Unnamed"
		}

		idx := len(ents.Folders)
		ents.Folders = append(ents.Folders, Folder{
			Pinned:            true,
			ID:                folderID,
			Name:              name,
			Collapsed:         true,
			SaveOnWindowClose: true,
			ParentID:          parentID,
			PrevSibling:       prevSiblingInfo(prevSibling),
			EmptyTabIDs:       []string{},
			WorkspaceID:       workspaceID,
		})
		ents.Groups = append(ents.Groups, Group{
			Pinned:            true,
			ID:                folderID,
			Name:              name,
			Color:             "zen-workspace-color",
			Collapsed:         true,
			SaveOnWindowClose: true,
		})

		placeholder, placeholderID := b.placeholderTab(workspaceID, folderID)
		ents.Tabs = append(ents.Tabs, placeholder)

		// The placeholder anchors this folder and every ancestor still open
		// on the recursion stack.
		ents.Folders[idx].EmptyTabIDs = append(ents.Folders[idx].EmptyTabIDs, placeholderID)
		for _, ai := range ancestors {
			ents.Folders[ai].EmptyTabIDs = append(ents.Folders[ai].EmptyTabIDs, placeholderID)
		}

		id := folderID
		b.build(n.Children, workspaceID, &id, folderID, append(ancestors, idx), ents)
		prevSibling = &id
	}
}

// contentTab builds the pinned tab for one bookmark. groupID is empty for
// standalone (top-level) tabs.
func (b *Builder) contentTab(url, title, workspaceID, groupID string) Tab {
	now := b.now().UnixMilli()
	entry := TabEntry{
		URL:                 url,
		Title:               title,
		CacheKey:            intPtr(0),
		ID:                  intPtr(urlHash(url, 1_000_000_000)),
		DocshellUUID:        braced(b.newUUID()),
		ResultPrincipalURI:  json.RawMessage("null"),
		HasUserInteraction:  boolPtr(false),
		TriggeringPrincipal: `{"3":{}}`,
		DocIdentifier:       intPtr(urlHash(url, 1000)),
		Transient:           boolPtr(false),
		NavigationKey:       braced(b.newUUID()),
		NavigationID:        braced(b.newUUID()),
	}

	return Tab{
		Entries:      []TabEntry{entry},
		LastAccessed: now,
		Pinned:       true,
		GroupID:      groupID,
		Workspace:    workspaceID,
		SyncID:       b.ids.Next(),
		PinnedInitialState: &PinnedInitialState{
			Entry: InitialEntry{
				URL:                 url,
				Title:               title,
				ID:                  urlHash(url, 1_000_000_000),
				TriggeringPrincipal: `{"3":{}}`,
			},
		},
		Attributes:     map[string]any{},
		Index:          1,
		UserTypedValue: "",
	}
}

// placeholderTab builds the empty tab that anchors a folder. Returns the
// tab and its sync id, which is what emptyTabIds refers to.
func (b *Builder) placeholderTab(workspaceID, groupID string) (Tab, string) {
	syncID := b.ids.Next()
	tab := Tab{
		Entries:      []TabEntry{{URL: "about:blank", Title: ""}},
		LastAccessed: b.now().UnixMilli(),
		Pinned:       true,
		GroupID:      groupID,
		Workspace:    workspaceID,
		SyncID:       syncID,
		IsEmpty:      true,
		Attributes:   map[string]any{},
		Index:        1,
	}
	return tab, syncID
}

func prevSiblingInfo(prev *string) PrevSiblingInfo {
	if prev != nil {
		return PrevSiblingInfo{Type: "folder", ID: prev}
	}
	return PrevSiblingInfo{Type: "start", ID: nil}
}

// OrderBySiblingChain returns folders sharing one parent ordered by
// following prevSiblingInfo pointers from the "start" marker.
func OrderBySiblingChain(folders []Folder) []Folder {
	var start *Folder
	next := make(map[string]*Folder)
	for i := range folders {
		f := &folders[i]
		if f.PrevSibling.Type == "start" {
			start = f
		} else if f.PrevSibling.ID != nil {
			next[*f.PrevSibling.ID] = f
		}
	}

	// Bounded by len(folders) so a malformed chain cannot loop forever.
	ordered := make([]Folder, 0, len(folders))
	for f := start; f != nil && len(ordered) < len(folders); f = next[f.ID] {
		ordered = append(ordered, *f)
	}
	return ordered
}

func urlHash(url string, mod int) int {
	h := fnv.New32a()
	h.Write([]byte(url))
	return int(h.Sum32()) % mod
}

func braced(id string) string { return "{" + id + "}" }

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
