package arc

import (
	"encoding/json"
	"errors"
	"fmt"

	"arczen/internal/logger"
	"arczen/internal/model"
)

// ErrSchema means the document lacks the expected top-level structure.
// Fatal for the whole parse; per-item anomalies are only logged.
var ErrSchema = errors.New("arc: document missing sidebar.containers")

// Parser converts Arc's raw sidebar document into ordered bookmark trees,
// one Profile per container that yields at least one space.
type Parser struct {
	log             logger.Logger
	includeUnpinned bool

	// per-container item index, rebuilt for each container
	items   map[string]*Item
	ordered []*Item
}

// NewParser creates a parser. When includeUnpinned is set, spaces also
// resolve their unpinned root container.
func NewParser(log logger.Logger, includeUnpinned bool) *Parser {
	return &Parser{log: log, includeUnpinned: includeUnpinned}
}

// Parse walks the sidebar document and returns its profiles.
func (p *Parser) Parse(data []byte) ([]model.Profile, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("arc: parse sidebar document: %w", err)
	}
	if doc.Sidebar.Containers == nil {
		return nil, ErrSchema
	}

	var profiles []model.Profile
	for i, raw := range doc.Sidebar.Containers {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			p.log.Debug("skipping non-object container", logger.Int("index", i))
			continue
		}

		p.indexItems(fields["items"])
		spaces := p.resolveSpaces(fields["spaces"])
		if len(spaces) == 0 {
			p.log.Debug("skipping container without resolvable spaces", logger.Int("index", i))
			continue
		}

		label := fmt.Sprintf("Profile %d", i+1)
		if _, ok := fields["global"]; ok {
			label = "Main Profile"
		}
		profiles = append(profiles, model.Profile{Label: label, Spaces: spaces})
	}

	if len(profiles) == 0 {
		p.log.Warn("no bookmark data found in any container")
	}
	return profiles, nil
}

// indexItems rebuilds the id lookup from a container's raw items list.
// The array order is kept for deterministic fallback child collection.
func (p *Parser) indexItems(raw json.RawMessage) {
	p.items = make(map[string]*Item)
	p.ordered = nil
	if raw == nil {
		return
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return
	}
	for _, entry := range entries {
		var item Item
		if err := json.Unmarshal(entry, &item); err != nil || item.ID == "" {
			continue
		}
		it := item
		p.items[it.ID] = &it
		p.ordered = append(p.ordered, &it)
	}
}

// spaceRef is one space object with its root container ids extracted from
// the alternating marker/identifier sequence.
type spaceRef struct {
	id           string
	title        string
	pinnedRoot   string
	unpinnedRoot string
}

// resolveSpaces parses the raw spaces list and builds the trees of every
// space that designates at least one root container.
func (p *Parser) resolveSpaces(raw json.RawMessage) []model.Space {
	if raw == nil {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	var spaces []model.Space
	untitled := 0
	for _, entry := range entries {
		var obj struct {
			ID              string             `json:"id"`
			Title           *string            `json:"title"`
			NewContainerIDs *[]json.RawMessage `json:"newContainerIDs"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			// Bare references (strings) have no structure to resolve.
			p.log.Debug("skipping non-object space entry")
			continue
		}
		if obj.NewContainerIDs == nil {
			p.log.Debug("skipping space without ordering list", logger.String("space", obj.ID))
			continue
		}

		ref := spaceRef{id: obj.ID}
		if obj.Title != nil {
			ref.title = *obj.Title
		} else {
			untitled++
			ref.title = fmt.Sprintf("Space %d", untitled)
		}
		p.extractRoots(&ref, *obj.NewContainerIDs)

		space := p.buildSpace(ref)
		if len(space.Pinned) > 0 || len(space.Unpinned) > 0 {
			spaces = append(spaces, space)
		}
	}
	return spaces
}

// extractRoots walks the alternating marker/identifier pairs. A marker
// object carrying a "pinned" key designates the next identifier as the
// pinned root; any other marker designates the unpinned root.
func (p *Parser) extractRoots(ref *spaceRef, entries []json.RawMessage) {
	for i := 0; i+1 < len(entries); i++ {
		var marker map[string]json.RawMessage
		if err := json.Unmarshal(entries[i], &marker); err != nil {
			continue
		}
		var containerID string
		if err := json.Unmarshal(entries[i+1], &containerID); err != nil {
			p.log.Debug("marker not followed by container id", logger.String("space", ref.id))
			continue
		}
		if _, ok := marker["pinned"]; ok {
			ref.pinnedRoot = containerID
		} else {
			ref.unpinnedRoot = containerID
		}
	}
}

// buildSpace resolves a space's root containers into bookmark trees.
func (p *Parser) buildSpace(ref spaceRef) model.Space {
	space := model.Space{ID: ref.id, Title: ref.title}
	if ref.pinnedRoot != "" {
		space.Pinned = p.buildTree(ref.pinnedRoot)
	}
	if p.includeUnpinned && ref.unpinnedRoot != "" {
		space.Unpinned = p.buildTree(ref.unpinnedRoot)
	}
	return space
}

// buildTree recursively resolves the ordered children of parentID.
func (p *Parser) buildTree(parentID string) []*model.Node {
	ordered := p.childIDs(parentID)

	var children []*model.Node
	for _, id := range ordered {
		item, ok := p.items[id]
		if !ok {
			p.log.Warn("dangling child reference", logger.String("id", id), logger.String("parent", parentID))
			continue
		}

		switch {
		case item.Data.Tab != nil:
			url := item.Data.Tab.SavedURL
			if url == "" {
				p.log.Warn("tab item without saved URL", logger.String("id", id))
				continue
			}
			children = append(children, model.NewBookmark(id, bookmarkTitle(item), url))

		case item.Title != nil:
			children = append(children, model.NewFolder(id, *item.Title, p.buildTree(id)...))

		default:
			p.log.Warn("item is neither bookmark nor folder", logger.String("id", id))
		}
	}
	return children
}

// childIDs returns the ordered child ids of parentID. When the parent item
// declares no childrenIds, children are collected by back-reference in
// items-array order.
func (p *Parser) childIDs(parentID string) []string {
	if parent, ok := p.items[parentID]; ok && len(parent.ChildrenIDs) > 0 {
		return parent.ChildrenIDs
	}
	var ids []string
	for _, item := range p.ordered {
		if item.ParentID == parentID {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// bookmarkTitle resolves a bookmark's display title: explicit user title,
// then saved page title, then "Untitled".
func bookmarkTitle(item *Item) string {
	if item.Title != nil && *item.Title != "" {
		return *item.Title
	}
	if item.Data.Tab.SavedTitle != "" {
		return item.Data.Tab.SavedTitle
	}
	return "Untitled"
}
