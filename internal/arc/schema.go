package arc

import "encoding/json"

// Document is the top level of Arc's StorableSidebar.json. Containers are
// kept raw because the list mixes objects with other shapes.
type Document struct {
	Sidebar Sidebar `json:"sidebar"`
}

// Sidebar holds the profile containers.
type Sidebar struct {
	Containers []json.RawMessage `json:"containers"`
}

// Item is one entry of a container's flat items list. An item with tab data
// is a bookmark; an item with a title (and no tab data) is a folder.
type Item struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title"`
	ParentID    string   `json:"parentID"`
	ChildrenIDs []string `json:"childrenIds"`
	Data        ItemData `json:"data"`
}

// ItemData wraps the optional tab payload.
type ItemData struct {
	Tab *TabData `json:"tab"`
}

// TabData carries the saved page state of a bookmark item.
type TabData struct {
	SavedTitle string `json:"savedTitle"`
	SavedURL   string `json:"savedURL"`
}
