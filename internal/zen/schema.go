package zen

import "encoding/json"

// Workspace is one workspace record of the primary session document.
type Workspace struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// TabEntry is one history entry of a tab. Placeholder tabs carry only a URL
// and an empty title; content tabs carry full navigation state. The optional
// fields are pointers so placeholder entries serialize without them.
type TabEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	CacheKey            *int            `json:"cacheKey,omitempty"`
	ID                  *int            `json:"ID,omitempty"`
	DocshellUUID        string          `json:"docshellUUID,omitempty"`
	ResultPrincipalURI  json.RawMessage `json:"resultPrincipalURI,omitempty"`
	HasUserInteraction  *bool           `json:"hasUserInteraction,omitempty"`
	TriggeringPrincipal string          `json:"triggeringPrincipal_base64,omitempty"`
	DocIdentifier       *int            `json:"docIdentifier,omitempty"`
	Transient           *bool           `json:"transient,omitempty"`
	NavigationKey       string          `json:"navigationKey,omitempty"`
	NavigationID        string          `json:"navigationId,omitempty"`
}

// InitialEntry is the snapshot Zen keeps of a pinned tab's original page.
type InitialEntry struct {
	URL                 string `json:"url"`
	Title               string `json:"title"`
	CacheKey            int    `json:"cacheKey"`
	ID                  int    `json:"ID"`
	TriggeringPrincipal string `json:"triggeringPrincipal_base64"`
}

// PinnedInitialState wraps the initial entry of a pinned content tab.
type PinnedInitialState struct {
	Entry InitialEntry    `json:"entry"`
	Image json.RawMessage `json:"image"`
}

// Tab is one session tab. Placeholder tabs (IsEmpty) anchor otherwise
// tab-less folders; content tabs hold a migrated bookmark.
type Tab struct {
	Entries              []TabEntry          `json:"entries"`
	LastAccessed         int64               `json:"lastAccessed"`
	Pinned               bool                `json:"pinned"`
	Hidden               bool                `json:"hidden"`
	GroupID              string              `json:"groupId,omitempty"`
	Workspace            string              `json:"zenWorkspace"`
	SyncID               string              `json:"zenSyncId"`
	Essential            bool                `json:"zenEssential"`
	DefaultUserContextID json.RawMessage     `json:"zenDefaultUserContextId"`
	PinnedIcon           json.RawMessage     `json:"zenPinnedIcon"`
	IsEmpty              bool                `json:"zenIsEmpty"`
	HasStaticIcon        bool                `json:"zenHasStaticIcon"`
	GlanceID             json.RawMessage     `json:"zenGlanceId"`
	IsGlance             bool                `json:"zenIsGlance"`
	PinnedInitialState   *PinnedInitialState `json:"_zenPinnedInitialState,omitempty"`
	SearchMode           json.RawMessage     `json:"searchMode"`
	UserContextID        int                 `json:"userContextId"`
	Attributes           map[string]any      `json:"attributes"`
	Index                int                 `json:"index"`
	UserTypedValue       string              `json:"userTypedValue"`
	UserTypedClear       int                 `json:"userTypedClear"`
	Image                json.RawMessage     `json:"image"`
}

// PrevSiblingInfo encodes folder order among siblings: the first folder
// points at "start", every other folder points at the folder before it.
type PrevSiblingInfo struct {
	Type string  `json:"type"` // "start" or "folder"
	ID   *string `json:"id"`
}

// Folder is one session folder. EmptyTabIDs lists the placeholder tab ids
// of this folder and of every descendant folder.
type Folder struct {
	Pinned            bool            `json:"pinned"`
	SplitViewGroup    bool            `json:"splitViewGroup"`
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Collapsed         bool            `json:"collapsed"`
	SaveOnWindowClose bool            `json:"saveOnWindowClose"`
	ParentID          *string         `json:"parentId"`
	PrevSibling       PrevSiblingInfo `json:"prevSiblingInfo"`
	EmptyTabIDs       []string        `json:"emptyTabIds"`
	UserIcon          string          `json:"userIcon"`
	WorkspaceID       string          `json:"workspaceId"`
}

// Group is the visual twin of a Folder; the two always share an id and are
// created together.
type Group struct {
	Pinned            bool   `json:"pinned"`
	SplitView         bool   `json:"splitView"`
	ID                string `json:"id"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	Collapsed         bool   `json:"collapsed"`
	SaveOnWindowClose bool   `json:"saveOnWindowClose"`
}
