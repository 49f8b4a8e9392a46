package zen

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"arczen/internal/mozlz4"
)

// ErrWorkspaceNotFound means the destination workspace does not exist in
// the session document. Workspace creation is a user-mediated step; the
// merger never creates one silently.
var ErrWorkspaceNotFound = errors.New("zen: destination workspace not present in session document")

// SessionSet holds the bytes of the three physical documents Zen reads
// sessions from: the primary store, the recovery copy, and the recovery
// backup.
type SessionSet struct {
	Session        []byte
	Recovery       []byte
	RecoveryBackup []byte
}

// Merge applies one entity set to every document variant. The workspace
// precondition is checked against the primary document (the only variant
// carrying workspace records) before anything else, so a failure produces
// no bytes at all. The recovery backup is the byte-identical merged
// recovery document.
func (s SessionSet) Merge(ents Entities, workspaceID string, now time.Time) (SessionSet, error) {
	session, err := MergeSession(s.Session, ents, workspaceID, now)
	if err != nil {
		return SessionSet{}, err
	}
	recovery, err := MergeRecovery(s.Recovery, ents, now)
	if err != nil {
		return SessionSet{}, err
	}
	return SessionSet{Session: session, Recovery: recovery, RecoveryBackup: recovery}, nil
}

// Workspaces decodes the primary session document and lists its workspace
// records.
func Workspaces(raw []byte) ([]Workspace, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return workspacesOf(obj)
}

// MergeSession appends the entities to the primary session document and
// refreshes its collection timestamp. Pre-existing entries pass through
// byte for byte; new entries are only ever appended.
func MergeSession(raw []byte, ents Entities, workspaceID string, now time.Time) ([]byte, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	workspaces, err := workspacesOf(obj)
	if err != nil {
		return nil, err
	}
	if !containsWorkspace(workspaces, workspaceID) {
		return nil, fmt.Errorf("%w: %q", ErrWorkspaceNotFound, workspaceID)
	}

	if err := appendEntities(obj, ents); err != nil {
		return nil, err
	}
	obj["lastCollected"] = rawMillis(now)

	return encodeObject(obj)
}

// MergeRecovery appends the entities to the first window of a recovery
// document and refreshes session.lastUpdate.
func MergeRecovery(raw []byte, ents Entities, now time.Time) ([]byte, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	var windows []json.RawMessage
	if windowsRaw, ok := obj["windows"]; ok {
		if err := json.Unmarshal(windowsRaw, &windows); err != nil {
			return nil, fmt.Errorf("%w: windows is not an array: %v", mozlz4.ErrCorrupt, err)
		}
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: recovery document has no windows", mozlz4.ErrCorrupt)
	}

	var win map[string]json.RawMessage
	if err := json.Unmarshal(windows[0], &win); err != nil {
		return nil, fmt.Errorf("%w: invalid window object: %v", mozlz4.ErrCorrupt, err)
	}
	if err := appendEntities(win, ents); err != nil {
		return nil, err
	}

	winBytes, err := json.Marshal(win)
	if err != nil {
		return nil, err
	}
	windows[0] = winBytes
	windowsBytes, err := json.Marshal(windows)
	if err != nil {
		return nil, err
	}
	obj["windows"] = windowsBytes

	session, err := json.Marshal(struct {
		LastUpdate int64 `json:"lastUpdate"`
	}{LastUpdate: now.UnixMilli()})
	if err != nil {
		return nil, err
	}
	obj["session"] = session

	return encodeObject(obj)
}

// decodeObject unwraps a mozlz4 document into its top-level object, keeping
// every value raw so untouched content survives unmodified.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	jsonBytes, err := mozlz4.Decode(raw)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &obj); err != nil {
		return nil, fmt.Errorf("%w: invalid session JSON: %v", mozlz4.ErrCorrupt, err)
	}
	return obj, nil
}

func encodeObject(obj map[string]json.RawMessage) ([]byte, error) {
	jsonBytes, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return mozlz4.Encode(jsonBytes)
}

func workspacesOf(obj map[string]json.RawMessage) ([]Workspace, error) {
	spacesRaw, ok := obj["spaces"]
	if !ok {
		return nil, nil
	}
	var workspaces []Workspace
	if err := json.Unmarshal(spacesRaw, &workspaces); err != nil {
		return nil, fmt.Errorf("%w: spaces is not an array: %v", mozlz4.ErrCorrupt, err)
	}
	return workspaces, nil
}

func containsWorkspace(workspaces []Workspace, id string) bool {
	for _, ws := range workspaces {
		if ws.UUID == id {
			return true
		}
	}
	return false
}

// appendEntities appends the new tabs, folders, and groups to the object's
// arrays, creating a missing array rather than failing.
func appendEntities(obj map[string]json.RawMessage, ents Entities) error {
	if err := appendArray(obj, "tabs", len(ents.Tabs), func(i int) any { return ents.Tabs[i] }); err != nil {
		return err
	}
	if err := appendArray(obj, "folders", len(ents.Folders), func(i int) any { return ents.Folders[i] }); err != nil {
		return err
	}
	return appendArray(obj, "groups", len(ents.Groups), func(i int) any { return ents.Groups[i] })
}

func appendArray(obj map[string]json.RawMessage, key string, count int, item func(int) any) error {
	var arr []json.RawMessage
	if existing, ok := obj[key]; ok && string(existing) != "null" {
		if err := json.Unmarshal(existing, &arr); err != nil {
			return fmt.Errorf("%w: %s is not an array: %v", mozlz4.ErrCorrupt, key, err)
		}
	}
	for i := 0; i < count; i++ {
		data, err := json.Marshal(item(i))
		if err != nil {
			return err
		}
		arr = append(arr, data)
	}
	out, err := json.Marshal(arr)
	if err != nil {
		return err
	}
	obj[key] = out
	return nil
}

func rawMillis(now time.Time) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%d", now.UnixMilli()))
}
