package arc_test

import (
	"errors"
	"testing"

	"arczen/internal/arc"
	"arczen/internal/logger"
	"arczen/internal/model"
)

// sidebarDoc is a minimal but structurally faithful sidebar document: one
// container with one space whose pinned root "c1" holds a bookmark, a
// folder with a nested bookmark, and an unpinned root "c2".
const sidebarDoc = `{
  "sidebar": {
    "containers": [
      "legacy-reference",
      {
        "global": {},
        "spaces": [
          "space-ref-string",
          {"id": "sp-noorder"},
          {
            "id": "sp1",
            "title": "Work",
            "newContainerIDs": [{"pinned": true}, "c1", {"unpinned": true}, "c2"]
          }
        ],
        "items": [
          {"id": "c1", "childrenIds": ["b1", "f1"]},
          {"id": "c2", "childrenIds": ["b9"]},
          {"id": "b1", "parentID": "c1", "title": "Docs", "data": {"tab": {"savedTitle": "Documentation", "savedURL": "https://docs.test"}}},
          {"id": "f1", "parentID": "c1", "title": "Tools", "childrenIds": ["b2", "ghost"]},
          {"id": "b2", "parentID": "f1", "data": {"tab": {"savedTitle": "Example", "savedURL": "https://example.test"}}},
          {"id": "b9", "parentID": "c2", "data": {"tab": {"savedURL": "https://unpinned.test"}}}
        ]
      }
    ]
  }
}`

func parseDoc(t *testing.T, doc string, includeUnpinned bool) []model.Profile {
	t.Helper()
	p := arc.NewParser(logger.Nop(), includeUnpinned)
	profiles, err := p.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return profiles
}

func TestParse_PinnedTree(t *testing.T) {
	profiles := parseDoc(t, sidebarDoc, false)

	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Label != "Main Profile" {
		t.Errorf("expected Main Profile for global container, got %q", profiles[0].Label)
	}

	spaces := profiles[0].Spaces
	if len(spaces) != 1 {
		t.Fatalf("expected 1 space, got %d", len(spaces))
	}
	space := spaces[0]
	if space.Title != "Work" {
		t.Errorf("expected space title Work, got %q", space.Title)
	}
	if space.Unpinned != nil {
		t.Error("unpinned root should not be resolved by default")
	}

	if len(space.Pinned) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(space.Pinned))
	}
	if space.Pinned[0].Title != "Docs" || space.Pinned[0].URL != "https://docs.test" {
		t.Errorf("unexpected first node: %+v", space.Pinned[0])
	}

	folder := space.Pinned[1]
	if !folder.IsFolder() || folder.Title != "Tools" {
		t.Fatalf("expected folder Tools, got %+v", folder)
	}
	// "ghost" is a dangling reference and must be skipped, not fatal.
	if len(folder.Children) != 1 {
		t.Fatalf("expected 1 child after skipping dangling id, got %d", len(folder.Children))
	}
	if folder.Children[0].URL != "https://example.test" {
		t.Errorf("unexpected nested bookmark: %+v", folder.Children[0])
	}
}

func TestParse_MarkerPairsSelectRoots(t *testing.T) {
	profiles := parseDoc(t, sidebarDoc, true)

	space := profiles[0].Spaces[0]
	if len(space.Unpinned) != 1 {
		t.Fatalf("expected unpinned root c2 resolved, got %d nodes", len(space.Unpinned))
	}
	if space.Unpinned[0].URL != "https://unpinned.test" {
		t.Errorf("unexpected unpinned bookmark: %+v", space.Unpinned[0])
	}
}

func TestParse_TitleFallback(t *testing.T) {
	profiles := parseDoc(t, sidebarDoc, true)
	space := profiles[0].Spaces[0]

	// Explicit title wins over savedTitle.
	if space.Pinned[0].Title != "Docs" {
		t.Errorf("expected explicit title, got %q", space.Pinned[0].Title)
	}
	// No explicit title: savedTitle.
	if got := space.Pinned[1].Children[0].Title; got != "Example" {
		t.Errorf("expected savedTitle fallback, got %q", got)
	}
	// Neither: "Untitled".
	if got := space.Unpinned[0].Title; got != "Untitled" {
		t.Errorf("expected Untitled fallback, got %q", got)
	}
}

func TestParse_SkipsUnresolvableSpaces(t *testing.T) {
	// Both the bare-string entry and the object without newContainerIDs are
	// skipped; only sp1 survives.
	profiles := parseDoc(t, sidebarDoc, false)
	if len(profiles[0].Spaces) != 1 {
		t.Errorf("expected exactly 1 resolved space, got %d", len(profiles[0].Spaces))
	}
}

func TestParse_UntitledSpaceNaming(t *testing.T) {
	doc := `{
	  "sidebar": {
	    "containers": [{
	      "spaces": [
	        {"id": "s1", "newContainerIDs": [{"pinned": true}, "r1"]},
	        {"id": "s2", "newContainerIDs": [{"pinned": true}, "r2"]}
	      ],
	      "items": [
	        {"id": "r1", "childrenIds": ["a"]},
	        {"id": "r2", "childrenIds": ["b"]},
	        {"id": "a", "data": {"tab": {"savedURL": "https://a.test"}}},
	        {"id": "b", "data": {"tab": {"savedURL": "https://b.test"}}}
	      ]
	    }]
	  }
	}`
	profiles := parseDoc(t, doc, false)

	spaces := profiles[0].Spaces
	if len(spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(spaces))
	}
	if spaces[0].Title != "Space 1" || spaces[1].Title != "Space 2" {
		t.Errorf("unexpected default titles: %q, %q", spaces[0].Title, spaces[1].Title)
	}
	if profiles[0].Label != "Profile 1" {
		t.Errorf("expected Profile 1 for non-global container, got %q", profiles[0].Label)
	}
}

func TestParse_MissingSidebarIsSchemaError(t *testing.T) {
	p := arc.NewParser(logger.Nop(), false)

	profiles, err := p.Parse([]byte(`{"version": 2}`))
	if !errors.Is(err, arc.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
	if profiles != nil {
		t.Error("expected no partial result on schema error")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	p := arc.NewParser(logger.Nop(), false)
	if _, err := p.Parse([]byte(`{"sidebar": `)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParse_FallbackChildOrderIsDeterministic(t *testing.T) {
	// Root item "r1" exists but declares no childrenIds; children are
	// collected by parentID back-reference in items-array order.
	doc := `{
	  "sidebar": {
	    "containers": [{
	      "spaces": [{"id": "s1", "title": "S", "newContainerIDs": [{"pinned": true}, "r1"]}],
	      "items": [
	        {"id": "r1"},
	        {"id": "x", "parentID": "r1", "data": {"tab": {"savedURL": "https://x.test"}}},
	        {"id": "y", "parentID": "r1", "data": {"tab": {"savedURL": "https://y.test"}}},
	        {"id": "z", "parentID": "other", "data": {"tab": {"savedURL": "https://z.test"}}}
	      ]
	    }]
	  }
	}`
	profiles := parseDoc(t, doc, false)

	urls := model.FlattenURLs(profiles[0].Spaces[0].Pinned)
	if len(urls) != 2 || urls[0] != "https://x.test" || urls[1] != "https://y.test" {
		t.Errorf("unexpected fallback order: %v", urls)
	}
}
