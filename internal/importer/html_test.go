package importer_test

import (
	"strings"
	"testing"

	"arczen/internal/exporter"
	"arczen/internal/importer"
	"arczen/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	nodes, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}

	b := nodes[0]
	if b.IsFolder() {
		t.Fatal("expected a bookmark, got a folder")
	}
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	nodes, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Root level: Development folder, then Google.
	if len(nodes) != 2 {
		t.Fatalf("expected 2 root nodes, got %d", len(nodes))
	}

	dev := nodes[0]
	if !dev.IsFolder() || dev.Title != "Development" {
		t.Fatalf("expected Development folder first, got %q", dev.Title)
	}
	if nodes[1].Title != "Google" || nodes[1].IsFolder() {
		t.Errorf("expected Google bookmark at root, got %q", nodes[1].Title)
	}

	// Development: React folder, then GitHub.
	if len(dev.Children) != 2 {
		t.Fatalf("expected 2 children in Development, got %d", len(dev.Children))
	}
	react := dev.Children[0]
	if !react.IsFolder() || react.Title != "React" {
		t.Fatalf("expected React folder inside Development, got %q", react.Title)
	}
	if dev.Children[1].Title != "GitHub" {
		t.Errorf("expected GitHub inside Development, got %q", dev.Children[1].Title)
	}

	if len(react.Children) != 1 || react.Children[0].Title != "React Docs" {
		t.Error("expected React Docs inside React")
	}
}

func TestParseHTML_EmptyFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	nodes, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(nodes) != 0 {
		t.Errorf("expected 0 nodes, got %d", len(nodes))
	}
}

func TestParseHTML_MissingHref(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="https://valid.com" ADD_DATE="1234567890">Valid</A>
</DL><p>`

	nodes, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should skip bookmark without HREF, keep valid one
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node (skip missing href), got %d", len(nodes))
	}

	if nodes[0].Title != "Valid" {
		t.Errorf("expected 'Valid' bookmark, got %q", nodes[0].Title)
	}
}

func TestParseHTML_TitleFallsBackToURL(t *testing.T) {
	html := `<DL><p><DT><A HREF="https://untitled.test"></A></DL><p>`

	nodes, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Title != "https://untitled.test" {
		t.Fatalf("expected URL used as title, got %+v", nodes)
	}
}

func TestParseHTML_RoundTripWithExporter(t *testing.T) {
	tree := []*model.Node{
		model.NewBookmark("b1", "First", "https://1.test"),
		model.NewFolder("f1", "Mid",
			model.NewBookmark("b2", "Second", "https://2.test"),
			model.NewFolder("f2", "Deep",
				model.NewBookmark("b3", "Third", "https://3.test"),
			),
		),
		model.NewBookmark("b4", "Fourth", "https://4.test"),
	}

	nodes, err := importer.ParseHTMLBookmarks(strings.NewReader(exporter.ExportHTML(tree)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := model.FlattenURLs(nodes)
	want := model.FlattenURLs(tree)
	if len(got) != len(want) {
		t.Fatalf("expected %d urls, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if !nodes[1].IsFolder() || nodes[1].Title != "Mid" {
		t.Error("expected folder structure to survive the round trip")
	}
}
