package exporter

import (
	"strings"
	"testing"

	"arczen/internal/model"
)

func TestExportHTML_Empty(t *testing.T) {
	html := ExportHTML(nil)

	// Should have basic structure even when empty
	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Bookmarks</TITLE>") {
		t.Error("expected TITLE element")
	}
	if !strings.Contains(html, "<H1>Bookmarks</H1>") {
		t.Error("expected H1 element")
	}
}

func TestExportHTML_SingleBookmark(t *testing.T) {
	html := ExportHTML([]*model.Node{
		model.NewBookmark("b1", "GitHub", "https://github.com"),
	})

	if !strings.Contains(html, `<A HREF="https://github.com"`) {
		t.Error("expected bookmark URL")
	}
	if !strings.Contains(html, "GitHub</A>") {
		t.Error("expected bookmark title")
	}
}

func TestExportHTML_NestedFolders(t *testing.T) {
	html := ExportHTML([]*model.Node{
		model.NewFolder("f1", "Development",
			model.NewFolder("f2", "React",
				model.NewBookmark("b1", "TanStack Router", "https://tanstack.com/router"),
			),
		),
	})

	devIdx := strings.Index(html, "Development</H3>")
	reactIdx := strings.Index(html, "React</H3>")
	tanstackIdx := strings.Index(html, "TanStack Router</A>")

	if devIdx == -1 || reactIdx == -1 || tanstackIdx == -1 {
		t.Fatal("missing elements in output")
	}
	if devIdx >= reactIdx || reactIdx >= tanstackIdx {
		t.Error("expected proper nesting order: Development > React > TanStack Router")
	}
}

func TestExportHTML_PreservesSiblingOrder(t *testing.T) {
	html := ExportHTML([]*model.Node{
		model.NewBookmark("b1", "First", "https://1.test"),
		model.NewFolder("f1", "Mid",
			model.NewBookmark("b2", "Second", "https://2.test"),
		),
		model.NewBookmark("b3", "Third", "https://3.test"),
	})

	firstIdx := strings.Index(html, "First</A>")
	midIdx := strings.Index(html, "Mid</H3>")
	thirdIdx := strings.Index(html, "Third</A>")

	if firstIdx == -1 || midIdx == -1 || thirdIdx == -1 {
		t.Fatal("missing elements in output")
	}
	if firstIdx >= midIdx || midIdx >= thirdIdx {
		t.Error("expected tree order to survive: First, Mid, Third")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	html := ExportHTML([]*model.Node{
		model.NewBookmark("b1",
			"Test <script>alert('xss')</script>",
			"https://example.com?foo=bar&baz=qux",
		),
	})

	// Title should be escaped
	if strings.Contains(html, "<script>") {
		t.Error("script tag should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}

	// URL should be escaped
	if strings.Contains(html, "foo=bar&baz") {
		t.Error("ampersand should be escaped in URL")
	}
	if !strings.Contains(html, "foo=bar&amp;baz") {
		t.Error("expected escaped ampersand in URL")
	}
}

func TestExportHTML_BalancedLists(t *testing.T) {
	html := ExportHTML([]*model.Node{
		model.NewFolder("f1", "A",
			model.NewFolder("f2", "B"),
		),
	})

	opens := strings.Count(html, "<DL><p>")
	closes := strings.Count(html, "</DL><p>")
	if opens != closes {
		t.Errorf("unbalanced DL lists: %d opens, %d closes", opens, closes)
	}
}
