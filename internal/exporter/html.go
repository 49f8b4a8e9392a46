package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arczen/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/<prefix>-YYYY-MM-DD.html
func DefaultExportPath(prefix string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s-%s.html", prefix, time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the tree to Netscape bookmark HTML format. Folder
// nesting and link order mirror the tree exactly.
func ExportHTML(nodes []*model.Node) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeNodes(&b, nodes, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeNodes recursively writes folders and bookmarks in tree order.
func writeNodes(b *strings.Builder, nodes []*model.Node, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, node := range nodes {
		if node.IsFolder() {
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(node.Title))
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)
			writeNodes(b, node.Children, indent+1)
			fmt.Fprintf(b, "%s</DL><p>\n", prefix)
			continue
		}
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\">%s</A>\n",
			prefix,
			html.EscapeString(node.URL),
			html.EscapeString(node.Title),
		)
	}
}
