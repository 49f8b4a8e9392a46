package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"arczen/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into an ordered tree.
// Sibling order follows document order, folders and links interleaved as
// written.
func ParseHTMLBookmarks(r io.Reader) ([]*model.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("importer: invalid HTML: %w", err)
	}

	var roots []*model.Node

	// Stack of open folders; appends target the top, or the root list
	// when empty. An H3 stays pending until its DL opens.
	var stack []*model.Node
	var pending *model.Node

	appendNode := func(n *model.Node) {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, n)
			return
		}
		roots = append(roots, n)
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				if name := getTextContent(n); name != "" {
					folder := model.NewFolder(uuid.NewString(), name)
					appendNode(folder)
					pending = folder
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}
				title := getTextContent(n)
				if title == "" {
					title = href
				}
				appendNode(model.NewBookmark(uuid.NewString(), title, href))
				return

			case "dl":
				// A DL opens the contents of the pending folder.
				pushed := false
				if pending != nil {
					stack = append(stack, pending)
					pending = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return roots, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
