package model

// NodeKind discriminates the two variants of a bookmark tree node.
type NodeKind int

const (
	KindFolder NodeKind = iota
	KindBookmark
)

// Node is one entry in an ordered bookmark tree. A node carrying a URL is a
// bookmark; anything else is a folder that may hold children. Children order
// is display order and is preserved end-to-end.
type Node struct {
	Kind     NodeKind
	ID       string // opaque source identifier
	Title    string
	URL      string  // bookmarks only
	Children []*Node // folders only
}

// NewBookmark creates a bookmark leaf node.
func NewBookmark(id, title, url string) *Node {
	return &Node{Kind: KindBookmark, ID: id, Title: title, URL: url}
}

// NewFolder creates a folder node with the given children.
func NewFolder(id, title string, children ...*Node) *Node {
	return &Node{Kind: KindFolder, ID: id, Title: title, Children: children}
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// CountBookmarks returns the number of bookmarks in the subtree rooted at n,
// including n itself.
func CountBookmarks(nodes []*Node) int {
	count := 0
	for _, n := range nodes {
		if n.IsFolder() {
			count += CountBookmarks(n.Children)
		} else {
			count++
		}
	}
	return count
}

// CountFolders returns the number of folders among nodes and their subtrees.
func CountFolders(nodes []*Node) int {
	count := 0
	for _, n := range nodes {
		if n.IsFolder() {
			count += 1 + CountFolders(n.Children)
		}
	}
	return count
}

// FlattenURLs returns the bookmark URLs of the trees in depth-first order.
func FlattenURLs(nodes []*Node) []string {
	var urls []string
	for _, n := range nodes {
		if n.IsFolder() {
			urls = append(urls, FlattenURLs(n.Children)...)
		} else {
			urls = append(urls, n.URL)
		}
	}
	return urls
}
