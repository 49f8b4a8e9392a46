package model

// Space is one Arc space resolved from a container: a named pair of ordered
// bookmark trees, one for pinned items and (optionally) one for unpinned.
type Space struct {
	ID       string
	Title    string
	Pinned   []*Node
	Unpinned []*Node // populated only when unpinned inclusion is requested
}

// Profile groups the spaces of one sidebar container.
type Profile struct {
	Label  string // "Main Profile" or "Profile {n}"
	Spaces []Space
}
