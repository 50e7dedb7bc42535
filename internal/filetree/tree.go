// Package filetree rebuilds a nested directory hierarchy from flat repository paths.
package filetree

import (
	"strings"

	"github.com/repo-insights/internal/github"
)

// Node types.
const (
	File = "file"
	Dir  = "dir"
)

// PathEntry is one flat repository path with its declared type.
type PathEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Node is a file or directory. Children keep first-seen order and are unique by name.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Type     string  `json:"type"`
	Children []*Node `json:"children,omitempty"`

	index map[string]*Node
}

// Build returns the root of the hierarchy described by entries.
// Intermediate directories are created the first time a path below them is seen.
func Build(entries []PathEntry) *Node {
	root := &Node{Type: Dir}
	for _, e := range entries {
		segments := splitPath(e.Path)
		if len(segments) == 0 {
			continue
		}
		parent := root
		for i, name := range segments[:len(segments)-1] {
			parent = parent.child(name, strings.Join(segments[:i+1], "/"), Dir)
		}
		typ := e.Type
		if typ != Dir {
			typ = File
		}
		parent.child(segments[len(segments)-1], strings.Join(segments, "/"), typ)
	}
	return root
}

// FromTree converts git tree entries: trees become directories, blobs and submodules files.
func FromTree(entries []github.TreeEntry) []PathEntry {
	out := make([]PathEntry, 0, len(entries))
	for _, e := range entries {
		typ := File
		if e.Type == "tree" {
			typ = Dir
		}
		out = append(out, PathEntry{Path: e.Path, Type: typ})
	}
	return out
}

// Find returns the node at path, or nil.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, name := range splitPath(path) {
		if cur.index == nil {
			return nil
		}
		next, ok := cur.index[name]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Walk visits n and its descendants depth-first in child order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// child returns the child called name, creating it with typ when absent.
// An existing file that gains children becomes a directory.
func (n *Node) child(name, path, typ string) *Node {
	if n.index == nil {
		n.index = make(map[string]*Node)
	}
	n.Type = Dir
	if c, ok := n.index[name]; ok {
		if typ == Dir {
			c.Type = Dir
		}
		return c
	}
	c := &Node{Name: name, Path: path, Type: typ}
	n.index[name] = c
	n.Children = append(n.Children, c)
	return c
}

func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, s := range parts {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
