package content

import (
	"strings"
)

// NodeType distinguishes folders from post leaves in the category tree.
type NodeType string

const (
	NodeFolder NodeType = "folder"
	NodeFile   NodeType = "file"
)

// TreeNode is one entry of the sidebar tree.
type TreeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     NodeType    `json:"type"`
	Path     string      `json:"path"`
	Children []*TreeNode `json:"children,omitempty"`
}

func (n *TreeNode) IsFolder() bool {
	return n.Type == NodeFolder
}

// Collision records a post that replaced an earlier leaf with the same
// title under the same category.
type Collision struct {
	Category string
	Title    string
	Replaced string
	By       string
}

// level keeps one tree level's nodes keyed by name, in first-insertion order.
type level struct {
	keys  []string
	nodes map[string]*TreeNode
	sub   map[string]*level
}

func newLevel() *level {
	return &level{nodes: map[string]*TreeNode{}, sub: map[string]*level{}}
}

func (l *level) put(key string, node *TreeNode) (previous *TreeNode) {
	previous, ok := l.nodes[key]
	if !ok {
		l.keys = append(l.keys, key)
	}
	l.nodes[key] = node
	return previous
}

func (l *level) folder(name, folderPath string) *level {
	if existing, ok := l.nodes[name]; ok && existing.IsFolder() {
		return l.sub[name]
	}
	l.put(name, &TreeNode{ID: name, Name: name, Type: NodeFolder, Path: folderPath})
	child := newLevel()
	l.sub[name] = child
	return child
}

func (l *level) materialize() []*TreeNode {
	out := make([]*TreeNode, 0, len(l.keys))
	for _, key := range l.keys {
		node := l.nodes[key]
		if node.IsFolder() {
			if sub, ok := l.sub[key]; ok {
				node.Children = sub.materialize()
			}
			if node.Children == nil {
				node.Children = []*TreeNode{}
			}
		}
		out = append(out, node)
	}
	return out
}

// BuildCategoryTree groups posts into nested folders by their
// slash-separated category.
func BuildCategoryTree(posts []*Post) []*TreeNode {
	nodes, _ := BuildCategoryTreeWithReport(posts)
	return nodes
}

// BuildCategoryTreeWithReport is BuildCategoryTree that also reports title
// collisions. A later post replaces an earlier leaf with the same title in
// the same folder, keeping the earlier leaf's position.
func BuildCategoryTreeWithReport(posts []*Post) ([]*TreeNode, []Collision) {
	root := newLevel()
	var collisions []Collision

	for _, post := range posts {
		if post == nil {
			continue
		}
		segments := categorySegments(post.Category)
		current := root
		for i, segment := range segments {
			current = current.folder(segment, "/"+strings.Join(segments[:i+1], "/"))
		}

		leaf := &TreeNode{
			ID:   post.Slug,
			Name: post.Title,
			Type: NodeFile,
			Path: "/posts/" + post.Slug,
		}
		if previous := current.put(post.Title, leaf); previous != nil {
			if previous.IsFolder() {
				delete(current.sub, post.Title)
			}
			collisions = append(collisions, Collision{
				Category: strings.Join(segments, "/"),
				Title:    post.Title,
				Replaced: previous.ID,
				By:       post.Slug,
			})
		}
	}
	return root.materialize(), collisions
}

// categorySegments splits on '/' and keeps every segment verbatim, so
// "a//b" has an empty middle folder and " a " is distinct from "a".
func categorySegments(category string) []string {
	return strings.Split(category, "/")
}
