package output

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// minDescriptionColumn is the leftmost column descriptions start at.
	minDescriptionColumn = 30
)

// TreeNode represents a node in the file tree.
type TreeNode struct {
	Name        string
	Description string
	IsDir       bool
	Children    []*TreeNode
}

type treeLine struct {
	text        string
	description string
}

// RenderFileTree renders the planned files of a project under rootName.
// Files maps slash-separated relative paths to descriptions. Descriptions are
// aligned one column past the longest line, and never before column 30.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &TreeNode{Name: rootName, IsDir: true}
	for path, desc := range files {
		insert(root, strings.Split(filepath.ToSlash(path), "/"), desc)
	}
	sortTree(root)

	var lines []treeLine
	collect(&lines, root, "", true, true)

	column := minDescriptionColumn
	for _, l := range lines {
		if w := utf8.RuneCountInString(l.text) + 2; l.description != "" && w > column {
			column = w
		}
	}

	styles := GetStyles()
	var sb strings.Builder
	for i, l := range lines {
		if i == 0 {
			sb.WriteString(styles.Bold.Render(l.text))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(l.text)
		if l.description != "" {
			sb.WriteString(strings.Repeat(" ", column-utf8.RuneCountInString(l.text)))
			sb.WriteString(styles.Muted.Render(l.description))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func insert(node *TreeNode, parts []string, desc string) {
	for i, part := range parts {
		isLast := i == len(parts)-1

		var child *TreeNode
		for _, c := range node.Children {
			if c.Name == part {
				child = c
				break
			}
		}
		if child == nil {
			child = &TreeNode{Name: part, IsDir: !isLast}
			node.Children = append(node.Children, child)
		}
		if isLast {
			child.Description = desc
		}
		node = child
	}
}

// sortTree recursively sorts tree nodes (directories first, then alphabetically).
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		sortTree(child)
	}
}

func collect(lines *[]treeLine, node *TreeNode, prefix string, isRoot, isLast bool) {
	name := node.Name
	if node.IsDir {
		name += "/"
	}

	if isRoot {
		*lines = append(*lines, treeLine{text: name})
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}
		*lines = append(*lines, treeLine{text: prefix + connector + name, description: node.Description})
	}

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		collect(lines, child, childPrefix, false, i == len(node.Children)-1)
	}
}
