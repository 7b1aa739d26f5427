// Package tree projects a parsed JSON value into a display tree for
// rendering collaborators. It carries no visual state: collapsing,
// clipboard wiring and styling belong to the consumer.
package tree

import (
	"fmt"
	"strconv"

	"devfmt/internal/highlight"
	"devfmt/internal/jsonfmt"
	"devfmt/internal/models"
)

// Kind names the JSON type of a node.
type Kind string

const (
	KindObject Kind = "object"
	KindArray  Kind = "array"
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "boolean"
	KindNull   Kind = "null"
)

// Node is one entry in the projected tree.
type Node struct {
	// Path locates the node from the root, e.g. $.users[0].name.
	Path string
	// Key is the object key or array index that owns this node;
	// empty for the root.
	Key      string
	Kind     Kind
	Value    models.Value
	Children []*Node
}

// Build projects a parsed value into a tree rooted at path "$".
// Children appear in source order.
func Build(v models.Value) *Node {
	return build(v, "$", "")
}

func build(v models.Value, path, key string) *Node {
	n := &Node{Path: path, Key: key, Kind: kindOf(v), Value: v}

	switch val := v.(type) {
	case *models.Object:
		for _, m := range val.Members() {
			n.Children = append(n.Children, build(m.Value, path+"."+m.Key, m.Key))
		}
	case models.Array:
		for i, item := range val {
			idx := strconv.Itoa(i)
			n.Children = append(n.Children, build(item, path+"["+idx+"]", idx))
		}
	}
	return n
}

func kindOf(v models.Value) Kind {
	switch v.(type) {
	case *models.Object:
		return KindObject
	case models.Array:
		return KindArray
	case string:
		return KindString
	case models.Number:
		return KindNumber
	case bool:
		return KindBool
	default:
		return KindNull
	}
}

// Flatten returns the node and all of its descendants depth-first, in
// source order.
func Flatten(n *Node) []*Node {
	out := []*Node{n}
	for _, c := range n.Children {
		out = append(out, Flatten(c)...)
	}
	return out
}

// Text serializes the node's subtree, for the copy-node action.
func (n *Node) Text(indent int) (string, error) {
	return jsonfmt.Serialize(n.Value, indent)
}

// Pair serializes the node as a `"key": value` fragment, for the
// copy-key-and-value action. Nodes without an object key (the root and
// array elements) fall back to the bare value.
func (n *Node) Pair(indent int) (string, error) {
	text, err := n.Text(indent)
	if err != nil {
		return "", err
	}
	if n.Key == "" || n.Path == "$" || isIndexKey(n) {
		return text, nil
	}
	return fmt.Sprintf("%q: %s", n.Key, text), nil
}

// Preview produces a short single-line summary for a collapsed node.
func (n *Node) Preview() string {
	switch n.Kind {
	case KindObject:
		if len(n.Children) == 1 {
			return "{1 key}"
		}
		return fmt.Sprintf("{%d keys}", len(n.Children))
	case KindArray:
		if len(n.Children) == 1 {
			return "[1 item]"
		}
		return fmt.Sprintf("[%d items]", len(n.Children))
	default:
		return jsonfmt.Compact(n.Value)
	}
}

// Match records where a search query occurs within a node.
type Match struct {
	Node *Node
	// InKey is true when the query matched the node's key rather than
	// its value.
	InKey bool
	// Offsets are byte positions of each occurrence, overlapping
	// occurrences included.
	Offsets []int
}

// Find walks the tree depth-first and reports every node whose key or
// scalar value contains the query, case-insensitively.
func Find(root *Node, query string) []Match {
	if query == "" {
		return nil
	}
	var out []Match
	for _, n := range Flatten(root) {
		if offs := highlight.Search(n.Key, query); len(offs) > 0 {
			out = append(out, Match{Node: n, InKey: true, Offsets: offs})
		}
		if n.Kind == KindObject || n.Kind == KindArray {
			continue
		}
		if offs := highlight.Search(jsonfmt.Compact(n.Value), query); len(offs) > 0 {
			out = append(out, Match{Node: n, Offsets: offs})
		}
	}
	return out
}

func isIndexKey(n *Node) bool {
	_, err := strconv.Atoi(n.Key)
	return err == nil && len(n.Path) > 0 && n.Path[len(n.Path)-1] == ']'
}
