// File: internal/sentence/sentence.go
package sentence

import (
	"fmt"
	"os"

	json "github.com/json-iterator/go"
)

// Fine-grained tags the solvers look for directly.
const (
	FineAppositionalModifier = "appos"
	FineNominalSubject       = "nsubj"
	FineObjectOfPreposition  = "pobj"
)

// Query selects elements by category. Empty fields match anything.
// CCoarse requires a direct child carrying that coarse tag.
type Query struct {
	Coarse  string
	Fine    string
	CCoarse string
}

// Element is one word of a parsed sentence and the subtree below it.
type Element interface {
	Word() string
	Coarse() string
	Fine() string
	Children() []Element
	FindElements(q Query) []Element
}

// Node is the concrete parse-tree element decoded from parser output.
type Node struct {
	Text      string  `json:"word" yaml:"word"`
	CoarseTag string  `json:"coarse" yaml:"coarse"`
	FineTag   string  `json:"fine" yaml:"fine"`
	Nodes     []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) Word() string   { return n.Text }
func (n *Node) Coarse() string { return n.CoarseTag }
func (n *Node) Fine() string   { return n.FineTag }

func (n *Node) Children() []Element {
	out := make([]Element, 0, len(n.Nodes))
	for _, c := range n.Nodes {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FindElements walks the tree in pre-order, root included, and returns every
// element matching q.
func (n *Node) FindElements(q Query) []Element {
	var found []Element
	n.walk(func(e *Node) {
		if e.matches(q) {
			found = append(found, e)
		}
	})
	return found
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Nodes {
		c.walk(fn)
	}
}

func (n *Node) matches(q Query) bool {
	if q.Coarse != "" && n.CoarseTag != q.Coarse {
		return false
	}
	if q.Fine != "" && n.FineTag != q.Fine {
		return false
	}
	if q.CCoarse == "" {
		return true
	}
	for _, c := range n.Nodes {
		if c != nil && c.CoarseTag == q.CCoarse {
			return true
		}
	}
	return false
}

// Parse decodes a JSON parse tree.
func Parse(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode parse tree: %w", err)
	}
	if root.Text == "" && len(root.Nodes) == 0 {
		return nil, fmt.Errorf("parse tree is empty")
	}
	return &root, nil
}

// ParseFile reads and decodes a JSON parse tree from disk.
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parse tree %s: %w", path, err)
	}
	return Parse(data)
}
