// Package treegrid provides the hierarchical result set produced by analysis
// plugins: an ordered tree of typed rows, plus a deterministic fold for
// flattening it into records.
package treegrid

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Column declares the name and type of one value slot in every row.
type Column struct {
	Name string
	Type cty.Type
}

// Node is a single result row. It owns its children exclusively; the tree is
// rooted, acyclic and finite, and no subtree is ever shared between parents.
type Node struct {
	values   []cty.Value
	depth    int
	children []*Node
}

// Values returns the row's values, one per grid column.
func (n *Node) Values() []cty.Value {
	return n.values
}

// Depth returns how many ancestors the row has; top-level rows are depth 0.
func (n *Node) Depth() int {
	return n.depth
}

// Children returns the row's child rows in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// TreeGrid is the materialized output of one plugin execution.
type TreeGrid struct {
	columns []Column
	roots   []*Node
}

// New creates an empty grid with the given column layout.
func New(columns ...Column) (*TreeGrid, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("a tree grid needs at least one column")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column names must not be empty")
		}
		if _, ok := seen[col.Name]; ok {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	return &TreeGrid{columns: columns}, nil
}

// Columns returns the grid's column layout.
func (g *TreeGrid) Columns() []Column {
	return g.columns
}

// Append adds a row under parent, converting each value to its column's
// type. A nil parent appends a top-level row. The returned node is the
// handle for appending children to the new row.
func (g *TreeGrid) Append(parent *Node, values ...cty.Value) (*Node, error) {
	if len(values) != len(g.columns) {
		return nil, fmt.Errorf("row has %d values, grid has %d columns", len(values), len(g.columns))
	}
	converted := make([]cty.Value, len(values))
	for i, val := range values {
		out, err := convert.Convert(val, g.columns[i].Type)
		if err != nil {
			return nil, fmt.Errorf("value for column %q: %w", g.columns[i].Name, err)
		}
		converted[i] = out
	}

	node := &Node{values: converted}
	if parent == nil {
		g.roots = append(g.roots, node)
		return node, nil
	}
	node.depth = parent.depth + 1
	parent.children = append(parent.children, node)
	return node, nil
}
