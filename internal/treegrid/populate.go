package treegrid

// Visitor is called once per row during Populate. It receives the running
// accumulator and returns the accumulator for the next call. A visitor must
// tolerate a nil accumulator: callers that only want side effects pass nil,
// and the visitor is still invoked for every row.
type Visitor func(n *Node, acc any) any

// Populate performs a depth-first pre-order traversal of the grid: each row
// is visited before its children, children in insertion order. The
// accumulator is threaded through the visitor as a single linear fold, so
// the result depends only on tree shape, visitor and initial accumulator.
// Every row is visited exactly once.
func (g *TreeGrid) Populate(visit Visitor, acc any) any {
	for _, root := range g.roots {
		acc = populate(root, visit, acc)
	}
	return acc
}

func populate(n *Node, visit Visitor, acc any) any {
	acc = visit(n, acc)
	for _, child := range n.children {
		acc = populate(child, visit, acc)
	}
	return acc
}

// RowCount returns the total number of rows in the grid.
func (g *TreeGrid) RowCount() int {
	count := 0
	g.Populate(func(*Node, any) any {
		count++
		return nil
	}, nil)
	return count
}
