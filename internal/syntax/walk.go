package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order over the children lists.
// Generic instances are not part of the parsed tree and are not visited.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	walk(node, v, false)
}

// WalkInstances is like Walk but also descends into the generated instances
// of every generic template it meets.
func WalkInstances(node Node, v Visitor) {
	walk(node, v, true)
}

func walk(node Node, v Visitor, withInstances bool) {
	if isNil(node) || !v(node) {
		return
	}
	// Copy the list: the visitor may rewrite the tree below node.
	children := append([]Node(nil), node.Children()...)
	for _, c := range children {
		walk(c, v, withInstances)
	}
	if c, ok := node.(*Class); ok && withInstances {
		for _, inst := range c.Instances() {
			walk(inst, v, withInstances)
		}
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
