// Package uct implements the two-armed UCT tree (§4.G): node lifecycle,
// UCB1 arm selection, expansion, reward backup and closed-subtree
// propagation. Nodes are kept in a flat arena (§9's "vector-of-nodes with
// integer indices" note) rather than individually heap-allocated, so a
// node's two children are addressed by index into Tree.nodes rather than
// by pointer; there are no back-references.
package uct

const (
	// Left and Right name the two arms a node's branching atom can be
	// fixed to. Left corresponds to assigning the atom false (0), Right
	// to assigning it true (1).
	Left  = 0
	Right = 1

	// NoChild marks a not-yet-created child slot.
	NoChild = -1
)

// Arm is the running bandit statistics for one of a node's two branches.
type Arm struct {
	// X is the running-average reward backed up along this arm.
	X float64
	// N is the number of times this arm has been played.
	N int
	// Closed is true once this arm's subtree is fully enumerated or its
	// remaining subformula was found fully determined by the path's
	// immutables. Monotone: never reverts to false.
	Closed bool
	// NextAtom is the branching atom the child reached via this arm
	// should use. It is only meaningful once N > 0 and Closed is false.
	NextAtom int
}

// Node is one UCT tree node: the atom it branches on and the bandit state
// of its two arms. Depth is the number of ancestors (and therefore the
// number of variables already fixed before this node's own atom).
type Node struct {
	Depth    int
	Atom     int
	Arms     [2]Arm
	Children [2]int
}

// FullyClosed reports whether both of the node's arms are closed: no
// further play is possible under this node.
func (n *Node) FullyClosed() bool {
	return n.Arms[Left].Closed && n.Arms[Right].Closed
}

func newNode(depth, atom int) Node {
	return Node{
		Depth:    depth,
		Atom:     atom,
		Children: [2]int{NoChild, NoChild},
	}
}
