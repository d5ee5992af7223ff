package uct

import (
	"math"

	"github.com/uctsat/uctsat/internal/search"
)

// Tree is one UCT run: a flat node arena plus the search.State/Incumbent
// it drives playouts against. Descending through a Tree fixes one more
// variable immutable per node (§2: "each descent through G sets one more
// variable immutable along the path, fixes its value to the chosen arm,
// then at a newly expanded node invokes E → D → F").
type Tree struct {
	nodes      []Node
	depthLimit int
	exploreC   float64

	state   *search.State
	picker  search.Picker
	incObj  *search.Incumbent
	rng     *search.RNG
	counts  []int
	maxFlip int
	numCls  int

	bestReward    float64
	bestSatisfied int
}

// NewTree builds a fresh single-root Tree. rootAtom is the branching atom
// for the empty path, normally obtained from state.BranchAtom before the
// first call. depthLimit bounds path length to N-1 per §4.G.
func NewTree(rootAtom int, depthLimit int, exploreC float64, state *search.State, picker search.Picker, inc *search.Incumbent, rng *search.RNG, maxFlips int) *Tree {
	t := &Tree{
		nodes:      make([]Node, 0, 64),
		depthLimit: depthLimit,
		exploreC:   exploreC,
		state:      state,
		picker:     picker,
		incObj:     inc,
		rng:        rng,
		counts:     state.NewCounts(),
		maxFlip:    maxFlips,
		numCls:     state.Formula().NumClauses(),
	}
	t.nodes = append(t.nodes, newNode(0, rootAtom))
	return t
}

// Root returns the index of the root node.
func (t *Tree) Root() int { return 0 }

// Node returns a pointer to the node at idx. Only valid until the next
// call that grows the arena.
func (t *Tree) Node(idx int) *Node { return &t.nodes[idx] }

// BestReward returns the best per-visit reward observed by any estimate
// since the Tree was created.
func (t *Tree) BestReward() float64 { return t.bestReward }

// BestSatisfied returns the satisfied-clause count that produced
// BestReward, letting the driver report an unsatisfied-clause count
// without re-deriving it from the squared, lossy reward.
func (t *Tree) BestSatisfied() int { return t.bestSatisfied }

// FullyClosed reports whether the root's subtree has nothing left to play.
func (t *Tree) FullyClosed() bool { return t.nodes[0].FullyClosed() }

// Reward implements §4.G's reward definition: the squared fraction of
// satisfied clauses, which rewards near-misses more than a linear score
// would and keeps the bandit from treating "1 unsat" and "half unsat" the
// same at the margin. Exported so the run driver can compute the same
// reward for a formula found already closed at the root, without going
// through a Tree at all.
func Reward(satisfied, total int) float64 {
	if total == 0 {
		return 1
	}
	frac := float64(satisfied) / float64(total)
	return frac * frac
}

// Play runs one full descent from the root, expanding at most one new
// node, and returns the reward backed up to the root. It is a no-op
// returning the root's current average if the root is already fully
// closed; callers should check FullyClosed between calls to stop early.
func (t *Tree) Play() float64 {
	path := make([]search.PathVar, 0, t.depthLimit+1)
	return t.playNode(0, path)
}

// playNode implements §4.G's playNode(node) algorithm. path is the list of
// variable assignments fixed by every ancestor; it does not yet include
// node's own atom.
func (t *Tree) playNode(idx int, path []search.PathVar) float64 {
	node := &t.nodes[idx]

	if node.Arms[Left].N == 0 {
		return t.expand(node, path)
	}

	if node.FullyClosed() {
		return (node.Arms[Left].X + node.Arms[Right].X) / 2
	}

	var arm int
	switch {
	case node.Arms[Left].Closed:
		arm = Right
	case node.Arms[Right].Closed:
		arm = Left
	default:
		arm = t.selectUCB1(node)
	}

	childPath := append(path, search.PathVar{Var: node.Atom, Value: arm == Right})
	childIdx := t.ensureChild(idx, arm, childPath)

	r := t.playNode(childIdx, childPath)

	node = &t.nodes[idx] // re-fetch: ensureChild may have grown the arena
	node.Arms[arm].N++
	node.Arms[arm].X += (r - node.Arms[arm].X) / float64(node.Arms[arm].N)
	if t.nodes[childIdx].FullyClosed() {
		node.Arms[arm].Closed = true
	}

	return r
}

// expand handles a node's first visit: both arms are played directly via
// E → D → F (§4.G), no child is created yet. path is the assignment fixed
// by node's ancestors (node's own atom is not in it). Each arm's reward
// and initial N=1 are recorded, and depth-limit closure is applied if
// this is the deepest a path may go.
func (t *Tree) expand(node *Node, path []search.PathVar) float64 {
	leftReward, leftAtom, leftClosed := t.estimateReward(append(path, search.PathVar{Var: node.Atom, Value: false}))
	rightReward, rightAtom, rightClosed := t.estimateReward(append(path, search.PathVar{Var: node.Atom, Value: true}))

	node.Arms[Left] = Arm{X: leftReward, N: 1, Closed: leftClosed, NextAtom: leftAtom}
	node.Arms[Right] = Arm{X: rightReward, N: 1, Closed: rightClosed, NextAtom: rightAtom}

	if node.Depth >= t.depthLimit {
		node.Arms[Left].Closed = true
		node.Arms[Right].Closed = true
	}

	return (leftReward + rightReward) / 2
}

// estimateReward runs E → D → F for one candidate path: it resets the
// search state to that path's immutables, checks whether the remaining
// subformula is already fully decided, and if not runs a bounded local
// search playout and picks the next branching atom for the arm's child.
func (t *Tree) estimateReward(path []search.PathVar) (reward float64, nextAtom int, closed bool) {
	allDecided := t.state.Reset(path, t.incObj.BestSoln)
	if allDecided {
		t.incObj.Consider(t.state)
		satisfied := t.state.NumSatisfiedClauses()
		reward = Reward(satisfied, t.numCls)
		t.bumpBest(reward, satisfied)
		return reward, search.NoAtom, true
	}

	nextAtom = t.state.BranchAtom(t.counts)

	outcome := search.LocalSearch(t.state, t.picker, t.maxFlip, t.incObj)
	reward = Reward(outcome.BestSatisfiedCount, t.numCls)
	t.bumpBest(reward, outcome.BestSatisfiedCount)
	if outcome.Closed {
		closed = true
		nextAtom = search.NoAtom
	}
	return reward, nextAtom, closed
}

func (t *Tree) bumpBest(r float64, satisfied int) {
	if r > t.bestReward {
		t.bestReward = r
		t.bestSatisfied = satisfied
	}
}

// ensureChild lazily creates the child reached via arm from parent, per
// §4.G's "children are created lazily on a node's second visit, not at
// expansion time". The child's atom is the arm's NextAtom, recorded when
// the parent was expanded.
func (t *Tree) ensureChild(parentIdx, arm int, childPath []search.PathVar) int {
	parent := &t.nodes[parentIdx]
	if parent.Children[arm] != NoChild {
		return parent.Children[arm]
	}
	child := newNode(parent.Depth+1, parent.Arms[arm].NextAtom)
	t.nodes = append(t.nodes, child)
	idx := len(t.nodes) - 1
	t.nodes[parentIdx].Children[arm] = idx
	return idx
}

// selectUCB1 picks the arm maximizing X + C*sqrt(ln(N)/n[arm]) over both
// (open) arms, ties broken uniformly at random, grounded on the
// UCB1-with-random-tie-break pattern common to the pack's MCTS
// implementations.
func (t *Tree) selectUCB1(node *Node) int {
	total := float64(node.Arms[Left].N + node.Arms[Right].N)
	lnTotal := math.Log(total)

	best := Left
	bestScore := math.Inf(-1)
	ties := 0
	for _, arm := range [2]int{Left, Right} {
		a := node.Arms[arm]
		score := a.X + t.exploreC*math.Sqrt(lnTotal/float64(a.N))
		switch {
		case score > bestScore:
			best = arm
			bestScore = score
			ties = 1
		case score == bestScore:
			ties++
			if t.rng.Intn(ties) == 0 {
				best = arm
			}
		}
	}
	return best
}
