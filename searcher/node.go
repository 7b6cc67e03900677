package searcher

import (
	"math"

	"isolation/game"
)

// Rand is the random source used for expansion and rollouts. Both *frand.RNG
// and a seeded *math/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
}

// handle indexes a node in a tree's arena. Parent references are handles, not
// pointers, so the tree has no ownership cycles and is freed in one piece when
// the search call ends.
type handle int32

const (
	rootHandle handle = 0
	noHandle   handle = -1
)

type node struct {
	state    game.State
	action   game.Action // Move that produced state from the parent
	parent   handle
	children []handle
	untried  []game.Action
	qValue   float64
	visits   int
}

func (n *node) fullyExpanded() bool {
	return len(n.untried) == 0
}

// tree is the arena holding one search call's nodes. It is owned by exactly
// one search call and discarded afterwards.
type tree struct {
	nodes []node
	rng   Rand
}

func newTree(root game.State, rng Rand) *tree {
	t := &tree{nodes: make([]node, 0, 1024), rng: rng}
	t.add(noHandle, game.CellUnset, root)
	return t
}

func (t *tree) add(parent handle, a game.Action, s game.State) handle {
	h := handle(len(t.nodes))
	t.nodes = append(t.nodes, node{
		state:   s,
		action:  a,
		parent:  parent,
		untried: s.Actions(),
	})
	if parent != noHandle {
		t.nodes[parent].children = append(t.nodes[parent].children, h)
	}
	return h
}

// selectExpand walks the tree policy from the root: expand a random untried
// action when one exists, otherwise descend to the max-UCT child, until a new
// leaf is attached or a terminal node is reached.
func (t *tree) selectExpand(c float64) (handle, error) {
	h := rootHandle
	for {
		n := &t.nodes[h]
		if n.state.TerminalTest() {
			return h, nil
		}
		if !n.fullyExpanded() {
			return t.expand(h)
		}
		h = t.bestChild(h, c)
	}
}

// expand consumes one untried action uniformly at random and attaches the
// resulting child.
func (t *tree) expand(h handle) (handle, error) {
	n := &t.nodes[h]
	i := t.rng.Intn(len(n.untried))
	a := n.untried[i]
	n.untried[i] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	next, err := n.state.Result(a)
	if err != nil {
		return noHandle, err
	}
	return t.add(h, a, next), nil
}

// bestChild returns the child maximizing UCT(child) = q/n + c*sqrt(2*ln(N)/n).
// Children with zero visits never reach here: expansion consumes every untried
// action before selection is applied, so n >= 1 always holds.
func (t *tree) bestChild(h handle, c float64) handle {
	numerator := 2 * math.Log(float64(t.nodes[h].visits))

	best := noHandle
	bestScore := math.Inf(-1)
	for _, child := range t.nodes[h].children {
		n := float64(t.nodes[child].visits)
		score := t.nodes[child].qValue/n + c*math.Sqrt(numerator/n)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// rollout plays uniformly random actions from a node's state until the game
// ends and returns the outcome for the player whose move produced the node:
// +1 for a win, -1 for a loss. That player is the one choosing between the
// node and its siblings during selection, which keeps max-UCT selection and
// the most-visited final pick pointed the right way.
func (t *tree) rollout(h handle) (float64, error) {
	state := t.nodes[h].state
	chooser := state.Player().Opponent()

	for !state.TerminalTest() {
		actions := state.Actions()
		next, err := state.Result(actions[t.rng.Intn(len(actions))])
		if err != nil {
			return 0, err
		}
		state = next
	}

	switch u := state.Utility(chooser); {
	case math.IsInf(u, 1):
		return 1, nil
	case math.IsInf(u, -1):
		return -1, nil
	default:
		return 0, nil
	}
}

// backup records a rollout result on the leaf and propagates it to the root,
// negating per level: turns alternate, so an outcome favorable at one node is
// unfavorable at its parent.
func (t *tree) backup(h handle, result float64) {
	for h != noHandle {
		t.nodes[h].visits++
		t.nodes[h].qValue += result
		result = -result
		h = t.nodes[h].parent
	}
}

// bestAction returns the action of the most-visited root child. Reports false
// when the root has no children yet.
func (t *tree) bestAction() (game.Action, bool) {
	children := t.nodes[rootHandle].children
	if len(children) == 0 {
		return game.CellUnset, false
	}
	best := children[0]
	for _, child := range children[1:] {
		if t.nodes[child].visits > t.nodes[best].visits {
			best = child
		}
	}
	return t.nodes[best].action, true
}

// maxDepth returns the depth of the deepest node, with the root at depth 0.
func (t *tree) maxDepth() int {
	depths := make([]int, len(t.nodes))
	max := 0
	// Parents precede children in the arena, one pass suffices.
	for i := 1; i < len(t.nodes); i++ {
		depths[i] = depths[t.nodes[i].parent] + 1
		if depths[i] > max {
			max = depths[i]
		}
	}
	return max
}
