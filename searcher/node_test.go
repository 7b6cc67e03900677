package searcher

import (
	"math/rand"
	"testing"

	"isolation/game"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

func testPosition(t *testing.T) game.State {
	t.Helper()
	p := game.NewPosition(4, 3).
		Place(game.Player0, game.Cell(0)).
		Place(game.Player1, game.Cell(11))
	require.False(t, p.TerminalTest())
	return p
}

func TestTreeExpand(t *testing.T) {
	state := testPosition(t)
	tr := newTree(state, frand.New())
	untriedBefore := len(tr.nodes[rootHandle].untried)
	require.Equal(t, len(state.Actions()), untriedBefore,
		"Root should start with every legal action untried")

	child, err := tr.expand(rootHandle)

	require.NoError(t, err)
	require.Equal(t, untriedBefore-1, len(tr.nodes[rootHandle].untried),
		"Expansion should consume one untried action")
	require.Equal(t, []handle{child}, tr.nodes[rootHandle].children,
		"The new child should be attached to the root")
	require.Equal(t, rootHandle, tr.nodes[child].parent)
	require.Zero(t, tr.nodes[child].visits, "A new child starts unvisited")
	require.Zero(t, tr.nodes[child].qValue)
	require.Equal(t, game.Player1, tr.nodes[child].state.Player(),
		"The child state should have the turn passed")
}

func TestTreeSelectExpandPrefersUntried(t *testing.T) {
	state := testPosition(t)
	tr := newTree(state, frand.New())
	branching := len(state.Actions())

	// Every iteration must expand a fresh root child until none are untried,
	// so UCT is never evaluated on a zero-visit child.
	for i := 0; i < branching; i++ {
		leaf, err := tr.selectExpand(DefaultExploration)
		require.NoError(t, err)
		require.Equal(t, rootHandle, tr.nodes[leaf].parent,
			"Expansion should attach to the root while it has untried actions")
		tr.backup(leaf, 1)
	}
	require.True(t, tr.nodes[rootHandle].fullyExpanded())

	leaf, err := tr.selectExpand(DefaultExploration)
	require.NoError(t, err)
	require.NotEqual(t, rootHandle, tr.nodes[leaf].parent,
		"A fully expanded root should descend before expanding")
}

func TestTreeBackup(t *testing.T) {
	state := testPosition(t)
	tr := newTree(state, frand.New())
	child, err := tr.expand(rootHandle)
	require.NoError(t, err)
	grandchild, err := tr.expand(child)
	require.NoError(t, err)

	tr.backup(grandchild, 1)

	require.Equal(t, 1, tr.nodes[grandchild].visits)
	require.Equal(t, 1.0, tr.nodes[grandchild].qValue, "Leaf should record the raw result")
	require.Equal(t, 1, tr.nodes[child].visits)
	require.Equal(t, -1.0, tr.nodes[child].qValue, "Parent should record the negated result")
	require.Equal(t, 1, tr.nodes[rootHandle].visits)
	require.Equal(t, 1.0, tr.nodes[rootHandle].qValue, "Negation should alternate per level")
}

func TestTreeBestChild(t *testing.T) {
	state := testPosition(t)
	tr := newTree(state, frand.New())
	a, err := tr.expand(rootHandle)
	require.NoError(t, err)
	b, err := tr.expand(rootHandle)
	require.NoError(t, err)

	tr.nodes[rootHandle].visits = 10
	tr.nodes[a].visits = 5
	tr.nodes[a].qValue = 5 // Average value 1.0
	tr.nodes[b].visits = 5
	tr.nodes[b].qValue = 0

	require.Equal(t, a, tr.bestChild(rootHandle, 0.1),
		"With little exploration the higher-value child should win")

	tr.nodes[b].visits = 1 // Barely explored
	require.Equal(t, b, tr.bestChild(rootHandle, 10),
		"With heavy exploration the less-visited child should win")
}

func TestTreeBestAction(t *testing.T) {
	state := testPosition(t)
	tr := newTree(state, frand.New())

	_, ok := tr.bestAction()
	require.False(t, ok, "A childless root has no best action")

	a, err := tr.expand(rootHandle)
	require.NoError(t, err)
	b, err := tr.expand(rootHandle)
	require.NoError(t, err)

	tr.nodes[a].visits = 3
	tr.nodes[a].qValue = -3 // Low value, most visits
	tr.nodes[b].visits = 2
	tr.nodes[b].qValue = 2

	action, ok := tr.bestAction()
	require.True(t, ok)
	require.Equal(t, tr.nodes[a].action, action,
		"The final decision should follow visit counts, not value")
}

func TestTreeSeededRandReproducible(t *testing.T) {
	build := func() *tree {
		tr := newTree(testPosition(t), rand.New(rand.NewSource(42)))
		for i := 0; i < 50; i++ {
			leaf, err := tr.selectExpand(DefaultExploration)
			require.NoError(t, err)
			result, err := tr.rollout(leaf)
			require.NoError(t, err)
			tr.backup(leaf, result)
		}
		return tr
	}

	first, second := build(), build()

	require.Equal(t, len(first.nodes), len(second.nodes),
		"Identical seeds should grow identical trees")
	for i := range first.nodes {
		require.Equal(t, first.nodes[i].action, second.nodes[i].action)
		require.Equal(t, first.nodes[i].visits, second.nodes[i].visits)
		require.Equal(t, first.nodes[i].qValue, second.nodes[i].qValue)
	}
}

func TestTreeRolloutReachesTerminal(t *testing.T) {
	state := testPosition(t)
	tr := newTree(state, frand.New())

	result, err := tr.rollout(rootHandle)

	require.NoError(t, err)
	require.Contains(t, []float64{-1, 1}, result,
		"A zero-sum rollout should end in a win or a loss")
}
