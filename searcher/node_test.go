package searcher

import (
	"testing"

	"tictac/game"

	"github.com/stretchr/testify/require"
)

func TestTreeNewNode(t *testing.T) {
	t.Run("root has no parent and no action", func(t *testing.T) {
		tr := newTree(game.NewState(game.X))

		require.Equal(t, 0, tr.root.ID)
		require.Nil(t, tr.root.parent)
		require.Equal(t, game.NoAction, tr.root.Action)
		require.True(t, tr.root.Unvisited())
		require.Equal(t, 0.0, tr.root.Value)
	})

	t.Run("children are linked to their parent once, with increasing ids", func(t *testing.T) {
		tr := newTree(game.NewState(game.X))
		a := tr.newNode(game.State{}, 0, tr.root)
		b := tr.newNode(game.State{}, 1, tr.root)

		require.Equal(t, []*Node{a, b}, tr.root.Children)
		require.Equal(t, tr.root, a.parent)
		require.Equal(t, 1, a.ID)
		require.Equal(t, 2, b.ID)
		require.Equal(t, 3, tr.size())
	})

	t.Run("every tree numbers its nodes from zero", func(t *testing.T) {
		first := newTree(game.NewState(game.X))
		first.newNode(game.State{}, 0, first.root)
		second := newTree(game.NewState(game.O))

		require.Equal(t, 0, second.root.ID)
		require.Equal(t, 1, second.size())
	})
}

func TestNodeBackpropagateScore(t *testing.T) {
	t.Run("updates every ancestor and nothing else", func(t *testing.T) {
		tr := newTree(game.NewState(game.X))
		child := tr.newNode(game.State{}, 0, tr.root)
		sibling := tr.newNode(game.State{}, 1, tr.root)
		grandChild := tr.newNode(game.State{}, 2, child)
		cousin := tr.newNode(game.State{}, 3, sibling)
		sibling.Visits, sibling.Value = 3, 1.5

		grandChild.BackpropagateScore(1, 0.5)

		for _, n := range []*Node{grandChild, child, tr.root} {
			require.Equal(t, 1, n.Visits, "Node %v should gain one visit", n)
			require.Equal(t, 0.5, n.Value, "Node %v should gain the reward", n)
		}
		require.Equal(t, 3, sibling.Visits, "Sibling should not change")
		require.Equal(t, 1.5, sibling.Value, "Sibling should not change")
		require.True(t, cousin.Unvisited(), "Unrelated subtree should not change")
	})

	t.Run("accumulates across calls", func(t *testing.T) {
		tr := newTree(game.NewState(game.X))
		child := tr.newNode(game.State{}, 0, tr.root)

		child.BackpropagateScore(1, 1)
		child.BackpropagateScore(1, 0)
		child.BackpropagateScore(1, 0.5)

		require.Equal(t, 3, tr.root.Visits)
		require.Equal(t, 1.5, tr.root.Value)
		require.Equal(t, "1: 1.5/3", child.String())
	})

	t.Run("walks deep chains without recursion", func(t *testing.T) {
		tr := newTree(game.NewState(game.X))
		node := tr.root
		for i := 0; i < 100000; i++ {
			node = tr.newNode(game.State{}, 0, node)
		}

		node.BackpropagateScore(1, 1)

		require.Equal(t, 1, tr.root.Visits)
		require.Equal(t, 1, tr.root.Children[0].Visits)
		require.Equal(t, 100001, tr.size())
	})
}
