package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klondike/internal/game/card"
)

func TestRectIntersectionArea(t *testing.T) {
	t.Parallel()

	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name     string
		other    Rect
		expected float64
	}{
		{"Full containment", Rect{X: 2, Y: 2, W: 4, H: 4}, 16},
		{"Partial overlap", Rect{X: 5, Y: 5, W: 10, H: 10}, 25},
		{"Edge touch", Rect{X: 10, Y: 0, W: 5, H: 5}, 0},
		{"Disjoint", Rect{X: 20, Y: 20, W: 5, H: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, a.IntersectionArea(tt.other))
		})
	}
}

func TestResolveNoCandidates(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	dragBox := Rect{X: 0, Y: 0, W: 10, H: 10}

	// No targets at all.
	assert.Nil(t, r.Resolve(dragBox, Point{}, nil, nil))

	// A target that does not intersect.
	far := []Target{{Kind: TargetTableau, Index: 0, Bounds: Rect{X: 100, Y: 100, W: 10, H: 10}}}
	assert.Nil(t, r.Resolve(dragBox, Point{}, far, nil))

	// A target rejected by the legality filter.
	over := []Target{{Kind: TargetTableau, Index: 0, Bounds: dragBox}}
	assert.Nil(t, r.Resolve(dragBox, Point{}, over, func(Target) bool { return false }))
}

func TestResolveAreaDominates(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	dragBox := Rect{X: 0, Y: 0, W: 10, H: 10}

	// Tableau column covering 80% of the dragged box, foundation 15%.
	column := Target{Kind: TargetTableau, Index: 2, Bounds: Rect{X: 0, Y: 0, W: 8, H: 10}}
	foundation := Target{Kind: TargetFoundation, Suit: card.Hearts, Bounds: Rect{X: 8.5, Y: 0, W: 1.5, H: 10}}

	// Pointer sits right on the foundation; area must still win.
	pointer := foundation.Bounds.Center()
	got := r.Resolve(dragBox, pointer, []Target{foundation, column}, nil)
	require.NotNil(t, got)
	assert.Equal(t, TargetTableau, got.Kind)
	assert.Equal(t, 2, got.Index)
}

func TestResolveDistanceBreaksNearTies(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	dragBox := Rect{X: 0, Y: 0, W: 10, H: 10}

	// Both candidates cover ~45% of the dragged box.
	left := Target{Kind: TargetTableau, Index: 0, Bounds: Rect{X: 0, Y: 0, W: 4.5, H: 10}}
	right := Target{Kind: TargetTableau, Index: 1, Bounds: Rect{X: 5.5, Y: 0, W: 4.5, H: 10}}
	candidates := []Target{left, right}

	nearLeft := Point{X: 1, Y: 5}
	got := r.Resolve(dragBox, nearLeft, candidates, nil)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Index)

	nearRight := Point{X: 9, Y: 5}
	got = r.Resolve(dragBox, nearRight, candidates, nil)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Index)
}

func TestResolveSingleCandidate(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	dragBox := Rect{X: 0, Y: 0, W: 4, H: 4}
	only := Target{Kind: TargetFoundation, Suit: card.Spades, Bounds: Rect{X: 3, Y: 3, W: 4, H: 4}}

	got := r.Resolve(dragBox, Point{X: 0, Y: 0}, []Target{only}, nil)
	require.NotNil(t, got)
	assert.Equal(t, card.Spades, got.Suit)
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	dragBox := Rect{X: 0, Y: 0, W: 10, H: 10}
	pointer := Point{X: 5, Y: 5}
	candidates := []Target{
		{Kind: TargetTableau, Index: 0, Bounds: Rect{X: 0, Y: 0, W: 5, H: 10}},
		{Kind: TargetTableau, Index: 1, Bounds: Rect{X: 5, Y: 0, W: 5, H: 10}},
	}

	first := r.Resolve(dragBox, pointer, candidates, nil)
	require.NotNil(t, first)
	for range 10 {
		again := r.Resolve(dragBox, pointer, candidates, nil)
		require.NotNil(t, again)
		assert.Equal(t, *first, *again)
	}
}

func TestRegistrySnapshotRefreshesBounds(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	bounds := Rect{X: 0, Y: 0, W: 5, H: 5}
	unregister := reg.Register(
		Target{Kind: TargetFoundation, Suit: card.Clubs},
		func() Rect { return bounds },
	)

	snap := reg.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, bounds, snap[0].Bounds)

	// Layout shifts; the next snapshot must observe it.
	bounds = Rect{X: 10, Y: 10, W: 5, H: 5}
	snap = reg.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, bounds, snap[0].Bounds)

	unregister()
	assert.Empty(t, reg.Snapshot())
}
