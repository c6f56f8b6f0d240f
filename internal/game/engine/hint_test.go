package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klondike/internal/config"
	"klondike/internal/events"
	"klondike/internal/game/card"
)

func TestHintPrefersFoundationMoves(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	// Both a foundation move (waste ace) and a tableau move (8♥ onto
	// 9♣) exist; the foundation move wins.
	s.Waste = card.Pile{fu(card.Clubs, card.RankA)}
	s.Tableau[0] = card.Pile{fu(card.Clubs, card.Rank9)}
	s.Tableau[1] = card.Pile{fu(card.Hearts, card.Rank8)}
	s.Stock = card.Pile{fd(card.Spades, card.Rank5)}
	setState(e, s)

	h := e.GetHint()
	require.NotNil(t, h)
	assert.Equal(t, HintFoundation, h.Kind)
	assert.Equal(t, "clubs-A", h.CardID)
	assert.Equal(t, h, e.CurrentHint())

	e.ClearHint()
	assert.Nil(t, e.CurrentHint())
}

func TestHintScansWasteBeforeTableau(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	s.Foundations[card.Hearts] = foundationTo(card.Hearts, card.Rank3)
	s.Waste = card.Pile{fu(card.Hearts, card.Rank4)}
	// A tableau foundation move also exists, further right.
	s.Foundations[card.Spades] = foundationTo(card.Spades, card.Rank5)
	s.Tableau[3] = card.Pile{fu(card.Spades, card.Rank6)}
	s.Stock = card.Pile{fd(card.Clubs, card.RankJ)}
	setState(e, s)

	h := e.GetHint()
	require.NotNil(t, h)
	assert.Equal(t, "hearts-4", h.CardID)
}

func TestHintTableauMove(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	s.Tableau[0] = card.Pile{fd(card.Spades, card.Rank2), fu(card.Hearts, card.Rank8)}
	s.Tableau[1] = card.Pile{fu(card.Spades, card.Rank9)}
	s.Stock = card.Pile{fd(card.Clubs, card.RankJ)}
	setState(e, s)

	h := e.GetHint()
	require.NotNil(t, h)
	assert.Equal(t, HintTableau, h.Kind)
	assert.Equal(t, "hearts-8", h.CardID)
}

func TestHintFallsBackToDraw(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	// No board move: two kings staring at each other.
	s.Tableau[0] = card.Pile{fu(card.Spades, card.RankK)}
	s.Tableau[1] = card.Pile{fu(card.Hearts, card.RankK)}
	s.Stock = card.Pile{fd(card.Clubs, card.RankJ)}
	setState(e, s)

	h := e.GetHint()
	require.NotNil(t, h)
	assert.Equal(t, HintDraw, h.Kind)
	assert.Equal(t, "clubs-J", h.CardID)
}

func TestHintNilWhenStuck(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	s.Tableau[0] = card.Pile{fu(card.Spades, card.RankK)}
	s.Tableau[1] = card.Pile{fu(card.Hearts, card.RankK)}
	setState(e, s)

	assert.Nil(t, e.GetHint())
	assert.True(t, e.CheckForAvailableMoves())
	assert.True(t, e.HasNoMoves())
}

func TestHintClearedByMutation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	require.NotNil(t, e.GetHint())
	require.True(t, e.DrawCard())
	assert.Nil(t, e.CurrentHint())
}

func TestNoMovesConsidersFullRecycle(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	s.Tableau[0] = card.Pile{fu(card.Spades, card.RankK)}
	s.Tableau[1] = card.Pile{fu(card.Hearts, card.RankK)}
	// The playable card hides at the bottom of the stock: only a full
	// recycle would surface it, so the state is not stuck.
	s.Stock = card.Pile{fd(card.Clubs, card.RankA), fd(card.Clubs, card.RankJ), fd(card.Clubs, card.Rank4)}
	setState(e, s)

	assert.False(t, e.CheckForAvailableMoves())

	// Replace the ace with another dead card: now genuinely stuck.
	s.Stock[0] = fd(card.Clubs, card.Rank5)
	assert.True(t, e.CheckForAvailableMoves())
}

func TestNoMovesShortCircuitsOnWin(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := nearWonState()
	s.Foundations[card.Spades] = foundationTo(card.Spades, card.RankK)
	s.Tableau[0] = nil
	s.IsWon = true
	setState(e, s)

	// A won game has no moves left but must never read as stuck.
	assert.False(t, e.CheckForAvailableMoves())
	assert.False(t, e.HasNoMoves())
}

func TestNoMovesEventEmittedOnce(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	count := 0
	require.NoError(t, bus.SubscribeNoMoves(func(events.NoMoves) { count++ }))

	e := New(config.Default(), bus, 2)
	s := newGameState()
	s.Tableau[0] = card.Pile{fu(card.Spades, card.RankK)}
	s.Tableau[1] = card.Pile{fu(card.Hearts, card.RankK)}
	count = 0
	setState(e, s)

	e.CheckForAvailableMoves()
	e.CheckForAvailableMoves()
	assert.Equal(t, 1, count)
}

func TestCollectAllAvailable(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	s.Waste = card.Pile{fu(card.Spades, card.RankA)}
	s.Tableau[0] = card.Pile{fu(card.Hearts, card.RankA)}
	s.Tableau[1] = card.Pile{fu(card.Spades, card.Rank2)}
	s.Tableau[2] = card.Pile{fu(card.Hearts, card.Rank9)} // not collectable
	s.Stock = card.Pile{fd(card.Clubs, card.RankJ)}
	setState(e, s)

	collected := e.CollectAllAvailable()
	require.Len(t, collected, 3)
	// Waste scans before tableau; the spade two only becomes legal
	// after its ace lands.
	assert.Equal(t, "spades-A", collected[0].CardID)
	assert.Equal(t, "hearts-A", collected[1].CardID)
	assert.Equal(t, "spades-2", collected[2].CardID)

	st := e.State()
	assert.Len(t, st.Foundations[card.Spades], 2)
	assert.Len(t, st.Foundations[card.Hearts], 1)
	assert.Empty(t, st.Waste)

	// Correctness: nothing collectable remains.
	_, ok := nextCollectable(st)
	assert.False(t, ok)

	// Each collected move is individually undoable.
	require.True(t, e.Undo())
	assert.Len(t, e.State().Foundations[card.Spades], 1)
}

func TestAutoCollectTriggersOnFullyRevealedBoard(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	s := newGameState()
	s.Foundations[card.Diamonds] = foundationTo(card.Diamonds, card.RankK)
	s.Foundations[card.Clubs] = foundationTo(card.Clubs, card.RankK)
	s.Foundations[card.Spades] = foundationTo(card.Spades, card.RankJ)
	s.Foundations[card.Hearts] = foundationTo(card.Hearts, card.RankJ)
	s.Tableau[0] = card.Pile{fu(card.Spades, card.RankK)}
	s.Tableau[1] = card.Pile{fu(card.Hearts, card.RankQ)}
	s.Tableau[2] = card.Pile{fu(card.Hearts, card.RankK)}
	s.Tableau[3] = card.Pile{fu(card.Spades, card.RankQ)}
	setState(e, s)

	// One legal move; the fully face-up, empty-stock board then
	// cascades to the win without further input.
	require.True(t, e.ApplyMove(Move{Source: TableauRef(1), Dest: TableauRef(0), Count: 1}))
	assert.True(t, e.State().IsWon)
	assert.Equal(t, DeckSize, e.State().FoundationCount())
}

func TestCollectTerminatesWithinDeckSize(t *testing.T) {
	t.Parallel()

	// A fully collectable layout: every promotion must land in one
	// pass of at most 52 applied moves.
	e := newTestEngine(t, 1)
	s := newGameState()
	for i, suit := range card.Suits {
		col := make(card.Pile, 0, 13)
		for r := card.RankK; r >= card.RankA; r-- {
			col = append(col, fu(suit, r))
		}
		s.Tableau[i] = col
	}
	setState(e, s)

	collected := e.CollectAllAvailable()
	assert.Len(t, collected, DeckSize)
	assert.True(t, e.State().IsWon)
}
