package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klondike/internal/config"
	"klondike/internal/events"
	"klondike/internal/game/card"
	"klondike/internal/game/rule"
)

// --- Test helpers ---

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	return New(config.Default(), events.NewBus(), seed)
}

// setState swaps in a hand-built state, resetting per-game bookkeeping.
func setState(e *Engine, s *GameState) {
	e.state = s
	e.undoStack = nil
	e.drag = nil
	e.hint = nil
	e.hasNoMoves = false
	e.noMovesEmitted = false
	e.wonEmitted = s.IsWon
}

func fu(s card.Suit, r card.Rank) card.Card {
	c := card.New(s, r)
	c.FaceUp = true
	return c
}

func fd(s card.Suit, r card.Rank) card.Card {
	return card.New(s, r)
}

// foundationTo builds a foundation pile from Ace up to rank inclusive.
func foundationTo(s card.Suit, upTo card.Rank) card.Pile {
	pile := make(card.Pile, 0, upTo)
	for r := card.RankA; r <= upTo; r++ {
		pile = append(pile, fu(s, r))
	}
	return pile
}

// nearWonState has 51 cards on foundations and the King of Spades
// alone on the first tableau column.
func nearWonState() *GameState {
	s := newGameState()
	s.Foundations[card.Hearts] = foundationTo(card.Hearts, card.RankK)
	s.Foundations[card.Diamonds] = foundationTo(card.Diamonds, card.RankK)
	s.Foundations[card.Clubs] = foundationTo(card.Clubs, card.RankK)
	s.Foundations[card.Spades] = foundationTo(card.Spades, card.RankQ)
	s.Tableau[0] = card.Pile{fu(card.Spades, card.RankK)}
	return s
}

func assertInvariants(t *testing.T, s *GameState) {
	t.Helper()
	require.NoError(t, s.Validate())

	for _, suit := range card.Suits {
		for i, c := range s.Foundations[suit] {
			assert.Equal(t, suit, c.Suit)
			assert.Equal(t, card.Rank(i+1), c.Rank)
		}
	}
	for i := range s.Tableau {
		col := s.Tableau[i]
		for k := 0; k+1 < len(col); k++ {
			if !col[k].FaceUp || !col[k+1].FaceUp {
				continue
			}
			assert.NotEqual(t, col[k].Color(), col[k+1].Color(),
				"column %d position %d breaks color alternation", i, k)
			assert.Equal(t, col[k].Rank-1, col[k+1].Rank,
				"column %d position %d breaks descending ranks", i, k)
		}
	}
}

// randomLegalMove scans for every executor-legal move and picks one.
func randomLegalMove(s *GameState, rng *rand.Rand) (Move, bool) {
	var moves []Move
	if top, ok := s.Waste.Top(); ok {
		if rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
			moves = append(moves, Move{Source: WasteRef(), Dest: FoundationRef(top.Suit), Count: 1})
		}
		for j := range s.Tableau {
			if rule.CanPlaceOnTableau(s.Tableau[j], top) {
				moves = append(moves, Move{Source: WasteRef(), Dest: TableauRef(j), Count: 1})
			}
		}
	}
	for i := range s.Tableau {
		col := s.Tableau[i]
		if top, ok := col.Top(); ok && top.FaceUp && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
			moves = append(moves, Move{Source: TableauRef(i), Dest: FoundationRef(top.Suit), Count: 1})
		}
		for k := range col {
			if !col[k].FaceUp || !rule.IsMovableRun(col[k:]) {
				continue
			}
			for j := range s.Tableau {
				if j != i && rule.CanPlaceOnTableau(s.Tableau[j], col[k]) {
					moves = append(moves, Move{Source: TableauRef(i), Dest: TableauRef(j), Count: len(col) - k})
				}
			}
		}
	}
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[rng.IntN(len(moves))], true
}

// --- Facade tests ---

func TestNewGameResetsEverything(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 11)
	require.True(t, e.DrawCard())
	require.True(t, e.CanUndo())
	firstID := e.GameID()

	e.NewGame(DealRandom)
	assert.False(t, e.CanUndo())
	assert.Nil(t, e.Dragging())
	assert.Nil(t, e.CurrentHint())
	assert.NotEqual(t, firstID, e.GameID())
	assert.Equal(t, 0, e.State().Moves)
	assertInvariants(t, e.State())
}

func TestConservationUnderRandomPlay(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 99)
	rng := rand.New(rand.NewPCG(99, 7))

	for step := 0; step < 400; step++ {
		if e.State().IsWon {
			break
		}
		m, ok := randomLegalMove(e.State(), rng)
		if ok && rng.IntN(4) > 0 {
			require.True(t, e.ApplyMove(m), "step %d: scanned move must apply", step)
		} else if !e.DrawCard() && !ok {
			break
		}
		assertInvariants(t, e.State())

		// Interleave undo/redo pressure.
		if rng.IntN(10) == 0 && e.CanUndo() {
			require.True(t, e.Undo())
			assertInvariants(t, e.State())
		}
	}
}

func TestWinEmitsEventsOnce(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	var scored []events.CardScored
	var wins []events.GameWon
	require.NoError(t, bus.SubscribeCardScored(func(e events.CardScored) { scored = append(scored, e) }))
	require.NoError(t, bus.SubscribeGameWon(func(e events.GameWon) { wins = append(wins, e) }))

	e := New(config.Default(), bus, 3)
	scored, wins = nil, nil // drop anything from the construction-time deal
	setState(e, nearWonState())

	ok := e.ApplyMove(Move{Source: TableauRef(0), Dest: FoundationRef(card.Spades), Count: 1})
	require.True(t, ok)

	assert.True(t, e.State().IsWon)
	require.Len(t, scored, 1)
	assert.Equal(t, "spades-K", scored[0].CardID)
	assert.Equal(t, 10, scored[0].Points)
	assert.Equal(t, e.GameID(), scored[0].GameID)
	require.Len(t, wins, 1)
	assert.Equal(t, e.State().Moves, wins[0].Moves)

	// Undo and redo the winning move: GameWon stays emitted-once.
	require.True(t, e.Undo())
	assert.False(t, e.State().IsWon)
	require.True(t, e.ApplyMove(Move{Source: TableauRef(0), Dest: FoundationRef(card.Spades), Count: 1}))
	assert.Len(t, wins, 1)
}

func TestWinDetectorIsPure(t *testing.T) {
	t.Parallel()

	s := nearWonState()
	assert.False(t, IsWonState(s))
	assert.Equal(t, 51, s.FoundationCount())

	s.Foundations[card.Spades] = foundationTo(card.Spades, card.RankK)
	s.Tableau[0] = nil
	assert.True(t, IsWonState(s))
}
