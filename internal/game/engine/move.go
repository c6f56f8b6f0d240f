package engine

import (
	"time"

	"klondike/internal/game/card"
	"klondike/internal/game/rule"
	"klondike/internal/logger"

	"klondike/internal/events"
)

// Move describes moving the top Count cards of Source onto Dest.
type Move struct {
	Source PileRef
	Dest   PileRef
	Count  int
}

type undoKind int

const (
	undoMove undoKind = iota
	undoDraw
	undoRecycle
)

// undoRecord is the inverse description of one applied mutation,
// sufficient to reconstruct the exact prior state without a snapshot.
type undoRecord struct {
	kind    undoKind
	src     PileRef
	dst     PileRef
	count   int
	flipped bool // the move exposed and flipped a face-down source card
}

// CanUndo reports whether an undo record is available.
func (e *Engine) CanUndo() bool {
	return len(e.undoStack) > 0
}

// ApplyMove validates and applies a move, returning false without any
// mutation when the move is illegal. Legality is re-checked here even
// for moves the resolver produced; the executor never trusts its
// caller.
func (e *Engine) ApplyMove(m Move) bool {
	run, ok := e.pickRun(m.Source, m.Count)
	if !ok {
		return false
	}
	if m.Source.Equal(m.Dest) {
		return false
	}

	switch m.Dest.Kind {
	case PileTableau:
		if m.Dest.Index < 0 || m.Dest.Index >= TableauColumns {
			return false
		}
		if !rule.CanPlaceOnTableau(e.state.Tableau[m.Dest.Index], run[0]) {
			return false
		}
	case PileFoundation:
		// Foundations accept single cards, each slot owns its suit.
		if m.Count != 1 || run[0].Suit != m.Dest.Suit {
			return false
		}
		if !rule.CanPlaceOnFoundation(e.state.Foundations[m.Dest.Suit], run[0]) {
			return false
		}
	default:
		return false
	}

	// Execute. The steps below are atomic from the caller's point of
	// view: nothing observes the state until they all complete.
	src := e.state.Pile(m.Source)
	e.state.setPile(m.Source, src[:len(src)-m.Count])

	flipped := false
	if m.Source.Kind == PileTableau {
		if col := e.state.Tableau[m.Source.Index]; len(col) > 0 && !col[len(col)-1].FaceUp {
			col[len(col)-1].FaceUp = true
			flipped = true
		}
	}

	e.state.setPile(m.Dest, append(e.state.Pile(m.Dest), run...))
	e.state.Moves++
	e.undoStack = append(e.undoStack, undoRecord{
		kind:    undoMove,
		src:     m.Source,
		dst:     m.Dest,
		count:   m.Count,
		flipped: flipped,
	})

	if m.Dest.Kind == PileFoundation {
		x, y := e.foundationPoint(m.Dest.Suit)
		e.sink.OnCardScored(events.CardScored{
			GameID: e.gameID,
			CardID: run[0].ID,
			Points: e.foundationPoints,
			X:      x,
			Y:      y,
		})
	}

	e.afterMutation()
	return true
}

// pickRun returns a copy of the cards a move would take from source,
// or false when the pickup itself is illegal.
func (e *Engine) pickRun(source PileRef, count int) ([]card.Card, bool) {
	if count <= 0 {
		return nil, false
	}
	var pile card.Pile
	switch source.Kind {
	case PileTableau:
		if source.Index < 0 || source.Index >= TableauColumns {
			return nil, false
		}
		pile = e.state.Tableau[source.Index]
	case PileWaste:
		if count != 1 {
			return nil, false
		}
		pile = e.state.Waste
	case PileFoundation:
		if count != 1 {
			return nil, false
		}
		pile = e.state.Foundations[source.Suit]
	default:
		return nil, false
	}
	if count > len(pile) {
		return nil, false
	}
	run := append([]card.Card(nil), pile[len(pile)-count:]...)
	if !rule.IsMovableRun(run) {
		return nil, false
	}
	return run, true
}

// DrawCard moves one card stock→waste, or recycles the waste back into
// a face-down stock (reversed, restoring the original draw order) when
// the stock is empty. Returns false when both piles are empty.
func (e *Engine) DrawCard() bool {
	s := e.state
	switch {
	case len(s.Stock) > 0:
		c := s.Stock[len(s.Stock)-1]
		c.FaceUp = true
		s.Stock = s.Stock[:len(s.Stock)-1]
		s.Waste = append(s.Waste, c)
		s.Moves++
		e.undoStack = append(e.undoStack, undoRecord{kind: undoDraw})
	case len(s.Waste) > 0:
		stock := make(card.Pile, 0, len(s.Waste))
		for i := len(s.Waste) - 1; i >= 0; i-- {
			c := s.Waste[i]
			c.FaceUp = false
			stock = append(stock, c)
		}
		s.Stock = stock
		s.Waste = nil
		s.Moves++
		e.undoStack = append(e.undoStack, undoRecord{kind: undoRecycle})
	default:
		return false
	}
	e.afterMutation()
	return true
}

// Undo reverses the most recent mutation exactly, including face-flip
// side effects and the moves counter. No-op on an empty history.
func (e *Engine) Undo() bool {
	if len(e.undoStack) == 0 {
		return false
	}
	rec := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	s := e.state

	switch rec.kind {
	case undoMove:
		dst := s.Pile(rec.dst)
		run := append([]card.Card(nil), dst[len(dst)-rec.count:]...)
		s.setPile(rec.dst, dst[:len(dst)-rec.count])
		if rec.flipped {
			// The card now on top of the source was flipped face up by
			// the move; restore it before putting the run back.
			col := s.Tableau[rec.src.Index]
			col[len(col)-1].FaceUp = false
		}
		s.setPile(rec.src, append(s.Pile(rec.src), run...))
		s.Moves--
	case undoDraw:
		c := s.Waste[len(s.Waste)-1]
		c.FaceUp = false
		s.Waste = normalize(s.Waste[:len(s.Waste)-1])
		s.Stock = append(s.Stock, c)
		s.Moves--
	case undoRecycle:
		waste := make(card.Pile, 0, len(s.Stock))
		for i := len(s.Stock) - 1; i >= 0; i-- {
			c := s.Stock[i]
			c.FaceUp = true
			waste = append(waste, c)
		}
		s.Waste = waste
		s.Stock = nil
		s.Moves--
	}

	s.IsWon = IsWonState(s)
	e.hint = nil
	e.refreshNoMoves()
	return true
}

// afterMutation runs the reactions every mutation triggers: win
// detection, hint invalidation, the no-moves scan, and the automatic
// collect cascade once the whole tableau is face up.
func (e *Engine) afterMutation() {
	s := e.state
	e.hint = nil

	if !s.IsWon && IsWonState(s) {
		s.IsWon = true
		if !e.wonEmitted {
			e.wonEmitted = true
			logger.LogInfo("game %s won in %d moves", e.gameID, s.Moves)
			e.sink.OnGameWon(events.GameWon{
				GameID:   e.gameID,
				Moves:    s.Moves,
				Duration: time.Since(s.StartTime),
			})
		}
	}

	e.refreshNoMoves()

	if !e.collecting && !s.IsWon && s.AllTableauFaceUp() && len(s.Stock) == 0 && len(s.Waste) == 0 {
		e.CollectAllAvailable()
	}
}
