package engine

import (
	"klondike/internal/game/card"
	"klondike/internal/game/rule"
	"klondike/internal/logger"

	"klondike/internal/events"
)

// HintKind classifies what a hint points at.
type HintKind string

const (
	HintFoundation HintKind = "foundation"
	HintTableau    HintKind = "tableau"
	HintDraw       HintKind = "draw"
)

// Hint describes one suggested move for the UI to highlight.
type Hint struct {
	CardID string
	Kind   HintKind
}

// GetHint scans the current state for a suggestion and remembers it as
// transient UI state until ClearHint or the next mutation. Scan order:
// first legal foundation move (waste, then tableau left to right),
// then first legal tableau move, then a draw when one is possible.
func (e *Engine) GetHint() *Hint {
	e.hint = findHint(e.state)
	return e.hint
}

// ClearHint discards the current hint.
func (e *Engine) ClearHint() {
	e.hint = nil
}

// CurrentHint returns the hint set by the last GetHint, if any.
func (e *Engine) CurrentHint() *Hint {
	return e.hint
}

func findHint(s *GameState) *Hint {
	// Stock cards are face down and can never move straight to a
	// foundation, so the foundation pass starts at the waste.
	if top, ok := s.Waste.Top(); ok && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
		return &Hint{CardID: top.ID, Kind: HintFoundation}
	}
	for i := range s.Tableau {
		if top, ok := s.Tableau[i].Top(); ok && top.FaceUp && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
			return &Hint{CardID: top.ID, Kind: HintFoundation}
		}
	}

	if top, ok := s.Waste.Top(); ok {
		for j := range s.Tableau {
			if rule.CanPlaceOnTableau(s.Tableau[j], top) {
				return &Hint{CardID: top.ID, Kind: HintTableau}
			}
		}
	}
	for i := range s.Tableau {
		col := s.Tableau[i]
		for k := range col {
			if !col[k].FaceUp {
				continue
			}
			run := col[k:]
			if !rule.IsMovableRun(run) {
				continue
			}
			for j := range s.Tableau {
				if j == i {
					continue
				}
				// A bottomed king sliding to another empty column is
				// not a useful suggestion.
				if len(s.Tableau[j]) == 0 && k == 0 {
					continue
				}
				if rule.CanPlaceOnTableau(s.Tableau[j], run[0]) {
					return &Hint{CardID: run[0].ID, Kind: HintTableau}
				}
			}
		}
	}

	if len(s.Stock) > 0 {
		return &Hint{CardID: s.Stock[len(s.Stock)-1].ID, Kind: HintDraw}
	}
	if len(s.Waste) > 0 {
		return &Hint{Kind: HintDraw}
	}
	return nil
}

// CollectedMove records one automatic foundation promotion.
type CollectedMove struct {
	CardID string
	From   PileRef
	Suit   card.Suit
}

// CollectAllAvailable repeatedly promotes the first waste or tableau
// top card that fits a foundation until none does, returning the
// applied sequence for the UI to pace its animations. Each promotion
// strictly shrinks the cards outside the foundations, so the loop is
// bounded by the deck size.
func (e *Engine) CollectAllAvailable() []CollectedMove {
	if e.collecting {
		return nil
	}
	e.collecting = true
	defer func() { e.collecting = false }()

	var collected []CollectedMove
	for range DeckSize {
		m, ok := nextCollectable(e.state)
		if !ok {
			break
		}
		top, _ := e.state.Pile(m.Source).Top()
		if !e.ApplyMove(m) {
			break
		}
		collected = append(collected, CollectedMove{
			CardID: top.ID,
			From:   m.Source,
			Suit:   m.Dest.Suit,
		})
	}
	return collected
}

func nextCollectable(s *GameState) (Move, bool) {
	if top, ok := s.Waste.Top(); ok && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
		return Move{Source: WasteRef(), Dest: FoundationRef(top.Suit), Count: 1}, true
	}
	for i := range s.Tableau {
		if top, ok := s.Tableau[i].Top(); ok && top.FaceUp && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
			return Move{Source: TableauRef(i), Dest: FoundationRef(top.Suit), Count: 1}, true
		}
	}
	return Move{}, false
}

// HasNoMoves reports the flag maintained by the no-moves scan.
func (e *Engine) HasNoMoves() bool {
	return e.hasNoMoves
}

// CheckForAvailableMoves re-runs the no-moves scan and returns the
// resulting flag. A won game is never "stuck".
func (e *Engine) CheckForAvailableMoves() bool {
	e.refreshNoMoves()
	return e.hasNoMoves
}

// refreshNoMoves recomputes hasNoMoves after a mutation and emits the
// NoMoves event on the transition into a stuck state, once per game.
func (e *Engine) refreshNoMoves() {
	stuck := isStuck(e.state)
	e.hasNoMoves = stuck
	if stuck && !e.noMovesEmitted {
		e.noMovesEmitted = true
		logger.LogInfo("game %s has no available moves", e.gameID)
		e.sink.OnNoMoves(events.NoMoves{GameID: e.gameID})
	}
}

// isStuck reports whether no legal move exists now and none can appear
// from the stock and waste even after a full recycle. The win check
// short-circuits first so the final promotion is never reported as
// stuck.
func isStuck(s *GameState) bool {
	if IsWonState(s) {
		return false
	}

	if h := findHint(s); h != nil && h.Kind != HintDraw {
		return false
	}

	// Every stock and waste card becomes a waste top at some point of
	// a full recycle, and the board tops cannot change without a move
	// happening first, so checking each card against the current tops
	// is exact.
	playable := func(c card.Card) bool {
		c.FaceUp = true
		if rule.CanPlaceOnFoundation(s.Foundations[c.Suit], c) {
			return true
		}
		for j := range s.Tableau {
			if rule.CanPlaceOnTableau(s.Tableau[j], c) {
				return true
			}
		}
		return false
	}
	for _, c := range s.Stock {
		if playable(c) {
			return false
		}
	}
	for _, c := range s.Waste {
		if playable(c) {
			return false
		}
	}
	return true
}
