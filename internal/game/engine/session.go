package engine

import (
	"klondike/internal/game/card"
	"klondike/internal/game/drag"
	"klondike/internal/game/rule"
)

// DragState is the ephemeral state of an active pointer gesture. It is
// not part of GameState: it is created on pickup and discarded on drop
// or cancel, and holds copies of the dragged cards.
type DragState struct {
	Cards      []card.Card
	Source     PileRef
	StartIndex int // index of the first dragged card within the source pile
}

// Dragging returns the active drag session, nil when none.
func (e *Engine) Dragging() *DragState {
	return e.drag
}

// StartDrag begins a drag of the run starting at cardIndex in source.
// Returns nil when the pickup is illegal: face-down cards, broken
// runs, non-top waste/foundation cards, or the stock.
func (e *Engine) StartDrag(source PileRef, cardIndex int) *DragState {
	var pile card.Pile
	switch source.Kind {
	case PileTableau:
		if source.Index < 0 || source.Index >= TableauColumns {
			return nil
		}
		pile = e.state.Tableau[source.Index]
	case PileWaste:
		pile = e.state.Waste
	case PileFoundation:
		pile = e.state.Foundations[source.Suit]
	default:
		return nil
	}
	if cardIndex < 0 || cardIndex >= len(pile) {
		return nil
	}
	// Waste and foundation piles only release their top card.
	if source.Kind != PileTableau && cardIndex != len(pile)-1 {
		return nil
	}

	run := append([]card.Card(nil), pile[cardIndex:]...)
	if _, ok := e.pickRun(source, len(run)); !ok {
		return nil
	}

	e.drag = &DragState{Cards: run, Source: source, StartIndex: cardIndex}
	return e.drag
}

// CancelDrag discards the drag session. The game state is untouched —
// the session only ever held copies.
func (e *Engine) CancelDrag() {
	e.drag = nil
}

// ResolveTarget runs the resolver for the active drag without dropping,
// so the UI can highlight the would-be destination during motion.
func (e *Engine) ResolveTarget(dragBox drag.Rect, pointer drag.Point) *drag.Target {
	d := e.drag
	if d == nil {
		return nil
	}
	return e.resolver.Resolve(dragBox, pointer, e.targets.Snapshot(), e.dropLegal(d))
}

// AttemptDrop resolves the best drop target for the active drag and,
// when one exists, executes the move. The drag session ends either
// way; a failed resolution leaves the state unmodified.
func (e *Engine) AttemptDrop(dragBox drag.Rect, pointer drag.Point) bool {
	d := e.drag
	if d == nil {
		return false
	}
	e.drag = nil

	target := e.resolver.Resolve(dragBox, pointer, e.targets.Snapshot(), e.dropLegal(d))
	if target == nil {
		return false
	}
	return e.ApplyMove(Move{
		Source: d.Source,
		Dest:   refForTarget(*target),
		Count:  len(d.Cards),
	})
}

// dropLegal builds the resolver's legality predicate for a drag: the
// rules predicates plus the no-degenerate-drop-on-source policy.
func (e *Engine) dropLegal(d *DragState) func(drag.Target) bool {
	return func(t drag.Target) bool {
		ref := refForTarget(t)
		if ref.Equal(d.Source) {
			return false
		}
		m := Move{Source: d.Source, Dest: ref, Count: len(d.Cards)}
		return e.previewMove(m, d.Cards)
	}
}

// previewMove checks destination legality without touching state.
func (e *Engine) previewMove(m Move, run []card.Card) bool {
	switch m.Dest.Kind {
	case PileTableau:
		if m.Dest.Index < 0 || m.Dest.Index >= TableauColumns {
			return false
		}
		return rule.CanPlaceOnTableau(e.state.Tableau[m.Dest.Index], run[0])
	case PileFoundation:
		if len(run) != 1 || run[0].Suit != m.Dest.Suit {
			return false
		}
		return rule.CanPlaceOnFoundation(e.state.Foundations[m.Dest.Suit], run[0])
	}
	return false
}

func refForTarget(t drag.Target) PileRef {
	if t.Kind == drag.TargetFoundation {
		return FoundationRef(t.Suit)
	}
	return TableauRef(t.Index)
}
