// Package rule holds the pure legality predicates for Klondike.
//
// These predicates are the single source of truth for move legality;
// the executor, the drag resolver, the hint scan and the auto-collect
// loop all call them instead of re-deriving the rules.
package rule

import (
	"klondike/internal/game/card"
)

// CanPlaceOnFoundation reports whether c may be placed on top of the
// given foundation pile: an Ace on an empty pile, otherwise the same
// suit one rank above the current top.
func CanPlaceOnFoundation(foundation card.Pile, c card.Card) bool {
	top, ok := foundation.Top()
	if !ok {
		return c.Rank == card.RankA
	}
	return top.Suit == c.Suit && c.Rank == top.Rank+1
}

// CanPlaceOnTableau reports whether c may be placed on top of the given
// tableau column: a King on an empty column, otherwise the opposite
// color one rank below a face-up top.
func CanPlaceOnTableau(column card.Pile, c card.Card) bool {
	top, ok := column.Top()
	if !ok {
		return c.Rank == card.RankK
	}
	if !top.FaceUp {
		return false
	}
	return c.Color() != top.Color() && c.Rank == top.Rank-1
}

// IsMovableRun reports whether run may be picked up as a unit: every
// card face up and every adjacent pair already descending by one rank
// with alternating colors. A single face-up card is always a run.
func IsMovableRun(run []card.Card) bool {
	if len(run) == 0 {
		return false
	}
	for i, c := range run {
		if !c.FaceUp {
			return false
		}
		if i == 0 {
			continue
		}
		prev := run[i-1]
		if c.Color() == prev.Color() || c.Rank != prev.Rank-1 {
			return false
		}
	}
	return true
}
