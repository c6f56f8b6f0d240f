package ui

import (
	"klondike/internal/game/card"
	"klondike/internal/game/drag"
	"klondike/internal/game/engine"
)

// Board geometry in terminal cells. The renderer and the mouse hit-test
// share these constants, so a cell the renderer paints is exactly the
// cell HitTest resolves.
const (
	cardWidth  = 5
	cardHeight = 3
	pilePitch  = 7 // card width plus the gap between piles

	boardLeft   = 1
	topRowY     = 1
	tableauY    = 5
	foundationX = 22
)

func stockRect() drag.Rect {
	return drag.Rect{X: boardLeft, Y: topRowY, W: cardWidth, H: cardHeight}
}

func wasteRect() drag.Rect {
	return drag.Rect{X: boardLeft + pilePitch, Y: topRowY, W: cardWidth, H: cardHeight}
}

// foundationRect returns the box of the i-th foundation slot, indexed
// in card.Suits order.
func foundationRect(i int) drag.Rect {
	return drag.Rect{X: foundationX + float64(i*pilePitch), Y: topRowY, W: cardWidth, H: cardHeight}
}

// columnRect covers a tableau column's full fan: one row per covered
// card plus the top card's box. Empty columns keep a placeholder box so
// kings still have something to land on.
func columnRect(s *engine.GameState, i int) drag.Rect {
	n := len(s.Tableau[i])
	h := cardHeight
	if n > 0 {
		h = n - 1 + cardHeight
	}
	return drag.Rect{
		X: float64(boardLeft + i*pilePitch),
		Y: tableauY,
		W: cardWidth,
		H: float64(h),
	}
}

// runRect is the on-screen box of the run starting at cardIndex in a
// tableau column, used as the drag box origin on pickup.
func runRect(s *engine.GameState, col, cardIndex int) drag.Rect {
	n := len(s.Tableau[col])
	return drag.Rect{
		X: float64(boardLeft + col*pilePitch),
		Y: float64(tableauY + cardIndex),
		W: cardWidth,
		H: float64(n - 1 - cardIndex + cardHeight),
	}
}

func suitIndex(suit card.Suit) int {
	for i, s := range card.Suits {
		if s == suit {
			return i
		}
	}
	return 0
}

// sourceRect is the pickup box for any draggable pile position.
func sourceRect(s *engine.GameState, ref engine.PileRef, cardIndex int) drag.Rect {
	switch ref.Kind {
	case engine.PileTableau:
		return runRect(s, ref.Index, cardIndex)
	case engine.PileFoundation:
		return foundationRect(suitIndex(ref.Suit))
	default:
		return wasteRect()
	}
}

// HitTest maps a terminal cell to the pile and card index under it.
// Clicks on the stock report index 0: the stock is click-to-draw, never
// dragged. The boolean is false for dead space and empty piles other
// than the stock.
func HitTest(s *engine.GameState, x, y int) (engine.PileRef, int, bool) {
	p := drag.Point{X: float64(x), Y: float64(y)}

	if stockRect().Contains(p) {
		return engine.StockRef(), 0, true
	}
	if wasteRect().Contains(p) && len(s.Waste) > 0 {
		return engine.WasteRef(), len(s.Waste) - 1, true
	}
	for i, suit := range card.Suits {
		if foundationRect(i).Contains(p) && len(s.Foundations[suit]) > 0 {
			return engine.FoundationRef(suit), len(s.Foundations[suit]) - 1, true
		}
	}
	for i := range s.Tableau {
		n := len(s.Tableau[i])
		if n == 0 || !columnRect(s, i).Contains(p) {
			continue
		}
		idx := y - tableauY
		if idx > n-1 {
			idx = n - 1 // inside the top card's box
		}
		return engine.TableauRef(i), idx, true
	}
	return engine.PileRef{}, 0, false
}

// mountTargets registers the board's drop targets with the engine. The
// bounds funcs read the live game state, so registered once they stay
// correct across moves and new games.
func mountTargets(e *engine.Engine) {
	reg := e.Targets()
	reg.Clear()
	for i := 0; i < engine.TableauColumns; i++ {
		reg.Register(
			drag.Target{Kind: drag.TargetTableau, Index: i},
			func() drag.Rect { return columnRect(e.State(), i) },
		)
	}
	for i, suit := range card.Suits {
		reg.Register(
			drag.Target{Kind: drag.TargetFoundation, Suit: suit},
			func() drag.Rect { return foundationRect(i) },
		)
	}
}
