package engine

import (
	"strings"

	"klondike/internal/game/card"
	"klondike/internal/game/rule"
)

// Solve reports whether the game can be played from s to a win within
// the given node budget. It is the verification step behind
// DealSolvable: a true result means an actual winning sequence of
// legal moves was found, a false result means none was found before
// the budget ran out — not that the deal is proven unsolvable.
func Solve(s *GameState, nodeBudget int) bool {
	sv := &solver{
		visited: make(map[string]struct{}),
		budget:  nodeBudget,
	}
	return sv.search(s.Clone())
}

// solver is a depth-first search over cloned states with a visited set
// keyed by an exact pile encoding. Move ordering: forced safe
// promotions, then promotions, face-down-revealing tableau moves,
// waste moves, remaining tableau moves, and finally draw/recycle.
type solver struct {
	visited map[string]struct{}
	budget  int
}

func (sv *solver) search(s *GameState) bool {
	if IsWonState(s) {
		return true
	}
	if sv.budget <= 0 {
		return false
	}
	sv.budget--

	key := encodeState(s)
	if _, seen := sv.visited[key]; seen {
		return false
	}
	sv.visited[key] = struct{}{}

	// A safe promotion can never hurt, so take it unconditionally and
	// skip the sibling branches.
	if next := safePromotion(s); next != nil {
		return sv.search(next)
	}

	for _, next := range successors(s) {
		if sv.search(next) {
			return true
		}
	}
	return false
}

// moveCards clones s and moves the top count cards from src to dst,
// flipping the exposed source tableau card. It mirrors the executor's
// semantics without undo bookkeeping.
func moveCards(s *GameState, src, dst PileRef, count int) *GameState {
	c := s.Clone()
	from := c.Pile(src)
	run := append([]card.Card(nil), from[len(from)-count:]...)
	c.setPile(src, from[:len(from)-count])
	if src.Kind == PileTableau {
		if col := c.Tableau[src.Index]; len(col) > 0 && !col[len(col)-1].FaceUp {
			col[len(col)-1].FaceUp = true
		}
	}
	c.setPile(dst, append(c.Pile(dst), run...))
	c.Moves++
	c.IsWon = IsWonState(c)
	return c
}

// safePromotion returns the state after a foundation promotion that is
// always correct to make: Aces and Twos, or any card whose rank is at
// most one above both opposite-color foundation tops.
func safePromotion(s *GameState) *GameState {
	safe := func(c card.Card) bool {
		if !rule.CanPlaceOnFoundation(s.Foundations[c.Suit], c) {
			return false
		}
		if c.Rank <= card.Rank2 {
			return true
		}
		oppMin := card.RankK
		for _, suit := range card.Suits {
			if suit.Color() == c.Color() {
				continue
			}
			var topRank card.Rank
			if top, ok := s.Foundations[suit].Top(); ok {
				topRank = top.Rank
			}
			if topRank < oppMin {
				oppMin = topRank
			}
		}
		return c.Rank <= oppMin+1
	}

	if top, ok := s.Waste.Top(); ok && safe(top) {
		return moveCards(s, WasteRef(), FoundationRef(top.Suit), 1)
	}
	for i := range s.Tableau {
		if top, ok := s.Tableau[i].Top(); ok && top.FaceUp && safe(top) {
			return moveCards(s, TableauRef(i), FoundationRef(top.Suit), 1)
		}
	}
	return nil
}

func successors(s *GameState) []*GameState {
	var out []*GameState

	// Foundation promotions first.
	if top, ok := s.Waste.Top(); ok && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
		out = append(out, moveCards(s, WasteRef(), FoundationRef(top.Suit), 1))
	}
	for i := range s.Tableau {
		if top, ok := s.Tableau[i].Top(); ok && top.FaceUp && rule.CanPlaceOnFoundation(s.Foundations[top.Suit], top) {
			out = append(out, moveCards(s, TableauRef(i), FoundationRef(top.Suit), 1))
		}
	}

	revealing, other := tableauMoves(s)
	out = append(out, revealing...)

	if top, ok := s.Waste.Top(); ok {
		for j := range s.Tableau {
			if rule.CanPlaceOnTableau(s.Tableau[j], top) {
				out = append(out, moveCards(s, WasteRef(), TableauRef(j), 1))
			}
		}
	}

	out = append(out, other...)

	if next := drawState(s); next != nil {
		out = append(out, next)
	}
	return out
}

// tableauMoves enumerates run moves between columns, split into moves
// that reveal a face-down card and the rest. Kings already on column
// bottoms are never shuffled onto empty columns.
func tableauMoves(s *GameState) (revealing, other []*GameState) {
	for i := range s.Tableau {
		col := s.Tableau[i]
		faceUpStart := len(col)
		for k := range col {
			if col[k].FaceUp {
				faceUpStart = k
				break
			}
		}
		for k := faceUpStart; k < len(col); k++ {
			run := col[k:]
			if !rule.IsMovableRun(run) {
				continue
			}
			for j := range s.Tableau {
				if j == i {
					continue
				}
				dest := s.Tableau[j]
				if !rule.CanPlaceOnTableau(dest, run[0]) {
					continue
				}
				if len(dest) == 0 && k == 0 {
					continue
				}
				next := moveCards(s, TableauRef(i), TableauRef(j), len(run))
				if k == faceUpStart && faceUpStart > 0 {
					revealing = append(revealing, next)
				} else {
					other = append(other, next)
				}
			}
		}
	}
	return revealing, other
}

// drawState clones s and draws one card, or recycles the waste when
// the stock is empty. Nil when both piles are empty.
func drawState(s *GameState) *GameState {
	switch {
	case len(s.Stock) > 0:
		c := s.Clone()
		top := c.Stock[len(c.Stock)-1]
		top.FaceUp = true
		c.Stock = c.Stock[:len(c.Stock)-1]
		c.Waste = append(c.Waste, top)
		c.Moves++
		return c
	case len(s.Waste) > 0:
		c := s.Clone()
		c.Stock = make(card.Pile, 0, len(c.Waste))
		for i := len(c.Waste) - 1; i >= 0; i-- {
			w := c.Waste[i]
			w.FaceUp = false
			c.Stock = append(c.Stock, w)
		}
		c.Waste = nil
		c.Moves++
		return c
	}
	return nil
}

// encodeState produces an exact, compact key for the visited set. One
// byte per card (suit*13+rank, high bit = face up), sentinel bytes
// between piles; foundations reduce to their four lengths.
func encodeState(s *GameState) string {
	var b strings.Builder
	b.Grow(DeckSize + 16)
	code := func(c card.Card) byte {
		return byte(int(c.Suit)*13 + int(c.Rank))
	}
	for i := range s.Tableau {
		for _, c := range s.Tableau[i] {
			v := code(c)
			if c.FaceUp {
				v |= 0x80
			}
			b.WriteByte(v)
		}
		b.WriteByte(0xFF)
	}
	for _, suit := range card.Suits {
		b.WriteByte(byte(len(s.Foundations[suit])))
	}
	b.WriteByte(0xFE)
	for _, c := range s.Stock {
		b.WriteByte(code(c))
	}
	b.WriteByte(0xFD)
	for _, c := range s.Waste {
		b.WriteByte(code(c))
	}
	return b.String()
}
