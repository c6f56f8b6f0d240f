// Package engine implements the Klondike rules engine: dealing,
// validated move execution with undo, drag sessions, hint and
// auto-collect scans, and win detection. GameState is a single owned
// value mutated only by the executor; everything else reads it.
package engine

import (
	"fmt"
	"time"

	"klondike/internal/game/card"
)

// TableauColumns is the number of tableau columns in Klondike.
const TableauColumns = 7

// DeckSize is the number of cards conserved across every mutation.
const DeckSize = 52

// PileKind identifies one of the four pile families.
type PileKind int

const (
	PileTableau PileKind = iota
	PileFoundation
	PileStock
	PileWaste
)

// PileRef addresses a concrete pile. Index is meaningful for tableau
// refs, Suit for foundation refs.
type PileRef struct {
	Kind  PileKind
	Index int
	Suit  card.Suit
}

// TableauRef addresses tableau column index (0..6).
func TableauRef(index int) PileRef {
	return PileRef{Kind: PileTableau, Index: index}
}

// FoundationRef addresses the foundation pile for suit.
func FoundationRef(suit card.Suit) PileRef {
	return PileRef{Kind: PileFoundation, Suit: suit}
}

// StockRef addresses the stock.
func StockRef() PileRef { return PileRef{Kind: PileStock} }

// WasteRef addresses the waste.
func WasteRef() PileRef { return PileRef{Kind: PileWaste} }

// Equal reports whether two refs address the same pile.
func (r PileRef) Equal(o PileRef) bool {
	if r.Kind != o.Kind {
		return false
	}
	switch r.Kind {
	case PileTableau:
		return r.Index == o.Index
	case PileFoundation:
		return r.Suit == o.Suit
	default:
		return true
	}
}

// GameState is the complete state of one Klondike game.
type GameState struct {
	Tableau     [TableauColumns]card.Pile
	Foundations map[card.Suit]card.Pile
	Stock       card.Pile
	Waste       card.Pile
	Moves       int
	IsWon       bool
	StartTime   time.Time
}

func newGameState() *GameState {
	s := &GameState{
		Foundations: make(map[card.Suit]card.Pile, len(card.Suits)),
	}
	for _, suit := range card.Suits {
		s.Foundations[suit] = nil
	}
	return s
}

// Clone returns a deep copy. The solver branches on clones and tests
// compare them against post-undo states.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		Foundations: make(map[card.Suit]card.Pile, len(s.Foundations)),
		Stock:       append(card.Pile(nil), s.Stock...),
		Waste:       append(card.Pile(nil), s.Waste...),
		Moves:       s.Moves,
		IsWon:       s.IsWon,
		StartTime:   s.StartTime,
	}
	for i := range s.Tableau {
		c.Tableau[i] = append(card.Pile(nil), s.Tableau[i]...)
	}
	for suit, pile := range s.Foundations {
		c.Foundations[suit] = append(card.Pile(nil), pile...)
	}
	return c
}

// FoundationCount returns the number of cards on all foundations.
func (s *GameState) FoundationCount() int {
	n := 0
	for _, pile := range s.Foundations {
		n += len(pile)
	}
	return n
}

// IsWonState is the win detector: all 52 cards on the foundations.
func IsWonState(s *GameState) bool {
	return s.FoundationCount() == DeckSize
}

// AllTableauFaceUp reports whether no tableau card remains face down.
func (s *GameState) AllTableauFaceUp() bool {
	for i := range s.Tableau {
		for _, c := range s.Tableau[i] {
			if !c.FaceUp {
				return false
			}
		}
	}
	return true
}

// Pile returns the pile addressed by ref. Returned slices alias state;
// callers must not mutate them.
func (s *GameState) Pile(ref PileRef) card.Pile {
	switch ref.Kind {
	case PileTableau:
		if ref.Index < 0 || ref.Index >= TableauColumns {
			return nil
		}
		return s.Tableau[ref.Index]
	case PileFoundation:
		return s.Foundations[ref.Suit]
	case PileStock:
		return s.Stock
	case PileWaste:
		return s.Waste
	}
	return nil
}

// normalize keeps empty piles nil so that undo restores states that
// compare deeply equal to their originals.
func normalize(p card.Pile) card.Pile {
	if len(p) == 0 {
		return nil
	}
	return p
}

func (s *GameState) setPile(ref PileRef, pile card.Pile) {
	pile = normalize(pile)
	switch ref.Kind {
	case PileTableau:
		s.Tableau[ref.Index] = pile
	case PileFoundation:
		s.Foundations[ref.Suit] = pile
	case PileStock:
		s.Stock = pile
	case PileWaste:
		s.Waste = pile
	}
}

// Validate checks card conservation: the multiset union of every pile
// is exactly the 52-card deck. A failure indicates an engine bug.
func (s *GameState) Validate() error {
	seen := make(map[string]bool, DeckSize)
	total := 0
	count := func(pile card.Pile) error {
		for _, c := range pile {
			if seen[c.ID] {
				return fmt.Errorf("duplicate card %s", c.ID)
			}
			seen[c.ID] = true
			total++
		}
		return nil
	}
	for i := range s.Tableau {
		if err := count(s.Tableau[i]); err != nil {
			return err
		}
	}
	for _, suit := range card.Suits {
		if err := count(s.Foundations[suit]); err != nil {
			return err
		}
	}
	if err := count(s.Stock); err != nil {
		return err
	}
	if err := count(s.Waste); err != nil {
		return err
	}
	if total != DeckSize {
		return fmt.Errorf("card conservation violated: %d cards on board", total)
	}
	return nil
}
