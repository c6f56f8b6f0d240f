// Package card defines the 52-card deck used by the Klondike engine.
package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Suit identifies one of the four French suits.
type Suit int

// Rank identifies a card face value, Ace low.
type Rank int

// Color is the suit color used by the tableau alternation rule.
type Color int

const (
	Black Color = iota
	Red
)

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// Suits lists all suits in a stable order, for iteration.
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// suitSymbols maps suits to their display symbols.
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Clubs:    "♣",
	Diamonds: "♦",
}

// suitNames maps suits to the identifiers used in card ids.
var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Clubs:    "clubs",
	Diamonds: "diamonds",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Name returns the lowercase suit name ("spades").
func (s Suit) Name() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "unknown"
}

// Color returns Red for hearts and diamonds, Black otherwise.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
)

// rankNames maps face values to display strings.
var rankNames = map[Rank]string{
	RankA:  "A",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Card is a single playing card. ID is stable for the card's lifetime;
// FaceUp is the only mutable field and is toggled exclusively by the
// move executor.
type Card struct {
	ID     string
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// New creates a face-down card with its canonical id.
func New(suit Suit, rank Rank) Card {
	return Card{
		ID:   fmt.Sprintf("%s-%s", suit.Name(), rank),
		Suit: suit,
		Rank: rank,
	}
}

// Color returns the card's suit color.
func (c Card) Color() Color {
	return c.Suit.Color()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Pile is an ordered sequence of cards. Index 0 is the bottom.
type Pile []Card

// Top returns the last card of the pile, if any.
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}
	return p[len(p)-1], true
}

// Deck is a full 52-card deck.
type Deck []Card

// NewDeck returns the 52 cards in suit-major, Ace-to-King order, all
// face down.
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range Suits {
		for r := RankA; r <= RankK; r++ {
			deck = append(deck, New(s, r))
		}
	}
	return deck
}

// Shuffle permutes the deck uniformly. A nil rng uses the process-wide
// source; tests and the dealer pass a seeded one for reproducibility.
func (d Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { d[i], d[j] = d[j], d[i] }
	if rng != nil {
		rng.Shuffle(len(d), swap)
		return
	}
	rand.Shuffle(len(d), swap)
}
