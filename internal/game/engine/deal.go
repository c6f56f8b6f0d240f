package engine

import (
	"math/rand/v2"
	"time"

	"klondike/internal/game/card"
	"klondike/internal/logger"
)

// DealMode selects the dealing strategy for a new game.
type DealMode string

const (
	// DealRandom deals a uniform shuffle with no guarantee.
	DealRandom DealMode = "random"
	// DealSolvable only returns layouts the solver has verified can be
	// played to a win.
	DealSolvable DealMode = "solvable"
)

// Dealer produces initial layouts.
type Dealer struct {
	rng         *rand.Rand
	maxAttempts int
	nodeBudget  int
}

// NewDealer returns a dealer. A zero seed picks a time-based one;
// tests pass a fixed seed for reproducible layouts. maxAttempts bounds
// the solvable-mode reshuffle loop and nodeBudget bounds each
// verification search.
func NewDealer(seed int64, maxAttempts, nodeBudget int) *Dealer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Dealer{
		rng:         rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		maxAttempts: maxAttempts,
		nodeBudget:  nodeBudget,
	}
}

// Deal produces a fresh GameState. The returned mode is the one
// actually honored: DealSolvable degrades to DealRandom when no
// verified layout is found within maxAttempts, rather than blocking.
func (d *Dealer) Deal(mode DealMode) (*GameState, DealMode) {
	if mode != DealSolvable {
		return d.dealOnce(), DealRandom
	}

	var last *GameState
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		last = d.dealOnce()
		if Solve(last, d.nodeBudget) {
			logger.LogInfo("solvable deal verified on attempt %d", attempt)
			return last, DealSolvable
		}
	}
	logger.LogError("no solvable deal within %d attempts, degrading to random", d.maxAttempts)
	return last, DealRandom
}

// dealOnce shuffles and lays out the standard triangle: column i gets
// i+1 cards with only the last face up, the remaining 24 cards form
// the face-down stock.
func (d *Dealer) dealOnce() *GameState {
	deck := card.NewDeck()
	deck.Shuffle(d.rng)
	return dealFromDeck(deck)
}

func dealFromDeck(deck card.Deck) *GameState {
	s := newGameState()
	next := 0
	for i := range TableauColumns {
		column := make(card.Pile, 0, i+1)
		for j := 0; j <= i; j++ {
			c := deck[next]
			next++
			c.FaceUp = j == i
			column = append(column, c)
		}
		s.Tableau[i] = column
	}
	s.Stock = make(card.Pile, 0, len(deck)-next)
	for _, c := range deck[next:] {
		c.FaceUp = false
		s.Stock = append(s.Stock, c)
	}
	s.StartTime = time.Now()
	return s
}
