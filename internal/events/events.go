// Package events carries the engine's outbound notifications.
//
// The engine is handed a Sink at construction time; downstream
// consumers (scoring, reward and "no moves" surfaces) attach to a Bus
// instead of reaching into the engine. Each event slot holds at most
// one active subscriber.
package events

import (
	"errors"
	"sync"
	"time"
)

// ErrSlotOccupied is returned when a slot already has an active
// subscriber.
var ErrSlotOccupied = errors.New("events: subscriber slot occupied")

// CardScored is emitted once per single-card move onto a foundation.
// X and Y are the screen-space center of the destination foundation
// when the presentation layer has registered one, zero otherwise.
type CardScored struct {
	GameID string
	CardID string
	Points int
	X      int
	Y      int
}

// GameWon is emitted once when all 52 cards reach the foundations.
type GameWon struct {
	GameID   string
	Moves    int
	Duration time.Duration
}

// NoMoves is emitted once per game when the no-moves scan concludes
// the game is stuck.
type NoMoves struct {
	GameID string
}

// Sink receives engine notifications. Implementations must not call
// back into the engine from a handler.
type Sink interface {
	OnCardScored(CardScored)
	OnGameWon(GameWon)
	OnNoMoves(NoMoves)
}

// Bus is a Sink that fans events out to at most one subscriber per
// slot. A nil or unsubscribed slot silently drops its events.
type Bus struct {
	mu         sync.Mutex
	cardScored func(CardScored)
	gameWon    func(GameWon)
	noMoves    func(NoMoves)
}

// NewBus returns a Bus with every slot vacant.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeCardScored attaches fn to the card-scored slot.
func (b *Bus) SubscribeCardScored(fn func(CardScored)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cardScored != nil {
		return ErrSlotOccupied
	}
	b.cardScored = fn
	return nil
}

// UnsubscribeCardScored vacates the card-scored slot.
func (b *Bus) UnsubscribeCardScored() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cardScored = nil
}

// SubscribeGameWon attaches fn to the game-won slot.
func (b *Bus) SubscribeGameWon(fn func(GameWon)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gameWon != nil {
		return ErrSlotOccupied
	}
	b.gameWon = fn
	return nil
}

// UnsubscribeGameWon vacates the game-won slot.
func (b *Bus) UnsubscribeGameWon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gameWon = nil
}

// SubscribeNoMoves attaches fn to the no-moves slot.
func (b *Bus) SubscribeNoMoves(fn func(NoMoves)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.noMoves != nil {
		return ErrSlotOccupied
	}
	b.noMoves = fn
	return nil
}

// UnsubscribeNoMoves vacates the no-moves slot.
func (b *Bus) UnsubscribeNoMoves() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.noMoves = nil
}

// OnCardScored implements Sink.
func (b *Bus) OnCardScored(e CardScored) {
	b.mu.Lock()
	fn := b.cardScored
	b.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}

// OnGameWon implements Sink.
func (b *Bus) OnGameWon(e GameWon) {
	b.mu.Lock()
	fn := b.gameWon
	b.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}

// OnNoMoves implements Sink.
func (b *Bus) OnNoMoves(e NoMoves) {
	b.mu.Lock()
	fn := b.noMoves
	b.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}
