package engine

import (
	"github.com/google/uuid"

	"klondike/internal/config"
	"klondike/internal/events"
	"klondike/internal/game/card"
	"klondike/internal/game/drag"
	"klondike/internal/logger"
)

// Engine owns one game at a time and is the only writer of its
// GameState. All mutations originate from discrete calls — there is no
// background work — so the engine is used from a single goroutine.
type Engine struct {
	dealer   *Dealer
	resolver *drag.Resolver
	targets  *drag.Registry
	sink     events.Sink

	foundationPoints int

	gameID    string
	state     *GameState
	undoStack []undoRecord
	drag      *DragState
	hint      *Hint

	hasNoMoves     bool
	noMovesEmitted bool
	wonEmitted     bool
	collecting     bool
	dealDegraded   bool
}

// New builds an engine from configuration and an event sink. The sink
// is injected here once instead of through global setters; pass an
// events.Bus to fan notifications out. A zero seed means
// non-deterministic deals.
func New(cfg *config.Config, sink events.Sink, seed int64) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if sink == nil {
		sink = events.NewBus()
	}
	resolver := drag.NewResolver()
	if cfg.Resolver.Sensitivity > 0 {
		resolver.Sensitivity = cfg.Resolver.Sensitivity
	}
	e := &Engine{
		dealer:           NewDealer(seed, cfg.Solver.MaxAttempts, cfg.Solver.NodeBudget),
		resolver:         resolver,
		targets:          drag.NewRegistry(),
		sink:             sink,
		foundationPoints: cfg.Game.FoundationPoints,
	}
	e.NewGame(DealMode(cfg.Game.DealMode))
	return e
}

// NewGame replaces the current game wholesale: fresh deal, empty undo
// history, no drag, no hint.
func (e *Engine) NewGame(mode DealMode) {
	state, effective := e.dealer.Deal(mode)
	e.gameID = uuid.NewString()
	e.state = state
	e.undoStack = nil
	e.drag = nil
	e.hint = nil
	e.hasNoMoves = false
	e.noMovesEmitted = false
	e.wonEmitted = false
	e.dealDegraded = mode == DealSolvable && effective != DealSolvable
	logger.LogInfo("new game %s (mode=%s effective=%s)", e.gameID, mode, effective)
	e.refreshNoMoves()
}

// GameID identifies the current game on every emitted event.
func (e *Engine) GameID() string {
	return e.gameID
}

// State returns the current game state. Callers treat it as read-only;
// every mutation goes through the executor.
func (e *Engine) State() *GameState {
	return e.state
}

// Targets is the drop-target registry the presentation layer populates
// with its measured pile rectangles.
func (e *Engine) Targets() *drag.Registry {
	return e.targets
}

// DealDegraded reports whether the last solvable-mode deal fell back
// to a random one.
func (e *Engine) DealDegraded() bool {
	return e.dealDegraded
}

// foundationPoint returns the registered screen center of a foundation
// pile, or zeros when the presentation layer has not mounted one.
func (e *Engine) foundationPoint(suit card.Suit) (int, int) {
	for _, t := range e.targets.Snapshot() {
		if t.Kind == drag.TargetFoundation && t.Suit == suit {
			center := t.Bounds.Center()
			return int(center.X), int(center.Y)
		}
	}
	return 0, 0
}
