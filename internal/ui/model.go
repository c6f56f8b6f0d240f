// Package ui is the terminal client: a Bubble Tea program rendering
// the board with lipgloss and translating keyboard and mouse input
// into engine calls. All game logic lives in the engine; this package
// only measures, draws, and forwards gestures.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"

	"klondike/internal/game/drag"
	"klondike/internal/game/engine"
)

const doubleClickWindow = 400 * time.Millisecond

// Model is the Bubble Tea model for one solitaire session.
type Model struct {
	engine *engine.Engine
	keys   KeyMap
	help   help.Model
	watch  stopwatch.Model

	width  int
	height int
	status string

	// Active pointer gesture. The engine holds the drag session; the
	// model only tracks its on-screen box.
	dragging bool
	grabBox  drag.Rect
	pressX   int
	pressY   int
	curX     int
	curY     int
	hover    *drag.Target

	lastBoardClick time.Time
}

// NewModel wires a model around an engine and mounts the board's drop
// targets into its registry.
func NewModel(e *engine.Engine) Model {
	mountTargets(e)
	return Model{
		engine: e,
		keys:   defaultKeyMap(),
		help:   help.New(),
		watch:  stopwatch.NewWithInterval(time.Second),
	}
}

func (m Model) Init() tea.Cmd {
	return m.watch.Start()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.watch, cmd = m.watch.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg, cmd)
	case tea.MouseMsg:
		return m.handleMouse(msg, cmd)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Draw):
		m.endDrag()
		if !m.engine.DrawCard() {
			m.status = "Nothing left to draw."
		}

	case key.Matches(msg, m.keys.Undo):
		m.endDrag()
		if !m.engine.Undo() {
			m.status = "Nothing to undo."
		}

	case key.Matches(msg, m.keys.Hint):
		if h := m.engine.GetHint(); h != nil {
			switch h.Kind {
			case engine.HintDraw:
				m.status = "Try drawing from the stock."
			default:
				m.status = fmt.Sprintf("Try moving the highlighted %s.", h.CardID)
			}
		} else {
			m.status = "No moves available."
		}

	case key.Matches(msg, m.keys.Collect):
		m.endDrag()
		n := len(m.engine.CollectAllAvailable())
		m.status = fmt.Sprintf("Collected %d card(s).", n)

	case key.Matches(msg, m.keys.New):
		return m.newGame(engine.DealRandom, cmd)

	case key.Matches(msg, m.keys.Solvable):
		return m.newGame(engine.DealSolvable, cmd)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, tea.Batch(cmd, m.syncWatch())
}

func (m Model) handleMouse(msg tea.MouseMsg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.curX, m.curY = msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, cmd
		}
		m.status = ""
		m.pressDown(msg.X, msg.Y)
	case tea.MouseActionMotion:
		if m.dragging {
			m.hover = m.engine.ResolveTarget(m.dragBox(), m.pointer())
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.engine.AttemptDrop(m.dragBox(), m.pointer())
			m.endDrag()
		}
	}

	return m, tea.Batch(cmd, m.syncWatch())
}

// pressDown starts the gesture under the pointer: a draw click on the
// stock, a drag pickup on any draggable card, or a double-click on dead
// board space to collect.
func (m *Model) pressDown(x, y int) {
	m.endDrag()
	s := m.engine.State()

	ref, idx, ok := HitTest(s, x, y)
	if !ok {
		if time.Since(m.lastBoardClick) < doubleClickWindow {
			n := len(m.engine.CollectAllAvailable())
			if n > 0 {
				m.status = fmt.Sprintf("Collected %d card(s).", n)
			}
			m.lastBoardClick = time.Time{}
			return
		}
		m.lastBoardClick = time.Now()
		return
	}

	if ref.Kind == engine.PileStock {
		if !m.engine.DrawCard() {
			m.status = "Nothing left to draw."
		}
		return
	}

	if m.engine.StartDrag(ref, idx) != nil {
		m.dragging = true
		m.grabBox = sourceRect(s, ref, idx)
		m.pressX, m.pressY = x, y
		m.hover = nil
	}
}

func (m *Model) endDrag() {
	m.engine.CancelDrag()
	m.dragging = false
	m.hover = nil
}

// dragBox is the pickup box translated by the pointer's travel since
// the press.
func (m Model) dragBox() drag.Rect {
	return m.grabBox.Translate(float64(m.curX-m.pressX), float64(m.curY-m.pressY))
}

func (m Model) pointer() drag.Point {
	return drag.Point{X: float64(m.curX), Y: float64(m.curY)}
}

func (m Model) newGame(mode engine.DealMode, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.endDrag()
	m.engine.NewGame(mode)
	if m.engine.DealDegraded() {
		m.status = "No verified solvable deal found; dealt a random one."
	}
	return m, tea.Batch(cmd, m.watch.Reset(), m.watch.Start())
}

// syncWatch stops the clock once the game is won.
func (m *Model) syncWatch() tea.Cmd {
	if m.engine.State().IsWon && m.watch.Running() {
		return m.watch.Stop()
	}
	return nil
}
