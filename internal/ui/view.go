package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"klondike/internal/game/card"
	"klondike/internal/game/drag"
	"klondike/internal/game/engine"
)

const gap = "  " // pilePitch minus cardWidth

func (m Model) View() string {
	s := m.engine.State()

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(titleStyle.Render("Klondike"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("   Moves: %d   Time: %s", s.Moves, fmtDuration(m.watch.Elapsed()))))
	b.WriteString("\n")

	m.renderTopRow(&b, s)
	b.WriteString("\n")
	m.renderTableau(&b, s)
	b.WriteString("\n")
	b.WriteString(" " + m.statusLine(s) + "\n")
	b.WriteString(" " + m.help.View(m.keys) + "\n")
	return b.String()
}

// renderTopRow draws stock, waste and the four foundations at the cell
// positions the layout promises.
func (m Model) renderTopRow(b *strings.Builder, s *engine.GameState) {
	stock := m.stockCell(s)
	waste := m.pileCell(s.Waste, engine.WasteRef(), " ")
	founds := make([][]string, len(card.Suits))
	for i, suit := range card.Suits {
		founds[i] = m.pileCell(s.Foundations[suit], engine.FoundationRef(suit), suit.String())
	}

	pad := strings.Repeat(" ", foundationX-(boardLeft+pilePitch+cardWidth))
	for r := 0; r < cardHeight; r++ {
		b.WriteString(" ")
		b.WriteString(stock[r])
		b.WriteString(gap)
		b.WriteString(waste[r])
		b.WriteString(pad)
		for i := range founds {
			if i > 0 {
				b.WriteString(gap)
			}
			b.WriteString(founds[i][r])
		}
		b.WriteString("\n")
	}
}

func (m Model) renderTableau(b *strings.Builder, s *engine.GameState) {
	cols := make([][]string, engine.TableauColumns)
	rows := 0
	for i := range s.Tableau {
		cols[i] = m.columnCell(s, i)
		if len(cols[i]) > rows {
			rows = len(cols[i])
		}
	}

	blank := strings.Repeat(" ", cardWidth)
	for r := 0; r < rows; r++ {
		b.WriteString(" ")
		for i := range cols {
			if i > 0 {
				b.WriteString(gap)
			}
			if r < len(cols[i]) {
				b.WriteString(cols[i][r])
			} else {
				b.WriteString(blank)
			}
		}
		b.WriteString("\n")
	}
}

// columnCell renders one tableau column: a single line per covered
// card, a full box for the top card, a placeholder for an empty column.
func (m Model) columnCell(s *engine.GameState, i int) []string {
	col := s.Tableau[i]
	if len(col) == 0 {
		return boxLines("   ", m.pileStyle(engine.TableauRef(i), slotStyle))
	}

	lines := make([]string, 0, len(col)+2)
	for j, c := range col[:len(col)-1] {
		st := m.cardStyle(c, engine.TableauRef(i), j)
		if c.FaceUp {
			lines = append(lines, st.Render("│"+cardLabel(c)+"│"))
		} else {
			lines = append(lines, backStyle.Render("│░░░│"))
		}
	}
	top := col[len(col)-1]
	st := m.cardStyle(top, engine.TableauRef(i), len(col)-1)
	st = m.pileStyle(engine.TableauRef(i), st)
	return append(lines, cardBox(top, st)...)
}

func (m Model) stockCell(s *engine.GameState) []string {
	if len(s.Stock) == 0 {
		label := " ↻ "
		if len(s.Waste) == 0 {
			label = "   "
		}
		return boxLines(label, slotStyle)
	}
	st := backStyle
	if h := m.engine.CurrentHint(); h != nil && h.Kind == engine.HintDraw {
		st = hintStyle
	}
	return boxLines("░░░", st)
}

// pileCell renders a single-card pile box (waste or foundation) showing
// its top card, or a placeholder with the given label.
func (m Model) pileCell(pile card.Pile, ref engine.PileRef, empty string) []string {
	top, ok := pile.Top()
	if !ok {
		return boxLines(" "+empty+" ", m.pileStyle(ref, slotStyle))
	}
	st := m.cardStyle(top, ref, len(pile)-1)
	return cardBox(top, m.pileStyle(ref, st))
}

// cardStyle picks the card's color, overridden by the hint highlight
// and the active drag's dimming.
func (m Model) cardStyle(c card.Card, ref engine.PileRef, index int) lipgloss.Style {
	if d := m.engine.Dragging(); m.dragging && d != nil && d.Source.Equal(ref) && index >= d.StartIndex {
		return dragStyle
	}
	if h := m.engine.CurrentHint(); h != nil && h.CardID == c.ID {
		return hintStyle
	}
	if c.Color() == card.Red {
		return redStyle
	}
	return blackStyle
}

// pileStyle highlights the pile the resolver currently favors.
func (m Model) pileStyle(ref engine.PileRef, st lipgloss.Style) lipgloss.Style {
	if m.hover == nil {
		return st
	}
	hoverRef := engine.TableauRef(m.hover.Index)
	if m.hover.Kind == drag.TargetFoundation {
		hoverRef = engine.FoundationRef(m.hover.Suit)
	}
	if hoverRef.Equal(ref) {
		return hoverStyle
	}
	return st
}

func (m Model) statusLine(s *engine.GameState) string {
	switch {
	case s.IsWon:
		return winStyle.Render(fmt.Sprintf("🎉 You won in %d moves — %s", s.Moves, fmtDuration(m.watch.Elapsed())))
	case m.dragging:
		d := m.engine.Dragging()
		if d != nil && len(d.Cards) > 0 {
			return statusStyle.Render(fmt.Sprintf("Dragging %s…", d.Cards[0]))
		}
	case m.engine.HasNoMoves():
		return stuckStyle.Render("No moves available. Press n for a new game.")
	}
	return statusStyle.Render(m.status)
}

// cardBox renders a card as a 3-line, 5-cell box.
func cardBox(c card.Card, st lipgloss.Style) []string {
	if !c.FaceUp {
		return boxLines("░░░", backStyle)
	}
	return boxLines(cardLabel(c), st)
}

func boxLines(label string, st lipgloss.Style) []string {
	return []string{
		st.Render("┌───┐"),
		st.Render("│" + label + "│"),
		st.Render("└───┘"),
	}
}

// cardLabel is the card's face padded to the 3-cell box interior.
func cardLabel(c card.Card) string {
	return fmt.Sprintf("%-3s", c.String())
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
