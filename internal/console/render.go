package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
)

// Renderer prints the game as it happens. It implements game.Observer.
type Renderer struct {
	w      io.Writer
	pal    *Palette
	viewer string // other players' draws are hidden when set
}

// NewRenderer returns a renderer writing to w. viewer names the local human
// player whose draws may be shown; pass "" to show every draw.
func NewRenderer(w io.Writer, pal *Palette, viewer string) *Renderer {
	return &Renderer{w: w, pal: pal, viewer: viewer}
}

func (r *Renderer) Observe(ctx context.Context, e log.GameEvent, snap game.Snapshot) {
	switch e.Type {
	case log.EventNewTurn:
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, RenderTable(snap, r.pal))
		r.pal.Header.Fprintln(r.w, e.Details)
	case log.EventPhaseChange:
		r.pal.Header.Fprintf(r.w, "\n--- %s ---\n", e.Phase)
	case log.EventDraw:
		if r.viewer != "" && e.Player != r.viewer {
			r.pal.Muted.Fprintf(r.w, "%s draws a card\n", e.Player)
			return
		}
		r.line(r.pal.Muted, e)
	case log.EventDeal, log.EventStartingRoll, log.EventTake:
		r.line(r.pal.Muted, e)
	case log.EventEndTriggered, log.EventPlayerLeft, log.EventInvalidSelection:
		r.line(r.pal.Warn, e)
	case log.EventWin:
		if snap.Result != nil {
			fmt.Fprintln(r.w)
			fmt.Fprintln(r.w, RenderTable(snap, r.pal))
			fmt.Fprintln(r.w, RenderResult(snap.Result, r.pal))
		}
		r.line(r.pal.Header, e)
	default:
		r.line(r.pal.Info, e)
	}
}

func (r *Renderer) line(c *color.Color, e log.GameEvent) {
	c.Fprintln(r.w, e.Details)
}

// RenderTable draws the parade and every player's hand size and open
// collection.
func RenderTable(snap game.Snapshot, pal *Palette) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Turn %d · %s · deck %d", snap.Turn, snap.Phase, snap.DeckCount))

	header := table.Row{"Player", "Hand"}
	for _, c := range game.Colors {
		header = append(header, c.String())
	}
	header = append(header, "Points")
	t.AppendHeader(header)

	for _, p := range snap.Players {
		name := p.Name
		if p.Name == snap.Current {
			name = "> " + name
		}
		row := table.Row{name, p.HandCount}
		points := 0
		for _, c := range game.Colors {
			row = append(row, columnCell(p.Open[c], pal))
			for _, card := range p.Open[c] {
				points += card.Value
			}
		}
		row = append(row, points)
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"Parade", len(snap.Parade), pal.FormatCards(snap.Parade)})

	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: len(header), Align: text.AlignRight},
	})
	return t.Render()
}

func columnCell(cards []game.Card, pal *Palette) string {
	if len(cards) == 0 {
		return ""
	}
	values := make([]string, len(cards))
	for i, c := range cards {
		values[i] = fmt.Sprint(c.Face)
		if c.Flipped {
			values[i] += "*"
		}
	}
	return pal.cards[cards[0].Color].Sprint(strings.Join(values, " "))
}

// RenderHand lists a hand with 1-based numbers. When parade is non-nil each
// card also shows what playing it would take.
func RenderHand(hand, parade []game.Card, rules game.Rules, pal *Palette) string {
	t := table.NewWriter()
	t.SetTitle("Your hand")
	if parade != nil {
		t.AppendHeader(table.Row{"#", "Card", "Takes", "Points"})
	} else {
		t.AppendHeader(table.Row{"#", "Card"})
	}
	for i, c := range hand {
		row := table.Row{i + 1, pal.FormatCard(c)}
		if parade != nil {
			_, taken := game.Absorb(parade, c, rules)
			points := 0
			for _, tc := range taken {
				points += tc.Value
			}
			row = append(row, pal.FormatCards(taken), points)
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	return t.Render()
}

// RenderResult draws the final ranking.
func RenderResult(res *game.Result, pal *Palette) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Winner: %s (%s)", res.WinnerName(), res.EndReason))
	t.AppendHeader(table.Row{"Rank", "Player", "Score", "Cards", "Colors"})
	for i, s := range res.Standings {
		name := s.Name
		if i == res.Winner {
			name = pal.Header.Sprint(name)
		}
		t.AppendRow(table.Row{i + 1, name, s.Score, s.OpenCount, s.Colors})
	}
	if len(res.Flips) > 0 {
		flips := make([]string, len(res.Flips))
		for i, f := range res.Flips {
			flips[i] = fmt.Sprintf("%s %s x%d", f.Player, f.Color, f.Cards)
		}
		t.AppendFooter(table.Row{"Flips", strings.Join(flips, ", ")})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return t.Render()
}
