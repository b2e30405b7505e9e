// Package console is the terminal front end: colored cards, table rendering
// of the game and the interactive human player.
package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/peterkuimelis/parade/internal/game"
)

// Palette holds the terminal colors used for output.
type Palette struct {
	Header *color.Color
	Info   *color.Color
	Warn   *color.Color
	Prompt *color.Color
	Muted  *color.Color

	cards [game.NumColors]*color.Color
}

// NewPalette returns the default palette. With enabled false every color
// prints plain text.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		Header: color.New(color.FgWhite, color.Bold),
		Info:   color.New(color.FgCyan),
		Warn:   color.New(color.FgHiYellow),
		Prompt: color.New(color.FgHiWhite),
		Muted:  color.New(color.FgHiBlack),
		cards: [game.NumColors]*color.Color{
			game.Red:    color.New(color.FgRed, color.Bold),
			game.Blue:   color.New(color.FgBlue, color.Bold),
			game.Green:  color.New(color.FgGreen, color.Bold),
			game.Yellow: color.New(color.FgYellow, color.Bold),
			game.Purple: color.New(color.FgMagenta, color.Bold),
			game.Black:  color.New(color.FgHiBlack, color.Bold),
		},
	}
	if !enabled {
		for _, c := range p.all() {
			c.DisableColor()
		}
	}
	return p
}

func (p *Palette) all() []*color.Color {
	out := []*color.Color{p.Header, p.Info, p.Warn, p.Prompt, p.Muted}
	return append(out, p.cards[:]...)
}

// FormatCard renders a card in its color. Flipped cards show their printed
// value with a marker since they score 1.
func (p *Palette) FormatCard(c game.Card) string {
	label := fmt.Sprintf("%s %d", c.Color, c.Face)
	if c.Flipped {
		label += "*"
	}
	if !c.Color.Valid() {
		return label
	}
	return p.cards[c.Color].Sprint(label)
}

// FormatCards renders cards separated by spaces, or "-" for none.
func (p *Palette) FormatCards(cards []game.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = p.FormatCard(c)
	}
	return strings.Join(parts, "  ")
}
