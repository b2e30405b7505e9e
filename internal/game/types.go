package game

import "fmt"

const (
	NumColors          = 6
	MaxValue           = 10
	DeckSize           = NumColors * (MaxValue + 1)
	InitialHandSize    = 5
	InitialParadeSize  = 6
	MinPlayers         = 2
	MaxPlayers         = 6
	FinalSelectionSize = 2
	FlippedValue       = 1
)

// --- Enums ---

// Color is one of the six fixed card colors. The zero value is Red.
type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Black
)

// Colors lists every color in canonical order. Anything that iterates over
// colors (flip evaluation, rendering, views) uses this order.
var Colors = [NumColors]Color{Red, Blue, Green, Yellow, Purple, Black}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	case Purple:
		return "Purple"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the six colors.
func (c Color) Valid() bool {
	return c >= Red && c <= Black
}

// ParseColor is the inverse of Color.String (case-sensitive).
func ParseColor(s string) (Color, error) {
	for _, c := range Colors {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Kind distinguishes interactive seats from computer seats. It only affects
// presentation; the engine treats both identically through CardChooser.
type Kind int

const (
	KindHuman Kind = iota
	KindAI
)

func (k Kind) String() string {
	if k == KindAI {
		return "ai"
	}
	return "human"
}

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseMain
	PhaseLastRound
	PhaseFinalSelection
	PhaseScoring
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseMain:
		return "Main"
	case PhaseLastRound:
		return "Last Round"
	case PhaseFinalSelection:
		return "Final Selection"
	case PhaseScoring:
		return "Scoring"
	case PhaseOver:
		return "Game Over"
	default:
		return "None"
	}
}

// EndReason records what triggered the end of the main phase.
type EndReason int

const (
	EndNone EndReason = iota
	EndDeckEmpty
	EndSixColors
)

func (r EndReason) String() string {
	switch r {
	case EndDeckEmpty:
		return "deck empty"
	case EndSixColors:
		return "six colors collected"
	default:
		return "none"
	}
}

// --- Card ---

// Card is a single parade card. Two cards are the same card when Color and
// Value match; a flipped card keeps its printed value in Face.
type Card struct {
	Color   Color
	Value   int
	Face    int
	Flipped bool
}

// NewCard returns an unflipped card.
func NewCard(c Color, v int) Card {
	return Card{Color: c, Value: v, Face: v}
}

// Flip turns the card face down for scoring. Flipping is permanent and
// idempotent.
func (c *Card) Flip() {
	c.Flipped = true
	c.Value = FlippedValue
}

// Same reports whether two cards are the same physical card.
func (c Card) Same(o Card) bool {
	return c.Color == o.Color && c.Face == o.Face
}

func (c Card) String() string {
	if c.Flipped {
		return fmt.Sprintf("%s %d (flipped)", c.Color, c.Face)
	}
	return fmt.Sprintf("%s %d", c.Color, c.Value)
}
