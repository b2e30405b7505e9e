package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/parade/internal/log"
)

// ScriptedChooser is a CardChooser that follows a predefined script.
// Used in tests to deterministically drive the game. When the script runs
// out it plays the first card and keeps the first two for final selection.
type ScriptedChooser struct {
	t    *testing.T
	name string

	plays   []scriptedPlay
	playPos int

	finals   []scriptedFinal
	finalPos int

	// Everything the engine showed this chooser.
	Views  []Snapshot
	Events []log.GameEvent
}

type scriptedPlay struct {
	// Match by card; Index is used when Card is nil.
	Card  *Card
	Index int
	Err   error
}

type scriptedFinal struct {
	First, Second *Card
	I, J          int
	Err           error
}

func NewScriptedChooser(t *testing.T, name string) *ScriptedChooser {
	return &ScriptedChooser{t: t, name: name}
}

// AddPlay queues playing a specific card, which must be in hand by then.
func (sc *ScriptedChooser) AddPlay(c Color, v int) *ScriptedChooser {
	card := NewCard(c, v)
	sc.plays = append(sc.plays, scriptedPlay{Card: &card})
	return sc
}

// AddPlayIndex queues a raw index, valid or not.
func (sc *ScriptedChooser) AddPlayIndex(i int) *ScriptedChooser {
	sc.plays = append(sc.plays, scriptedPlay{Index: i})
	return sc
}

// AddQuit queues leaving the game at the next play decision.
func (sc *ScriptedChooser) AddQuit() *ScriptedChooser {
	sc.plays = append(sc.plays, scriptedPlay{Err: ErrPlayerQuit})
	return sc
}

func (sc *ScriptedChooser) AddFinal(c1 Color, v1 int, c2 Color, v2 int) *ScriptedChooser {
	a, b := NewCard(c1, v1), NewCard(c2, v2)
	sc.finals = append(sc.finals, scriptedFinal{First: &a, Second: &b})
	return sc
}

func (sc *ScriptedChooser) AddFinalIndex(i, j int) *ScriptedChooser {
	sc.finals = append(sc.finals, scriptedFinal{I: i, J: j})
	return sc
}

func (sc *ScriptedChooser) AddFinalQuit() *ScriptedChooser {
	sc.finals = append(sc.finals, scriptedFinal{Err: ErrPlayerQuit})
	return sc
}

func (sc *ScriptedChooser) ChooseCardToPlay(ctx context.Context, view Snapshot, hand []Card) (int, error) {
	sc.Views = append(sc.Views, view)
	if sc.playPos >= len(sc.plays) {
		return 0, nil
	}
	play := sc.plays[sc.playPos]
	sc.playPos++
	if play.Err != nil {
		return 0, play.Err
	}
	if play.Card == nil {
		return play.Index, nil
	}
	i := indexOf(hand, *play.Card)
	if i < 0 {
		sc.t.Fatalf("[%s] scripted play %s not in hand %v", sc.name, play.Card, hand)
	}
	return i, nil
}

func (sc *ScriptedChooser) ChooseFinalCards(ctx context.Context, view Snapshot, hand []Card) (int, int, error) {
	sc.Views = append(sc.Views, view)
	if sc.finalPos >= len(sc.finals) {
		return 0, 1, nil
	}
	f := sc.finals[sc.finalPos]
	sc.finalPos++
	if f.Err != nil {
		return 0, 0, f.Err
	}
	if f.First == nil {
		return f.I, f.J, nil
	}
	i, j := indexOf(hand, *f.First), indexOf(hand, *f.Second)
	if i < 0 || j < 0 {
		sc.t.Fatalf("[%s] scripted final %s, %s not in hand %v", sc.name, f.First, f.Second, hand)
	}
	return i, j, nil
}

func (sc *ScriptedChooser) Notify(ctx context.Context, event log.GameEvent) error {
	sc.Events = append(sc.Events, event)
	return nil
}

func indexOf(hand []Card, c Card) int {
	for i, h := range hand {
		if h.Same(c) {
			return i
		}
	}
	return -1
}

// --- Test card helpers ---

func card(c Color, v int) Card {
	return NewCard(c, v)
}

func cards(pairs ...any) []Card {
	var out []Card
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, NewCard(pairs[i].(Color), pairs[i+1].(int)))
	}
	return out
}

// playerWith builds a player whose open collection holds the given cards.
func playerWith(name string, open ...Card) *Player {
	p := &Player{Name: name}
	p.Open.Add(open...)
	return p
}

// nOf returns n distinct cards of one color (values 0..n-1).
func nOf(c Color, n int) []Card {
	out := make([]Card, n)
	for i := range out {
		out[i] = NewCard(c, i)
	}
	return out
}

// stackedDeck returns a deck that deals top in order (top[0] first),
// followed by the rest of the 66 cards in generation order. Hands are dealt
// one player at a time (5 cards each), then the 6-card parade, then draws.
func stackedDeck(t *testing.T, top ...Card) *Deck {
	t.Helper()
	used := make(map[Card]bool)
	for _, c := range top {
		if used[c] {
			t.Fatalf("stacked deck repeats %s", c)
		}
		used[c] = true
	}
	ordered := append([]Card(nil), top...)
	for _, c := range NewDeck().Cards() {
		if !used[c] {
			ordered = append(ordered, c)
		}
	}
	return NewDeckFromCards(ordered)
}

// scriptedSeats wraps scripted choosers into seats named after them.
func scriptedSeats(choosers ...*ScriptedChooser) []Seat {
	seats := make([]Seat, len(choosers))
	for i, c := range choosers {
		seats[i] = Seat{Name: c.name, Kind: KindAI, Chooser: c}
	}
	return seats
}

// runGameToCompletion runs a session and returns it with its logger for
// inspection.
func runGameToCompletion(t *testing.T, cfg Config, seats []Seat) (*Session, *Result, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	s, err := NewSession(cfg, seats)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, err := s.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Run error: %v", err)
	}

	// Always print event log for visibility (tests are run with -v)
	t.Logf("Winner: %s", res.WinnerName())
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return s, res, logger
}
