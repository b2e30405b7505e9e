package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/peterkuimelis/parade/internal/dice"
	"github.com/peterkuimelis/parade/internal/log"
)

// DefaultMaxSelectionAttempts bounds how often a chooser is re-asked after
// an invalid selection before Run gives up.
const DefaultMaxSelectionAttempts = 10

// Seat describes one player joining a session.
type Seat struct {
	Name    string
	Kind    Kind
	Chooser CardChooser
}

// Config holds configuration for creating a new session.
type Config struct {
	ID        string // game ID (random UUID if empty)
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	Rules     Rules
	Observers []Observer

	Deck             *Deck // preset deck (nil for the full 66-card deck)
	NoShuffle        bool  // skip deck shuffle (for deterministic tests)
	SkipStartingRoll bool  // keep seat order instead of rolling for the first player

	MaxSelectionAttempts int // 0 = DefaultMaxSelectionAttempts
}

// Session orchestrates one game from the deal to the final ranking. It is
// driven by a single goroutine calling Run; Latest may be called from any
// goroutine.
type Session struct {
	ID      string
	Seed    int64
	Players []*Player // active players in turn order
	Deck    *Deck
	Parade  []Card
	Phase   Phase
	Turn    int
	Logger  log.EventLogger

	choosers    []CardChooser // index-aligned with Players
	departed    []*Player
	rules       Rules
	observers   []Observer
	rng         *rand.Rand
	ctx         context.Context
	noShuffle   bool
	skipRoll    bool
	maxAttempts int

	seq       int
	current   string
	endReason EndReason
	flips     []FlipResult
	result    *Result
	latest    atomic.Pointer[Snapshot]
}

// NewSession validates the seats and creates a session. Nothing is dealt
// until Run.
func NewSession(cfg Config, seats []Seat) (*Session, error) {
	if len(seats) < MinPlayers || len(seats) > MaxPlayers {
		return nil, fmt.Errorf("%d players (want %d-%d): %w", len(seats), MinPlayers, MaxPlayers, ErrInvalidPlayerCount)
	}
	seen := make(map[string]bool, len(seats))
	for i, seat := range seats {
		name := strings.TrimSpace(seat.Name)
		if name == "" {
			return nil, fmt.Errorf("seat %d: %w", i+1, ErrEmptyName)
		}
		if seen[name] {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicatePlayer)
		}
		if seat.Chooser == nil {
			return nil, fmt.Errorf("%q: %w", name, ErrMissingChooser)
		}
		seen[name] = true
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	deck := cfg.Deck
	if deck == nil {
		deck = NewDeck()
	}

	maxAttempts := cfg.MaxSelectionAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxSelectionAttempts
	}

	s := &Session{
		ID:          id,
		Seed:        seed,
		Deck:        deck,
		Phase:       PhaseSetup,
		Logger:      logger,
		rules:       cfg.Rules,
		observers:   cfg.Observers,
		rng:         rand.New(rand.NewSource(seed)),
		ctx:         context.Background(),
		noShuffle:   cfg.NoShuffle,
		skipRoll:    cfg.SkipStartingRoll,
		maxAttempts: maxAttempts,
	}
	for _, seat := range seats {
		s.Players = append(s.Players, &Player{Name: strings.TrimSpace(seat.Name), Kind: seat.Kind})
		s.choosers = append(s.choosers, seat.Chooser)
	}
	return s, nil
}

// Rules returns the rule variants in effect.
func (s *Session) Rules() Rules {
	return s.rules
}

// Result returns the final result, or nil while the game is running.
func (s *Session) Result() *Result {
	return cloneResult(s.result)
}

// Run plays the whole game: setup, turns until an end condition, the last
// round, final selection, flips and scoring.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	s.ctx = ctx

	if err := s.setup(); err != nil {
		return nil, err
	}

	trigger, err := s.mainPhase()
	if err != nil {
		return nil, err
	}

	// The last round starts with the player after the one who ended the game.
	order := Rotate(s.Players, trigger+1)

	if err := s.lastRound(order); err != nil {
		return nil, err
	}
	if err := s.finalSelection(order); err != nil {
		return nil, err
	}
	return s.score()
}

// setup shuffles, deals hands and the parade, and decides the first player.
func (s *Session) setup() error {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	s.log(log.NewGameEvent(s.ID, names))

	if !s.noShuffle {
		s.Deck.Shuffle(s.rng)
	}

	for _, p := range s.Players {
		hand, err := s.Deck.Deal(InitialHandSize)
		if err != nil {
			return fmt.Errorf("deal %s: %w", p.Name, err)
		}
		p.Hand = hand
		s.log(log.NewDealEvent(p.Name, len(hand)))
	}

	parade, err := s.Deck.Deal(InitialParadeSize)
	if err != nil {
		return fmt.Errorf("deal parade: %w", err)
	}
	s.Parade = parade
	s.log(log.NewParadeDealEvent(cardNames(parade)))

	if !s.skipRoll {
		first, rounds, err := DecideStartingPlayer(s.rng, len(s.Players))
		if err != nil {
			return err
		}
		for r, round := range rounds {
			for i, seat := range round.Contenders {
				s.log(log.NewStartingRollEvent(r+1, s.Players[seat].Name, round.Rolls[i]))
			}
		}
		s.Players = Rotate(s.Players, first)
		s.choosers = Rotate(s.choosers, first)
	}

	order := make([]string, len(s.Players))
	for i, p := range s.Players {
		order[i] = p.Name
	}
	s.log(log.NewStartingPlayerEvent(s.Players[0].Name, order))
	return nil
}

// mainPhase runs turns in order until an end condition holds, returning the
// index of the player whose turn triggered it.
func (s *Session) mainPhase() (int, error) {
	s.setPhase(PhaseMain)

	i := 0
	for {
		if err := s.ctx.Err(); err != nil {
			return 0, err
		}
		if len(s.Players) == 0 {
			return 0, ErrNoPlayers
		}
		i %= len(s.Players)

		left, err := s.playTurn(i, true)
		if err != nil {
			return 0, err
		}
		if left {
			// The next player has shifted into slot i.
			continue
		}

		if over, reason := CheckEndGame(s.Deck.Count(), s.Players); over {
			s.endReason = reason
			s.log(log.NewEndTriggeredEvent(s.Turn, s.Phase.String(), s.Players[i].Name, reason.String()))
			return i, nil
		}
		i++
	}
}

// lastRound gives every remaining player one more play without drawing.
func (s *Session) lastRound(order []*Player) error {
	s.setPhase(PhaseLastRound)
	for _, p := range order {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		i := s.seatOf(p)
		if i < 0 {
			continue
		}
		if _, err := s.playTurn(i, false); err != nil {
			return err
		}
	}
	if len(s.Players) == 0 {
		return ErrNoPlayers
	}
	return nil
}

// finalSelection moves two hand cards per player into their collection.
func (s *Session) finalSelection(order []*Player) error {
	s.setPhase(PhaseFinalSelection)
	for _, p := range order {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		i := s.seatOf(p)
		if i < 0 {
			continue
		}

		var chosen []Card
		switch {
		case len(p.Hand) == 0:
			continue
		case len(p.Hand) < FinalSelectionSize:
			chosen = append(chosen, p.Hand...)
			p.Hand = nil
		default:
			a, b, err := s.askFinal(i)
			if errors.Is(err, ErrPlayerQuit) {
				s.removeAt(i)
				continue
			}
			if err != nil {
				return err
			}
			pair, err := p.TakeTwoFromHand(a, b)
			if err != nil {
				return err
			}
			chosen = pair[:]
		}

		s.current = p.Name
		for _, c := range chosen {
			p.Open.Add(c)
			s.log(log.NewFinalSelectionEvent(s.Turn, s.Phase.String(), p.Name, c.String()))
		}
	}
	s.current = ""
	if len(s.Players) == 0 {
		return ErrNoPlayers
	}
	return nil
}

// score applies flips, ranks the players and resolves the winner.
func (s *Session) score() (*Result, error) {
	s.setPhase(PhaseScoring)

	s.flips = ApplyFlips(s.Players)
	for _, f := range s.flips {
		s.log(log.NewFlipEvent(s.Turn, f.Player, f.Color.String(), f.Cards))
	}

	standings := Rank(s.Players, s.rules)
	for _, st := range standings {
		s.log(log.NewScoreEvent(s.Turn, st.Name, st.Score, st.OpenCount, st.Colors))
	}

	winner, rounds, err := ResolveWinner(standings, s.rng)
	if err != nil {
		return nil, err
	}
	for r, round := range rounds {
		for i, pos := range round.Contenders {
			s.log(log.NewTieBreakRollEvent(s.Turn, r+1, standings[pos].Name, round.Rolls[i]))
		}
	}

	s.result = &Result{
		Standings: standings,
		Winner:    winner,
		TieBreak:  rounds,
		Flips:     s.flips,
		EndReason: s.endReason,
	}
	s.Phase = PhaseOver
	s.log(log.NewWinEvent(s.Turn, standings[winner].Name, standings[winner].Score))
	return s.Result(), nil
}

// playTurn has player i play one card and absorb from the parade, then draw
// when draw is set. It reports whether the player left instead of playing.
func (s *Session) playTurn(i int, draw bool) (bool, error) {
	p := s.Players[i]
	s.Turn++
	s.current = p.Name
	defer func() { s.current = "" }()

	s.log(log.NewTurnEvent(s.Turn, s.Phase.String(), p.Name))

	if len(p.Hand) == 0 {
		return false, nil
	}

	idx, err := s.askPlay(i)
	if errors.Is(err, ErrPlayerQuit) {
		s.removeAt(i)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	card, err := p.TakeFromHand(idx)
	if err != nil {
		return false, err
	}
	remaining, taken := Absorb(s.Parade, card, s.rules)
	s.Parade = remaining
	p.Open.Add(taken...)

	s.log(log.NewPlayEvent(s.Turn, s.Phase.String(), p.Name, card.String(), ExposedCount(len(remaining)+len(taken), card.Value)))
	for _, c := range taken {
		s.log(log.NewTakeEvent(s.Turn, s.Phase.String(), p.Name, c.String()))
	}

	if draw {
		c, err := s.Deck.Draw()
		if err != nil {
			return false, fmt.Errorf("%s draw on turn %d: %w", p.Name, s.Turn, err)
		}
		p.Hand = append(p.Hand, c)
		s.log(log.NewDrawEvent(s.Turn, s.Phase.String(), p.Name, c.String()))
	}
	return false, nil
}

// askPlay asks player i for a card, re-asking on invalid selections.
func (s *Session) askPlay(i int) (int, error) {
	p, ch := s.Players[i], s.choosers[i]
	for attempt := 1; ; attempt++ {
		view := s.snapshot().ForPlayer(i)
		idx, err := ch.ChooseCardToPlay(s.ctx, view, append([]Card(nil), p.Hand...))
		if err == nil && (idx < 0 || idx >= len(p.Hand)) {
			err = fmt.Errorf("card %d of %d: %w", idx+1, len(p.Hand), ErrInvalidSelection)
		}
		if err == nil {
			return idx, nil
		}
		if !errors.Is(err, ErrInvalidSelection) {
			return 0, err
		}
		s.log(log.NewInvalidSelectionEvent(s.Turn, s.Phase.String(), p.Name, err.Error()))
		if attempt >= s.maxAttempts {
			return 0, fmt.Errorf("%s: %d attempts: %w", p.Name, attempt, err)
		}
	}
}

// askFinal asks player i for two distinct hand cards, re-asking on invalid
// selections.
func (s *Session) askFinal(i int) (int, int, error) {
	p, ch := s.Players[i], s.choosers[i]
	for attempt := 1; ; attempt++ {
		view := s.snapshot().ForPlayer(i)
		a, b, err := ch.ChooseFinalCards(s.ctx, view, append([]Card(nil), p.Hand...))
		if err == nil {
			err = validateFinalSelection(len(p.Hand), a, b)
		}
		if err == nil {
			return a, b, nil
		}
		if !errors.Is(err, ErrInvalidSelection) {
			return 0, 0, err
		}
		s.log(log.NewInvalidSelectionEvent(s.Turn, s.Phase.String(), p.Name, err.Error()))
		if attempt >= s.maxAttempts {
			return 0, 0, fmt.Errorf("%s: %d attempts: %w", p.Name, attempt, err)
		}
	}
}

// RemovePlayer takes a player out of the game. Their cards stay out of play
// but still count toward CardCount. Call it only between turns.
func (s *Session) RemovePlayer(name string) error {
	for i, p := range s.Players {
		if p.Name == name {
			s.removeAt(i)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", name, ErrUnknownPlayer)
}

func (s *Session) removeAt(i int) {
	p := s.Players[i]
	s.departed = append(s.departed, p)
	s.Players = append(s.Players[:i:i], s.Players[i+1:]...)
	s.choosers = append(s.choosers[:i:i], s.choosers[i+1:]...)
	s.log(log.NewPlayerLeftEvent(s.Turn, s.Phase.String(), p.Name))
}

func (s *Session) seatOf(p *Player) int {
	for i, q := range s.Players {
		if q == p {
			return i
		}
	}
	return -1
}

// CardCount returns every card in the game: deck, parade, hands and
// collections, including those of departed players. It is always 66 for a
// full deck.
func (s *Session) CardCount() int {
	n := s.Deck.Count() + len(s.Parade)
	for _, p := range s.Players {
		n += p.CardCount()
	}
	for _, p := range s.departed {
		n += p.CardCount()
	}
	return n
}

// Departed returns the players who left the game.
func (s *Session) Departed() []string {
	var out []string
	for _, p := range s.departed {
		out = append(out, p.Name)
	}
	return out
}

// Snapshot returns a full deep copy of the current table.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot()
}

// Latest returns the snapshot published with the most recent event. Unlike
// Snapshot it is safe to call while Run is executing on another goroutine.
func (s *Session) Latest() (Snapshot, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return snap.Clone(), true
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		GameID:    s.ID,
		Turn:      s.Turn,
		Phase:     s.Phase,
		Current:   s.current,
		Parade:    append([]Card(nil), s.Parade...),
		DeckCount: s.Deck.Count(),
		Players:   make([]PlayerSnapshot, len(s.Players)),
		Viewer:    -1,
		EndReason: s.endReason,
		Flips:     append([]FlipResult(nil), s.flips...),
		Result:    cloneResult(s.result),
	}
	for i, p := range s.Players {
		snap.Players[i] = snapshotPlayer(p)
	}
	return snap
}

func (s *Session) setPhase(phase Phase) {
	s.Phase = phase
	s.log(log.NewPhaseChangeEvent(s.Turn, phase.String()))
}

// log emits a game event through the logger and notifies every player and
// observer.
func (s *Session) log(event log.GameEvent) {
	s.seq++
	event.Seq = s.seq
	s.Logger.Log(event)

	snap := s.snapshot()
	s.latest.Store(&snap)

	// Notify choosers (ignore errors for notifications)
	for _, ch := range s.choosers {
		_ = ch.Notify(s.ctx, event)
	}
	for _, o := range s.observers {
		o.Observe(s.ctx, event, snap.Clone())
	}
}

func cardNames(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
