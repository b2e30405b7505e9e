package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

// MemoryLogger is safe for one writer and concurrent readers (the web and
// MCP surfaces read while the engine goroutine writes).
type MemoryLogger struct {
	mu     sync.RWMutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.record(event)
}

// record stamps the sequence number, unless the caller already did, and
// stores the event.
func (l *MemoryLogger) record(event GameEvent) GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if event.Seq == 0 {
		event.Seq = l.seq
	}
	l.events = append(l.events, event)
	return event
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]GameEvent(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// EventsFor returns all events whose acting player is name.
func (l *MemoryLogger) EventsFor(name string) []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Player == name {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	event = l.MemoryLogger.record(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameEvent(id string, players []string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventNewGame,
		Value:   len(players),
		Details: fmt.Sprintf("New game %s: %s", id, strings.Join(players, ", ")),
	}
}

func NewDealEvent(player string, count int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventDeal,
		Value:   count,
		Details: fmt.Sprintf("%s is dealt %d cards", player, count),
	}
}

func NewParadeDealEvent(cards []string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventDeal,
		Value:   len(cards),
		Details: fmt.Sprintf("Parade: %s", strings.Join(cards, ", ")),
	}
}

func NewStartingRollEvent(round int, player string, roll int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventStartingRoll,
		Value:   roll,
		Details: fmt.Sprintf("%s rolls %d (round %d)", player, roll, round),
	}
}

func NewStartingPlayerEvent(player string, order []string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventStartingPlayer,
		Details: fmt.Sprintf("%s starts. Order: %s", player, strings.Join(order, " → ")),
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, phase, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, player),
	}
}

func NewPlayEvent(turn int, phase, player, card string, exposed int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlay,
		Card:    card,
		Value:   exposed,
		Details: fmt.Sprintf("%s plays %s (%d exposed)", player, card, exposed),
	}
}

func NewTakeEvent(turn int, phase, player, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTake,
		Card:    card,
		Details: fmt.Sprintf("%s takes %s", player, card),
	}
}

func NewDrawEvent(turn int, phase, player, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    card,
		Details: fmt.Sprintf("%s draws %s", player, card),
	}
}

func NewEndTriggeredEvent(turn int, phase, player, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEndTriggered,
		Details: fmt.Sprintf("End triggered by %s: %s", player, reason),
	}
}

func NewFinalSelectionEvent(turn int, phase, player, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFinalSelection,
		Card:    card,
		Details: fmt.Sprintf("%s adds %s to their collection", player, card),
	}
}

func NewFlipEvent(turn int, player, color string, cards int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Scoring",
		Player:  player,
		Type:    EventFlip,
		Card:    color,
		Value:   cards,
		Details: fmt.Sprintf("%s flips %s (%d cards)", player, color, cards),
	}
}

func NewScoreEvent(turn int, player string, score, open, colors int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Scoring",
		Player:  player,
		Type:    EventScore,
		Value:   score,
		Details: fmt.Sprintf("%s scores %d (%d cards, %d colors)", player, score, open, colors),
	}
}

func NewTieBreakRollEvent(turn, round int, player string, roll int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Scoring",
		Player:  player,
		Type:    EventTieBreakRoll,
		Value:   roll,
		Details: fmt.Sprintf("%s rolls %d to break the tie (round %d)", player, roll, round),
	}
}

func NewWinEvent(turn int, player string, score int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Game Over",
		Player:  player,
		Type:    EventWin,
		Value:   score,
		Details: fmt.Sprintf("%s wins with %d points", player, score),
	}
}

func NewPlayerLeftEvent(turn int, phase, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayerLeft,
		Details: fmt.Sprintf("%s leaves the game", player),
	}
}

func NewInvalidSelectionEvent(turn int, phase, player, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventInvalidSelection,
		Details: fmt.Sprintf("%s made an invalid selection: %s", player, reason),
	}
}
