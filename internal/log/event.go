package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewGame EventType = iota
	EventDeal
	EventStartingRoll
	EventStartingPlayer
	EventPhaseChange
	EventNewTurn
	EventPlay
	EventTake
	EventDraw
	EventEndTriggered
	EventFinalSelection
	EventFlip
	EventScore
	EventTieBreakRoll
	EventWin
	EventPlayerLeft
	EventInvalidSelection
)

func (e EventType) String() string {
	switch e {
	case EventNewGame:
		return "NewGame"
	case EventDeal:
		return "Deal"
	case EventStartingRoll:
		return "StartingRoll"
	case EventStartingPlayer:
		return "StartingPlayer"
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventPlay:
		return "Play"
	case EventTake:
		return "Take"
	case EventDraw:
		return "Draw"
	case EventEndTriggered:
		return "EndTriggered"
	case EventFinalSelection:
		return "FinalSelection"
	case EventFlip:
		return "Flip"
	case EventScore:
		return "Score"
	case EventTieBreakRoll:
		return "TieBreakRoll"
	case EventWin:
		return "Win"
	case EventPlayerLeft:
		return "PlayerLeft"
	case EventInvalidSelection:
		return "InvalidSelection"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 during setup)
	Phase   string    // current phase name (e.g. "Last Round")
	Player  string    // acting player's name, empty for table events
	Type    EventType // event type
	Card    string    // card (if applicable), e.g. "Red 7"
	Value   int       // numeric payload: score, roll, cards flipped
	Details string    // human-readable detail string
}
