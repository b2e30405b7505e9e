package game

import "errors"

var (
	// ErrInvalidSelection is returned when a chooser picks an index outside
	// the hand, or the same card twice during final selection.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptyDeck is returned by Deck.Draw when no cards remain. The session
	// never draws from an empty deck, so seeing it from Run means the
	// game state is corrupt.
	ErrEmptyDeck = errors.New("deck is empty")

	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrDuplicatePlayer    = errors.New("duplicate player name")
	ErrEmptyName          = errors.New("player name is empty")
	ErrMissingChooser     = errors.New("player has no chooser")
	ErrUnknownPlayer      = errors.New("unknown player")

	// ErrPlayerQuit may be returned by a CardChooser to leave the game. The
	// player is removed before the next turn.
	ErrPlayerQuit = errors.New("player quit")

	// ErrNoPlayers is returned by Run when every player has left.
	ErrNoPlayers = errors.New("no players left")
)
