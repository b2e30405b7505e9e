package game

import (
	"context"
	"math/rand"
	"sync"

	"github.com/peterkuimelis/parade/internal/log"
)

// CardChooser is the decision interface that interactive, agent and random
// players implement.
type CardChooser interface {
	// ChooseCardToPlay returns the 0-based index of the hand card to play.
	ChooseCardToPlay(ctx context.Context, view Snapshot, hand []Card) (int, error)

	// ChooseFinalCards returns two distinct 0-based hand indexes to add to the
	// open collection at the end of the game.
	ChooseFinalCards(ctx context.Context, view Snapshot, hand []Card) (int, int, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Observer receives every event together with a snapshot of the table taken
// right after it. Renderers and spectators implement it.
type Observer interface {
	Observe(ctx context.Context, event log.GameEvent, snap Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, event log.GameEvent, snap Snapshot)

func (f ObserverFunc) Observe(ctx context.Context, event log.GameEvent, snap Snapshot) {
	f(ctx, event, snap)
}

// RandomChooser picks uniformly among the legal choices. It is the computer
// opponent.
type RandomChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomChooser returns a chooser drawing from rng. Pass the session RNG
// (or one derived from the session seed) to keep games reproducible.
func NewRandomChooser(rng *rand.Rand) *RandomChooser {
	return &RandomChooser{rng: rng}
}

func (c *RandomChooser) ChooseCardToPlay(ctx context.Context, view Snapshot, hand []Card) (int, error) {
	if len(hand) == 0 {
		return 0, ErrInvalidSelection
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(len(hand)), nil
}

func (c *RandomChooser) ChooseFinalCards(ctx context.Context, view Snapshot, hand []Card) (int, int, error) {
	if len(hand) < FinalSelectionSize {
		return 0, 0, ErrInvalidSelection
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	perm := c.rng.Perm(len(hand))
	return perm[0], perm[1], nil
}

func (c *RandomChooser) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
