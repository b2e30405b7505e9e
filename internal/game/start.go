package game

import (
	"math/rand"

	"github.com/peterkuimelis/parade/internal/dice"
)

// DecideStartingPlayer runs a d6 roll-off among n seats and returns the
// winning seat index along with every round rolled.
func DecideStartingPlayer(rng *rand.Rand, n int) (int, []dice.Round, error) {
	if n < 1 {
		return 0, nil, ErrNoPlayers
	}
	seats := make([]int, n)
	for i := range seats {
		seats[i] = i
	}
	return dice.RollOff(rng, seats)
}

// Rotate returns a new slice starting at index start and continuing in
// circular order: Rotate([A B C D], 2) is [C D A B].
func Rotate[T any](items []T, start int) []T {
	n := len(items)
	if n == 0 {
		return nil
	}
	start = ((start % n) + n) % n
	out := make([]T, 0, n)
	out = append(out, items[start:]...)
	out = append(out, items[:start]...)
	return out
}
