// Package dice rolls seeded dice and settles ties by roll-off.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

// DieSides is the die used for every roll in the game.
const DieSides = 6

var (
	ErrMissingDice     = errors.New("at least one die spec is required")
	ErrInvalidDiceSpec = errors.New("dice spec must have sides and count greater than zero")
	ErrNoContenders    = errors.New("roll-off needs at least one contender")
)

// Spec describes Count dice with Sides faces.
type Spec struct {
	Sides int
	Count int
}

// Roll is the outcome of one Spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result is the outcome of a RollWithRng call.
type Result struct {
	Rolls []Roll
	Total int
}

// RollWithRng rolls dice using a provided random source. Specs are rolled in
// slice order, and Result.Rolls matches that order.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// D6 rolls one six-sided die.
func D6(rng *rand.Rand) int {
	return rollDie(rng, DieSides)
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
