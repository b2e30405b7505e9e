package dice

import "math/rand"

// Round is one pass of a roll-off: the contenders still in it and what each
// rolled, index-aligned.
type Round struct {
	Contenders []int
	Rolls      []int
}

// RollOff has each contender roll a d6. The highest roll wins; contenders
// tied on the highest roll reroll among themselves until one remains.
// Contenders are opaque identifiers (usually seat indexes). A single
// contender wins without rolling.
func RollOff(rng *rand.Rand, contenders []int) (int, []Round, error) {
	if len(contenders) == 0 {
		return 0, nil, ErrNoContenders
	}

	remaining := append([]int(nil), contenders...)
	var rounds []Round
	for len(remaining) > 1 {
		res, err := RollWithRng(rng, []Spec{{Sides: DieSides, Count: len(remaining)}})
		if err != nil {
			return 0, rounds, err
		}
		rolls := res.Rolls[0].Results
		rounds = append(rounds, Round{Contenders: remaining, Rolls: rolls})

		best := 0
		for _, r := range rolls {
			best = max(best, r)
		}
		var next []int
		for i, r := range rolls {
			if r == best {
				next = append(next, remaining[i])
			}
		}
		remaining = next
	}
	return remaining[0], rounds, nil
}
