package dice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollWithRng(t *testing.T) {
	tests := []struct {
		name    string
		specs   []Spec
		wantErr error
	}{
		{name: "single d6", specs: []Spec{{Sides: 6, Count: 1}}},
		{name: "2d6 + 1d8", specs: []Spec{{Sides: 6, Count: 2}, {Sides: 8, Count: 1}}},
		{name: "no dice", specs: nil, wantErr: ErrMissingDice},
		{name: "invalid sides", specs: []Spec{{Sides: 0, Count: 1}}, wantErr: ErrInvalidDiceSpec},
		{name: "invalid count", specs: []Spec{{Sides: 6, Count: 0}}, wantErr: ErrInvalidDiceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RollWithRng(rand.New(rand.NewSource(42)), tt.specs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, result.Rolls, len(tt.specs))

			total := 0
			for i, roll := range result.Rolls {
				assert.Len(t, roll.Results, tt.specs[i].Count)
				sum := 0
				for _, v := range roll.Results {
					assert.GreaterOrEqual(t, v, 1)
					assert.LessOrEqual(t, v, tt.specs[i].Sides)
					sum += v
				}
				assert.Equal(t, sum, roll.Total)
				total += roll.Total
			}
			assert.Equal(t, total, result.Total)
		})
	}
}

func TestRollWithRng_Deterministic(t *testing.T) {
	specs := []Spec{{Sides: 6, Count: 10}}
	a, err := RollWithRng(rand.New(rand.NewSource(7)), specs)
	require.NoError(t, err)
	b, err := RollWithRng(rand.New(rand.NewSource(7)), specs)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRollOff(t *testing.T) {
	t.Run("no contenders", func(t *testing.T) {
		_, _, err := RollOff(rand.New(rand.NewSource(1)), nil)
		assert.ErrorIs(t, err, ErrNoContenders)
	})

	t.Run("single contender wins without rolling", func(t *testing.T) {
		winner, rounds, err := RollOff(rand.New(rand.NewSource(1)), []int{3})
		require.NoError(t, err)
		assert.Equal(t, 3, winner)
		assert.Empty(t, rounds)
	})

	t.Run("winner rolled highest in every round", func(t *testing.T) {
		for seed := int64(0); seed < 200; seed++ {
			contenders := []int{0, 1, 2, 3, 4, 5}
			winner, rounds, err := RollOff(rand.New(rand.NewSource(seed)), contenders)
			require.NoError(t, err)
			require.NotEmpty(t, rounds)
			assert.Contains(t, contenders, winner)

			for i, r := range rounds {
				require.Len(t, r.Rolls, len(r.Contenders))
				best := 0
				for _, v := range r.Rolls {
					best = max(best, v)
				}
				var top []int
				for j, v := range r.Rolls {
					if v == best {
						top = append(top, r.Contenders[j])
					}
				}
				if i+1 < len(rounds) {
					assert.Equal(t, top, rounds[i+1].Contenders, "seed %d: tied subset rerolls", seed)
				} else {
					assert.Equal(t, []int{winner}, top, "seed %d: last round has a unique winner", seed)
				}
			}
		}
	})

	t.Run("same seed same outcome", func(t *testing.T) {
		w1, r1, err := RollOff(rand.New(rand.NewSource(99)), []int{0, 1, 2})
		require.NoError(t, err)
		w2, r2, err := RollOff(rand.New(rand.NewSource(99)), []int{0, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, w1, w2)
		assert.Equal(t, r1, r2)
	})
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	assert.NoError(t, err)
}
