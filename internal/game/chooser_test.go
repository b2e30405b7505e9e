package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomChooser(t *testing.T) {
	c := NewRandomChooser(rand.New(rand.NewSource(3)))
	ctx := context.Background()
	hand := cards(Red, 1, Blue, 2, Green, 3, Yellow, 4, Purple, 5)

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		idx, err := c.ChooseCardToPlay(ctx, Snapshot{}, hand)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(hand))
		seen[idx] = true

		a, b, err := c.ChooseFinalCards(ctx, Snapshot{}, hand[:4])
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
		assert.Less(t, a, 4)
		assert.Less(t, b, 4)
	}
	assert.Len(t, seen, len(hand), "every card gets played eventually")

	_, err := c.ChooseCardToPlay(ctx, Snapshot{}, nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = c.ChooseFinalCards(ctx, Snapshot{}, hand[:1])
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestPlayerHand(t *testing.T) {
	p := &Player{Name: "a", Hand: cards(Red, 1, Blue, 2, Green, 3)}

	_, err := p.TakeFromHand(3)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	c, err := p.TakeFromHand(1)
	require.NoError(t, err)
	assert.Equal(t, card(Blue, 2), c)
	assert.Equal(t, cards(Red, 1, Green, 3), p.Hand)

	p.Hand = cards(Red, 1, Blue, 2, Green, 3, Yellow, 4)
	_, err = p.TakeTwoFromHand(2, 2)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = p.TakeTwoFromHand(0, 4)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Len(t, p.Hand, 4, "rejected selections leave the hand alone")

	pair, err := p.TakeTwoFromHand(3, 1)
	require.NoError(t, err)
	assert.Equal(t, [2]Card{card(Yellow, 4), card(Blue, 2)}, pair)
	assert.Equal(t, cards(Red, 1, Green, 3), p.Hand)
}

func TestOpenCards(t *testing.T) {
	var o OpenCards
	o.Add(cards(Red, 3, Blue, 4, Red, 1)...)

	assert.Equal(t, 3, o.Count())
	assert.Equal(t, 2, o.CountOf(Red))
	assert.Equal(t, 2, o.DistinctColors())
	assert.False(t, o.HasAllColors())
	assert.Equal(t, cards(Red, 3, Red, 1, Blue, 4), o.All())

	assert.Equal(t, 2, o.FlipColor(Red))
	assert.Equal(t, 0, o.FlipColor(Red))
}

func TestSnapshotForPlayer(t *testing.T) {
	snap := Snapshot{
		Viewer: -1,
		Players: []PlayerSnapshot{
			{Name: "a", Hand: cards(Red, 1), HandCount: 1},
			{Name: "b", Hand: cards(Blue, 2), HandCount: 1},
		},
	}
	view := snap.ForPlayer(1)
	assert.Equal(t, 1, view.Viewer)
	assert.Nil(t, view.Players[0].Hand)
	assert.Equal(t, 1, view.Players[0].HandCount)
	assert.Equal(t, cards(Blue, 2), view.Players[1].Hand)
	assert.Equal(t, cards(Red, 1), snap.Players[0].Hand, "original untouched")
}
