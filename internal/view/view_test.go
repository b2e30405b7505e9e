package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/parade/internal/dice"
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
)

func testSnapshot() game.Snapshot {
	var aliceOpen, bobOpen game.OpenCards
	aliceOpen.Add(game.NewCard(game.Red, 3), game.NewCard(game.Blue, 7))
	flipped := game.NewCard(game.Green, 9)
	flipped.Flip()
	bobOpen.Add(flipped)

	return game.Snapshot{
		GameID:    "g1",
		Turn:      4,
		Phase:     game.PhaseMain,
		Current:   "Bob",
		Parade:    []game.Card{game.NewCard(game.Yellow, 1), game.NewCard(game.Black, 0)},
		DeckCount: 40,
		Viewer:    -1,
		Players: []game.PlayerSnapshot{
			{Name: "Alice", Kind: game.KindHuman, Hand: []game.Card{game.NewCard(game.Purple, 5)}, HandCount: 1, Open: aliceOpen},
			{Name: "Bob", Kind: game.KindAI, Hand: []game.Card{game.NewCard(game.Red, 10)}, HandCount: 1, Open: bobOpen},
		},
	}
}

func TestBuildStateViewSpectator(t *testing.T) {
	sv := BuildStateView(testSnapshot())

	assert.Equal(t, "g1", sv.GameID)
	assert.Equal(t, "Main", sv.Phase)
	assert.Equal(t, 40, sv.DeckCount)
	assert.Empty(t, sv.You)
	assert.False(t, sv.IsYourTurn)
	require.Len(t, sv.Parade, 2)
	assert.Equal(t, "Black 0", sv.Parade[1].Label)
	assert.Equal(t, 1, sv.Parade[1].Index)

	require.Len(t, sv.Players, 2)
	alice := sv.Players[0]
	assert.Equal(t, "human", alice.Kind)
	assert.False(t, alice.Current)
	assert.Equal(t, 2, alice.OpenCount)
	assert.Equal(t, 2, alice.Colors)
	require.Len(t, alice.Open, 2)
	assert.Equal(t, "Red", alice.Open[0].Color)
	assert.Equal(t, "Blue", alice.Open[1].Color)

	bob := sv.Players[1]
	assert.True(t, bob.Current)
	require.Len(t, bob.Open, 1)
	card := bob.Open[0].Cards[0]
	assert.True(t, card.Flipped)
	assert.Equal(t, 1, card.Value)
	assert.Equal(t, 9, card.Face)
}

func TestBuildStateViewForPlayer(t *testing.T) {
	sv := BuildStateView(testSnapshot().ForPlayer(1))

	assert.Equal(t, "Bob", sv.You)
	assert.True(t, sv.IsYourTurn)
	assert.Nil(t, sv.Players[0].Hand, "other hands stay hidden")
	assert.Equal(t, 1, sv.Players[0].HandCount)
	require.Len(t, sv.Players[1].Hand, 1)
	assert.Equal(t, "Red 10", sv.Players[1].Hand[0].Label)

	data, err := json.Marshal(sv)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Purple 5")
}

func TestBuildEventView(t *testing.T) {
	e := log.GameEvent{Seq: 7, Turn: 2, Phase: "Main", Player: "Alice", Type: log.EventPlay, Card: "Red 3", Value: 2, Details: "plays"}
	ev := BuildEventView(e)
	assert.Equal(t, "Play", ev.Type)
	assert.Equal(t, 7, ev.Seq)
	assert.Equal(t, "Red 3", ev.Card)
}

func TestBuildResultView(t *testing.T) {
	assert.Nil(t, BuildResultView(nil))

	r := &game.Result{
		Standings: []game.Standing{
			{Seat: 1, Name: "Bob", Score: 4, OpenCount: 2, Colors: 1},
			{Seat: 0, Name: "Alice", Score: 4, OpenCount: 2, Colors: 1},
			{Seat: 2, Name: "Cat", Score: 9, OpenCount: 3, Colors: 2},
		},
		Winner:    1,
		TieBreak:  []dice.Round{{Contenders: []int{0, 1}, Rolls: []int{2, 5}}},
		Flips:     []game.FlipResult{{Player: "Cat", Color: game.Green, Cards: 2}},
		EndReason: game.EndDeckEmpty,
	}
	rv := BuildResultView(r)

	assert.Equal(t, "Alice", rv.Winner)
	assert.Equal(t, "deck empty", rv.EndReason)
	require.Len(t, rv.Standings, 3)
	assert.Equal(t, StandingView{Rank: 1, Name: "Bob", Score: 4, OpenCount: 2, Colors: 1}, rv.Standings[0])
	assert.Equal(t, []FlipView{{Player: "Cat", Color: "Green", Cards: 2}}, rv.Flips)
	assert.Equal(t, []RollView{{Players: []string{"Bob", "Alice"}, Rolls: []int{2, 5}}}, rv.TieBreak)
}

func TestMessageJSON(t *testing.T) {
	data, err := json.Marshal(Message{Type: "error", Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","error":"boom"}`, string(data))
}
