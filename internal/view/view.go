// Package view defines the JSON shapes the agent and web surfaces send to
// clients, and builds them from game snapshots.
package view

import (
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
)

// Message is the envelope for everything streamed to a spectator.
type Message struct {
	Type string `json:"type"` // "event", "game_over" or "error"

	// For "event"
	Event *EventView `json:"event,omitempty"`
	State *StateView `json:"state,omitempty"`

	// For "game_over"
	Result *ResultView `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// CardView describes a single card. Value is the scoring value, Face the
// printed one; they differ only for flipped cards.
type CardView struct {
	Index   int    `json:"index"`
	Color   string `json:"color"`
	Value   int    `json:"value"`
	Face    int    `json:"face"`
	Flipped bool   `json:"flipped,omitempty"`
	Label   string `json:"label"`
}

// ColumnView is one color column of a player's open collection.
type ColumnView struct {
	Color string     `json:"color"`
	Cards []CardView `json:"cards"`
}

// PlayerView shows one player's side of the table.
type PlayerView struct {
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	HandCount int          `json:"hand_count"`
	Hand      []CardView   `json:"hand,omitempty"` // only for the viewer
	Open      []ColumnView `json:"open"`
	OpenCount int          `json:"open_count"`
	Colors    int          `json:"colors"`
	Current   bool         `json:"current,omitempty"`
}

// StateView is the table as one viewer (or a spectator) sees it.
type StateView struct {
	GameID     string       `json:"game_id"`
	Turn       int          `json:"turn"`
	Phase      string       `json:"phase"`
	Current    string       `json:"current,omitempty"`
	Parade     []CardView   `json:"parade"`
	DeckCount  int          `json:"deck_count"`
	Players    []PlayerView `json:"players"`
	EndReason  string       `json:"end_reason,omitempty"`
	You        string       `json:"you,omitempty"`
	IsYourTurn bool         `json:"is_your_turn,omitempty"`
}

// EventView is a game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  string `json:"player,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Value   int    `json:"value,omitempty"`
	Details string `json:"details"`
}

// StandingView is one line of the final ranking.
type StandingView struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	OpenCount int    `json:"open_count"`
	Colors    int    `json:"colors"`
}

// FlipView records a flipped color.
type FlipView struct {
	Player string `json:"player"`
	Color  string `json:"color"`
	Cards  int    `json:"cards"`
}

// RollView is one round of the winner roll-off, by name.
type RollView struct {
	Players []string `json:"players"`
	Rolls   []int    `json:"rolls"`
}

// ResultView is the final outcome.
type ResultView struct {
	Winner    string         `json:"winner"`
	EndReason string         `json:"end_reason"`
	Standings []StandingView `json:"standings"`
	Flips     []FlipView     `json:"flips,omitempty"`
	TieBreak  []RollView     `json:"tie_break,omitempty"`
}

// BuildCardView converts a card. index is its position in whatever list it
// came from.
func BuildCardView(c game.Card, index int) CardView {
	return CardView{
		Index:   index,
		Color:   c.Color.String(),
		Value:   c.Value,
		Face:    c.Face,
		Flipped: c.Flipped,
		Label:   c.String(),
	}
}

// BuildCardViews converts a list of cards, keeping their indexes.
func BuildCardViews(cards []game.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = BuildCardView(c, i)
	}
	return out
}

// BuildStateView creates a StateView from a snapshot. Hands are included
// only where the snapshot carries them, so filter with Snapshot.ForPlayer
// first for a player's view.
func BuildStateView(snap game.Snapshot) *StateView {
	sv := &StateView{
		GameID:    snap.GameID,
		Turn:      snap.Turn,
		Phase:     snap.Phase.String(),
		Current:   snap.Current,
		Parade:    BuildCardViews(snap.Parade),
		DeckCount: snap.DeckCount,
		Players:   make([]PlayerView, len(snap.Players)),
	}
	if snap.EndReason != game.EndNone {
		sv.EndReason = snap.EndReason.String()
	}
	for i, p := range snap.Players {
		sv.Players[i] = buildPlayerView(p, p.Name == snap.Current && snap.Current != "")
	}
	if snap.Viewer >= 0 && snap.Viewer < len(snap.Players) {
		sv.You = snap.Players[snap.Viewer].Name
		sv.IsYourTurn = sv.You == snap.Current
	}
	return sv
}

func buildPlayerView(p game.PlayerSnapshot, current bool) PlayerView {
	pv := PlayerView{
		Name:      p.Name,
		Kind:      p.Kind.String(),
		HandCount: p.HandCount,
		OpenCount: p.Open.Count(),
		Colors:    p.Open.DistinctColors(),
		Current:   current,
		Open:      []ColumnView{},
	}
	if p.Hand != nil {
		pv.Hand = BuildCardViews(p.Hand)
	}
	for _, c := range game.Colors {
		column := p.Open[c]
		if len(column) == 0 {
			continue
		}
		pv.Open = append(pv.Open, ColumnView{Color: c.String(), Cards: BuildCardViews(column)})
	}
	return pv
}

// BuildEventView converts a logged event.
func BuildEventView(e log.GameEvent) *EventView {
	return &EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Value:   e.Value,
		Details: e.Details,
	}
}

// BuildResultView converts the final result. It returns nil for nil.
func BuildResultView(r *game.Result) *ResultView {
	if r == nil {
		return nil
	}
	rv := &ResultView{
		Winner:    r.WinnerName(),
		EndReason: r.EndReason.String(),
		Standings: make([]StandingView, len(r.Standings)),
	}
	for i, s := range r.Standings {
		rv.Standings[i] = StandingView{
			Rank:      i + 1,
			Name:      s.Name,
			Score:     s.Score,
			OpenCount: s.OpenCount,
			Colors:    s.Colors,
		}
	}
	for _, f := range r.Flips {
		rv.Flips = append(rv.Flips, FlipView{Player: f.Player, Color: f.Color.String(), Cards: f.Cards})
	}
	// Roll-off contenders are positions in the standings.
	for _, round := range r.TieBreak {
		rollView := RollView{Rolls: append([]int(nil), round.Rolls...)}
		for _, pos := range round.Contenders {
			rollView.Players = append(rollView.Players, r.Standings[pos].Name)
		}
		rv.TieBreak = append(rv.TieBreak, rollView)
	}
	return rv
}
