package game

import (
	"math/rand"
	"sort"

	"github.com/peterkuimelis/parade/internal/dice"
)

// Score returns a player's final points: the sum of open card values after
// flips. Hand cards count only under Rules.ScoreHand.
func Score(p *Player, rules Rules) int {
	total := 0
	for _, cards := range p.Open {
		for _, c := range cards {
			total += c.Value
		}
	}
	if rules.ScoreHand {
		for _, c := range p.Hand {
			total += c.Value
		}
	}
	return total
}

// Standing is one player's line in the final ranking.
type Standing struct {
	Seat      int // index into the session's player order
	Name      string
	Score     int
	OpenCount int
	Colors    int
}

// ties reports whether two standings are equal on every ranking criterion.
func (s Standing) ties(o Standing) bool {
	return s.Score == o.Score && s.OpenCount == o.OpenCount && s.Colors == o.Colors
}

// Rank orders players best first: lowest score, then fewest open cards, then
// fewest distinct colors. Players still tied keep session order.
func Rank(players []*Player, rules Rules) []Standing {
	standings := make([]Standing, len(players))
	for i, p := range players {
		standings[i] = Standing{
			Seat:      i,
			Name:      p.Name,
			Score:     Score(p, rules),
			OpenCount: p.Open.Count(),
			Colors:    p.Open.DistinctColors(),
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.OpenCount != b.OpenCount {
			return a.OpenCount < b.OpenCount
		}
		return a.Colors < b.Colors
	})
	return standings
}

// Leaders returns the standings tied with first place on every criterion.
func Leaders(standings []Standing) []Standing {
	if len(standings) == 0 {
		return nil
	}
	out := []Standing{standings[0]}
	for _, s := range standings[1:] {
		if !s.ties(standings[0]) {
			break
		}
		out = append(out, s)
	}
	return out
}

// ResolveWinner picks the reported winner from a ranking. A sole leader wins
// outright; fully tied leaders roll off. The returned index points into
// standings, which is never reordered.
func ResolveWinner(standings []Standing, rng *rand.Rand) (int, []dice.Round, error) {
	leaders := Leaders(standings)
	if len(leaders) == 0 {
		return -1, nil, ErrNoPlayers
	}
	if len(leaders) == 1 {
		return 0, nil, nil
	}
	positions := make([]int, len(leaders))
	for i := range leaders {
		positions[i] = i
	}
	winner, rounds, err := dice.RollOff(rng, positions)
	if err != nil {
		return -1, rounds, err
	}
	return winner, rounds, nil
}

// Result is the frozen outcome of a finished session.
type Result struct {
	Standings []Standing
	Winner    int // index into Standings
	TieBreak  []dice.Round
	Flips     []FlipResult
	EndReason EndReason
}

// WinnerName returns the reported winner's name.
func (r *Result) WinnerName() string {
	if r == nil || r.Winner < 0 || r.Winner >= len(r.Standings) {
		return ""
	}
	return r.Standings[r.Winner].Name
}
