package console

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/peterkuimelis/parade/internal/game"
)

// SimStats aggregates the results of many simulated games.
type SimStats struct {
	Games     int
	Turns     int
	TieBreaks int
	Flips     int
	Wins      map[string]int
	Scores    map[string]int
	Ends      map[game.EndReason]int

	seats []string
}

// NewSimStats tracks the given seat names in order.
func NewSimStats(seats []string) *SimStats {
	return &SimStats{
		Wins:   make(map[string]int),
		Scores: make(map[string]int),
		Ends:   make(map[game.EndReason]int),
		seats:  append([]string(nil), seats...),
	}
}

// Add records one finished game that lasted turns turns.
func (s *SimStats) Add(res *game.Result, turns int) {
	s.Games++
	s.Turns += turns
	s.Ends[res.EndReason]++
	s.Flips += len(res.Flips)
	if len(res.TieBreak) > 0 {
		s.TieBreaks++
	}
	s.Wins[res.WinnerName()]++
	for _, st := range res.Standings {
		s.Scores[st.Name] += st.Score
	}
}

// MeanScore returns a seat's average score.
func (s *SimStats) MeanScore(name string) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Scores[name]) / float64(s.Games)
}

// Render draws the per-seat table and a summary footer.
func (s *SimStats) Render() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d games", s.Games))
	t.AppendHeader(table.Row{"Seat", "Wins", "Win %", "Mean score"})
	for _, name := range s.seats {
		pct := 0.0
		if s.Games > 0 {
			pct = 100 * float64(s.Wins[name]) / float64(s.Games)
		}
		t.AppendRow(table.Row{name, s.Wins[name], fmt.Sprintf("%.1f", pct), fmt.Sprintf("%.2f", s.MeanScore(name))})
	}

	meanTurns := 0.0
	if s.Games > 0 {
		meanTurns = float64(s.Turns) / float64(s.Games)
	}
	t.AppendFooter(table.Row{"Turns", fmt.Sprintf("%.1f", meanTurns), "Flips", s.Flips})
	t.AppendFooter(table.Row{game.EndDeckEmpty.String(), s.Ends[game.EndDeckEmpty], game.EndSixColors.String(), s.Ends[game.EndSixColors]})
	t.AppendFooter(table.Row{"Tie-breaks", s.TieBreaks})

	t.SetStyle(table.StyleLight)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return t.Render()
}
