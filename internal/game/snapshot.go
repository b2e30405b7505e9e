package game

// PlayerSnapshot is an immutable copy of one player's cards. Hand is nil when
// the snapshot is taken from another player's point of view; HandCount is
// always set.
type PlayerSnapshot struct {
	Name      string
	Kind      Kind
	Hand      []Card
	HandCount int
	Open      OpenCards
}

// Snapshot is a deep copy of the table. Renderers, spectators and choosers
// only ever see snapshots, never live session state.
type Snapshot struct {
	GameID    string
	Turn      int
	Phase     Phase
	Current   string // player whose turn it is, empty outside turns
	Parade    []Card
	DeckCount int
	Players   []PlayerSnapshot
	Viewer    int // seat the snapshot was filtered for, -1 for full
	EndReason EndReason
	Flips     []FlipResult
	Result    *Result
}

// ForPlayer returns a copy with every hand but seat i hidden.
func (s Snapshot) ForPlayer(i int) Snapshot {
	out := s
	out.Viewer = i
	out.Players = make([]PlayerSnapshot, len(s.Players))
	for j, p := range s.Players {
		out.Players[j] = p
		if j != i {
			out.Players[j].Hand = nil
		}
	}
	return out
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Parade = append([]Card(nil), s.Parade...)
	out.Players = make([]PlayerSnapshot, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p
		out.Players[i].Hand = append([]Card(nil), p.Hand...)
		out.Players[i].Open = p.Open.clone()
	}
	out.Flips = append([]FlipResult(nil), s.Flips...)
	out.Result = cloneResult(s.Result)
	return out
}

// Player finds a player by name.
func (s Snapshot) Player(name string) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	c := p.clone()
	return PlayerSnapshot{
		Name:      c.Name,
		Kind:      c.Kind,
		Hand:      c.Hand,
		HandCount: len(c.Hand),
		Open:      c.Open,
	}
}

func cloneResult(r *Result) *Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Standings = append([]Standing(nil), r.Standings...)
	out.TieBreak = append(out.TieBreak[:0:0], r.TieBreak...)
	out.Flips = append([]FlipResult(nil), r.Flips...)
	return &out
}
