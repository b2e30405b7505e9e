package game

// FlipResult records one player's color being flipped after the game.
type FlipResult struct {
	Player string
	Color  Color
	Cards  int // cards flipped by this application
}

// FlipTargets returns the indexes of the players who hold the majority of
// color c and must flip it.
//
// When every player holds the same number of cards of c (including none, and
// trivially a lone player), nobody flips. With exactly two players the leader
// flips only when ahead by two or more. Otherwise every player tied on the
// maximum flips.
func FlipTargets(players []*Player, c Color) []int {
	if len(players) == 0 {
		return nil
	}
	counts := make([]int, len(players))
	top, low := 0, players[0].Open.CountOf(c)
	for i, p := range players {
		counts[i] = p.Open.CountOf(c)
		top = max(top, counts[i])
		low = min(low, counts[i])
	}
	if top == low {
		return nil
	}

	if len(players) == 2 {
		switch {
		case counts[0]-counts[1] >= 2:
			return []int{0}
		case counts[1]-counts[0] >= 2:
			return []int{1}
		default:
			return nil
		}
	}

	var targets []int
	for i, n := range counts {
		if n == top {
			targets = append(targets, i)
		}
	}
	return targets
}

// ApplyFlips evaluates every color in canonical order and flips the majority
// holders' cards of that color. Applying it twice changes nothing the second
// time.
func ApplyFlips(players []*Player) []FlipResult {
	var results []FlipResult
	for _, c := range Colors {
		for _, i := range FlipTargets(players, c) {
			n := players[i].Open.FlipColor(c)
			results = append(results, FlipResult{Player: players[i].Name, Color: c, Cards: n})
		}
	}
	return results
}
