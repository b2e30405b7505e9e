package game

// Rules holds the optional rule variants. The zero value is the standard
// game.
type Rules struct {
	// ZeroTakesAll makes a played 0 take every exposed card regardless of
	// color or value. Without it a 0 only takes exposed cards of its color
	// or value 0.
	ZeroTakesAll bool

	// ScoreHand adds the values of cards left in hand to the final score.
	ScoreHand bool
}

// ExposedCount returns how many cards at the head of a parade of length n
// (already including the played card) are examined when a card of value v is
// played.
func ExposedCount(n, v int) int {
	return max(0, n-v-1)
}

// Absorb plays a card onto the parade. It returns the new parade and the
// cards the player takes. The played card always stays in the parade, and
// cards that are not taken keep their relative order. The input slice is
// not modified.
func Absorb(parade []Card, played Card, rules Rules) (remaining, taken []Card) {
	line := make([]Card, 0, len(parade)+1)
	line = append(line, parade...)
	line = append(line, played)

	exposed := ExposedCount(len(line), played.Value)
	remaining = make([]Card, 0, len(line))
	for i, p := range line {
		if i < exposed && takes(played, p, rules) {
			taken = append(taken, p)
			continue
		}
		remaining = append(remaining, p)
	}
	return remaining, taken
}

func takes(played, p Card, rules Rules) bool {
	if rules.ZeroTakesAll && played.Value == 0 {
		return true
	}
	return p.Color == played.Color || played.Value >= p.Value
}
