package game

// CheckEndGame reports whether the main phase is over: the deck has run out,
// or some player holds at least one open card of every color. It is checked
// after every completed turn (play, absorb, draw).
func CheckEndGame(deckCount int, players []*Player) (bool, EndReason) {
	if deckCount == 0 {
		return true, EndDeckEmpty
	}
	for _, p := range players {
		if p.Open.HasAllColors() {
			return true, EndSixColors
		}
	}
	return false, EndNone
}
