package game

import (
	"fmt"
	"math/rand"
)

// Deck is the shared draw pile. The top of the deck is the last element
// (pop from end).
type Deck struct {
	cards []Card
}

// NewDeck builds the 66-card deck in generation order: colors in canonical
// order, values 0 through 10 within each color. The first generated card
// ends up at the bottom.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, c := range Colors {
		for v := 0; v <= MaxValue; v++ {
			cards = append(cards, NewCard(c, v))
		}
	}
	return &Deck{cards: cards}
}

// NewDeckFromCards builds a deck whose first element is drawn first.
func NewDeckFromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Shuffle randomizes the deck order with the session RNG.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Count returns the number of cards remaining.
func (d *Deck) Count() int {
	return len(d.cards)
}

// Empty reports whether the deck has run out.
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

// Draw removes the top card from the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Deal draws n cards in draw order.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards from %d: %w", n, len(d.cards), ErrEmptyDeck)
	}
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, _ := d.Draw()
		out = append(out, c)
	}
	return out, nil
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
