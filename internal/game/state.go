package game

import "fmt"

// OpenCards is a player's collected cards, one list per color in insertion
// order. Index with a Color.
type OpenCards [NumColors][]Card

// Add appends each card under its own color.
func (o *OpenCards) Add(cards ...Card) {
	for _, c := range cards {
		o[c.Color] = append(o[c.Color], c)
	}
}

// Count returns the total number of open cards.
func (o *OpenCards) Count() int {
	n := 0
	for _, cards := range o {
		n += len(cards)
	}
	return n
}

// CountOf returns the number of open cards of one color.
func (o *OpenCards) CountOf(c Color) int {
	return len(o[c])
}

// DistinctColors returns how many colors have at least one card.
func (o *OpenCards) DistinctColors() int {
	n := 0
	for _, cards := range o {
		if len(cards) > 0 {
			n++
		}
	}
	return n
}

// HasAllColors reports whether every color has at least one card.
func (o *OpenCards) HasAllColors() bool {
	return o.DistinctColors() == NumColors
}

// FlipColor flips every card of color c and returns how many cards were
// newly flipped.
func (o *OpenCards) FlipColor(c Color) int {
	n := 0
	for i := range o[c] {
		if !o[c][i].Flipped {
			n++
		}
		o[c][i].Flip()
	}
	return n
}

// All returns every open card, grouped by color in canonical order.
func (o *OpenCards) All() []Card {
	var out []Card
	for _, c := range Colors {
		out = append(out, o[c]...)
	}
	return out
}

func (o *OpenCards) clone() OpenCards {
	var out OpenCards
	for i := range o {
		out[i] = append([]Card(nil), o[i]...)
	}
	return out
}

// Player is a seat at the table. Humans and computer players share this
// record; only the CardChooser bound to it differs.
type Player struct {
	Name string
	Kind Kind
	Hand []Card
	Open OpenCards
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// TakeFromHand removes and returns the card at index i.
func (p *Player) TakeFromHand(i int) (Card, error) {
	if i < 0 || i >= len(p.Hand) {
		return Card{}, fmt.Errorf("%s picked card %d of %d: %w", p.Name, i+1, len(p.Hand), ErrInvalidSelection)
	}
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card, nil
}

// TakeTwoFromHand removes the cards at two distinct indices, returning them
// in the order given.
func (p *Player) TakeTwoFromHand(i, j int) ([2]Card, error) {
	if err := validateFinalSelection(len(p.Hand), i, j); err != nil {
		return [2]Card{}, fmt.Errorf("%s: %w", p.Name, err)
	}
	out := [2]Card{p.Hand[i], p.Hand[j]}
	hi, lo := i, j
	if lo > hi {
		hi, lo = lo, hi
	}
	p.Hand = append(p.Hand[:hi], p.Hand[hi+1:]...)
	p.Hand = append(p.Hand[:lo], p.Hand[lo+1:]...)
	return out, nil
}

func validateFinalSelection(n, i, j int) error {
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("picked cards %d and %d of %d: %w", i+1, j+1, n, ErrInvalidSelection)
	}
	if i == j {
		return fmt.Errorf("picked card %d twice: %w", i+1, ErrInvalidSelection)
	}
	return nil
}

// CardCount returns every card the player holds in hand or open.
func (p *Player) CardCount() int {
	return len(p.Hand) + p.Open.Count()
}

func (p *Player) clone() *Player {
	return &Player{
		Name: p.Name,
		Kind: p.Kind,
		Hand: append([]Card(nil), p.Hand...),
		Open: p.Open.clone(),
	}
}
