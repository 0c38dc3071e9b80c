package deck

// Deck maps card id to quantity. Present keys always carry a quantity >= 1; a
// quantity reaching zero removes the key.
type Deck map[string]int

func New() Deck {
	return Deck{}
}

// Add puts n more copies of the card into the deck.
func (d Deck) Add(id string, n int) {
	if n <= 0 {
		return
	}
	d[id] += n
}

// Remove takes up to n copies of the card out of the deck.
func (d Deck) Remove(id string, n int) {
	if n <= 0 {
		return
	}
	q := d[id] - n
	if q <= 0 {
		delete(d, id)
		return
	}
	d[id] = q
}

// Total is the summed quantity over all entries.
func (d Deck) Total() int {
	total := 0
	for _, q := range d {
		total += q
	}
	return total
}

// Clone returns an independent copy, used as a read-only snapshot for exports.
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	for id, q := range d {
		out[id] = q
	}
	return out
}
