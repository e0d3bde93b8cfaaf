package brackets

import "fmt"

// BuildBracket shuffles the participants, pads the field to the next power
// of two with trailing byes and pairs slot i with slot P-1-i. Only the first
// round is produced; later rounds pair winners two at a time.
func (g *Generator) BuildBracket(names []string) ([]Match, error) {
	slots := CleanParticipants(names)
	n := len(slots)

	if n == 0 {
		return nil, ErrEmptyInput
	}
	if n < 2 {
		return nil, fmt.Errorf("single elimination with %q: %w", slots[0], ErrDegenerateSingleton)
	}

	g.shuffle(slots)

	size := BracketSize(n)
	for len(slots) < size {
		slots = append(slots, Bye)
	}

	matches := make([]Match, size/2)
	for i := range matches {
		matches[i] = Match{slots[i], slots[size-1-i]}
	}
	return matches, nil
}

// BracketSize is the smallest power of two that holds n entrants
// (1 for n <= 1).
func BracketSize(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
