package game

import (
	"math/rand"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// CardStack is an ordered face-down pile. The end of the slice is the
// top of the pile.
type CardStack struct {
	Name  string     `json:"name"`
	Cards []CardName `json:"cards"`
}

// NewCardStack builds a stack over the given cards.
func NewCardStack(name string, cards []CardName) *CardStack {
	return &CardStack{Name: name, Cards: append([]CardName{}, cards...)}
}

// Len returns the number of cards in the stack.
func (s *CardStack) Len() int { return len(s.Cards) }

// IsEmpty reports whether the stack has no cards.
func (s *CardStack) IsEmpty() bool { return len(s.Cards) == 0 }

// Draw removes and returns the top card.
func (s *CardStack) Draw() (CardName, error) {
	if len(s.Cards) == 0 {
		return "", errors.WithMetadata(errors.CodeNotFound,
			"unable to draw card from "+s.Name,
			map[string]string{"stack": s.Name})
	}
	c := s.Cards[len(s.Cards)-1]
	s.Cards = s.Cards[:len(s.Cards)-1]
	return c, nil
}

// AddToStack places a card on top.
func (s *CardStack) AddToStack(c CardName) {
	s.Cards = append(s.Cards, c)
}

// Shuffle reorders the stack with the given source.
func (s *CardStack) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(s.Cards), func(i, j int) {
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	})
}

// Clone returns a deep copy of the stack.
func (s *CardStack) Clone() *CardStack {
	if s == nil {
		return nil
	}
	return NewCardStack(s.Name, s.Cards)
}
