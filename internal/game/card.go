package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// cardEffect runs a card's behavior. p is the player the effect benefits,
// pc the played instance (its owner may differ from p when a copy effect
// is in play), and via the input that triggered the effect.
type cardEffect func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error

// cardInputHandler resolves a queued follow-up tagged with the card's
// context. pending is the server-side input with its option sets;
// submitted carries the caller's client options.
type cardInputHandler func(gs *GameState, p *Player, pending, submitted *GameInput) error

// Card is the static definition of one card.
type Card struct {
	Name           CardName
	Type           CardType
	BaseVP         int
	BaseCost       ResourceMap
	IsUnique       bool
	IsConstruction bool
	// AssociatedCard pairs a construction with the critter it hosts for
	// free, and vice versa.
	AssociatedCard    CardName
	IsOpenDestination bool
	MaxWorkerSpots    int
	NumInDeck         int
	InitialResources  ResourceMap

	canPlay     func(gs *GameState, p *Player) error
	onPlay      cardEffect
	onActivate  cardEffect
	onVisit     cardEffect
	handleInput cardInputHandler
	pointsFn    func(gs *GameState, playerID string) int
}

// GetPoints returns the card's end-game value for the given player,
// including any prosperity bonus.
func (c *Card) GetPoints(gs *GameState, playerID string) int {
	points := c.BaseVP
	if c.pointsFn != nil {
		points += c.pointsFn(gs, playerID)
	}
	return points
}

// WorkerSpots returns the number of visit spots, accounting for the
// critters that unlock a second cell.
func (c *Card) WorkerSpots(owner *Player) int {
	spots := c.MaxWorkerSpots
	switch c.Name {
	case CardCemetary:
		if owner.HasCardInCity(CardUndertaker) {
			spots = 2
		}
	case CardMonastery:
		if owner.HasCardInCity(CardMonk) {
			spots = 2
		}
	}
	return spots
}

// CardFromName resolves a card definition.
func CardFromName(name CardName) (*Card, error) {
	c, ok := cardRegistry[name]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeNotFound,
			fmt.Sprintf("unknown card %s", name),
			map[string]string{"card": string(name)})
	}
	return c, nil
}

func mustCard(name CardName) *Card {
	c, err := CardFromName(name)
	if err != nil {
		panic(err)
	}
	return c
}

// AllCardNames lists every card in the registry in a stable order.
func AllCardNames() []CardName {
	out := make([]CardName, 0, len(cardRegistry))
	for _, c := range cardOrder {
		out = append(out, c)
	}
	return out
}

// FullDeck returns one copy of the deck list: every card repeated by its
// print count.
func FullDeck() []CardName {
	var out []CardName
	for _, name := range cardOrder {
		c := cardRegistry[name]
		for i := 0; i < c.NumInDeck; i++ {
			out = append(out, name)
		}
	}
	return out
}
