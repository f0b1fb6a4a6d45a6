package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// Event is a shared achievement a player may claim with a worker once
// its card requirement is met.
type Event struct {
	Name   EventName
	Type   EventType
	BaseVP int

	RequiredCardType CardType
	RequiredCount    int
}

// CanClaim reports whether the player's city satisfies the event's
// requirement.
func (e *Event) CanClaim(p *Player) error {
	if p.NumCardsInCityByType(e.RequiredCardType) < e.RequiredCount {
		return errors.WithMetadata(errors.CodeEventNotClaimable,
			fmt.Sprintf("cannot claim %s: requirement not met", e.Name),
			map[string]string{"event": string(e.Name)})
	}
	return nil
}

var eventRegistry = map[EventName]*Event{
	EventFourProductionTags: {
		Name: EventFourProductionTags, Type: EventTypeBasic, BaseVP: 3,
		RequiredCardType: CardTypeProduction, RequiredCount: 4,
	},
	EventThreeDestination: {
		Name: EventThreeDestination, Type: EventTypeBasic, BaseVP: 3,
		RequiredCardType: CardTypeDestination, RequiredCount: 3,
	},
	EventThreeGovernance: {
		Name: EventThreeGovernance, Type: EventTypeBasic, BaseVP: 3,
		RequiredCardType: CardTypeGovernance, RequiredCount: 3,
	},
	EventThreeTraveler: {
		Name: EventThreeTraveler, Type: EventTypeBasic, BaseVP: 3,
		RequiredCardType: CardTypeTraveler, RequiredCount: 3,
	},
}

// EventFromName looks up an event definition.
func EventFromName(name EventName) (*Event, error) {
	e, ok := eventRegistry[name]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeNotFound,
			fmt.Sprintf("unknown event %s", name),
			map[string]string{"event": string(name)})
	}
	return e, nil
}

// BasicEventNames lists the events available in every game.
func BasicEventNames() []EventName {
	return []EventName{
		EventFourProductionTags,
		EventThreeDestination,
		EventThreeGovernance,
		EventThreeTraveler,
	}
}
