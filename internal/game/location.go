package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
)

type locationEffect func(gs *GameState, p *Player, via *GameInput) error

type locationInputHandler func(gs *GameState, p *Player, pending, submitted *GameInput) error

// Location is a worker placement spot on the shared board.
type Location struct {
	Name       LocationName
	Type       LocationType
	Occupancy  LocationOccupancy
	BasePoints int

	resourcesToGain ResourceMap
	numCardsToDraw  int

	canPlay     func(gs *GameState, p *Player) error
	onActivate  locationEffect
	handleInput locationInputHandler
}

// Activate runs the location's effect for the given player. Simple
// locations grant their printed resources and cards; the rest queue a
// follow-up input.
func (l *Location) Activate(gs *GameState, p *Player, via *GameInput) error {
	if l.resourcesToGain != nil {
		p.GainResources(l.resourcesToGain.Clone())
	}
	if l.numCardsToDraw > 0 {
		p.DrawCards(gs, l.numCardsToDraw)
	}
	if l.onActivate != nil {
		return l.onActivate(gs, p, via)
	}
	return nil
}

// CanPlay reports whether the location's effect could do anything for
// the player, ignoring worker availability and occupancy.
func (l *Location) CanPlay(gs *GameState, p *Player) error {
	if l.canPlay != nil {
		return l.canPlay(gs, p)
	}
	return nil
}

var locationRegistry = map[LocationName]*Location{}

func registerLocation(l *Location) {
	locationRegistry[l.Name] = l
}

// LocationFromName looks up a location definition.
func LocationFromName(name LocationName) (*Location, error) {
	l, ok := locationRegistry[name]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeNotFound,
			fmt.Sprintf("unknown location %s", name),
			map[string]string{"location": string(name)})
	}
	return l, nil
}

func mustLocation(name LocationName) *Location {
	l, err := LocationFromName(name)
	if err != nil {
		panic(err)
	}
	return l
}

// BasicLocationNames lists the always-open board locations.
func BasicLocationNames() []LocationName {
	return []LocationName{
		LocationBasicOneBerry,
		LocationBasicOneBerryOneCard,
		LocationBasicOneResinOneCard,
		LocationBasicOneStone,
		LocationBasicThreeTwigs,
		LocationBasicTwoCardsOneVP,
		LocationBasicTwoResin,
		LocationBasicTwoTwigsOneCard,
	}
}

// ForestLocationNames lists the forest locations in a fixed order;
// games use a subset of them.
func ForestLocationNames() []LocationName {
	return []LocationName{
		LocationForestTwoBerryOneCard,
		LocationForestTwoWild,
		LocationForestThreeBerry,
		LocationForestDiscardDrawTwo,
		LocationForestDrawTwoMeadow,
	}
}

// JourneyLocationNames lists the journey locations.
func JourneyLocationNames() []LocationName {
	return []LocationName{
		LocationJourneyFive,
		LocationJourneyFour,
		LocationJourneyThree,
		LocationJourneyTwo,
	}
}

func journeyLocation(name LocationName, points int, occupancy LocationOccupancy) *Location {
	return &Location{
		Name:       name,
		Type:       LocationTypeJourney,
		Occupancy:  occupancy,
		BasePoints: points,
		canPlay: func(gs *GameState, p *Player) error {
			if p.CurrentSeason != SeasonAutumn {
				return errors.New(errors.CodeLocationNotPlayable,
					"journey locations open in autumn")
			}
			if len(p.CardsInHand) < points {
				return errors.New(errors.CodeLocationNotPlayable,
					"not enough cards in hand for this journey")
			}
			return nil
		},
		onActivate: func(gs *GameState, p *Player, via *GameInput) error {
			gs.pushPendingInput(&GameInput{
				InputType:       InputDiscardCards,
				PrevInputType:   via.InputType,
				LocationContext: name,
				Label:           fmt.Sprintf("Discard %d CARD", points),
				MinCards:        points,
				MaxCards:        points,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			cards := submitted.ClientOptions.CardsToDiscard
			if err := validateDiscardedCards(pending, p, cards); err != nil {
				return err
			}
			for _, c := range cards {
				if err := p.RemoveCardFromHand(c); err != nil {
					return err
				}
				gs.DiscardPile.AddToStack(c)
			}
			return nil
		},
	}
}

func init() {
	registerLocation(&Location{
		Name: LocationBasicOneBerry, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeBerry: 1},
	})
	registerLocation(&Location{
		Name: LocationBasicOneBerryOneCard, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeBerry: 1},
		numCardsToDraw:  1,
	})
	registerLocation(&Location{
		Name: LocationBasicOneResinOneCard, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeResin: 1},
		numCardsToDraw:  1,
	})
	registerLocation(&Location{
		Name: LocationBasicOneStone, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypePebble: 1},
	})
	registerLocation(&Location{
		Name: LocationBasicThreeTwigs, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeTwig: 3},
	})
	registerLocation(&Location{
		Name: LocationBasicTwoCardsOneVP, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeVP: 1},
		numCardsToDraw:  2,
	})
	registerLocation(&Location{
		Name: LocationBasicTwoResin, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeResin: 2},
	})
	registerLocation(&Location{
		Name: LocationBasicTwoTwigsOneCard, Type: LocationTypeBasic,
		Occupancy:       OccupancyUnlimited,
		resourcesToGain: ResourceMap{ResourceTypeTwig: 2},
		numCardsToDraw:  1,
	})

	registerLocation(&Location{
		Name: LocationHaven, Type: LocationTypeHaven,
		Occupancy: OccupancyUnlimited,
		onActivate: func(gs *GameState, p *Player, via *GameInput) error {
			gs.pushPendingInput(&GameInput{
				InputType:       InputDiscardCards,
				PrevInputType:   via.InputType,
				LocationContext: LocationHaven,
				Label:           "Discard any number of CARD to gain 1 ANY per 2 discarded",
				MinCards:        0,
				MaxCards:        MaxHandSize,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputDiscardCards:
				cards := submitted.ClientOptions.CardsToDiscard
				if err := validateDiscardedCards(pending, p, cards); err != nil {
					return err
				}
				for _, c := range cards {
					if err := p.RemoveCardFromHand(c); err != nil {
						return err
					}
					gs.DiscardPile.AddToStack(c)
				}
				gain := len(cards) / 2
				if gain == 0 {
					return nil
				}
				gs.pushPendingInput(&GameInput{
					InputType:       InputSelectResources,
					PrevInputType:   InputDiscardCards,
					LocationContext: LocationHaven,
					Label:           fmt.Sprintf("Gain %d ANY", gain),
					ToSpend:         false,
					MinResources:    gain,
					MaxResources:    gain,
				})
				return nil
			case InputSelectResources:
				rm := submitted.ClientOptions.Resources
				if err := validateSelectedResources(pending, p, rm); err != nil {
					return err
				}
				p.GainResources(rm.Clone())
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for the Haven")
		},
	})

	registerLocation(journeyLocation(LocationJourneyFive, 5, OccupancyExclusive))
	registerLocation(journeyLocation(LocationJourneyFour, 4, OccupancyExclusive))
	registerLocation(journeyLocation(LocationJourneyThree, 3, OccupancyExclusive))
	registerLocation(journeyLocation(LocationJourneyTwo, 2, OccupancyUnlimited))

	registerLocation(&Location{
		Name: LocationForestTwoBerryOneCard, Type: LocationTypeForest,
		Occupancy:       OccupancyExclusive,
		resourcesToGain: ResourceMap{ResourceTypeBerry: 2},
		numCardsToDraw:  1,
	})
	registerLocation(&Location{
		Name: LocationForestThreeBerry, Type: LocationTypeForest,
		Occupancy:       OccupancyExclusive,
		resourcesToGain: ResourceMap{ResourceTypeBerry: 3},
	})
	registerLocation(&Location{
		Name: LocationForestTwoWild, Type: LocationTypeForest,
		Occupancy: OccupancyExclusive,
		onActivate: func(gs *GameState, p *Player, via *GameInput) error {
			gs.pushPendingInput(&GameInput{
				InputType:       InputSelectResources,
				PrevInputType:   via.InputType,
				LocationContext: LocationForestTwoWild,
				Label:           "Gain 2 ANY",
				ToSpend:         false,
				MinResources:    2,
				MaxResources:    2,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			rm := submitted.ClientOptions.Resources
			if err := validateSelectedResources(pending, p, rm); err != nil {
				return err
			}
			p.GainResources(rm.Clone())
			return nil
		},
	})
	registerLocation(&Location{
		Name: LocationForestDiscardDrawTwo, Type: LocationTypeForest,
		Occupancy: OccupancyExclusive,
		onActivate: func(gs *GameState, p *Player, via *GameInput) error {
			gs.pushPendingInput(&GameInput{
				InputType:       InputDiscardCards,
				PrevInputType:   via.InputType,
				LocationContext: LocationForestDiscardDrawTwo,
				Label:           "Discard any number of CARD to draw 2 per discarded",
				MinCards:        0,
				MaxCards:        MaxHandSize,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			cards := submitted.ClientOptions.CardsToDiscard
			if err := validateDiscardedCards(pending, p, cards); err != nil {
				return err
			}
			for _, c := range cards {
				if err := p.RemoveCardFromHand(c); err != nil {
					return err
				}
				gs.DiscardPile.AddToStack(c)
			}
			p.DrawCards(gs, 2*len(cards))
			return nil
		},
	})
	registerLocation(&Location{
		Name: LocationForestDrawTwoMeadow, Type: LocationTypeForest,
		Occupancy: OccupancyExclusive,
		canPlay: func(gs *GameState, p *Player) error {
			for _, c := range gs.Meadow {
				card := mustCard(c)
				if p.CanAddToCity(c) != nil {
					continue
				}
				if p.ValidatePaidResources(p.Resources, card.BaseCost, DiscountAnyOne, false) == nil {
					return nil
				}
			}
			return errors.New(errors.CodeLocationNotPlayable,
				"no playable cards in the meadow")
		},
		onActivate: func(gs *GameState, p *Player, via *GameInput) error {
			for i := 0; i < 2; i++ {
				c, err := gs.Deck.Draw()
				if err != nil {
					break
				}
				gs.Meadow = append(gs.Meadow, c)
			}
			var options []CardName
			for _, c := range gs.Meadow {
				card := mustCard(c)
				if p.CanAddToCity(c) != nil {
					continue
				}
				if p.ValidatePaidResources(p.Resources, card.BaseCost, DiscountAnyOne, false) != nil {
					continue
				}
				options = append(options, c)
			}
			if len(options) == 0 {
				return errors.New(errors.CodeLocationNotPlayable,
					"no playable cards in the meadow")
			}
			gs.pushPendingInput(&GameInput{
				InputType:       InputSelectCards,
				PrevInputType:   via.InputType,
				LocationContext: LocationForestDrawTwoMeadow,
				Label:           "Play a meadow CARD for 1 fewer ANY",
				CardOptions:     options,
				MinToSelect:     1,
				MaxToSelect:     1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectCards:
				selected := submitted.ClientOptions.SelectedCards
				if err := validateSelectedCardNames(pending, selected); err != nil {
					return err
				}
				c := selected[0]
				if err := p.CanAddToCity(c); err != nil {
					return err
				}
				card := mustCard(c)
				if card.BaseCost.Count() <= 1 {
					if err := gs.removeCardFromMeadow(c); err != nil {
						return err
					}
					if err := gs.placeAndActivateCard(p, c, submitted); err != nil {
						return err
					}
					gs.trimMeadow()
					return nil
				}
				gs.pushPendingInput(&GameInput{
					InputType:       InputSelectPaymentForCard,
					PrevInputType:   InputSelectCards,
					LocationContext: LocationForestDrawTwoMeadow,
					Card:            c,
					Label:           fmt.Sprintf("Pay for %s (1 fewer ANY)", c),
				})
				return nil
			case InputSelectPaymentForCard:
				c := pending.Card
				paid := ResourceMap{}
				if submitted.ClientOptions.PaymentOptions != nil {
					paid = submitted.ClientOptions.PaymentOptions.Resources
				}
				card := mustCard(c)
				if err := p.ValidatePaidResources(paid, card.BaseCost, DiscountAnyOne, true); err != nil {
					return err
				}
				if err := p.SpendResources(paid); err != nil {
					return err
				}
				if err := gs.removeCardFromMeadow(c); err != nil {
					return err
				}
				if err := gs.placeAndActivateCard(p, c, submitted); err != nil {
					return err
				}
				gs.trimMeadow()
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for this location")
		},
	})
}
