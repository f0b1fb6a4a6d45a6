package game

import (
	"fmt"
	"strings"

	"github.com/louisbranch/evermeadow/internal/errors"
)

type adornmentEffect func(gs *GameState, p *Player, via *GameInput) error

type adornmentInputHandler func(gs *GameState, p *Player, pending, submitted *GameInput) error

// Adornment is a pearl-cost card played face up next to the city. Each
// has a one-time effect and an end-game scoring rule.
type Adornment struct {
	Name AdornmentName

	onPlay      adornmentEffect
	handleInput adornmentInputHandler
	pointsFn    func(gs *GameState, playerID string) int
}

// GetPoints returns the adornment's end-game points for the player.
func (a *Adornment) GetPoints(gs *GameState, playerID string) int {
	if a.pointsFn == nil {
		return 0
	}
	return a.pointsFn(gs, playerID)
}

var adornmentRegistry = map[AdornmentName]*Adornment{}

func registerAdornment(a *Adornment) {
	adornmentRegistry[a.Name] = a
}

// AdornmentFromName looks up an adornment definition.
func AdornmentFromName(name AdornmentName) (*Adornment, error) {
	a, ok := adornmentRegistry[name]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeNotFound,
			fmt.Sprintf("unknown adornment %s", name),
			map[string]string{"adornment": string(name)})
	}
	return a, nil
}

func mustAdornment(name AdornmentName) *Adornment {
	a, err := AdornmentFromName(name)
	if err != nil {
		panic(err)
	}
	return a
}

// AllAdornmentNames lists every adornment in a stable order.
func AllAdornmentNames() []AdornmentName {
	return []AdornmentName{
		AdornmentBell,
		AdornmentCompass,
		AdornmentGildedBook,
		AdornmentHourglass,
		AdornmentKeyToTheCity,
		AdornmentMasque,
		AdornmentMirror,
		AdornmentScales,
		AdornmentSeaglassAmulet,
		AdornmentSpyglass,
		AdornmentSundial,
		AdornmentTiara,
	}
}

func cityPlayer(gs *GameState, playerID string) *Player {
	p, err := gs.GetPlayer(playerID)
	if err != nil {
		return nil
	}
	return p
}

func pointsPerCityCards(count func(p *Player) int, per int) func(gs *GameState, playerID string) int {
	return func(gs *GameState, playerID string) int {
		p := cityPlayer(gs, playerID)
		if p == nil {
			return 0
		}
		return count(p) / per
	}
}

// gainAnyResources queues a free-form resource gain when n > 0.
func gainAnyResources(gs *GameState, via *GameInput, adornment AdornmentName, n int) {
	if n <= 0 {
		return
	}
	gs.pushPendingInput(&GameInput{
		InputType:        InputSelectResources,
		PrevInputType:    via.InputType,
		AdornmentContext: adornment,
		Label:            fmt.Sprintf("Gain %d ANY", n),
		ToSpend:          false,
		MinResources:     n,
		MaxResources:     n,
	})
}

func gainSelectedResources(gs *GameState, p *Player, pending, submitted *GameInput) error {
	rm := submitted.ClientOptions.Resources
	if err := validateSelectedResources(pending, p, rm); err != nil {
		return err
	}
	p.GainResources(rm.Clone())
	return nil
}

func init() {
	registerAdornment(&Adornment{
		Name: AdornmentBell,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			p.GainResources(ResourceMap{ResourceTypeBerry: 3})
			p.DrawCards(gs, 1)
			return nil
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			n := 0
			for _, pc := range p.PlayedCards {
				if !mustCard(pc.CardName).IsConstruction {
					n++
				}
			}
			return n
		}, 2),
	})

	registerAdornment(&Adornment{
		Name: AdornmentCompass,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			var options []PlayedCardInfo
			for _, pc := range p.PlayedCards {
				card := mustCard(pc.CardName)
				if card.Type != CardTypeTraveler || card.onPlay == nil {
					continue
				}
				options = append(options, *pc.Clone())
			}
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectPlayedCards,
				PrevInputType:     via.InputType,
				AdornmentContext:  AdornmentCompass,
				Label:             "Reactivate up to 2 TRAVELER in your city",
				PlayedCardOptions: options,
				MinToSelect:       0,
				MaxToSelect:       2,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedPlayedCards
			if err := validateSelectedPlayedCards(pending, selected); err != nil {
				return err
			}
			for i := range selected {
				target, err := p.FindPlayedCard(&selected[i])
				if err != nil {
					return err
				}
				if err := gs.activatePlayedCard(p, target, submitted); err != nil {
					return err
				}
			}
			return nil
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			return p.NumCardsInCityByType(CardTypeTraveler)
		}, 1),
	})

	registerAdornment(&Adornment{
		Name: AdornmentGildedBook,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			var options []CardName
			for _, pc := range p.PlayedCards {
				if mustCard(pc.CardName).Type == CardTypeGovernance {
					options = append(options, pc.CardName)
				}
			}
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputSelectCards,
				PrevInputType:    via.InputType,
				AdornmentContext: AdornmentGildedBook,
				Label:            "Gain resources equal to the cost of a GOVERNANCE in your city",
				CardOptions:      options,
				MinToSelect:      1,
				MaxToSelect:      1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedCards
			if err := validateSelectedCardNames(pending, selected); err != nil {
				return err
			}
			p.GainResources(mustCard(selected[0]).BaseCost.Clone())
			return nil
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			return p.NumCardsInCityByType(CardTypeGovernance)
		}, 2),
	})

	registerAdornment(&Adornment{
		Name: AdornmentHourglass,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			var options []LocationName
			for name := range gs.LocationsMap {
				loc := mustLocation(name)
				if loc.Type != LocationTypeForest {
					continue
				}
				if loc.CanPlay(gs, p) != nil {
					continue
				}
				options = append(options, name)
			}
			if len(options) > 0 {
				gs.pushPendingInput(&GameInput{
					InputType:        InputSelectLocation,
					PrevInputType:    via.InputType,
					AdornmentContext: AdornmentHourglass,
					Label:            "Copy a forest location",
					LocationOptions:  options,
				})
			}
			gainAnyResources(gs, via, AdornmentHourglass, 1)
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			if pending.InputType == InputSelectResources {
				return gainSelectedResources(gs, p, pending, submitted)
			}
			loc := submitted.ClientOptions.SelectedLocation
			if err := validateSelectedLocation(pending, loc); err != nil {
				return err
			}
			return gs.activateLocation(p, loc, &GameInput{
				InputType: InputPlaceWorker,
				PlayerID:  p.PlayerID,
			})
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			return p.NumCardsInCityByType(CardTypeDestination)
		}, 1),
	})

	registerAdornment(&Adornment{
		Name: AdornmentKeyToTheCity,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			p.DrawCards(gs, 2)
			gainAnyResources(gs, via, AdornmentKeyToTheCity, 2)
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			return gainSelectedResources(gs, p, pending, submitted)
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			n := 0
			for _, pc := range p.PlayedCards {
				if mustCard(pc.CardName).IsConstruction {
					n++
				}
			}
			return n
		}, 2),
	})

	registerAdornment(&Adornment{
		Name: AdornmentMasque,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			options := queenPlayableCards(gs, p)
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputSelectCards,
				PrevInputType:    via.InputType,
				AdornmentContext: AdornmentMasque,
				Label:            "Play a CARD worth up to 3 VP for free",
				CardOptions:      options,
				MinToSelect:      1,
				MaxToSelect:      1,
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
				inHand := cardNameIn(p.CardsInHand, c)
				inMeadow := cardNameIn(gs.Meadow, c)
				if inHand && inMeadow {
					resolved := pending.Clone()
					resolved.ClientOptions.SelectedCards = selected
					gs.pushPendingInput(&GameInput{
						InputType:        InputSelectOptionGeneric,
						PrevInputType:    InputSelectCards,
						PrevInput:        resolved,
						AdornmentContext: AdornmentMasque,
						Label:            fmt.Sprintf("Play %s from the meadow or your hand", c),
						Options:          []string{"Meadow", "Hand"},
					})
					return nil
				}
				if inMeadow {
					return gs.playQueenCard(p, c, "Meadow", submitted)
				}
				return gs.playQueenCard(p, c, "Hand", submitted)
			case InputSelectOptionGeneric:
				opt := submitted.ClientOptions.SelectedOption
				if err := validateSelectedOption(pending, opt); err != nil {
					return err
				}
				c := pending.PrevInput.ClientOptions.SelectedCards[0]
				return gs.playQueenCard(p, c, opt, submitted)
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for the Masque")
		},
		pointsFn: func(gs *GameState, playerID string) int {
			p := cityPlayer(gs, playerID)
			if p == nil {
				return 0
			}
			return p.Resources[ResourceTypeVP] / 3
		},
	})

	registerAdornment(&Adornment{
		Name: AdornmentMirror,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			var options []AdornmentName
			for _, other := range gs.Players {
				if other.PlayerID == p.PlayerID {
					continue
				}
				options = append(options, other.PlayedAdornments...)
			}
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputSelectPlayedAdornment,
				PrevInputType:    via.InputType,
				AdornmentContext: AdornmentMirror,
				Label:            "Copy an adornment played by an opponent",
				AdornmentOptions: options,
				MinToSelect:      0,
				MaxToSelect:      1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedAdornments
			if len(selected) == 0 {
				return nil
			}
			if len(selected) > 1 {
				return errors.New(errors.CodeSelectionCountBounds, "too many adornments selected")
			}
			found := false
			for _, opt := range pending.AdornmentOptions {
				if opt == selected[0] {
					found = true
					break
				}
			}
			if !found {
				return errors.New(errors.CodeSelectionNotAllowed,
					fmt.Sprintf("invalid adornment selected: %s", selected[0]))
			}
			target := mustAdornment(selected[0])
			if target.onPlay == nil {
				return nil
			}
			return target.onPlay(gs, p, submitted)
		},
		pointsFn: func(gs *GameState, playerID string) int {
			p := cityPlayer(gs, playerID)
			if p == nil {
				return 0
			}
			seen := map[CardType]bool{}
			for _, pc := range p.PlayedCards {
				seen[mustCard(pc.CardName).Type] = true
			}
			return len(seen)
		},
	})

	registerAdornment(&Adornment{
		Name: AdornmentScales,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			if len(p.CardsInHand) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputDiscardCards,
				PrevInputType:    via.InputType,
				AdornmentContext: AdornmentScales,
				Label:            "Discard up to 4 CARD to gain 1 ANY each",
				MinCards:         0,
				MaxCards:         4,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			if pending.InputType == InputSelectResources {
				return gainSelectedResources(gs, p, pending, submitted)
			}
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
			gainAnyResources(gs, submitted, AdornmentScales, len(cards))
			return nil
		},
		pointsFn: func(gs *GameState, playerID string) int {
			p := cityPlayer(gs, playerID)
			if p == nil {
				return 0
			}
			n := len(p.CardsInHand)
			if n > 5 {
				n = 5
			}
			return n
		},
	})

	registerAdornment(&Adornment{
		Name: AdornmentSeaglassAmulet,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			p.DrawCards(gs, 2)
			p.GainResources(ResourceMap{ResourceTypeVP: 1})
			gainAnyResources(gs, via, AdornmentSeaglassAmulet, 3)
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			return gainSelectedResources(gs, p, pending, submitted)
		},
		pointsFn: func(gs *GameState, playerID string) int { return 3 },
	})

	registerAdornment(&Adornment{
		Name: AdornmentSpyglass,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			p.DrawCards(gs, 1)
			p.GainResources(ResourceMap{ResourceTypePearl: 1})
			gainAnyResources(gs, via, AdornmentSpyglass, 1)
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			return gainSelectedResources(gs, p, pending, submitted)
		},
		pointsFn: func(gs *GameState, playerID string) int {
			p := cityPlayer(gs, playerID)
			if p == nil {
				return 0
			}
			wonders := 0
			for _, name := range p.ClaimedEvents {
				if strings.HasPrefix(string(name), "WONDER_") {
					wonders++
				}
			}
			return wonders * 3
		},
	})

	registerAdornment(&Adornment{
		Name: AdornmentSundial,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			options := activatableProduction(gs, p)
			if len(options) == 0 {
				return nil
			}
			max := 3
			if len(options) < max {
				max = len(options)
			}
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectPlayedCards,
				PrevInputType:     via.InputType,
				AdornmentContext:  AdornmentSundial,
				Label:             "Activate up to 3 PRODUCTION in your city",
				PlayedCardOptions: options,
				MinToSelect:       max,
				MaxToSelect:       max,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedPlayedCards
			if err := validateSelectedPlayedCards(pending, selected); err != nil {
				return err
			}
			for i := range selected {
				target, err := p.FindPlayedCard(&selected[i])
				if err != nil {
					return err
				}
				if err := gs.activatePlayedCard(p, target, submitted); err != nil {
					return err
				}
			}
			return nil
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			return p.NumCardsInCityByType(CardTypeProduction)
		}, 2),
	})

	registerAdornment(&Adornment{
		Name: AdornmentTiara,
		onPlay: func(gs *GameState, p *Player, via *GameInput) error {
			gainAnyResources(gs, via, AdornmentTiara,
				p.NumCardsInCityByType(CardTypeProsperity))
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			return gainSelectedResources(gs, p, pending, submitted)
		},
		pointsFn: pointsPerCityCards(func(p *Player) int {
			return p.NumCardsInCityByType(CardTypeProsperity)
		}, 1),
	})
}
