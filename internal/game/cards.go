package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
)

var (
	cardRegistry = map[CardName]*Card{}
	cardOrder    []CardName
)

func registerCard(c *Card) {
	cardRegistry[c.Name] = c
	cardOrder = append(cardOrder, c.Name)
}

// gainFixed builds a production effect that grants a fixed set of
// resources and cards.
func gainFixed(rm ResourceMap, draw int) cardEffect {
	return func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
		if rm != nil {
			p.GainResources(rm.Clone())
		}
		if draw > 0 {
			p.DrawCards(gs, draw)
		}
		return nil
	}
}

// husbandPaired reports whether this husband instance has a wife of its
// own in the owner's city.
func husbandPaired(owner *Player, pc *PlayedCardInfo) bool {
	wives := owner.countCardsInCity(CardWife)
	idx := 0
	for _, other := range owner.PlayedCards {
		if other.CardName != CardHusband {
			continue
		}
		if other.Matches(pc) {
			break
		}
		idx++
	}
	return idx < wives
}

// activatableProduction lists the owner's production cards that would do
// something when activated. Names in exclude are skipped.
func activatableProduction(gs *GameState, owner *Player, exclude ...CardName) []PlayedCardInfo {
	var out []PlayedCardInfo
	for _, pc := range owner.PlayedCards {
		card := mustCard(pc.CardName)
		if card.Type != CardTypeProduction || card.onActivate == nil {
			continue
		}
		skip := false
		for _, ex := range exclude {
			if pc.CardName == ex {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if pc.CardName == CardHusband &&
			!(husbandPaired(owner, pc) && owner.HasCardInCity(CardFarm)) {
			continue
		}
		out = append(out, *pc.Clone())
	}
	return out
}

func resourceOptionStrings(types []ResourceType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

var anyResourceOptions = resourceOptionStrings([]ResourceType{
	ResourceTypeBerry, ResourceTypeTwig, ResourceTypeResin, ResourceTypePebble,
})

var nonBerryResourceOptions = resourceOptionStrings([]ResourceType{
	ResourceTypeTwig, ResourceTypeResin, ResourceTypePebble,
})

func init() {
	registerCard(&Card{
		Name: CardArchitect, Type: CardTypeProsperity, BaseVP: 2,
		BaseCost: ResourceMap{ResourceTypeBerry: 4},
		IsUnique: true, AssociatedCard: CardCrane, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			n := p.Resources[ResourceTypeResin] + p.Resources[ResourceTypePebble]
			if n > 6 {
				n = 6
			}
			return n
		},
	})

	registerCard(&Card{
		Name: CardBard, Type: CardTypeTraveler, BaseVP: 0,
		BaseCost: ResourceMap{ResourceTypeBerry: 3},
		IsUnique: true, AssociatedCard: CardTheatre, NumInDeck: 2,
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			if len(p.CardsInHand) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputDiscardCards,
				PrevInputType: via.InputType,
				CardContext:   CardBard,
				Label:         "Discard up to 5 CARD to gain 1 VP each",
				MinCards:      0,
				MaxCards:      5,
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
			p.GainResources(ResourceMap{ResourceTypeVP: len(cards)})
			return nil
		},
	})

	registerCard(&Card{
		Name: CardBargeToad, Type: CardTypeProduction, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardTwigBarge, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			owner := gs.ownerOf(pc, p)
			farms := owner.countCardsInCity(CardFarm)
			if farms > 0 {
				p.GainResources(ResourceMap{ResourceTypeTwig: 2 * farms})
			}
			return nil
		},
	})

	registerCard(&Card{
		Name: CardCastle, Type: CardTypeProsperity, BaseVP: 4,
		BaseCost: ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 3, ResourceTypePebble: 3},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardKing, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			n := 0
			for _, pc := range p.PlayedCards {
				card := mustCard(pc.CardName)
				if card.IsConstruction && !card.IsUnique {
					n++
				}
			}
			return n
		},
	})

	registerCard(&Card{
		Name: CardCemetary, Type: CardTypeDestination, BaseVP: 0,
		BaseCost: ResourceMap{ResourceTypePebble: 2},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardUndertaker,
		MaxWorkerSpots: 1, NumInDeck: 2,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			options := []string{}
			if !gs.Deck.IsEmpty() {
				options = append(options, "Deck")
			}
			if !gs.DiscardPile.IsEmpty() {
				options = append(options, "Discard Pile")
			}
			if len(options) == 0 {
				return errors.New(errors.CodeCardNotPlayable, "no cards left to reveal")
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectOptionGeneric,
				PrevInputType: via.InputType,
				CardContext:   CardCemetary,
				Label:         "Reveal 4 CARD from the deck or discard pile and play 1 for free",
				Options:       options,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectOptionGeneric:
				opt := submitted.ClientOptions.SelectedOption
				if err := validateSelectedOption(pending, opt); err != nil {
					if opt == "Discard Pile" {
						return errors.New(errors.CodeSelectionNotAllowed,
							"unable to draw card from discard pile")
					}
					return err
				}
				source := gs.Deck
				if opt == "Discard Pile" {
					source = gs.DiscardPile
				}
				var revealed []CardName
				for i := 0; i < 4; i++ {
					c, err := source.Draw()
					if err != nil {
						break
					}
					revealed = append(revealed, c)
				}
				var playable []CardName
				for _, c := range revealed {
					if gs.canPlayFree(p, c) {
						playable = append(playable, c)
					}
				}
				if len(playable) == 0 {
					for _, c := range revealed {
						gs.DiscardPile.AddToStack(c)
					}
					return nil
				}
				gs.pushPendingInput(&GameInput{
					InputType:             InputSelectCards,
					PrevInputType:         InputSelectOptionGeneric,
					CardContext:           CardCemetary,
					Label:                 "Play 1 of the revealed CARD for free",
					CardOptions:           playable,
					CardOptionsUnfiltered: revealed,
					MinToSelect:           1,
					MaxToSelect:           1,
				})
				return nil
			case InputSelectCards:
				selected := submitted.ClientOptions.SelectedCards
				if err := validateSelectedCardNames(pending, selected); err != nil {
					return err
				}
				rest := append([]CardName{}, pending.CardOptionsUnfiltered...)
				rest = removeOneCard(rest, selected[0])
				for _, c := range rest {
					gs.DiscardPile.AddToStack(c)
				}
				return gs.placeAndActivateCard(p, selected[0], submitted)
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Cemetary")
		},
	})

	registerCard(&Card{
		Name: CardChapel, Type: CardTypeDestination, BaseVP: 2,
		BaseCost: ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardShepherd,
		MaxWorkerSpots: 1, NumInDeck: 2,
		InitialResources: ResourceMap{ResourceTypeVP: 0},
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			if pc.Resources == nil {
				pc.Resources = ResourceMap{}
			}
			pc.Resources[ResourceTypeVP]++
			p.DrawCards(gs, 2*pc.Resources[ResourceTypeVP])
			return nil
		},
	})

	registerCard(&Card{
		Name: CardChipSweep, Type: CardTypeProduction, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 3},
		AssociatedCard: CardResinRefinery, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			owner := gs.ownerOf(pc, p)
			options := activatableProduction(gs, owner, CardChipSweep)
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectPlayedCards,
				PrevInputType:     via.InputType,
				CardContext:       CardChipSweep,
				Label:             "Select 1 PRODUCTION to activate",
				PlayedCardOptions: options,
				MinToSelect:       1,
				MaxToSelect:       1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedPlayedCards
			if err := validateSelectedPlayedCards(pending, selected); err != nil {
				return err
			}
			owner, err := gs.GetPlayer(selected[0].CardOwnerID)
			if err != nil {
				return err
			}
			target, err := owner.FindPlayedCard(&selected[0])
			if err != nil {
				return err
			}
			return gs.activatePlayedCard(p, target, submitted)
		},
	})

	registerCard(&Card{
		Name: CardClockTower, Type: CardTypeGovernance, BaseVP: 0,
		BaseCost: ResourceMap{ResourceTypeTwig: 3, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardHistorian, NumInDeck: 2,
		InitialResources: ResourceMap{ResourceTypeVP: 3},
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			pc, err := p.FirstPlayedCard(CardClockTower)
			if err != nil || pc.Resources == nil {
				return 0
			}
			return pc.Resources[ResourceTypeVP]
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			w := submitted.ClientOptions.SelectedWorker
			if err := validateSelectedWorker(pending, w); err != nil {
				return err
			}
			if w != nil {
				pc, err := p.FirstPlayedCard(CardClockTower)
				if err != nil {
					return err
				}
				if pc.Resources == nil || pc.Resources[ResourceTypeVP] <= 0 {
					return errors.New(errors.CodeSelectionNotAllowed,
						"no point tokens left on Clock Tower")
				}
				pc.Resources[ResourceTypeVP]--
				if err := gs.activateLocation(p, w.Location, &GameInput{
					InputType: InputPlaceWorker,
					PlayerID:  p.PlayerID,
				}); err != nil {
					return err
				}
			}
			return gs.finishPrepareForSeason(p)
		},
	})

	registerCard(&Card{
		Name: CardCourthouse, Type: CardTypeGovernance, BaseVP: 2,
		BaseCost: ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1, ResourceTypePebble: 2},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardJudge, NumInDeck: 2,
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			opt := submitted.ClientOptions.SelectedOption
			if err := validateSelectedOption(pending, opt); err != nil {
				return err
			}
			p.GainResources(ResourceMap{ResourceType(opt): 1})
			return nil
		},
	})

	registerCard(&Card{
		Name: CardCrane, Type: CardTypeGovernance, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardArchitect, NumInDeck: 2,
	})

	registerCard(&Card{
		Name: CardDoctor, Type: CardTypeProduction, BaseVP: 4,
		BaseCost: ResourceMap{ResourceTypeBerry: 4},
		IsUnique: true, AssociatedCard: CardUniversity, NumInDeck: 2,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			max := p.Resources[ResourceTypeBerry]
			if max > 3 {
				max = 3
			}
			if max == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputSelectResources,
				PrevInputType:    via.InputType,
				CardContext:      CardDoctor,
				Label:            "Pay up to 3 BERRY to gain 1 VP each",
				ToSpend:          true,
				SpecificResource: ResourceTypeBerry,
				MinResources:     0,
				MaxResources:     max,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			rm := submitted.ClientOptions.Resources
			if err := validateSelectedResources(pending, p, rm); err != nil {
				return err
			}
			if err := p.SpendResources(rm); err != nil {
				return err
			}
			p.GainResources(ResourceMap{ResourceTypeVP: rm.Count()})
			return nil
		},
	})

	registerCard(&Card{
		Name: CardDungeon, Type: CardTypeGovernance, BaseVP: 0,
		BaseCost: ResourceMap{ResourceTypeResin: 1, ResourceTypePebble: 2},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardRanger, NumInDeck: 2,
	})

	registerCard(&Card{
		Name: CardEvertree, Type: CardTypeProsperity, BaseVP: 5,
		BaseCost: ResourceMap{ResourceTypeTwig: 3, ResourceTypeResin: 3, ResourceTypePebble: 3},
		IsUnique: true, IsConstruction: true, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			return p.NumCardsInCityByType(CardTypeProsperity)
		},
	})

	registerCard(&Card{
		Name: CardFairgrounds, Type: CardTypeProduction, BaseVP: 3,
		BaseCost: ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 2, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardFool, NumInDeck: 2,
		onActivate: gainFixed(nil, 2),
	})

	registerCard(&Card{
		Name: CardFarm, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 1},
		IsConstruction: true, NumInDeck: 8,
		onActivate: gainFixed(ResourceMap{ResourceTypeBerry: 1}, 0),
	})

	registerCard(&Card{
		Name: CardFool, Type: CardTypeTraveler, BaseVP: -2,
		BaseCost: ResourceMap{ResourceTypeBerry: 3},
		IsUnique: true, AssociatedCard: CardFairgrounds, NumInDeck: 2,
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []string
			for _, other := range gs.Players {
				if other.PlayerID == p.PlayerID {
					continue
				}
				if other.CanAddToCity(CardFool) == nil {
					options = append(options, other.PlayerID)
				}
			}
			if len(options) == 0 {
				gs.DiscardPile.AddToStack(CardFool)
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectPlayer,
				PrevInputType: via.InputType,
				CardContext:   CardFool,
				Label:         "Play the Fool into another player's city",
				PlayerOptions: options,
				MustSelectOne: true,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			if err := validateSelectedPlayer(pending, submitted.ClientOptions.SelectedPlayer); err != nil {
				return err
			}
			target, err := gs.GetPlayer(submitted.ClientOptions.SelectedPlayer)
			if err != nil {
				return err
			}
			_, err = target.AddToCity(CardFool)
			return err
		},
	})

	registerCard(&Card{
		Name: CardGeneralStore, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsConstruction: true, AssociatedCard: CardShopkeeper, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			owner := gs.ownerOf(pc, p)
			n := 1
			if owner.HasCardInCity(CardFarm) {
				n = 2
			}
			p.GainResources(ResourceMap{ResourceTypeBerry: n})
			return nil
		},
	})

	registerCard(&Card{
		Name: CardHistorian, Type: CardTypeGovernance, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 2},
		IsUnique: true, AssociatedCard: CardClockTower, NumInDeck: 2,
	})

	registerCard(&Card{
		Name: CardHusband, Type: CardTypeProduction, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeBerry: 3},
		AssociatedCard: CardFarm, NumInDeck: 4,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			owner := gs.ownerOf(pc, p)
			if !husbandPaired(owner, pc) || !owner.HasCardInCity(CardFarm) {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectOptionGeneric,
				PrevInputType: via.InputType,
				CardContext:   CardHusband,
				Label:         "Gain 1 ANY",
				Options:       anyResourceOptions,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			opt := submitted.ClientOptions.SelectedOption
			if err := validateSelectedOption(pending, opt); err != nil {
				return err
			}
			p.GainResources(ResourceMap{ResourceType(opt): 1})
			return nil
		},
	})

	registerCard(&Card{
		Name: CardInn, Type: CardTypeDestination, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 1},
		IsConstruction: true, AssociatedCard: CardInnkeeper,
		IsOpenDestination: true, MaxWorkerSpots: 1, NumInDeck: 3,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []CardName
			for _, c := range gs.Meadow {
				card := mustCard(c)
				if p.CanAddToCity(c) != nil {
					continue
				}
				if p.ValidatePaidResources(p.Resources, card.BaseCost, DiscountAnyThree, false) != nil {
					continue
				}
				options = append(options, c)
			}
			if len(options) == 0 {
				return errors.New(errors.CodeCardNotPlayable, "no playable cards in the meadow")
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectCards,
				PrevInputType: via.InputType,
				CardContext:   CardInn,
				Label:         "Play a meadow CARD for 3 fewer ANY",
				CardOptions:   options,
				MinToSelect:   1,
				MaxToSelect:   1,
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
				if card.BaseCost.Count() <= 3 {
					if err := gs.removeCardFromMeadow(c); err != nil {
						return err
					}
					if err := gs.placeAndActivateCard(p, c, submitted); err != nil {
						return err
					}
					gs.ReplenishMeadow()
					return nil
				}
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectPaymentForCard,
					PrevInputType: InputSelectCards,
					CardContext:   CardInn,
					Card:          c,
					Label:         fmt.Sprintf("Pay for %s (3 fewer ANY)", c),
				})
				return nil
			case InputSelectPaymentForCard:
				c := pending.Card
				if submitted.ClientOptions.Card != "" && submitted.ClientOptions.Card != c {
					return errors.New(errors.CodeInputContextMismatch,
						"payment does not match the selected card")
				}
				payment := submitted.Clone()
				payment.ClientOptions.Card = c
				if payment.ClientOptions.PaymentOptions == nil {
					payment.ClientOptions.PaymentOptions = &PaymentOptions{Resources: ResourceMap{}}
				}
				payment.ClientOptions.PaymentOptions.CardToUse = CardInn
				if err := p.PayForCard(gs, payment); err != nil {
					return err
				}
				if err := gs.removeCardFromMeadow(c); err != nil {
					return err
				}
				if err := gs.placeAndActivateCard(p, c, submitted); err != nil {
					return err
				}
				gs.ReplenishMeadow()
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Inn")
		},
	})

	registerCard(&Card{
		Name: CardInnkeeper, Type: CardTypeGovernance, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 1},
		IsUnique: true, AssociatedCard: CardInn, NumInDeck: 2,
	})

	registerCard(&Card{
		Name: CardJudge, Type: CardTypeGovernance, BaseVP: 2,
		BaseCost: ResourceMap{ResourceTypeBerry: 3},
		IsUnique: true, AssociatedCard: CardCourthouse, NumInDeck: 2,
	})

	registerCard(&Card{
		Name: CardKing, Type: CardTypeProsperity, BaseVP: 4,
		BaseCost: ResourceMap{ResourceTypeBerry: 6},
		IsUnique: true, AssociatedCard: CardCastle, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			total := 0
			for _, name := range p.ClaimedEvents {
				ev, err := EventFromName(name)
				if err != nil || ev.Type == EventTypeBasic {
					total++
				} else {
					total += 2
				}
			}
			return total
		},
	})

	registerCard(&Card{
		Name: CardLookout, Type: CardTypeDestination, BaseVP: 2,
		BaseCost: ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardWanderer,
		MaxWorkerSpots: 1, NumInDeck: 2,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []LocationName
			for _, name := range gs.PlayableLocationsFor(p, false) {
				loc := mustLocation(name)
				if loc.Type != LocationTypeBasic && loc.Type != LocationTypeForest {
					continue
				}
				options = append(options, name)
			}
			if len(options) == 0 {
				return errors.New(errors.CodeLocationNotPlayable, "no location to copy")
			}
			gs.pushPendingInput(&GameInput{
				InputType:       InputSelectLocation,
				PrevInputType:   via.InputType,
				CardContext:     CardLookout,
				Label:           "Copy a basic or forest location",
				LocationOptions: options,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			loc := submitted.ClientOptions.SelectedLocation
			if err := validateSelectedLocation(pending, loc); err != nil {
				return err
			}
			return gs.activateLocation(p, loc, &GameInput{
				InputType: InputPlaceWorker,
				PlayerID:  p.PlayerID,
			})
		},
	})

	registerCard(&Card{
		Name: CardMine, Type: CardTypeProduction, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsConstruction: true, AssociatedCard: CardMinerMole, NumInDeck: 3,
		onActivate: gainFixed(ResourceMap{ResourceTypePebble: 1}, 0),
	})

	registerCard(&Card{
		Name: CardMinerMole, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeBerry: 3},
		AssociatedCard: CardMine, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []PlayedCardInfo
			for _, other := range gs.Players {
				if other.PlayerID == p.PlayerID {
					continue
				}
				options = append(options,
					activatableProduction(gs, other, CardMinerMole, CardChipSweep)...)
				// An opposing miner mole lets this one copy its owner's
				// own production instead.
				if other.HasCardInCity(CardMinerMole) {
					options = append(options,
						activatableProduction(gs, p, CardMinerMole, CardChipSweep)...)
				}
			}
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectPlayedCards,
				PrevInputType:     via.InputType,
				CardContext:       CardMinerMole,
				Label:             "Copy 1 PRODUCTION in an opponent's city",
				PlayedCardOptions: options,
				MinToSelect:       1,
				MaxToSelect:       1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedPlayedCards
			if err := validateSelectedPlayedCards(pending, selected); err != nil {
				return err
			}
			owner, err := gs.GetPlayer(selected[0].CardOwnerID)
			if err != nil {
				return err
			}
			target, err := owner.FindPlayedCard(&selected[0])
			if err != nil {
				return err
			}
			return gs.activatePlayedCard(p, target, submitted)
		},
	})

	registerCard(&Card{
		Name: CardMonastery, Type: CardTypeDestination, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardMonk,
		MaxWorkerSpots: 1, NumInDeck: 2,
		canPlay: nil,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			if p.Resources.CountExcludingVP() < 2 {
				return errors.New(errors.CodeInsufficientResources,
					"need at least 2 resources to visit the Monastery")
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectResources,
				PrevInputType: via.InputType,
				CardContext:   CardMonastery,
				Label:         "Give 2 ANY to an opponent to gain 4 VP",
				ToSpend:       true,
				MinResources:  2,
				MaxResources:  2,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectResources:
				rm := submitted.ClientOptions.Resources
				if err := validateSelectedResources(pending, p, rm); err != nil {
					return err
				}
				resolved := pending.Clone()
				resolved.ClientOptions.Resources = rm.Clone()
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectPlayer,
					PrevInputType: InputSelectResources,
					PrevInput:     resolved,
					CardContext:   CardMonastery,
					Label:         "Select the opponent to give the resources to",
					PlayerOptions: gs.opponentIDs(p),
					MustSelectOne: true,
				})
				return nil
			case InputSelectPlayer:
				if err := validateSelectedPlayer(pending, submitted.ClientOptions.SelectedPlayer); err != nil {
					return err
				}
				target, err := gs.GetPlayer(submitted.ClientOptions.SelectedPlayer)
				if err != nil {
					return err
				}
				rm := pending.PrevInput.ClientOptions.Resources
				if err := p.SpendResources(rm); err != nil {
					return err
				}
				target.GainResources(rm.Clone())
				p.GainResources(ResourceMap{ResourceTypeVP: 4})
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Monastery")
		},
	})

	registerCard(&Card{
		Name: CardMonk, Type: CardTypeProduction, BaseVP: 0,
		BaseCost: ResourceMap{ResourceTypeBerry: 1},
		IsUnique: true, AssociatedCard: CardMonastery, NumInDeck: 2,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			max := p.Resources[ResourceTypeBerry]
			if max > 2 {
				max = 2
			}
			if max == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputSelectResources,
				PrevInputType:    via.InputType,
				CardContext:      CardMonk,
				Label:            "Give up to 2 BERRY to an opponent to gain 2 VP each",
				ToSpend:          true,
				SpecificResource: ResourceTypeBerry,
				MinResources:     0,
				MaxResources:     2,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectResources:
				rm := submitted.ClientOptions.Resources
				if err := validateSelectedResources(pending, p, rm); err != nil {
					return err
				}
				if rm.Count() == 0 {
					return nil
				}
				resolved := pending.Clone()
				resolved.ClientOptions.Resources = rm.Clone()
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectPlayer,
					PrevInputType: InputSelectResources,
					PrevInput:     resolved,
					CardContext:   CardMonk,
					Label:         "Select the opponent to give the berries to",
					PlayerOptions: gs.opponentIDs(p),
					MustSelectOne: true,
				})
				return nil
			case InputSelectPlayer:
				if err := validateSelectedPlayer(pending, submitted.ClientOptions.SelectedPlayer); err != nil {
					return err
				}
				target, err := gs.GetPlayer(submitted.ClientOptions.SelectedPlayer)
				if err != nil {
					return err
				}
				rm := pending.PrevInput.ClientOptions.Resources
				if err := p.SpendResources(rm); err != nil {
					return err
				}
				target.GainResources(rm.Clone())
				p.GainResources(ResourceMap{ResourceTypeVP: 2 * rm.Count()})
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Monk")
		},
	})

	registerCard(&Card{
		Name: CardPalace, Type: CardTypeProsperity, BaseVP: 4,
		BaseCost: ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 3, ResourceTypePebble: 3},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardQueen, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			n := 0
			for _, pc := range p.PlayedCards {
				card := mustCard(pc.CardName)
				if card.IsConstruction && card.IsUnique {
					n++
				}
			}
			return n
		},
	})

	registerCard(&Card{
		Name: CardPeddler, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardRuins, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			max := p.Resources.CountExcludingVP()
			if max > 2 {
				max = 2
			}
			if max == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectResources,
				PrevInputType: via.InputType,
				CardContext:   CardPeddler,
				Label:         "Pay up to 2 ANY to gain an equal ANY",
				ToSpend:       true,
				MinResources:  0,
				MaxResources:  2,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			rm := submitted.ClientOptions.Resources
			if err := validateSelectedResources(pending, p, rm); err != nil {
				return err
			}
			if pending.ToSpend {
				if err := p.SpendResources(rm); err != nil {
					return err
				}
				if rm.Count() == 0 {
					return nil
				}
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectResources,
					PrevInputType: InputSelectResources,
					CardContext:   CardPeddler,
					Label:         "Gain the replacement resources",
					ToSpend:       false,
					MinResources:  rm.Count(),
					MaxResources:  rm.Count(),
				})
				return nil
			}
			p.GainResources(rm.Clone())
			return nil
		},
	})

	registerCard(&Card{
		Name: CardPostalPigeon, Type: CardTypeTraveler, BaseVP: 0,
		BaseCost:       ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardPostOffice, NumInDeck: 3,
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var revealed []CardName
			for i := 0; i < 2; i++ {
				c, err := gs.Deck.Draw()
				if err != nil {
					break
				}
				revealed = append(revealed, c)
			}
			if len(revealed) == 0 {
				return nil
			}
			var playable []CardName
			for _, c := range revealed {
				if mustCard(c).BaseVP <= 3 && gs.canPlayFree(p, c) {
					playable = append(playable, c)
				}
			}
			if len(playable) == 0 {
				for _, c := range revealed {
					gs.DiscardPile.AddToStack(c)
				}
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:             InputSelectCards,
				PrevInputType:         via.InputType,
				CardContext:           CardPostalPigeon,
				Label:                 "Play 1 of the revealed CARD for free",
				CardOptions:           playable,
				CardOptionsUnfiltered: revealed,
				MinToSelect:           0,
				MaxToSelect:           1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedCards
			if err := validateSelectedCardNames(pending, selected); err != nil {
				return err
			}
			rest := append([]CardName{}, pending.CardOptionsUnfiltered...)
			for _, c := range selected {
				rest = removeOneCard(rest, c)
			}
			for _, c := range rest {
				gs.DiscardPile.AddToStack(c)
			}
			if len(selected) == 0 {
				return nil
			}
			return gs.placeAndActivateCard(p, selected[0], submitted)
		},
	})

	registerCard(&Card{
		Name: CardPostOffice, Type: CardTypeDestination, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 2},
		IsConstruction: true, AssociatedCard: CardPostalPigeon,
		IsOpenDestination: true, MaxWorkerSpots: 1, NumInDeck: 3,
		canPlay: nil,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			if len(p.CardsInHand) < 2 {
				return errors.New(errors.CodeCardNotPlayable,
					"need at least 2 CARD in hand to visit the Post Office")
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectPlayer,
				PrevInputType: via.InputType,
				CardContext:   CardPostOffice,
				Label:         "Give an opponent 2 CARD",
				PlayerOptions: gs.opponentIDs(p),
				MustSelectOne: true,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectPlayer:
				if err := validateSelectedPlayer(pending, submitted.ClientOptions.SelectedPlayer); err != nil {
					return err
				}
				resolved := pending.Clone()
				resolved.ClientOptions.SelectedPlayer = submitted.ClientOptions.SelectedPlayer
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectCards,
					PrevInputType: InputSelectPlayer,
					PrevInput:     resolved,
					CardContext:   CardPostOffice,
					Label:         "Select 2 CARD to give away",
					CardOptions:   append([]CardName{}, p.CardsInHand...),
					MinToSelect:   2,
					MaxToSelect:   2,
				})
				return nil
			case InputSelectCards:
				selected := submitted.ClientOptions.SelectedCards
				if err := validateSelectedCardNames(pending, selected); err != nil {
					return err
				}
				if pending.PrevInput != nil && pending.PrevInput.InputType == InputSelectPlayer {
					target, err := gs.GetPlayer(pending.PrevInput.ClientOptions.SelectedPlayer)
					if err != nil {
						return err
					}
					for _, c := range selected {
						if err := p.RemoveCardFromHand(c); err != nil {
							return err
						}
						target.AddCardToHand(gs, c)
					}
					gs.pushPendingInput(&GameInput{
						InputType:     InputSelectCards,
						PrevInputType: InputSelectCards,
						CardContext:   CardPostOffice,
						Label:         "Discard any number of CARD, then draw up to the hand limit",
						CardOptions:   append([]CardName{}, p.CardsInHand...),
						MinToSelect:   0,
						MaxToSelect:   len(p.CardsInHand),
					})
					return nil
				}
				for _, c := range selected {
					if err := p.RemoveCardFromHand(c); err != nil {
						return err
					}
					gs.DiscardPile.AddToStack(c)
				}
				p.DrawCards(gs, MaxHandSize-len(p.CardsInHand))
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Post Office")
		},
	})

	registerCard(&Card{
		Name: CardQueen, Type: CardTypeDestination, BaseVP: 4,
		BaseCost: ResourceMap{ResourceTypeBerry: 5},
		IsUnique: true, AssociatedCard: CardPalace,
		MaxWorkerSpots: 1, NumInDeck: 2,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			options := queenPlayableCards(gs, p)
			if len(options) == 0 {
				return errors.New(errors.CodeCardNotPlayable, "no playable cards")
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectCards,
				PrevInputType: via.InputType,
				CardContext:   CardQueen,
				Label:         "Play a CARD worth up to 3 VP for free",
				CardOptions:   options,
				MinToSelect:   1,
				MaxToSelect:   1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectCards:
				selected := submitted.ClientOptions.SelectedCards
				if err := validateSelectedCardNames(pending, selected); err != nil {
					if len(selected) == 1 && mustCard(selected[0]).BaseVP > 3 {
						return errors.WithMetadata(errors.CodeSelectionNotAllowed,
							fmt.Sprintf("cannot use Queen to play %s", selected[0]),
							map[string]string{"card": string(selected[0])})
					}
					return err
				}
				c := selected[0]
				inHand := cardNameIn(p.CardsInHand, c)
				inMeadow := cardNameIn(gs.Meadow, c)
				if inHand && inMeadow {
					resolved := pending.Clone()
					resolved.ClientOptions.SelectedCards = selected
					gs.pushPendingInput(&GameInput{
						InputType:     InputSelectOptionGeneric,
						PrevInputType: InputSelectCards,
						PrevInput:     resolved,
						CardContext:   CardQueen,
						Label:         fmt.Sprintf("Play %s from the meadow or your hand", c),
						Options:       []string{"Meadow", "Hand"},
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
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Queen")
		},
	})

	registerCard(&Card{
		Name: CardRanger, Type: CardTypeTraveler, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 2},
		IsUnique: true, AssociatedCard: CardDungeon, NumInDeck: 2,
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []WorkerPlacementInfo
			for _, w := range p.RecallableWorkers() {
				options = append(options, *w.Clone())
			}
			if len(options) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectWorkerPlacement,
				PrevInputType: via.InputType,
				CardContext:   CardRanger,
				Label:         "Select a deployed worker to move",
				WorkerOptions: options,
				MustSelectOne: true,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			w := submitted.ClientOptions.SelectedWorker
			if err := validateSelectedWorker(pending, w); err != nil {
				return err
			}
			if pending.PrevInputType == InputPlayCard {
				if err := p.RecallWorker(gs, *w); err != nil {
					return err
				}
				resolved := pending.Clone()
				resolved.ClientOptions.SelectedWorker = w.Clone()
				var options []WorkerPlacementInfo
				for _, name := range gs.PlayableLocationsFor(p, true) {
					if name == w.Location {
						continue
					}
					options = append(options, WorkerPlacementInfo{Location: name})
				}
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectWorkerPlacement,
					PrevInputType: InputSelectWorkerPlacement,
					PrevInput:     resolved,
					CardContext:   CardRanger,
					Label:         "Select the new placement",
					WorkerOptions: options,
					MustSelectOne: true,
				})
				return nil
			}
			return gs.placeWorkerOnLocation(p, w.Location)
		},
	})

	registerCard(&Card{
		Name: CardResinRefinery, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsConstruction: true, AssociatedCard: CardChipSweep, NumInDeck: 3,
		onActivate: gainFixed(ResourceMap{ResourceTypeResin: 1}, 0),
	})

	registerCard(&Card{
		Name: CardRuins, Type: CardTypeTraveler, BaseVP: 0,
		BaseCost:       ResourceMap{},
		IsConstruction: true, AssociatedCard: CardPeddler, NumInDeck: 3,
		canPlay: func(gs *GameState, p *Player) error {
			for _, pc := range p.PlayedCards {
				if mustCard(pc.CardName).IsConstruction && pc.CardName != CardRuins {
					return nil
				}
			}
			return errors.New(errors.CodeCardNotPlayable,
				"require an existing construction to play Ruins")
		},
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []PlayedCardInfo
			for _, played := range p.PlayedCards {
				if mustCard(played.CardName).IsConstruction && played.CardName != CardRuins {
					options = append(options, *played.Clone())
				}
			}
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectPlayedCards,
				PrevInputType:     via.InputType,
				CardContext:       CardRuins,
				Label:             "Select a construction to raze",
				PlayedCardOptions: options,
				MinToSelect:       1,
				MaxToSelect:       1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedPlayedCards
			if err := validateSelectedPlayedCards(pending, selected); err != nil {
				return err
			}
			target, err := p.FindPlayedCard(&selected[0])
			if err != nil {
				return err
			}
			if err := p.RemoveCardFromCity(gs, target, true); err != nil {
				return err
			}
			p.DrawCards(gs, 2)
			return nil
		},
	})

	registerCard(&Card{
		Name: CardSchool, Type: CardTypeProsperity, BaseVP: 2,
		BaseCost: ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 2},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardTeacher, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			n := 0
			for _, pc := range p.PlayedCards {
				card := mustCard(pc.CardName)
				if !card.IsConstruction && !card.IsUnique {
					n++
				}
			}
			return n
		},
	})

	registerCard(&Card{
		Name: CardShepherd, Type: CardTypeTraveler, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 3},
		IsUnique: true, AssociatedCard: CardChapel, NumInDeck: 2,
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var paid ResourceMap
			if via.ClientOptions.PaymentOptions != nil {
				paid = via.ClientOptions.PaymentOptions.Resources
			}
			if paid.Count() > 0 {
				resolved := via.Clone()
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectPlayer,
					PrevInputType: via.InputType,
					PrevInput:     resolved,
					CardContext:   CardShepherd,
					Label:         "Give the paid resources to an opponent",
					PlayerOptions: gs.opponentIDs(p),
					MustSelectOne: true,
				})
				return nil
			}
			p.GainResources(ResourceMap{ResourceTypeBerry: 3})
			shepherdChapelBonus(p)
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			if err := validateSelectedPlayer(pending, submitted.ClientOptions.SelectedPlayer); err != nil {
				return err
			}
			target, err := gs.GetPlayer(submitted.ClientOptions.SelectedPlayer)
			if err != nil {
				return err
			}
			if pending.PrevInput != nil && pending.PrevInput.ClientOptions.PaymentOptions != nil {
				target.GainResources(pending.PrevInput.ClientOptions.PaymentOptions.Resources.Clone())
			}
			shepherdChapelBonus(p)
			return nil
		},
	})

	registerCard(&Card{
		Name: CardShopkeeper, Type: CardTypeGovernance, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 2},
		IsUnique: true, AssociatedCard: CardGeneralStore, NumInDeck: 2,
	})

	registerCard(&Card{
		Name: CardStorehouse, Type: CardTypeProduction, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsConstruction: true, AssociatedCard: CardWoodcarver,
		MaxWorkerSpots: 1, NumInDeck: 3,
		InitialResources: ResourceMap{
			ResourceTypeTwig: 0, ResourceTypeResin: 0,
			ResourceTypeBerry: 0, ResourceTypePebble: 0,
		},
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectOptionGeneric,
				PrevInputType:     via.InputType,
				CardContext:       CardStorehouse,
				PlayedCardContext: pc.Clone(),
				Label:             "Add resources onto the Storehouse",
				Options:           []string{"3 TWIG", "2 RESIN", "1 PEBBLE", "2 BERRY"},
			})
			return nil
		},
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			if pc.Resources == nil {
				return nil
			}
			gain := ResourceMap{}
			for _, rt := range PaymentResourceTypes {
				gain[rt] = pc.Resources[rt]
				pc.Resources[rt] = 0
			}
			p.GainResources(gain)
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			opt := submitted.ClientOptions.SelectedOption
			if err := validateSelectedOption(pending, opt); err != nil {
				return err
			}
			owner, err := gs.GetPlayer(pending.PlayedCardContext.CardOwnerID)
			if err != nil {
				return err
			}
			pc, err := owner.FindPlayedCard(pending.PlayedCardContext)
			if err != nil {
				return err
			}
			if pc.Resources == nil {
				pc.Resources = ResourceMap{}
			}
			switch opt {
			case "3 TWIG":
				pc.Resources[ResourceTypeTwig] += 3
			case "2 RESIN":
				pc.Resources[ResourceTypeResin] += 2
			case "1 PEBBLE":
				pc.Resources[ResourceTypePebble]++
			case "2 BERRY":
				pc.Resources[ResourceTypeBerry] += 2
			}
			return nil
		},
	})

	registerCard(&Card{
		Name: CardTeacher, Type: CardTypeProduction, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardSchool, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var revealed []CardName
			for i := 0; i < 2; i++ {
				c, err := gs.Deck.Draw()
				if err != nil {
					break
				}
				revealed = append(revealed, c)
			}
			if len(revealed) == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectCards,
				PrevInputType: via.InputType,
				CardContext:   CardTeacher,
				Label:         "Select 1 CARD to keep; the other goes to an opponent",
				CardOptions:   revealed,
				MinToSelect:   1,
				MaxToSelect:   1,
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
				p.AddCardToHand(gs, selected[0])
				resolved := pending.Clone()
				resolved.ClientOptions.SelectedCards = selected
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectPlayer,
					PrevInputType: InputSelectCards,
					PrevInput:     resolved,
					CardContext:   CardTeacher,
					Label:         "Give the other CARD to an opponent",
					PlayerOptions: gs.opponentIDs(p),
					MustSelectOne: true,
				})
				return nil
			case InputSelectPlayer:
				if err := validateSelectedPlayer(pending, submitted.ClientOptions.SelectedPlayer); err != nil {
					return err
				}
				target, err := gs.GetPlayer(submitted.ClientOptions.SelectedPlayer)
				if err != nil {
					return err
				}
				rest := append([]CardName{}, pending.PrevInput.CardOptions...)
				for _, c := range pending.PrevInput.ClientOptions.SelectedCards {
					rest = removeOneCard(rest, c)
				}
				for _, c := range rest {
					target.AddCardToHand(gs, c)
				}
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for Teacher")
		},
	})

	registerCard(&Card{
		Name: CardTheatre, Type: CardTypeProsperity, BaseVP: 3,
		BaseCost: ResourceMap{ResourceTypeTwig: 3, ResourceTypeResin: 1, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardBard, NumInDeck: 2,
		pointsFn: func(gs *GameState, playerID string) int {
			p, err := gs.GetPlayer(playerID)
			if err != nil {
				return 0
			}
			n := 0
			for _, pc := range p.PlayedCards {
				card := mustCard(pc.CardName)
				if !card.IsConstruction && card.IsUnique {
					n++
				}
			}
			return n
		},
	})

	registerCard(&Card{
		Name: CardTwigBarge, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeTwig: 1, ResourceTypePebble: 1},
		IsConstruction: true, AssociatedCard: CardBargeToad, NumInDeck: 3,
		onActivate: gainFixed(ResourceMap{ResourceTypeTwig: 2}, 0),
	})

	registerCard(&Card{
		Name: CardUndertaker, Type: CardTypeTraveler, BaseVP: 1,
		BaseCost: ResourceMap{ResourceTypeBerry: 2},
		IsUnique: true, AssociatedCard: CardCemetary, NumInDeck: 2,
		onPlay: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			if len(gs.Meadow) == 0 {
				return nil
			}
			max := 3
			if len(gs.Meadow) < max {
				max = len(gs.Meadow)
			}
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectCards,
				PrevInputType: via.InputType,
				CardContext:   CardUndertaker,
				Label:         "Discard 3 meadow CARD",
				CardOptions:   append([]CardName{}, gs.Meadow...),
				MinToSelect:   max,
				MaxToSelect:   max,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			selected := submitted.ClientOptions.SelectedCards
			if err := validateSelectedCardNames(pending, selected); err != nil {
				return err
			}
			if pending.PrevInputType == InputPlayCard {
				for _, c := range selected {
					if err := gs.removeCardFromMeadow(c); err != nil {
						return err
					}
					gs.DiscardPile.AddToStack(c)
				}
				gs.ReplenishMeadow()
				if len(gs.Meadow) == 0 {
					return nil
				}
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectCards,
					PrevInputType: InputSelectCards,
					CardContext:   CardUndertaker,
					Label:         "Draw 1 CARD from the meadow",
					CardOptions:   append([]CardName{}, gs.Meadow...),
					MinToSelect:   1,
					MaxToSelect:   1,
				})
				return nil
			}
			if err := gs.removeCardFromMeadow(selected[0]); err != nil {
				return err
			}
			p.AddCardToHand(gs, selected[0])
			gs.ReplenishMeadow()
			return nil
		},
	})

	registerCard(&Card{
		Name: CardUniversity, Type: CardTypeDestination, BaseVP: 3,
		BaseCost: ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 2, ResourceTypePebble: 1},
		IsUnique: true, IsConstruction: true, AssociatedCard: CardDoctor,
		MaxWorkerSpots: 1, NumInDeck: 2,
		onVisit: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			var options []PlayedCardInfo
			for _, played := range p.PlayedCards {
				if played.Matches(pc) {
					continue
				}
				options = append(options, *played.Clone())
			}
			if len(options) == 0 {
				return errors.New(errors.CodeCardNotPlayable, "no cards in city to discard")
			}
			gs.pushPendingInput(&GameInput{
				InputType:         InputSelectPlayedCards,
				PrevInputType:     via.InputType,
				CardContext:       CardUniversity,
				Label:             "Discard a CARD from your city to gain its cost, 1 ANY and 1 VP",
				PlayedCardOptions: options,
				MinToSelect:       1,
				MaxToSelect:       1,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			switch pending.InputType {
			case InputSelectPlayedCards:
				selected := submitted.ClientOptions.SelectedPlayedCards
				if err := validateSelectedPlayedCards(pending, selected); err != nil {
					return err
				}
				target, err := p.FindPlayedCard(&selected[0])
				if err != nil {
					return err
				}
				if err := p.RemoveCardFromCity(gs, target, true); err != nil {
					return err
				}
				p.GainResources(mustCard(target.CardName).BaseCost.Clone())
				gs.pushPendingInput(&GameInput{
					InputType:     InputSelectOptionGeneric,
					PrevInputType: InputSelectPlayedCards,
					CardContext:   CardUniversity,
					Label:         "Gain 1 ANY and 1 VP",
					Options:       anyResourceOptions,
				})
				return nil
			case InputSelectOptionGeneric:
				opt := submitted.ClientOptions.SelectedOption
				if err := validateSelectedOption(pending, opt); err != nil {
					return err
				}
				p.GainResources(ResourceMap{ResourceType(opt): 1, ResourceTypeVP: 1})
				return nil
			}
			return errors.New(errors.CodeInputUnexpected, "unexpected input for University")
		},
	})

	registerCard(&Card{
		Name: CardWanderer, Type: CardTypeTraveler, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardLookout, NumInDeck: 3,
		onPlay: gainFixed(nil, 3),
	})

	registerCard(&Card{
		Name: CardWife, Type: CardTypeProduction, BaseVP: 2,
		BaseCost:       ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardFarm, NumInDeck: 4,
	})

	registerCard(&Card{
		Name: CardWoodcarver, Type: CardTypeProduction, BaseVP: 1,
		BaseCost:       ResourceMap{ResourceTypeBerry: 2},
		AssociatedCard: CardStorehouse, NumInDeck: 3,
		onActivate: func(gs *GameState, p *Player, pc *PlayedCardInfo, via *GameInput) error {
			max := p.Resources[ResourceTypeTwig]
			if max > 3 {
				max = 3
			}
			if max == 0 {
				return nil
			}
			gs.pushPendingInput(&GameInput{
				InputType:        InputSelectResources,
				PrevInputType:    via.InputType,
				CardContext:      CardWoodcarver,
				Label:            "Pay up to 3 TWIG to gain 1 VP each",
				ToSpend:          true,
				SpecificResource: ResourceTypeTwig,
				MinResources:     0,
				MaxResources:     max,
			})
			return nil
		},
		handleInput: func(gs *GameState, p *Player, pending, submitted *GameInput) error {
			rm := submitted.ClientOptions.Resources
			if err := validateSelectedResources(pending, p, rm); err != nil {
				return err
			}
			if err := p.SpendResources(rm); err != nil {
				return err
			}
			p.GainResources(ResourceMap{ResourceTypeVP: rm.Count()})
			return nil
		},
	})
}

func shepherdChapelBonus(p *Player) {
	chapel, err := p.FirstPlayedCard(CardChapel)
	if err != nil || chapel.Resources == nil {
		return
	}
	if vp := chapel.Resources[ResourceTypeVP]; vp > 0 {
		p.GainResources(ResourceMap{ResourceTypeVP: vp})
	}
}

func cardNameIn(list []CardName, c CardName) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// queenPlayableCards lists hand and meadow cards worth up to 3 that the
// player could legally add to their city.
func queenPlayableCards(gs *GameState, p *Player) []CardName {
	var out []CardName
	consider := func(c CardName) {
		card := mustCard(c)
		if card.BaseVP > 3 {
			return
		}
		if !gs.canPlayFree(p, c) {
			return
		}
		out = append(out, c)
	}
	for _, c := range gs.Meadow {
		consider(c)
	}
	for _, c := range p.CardsInHand {
		consider(c)
	}
	return out
}
