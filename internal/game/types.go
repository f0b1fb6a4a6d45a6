// Package game implements the tableau-building rules engine: cards,
// workers, locations, events, seasons and the pending-input state
// machine that drives multi-step card effects.
package game

// ResourceType is one of the spendable or scored resource kinds.
type ResourceType string

const (
	ResourceTypeTwig   ResourceType = "TWIG"
	ResourceTypeResin  ResourceType = "RESIN"
	ResourceTypeBerry  ResourceType = "BERRY"
	ResourceTypePebble ResourceType = "PEBBLE"
	ResourceTypePearl  ResourceType = "PEARL"
	ResourceTypeVP     ResourceType = "VP"
)

// PaymentResourceTypes lists the kinds that can appear in a card cost.
var PaymentResourceTypes = []ResourceType{
	ResourceTypeTwig,
	ResourceTypeResin,
	ResourceTypeBerry,
	ResourceTypePebble,
}

// Season is a per-player season. Players advance independently.
type Season string

const (
	SeasonWinter Season = "WINTER"
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonAutumn Season = "AUTUMN"
)

// Next returns the season that follows s.
func (s Season) Next() (Season, bool) {
	switch s {
	case SeasonWinter:
		return SeasonSpring, true
	case SeasonSpring:
		return SeasonSummer, true
	case SeasonSummer:
		return SeasonAutumn, true
	default:
		return s, false
	}
}

// NumWorkers returns the worker cap for the season.
func (s Season) NumWorkers() int {
	switch s {
	case SeasonWinter:
		return 2
	case SeasonSpring:
		return 3
	case SeasonSummer:
		return 4
	case SeasonAutumn:
		return 6
	default:
		return 0
	}
}

// CardType is the color band of a card.
type CardType string

const (
	CardTypeTraveler    CardType = "TRAVELER"
	CardTypeProduction  CardType = "PRODUCTION"
	CardTypeDestination CardType = "DESTINATION"
	CardTypeGovernance  CardType = "GOVERNANCE"
	CardTypeProsperity  CardType = "PROSPERITY"
)

// CardName identifies one of the 48 base-game cards.
type CardName string

const (
	CardArchitect     CardName = "ARCHITECT"
	CardBard          CardName = "BARD"
	CardBargeToad     CardName = "BARGE_TOAD"
	CardCastle        CardName = "CASTLE"
	CardCemetary      CardName = "CEMETARY"
	CardChapel        CardName = "CHAPEL"
	CardChipSweep     CardName = "CHIP_SWEEP"
	CardClockTower    CardName = "CLOCK_TOWER"
	CardCourthouse    CardName = "COURTHOUSE"
	CardCrane         CardName = "CRANE"
	CardDoctor        CardName = "DOCTOR"
	CardDungeon       CardName = "DUNGEON"
	CardEvertree      CardName = "EVERTREE"
	CardFairgrounds   CardName = "FAIRGROUNDS"
	CardFarm          CardName = "FARM"
	CardFool          CardName = "FOOL"
	CardGeneralStore  CardName = "GENERAL_STORE"
	CardHistorian     CardName = "HISTORIAN"
	CardHusband       CardName = "HUSBAND"
	CardInn           CardName = "INN"
	CardInnkeeper     CardName = "INNKEEPER"
	CardJudge         CardName = "JUDGE"
	CardKing          CardName = "KING"
	CardLookout       CardName = "LOOKOUT"
	CardMine          CardName = "MINE"
	CardMinerMole     CardName = "MINER_MOLE"
	CardMonastery     CardName = "MONASTERY"
	CardMonk          CardName = "MONK"
	CardPalace        CardName = "PALACE"
	CardPeddler       CardName = "PEDDLER"
	CardPostalPigeon  CardName = "POSTAL_PIGEON"
	CardPostOffice    CardName = "POST_OFFICE"
	CardQueen         CardName = "QUEEN"
	CardRanger        CardName = "RANGER"
	CardResinRefinery CardName = "RESIN_REFINERY"
	CardRuins         CardName = "RUINS"
	CardSchool        CardName = "SCHOOL"
	CardShepherd      CardName = "SHEPHERD"
	CardShopkeeper    CardName = "SHOPKEEPER"
	CardStorehouse    CardName = "STOREHOUSE"
	CardTeacher       CardName = "TEACHER"
	CardTheatre       CardName = "THEATRE"
	CardTwigBarge     CardName = "TWIG_BARGE"
	CardUndertaker    CardName = "UNDERTAKER"
	CardUniversity    CardName = "UNIVERSITY"
	CardWanderer      CardName = "WANDERER"
	CardWife          CardName = "WIFE"
	CardWoodcarver    CardName = "WOODCARVER"
)

// LocationType groups locations by board area.
type LocationType string

const (
	LocationTypeBasic   LocationType = "BASIC"
	LocationTypeForest  LocationType = "FOREST"
	LocationTypeHaven   LocationType = "HAVEN"
	LocationTypeJourney LocationType = "JOURNEY"
)

// LocationOccupancy controls how many workers a location admits.
type LocationOccupancy string

const (
	OccupancyExclusive     LocationOccupancy = "EXCLUSIVE"
	OccupancyExclusiveFour LocationOccupancy = "EXCLUSIVE_FOUR"
	OccupancyUnlimited     LocationOccupancy = "UNLIMITED"
)

// LocationName identifies a worker placement spot on the board.
type LocationName string

const (
	LocationHaven                LocationName = "HAVEN"
	LocationJourneyFive          LocationName = "JOURNEY_FIVE"
	LocationJourneyFour          LocationName = "JOURNEY_FOUR"
	LocationJourneyThree         LocationName = "JOURNEY_THREE"
	LocationJourneyTwo           LocationName = "JOURNEY_TWO"
	LocationBasicOneBerry        LocationName = "BASIC_ONE_BERRY"
	LocationBasicOneBerryOneCard LocationName = "BASIC_ONE_BERRY_AND_ONE_CARD"
	LocationBasicOneResinOneCard LocationName = "BASIC_ONE_RESIN_AND_ONE_CARD"
	LocationBasicOneStone        LocationName = "BASIC_ONE_STONE"
	LocationBasicThreeTwigs      LocationName = "BASIC_THREE_TWIGS"
	LocationBasicTwoCardsOneVP   LocationName = "BASIC_TWO_CARDS_AND_ONE_VP"
	LocationBasicTwoResin        LocationName = "BASIC_TWO_RESIN"
	LocationBasicTwoTwigsOneCard LocationName = "BASIC_TWO_TWIGS_AND_ONE_CARD"

	LocationForestTwoBerryOneCard LocationName = "FOREST_TWO_BERRY_ONE_CARD"
	LocationForestTwoWild         LocationName = "FOREST_TWO_WILD"
	LocationForestThreeBerry      LocationName = "FOREST_THREE_BERRY"
	LocationForestDiscardDrawTwo  LocationName = "FOREST_DISCARD_ANY_THEN_DRAW_TWO_PER_CARD"
	LocationForestDrawTwoMeadow   LocationName = "FOREST_DRAW_TWO_MEADOW_PLAY_ONE_FOR_ONE_LESS"
)

// EventType distinguishes the always-available events from expansion ones.
type EventType string

const (
	EventTypeBasic   EventType = "BASIC"
	EventTypeSpecial EventType = "SPECIAL"
)

// EventName identifies a claimable event.
type EventName string

const (
	EventFourProductionTags EventName = "BASIC_FOUR_PRODUCTION_TAGS"
	EventThreeDestination   EventName = "BASIC_THREE_DESTINATION"
	EventThreeGovernance    EventName = "BASIC_THREE_GOVERNANCE"
	EventThreeTraveler      EventName = "BASIC_THREE_TRAVELER"
)

// AdornmentName identifies a pearl-cost adornment card.
type AdornmentName string

const (
	AdornmentBell           AdornmentName = "BELL"
	AdornmentCompass        AdornmentName = "COMPASS"
	AdornmentGildedBook     AdornmentName = "GILDED_BOOK"
	AdornmentHourglass      AdornmentName = "HOURGLASS"
	AdornmentKeyToTheCity   AdornmentName = "KEY_TO_THE_CITY"
	AdornmentMasque         AdornmentName = "MASQUE"
	AdornmentMirror         AdornmentName = "MIRROR"
	AdornmentScales         AdornmentName = "SCALES"
	AdornmentSeaglassAmulet AdornmentName = "SEAGLASS_AMULET"
	AdornmentSpyglass       AdornmentName = "SPYGLASS"
	AdornmentSundial        AdornmentName = "SUNDIAL"
	AdornmentTiara          AdornmentName = "TIARA"
)

// PlayerStatus tracks whether a player is still taking turns.
type PlayerStatus string

const (
	PlayerStatusDuringSeason PlayerStatus = "DURING_SEASON"
	PlayerStatusGameEnded    PlayerStatus = "GAME_ENDED"
)

// PlayedCardInfo is one card instance inside a player's city. Cards can
// appear multiple times; ID disambiguates instances of the same name.
type PlayedCardInfo struct {
	ID             string      `json:"id,omitempty"`
	CardName       CardName    `json:"cardName"`
	CardOwnerID    string      `json:"cardOwnerId"`
	Workers        []string    `json:"workers,omitempty"`
	Resources      ResourceMap `json:"resources,omitempty"`
	UsedForCritter *bool       `json:"usedForCritter,omitempty"`
	PairedCards    []CardName  `json:"pairedCards,omitempty"`
}

// Clone returns a deep copy of the played card.
func (pc *PlayedCardInfo) Clone() *PlayedCardInfo {
	if pc == nil {
		return nil
	}
	out := &PlayedCardInfo{
		ID:          pc.ID,
		CardName:    pc.CardName,
		CardOwnerID: pc.CardOwnerID,
	}
	if pc.Workers != nil {
		out.Workers = append([]string{}, pc.Workers...)
	}
	if pc.Resources != nil {
		out.Resources = pc.Resources.Clone()
	}
	if pc.UsedForCritter != nil {
		v := *pc.UsedForCritter
		out.UsedForCritter = &v
	}
	if pc.PairedCards != nil {
		out.PairedCards = append([]CardName{}, pc.PairedCards...)
	}
	return out
}

// Matches reports whether ref refers to this card instance. An id match
// wins; inputs from clients that drop the id fall back to a structural
// comparison of name and owner.
func (pc *PlayedCardInfo) Matches(ref *PlayedCardInfo) bool {
	if pc == nil || ref == nil {
		return false
	}
	if ref.ID != "" || pc.ID != "" {
		if ref.ID == pc.ID {
			return true
		}
		if ref.ID != "" && pc.ID != "" {
			return false
		}
	}
	return pc.CardName == ref.CardName && pc.CardOwnerID == ref.CardOwnerID
}

// WorkerPlacementInfo names a spot a worker occupies or may occupy.
type WorkerPlacementInfo struct {
	Location   LocationName    `json:"location,omitempty"`
	Event      EventName       `json:"event,omitempty"`
	PlayedCard *PlayedCardInfo `json:"playedCard,omitempty"`
}

// Clone returns a deep copy of the placement.
func (w *WorkerPlacementInfo) Clone() *WorkerPlacementInfo {
	if w == nil {
		return nil
	}
	return &WorkerPlacementInfo{
		Location:   w.Location,
		Event:      w.Event,
		PlayedCard: w.PlayedCard.Clone(),
	}
}

// Matches reports whether two placements refer to the same spot.
func (w *WorkerPlacementInfo) Matches(other *WorkerPlacementInfo) bool {
	if w == nil || other == nil {
		return false
	}
	if w.Location != other.Location || w.Event != other.Event {
		return false
	}
	if (w.PlayedCard == nil) != (other.PlayedCard == nil) {
		return false
	}
	if w.PlayedCard != nil && !w.PlayedCard.Matches(other.PlayedCard) {
		return false
	}
	return true
}

// GameOptions toggles expansion content for a game.
type GameOptions struct {
	Pearlbrook bool `json:"pearlbrook,omitempty"`
}

func boolPtr(v bool) *bool { return &v }
