package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
	"github.com/louisbranch/evermeadow/internal/id"
)

// MaxHandSize is the hand limit; draws beyond it are discarded.
const MaxHandSize = 8

// MaxCitySize is the number of occupied spaces a city holds.
const MaxCitySize = 15

// Player holds one player's private and public state.
type Player struct {
	Name         string
	PlayerID     string
	PlayerSecret string

	Resources   ResourceMap
	CardsInHand []CardName
	PlayedCards []*PlayedCardInfo

	NumWorkers    int
	PlacedWorkers []WorkerPlacementInfo

	CurrentSeason Season
	Status        PlayerStatus

	ClaimedEvents []EventName

	AdornmentsInHand []AdornmentName
	PlayedAdornments []AdornmentName
}

// NewPlayer creates a winter-season player with two workers.
func NewPlayer(name string) *Player {
	return &Player{
		Name:          name,
		PlayerID:      id.MustNewID(),
		PlayerSecret:  id.MustNewID(),
		Resources:     ResourceMap{},
		CurrentSeason: SeasonWinter,
		NumWorkers:    SeasonWinter.NumWorkers(),
		Status:        PlayerStatusDuringSeason,
	}
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	out := &Player{
		Name:          p.Name,
		PlayerID:      p.PlayerID,
		PlayerSecret:  p.PlayerSecret,
		Resources:     p.Resources.Clone(),
		NumWorkers:    p.NumWorkers,
		CurrentSeason: p.CurrentSeason,
		Status:        p.Status,
	}
	if p.CardsInHand != nil {
		out.CardsInHand = append([]CardName{}, p.CardsInHand...)
	}
	for _, pc := range p.PlayedCards {
		out.PlayedCards = append(out.PlayedCards, pc.Clone())
	}
	for _, w := range p.PlacedWorkers {
		out.PlacedWorkers = append(out.PlacedWorkers, *w.Clone())
	}
	if p.ClaimedEvents != nil {
		out.ClaimedEvents = append([]EventName{}, p.ClaimedEvents...)
	}
	if p.AdornmentsInHand != nil {
		out.AdornmentsInHand = append([]AdornmentName{}, p.AdornmentsInHand...)
	}
	if p.PlayedAdornments != nil {
		out.PlayedAdornments = append([]AdornmentName{}, p.PlayedAdornments...)
	}
	return out
}

// GainResources adds resources to the player's supply.
func (p *Player) GainResources(rm ResourceMap) {
	p.Resources.Add(rm)
}

// SpendResources removes resources, failing without mutation if any
// type is short.
func (p *Player) SpendResources(rm ResourceMap) error {
	return p.Resources.Subtract(rm)
}

// NumResourcesByType returns the held count for one type.
func (p *Player) NumResourcesByType(rt ResourceType) int {
	return p.Resources[rt]
}

// AddCardToHand gives the player a card, discarding it instead once the
// hand is full.
func (p *Player) AddCardToHand(gs *GameState, c CardName) {
	if len(p.CardsInHand) >= MaxHandSize {
		gs.DiscardPile.AddToStack(c)
		return
	}
	p.CardsInHand = append(p.CardsInHand, c)
}

// RemoveCardFromHand takes one copy of the card out of the hand.
func (p *Player) RemoveCardFromHand(c CardName) error {
	for i, hc := range p.CardsInHand {
		if hc == c {
			p.CardsInHand = append(p.CardsInHand[:i], p.CardsInHand[i+1:]...)
			return nil
		}
	}
	return errors.WithMetadata(errors.CodeCardNotInHand,
		fmt.Sprintf("cannot find selected card %s in hand", c),
		map[string]string{"card": string(c)})
}

// DrawCards moves up to n cards from the deck into the hand.
func (p *Player) DrawCards(gs *GameState, n int) {
	for i := 0; i < n; i++ {
		c, err := gs.Deck.Draw()
		if err != nil {
			return
		}
		p.AddCardToHand(gs, c)
	}
}

// NumOccupiedSpacesInCity counts used city spaces. Wanderers take no
// space and each husband/wife pair shares one.
func (p *Player) NumOccupiedSpacesInCity() int {
	n := 0
	husbands, wives := 0, 0
	for _, pc := range p.PlayedCards {
		switch pc.CardName {
		case CardWanderer:
			continue
		case CardHusband:
			husbands++
		case CardWife:
			wives++
		}
		n++
	}
	pairs := husbands
	if wives < pairs {
		pairs = wives
	}
	return n - pairs
}

// CanAddToCity reports whether the card fits. RUINS replaces an existing
// construction and WANDERER takes no space, so both bypass the size cap.
func (p *Player) CanAddToCity(c CardName) error {
	card, err := CardFromName(c)
	if err != nil {
		return err
	}
	if card.IsUnique && p.HasCardInCity(c) {
		return errors.WithMetadata(errors.CodeUniqueCardDuplicate,
			fmt.Sprintf("unable to add %s to city: unique card already played", c),
			map[string]string{"card": string(c)})
	}
	if c == CardRuins || c == CardWanderer {
		return nil
	}
	// A new husband shares the space of an unpaired wife.
	if c == CardHusband && p.countCardsInCity(CardWife) > p.countCardsInCity(CardHusband) {
		return nil
	}
	if p.NumOccupiedSpacesInCity() >= MaxCitySize {
		return errors.WithMetadata(errors.CodeCityFull,
			fmt.Sprintf("unable to add %s to city: city is full", c),
			map[string]string{"card": string(c)})
	}
	return nil
}

func (p *Player) countCardsInCity(c CardName) int {
	n := 0
	for _, pc := range p.PlayedCards {
		if pc.CardName == c {
			n++
		}
	}
	return n
}

// AddToCity places a card instance into the city after checking it fits.
func (p *Player) AddToCity(c CardName) (*PlayedCardInfo, error) {
	if err := p.CanAddToCity(c); err != nil {
		return nil, err
	}
	card, err := CardFromName(c)
	if err != nil {
		return nil, err
	}
	pc := &PlayedCardInfo{
		ID:          id.MustNewID(),
		CardName:    c,
		CardOwnerID: p.PlayerID,
	}
	if card.IsConstruction {
		pc.UsedForCritter = boolPtr(false)
	}
	if card.MaxWorkerSpots > 0 {
		pc.Workers = []string{}
	}
	if card.InitialResources != nil {
		pc.Resources = card.InitialResources.Clone()
	}
	if c == CardDungeon {
		pc.PairedCards = []CardName{}
	}
	p.PlayedCards = append(p.PlayedCards, pc)
	return pc, nil
}

// RemoveCardFromCity drops a card instance, sending it and anything
// paired under it to the discard pile when requested.
func (p *Player) RemoveCardFromCity(gs *GameState, target *PlayedCardInfo, addToDiscard bool) error {
	for i, pc := range p.PlayedCards {
		if !pc.Matches(target) {
			continue
		}
		p.PlayedCards = append(p.PlayedCards[:i], p.PlayedCards[i+1:]...)
		if addToDiscard {
			gs.DiscardPile.AddToStack(pc.CardName)
			for _, paired := range pc.PairedCards {
				gs.DiscardPile.AddToStack(paired)
			}
		}
		return nil
	}
	return errors.WithMetadata(errors.CodeCardNotInCity,
		fmt.Sprintf("cannot find %s in city", target.CardName),
		map[string]string{"card": string(target.CardName)})
}

// HasCardInCity reports whether at least one copy is played.
func (p *Player) HasCardInCity(c CardName) bool {
	return p.countCardsInCity(c) > 0
}

// PlayedCardInfos returns all instances of the named card.
func (p *Player) PlayedCardInfos(c CardName) []*PlayedCardInfo {
	var out []*PlayedCardInfo
	for _, pc := range p.PlayedCards {
		if pc.CardName == c {
			out = append(out, pc)
		}
	}
	return out
}

// FirstPlayedCard returns the first instance of the named card.
func (p *Player) FirstPlayedCard(c CardName) (*PlayedCardInfo, error) {
	for _, pc := range p.PlayedCards {
		if pc.CardName == c {
			return pc, nil
		}
	}
	return nil, errors.WithMetadata(errors.CodeCardNotInCity,
		fmt.Sprintf("cannot find %s in city", c),
		map[string]string{"card": string(c)})
}

// FindPlayedCard resolves a played-card reference against the city.
func (p *Player) FindPlayedCard(ref *PlayedCardInfo) (*PlayedCardInfo, error) {
	if ref == nil {
		return nil, errors.New(errors.CodeInputMissingOptions, "no played card specified")
	}
	for _, pc := range p.PlayedCards {
		if pc.Matches(ref) {
			return pc, nil
		}
	}
	return nil, errors.WithMetadata(errors.CodeCardNotInCity,
		fmt.Sprintf("cannot find %s in city", ref.CardName),
		map[string]string{"card": string(ref.CardName)})
}

// NumCardsInCityByType counts played cards of the given color.
func (p *Player) NumCardsInCityByType(t CardType) int {
	n := 0
	for _, pc := range p.PlayedCards {
		card := mustCard(pc.CardName)
		if card.Type == t {
			n++
		}
	}
	return n
}

// PlayedCardsByType returns played card instances of the given color.
func (p *Player) PlayedCardsByType(t CardType) []*PlayedCardInfo {
	var out []*PlayedCardInfo
	for _, pc := range p.PlayedCards {
		if mustCard(pc.CardName).Type == t {
			out = append(out, pc)
		}
	}
	return out
}

// NumAvailableWorkers returns workers not yet placed.
func (p *Player) NumAvailableWorkers() int {
	return p.NumWorkers - len(p.PlacedWorkers)
}

// PlaceWorkerOnLocation records a worker on a location. The location's
// placement bonus is applied by the game state, not here.
func (p *Player) PlaceWorkerOnLocation(loc LocationName) error {
	return p.placeWorker(WorkerPlacementInfo{Location: loc})
}

func (p *Player) placeWorker(w WorkerPlacementInfo) error {
	if p.NumAvailableWorkers() <= 0 {
		return errors.New(errors.CodeWorkerUnavailable, "no available workers")
	}
	p.PlacedWorkers = append(p.PlacedWorkers, w)
	return nil
}

// IsRecallableWorker reports whether the placement returns at season
// end. Journey spots and the CEMETARY/MONASTERY destinations keep their
// workers for the rest of the game.
func (p *Player) IsRecallableWorker(w WorkerPlacementInfo) bool {
	if w.Location != "" {
		loc, err := LocationFromName(w.Location)
		if err != nil {
			return false
		}
		return loc.Type != LocationTypeJourney
	}
	if w.Event != "" {
		return false
	}
	if w.PlayedCard != nil {
		switch w.PlayedCard.CardName {
		case CardCemetary, CardMonastery:
			return false
		}
	}
	return true
}

// RecallableWorkers returns the placements that would come back.
func (p *Player) RecallableWorkers() []WorkerPlacementInfo {
	var out []WorkerPlacementInfo
	for _, w := range p.PlacedWorkers {
		if p.IsRecallableWorker(w) {
			out = append(out, w)
		}
	}
	return out
}

// RecallWorker removes a single placed worker, freeing its spot on the
// board or card.
func (p *Player) RecallWorker(gs *GameState, w WorkerPlacementInfo) error {
	idx := -1
	for i, placed := range p.PlacedWorkers {
		if placed.Matches(&w) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New(errors.CodeWorkerNotRecallable, "worker is not placed there")
	}
	if !p.IsRecallableWorker(w) {
		return errors.New(errors.CodeWorkerNotRecallable, "worker cannot be recalled")
	}
	p.PlacedWorkers = append(p.PlacedWorkers[:idx], p.PlacedWorkers[idx+1:]...)

	if w.Location != "" {
		workers := gs.LocationsMap[w.Location]
		for i, pid := range workers {
			if pid == p.PlayerID {
				gs.LocationsMap[w.Location] = append(workers[:i], workers[i+1:]...)
				break
			}
		}
	}
	if w.PlayedCard != nil {
		owner, err := gs.GetPlayer(w.PlayedCard.CardOwnerID)
		if err != nil {
			return err
		}
		pc, err := owner.FindPlayedCard(w.PlayedCard)
		if err != nil {
			return err
		}
		for i, pid := range pc.Workers {
			if pid == p.PlayerID {
				pc.Workers = append(pc.Workers[:i], pc.Workers[i+1:]...)
				break
			}
		}
	}
	return nil
}

// AdvanceSeason moves the player to the next season and raises the
// worker cap.
func (p *Player) AdvanceSeason() (Season, error) {
	next, ok := p.CurrentSeason.Next()
	if !ok {
		return p.CurrentSeason, errors.New(errors.CodeSeasonOutOfOrder,
			"cannot advance past autumn")
	}
	p.CurrentSeason = next
	p.NumWorkers = next.NumWorkers()
	return next, nil
}

// HasClaimedEvent reports whether the player claimed the event.
func (p *Player) HasClaimedEvent(name EventName) bool {
	for _, e := range p.ClaimedEvents {
		if e == name {
			return true
		}
	}
	return false
}

// HasAdornmentInHand reports whether the adornment is still unplayed.
func (p *Player) HasAdornmentInHand(name AdornmentName) bool {
	for _, a := range p.AdornmentsInHand {
		if a == name {
			return true
		}
	}
	return false
}

// RemoveAdornmentFromHand takes the adornment out of the hand.
func (p *Player) RemoveAdornmentFromHand(name AdornmentName) error {
	for i, a := range p.AdornmentsInHand {
		if a == name {
			p.AdornmentsInHand = append(p.AdornmentsInHand[:i], p.AdornmentsInHand[i+1:]...)
			return nil
		}
	}
	return errors.WithMetadata(errors.CodeAdornmentNotInHand,
		fmt.Sprintf("adornment %s is not in hand", name),
		map[string]string{"adornment": string(name)})
}

// PointsFromCards sums card points, including the husband/wife pairing
// bonus.
func (p *Player) PointsFromCards(gs *GameState) int {
	total := 0
	for _, pc := range p.PlayedCards {
		total += mustCard(pc.CardName).GetPoints(gs, p.PlayerID)
	}
	husbands := p.countCardsInCity(CardHusband)
	wives := p.countCardsInCity(CardWife)
	pairs := husbands
	if wives < pairs {
		pairs = wives
	}
	return total + 3*pairs
}

// PointsFromEvents sums claimed event points.
func (p *Player) PointsFromEvents() int {
	total := 0
	for _, name := range p.ClaimedEvents {
		ev, err := EventFromName(name)
		if err != nil {
			continue
		}
		total += ev.BaseVP
	}
	return total
}

// PointsFromJourney sums points for workers left on journey locations.
func (p *Player) PointsFromJourney() int {
	total := 0
	for _, w := range p.PlacedWorkers {
		if w.Location == "" {
			continue
		}
		loc, err := LocationFromName(w.Location)
		if err != nil || loc.Type != LocationTypeJourney {
			continue
		}
		total += loc.BasePoints
	}
	return total
}

// PointsFromAdornments sums played adornment points.
func (p *Player) PointsFromAdornments(gs *GameState) int {
	total := 0
	for _, name := range p.PlayedAdornments {
		total += mustAdornment(name).GetPoints(gs, p.PlayerID)
	}
	return total
}

// Points is the player's full score: cards, events, journey, adornments,
// point tokens and two points per pearl.
func (p *Player) Points(gs *GameState) int {
	return p.PointsFromCards(gs) +
		p.PointsFromEvents() +
		p.PointsFromJourney() +
		p.PointsFromAdornments(gs) +
		p.Resources[ResourceTypeVP] +
		2*p.Resources[ResourceTypePearl]
}
