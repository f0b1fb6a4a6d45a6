package game

import (
	"encoding/json"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// playerWire is the serialized form of a player. Private fields are
// omitted from the public view; counts stand in for hidden contents.
type playerWire struct {
	Name             string            `json:"name"`
	PlayerID         string            `json:"playerId"`
	PlayerSecret     string            `json:"playerSecret,omitempty"`
	Resources        ResourceMap       `json:"resources"`
	CardsInHand      []CardName        `json:"cardsInHand,omitempty"`
	NumCardsInHand   int               `json:"numCardsInHand"`
	PlayedCards      []*PlayedCardInfo `json:"playedCards"`
	NumWorkers       int               `json:"numWorkers"`
	PlacedWorkers    []WorkerPlacementInfo `json:"placedWorkers"`
	CurrentSeason    Season            `json:"currentSeason"`
	Status           PlayerStatus      `json:"playerStatus"`
	ClaimedEvents    []EventName       `json:"claimedEvents"`
	AdornmentsInHand []AdornmentName   `json:"adornmentsInHand,omitempty"`
	NumAdornments    int               `json:"numAdornmentsInHand"`
	PlayedAdornments []AdornmentName   `json:"playedAdornments"`
}

type gameStateWire struct {
	GameStateID    int                       `json:"gameStateId"`
	Players        []*playerWire             `json:"players"`
	ActivePlayerID string                    `json:"activePlayerId"`
	Meadow         []CardName                `json:"meadow"`
	Deck           []CardName                `json:"deck,omitempty"`
	DeckSize       int                       `json:"deckSize"`
	DiscardPile    []CardName                `json:"discardPile,omitempty"`
	DiscardSize    int                       `json:"discardPileSize"`
	LocationsMap   map[LocationName][]string `json:"locationsMap"`
	EventsMap      map[EventName]string      `json:"eventsMap"`
	PendingInputs  []*GameInput              `json:"pendingGameInputs"`
	Options        GameOptions               `json:"gameOptions"`
}

func (p *Player) toWire(includePrivate bool) *playerWire {
	w := &playerWire{
		Name:             p.Name,
		PlayerID:         p.PlayerID,
		Resources:        p.Resources.Clone(),
		NumCardsInHand:   len(p.CardsInHand),
		NumWorkers:       p.NumWorkers,
		PlacedWorkers:    append([]WorkerPlacementInfo{}, p.PlacedWorkers...),
		CurrentSeason:    p.CurrentSeason,
		Status:           p.Status,
		ClaimedEvents:    append([]EventName{}, p.ClaimedEvents...),
		NumAdornments:    len(p.AdornmentsInHand),
		PlayedAdornments: append([]AdornmentName{}, p.PlayedAdornments...),
	}
	for _, pc := range p.PlayedCards {
		w.PlayedCards = append(w.PlayedCards, pc.Clone())
	}
	if includePrivate {
		w.PlayerSecret = p.PlayerSecret
		w.CardsInHand = append([]CardName{}, p.CardsInHand...)
		w.AdornmentsInHand = append([]AdornmentName{}, p.AdornmentsInHand...)
	}
	return w
}

func (w *playerWire) toPlayer() *Player {
	p := &Player{
		Name:             w.Name,
		PlayerID:         w.PlayerID,
		PlayerSecret:     w.PlayerSecret,
		Resources:        w.Resources,
		CardsInHand:      w.CardsInHand,
		NumWorkers:       w.NumWorkers,
		PlacedWorkers:    w.PlacedWorkers,
		CurrentSeason:    w.CurrentSeason,
		Status:           w.Status,
		ClaimedEvents:    w.ClaimedEvents,
		AdornmentsInHand: w.AdornmentsInHand,
		PlayedAdornments: w.PlayedAdornments,
	}
	if p.Resources == nil {
		p.Resources = ResourceMap{}
	}
	p.PlayedCards = w.PlayedCards
	return p
}

// ToJSON serializes the player. The public view hides the hand, the
// secret and unplayed adornments, leaving only their counts.
func (p *Player) ToJSON(includePrivate bool) ([]byte, error) {
	data, err := json.Marshal(p.toWire(includePrivate))
	if err != nil {
		return nil, errors.Wrap(errors.CodeInputUnexpected, "unable to serialize player", err)
	}
	return data, nil
}

// PlayerFromJSON rebuilds a player from its private serialized form.
func PlayerFromJSON(data []byte) (*Player, error) {
	var w playerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.CodeInputUnexpected, "unable to parse player", err)
	}
	return w.toPlayer(), nil
}

// ToJSON serializes the snapshot. The public view hides hands, player
// secrets and face-down stacks, leaving only their sizes.
func (gs *GameState) ToJSON(includePrivate bool) ([]byte, error) {
	w := &gameStateWire{
		GameStateID:    gs.GameStateID,
		ActivePlayerID: gs.ActivePlayerID,
		Meadow:         append([]CardName{}, gs.Meadow...),
		DeckSize:       gs.Deck.Len(),
		DiscardSize:    gs.DiscardPile.Len(),
		LocationsMap:   gs.LocationsMap,
		EventsMap:      gs.EventsMap,
		PendingInputs:  gs.PendingInputs,
		Options:        gs.Options,
	}
	for _, p := range gs.Players {
		w.Players = append(w.Players, p.toWire(includePrivate))
	}
	if includePrivate {
		w.Deck = append([]CardName{}, gs.Deck.Cards...)
		w.DiscardPile = append([]CardName{}, gs.DiscardPile.Cards...)
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInputUnexpected, "unable to serialize game state", err)
	}
	return data, nil
}

// FromJSON rebuilds a snapshot from its private serialized form.
func FromJSON(data []byte) (*GameState, error) {
	var w gameStateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.CodeInputUnexpected, "unable to parse game state", err)
	}
	gs := &GameState{
		GameStateID:    w.GameStateID,
		ActivePlayerID: w.ActivePlayerID,
		Meadow:         w.Meadow,
		Deck:           NewCardStack("deck", w.Deck),
		DiscardPile:    NewCardStack("discard", w.DiscardPile),
		LocationsMap:   w.LocationsMap,
		EventsMap:      w.EventsMap,
		PendingInputs:  w.PendingInputs,
		Options:        w.Options,
	}
	if gs.LocationsMap == nil {
		gs.LocationsMap = map[LocationName][]string{}
	}
	if gs.EventsMap == nil {
		gs.EventsMap = map[EventName]string{}
	}
	for _, pw := range w.Players {
		gs.Players = append(gs.Players, pw.toPlayer())
	}
	return gs, nil
}
