package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
	"github.com/louisbranch/evermeadow/internal/random"
)

// MeadowSize is the number of face-up cards kept next to the board.
const MeadowSize = 8

// GameState is one immutable snapshot of a game. Next returns a new
// snapshot instead of mutating the receiver.
type GameState struct {
	GameStateID    int
	Players        []*Player
	ActivePlayerID string
	Meadow         []CardName
	Deck           *CardStack
	DiscardPile    *CardStack
	LocationsMap   map[LocationName][]string
	EventsMap      map[EventName]string
	PendingInputs  []*GameInput
	Options        GameOptions
}

// NewGameInput configures a fresh game.
type NewGameInput struct {
	PlayerNames []string
	// Seed drives the initial shuffle. Zero means a random seed.
	Seed int64
	// ForestLocations overrides the randomly drawn forest spots.
	ForestLocations []LocationName
	Options         GameOptions
}

// NewGame shuffles a fresh deck, deals opening hands and fills the
// meadow. The first named player goes first.
func NewGame(in NewGameInput) (*GameState, error) {
	if len(in.PlayerNames) < 2 || len(in.PlayerNames) > 4 {
		return nil, errors.New(errors.CodeNotFound, "games take 2 to 4 players")
	}
	rng, _, err := random.NewShuffler(in.Seed)
	if err != nil {
		return nil, errors.Wrap(errors.CodeNotFound, "unable to seed the deck", err)
	}

	deck := NewCardStack("deck", FullDeck())
	deck.Shuffle(rng)

	gs := &GameState{
		GameStateID:  1,
		Deck:         deck,
		DiscardPile:  NewCardStack("discard", nil),
		LocationsMap: map[LocationName][]string{},
		EventsMap:    map[EventName]string{},
		Options:      in.Options,
	}

	for _, name := range BasicLocationNames() {
		gs.LocationsMap[name] = []string{}
	}
	gs.LocationsMap[LocationHaven] = []string{}
	for _, name := range JourneyLocationNames() {
		gs.LocationsMap[name] = []string{}
	}
	forest := in.ForestLocations
	if forest == nil {
		all := ForestLocationNames()
		rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
		n := 3
		if len(in.PlayerNames) > 2 {
			n = 4
		}
		forest = all[:n]
	}
	for _, name := range forest {
		if _, err := LocationFromName(name); err != nil {
			return nil, err
		}
		gs.LocationsMap[name] = []string{}
	}

	for _, name := range BasicEventNames() {
		gs.EventsMap[name] = ""
	}

	for i, name := range in.PlayerNames {
		p := NewPlayer(name)
		p.DrawCards(gs, 5+i)
		if in.Options.Pearlbrook {
			p.AdornmentsInHand = append([]AdornmentName{}, AllAdornmentNames()[2*i:2*i+2]...)
		}
		gs.Players = append(gs.Players, p)
	}
	gs.ActivePlayerID = gs.Players[0].PlayerID

	gs.ReplenishMeadow()
	return gs, nil
}

// Clone deep-copies the snapshot.
func (gs *GameState) Clone() *GameState {
	out := &GameState{
		GameStateID:    gs.GameStateID,
		ActivePlayerID: gs.ActivePlayerID,
		Meadow:         append([]CardName{}, gs.Meadow...),
		Deck:           gs.Deck.Clone(),
		DiscardPile:    gs.DiscardPile.Clone(),
		LocationsMap:   map[LocationName][]string{},
		EventsMap:      map[EventName]string{},
		Options:        gs.Options,
	}
	for _, p := range gs.Players {
		out.Players = append(out.Players, p.Clone())
	}
	for name, workers := range gs.LocationsMap {
		out.LocationsMap[name] = append([]string{}, workers...)
	}
	for name, claimer := range gs.EventsMap {
		out.EventsMap[name] = claimer
	}
	for _, pending := range gs.PendingInputs {
		out.PendingInputs = append(out.PendingInputs, pending.Clone())
	}
	return out
}

// GetPlayer finds a player by id.
func (gs *GameState) GetPlayer(playerID string) (*Player, error) {
	for _, p := range gs.Players {
		if p.PlayerID == playerID {
			return p, nil
		}
	}
	return nil, errors.WithMetadata(errors.CodePlayerNotFound, "player not found",
		map[string]string{"player_id": playerID})
}

// ActivePlayer returns the player whose turn it is.
func (gs *GameState) ActivePlayer() *Player {
	p, err := gs.GetPlayer(gs.ActivePlayerID)
	if err != nil {
		return nil
	}
	return p
}

// PendingGameInputs returns the unresolved follow-up inputs.
func (gs *GameState) PendingGameInputs() []*GameInput {
	return gs.PendingInputs
}

// IsGameOver reports whether every player has finished.
func (gs *GameState) IsGameOver() bool {
	for _, p := range gs.Players {
		if p.Status != PlayerStatusGameEnded {
			return false
		}
	}
	return true
}

func (gs *GameState) opponentIDs(p *Player) []string {
	var out []string
	for _, other := range gs.Players {
		if other.PlayerID != p.PlayerID {
			out = append(out, other.PlayerID)
		}
	}
	return out
}

// ownerOf resolves the player owning the played card, falling back to
// the active player for cards without a recorded owner.
func (gs *GameState) ownerOf(pc *PlayedCardInfo, fallback *Player) *Player {
	if pc.CardOwnerID != "" {
		if owner, err := gs.GetPlayer(pc.CardOwnerID); err == nil {
			return owner
		}
	}
	return fallback
}

func (gs *GameState) pushPendingInput(input *GameInput) {
	if input.PlayerID == "" {
		input.PlayerID = gs.ActivePlayerID
	}
	gs.PendingInputs = append(gs.PendingInputs, input)
}

func (gs *GameState) removeCardFromMeadow(c CardName) error {
	for i, m := range gs.Meadow {
		if m == c {
			gs.Meadow = append(gs.Meadow[:i], gs.Meadow[i+1:]...)
			return nil
		}
	}
	return errors.WithMetadata(errors.CodeCardNotInMeadow,
		fmt.Sprintf("cannot find %s in the meadow", c),
		map[string]string{"card": string(c)})
}

// ReplenishMeadow refills the meadow to its full size from the deck.
func (gs *GameState) ReplenishMeadow() {
	for len(gs.Meadow) < MeadowSize {
		c, err := gs.Deck.Draw()
		if err != nil {
			return
		}
		gs.Meadow = append(gs.Meadow, c)
	}
}

// trimMeadow discards the overflow after a temporary meadow expansion.
func (gs *GameState) trimMeadow() {
	for len(gs.Meadow) > MeadowSize {
		last := gs.Meadow[len(gs.Meadow)-1]
		gs.Meadow = gs.Meadow[:len(gs.Meadow)-1]
		gs.DiscardPile.AddToStack(last)
	}
}

// NextOption adjusts how Next resolves the applied input.
type NextOption func(*nextConfig)

type nextConfig struct {
	skipAutoAdvance bool
}

// WithoutAutoAdvance leaves forced pending inputs queued instead of
// resolving them, so callers can inspect every prompt.
func WithoutAutoAdvance() NextOption {
	return func(c *nextConfig) { c.skipAutoAdvance = true }
}

// Next applies one input and returns the resulting snapshot. The
// receiver is left untouched.
func (gs *GameState) Next(input *GameInput, opts ...NextOption) (*GameState, error) {
	var cfg nextConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	next := gs.Clone()
	next.GameStateID++
	if err := next.handleInput(input); err != nil {
		return nil, err
	}
	if !cfg.skipAutoAdvance {
		if err := next.autoAdvance(); err != nil {
			return nil, err
		}
	}
	if len(next.PendingInputs) == 0 {
		next.advanceTurn()
	}
	return next, nil
}

func (gs *GameState) handleInput(input *GameInput) error {
	if gs.IsGameOver() {
		return errors.New(errors.CodeGameOver, "the game is over")
	}
	playerID := input.PlayerID
	if playerID == "" {
		playerID = gs.ActivePlayerID
	}
	if playerID != gs.ActivePlayerID {
		return errors.New(errors.CodeInputWrongPlayer, "not your turn")
	}
	p, err := gs.GetPlayer(playerID)
	if err != nil {
		return err
	}

	if len(gs.PendingInputs) > 0 {
		pending := gs.matchPending(input)
		if pending == nil {
			return errors.New(errors.CodeInputUnexpected,
				fmt.Sprintf("unexpected %s input", input.InputType))
		}
		gs.removePending(pending)
		return gs.dispatchPending(p, pending, input)
	}

	switch input.InputType {
	case InputPlayCard:
		return gs.playCard(p, input)
	case InputPlaceWorker:
		return gs.placeWorker(p, input)
	case InputVisitDestinationCard:
		return gs.visitDestinationCard(p, input)
	case InputClaimEvent:
		return gs.claimEvent(p, input)
	case InputPrepareForSeason:
		return gs.prepareForSeason(p)
	case InputPlayAdornment:
		return gs.playAdornment(p, input)
	case InputGameEnd:
		return gs.gameEnd(p)
	}
	return errors.New(errors.CodeInputUnexpected,
		fmt.Sprintf("unexpected %s input", input.InputType))
}

// matchPending returns the queued input the submission answers. Queued
// inputs resolve in order, so only the front of the queue is eligible.
func (gs *GameState) matchPending(input *GameInput) *GameInput {
	if len(gs.PendingInputs) == 0 {
		return nil
	}
	if pending := gs.PendingInputs[0]; input.MatchesPending(pending) {
		return pending
	}
	return nil
}

func (gs *GameState) removePending(pending *GameInput) {
	for i, queued := range gs.PendingInputs {
		if queued == pending {
			gs.PendingInputs = append(gs.PendingInputs[:i], gs.PendingInputs[i+1:]...)
			return
		}
	}
}

func (gs *GameState) dispatchPending(p *Player, pending, submitted *GameInput) error {
	switch {
	case pending.CardContext != "":
		card := mustCard(pending.CardContext)
		if card.handleInput == nil {
			return errors.New(errors.CodeInputUnexpected,
				fmt.Sprintf("no follow-up expected for %s", pending.CardContext))
		}
		return card.handleInput(gs, p, pending, submitted)
	case pending.LocationContext != "":
		loc, err := LocationFromName(pending.LocationContext)
		if err != nil {
			return err
		}
		if loc.handleInput == nil {
			return errors.New(errors.CodeInputUnexpected,
				fmt.Sprintf("no follow-up expected for %s", pending.LocationContext))
		}
		return loc.handleInput(gs, p, pending, submitted)
	case pending.AdornmentContext != "":
		a, err := AdornmentFromName(pending.AdornmentContext)
		if err != nil {
			return err
		}
		if a.handleInput == nil {
			return errors.New(errors.CodeInputUnexpected,
				fmt.Sprintf("no follow-up expected for %s", pending.AdornmentContext))
		}
		return a.handleInput(gs, p, pending, submitted)
	case pending.PrevInputType == InputPrepareForSeason && pending.InputType == InputSelectCards:
		return gs.handleSeasonCardDraw(p, pending, submitted)
	}
	return errors.New(errors.CodeInputUnexpected, "pending input has no handler")
}

// advanceTurn hands the game to the next player still in a season.
func (gs *GameState) advanceTurn() {
	n := len(gs.Players)
	cur := 0
	for i, p := range gs.Players {
		if p.PlayerID == gs.ActivePlayerID {
			cur = i
			break
		}
	}
	for step := 1; step <= n; step++ {
		candidate := gs.Players[(cur+step)%n]
		if candidate.Status != PlayerStatusGameEnded {
			gs.ActivePlayerID = candidate.PlayerID
			return
		}
	}
}

func (gs *GameState) playCard(p *Player, input *GameInput) error {
	c := input.ClientOptions.Card
	if c == "" {
		return errors.New(errors.CodeInputUnexpected, "no card given to play")
	}
	card, err := CardFromName(c)
	if err != nil {
		return err
	}
	if input.ClientOptions.FromMeadow {
		if !cardNameIn(gs.Meadow, c) {
			return errors.WithMetadata(errors.CodeCardNotInMeadow,
				fmt.Sprintf("cannot find %s in the meadow", c),
				map[string]string{"card": string(c)})
		}
	} else if !cardNameIn(p.CardsInHand, c) {
		return errors.WithMetadata(errors.CodeCardNotInHand,
			fmt.Sprintf("cannot find selected card %s in hand", c),
			map[string]string{"card": string(c)})
	}
	if card.canPlay != nil {
		if err := card.canPlay(gs, p); err != nil {
			return err
		}
	}
	if c != CardFool && c != CardRuins {
		if err := p.CanAddToCity(c); err != nil {
			return err
		}
	}
	if err := p.PayForCard(gs, input); err != nil {
		return err
	}
	if input.ClientOptions.FromMeadow {
		if err := gs.removeCardFromMeadow(c); err != nil {
			return err
		}
	} else if err := p.RemoveCardFromHand(c); err != nil {
		return err
	}
	if err := gs.placeAndActivateCard(p, c, input); err != nil {
		return err
	}
	if input.ClientOptions.FromMeadow {
		gs.ReplenishMeadow()
	}
	return nil
}

// canPlayFree reports whether a card could be played without payment,
// as revealed-card and copy effects do.
func (gs *GameState) canPlayFree(p *Player, c CardName) bool {
	card, err := CardFromName(c)
	if err != nil {
		return false
	}
	if card.canPlay != nil && card.canPlay(gs, p) != nil {
		return false
	}
	if c == CardFool {
		for _, other := range gs.Players {
			if other.PlayerID != p.PlayerID && other.CanAddToCity(CardFool) == nil {
				return true
			}
		}
		return false
	}
	return p.CanAddToCity(c) == nil
}

// placeAndActivateCard adds a paid-for or free card to the city, runs
// its play effect and fires the city's play triggers.
func (gs *GameState) placeAndActivateCard(p *Player, c CardName, via *GameInput) error {
	card := mustCard(c)
	trigger := &GameInput{InputType: InputPlayCard, PlayerID: p.PlayerID}
	if via != nil {
		trigger = via
	}

	if c == CardFool {
		if card.onPlay != nil {
			if err := card.onPlay(gs, p, nil, trigger); err != nil {
				return err
			}
		}
	} else {
		pc, err := p.AddToCity(c)
		if err != nil {
			return err
		}
		switch {
		case card.Type == CardTypeProduction && card.onActivate != nil:
			if err := card.onActivate(gs, p, pc, trigger); err != nil {
				return err
			}
		case card.onPlay != nil:
			if err := card.onPlay(gs, p, pc, trigger); err != nil {
				return err
			}
		}
	}

	if c != CardHistorian && p.HasCardInCity(CardHistorian) {
		p.DrawCards(gs, 1)
	}
	if c != CardShopkeeper && !card.IsConstruction && p.HasCardInCity(CardShopkeeper) {
		p.GainResources(ResourceMap{ResourceTypeBerry: 1})
	}
	if c != CardCourthouse && card.IsConstruction && p.HasCardInCity(CardCourthouse) {
		gs.pushPendingInput(&GameInput{
			InputType:     InputSelectOptionGeneric,
			PrevInputType: trigger.InputType,
			CardContext:   CardCourthouse,
			Label:         "Gain 1 TWIG, RESIN or PEBBLE",
			Options:       nonBerryResourceOptions,
		})
	}
	return nil
}

// playQueenCard plays a card for free from the given source.
func (gs *GameState) playQueenCard(p *Player, c CardName, source string, via *GameInput) error {
	if source == "Meadow" {
		if err := gs.removeCardFromMeadow(c); err != nil {
			return err
		}
		if err := gs.placeAndActivateCard(p, c, via); err != nil {
			return err
		}
		gs.ReplenishMeadow()
		return nil
	}
	if err := p.RemoveCardFromHand(c); err != nil {
		return err
	}
	return gs.placeAndActivateCard(p, c, via)
}

// activatePlayedCard re-runs a production card's effect. Gains go to
// the acting player even when the card sits in another city.
func (gs *GameState) activatePlayedCard(p *Player, pc *PlayedCardInfo, via *GameInput) error {
	card := mustCard(pc.CardName)
	trigger := &GameInput{InputType: InputPlayCard, PlayerID: p.PlayerID}
	if via != nil {
		trigger = via
	}
	switch {
	case card.onActivate != nil:
		return card.onActivate(gs, p, pc, trigger)
	case card.onPlay != nil:
		return card.onPlay(gs, p, pc, trigger)
	}
	return nil
}

func (gs *GameState) placeWorker(p *Player, input *GameInput) error {
	loc := input.ClientOptions.Location
	if loc == "" {
		return errors.New(errors.CodeInputUnexpected, "no location given")
	}
	return gs.placeWorkerOnLocation(p, loc)
}

// placeWorkerOnLocation deploys a worker and runs the location's
// placement bonus.
func (gs *GameState) placeWorkerOnLocation(p *Player, name LocationName) error {
	loc, err := LocationFromName(name)
	if err != nil {
		return err
	}
	workers, open := gs.LocationsMap[name]
	if !open {
		return errors.WithMetadata(errors.CodeLocationNotPlayable,
			fmt.Sprintf("%s is not in this game", name),
			map[string]string{"location": string(name)})
	}
	if err := loc.CanPlay(gs, p); err != nil {
		return err
	}
	switch loc.Occupancy {
	case OccupancyExclusive:
		if len(workers) > 0 {
			return errors.WithMetadata(errors.CodeLocationOccupied,
				fmt.Sprintf("%s is occupied", name),
				map[string]string{"location": string(name)})
		}
	case OccupancyExclusiveFour:
		for _, pid := range workers {
			if pid == p.PlayerID {
				return errors.WithMetadata(errors.CodeLocationOccupied,
					fmt.Sprintf("you already have a worker on %s", name),
					map[string]string{"location": string(name)})
			}
		}
	}
	if err := p.PlaceWorkerOnLocation(name); err != nil {
		return err
	}
	gs.LocationsMap[name] = append(workers, p.PlayerID)
	return loc.Activate(gs, p, &GameInput{
		InputType: InputPlaceWorker,
		PlayerID:  p.PlayerID,
	})
}

// activateLocation runs a location's effect without deploying a worker,
// for copy effects and the clock tower.
func (gs *GameState) activateLocation(p *Player, name LocationName, via *GameInput) error {
	loc, err := LocationFromName(name)
	if err != nil {
		return err
	}
	if err := loc.CanPlay(gs, p); err != nil {
		return err
	}
	return loc.Activate(gs, p, via)
}

func (gs *GameState) visitDestinationCard(p *Player, input *GameInput) error {
	ref := input.ClientOptions.PlayedCard
	if ref == nil {
		return errors.New(errors.CodeInputUnexpected, "no destination given")
	}
	owner := gs.ownerOf(ref, p)
	pc, err := owner.FindPlayedCard(ref)
	if err != nil {
		return err
	}
	card := mustCard(pc.CardName)
	if card.onVisit == nil || card.MaxWorkerSpots == 0 {
		return errors.WithMetadata(errors.CodeLocationNotPlayable,
			fmt.Sprintf("cannot place worker on %s", pc.CardName),
			map[string]string{"card": string(pc.CardName)})
	}
	if owner.PlayerID != p.PlayerID && !card.IsOpenDestination {
		return errors.WithMetadata(errors.CodeLocationNotPlayable,
			fmt.Sprintf("cannot place worker on %s", pc.CardName),
			map[string]string{"card": string(pc.CardName)})
	}
	if len(pc.Workers) >= card.WorkerSpots(owner) {
		return errors.WithMetadata(errors.CodeLocationOccupied,
			fmt.Sprintf("no worker spots left on %s", pc.CardName),
			map[string]string{"card": string(pc.CardName)})
	}
	if err := p.placeWorker(WorkerPlacementInfo{PlayedCard: pc.Clone()}); err != nil {
		return err
	}
	pc.Workers = append(pc.Workers, p.PlayerID)
	return card.onVisit(gs, p, pc, &GameInput{
		InputType: InputVisitDestinationCard,
		PlayerID:  p.PlayerID,
	})
}

func (gs *GameState) claimEvent(p *Player, input *GameInput) error {
	name := input.ClientOptions.Event
	if name == "" {
		return errors.New(errors.CodeInputUnexpected, "no event given")
	}
	ev, err := EventFromName(name)
	if err != nil {
		return err
	}
	claimer, open := gs.EventsMap[name]
	if !open {
		return errors.WithMetadata(errors.CodeEventNotClaimable,
			fmt.Sprintf("%s is not in this game", name),
			map[string]string{"event": string(name)})
	}
	if claimer != "" {
		return errors.WithMetadata(errors.CodeEventNotClaimable,
			fmt.Sprintf("%s is already claimed", name),
			map[string]string{"event": string(name)})
	}
	if err := ev.CanClaim(p); err != nil {
		return err
	}
	if err := p.placeWorker(WorkerPlacementInfo{Event: name}); err != nil {
		return err
	}
	gs.EventsMap[name] = p.PlayerID
	p.ClaimedEvents = append(p.ClaimedEvents, name)
	return nil
}

func (gs *GameState) prepareForSeason(p *Player) error {
	if p.CurrentSeason == SeasonAutumn {
		return errors.New(errors.CodeSeasonOutOfOrder,
			"autumn is the final season")
	}
	if tower, err := p.FirstPlayedCard(CardClockTower); err == nil &&
		tower.Resources != nil && tower.Resources[ResourceTypeVP] > 0 {
		var options []WorkerPlacementInfo
		for _, w := range p.RecallableWorkers() {
			if w.Location != "" {
				options = append(options, *w.Clone())
			}
		}
		if len(options) > 0 {
			gs.pushPendingInput(&GameInput{
				InputType:     InputSelectWorkerPlacement,
				PrevInputType: InputPrepareForSeason,
				CardContext:   CardClockTower,
				Label:         "Pay 1 VP from the Clock Tower to activate a worker's location again",
				WorkerOptions: options,
				MustSelectOne: false,
			})
			return nil
		}
	}
	return gs.finishPrepareForSeason(p)
}

// finishPrepareForSeason recalls workers, advances the season and runs
// its start-of-season effect.
func (gs *GameState) finishPrepareForSeason(p *Player) error {
	for _, w := range p.RecallableWorkers() {
		if err := p.RecallWorker(gs, w); err != nil {
			return err
		}
	}
	season, err := p.AdvanceSeason()
	if err != nil {
		return err
	}
	via := &GameInput{InputType: InputPrepareForSeason, PlayerID: p.PlayerID}
	switch season {
	case SeasonSpring, SeasonAutumn:
		for _, pc := range p.PlayedCardsByType(CardTypeProduction) {
			if err := gs.activatePlayedCard(p, pc, via); err != nil {
				return err
			}
		}
	case SeasonSummer:
		if len(gs.Meadow) == 0 {
			return nil
		}
		max := 2
		if len(gs.Meadow) < max {
			max = len(gs.Meadow)
		}
		gs.pushPendingInput(&GameInput{
			InputType:     InputSelectCards,
			PrevInputType: InputPrepareForSeason,
			Label:         "Draw 2 CARD from the meadow",
			CardOptions:   append([]CardName{}, gs.Meadow...),
			MinToSelect:   max,
			MaxToSelect:   max,
		})
	}
	return nil
}

func (gs *GameState) handleSeasonCardDraw(p *Player, pending, submitted *GameInput) error {
	selected := submitted.ClientOptions.SelectedCards
	if err := validateSelectedCardNames(pending, selected); err != nil {
		return err
	}
	for _, c := range selected {
		if err := gs.removeCardFromMeadow(c); err != nil {
			return err
		}
		p.AddCardToHand(gs, c)
	}
	gs.ReplenishMeadow()
	return nil
}

func (gs *GameState) playAdornment(p *Player, input *GameInput) error {
	if !gs.Options.Pearlbrook {
		return errors.New(errors.CodeInputUnexpected,
			"adornments are not in this game")
	}
	name := input.ClientOptions.Adornment
	if name == "" {
		return errors.New(errors.CodeInputUnexpected, "no adornment given")
	}
	a, err := AdornmentFromName(name)
	if err != nil {
		return err
	}
	if !p.HasAdornmentInHand(name) {
		return errors.WithMetadata(errors.CodeAdornmentNotInHand,
			fmt.Sprintf("cannot find %s in hand", name),
			map[string]string{"adornment": string(name)})
	}
	if err := p.SpendResources(ResourceMap{ResourceTypePearl: 1}); err != nil {
		return err
	}
	if err := p.RemoveAdornmentFromHand(name); err != nil {
		return err
	}
	p.PlayedAdornments = append(p.PlayedAdornments, name)
	if a.onPlay == nil {
		return nil
	}
	return a.onPlay(gs, p, &GameInput{
		InputType: InputPlayAdornment,
		PlayerID:  p.PlayerID,
	})
}

func (gs *GameState) gameEnd(p *Player) error {
	if p.CurrentSeason != SeasonAutumn {
		return errors.New(errors.CodeSeasonOutOfOrder,
			"can only pass out of the game in autumn")
	}
	for _, w := range p.RecallableWorkers() {
		if err := p.RecallWorker(gs, w); err != nil {
			return err
		}
	}
	p.Status = PlayerStatusGameEnded
	return nil
}

// autoAdvance resolves queued inputs with at most one legal resolution,
// so clients are never prompted for a non-choice. Only the front of the
// queue is eligible, matching the order inputs must be answered in.
func (gs *GameState) autoAdvance() error {
	for i := 0; i < 64 && len(gs.PendingInputs) > 0; i++ {
		pending := gs.PendingInputs[0]
		submitted, ok := gs.forcedResolution(pending)
		if !ok {
			return nil
		}
		p, err := gs.GetPlayer(pending.PlayerID)
		if err != nil {
			return err
		}
		gs.removePending(pending)
		if err := gs.dispatchPending(p, pending, submitted); err != nil {
			return err
		}
	}
	return nil
}

// forcedResolution builds the submitted input for a pending whose
// outcome is fully determined, if there is one.
func (gs *GameState) forcedResolution(pending *GameInput) (*GameInput, bool) {
	out := &GameInput{
		InputType:     pending.InputType,
		PrevInputType: pending.PrevInputType,
		PlayerID:      pending.PlayerID,
	}
	switch pending.InputType {
	case InputSelectOptionGeneric:
		if len(pending.Options) == 1 {
			out.ClientOptions.SelectedOption = pending.Options[0]
			return out, true
		}
	case InputSelectPlayer:
		if pending.MustSelectOne && len(pending.PlayerOptions) == 1 {
			out.ClientOptions.SelectedPlayer = pending.PlayerOptions[0]
			return out, true
		}
	case InputSelectWorkerPlacement:
		if pending.MustSelectOne && len(pending.WorkerOptions) == 1 {
			out.ClientOptions.SelectedWorker = pending.WorkerOptions[0].Clone()
			return out, true
		}
	case InputSelectLocation:
		if len(pending.LocationOptions) == 1 {
			out.ClientOptions.SelectedLocation = pending.LocationOptions[0]
			return out, true
		}
	case InputSelectCards:
		if len(pending.CardOptions) == 0 && pending.MinToSelect == 0 {
			out.ClientOptions.SelectedCards = []CardName{}
			return out, true
		}
		if pending.MinToSelect == pending.MaxToSelect &&
			pending.MinToSelect == len(pending.CardOptions) && pending.MinToSelect > 0 {
			out.ClientOptions.SelectedCards = append([]CardName{}, pending.CardOptions...)
			return out, true
		}
	case InputSelectPlayedCards:
		if len(pending.PlayedCardOptions) == 0 && pending.MinToSelect == 0 {
			out.ClientOptions.SelectedPlayedCards = []PlayedCardInfo{}
			return out, true
		}
	case InputSelectResources:
		if pending.MaxResources == 0 {
			out.ClientOptions.Resources = ResourceMap{}
			return out, true
		}
		if pending.SpecificResource != "" && pending.MinResources == pending.MaxResources {
			out.ClientOptions.Resources = ResourceMap{
				pending.SpecificResource: pending.MinResources,
			}
			return out, true
		}
	}
	return nil, false
}
