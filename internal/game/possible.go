package game

// allLocationNamesOrdered returns the board's locations in a stable
// display order.
func (gs *GameState) allLocationNamesOrdered() []LocationName {
	var out []LocationName
	appendPresent := func(names []LocationName) {
		for _, name := range names {
			if _, ok := gs.LocationsMap[name]; ok {
				out = append(out, name)
			}
		}
	}
	appendPresent(BasicLocationNames())
	appendPresent([]LocationName{LocationHaven})
	appendPresent(ForestLocationNames())
	appendPresent(JourneyLocationNames())
	return out
}

// PlayableLocationsFor lists the locations the player could use.
// checkWorker also enforces occupancy and worker availability, which
// copy effects ignore.
func (gs *GameState) PlayableLocationsFor(p *Player, checkWorker bool) []LocationName {
	if checkWorker && p.NumAvailableWorkers() <= 0 {
		return nil
	}
	var out []LocationName
	for _, name := range gs.allLocationNamesOrdered() {
		loc := mustLocation(name)
		if loc.CanPlay(gs, p) != nil {
			continue
		}
		if checkWorker {
			workers := gs.LocationsMap[name]
			if loc.Occupancy == OccupancyExclusive && len(workers) > 0 {
				continue
			}
			if loc.Occupancy == OccupancyExclusiveFour {
				taken := false
				for _, pid := range workers {
					if pid == p.PlayerID {
						taken = true
						break
					}
				}
				if taken {
					continue
				}
			}
		}
		out = append(out, name)
	}
	return out
}

// PlayableLocations lists the locations open to the active player.
func (gs *GameState) PlayableLocations() []LocationName {
	p := gs.ActivePlayer()
	if p == nil {
		return nil
	}
	return gs.PlayableLocationsFor(p, true)
}

// visitableDestinations lists the destination cards the player could
// send a worker to, across all cities.
func (gs *GameState) visitableDestinations(p *Player) []*PlayedCardInfo {
	var out []*PlayedCardInfo
	for _, owner := range gs.Players {
		for _, pc := range owner.PlayedCards {
			card := mustCard(pc.CardName)
			if card.onVisit == nil || card.MaxWorkerSpots == 0 {
				continue
			}
			if owner.PlayerID != p.PlayerID && !card.IsOpenDestination {
				continue
			}
			if len(pc.Workers) >= card.WorkerSpots(owner) {
				continue
			}
			out = append(out, pc)
		}
	}
	return out
}

// claimableEvents lists the unclaimed events the player qualifies for.
func (gs *GameState) claimableEvents(p *Player) []EventName {
	var out []EventName
	for _, name := range BasicEventNames() {
		claimer, open := gs.EventsMap[name]
		if !open || claimer != "" {
			continue
		}
		ev, err := EventFromName(name)
		if err != nil {
			continue
		}
		if ev.CanClaim(p) == nil {
			out = append(out, name)
		}
	}
	return out
}

// PossibleGameInputs enumerates the inputs the active player could
// submit right now. With follow-ups pending it returns those instead.
func (gs *GameState) PossibleGameInputs() []*GameInput {
	p := gs.ActivePlayer()
	if p == nil || gs.IsGameOver() {
		return nil
	}

	// Queued inputs resolve front-first, so only the head is offered.
	if len(gs.PendingInputs) > 0 {
		return []*GameInput{gs.PendingInputs[0].Clone()}
	}

	var out []*GameInput

	for _, c := range p.CardsInHand {
		if !gs.cardIsPlayable(p, c, false) {
			continue
		}
		out = append(out, &GameInput{
			InputType: InputPlayCard,
			PlayerID:  p.PlayerID,
			ClientOptions: ClientOptions{
				Card: c,
			},
		})
	}
	for _, c := range gs.Meadow {
		if !gs.cardIsPlayable(p, c, true) {
			continue
		}
		out = append(out, &GameInput{
			InputType: InputPlayCard,
			PlayerID:  p.PlayerID,
			ClientOptions: ClientOptions{
				Card:       c,
				FromMeadow: true,
			},
		})
	}

	for _, name := range gs.PlayableLocationsFor(p, true) {
		out = append(out, &GameInput{
			InputType: InputPlaceWorker,
			PlayerID:  p.PlayerID,
			ClientOptions: ClientOptions{
				Location: name,
			},
		})
	}

	if p.NumAvailableWorkers() > 0 {
		for _, pc := range gs.visitableDestinations(p) {
			out = append(out, &GameInput{
				InputType: InputVisitDestinationCard,
				PlayerID:  p.PlayerID,
				ClientOptions: ClientOptions{
					PlayedCard: pc.Clone(),
				},
			})
		}
		for _, name := range gs.claimableEvents(p) {
			out = append(out, &GameInput{
				InputType: InputClaimEvent,
				PlayerID:  p.PlayerID,
				ClientOptions: ClientOptions{
					Event: name,
				},
			})
		}
	}

	if gs.Options.Pearlbrook && p.Resources[ResourceTypePearl] > 0 {
		for _, name := range p.AdornmentsInHand {
			out = append(out, &GameInput{
				InputType: InputPlayAdornment,
				PlayerID:  p.PlayerID,
				ClientOptions: ClientOptions{
					Adornment: name,
				},
			})
		}
	}

	if p.CurrentSeason != SeasonAutumn {
		out = append(out, &GameInput{
			InputType: InputPrepareForSeason,
			PlayerID:  p.PlayerID,
		})
	} else {
		out = append(out, &GameInput{
			InputType: InputGameEnd,
			PlayerID:  p.PlayerID,
		})
	}

	return out
}

func (gs *GameState) cardIsPlayable(p *Player, c CardName, fromMeadow bool) bool {
	card, err := CardFromName(c)
	if err != nil {
		return false
	}
	if card.canPlay != nil && card.canPlay(gs, p) != nil {
		return false
	}
	if c == CardFool {
		ok := false
		for _, other := range gs.Players {
			if other.PlayerID != p.PlayerID && other.CanAddToCity(CardFool) == nil {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	} else if c != CardRuins && p.CanAddToCity(c) != nil {
		return false
	}
	return p.CanAffordCard(c, fromMeadow)
}
