package game

import (
	"testing"

	"github.com/louisbranch/evermeadow/internal/errors"
)

func TestHandOverflowDiscards(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.CardsInHand = nil
	for i := 0; i < MaxHandSize; i++ {
		p.CardsInHand = append(p.CardsInHand, CardFarm)
	}
	before := gs.DiscardPile.Len()

	p.AddCardToHand(gs, CardKing)
	if len(p.CardsInHand) != MaxHandSize {
		t.Fatalf("the hand stays at %d, got %d", MaxHandSize, len(p.CardsInHand))
	}
	if gs.DiscardPile.Len() != before+1 {
		t.Fatal("the overflow should be discarded")
	}
}

func TestUniqueCardDuplicateRejected(t *testing.T) {
	p := NewPlayer("tester")
	if _, err := p.AddToCity(CardQueen); err != nil {
		t.Fatal(err)
	}
	_, err := p.AddToCity(CardQueen)
	assertCode(t, err, errors.CodeUniqueCardDuplicate)

	// Common cards repeat freely.
	if _, err := p.AddToCity(CardFarm); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddToCity(CardFarm); err != nil {
		t.Fatal(err)
	}
}

func TestCityFull(t *testing.T) {
	p := NewPlayer("tester")
	for i := 0; i < MaxCitySize; i++ {
		if _, err := p.AddToCity(CardFarm); err != nil {
			t.Fatal(err)
		}
	}
	_, err := p.AddToCity(CardMine)
	assertCode(t, err, errors.CodeCityFull)

	// Wanderers never take a space.
	if _, err := p.AddToCity(CardWanderer); err != nil {
		t.Fatalf("the Wanderer should fit anywhere: %v", err)
	}
}

func TestHusbandWifeShareASpace(t *testing.T) {
	p := NewPlayer("tester")
	if _, err := p.AddToCity(CardHusband); err != nil {
		t.Fatal(err)
	}
	if got := p.NumOccupiedSpacesInCity(); got != 1 {
		t.Fatalf("expected 1 space, got %d", got)
	}
	if _, err := p.AddToCity(CardWife); err != nil {
		t.Fatal(err)
	}
	if got := p.NumOccupiedSpacesInCity(); got != 1 {
		t.Fatalf("a pair shares a space, got %d", got)
	}
	if _, err := p.AddToCity(CardWife); err != nil {
		t.Fatal(err)
	}
	if got := p.NumOccupiedSpacesInCity(); got != 2 {
		t.Fatalf("an unpaired wife takes a space, got %d", got)
	}
}

func TestHusbandFitsFullCityWithUnpairedWife(t *testing.T) {
	p := NewPlayer("tester")
	if _, err := p.AddToCity(CardWife); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < MaxCitySize-1; i++ {
		if _, err := p.AddToCity(CardFarm); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := p.AddToCity(CardMine); err == nil {
		t.Fatal("the city should be full")
	}
	if _, err := p.AddToCity(CardHusband); err != nil {
		t.Fatalf("a husband joins an unpaired wife even in a full city: %v", err)
	}
}

func TestRemoveCardFromHand(t *testing.T) {
	p := NewPlayer("tester")
	p.CardsInHand = []CardName{CardFarm, CardMine, CardFarm}

	if err := p.RemoveCardFromHand(CardFarm); err != nil {
		t.Fatal(err)
	}
	if len(p.CardsInHand) != 2 {
		t.Fatal("only one copy should go")
	}
	err := p.RemoveCardFromHand(CardKing)
	assertCode(t, err, errors.CodeCardNotInHand)
}

func TestSpendResourcesRejectsDebt(t *testing.T) {
	p := NewPlayer("tester")
	p.Resources = ResourceMap{ResourceTypeBerry: 1}

	err := p.SpendResources(ResourceMap{ResourceTypeBerry: 2})
	assertCode(t, err, errors.CodeInsufficientResources)
	if p.Resources[ResourceTypeBerry] != 1 {
		t.Fatal("a failed spend should not change anything")
	}
}

func TestSeasonAdvancesWorkerCap(t *testing.T) {
	p := NewPlayer("tester")
	want := []struct {
		season  Season
		workers int
	}{
		{SeasonSpring, 3},
		{SeasonSummer, 4},
		{SeasonAutumn, 6},
	}
	for _, step := range want {
		season, err := p.AdvanceSeason()
		if err != nil {
			t.Fatal(err)
		}
		if season != step.season {
			t.Fatalf("expected %s, got %s", step.season, season)
		}
		if p.NumWorkers != step.workers {
			t.Fatalf("%s should have %d workers, got %d", season, step.workers, p.NumWorkers)
		}
	}
	if _, err := p.AdvanceSeason(); err == nil {
		t.Fatal("there is no season after autumn")
	}
}

func TestPermanentWorkerPlacements(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	cemetary, err := p.AddToCity(CardCemetary)
	if err != nil {
		t.Fatal(err)
	}

	journey := WorkerPlacementInfo{Location: LocationJourneyTwo}
	if p.IsRecallableWorker(journey) {
		t.Fatal("journey workers never come back")
	}
	grave := WorkerPlacementInfo{PlayedCard: cemetary.Clone()}
	if p.IsRecallableWorker(grave) {
		t.Fatal("cemetary workers never come back")
	}
	event := WorkerPlacementInfo{Event: EventThreeTraveler}
	if p.IsRecallableWorker(event) {
		t.Fatal("event workers never come back")
	}
	board := WorkerPlacementInfo{Location: LocationBasicOneBerry}
	if !p.IsRecallableWorker(board) {
		t.Fatal("board workers come back")
	}
}

func TestPointsFromJourney(t *testing.T) {
	p := NewPlayer("tester")
	p.PlacedWorkers = []WorkerPlacementInfo{
		{Location: LocationJourneyFive},
		{Location: LocationJourneyTwo},
	}
	if got := p.PointsFromJourney(); got != 7 {
		t.Fatalf("expected 7 journey points, got %d", got)
	}
}
