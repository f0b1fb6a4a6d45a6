package game

import (
	"testing"

	"github.com/louisbranch/evermeadow/internal/errors"
)

func newPearlbrookGame(t *testing.T) *GameState {
	t.Helper()
	gs, err := NewGame(NewGameInput{
		PlayerNames: []string{"alfred", "bianca"},
		Seed:        42,
		Options:     GameOptions{Pearlbrook: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return gs
}

func TestPlayAdornmentCostsAPearl(t *testing.T) {
	gs := newPearlbrookGame(t)
	p := gs.ActivePlayer()
	p.AdornmentsInHand = []AdornmentName{AdornmentBell}

	_, err := gs.Next(&GameInput{
		InputType: InputPlayAdornment,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Adornment: AdornmentBell,
		},
	})
	assertCode(t, err, errors.CodeInsufficientResources)

	p.Resources = ResourceMap{ResourceTypePearl: 1}
	next, err := gs.Next(&GameInput{
		InputType: InputPlayAdornment,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Adornment: AdornmentBell,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	played, err := next.GetPlayer(p.PlayerID)
	if err != nil {
		t.Fatal(err)
	}
	if played.Resources[ResourceTypePearl] != 0 {
		t.Fatal("the pearl should be spent")
	}
	if played.Resources[ResourceTypeBerry] != 3 {
		t.Fatal("the Bell grants 3 berries")
	}
	if len(played.PlayedAdornments) != 1 || played.PlayedAdornments[0] != AdornmentBell {
		t.Fatal("the Bell should be recorded as played")
	}
}

func TestAdornmentNotInHand(t *testing.T) {
	gs := newPearlbrookGame(t)
	p := gs.ActivePlayer()
	p.AdornmentsInHand = nil
	p.Resources = ResourceMap{ResourceTypePearl: 1}

	_, err := gs.Next(&GameInput{
		InputType: InputPlayAdornment,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Adornment: AdornmentBell,
		},
	})
	assertCode(t, err, errors.CodeAdornmentNotInHand)
}

func TestAdornmentsNeedPearlbrook(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.AdornmentsInHand = []AdornmentName{AdornmentBell}
	p.Resources = ResourceMap{ResourceTypePearl: 1}

	_, err := gs.Next(&GameInput{
		InputType: InputPlayAdornment,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Adornment: AdornmentBell,
		},
	})
	assertCode(t, err, errors.CodeInputUnexpected)
}

func TestScalesDiscardsForResources(t *testing.T) {
	gs := newPearlbrookGame(t)
	p := gs.ActivePlayer()
	p.AdornmentsInHand = []AdornmentName{AdornmentScales}
	p.Resources = ResourceMap{ResourceTypePearl: 1}
	p.CardsInHand = []CardName{CardFarm, CardMine}

	next, err := gs.Next(&GameInput{
		InputType: InputPlayAdornment,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Adornment: AdornmentScales,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	pending := next.PendingGameInputs()
	if len(pending) != 1 || pending[0].InputType != InputDiscardCards {
		t.Fatalf("expected a discard prompt, got %v", pending)
	}

	mid, err := next.Next(&GameInput{
		InputType:        InputDiscardCards,
		PrevInputType:    InputPlayAdornment,
		PlayerID:         p.PlayerID,
		AdornmentContext: AdornmentScales,
		ClientOptions: ClientOptions{
			CardsToDiscard: []CardName{CardFarm, CardMine},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	pending = mid.PendingGameInputs()
	if len(pending) != 1 || pending[0].InputType != InputSelectResources {
		t.Fatalf("expected a resource gain, got %v", pending)
	}
	if pending[0].MinResources != 2 || pending[0].MaxResources != 2 {
		t.Fatal("two discards are worth 2 ANY")
	}

	final, err := mid.Next(&GameInput{
		InputType:        InputSelectResources,
		PrevInputType:    InputDiscardCards,
		PlayerID:         p.PlayerID,
		AdornmentContext: AdornmentScales,
		ClientOptions: ClientOptions{
			Resources: ResourceMap{ResourceTypeTwig: 2},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	weighed, err := final.GetPlayer(p.PlayerID)
	if err != nil {
		t.Fatal(err)
	}
	if weighed.Resources[ResourceTypeTwig] != 2 {
		t.Fatalf("expected 2 twigs, got %v", weighed.Resources)
	}
}

func TestAdornmentPoints(t *testing.T) {
	gs := newPearlbrookGame(t)
	p := gs.ActivePlayer()
	for _, c := range []CardName{CardFarm, CardMine, CardCastle, CardInn} {
		if _, err := p.AddToCity(c); err != nil {
			t.Fatal(err)
		}
	}

	// Key to the City: 1 per 2 constructions (4 constructions).
	key := mustAdornment(AdornmentKeyToTheCity)
	if got := key.GetPoints(gs, p.PlayerID); got != 2 {
		t.Fatalf("expected 2 from the Key, got %d", got)
	}

	// Tiara: 1 per prosperity (the Castle).
	tiara := mustAdornment(AdornmentTiara)
	if got := tiara.GetPoints(gs, p.PlayerID); got != 1 {
		t.Fatalf("expected 1 from the Tiara, got %d", got)
	}

	// Hourglass: 1 per destination (the Inn).
	hourglass := mustAdornment(AdornmentHourglass)
	if got := hourglass.GetPoints(gs, p.PlayerID); got != 1 {
		t.Fatalf("expected 1 from the Hourglass, got %d", got)
	}

	p.PlayedAdornments = []AdornmentName{AdornmentTiara}
	if got := p.PointsFromAdornments(gs); got != 1 {
		t.Fatalf("expected 1 adornment point, got %d", got)
	}
}

func TestSpyglassPointsPerWonder(t *testing.T) {
	gs := newPearlbrookGame(t)
	p := gs.ActivePlayer()
	p.PlayedAdornments = []AdornmentName{AdornmentSpyglass}

	if got := p.PointsFromAdornments(gs); got != 0 {
		t.Fatalf("expected 0 without wonders, got %d", got)
	}

	// Basic and special events do not count.
	p.ClaimedEvents = append(p.ClaimedEvents, EventFourProductionTags,
		EventName("SPECIAL_GRADUATION_OF_SCHOLARS"))
	if got := p.PointsFromAdornments(gs); got != 0 {
		t.Fatalf("expected 0 without wonders, got %d", got)
	}

	p.ClaimedEvents = append(p.ClaimedEvents, EventName("WONDER_SUNBLAZE_BRIDGE"))
	if got := p.PointsFromAdornments(gs); got != 3 {
		t.Fatalf("expected 3 for one wonder, got %d", got)
	}
	p.ClaimedEvents = append(p.ClaimedEvents, EventName("WONDER_STARFALLS_FLAME"))
	if got := p.PointsFromAdornments(gs); got != 6 {
		t.Fatalf("expected 6 for two wonders, got %d", got)
	}
}
