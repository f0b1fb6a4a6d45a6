package game

import (
	stderrors "errors"
	"testing"

	"github.com/louisbranch/evermeadow/internal/errors"
)

func assertCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if e.Code != code {
		t.Fatalf("expected code %s, got %s: %v", code, e.Code, err)
	}
}

func TestValidatePaidResources(t *testing.T) {
	farmCost := ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 1}
	kingCost := ResourceMap{ResourceTypeBerry: 6}

	tests := []struct {
		name     string
		paid     ResourceMap
		cost     ResourceMap
		discount CardDiscount
		judge    bool
		overpay  bool
		wantCode errors.Code
	}{
		{
			name: "exact payment",
			paid: ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 1},
			cost: farmCost,
		},
		{
			name:     "short one twig",
			paid:     ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1},
			cost:     farmCost,
			wantCode: errors.CodeInsufficientResources,
		},
		{
			name:     "nothing paid",
			paid:     ResourceMap{},
			cost:     farmCost,
			wantCode: errors.CodeInsufficientResources,
		},
		{
			name:     "berry discount covers three berries",
			paid:     ResourceMap{ResourceTypeBerry: 3},
			cost:     kingCost,
			discount: DiscountBerryThree,
		},
		{
			name:     "berry discount does not cover other types",
			paid:     ResourceMap{},
			cost:     farmCost,
			discount: DiscountBerryThree,
			wantCode: errors.CodeInsufficientResources,
		},
		{
			name:     "wildcard three absorbs mixed shortfall",
			paid:     ResourceMap{},
			cost:     farmCost,
			discount: DiscountAnyThree,
		},
		{
			name:     "wildcard three caps at three",
			paid:     ResourceMap{ResourceTypeBerry: 2},
			cost:     kingCost,
			discount: DiscountAnyThree,
			wantCode: errors.CodeInsufficientResources,
		},
		{
			name:     "wildcard one",
			paid:     ResourceMap{ResourceTypeTwig: 2},
			cost:     farmCost,
			discount: DiscountAnyOne,
		},
		{
			name:  "judge swaps a single resource",
			paid:  ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 2},
			cost:  farmCost,
			judge: true,
		},
		{
			name:    "judge substitution is not overpay",
			paid:    ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 2},
			cost:    farmCost,
			judge:   true,
			overpay: true,
		},
		{
			name:     "judge requires a substituted unit",
			paid:     ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 1},
			cost:     farmCost,
			judge:    true,
			overpay:  true,
			wantCode: errors.CodeInsufficientResources,
		},
		{
			name:     "judge swap of two units is overpay",
			paid:     ResourceMap{ResourceTypeTwig: 1, ResourceTypeResin: 3},
			cost:     farmCost,
			judge:    true,
			overpay:  true,
			wantCode: errors.CodePaymentOverpaid,
		},
		{
			name:     "judge cannot cover two",
			paid:     ResourceMap{ResourceTypeResin: 3},
			cost:     farmCost,
			judge:    true,
			wantCode: errors.CodeInsufficientResources,
		},
		{
			name:     "wildcard wasted payment is overpay",
			paid:     ResourceMap{ResourceTypeTwig: 2},
			cost:     ResourceMap{ResourceTypeTwig: 4},
			discount: DiscountAnyThree,
			overpay:  true,
			wantCode: errors.CodePaymentOverpaid,
		},
		{
			name:     "wildcard plus payment covering the cost exactly",
			paid:     ResourceMap{ResourceTypeTwig: 1},
			cost:     ResourceMap{ResourceTypeTwig: 4},
			discount: DiscountAnyThree,
			overpay:  true,
		},
		{
			name:     "wildcard alone covers without overpay",
			paid:     ResourceMap{},
			cost:     ResourceMap{ResourceTypeTwig: 3},
			discount: DiscountAnyThree,
			overpay:  true,
		},
		{
			name:     "overpay rejected",
			paid:     ResourceMap{ResourceTypeTwig: 3, ResourceTypeResin: 1},
			cost:     farmCost,
			overpay:  true,
			wantCode: errors.CodePaymentOverpaid,
		},
		{
			name:    "overpay allowed when not enforced",
			paid:    ResourceMap{ResourceTypeTwig: 3, ResourceTypeResin: 1},
			cost:    farmCost,
			overpay: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer("tester")
			if tc.judge {
				if _, err := p.AddToCity(CardJudge); err != nil {
					t.Fatal(err)
				}
			}
			err := p.ValidatePaidResources(tc.paid, tc.cost, tc.discount, tc.overpay)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertCode(t, err, tc.wantCode)
		})
	}
}

func TestCanAffordCard(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()

	if p.CanAffordCard(CardFarm, false) {
		t.Fatal("should not afford a Farm with no resources")
	}
	p.Resources = ResourceMap{ResourceTypeTwig: 2, ResourceTypeResin: 1}
	if !p.CanAffordCard(CardFarm, false) {
		t.Fatal("should afford a Farm with its printed cost")
	}

	// Ruins costs nothing.
	if !p.CanAffordCard(CardRuins, false) {
		t.Fatal("Ruins should always be affordable")
	}

	// A matching unused construction makes the critter free.
	p.Resources = ResourceMap{}
	if p.CanAffordCard(CardKing, false) {
		t.Fatal("should not afford the King")
	}
	if _, err := p.AddToCity(CardCastle); err != nil {
		t.Fatal(err)
	}
	if !p.CanAffordCard(CardKing, false) {
		t.Fatal("the Castle should make the King free")
	}
}

func TestCanAffordCardWithQueen(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.Resources = ResourceMap{}

	if p.CanAffordCard(CardWanderer, false) {
		t.Fatal("should not afford the Wanderer without the Queen")
	}
	queen, err := p.AddToCity(CardQueen)
	if err != nil {
		t.Fatal(err)
	}
	if !p.CanAffordCard(CardWanderer, false) {
		t.Fatal("the Queen should make low-point cards affordable")
	}
	if p.CanAffordCard(CardKing, false) {
		t.Fatal("the Queen only plays cards worth up to 3 points")
	}

	// An occupied Queen cannot be visited again.
	queen.Workers = append(queen.Workers, p.PlayerID)
	if p.CanAffordCard(CardWanderer, false) {
		t.Fatal("an occupied Queen should not grant free plays")
	}
}

func TestPayForCardWithCrane(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.Resources = ResourceMap{}
	if _, err := p.AddToCity(CardCrane); err != nil {
		t.Fatal(err)
	}

	err := p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardFarm,
			PaymentOptions: &PaymentOptions{
				Resources: ResourceMap{},
				CardToUse: CardCrane,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HasCardInCity(CardCrane) {
		t.Fatal("the Crane should be consumed")
	}

	// The Crane only discounts constructions.
	if _, err := p.AddToCity(CardCrane); err != nil {
		t.Fatal(err)
	}
	err = p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardWanderer,
			PaymentOptions: &PaymentOptions{
				Resources: ResourceMap{},
				CardToUse: CardCrane,
			},
		},
	})
	assertCode(t, err, errors.CodeInvalidPayment)
}

func TestPayForCardWithInnkeeper(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.Resources = ResourceMap{}
	if _, err := p.AddToCity(CardInnkeeper); err != nil {
		t.Fatal(err)
	}

	err := p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardWanderer,
			PaymentOptions: &PaymentOptions{
				Resources: ResourceMap{},
				CardToUse: CardInnkeeper,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HasCardInCity(CardInnkeeper) {
		t.Fatal("the Innkeeper should be consumed")
	}
}

func TestPayForCardWithQueen(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.Resources = ResourceMap{}
	if _, err := p.AddToCity(CardQueen); err != nil {
		t.Fatal(err)
	}

	input := func(c CardName) *GameInput {
		return &GameInput{
			InputType: InputPlayCard,
			PlayerID:  p.PlayerID,
			ClientOptions: ClientOptions{
				Card: c,
				PaymentOptions: &PaymentOptions{
					Resources: ResourceMap{},
					CardToUse: CardQueen,
				},
			},
		}
	}

	if err := p.PayForCard(gs, input(CardWanderer)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The Queen only plays cards worth up to 3 points.
	assertCode(t, p.PayForCard(gs, input(CardKing)), errors.CodeInvalidPayment)
	if !p.HasCardInCity(CardQueen) {
		t.Fatal("the Queen should stay in the city")
	}
}

func TestPayForCardWithDungeon(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.Resources = ResourceMap{}
	if _, err := p.AddToCity(CardDungeon); err != nil {
		t.Fatal(err)
	}
	wanderer, err := p.AddToCity(CardWanderer)
	if err != nil {
		t.Fatal(err)
	}

	err = p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardFarm,
			PaymentOptions: &PaymentOptions{
				Resources:     ResourceMap{},
				CardToDungeon: wanderer.CardName,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HasCardInCity(CardWanderer) {
		t.Fatal("the Wanderer should be locked in the dungeon")
	}
	dungeon, err := p.FirstPlayedCard(CardDungeon)
	if err != nil {
		t.Fatal(err)
	}
	if len(dungeon.PairedCards) != 1 || dungeon.PairedCards[0] != CardWanderer {
		t.Fatalf("expected the Wanderer in the dungeon, got %v", dungeon.PairedCards)
	}

	// Only one cell without a Ranger.
	mine, err := p.AddToCity(CardMonk)
	if err != nil {
		t.Fatal(err)
	}
	err = p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardFarm,
			PaymentOptions: &PaymentOptions{
				Resources:     ResourceMap{},
				CardToDungeon: mine.CardName,
			},
		},
	})
	assertCode(t, err, errors.CodeInvalidPayment)
}

func TestPayForCardAssociatedConstruction(t *testing.T) {
	gs := newTestGame(t, 2)
	p := gs.ActivePlayer()
	p.Resources = ResourceMap{}
	farm, err := p.AddToCity(CardFarm)
	if err != nil {
		t.Fatal(err)
	}

	err = p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardHusband,
			PaymentOptions: &PaymentOptions{
				Resources:         ResourceMap{},
				UseAssociatedCard: true,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if farm.UsedForCritter == nil || !*farm.UsedForCritter {
		t.Fatal("the Farm should be marked as used")
	}

	// The marked construction cannot host a second critter.
	err = p.PayForCard(gs, &GameInput{
		InputType: InputPlayCard,
		PlayerID:  p.PlayerID,
		ClientOptions: ClientOptions{
			Card: CardHusband,
			PaymentOptions: &PaymentOptions{
				Resources:         ResourceMap{},
				UseAssociatedCard: true,
			},
		},
	})
	assertCode(t, err, errors.CodeInvalidPayment)
}
