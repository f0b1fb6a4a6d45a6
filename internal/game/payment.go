package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// CardDiscount is the discount mode a payment runs under.
type CardDiscount string

const (
	DiscountNone       CardDiscount = ""
	DiscountBerryThree CardDiscount = "BERRY 3"
	DiscountAnyThree   CardDiscount = "ANY 3"
	DiscountAnyOne     CardDiscount = "ANY 1"
)

func (d CardDiscount) wildcardCap() int {
	switch d {
	case DiscountAnyThree:
		return 3
	case DiscountAnyOne:
		return 1
	default:
		return 0
	}
}

// ValidatePaidResources checks a payment vector against a cost under a
// discount mode. The BERRY discount comes off the berry cost first, then
// per-type shortfall and excess accumulate. A wildcard discount covers
// shortfall up to its cap, but paying anything while the payment plus
// the cap exceeds the full cost wastes the discount and counts as
// overpay. With no discount active, a JUDGE in the city substitutes for
// a shortfall of exactly one unit: one unit of a non-owed type must be
// paid in its place, and more than one is overpay. Overpay is rejected
// unless errorIfOverpay is false.
func (p *Player) ValidatePaidResources(paid, cost ResourceMap, discount CardDiscount, errorIfOverpay bool) error {
	needToPaySum, paidSum := 0, 0
	for _, rt := range PaymentResourceTypes {
		needToPaySum += cost[rt]
		paidSum += paid[rt]
	}

	owed := ResourceMap{}
	for _, rt := range PaymentResourceTypes {
		owed[rt] = cost[rt]
	}
	if discount == DiscountBerryThree {
		owed[ResourceTypeBerry] -= 3
		if owed[ResourceTypeBerry] < 0 {
			owed[ResourceTypeBerry] = 0
		}
	}

	shortfall, excess := 0, 0
	for _, rt := range PaymentResourceTypes {
		diff := owed[rt] - paid[rt]
		if diff > 0 {
			shortfall += diff
		} else {
			excess -= diff
		}
	}

	overpay := errors.New(errors.CodePaymentOverpaid, "cannot overpay for card")

	if wild := discount.wildcardCap(); wild > 0 {
		if shortfall <= wild {
			if errorIfOverpay && paidSum != 0 && paidSum+wild > needToPaySum {
				return overpay
			}
			return nil
		}
	} else if discount == DiscountNone && p.HasCardInCity(CardJudge) &&
		shortfall == 1 && excess >= 1 {
		if errorIfOverpay && excess != 1 {
			return overpay
		}
		return nil
	}

	if shortfall == 0 && excess != 0 && errorIfOverpay {
		return overpay
	}
	if shortfall != 0 {
		return errors.WithMetadata(errors.CodeInsufficientResources,
			"insufficient resources paid",
			map[string]string{
				"shortfall": fmt.Sprintf("%d", shortfall),
			})
	}
	return nil
}

// dungeonCellAvailable reports whether the player's DUNGEON has a free
// cell. RANGER unlocks the second cell.
func (p *Player) dungeonCellAvailable() bool {
	dungeon, err := p.FirstPlayedCard(CardDungeon)
	if err != nil {
		return false
	}
	cells := 1
	if p.HasCardInCity(CardRanger) {
		cells = 2
	}
	return len(dungeon.PairedCards) < cells
}

// unusedAssociatedConstruction finds the first construction that can host
// the critter for free: its own construction, or an EVERTREE.
func (p *Player) unusedAssociatedConstruction(critter CardName) *PlayedCardInfo {
	for _, pc := range p.PlayedCards {
		card := mustCard(pc.CardName)
		if !card.IsConstruction || pc.UsedForCritter == nil || *pc.UsedForCritter {
			continue
		}
		if card.AssociatedCard == critter || pc.CardName == CardEvertree {
			return pc
		}
	}
	return nil
}

// CanAffordCard reports whether any payment path covers the card.
func (p *Player) CanAffordCard(c CardName, fromMeadow bool) bool {
	card, err := CardFromName(c)
	if err != nil {
		return false
	}
	if c == CardRuins {
		return true
	}
	if !card.IsConstruction && p.unusedAssociatedConstruction(c) != nil {
		return true
	}
	if card.BaseVP <= 3 && p.HasCardInCity(CardQueen) && p.NumAvailableWorkers() > 0 {
		if queen, err := p.FirstPlayedCard(CardQueen); err == nil &&
			len(queen.Workers) < mustCard(CardQueen).MaxWorkerSpots {
			return true
		}
	}
	check := func(discount CardDiscount) bool {
		return p.ValidatePaidResources(p.Resources, card.BaseCost, discount, false) == nil
	}
	if check(DiscountNone) {
		return true
	}
	if card.IsConstruction && p.HasCardInCity(CardCrane) && check(DiscountAnyThree) {
		return true
	}
	if !card.IsConstruction && p.HasCardInCity(CardInnkeeper) && check(DiscountBerryThree) {
		return true
	}
	if !card.IsConstruction && p.dungeonCellAvailable() && p.hasDungeonableCritter() && check(DiscountAnyThree) {
		return true
	}
	return false
}

func (p *Player) hasDungeonableCritter() bool {
	for _, pc := range p.PlayedCards {
		card := mustCard(pc.CardName)
		if !card.IsConstruction && pc.CardName != CardWanderer {
			return true
		}
	}
	return false
}

// PayForCard validates and applies the payment for the card named in the
// input's client options, including the side effects of cardToUse,
// cardToDungeon and useAssociatedCard.
func (p *Player) PayForCard(gs *GameState, input *GameInput) error {
	c := input.ClientOptions.Card
	card, err := CardFromName(c)
	if err != nil {
		return err
	}
	po := input.ClientOptions.PaymentOptions
	if po == nil {
		po = &PaymentOptions{Resources: ResourceMap{}}
	}
	paid := po.Resources
	if paid == nil {
		paid = ResourceMap{}
	}

	if po.UseAssociatedCard {
		host := p.unusedAssociatedConstruction(c)
		if host == nil {
			return errors.WithMetadata(errors.CodeInvalidPayment,
				fmt.Sprintf("no unoccupied construction to play %s for free", c),
				map[string]string{"card": string(c)})
		}
		if err := p.ValidatePaidResources(paid, ResourceMap{}, DiscountNone, true); err != nil {
			return err
		}
		host.UsedForCritter = boolPtr(true)
		return nil
	}

	discount := DiscountNone
	var consume *PlayedCardInfo
	var dungeonTarget *PlayedCardInfo

	switch {
	case po.CardToDungeon != "":
		if !p.dungeonCellAvailable() {
			return errors.New(errors.CodeInvalidPayment, "no open dungeon cell")
		}
		target, err := p.FirstPlayedCard(po.CardToDungeon)
		if err != nil {
			return err
		}
		if mustCard(po.CardToDungeon).IsConstruction {
			return errors.WithMetadata(errors.CodeInvalidPayment,
				fmt.Sprintf("cannot dungeon %s: not a critter", po.CardToDungeon),
				map[string]string{"card": string(po.CardToDungeon)})
		}
		dungeonTarget = target
		discount = DiscountAnyThree

	case po.CardToUse == CardCrane:
		if !card.IsConstruction {
			return errors.WithMetadata(errors.CodeInvalidPayment,
				fmt.Sprintf("cannot use Crane to play %s: not a construction", c),
				map[string]string{"card": string(c)})
		}
		crane, err := p.FirstPlayedCard(CardCrane)
		if err != nil {
			return err
		}
		consume = crane
		discount = DiscountAnyThree

	case po.CardToUse == CardInnkeeper:
		if card.IsConstruction {
			return errors.WithMetadata(errors.CodeInvalidPayment,
				fmt.Sprintf("cannot use Innkeeper to play %s: not a critter", c),
				map[string]string{"card": string(c)})
		}
		innkeeper, err := p.FirstPlayedCard(CardInnkeeper)
		if err != nil {
			return err
		}
		consume = innkeeper
		discount = DiscountBerryThree

	case po.CardToUse == CardQueen:
		if card.BaseVP > 3 {
			return errors.WithMetadata(errors.CodeInvalidPayment,
				fmt.Sprintf("cannot use Queen to play %s", c),
				map[string]string{"card": string(c)})
		}
		return nil

	case po.CardToUse == CardInn:
		discount = DiscountAnyThree

	case po.CardToUse != "":
		return errors.WithMetadata(errors.CodeInvalidPayment,
			fmt.Sprintf("cannot pay with %s", po.CardToUse),
			map[string]string{"card": string(po.CardToUse)})
	}

	if err := p.ValidatePaidResources(paid, card.BaseCost, discount, true); err != nil {
		return err
	}
	if err := p.SpendResources(paid); err != nil {
		return err
	}
	if consume != nil {
		if err := p.RemoveCardFromCity(gs, consume, true); err != nil {
			return err
		}
	}
	if dungeonTarget != nil {
		dungeon, err := p.FirstPlayedCard(CardDungeon)
		if err != nil {
			return err
		}
		if err := p.RemoveCardFromCity(gs, dungeonTarget, false); err != nil {
			return err
		}
		dungeon.PairedCards = append(dungeon.PairedCards, dungeonTarget.CardName)
	}
	return nil
}
