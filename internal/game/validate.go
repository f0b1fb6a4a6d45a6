package game

import (
	"fmt"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// Selection validators compare a caller's client options against the
// option sets recorded on the pending input. The pending side is
// authoritative; submitted option lists are ignored.

func validateSelectedCardNames(pending *GameInput, selected []CardName) error {
	if len(selected) > pending.MaxToSelect {
		return errors.New(errors.CodeSelectionCountBounds, "too many cards selected")
	}
	if len(selected) < pending.MinToSelect {
		return errors.New(errors.CodeSelectionCountBounds, "too few cards selected")
	}
	remaining := append([]CardName{}, pending.CardOptions...)
	for _, c := range selected {
		found := false
		for i, opt := range remaining {
			if opt == c {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return errors.WithMetadata(errors.CodeSelectionNotAllowed,
				fmt.Sprintf("cannot find selected card %s", c),
				map[string]string{"card": string(c)})
		}
	}
	return nil
}

func validateSelectedPlayedCards(pending *GameInput, selected []PlayedCardInfo) error {
	if len(selected) > pending.MaxToSelect {
		return errors.New(errors.CodeSelectionCountBounds, "too many cards selected")
	}
	if len(selected) < pending.MinToSelect {
		return errors.New(errors.CodeSelectionCountBounds, "too few cards selected")
	}
	for i := range selected {
		sel := &selected[i]
		found := false
		for j := range pending.PlayedCardOptions {
			if pending.PlayedCardOptions[j].Matches(sel) {
				found = true
				break
			}
		}
		if !found {
			return errors.WithMetadata(errors.CodeSelectionNotAllowed,
				fmt.Sprintf("cannot find selected card %s", sel.CardName),
				map[string]string{"card": string(sel.CardName)})
		}
	}
	return nil
}

func validateDiscardedCards(pending *GameInput, p *Player, cards []CardName) error {
	if len(cards) > pending.MaxCards {
		return errors.New(errors.CodeSelectionCountBounds, "too many cards to discard")
	}
	if len(cards) < pending.MinCards {
		return errors.New(errors.CodeSelectionCountBounds, "too few cards to discard")
	}
	remaining := append([]CardName{}, p.CardsInHand...)
	for _, c := range cards {
		found := false
		for i, hc := range remaining {
			if hc == c {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return errors.WithMetadata(errors.CodeCardNotInHand,
				fmt.Sprintf("unable to discard %s: not in hand", c),
				map[string]string{"card": string(c)})
		}
	}
	return nil
}

func validateSelectedResources(pending *GameInput, p *Player, rm ResourceMap) error {
	total := rm.Count()
	if total > pending.MaxResources {
		return errors.New(errors.CodeSelectionCountBounds, "too many resources selected")
	}
	if total < pending.MinResources {
		return errors.New(errors.CodeSelectionCountBounds, "too few resources selected")
	}
	if pending.SpecificResource != "" {
		for rt := range rm {
			if rm[rt] > 0 && rt != pending.SpecificResource {
				return errors.WithMetadata(errors.CodeSelectionNotAllowed,
					fmt.Sprintf("only %s may be selected", pending.SpecificResource),
					map[string]string{"resource": string(rt)})
			}
		}
	}
	if pending.ToSpend {
		for rt, n := range rm {
			if p.Resources[rt] < n {
				return errors.WithMetadata(errors.CodeInsufficientResources,
					fmt.Sprintf("insufficient %s", rt),
					map[string]string{"resource": string(rt)})
			}
		}
	}
	return nil
}

func validateSelectedPlayer(pending *GameInput, playerID string) error {
	if playerID == "" {
		if pending.MustSelectOne {
			return errors.New(errors.CodeSelectionCountBounds, "a player must be selected")
		}
		return nil
	}
	for _, id := range pending.PlayerOptions {
		if id == playerID {
			return nil
		}
	}
	return errors.New(errors.CodeSelectionNotAllowed, "invalid player selected")
}

func validateSelectedOption(pending *GameInput, opt string) error {
	for _, o := range pending.Options {
		if o == opt {
			return nil
		}
	}
	return errors.WithMetadata(errors.CodeSelectionNotAllowed,
		fmt.Sprintf("invalid option selected: %s", opt),
		map[string]string{"option": opt})
}

func validateSelectedLocation(pending *GameInput, loc LocationName) error {
	for _, l := range pending.LocationOptions {
		if l == loc {
			return nil
		}
	}
	return errors.WithMetadata(errors.CodeSelectionNotAllowed,
		fmt.Sprintf("invalid location selected: %s", loc),
		map[string]string{"location": string(loc)})
}

func validateSelectedWorker(pending *GameInput, w *WorkerPlacementInfo) error {
	if w == nil {
		if pending.MustSelectOne {
			return errors.New(errors.CodeSelectionCountBounds, "a worker placement must be selected")
		}
		return nil
	}
	for i := range pending.WorkerOptions {
		if pending.WorkerOptions[i].Matches(w) {
			return nil
		}
	}
	return errors.New(errors.CodeSelectionNotAllowed, "invalid worker placement selected")
}

func removeOneCard(list []CardName, c CardName) []CardName {
	for i, v := range list {
		if v == c {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
