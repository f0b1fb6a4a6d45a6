package game

import (
	"encoding/json"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// The wire shape of a few keys depends on the input type: cardOptions
// and clientOptions.selectedCards hold card names for SELECT_CARDS but
// played-card objects for SELECT_PLAYED_CARDS; options/selectedOption
// hold strings for SELECT_OPTION_GENERIC but worker placements for
// SELECT_WORKER_PLACEMENT; clientOptions.adornment is a single name for
// PLAY_ADORNMENT but a list for SELECT_PLAYED_ADORNMENT. Both codecs
// branch on inputType to keep those exact shapes.

type clientOptionsWire struct {
	Card           CardName        `json:"card,omitempty"`
	FromMeadow     bool            `json:"fromMeadow,omitempty"`
	PaymentOptions *PaymentOptions `json:"paymentOptions,omitempty"`
	PlayedCard     *PlayedCardInfo `json:"playedCard,omitempty"`
	Location       LocationName    `json:"location,omitempty"`
	Event          EventName       `json:"event,omitempty"`

	Adornment      json.RawMessage `json:"adornment,omitempty"`
	SelectedCards  json.RawMessage `json:"selectedCards,omitempty"`
	SelectedOption json.RawMessage `json:"selectedOption,omitempty"`

	CardsToDiscard   []CardName   `json:"cardsToDiscard,omitempty"`
	Resources        ResourceMap  `json:"resources,omitempty"`
	SelectedPlayer   string       `json:"selectedPlayer,omitempty"`
	SelectedLocation LocationName `json:"selectedLocation,omitempty"`
}

type gameInputWire struct {
	InputType     GameInputType   `json:"inputType"`
	PrevInputType GameInputType   `json:"prevInputType,omitempty"`
	PrevInput     json.RawMessage `json:"prevInput,omitempty"`
	PlayerID      string          `json:"playerId,omitempty"`
	Label         string          `json:"label,omitempty"`

	CardContext       CardName        `json:"cardContext,omitempty"`
	LocationContext   LocationName    `json:"locationContext,omitempty"`
	EventContext      EventName       `json:"eventContext,omitempty"`
	AdornmentContext  AdornmentName   `json:"adornmentContext,omitempty"`
	PlayedCardContext *PlayedCardInfo `json:"playedCardContext,omitempty"`

	Card                  CardName        `json:"card,omitempty"`
	CardOptions           json.RawMessage `json:"cardOptions,omitempty"`
	CardOptionsUnfiltered []CardName      `json:"cardOptionsUnfiltered,omitempty"`
	PlayerOptions         []string        `json:"playerOptions,omitempty"`
	LocationOptions       []LocationName  `json:"locationOptions,omitempty"`
	AdornmentOptions      []AdornmentName `json:"adornmentOptions,omitempty"`
	Options               json.RawMessage `json:"options,omitempty"`

	MaxToSelect             int          `json:"maxToSelect,omitempty"`
	MinToSelect             int          `json:"minToSelect,omitempty"`
	MinCards                int          `json:"minCards,omitempty"`
	MaxCards                int          `json:"maxCards,omitempty"`
	MaxResources            int          `json:"maxResources,omitempty"`
	MinResources            int          `json:"minResources,omitempty"`
	SpecificResource        ResourceType `json:"specificResource,omitempty"`
	ToSpend                 *bool        `json:"toSpend,omitempty"`
	MustSelectOne           *bool        `json:"mustSelectOne,omitempty"`
	MustSelectFromOpponents bool         `json:"mustSelectFromOpponents,omitempty"`

	ClientOptions *clientOptionsWire `json:"clientOptions,omitempty"`
}

func marshalRaw(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// MarshalJSON implements json.Marshaler.
func (gi *GameInput) MarshalJSON() ([]byte, error) {
	w := gameInputWire{
		InputType:     gi.InputType,
		PrevInputType: gi.PrevInputType,
		PlayerID:      gi.PlayerID,
		Label:         gi.Label,

		CardContext:       gi.CardContext,
		LocationContext:   gi.LocationContext,
		EventContext:      gi.EventContext,
		AdornmentContext:  gi.AdornmentContext,
		PlayedCardContext: gi.PlayedCardContext,

		Card:                  gi.Card,
		CardOptionsUnfiltered: gi.CardOptionsUnfiltered,
		PlayerOptions:         gi.PlayerOptions,
		LocationOptions:       gi.LocationOptions,
		AdornmentOptions:      gi.AdornmentOptions,

		MaxToSelect:             gi.MaxToSelect,
		MinToSelect:             gi.MinToSelect,
		MinCards:                gi.MinCards,
		MaxCards:                gi.MaxCards,
		MaxResources:            gi.MaxResources,
		MinResources:            gi.MinResources,
		SpecificResource:        gi.SpecificResource,
		MustSelectFromOpponents: gi.MustSelectFromOpponents,
	}
	var err error
	if gi.PrevInput != nil {
		if w.PrevInput, err = marshalRaw(gi.PrevInput); err != nil {
			return nil, err
		}
	}
	if gi.InputType == InputSelectResources {
		w.ToSpend = boolPtr(gi.ToSpend)
	}
	if gi.InputType == InputSelectPlayer || gi.InputType == InputSelectWorkerPlacement {
		w.MustSelectOne = boolPtr(gi.MustSelectOne)
	}
	switch gi.InputType {
	case InputSelectPlayedCards:
		if gi.PlayedCardOptions != nil {
			if w.CardOptions, err = marshalRaw(gi.PlayedCardOptions); err != nil {
				return nil, err
			}
		}
	default:
		if gi.CardOptions != nil {
			if w.CardOptions, err = marshalRaw(gi.CardOptions); err != nil {
				return nil, err
			}
		}
	}
	switch gi.InputType {
	case InputSelectWorkerPlacement:
		if gi.WorkerOptions != nil {
			if w.Options, err = marshalRaw(gi.WorkerOptions); err != nil {
				return nil, err
			}
		}
	default:
		if gi.Options != nil {
			if w.Options, err = marshalRaw(gi.Options); err != nil {
				return nil, err
			}
		}
	}
	if co, err := gi.marshalClientOptions(); err != nil {
		return nil, err
	} else if co != nil {
		w.ClientOptions = co
	}
	return json.Marshal(w)
}

func (gi *GameInput) marshalClientOptions() (*clientOptionsWire, error) {
	co := gi.ClientOptions
	w := clientOptionsWire{
		Card:             co.Card,
		FromMeadow:       co.FromMeadow,
		PaymentOptions:   co.PaymentOptions,
		PlayedCard:       co.PlayedCard,
		Location:         co.Location,
		Event:            co.Event,
		CardsToDiscard:   co.CardsToDiscard,
		Resources:        co.Resources,
		SelectedPlayer:   co.SelectedPlayer,
		SelectedLocation: co.SelectedLocation,
	}
	var err error
	switch gi.InputType {
	case InputSelectPlayedAdornment:
		if co.SelectedAdornments != nil {
			if w.Adornment, err = marshalRaw(co.SelectedAdornments); err != nil {
				return nil, err
			}
		}
	default:
		if co.Adornment != "" {
			if w.Adornment, err = marshalRaw(co.Adornment); err != nil {
				return nil, err
			}
		}
	}
	switch gi.InputType {
	case InputSelectPlayedCards:
		if co.SelectedPlayedCards != nil {
			if w.SelectedCards, err = marshalRaw(co.SelectedPlayedCards); err != nil {
				return nil, err
			}
		}
	default:
		if co.SelectedCards != nil {
			if w.SelectedCards, err = marshalRaw(co.SelectedCards); err != nil {
				return nil, err
			}
		}
	}
	switch gi.InputType {
	case InputSelectWorkerPlacement:
		if co.SelectedWorker != nil {
			if w.SelectedOption, err = marshalRaw(co.SelectedWorker); err != nil {
				return nil, err
			}
		}
	default:
		if co.SelectedOption != "" {
			if w.SelectedOption, err = marshalRaw(co.SelectedOption); err != nil {
				return nil, err
			}
		}
	}
	return &w, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (gi *GameInput) UnmarshalJSON(data []byte) error {
	var w gameInputWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(errors.CodeInputUnexpected, "malformed game input", err)
	}
	*gi = GameInput{
		InputType:     w.InputType,
		PrevInputType: w.PrevInputType,
		PlayerID:      w.PlayerID,
		Label:         w.Label,

		CardContext:       w.CardContext,
		LocationContext:   w.LocationContext,
		EventContext:      w.EventContext,
		AdornmentContext:  w.AdornmentContext,
		PlayedCardContext: w.PlayedCardContext,

		Card:                  w.Card,
		CardOptionsUnfiltered: w.CardOptionsUnfiltered,
		PlayerOptions:         w.PlayerOptions,
		LocationOptions:       w.LocationOptions,
		AdornmentOptions:      w.AdornmentOptions,

		MaxToSelect:             w.MaxToSelect,
		MinToSelect:             w.MinToSelect,
		MinCards:                w.MinCards,
		MaxCards:                w.MaxCards,
		MaxResources:            w.MaxResources,
		MinResources:            w.MinResources,
		SpecificResource:        w.SpecificResource,
		MustSelectFromOpponents: w.MustSelectFromOpponents,
	}
	if w.ToSpend != nil {
		gi.ToSpend = *w.ToSpend
	}
	if w.MustSelectOne != nil {
		gi.MustSelectOne = *w.MustSelectOne
	}
	if len(w.PrevInput) > 0 {
		prev := &GameInput{}
		if err := prev.UnmarshalJSON(w.PrevInput); err != nil {
			return err
		}
		gi.PrevInput = prev
	}
	if len(w.CardOptions) > 0 {
		if gi.InputType == InputSelectPlayedCards {
			if err := json.Unmarshal(w.CardOptions, &gi.PlayedCardOptions); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed cardOptions", err)
			}
		} else {
			if err := json.Unmarshal(w.CardOptions, &gi.CardOptions); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed cardOptions", err)
			}
		}
	}
	if len(w.Options) > 0 {
		if gi.InputType == InputSelectWorkerPlacement {
			if err := json.Unmarshal(w.Options, &gi.WorkerOptions); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed options", err)
			}
		} else {
			if err := json.Unmarshal(w.Options, &gi.Options); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed options", err)
			}
		}
	}
	if w.ClientOptions != nil {
		if err := gi.unmarshalClientOptions(w.ClientOptions); err != nil {
			return err
		}
	}
	return nil
}

func (gi *GameInput) unmarshalClientOptions(w *clientOptionsWire) error {
	co := &gi.ClientOptions
	co.Card = w.Card
	co.FromMeadow = w.FromMeadow
	co.PaymentOptions = w.PaymentOptions
	co.PlayedCard = w.PlayedCard
	co.Location = w.Location
	co.Event = w.Event
	co.CardsToDiscard = w.CardsToDiscard
	co.Resources = w.Resources
	co.SelectedPlayer = w.SelectedPlayer
	co.SelectedLocation = w.SelectedLocation

	if len(w.Adornment) > 0 {
		if gi.InputType == InputSelectPlayedAdornment {
			if err := json.Unmarshal(w.Adornment, &co.SelectedAdornments); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed adornment selection", err)
			}
		} else {
			if err := json.Unmarshal(w.Adornment, &co.Adornment); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed adornment", err)
			}
		}
	}
	if len(w.SelectedCards) > 0 {
		if gi.InputType == InputSelectPlayedCards {
			if err := json.Unmarshal(w.SelectedCards, &co.SelectedPlayedCards); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed selectedCards", err)
			}
		} else {
			if err := json.Unmarshal(w.SelectedCards, &co.SelectedCards); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed selectedCards", err)
			}
		}
	}
	if len(w.SelectedOption) > 0 && string(w.SelectedOption) != "null" {
		if gi.InputType == InputSelectWorkerPlacement {
			if err := json.Unmarshal(w.SelectedOption, &co.SelectedWorker); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed selectedOption", err)
			}
		} else {
			if err := json.Unmarshal(w.SelectedOption, &co.SelectedOption); err != nil {
				return errors.Wrap(errors.CodeInputUnexpected, "malformed selectedOption", err)
			}
		}
	}
	return nil
}
