package game

// GameInputType discriminates the wire-level moves. The first group can
// open a turn; the SELECT_* / DISCARD_CARDS group only resolves pending
// follow-ups queued by an earlier move.
type GameInputType string

const (
	InputPlayCard             GameInputType = "PLAY_CARD"
	InputPlaceWorker          GameInputType = "PLACE_WORKER"
	InputVisitDestinationCard GameInputType = "VISIT_DESTINATION_CARD"
	InputClaimEvent           GameInputType = "CLAIM_EVENT"
	InputPrepareForSeason     GameInputType = "PREPARE_FOR_SEASON"
	InputPlayAdornment        GameInputType = "PLAY_ADORNMENT"
	InputGameEnd              GameInputType = "GAME_END"

	InputDiscardCards          GameInputType = "DISCARD_CARDS"
	InputSelectCards           GameInputType = "SELECT_CARDS"
	InputSelectPlayedCards     GameInputType = "SELECT_PLAYED_CARDS"
	InputSelectPlayer          GameInputType = "SELECT_PLAYER"
	InputSelectResources       GameInputType = "SELECT_RESOURCES"
	InputSelectLocation        GameInputType = "SELECT_LOCATION"
	InputSelectPaymentForCard  GameInputType = "SELECT_PAYMENT_FOR_CARD"
	InputSelectWorkerPlacement GameInputType = "SELECT_WORKER_PLACEMENT"
	InputSelectOptionGeneric   GameInputType = "SELECT_OPTION_GENERIC"
	InputSelectPlayedAdornment GameInputType = "SELECT_PLAYED_ADORNMENT"
)

// IsPendingType reports whether the type can only appear as a queued
// follow-up, never as the opening move of a turn.
func (t GameInputType) IsPendingType() bool {
	switch t {
	case InputDiscardCards, InputSelectCards, InputSelectPlayedCards,
		InputSelectPlayer, InputSelectResources, InputSelectLocation,
		InputSelectPaymentForCard, InputSelectWorkerPlacement,
		InputSelectOptionGeneric, InputSelectPlayedAdornment:
		return true
	}
	return false
}

// PaymentOptions describes how a card cost is covered.
type PaymentOptions struct {
	Resources         ResourceMap `json:"resources"`
	CardToUse         CardName    `json:"cardToUse,omitempty"`
	CardToDungeon     CardName    `json:"cardToDungeon,omitempty"`
	UseAssociatedCard bool        `json:"useAssociatedCard,omitempty"`
}

// Clone returns a deep copy of the payment.
func (po *PaymentOptions) Clone() *PaymentOptions {
	if po == nil {
		return nil
	}
	return &PaymentOptions{
		Resources:         po.Resources.Clone(),
		CardToUse:         po.CardToUse,
		CardToDungeon:     po.CardToDungeon,
		UseAssociatedCard: po.UseAssociatedCard,
	}
}

// ClientOptions carries the caller's resolution of an input. Which
// fields are read depends on the input type.
type ClientOptions struct {
	Card           CardName
	FromMeadow     bool
	PaymentOptions *PaymentOptions

	PlayedCard *PlayedCardInfo

	Location  LocationName
	Event     EventName
	Adornment AdornmentName

	SelectedCards       []CardName
	SelectedPlayedCards []PlayedCardInfo
	SelectedAdornments  []AdornmentName
	CardsToDiscard      []CardName

	Resources        ResourceMap
	SelectedPlayer   string
	SelectedLocation LocationName
	SelectedOption   string
	SelectedWorker   *WorkerPlacementInfo
}

// Clone returns a deep copy of the options.
func (co *ClientOptions) Clone() *ClientOptions {
	if co == nil {
		return nil
	}
	out := &ClientOptions{
		Card:             co.Card,
		FromMeadow:       co.FromMeadow,
		PaymentOptions:   co.PaymentOptions.Clone(),
		PlayedCard:       co.PlayedCard.Clone(),
		Location:         co.Location,
		Event:            co.Event,
		Adornment:        co.Adornment,
		Resources:        co.Resources.Clone(),
		SelectedPlayer:   co.SelectedPlayer,
		SelectedLocation: co.SelectedLocation,
		SelectedOption:   co.SelectedOption,
		SelectedWorker:   co.SelectedWorker.Clone(),
	}
	if co.SelectedCards != nil {
		out.SelectedCards = append([]CardName{}, co.SelectedCards...)
	}
	if co.SelectedAdornments != nil {
		out.SelectedAdornments = append([]AdornmentName{}, co.SelectedAdornments...)
	}
	if co.CardsToDiscard != nil {
		out.CardsToDiscard = append([]CardName{}, co.CardsToDiscard...)
	}
	for _, pc := range co.SelectedPlayedCards {
		out.SelectedPlayedCards = append(out.SelectedPlayedCards, *pc.Clone())
	}
	return out
}

// GameInput is one move: either a turn-opening action or the resolution
// of a pending follow-up. Pending follow-ups are stored as GameInputs
// with their option sets filled in and empty client options; a
// submitted input matches a pending one on type, previous type, and
// context tags.
type GameInput struct {
	InputType     GameInputType
	PrevInputType GameInputType
	PrevInput     *GameInput
	PlayerID      string
	Label         string

	// Context tags tie a follow-up back to the entity that queued it.
	CardContext       CardName
	LocationContext   LocationName
	EventContext      EventName
	AdornmentContext  AdornmentName
	PlayedCardContext *PlayedCardInfo

	// Option sets enumerate what the caller may pick from.
	Card                  CardName
	CardOptions           []CardName
	CardOptionsUnfiltered []CardName
	PlayedCardOptions     []PlayedCardInfo
	PlayerOptions         []string
	LocationOptions       []LocationName
	AdornmentOptions      []AdornmentName
	Options               []string
	WorkerOptions         []WorkerPlacementInfo

	// Bounds on the selection.
	MaxToSelect             int
	MinToSelect             int
	MinCards                int
	MaxCards                int
	MaxResources            int
	MinResources            int
	SpecificResource        ResourceType
	ToSpend                 bool
	MustSelectOne           bool
	MustSelectFromOpponents bool

	ClientOptions ClientOptions
}

// Clone returns a deep copy of the input.
func (gi *GameInput) Clone() *GameInput {
	if gi == nil {
		return nil
	}
	out := &GameInput{
		InputType:     gi.InputType,
		PrevInputType: gi.PrevInputType,
		PrevInput:     gi.PrevInput.Clone(),
		PlayerID:      gi.PlayerID,
		Label:         gi.Label,

		CardContext:       gi.CardContext,
		LocationContext:   gi.LocationContext,
		EventContext:      gi.EventContext,
		AdornmentContext:  gi.AdornmentContext,
		PlayedCardContext: gi.PlayedCardContext.Clone(),

		Card: gi.Card,

		MaxToSelect:             gi.MaxToSelect,
		MinToSelect:             gi.MinToSelect,
		MinCards:                gi.MinCards,
		MaxCards:                gi.MaxCards,
		MaxResources:            gi.MaxResources,
		MinResources:            gi.MinResources,
		SpecificResource:        gi.SpecificResource,
		ToSpend:                 gi.ToSpend,
		MustSelectOne:           gi.MustSelectOne,
		MustSelectFromOpponents: gi.MustSelectFromOpponents,

		ClientOptions: *gi.ClientOptions.Clone(),
	}
	if gi.CardOptions != nil {
		out.CardOptions = append([]CardName{}, gi.CardOptions...)
	}
	if gi.CardOptionsUnfiltered != nil {
		out.CardOptionsUnfiltered = append([]CardName{}, gi.CardOptionsUnfiltered...)
	}
	for _, pc := range gi.PlayedCardOptions {
		out.PlayedCardOptions = append(out.PlayedCardOptions, *pc.Clone())
	}
	if gi.PlayerOptions != nil {
		out.PlayerOptions = append([]string{}, gi.PlayerOptions...)
	}
	if gi.LocationOptions != nil {
		out.LocationOptions = append([]LocationName{}, gi.LocationOptions...)
	}
	if gi.AdornmentOptions != nil {
		out.AdornmentOptions = append([]AdornmentName{}, gi.AdornmentOptions...)
	}
	if gi.Options != nil {
		out.Options = append([]string{}, gi.Options...)
	}
	for _, w := range gi.WorkerOptions {
		out.WorkerOptions = append(out.WorkerOptions, *w.Clone())
	}
	return out
}

// MatchesPending reports whether a submitted input resolves the pending
// input. Option sets and bounds come from the pending side; only the
// identity of the step is compared.
func (gi *GameInput) MatchesPending(pending *GameInput) bool {
	if gi.InputType != pending.InputType {
		return false
	}
	if pending.PrevInputType != "" && gi.PrevInputType != "" &&
		gi.PrevInputType != pending.PrevInputType {
		return false
	}
	if gi.CardContext != pending.CardContext {
		return false
	}
	if gi.LocationContext != pending.LocationContext {
		return false
	}
	if gi.EventContext != pending.EventContext {
		return false
	}
	if gi.AdornmentContext != pending.AdornmentContext {
		return false
	}
	if pending.PlayedCardContext != nil && gi.PlayedCardContext != nil &&
		!pending.PlayedCardContext.Matches(gi.PlayedCardContext) {
		return false
	}
	return true
}
