package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInputUnexpected      = "INPUT_UNEXPECTED"
	CodeInputContextMismatch = "INPUT_CONTEXT_MISMATCH"
	CodeInputMissingOptions  = "INPUT_MISSING_OPTIONS"
	CodeInputWrongPlayer     = "INPUT_WRONG_PLAYER"

	CodeInsufficientResources = "INSUFFICIENT_RESOURCES"
	CodeInvalidPayment        = "INVALID_PAYMENT"
	CodePaymentOverpaid       = "PAYMENT_OVERPAID"

	CodeSelectionNotAllowed  = "SELECTION_NOT_ALLOWED"
	CodeSelectionCountBounds = "SELECTION_COUNT_BOUNDS"
	CodeSelectionSelfTarget  = "SELECTION_SELF_TARGET"

	CodeCityFull            = "CITY_FULL"
	CodeUniqueCardDuplicate = "UNIQUE_CARD_DUPLICATE"
	CodeCardNotInHand       = "CARD_NOT_IN_HAND"
	CodeCardNotInCity       = "CARD_NOT_IN_CITY"
	CodeCardNotInMeadow     = "CARD_NOT_IN_MEADOW"
	CodeCardNotPlayable     = "CARD_NOT_PLAYABLE"
	CodeWorkerUnavailable   = "WORKER_UNAVAILABLE"
	CodeWorkerNotRecallable = "WORKER_NOT_RECALLABLE"
	CodeLocationOccupied    = "LOCATION_OCCUPIED"
	CodeLocationNotPlayable = "LOCATION_NOT_PLAYABLE"
	CodeEventNotClaimable   = "EVENT_NOT_CLAIMABLE"
	CodeAdornmentNotInHand  = "ADORNMENT_NOT_IN_HAND"
	CodeSeasonOutOfOrder    = "SEASON_OUT_OF_ORDER"
	CodeGameOver            = "GAME_OVER"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"

	CodeNotFound      = "NOT_FOUND"
	CodeInvalidFilter = "INVALID_FILTER"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Protocol errors
		CodeInputUnexpected:      "This action cannot be taken right now",
		CodeInputContextMismatch: "Expected a {{.Expected}} input, got {{.Got}}",
		CodeInputMissingOptions:  "The submitted input is missing required options",
		CodeInputWrongPlayer:     "It is not this player's turn",

		// Resource errors
		CodeInsufficientResources: "Not enough {{.Resource}}: have {{.Have}}, need {{.Need}}",
		CodeInvalidPayment:        "The offered payment does not cover the cost",
		CodePaymentOverpaid:       "The offered payment exceeds the cost",

		// Selection errors
		CodeSelectionNotAllowed:  "Selected {{.Selected}} is not one of the legal choices",
		CodeSelectionCountBounds: "Select between {{.Min}} and {{.Max}} items",
		CodeSelectionSelfTarget:  "You cannot target yourself with this effect",

		// Structural state errors
		CodeCityFull:            "Your city has no more room",
		CodeUniqueCardDuplicate: "{{.Card}} is unique and already in your city",
		CodeCardNotInHand:       "{{.Card}} is not in your hand",
		CodeCardNotInCity:       "{{.Card}} is not in the city",
		CodeCardNotInMeadow:     "{{.Card}} is not in the meadow",
		CodeCardNotPlayable:     "{{.Card}} cannot be played right now",
		CodeWorkerUnavailable:   "No workers left to place",
		CodeWorkerNotRecallable: "This worker is permanently placed",
		CodeLocationOccupied:    "{{.Location}} is already occupied",
		CodeLocationNotPlayable: "{{.Location}} cannot be visited right now",
		CodeEventNotClaimable:   "The requirements for {{.Event}} are not met",
		CodeAdornmentNotInHand:  "{{.Adornment}} is not in your hand",
		CodeSeasonOutOfOrder:    "The season cannot advance right now",
		CodeGameOver:            "The game has ended for this player",
		CodePlayerNotFound:      "Player {{.PlayerID}} is not part of this game",

		// Storage errors
		CodeNotFound:      "The requested resource was not found",
		CodeInvalidFilter: "The list filter expression is invalid",
	},
}
