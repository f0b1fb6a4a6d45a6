// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Protocol errors
	CodeInputUnexpected      Code = "INPUT_UNEXPECTED"
	CodeInputContextMismatch Code = "INPUT_CONTEXT_MISMATCH"
	CodeInputMissingOptions  Code = "INPUT_MISSING_OPTIONS"
	CodeInputWrongPlayer     Code = "INPUT_WRONG_PLAYER"

	// Resource errors
	CodeInsufficientResources Code = "INSUFFICIENT_RESOURCES"
	CodeInvalidPayment        Code = "INVALID_PAYMENT"
	CodePaymentOverpaid       Code = "PAYMENT_OVERPAID"

	// Selection errors
	CodeSelectionNotAllowed  Code = "SELECTION_NOT_ALLOWED"
	CodeSelectionCountBounds Code = "SELECTION_COUNT_BOUNDS"
	CodeSelectionSelfTarget  Code = "SELECTION_SELF_TARGET"

	// Structural state errors
	CodeCityFull            Code = "CITY_FULL"
	CodeUniqueCardDuplicate Code = "UNIQUE_CARD_DUPLICATE"
	CodeCardNotInHand       Code = "CARD_NOT_IN_HAND"
	CodeCardNotInCity       Code = "CARD_NOT_IN_CITY"
	CodeCardNotInMeadow     Code = "CARD_NOT_IN_MEADOW"
	CodeCardNotPlayable     Code = "CARD_NOT_PLAYABLE"
	CodeWorkerUnavailable   Code = "WORKER_UNAVAILABLE"
	CodeWorkerNotRecallable Code = "WORKER_NOT_RECALLABLE"
	CodeLocationOccupied    Code = "LOCATION_OCCUPIED"
	CodeLocationNotPlayable Code = "LOCATION_NOT_PLAYABLE"
	CodeEventNotClaimable   Code = "EVENT_NOT_CLAIMABLE"
	CodeAdornmentNotInHand  Code = "ADORNMENT_NOT_IN_HAND"
	CodeSeasonOutOfOrder    Code = "SEASON_OUT_OF_ORDER"
	CodeGameOver            Code = "GAME_OVER"
	CodePlayerNotFound      Code = "PLAYER_NOT_FOUND"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeInvalidFilter Code = "INVALID_FILTER"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInputContextMismatch,
		CodeInputMissingOptions,
		CodeInvalidPayment,
		CodePaymentOverpaid,
		CodeSelectionNotAllowed,
		CodeSelectionCountBounds,
		CodeSelectionSelfTarget,
		CodeInvalidFilter:
		return codes.InvalidArgument

	// FailedPrecondition - valid input, wrong state
	case CodeInputUnexpected,
		CodeInputWrongPlayer,
		CodeInsufficientResources,
		CodeCityFull,
		CodeUniqueCardDuplicate,
		CodeCardNotInHand,
		CodeCardNotInCity,
		CodeCardNotInMeadow,
		CodeCardNotPlayable,
		CodeWorkerUnavailable,
		CodeWorkerNotRecallable,
		CodeLocationOccupied,
		CodeLocationNotPlayable,
		CodeEventNotClaimable,
		CodeAdornmentNotInHand,
		CodeSeasonOutOfOrder,
		CodeGameOver:
		return codes.FailedPrecondition

	// NotFound
	case CodeNotFound,
		CodePlayerNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
