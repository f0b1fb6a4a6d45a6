package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorMatchesByCode(t *testing.T) {
	err := New(CodeCardNotInHand, "cannot find FARM in hand")
	if !stderrors.Is(err, New(CodeCardNotInHand, "different message")) {
		t.Fatal("errors with the same code should match")
	}
	if stderrors.Is(err, New(CodeCardNotInMeadow, "")) {
		t.Fatal("errors with different codes should not match")
	}
}

func TestWrapKeepsTheCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeNotFound, "unable to load game", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("the cause should survive unwrapping")
	}
	if err.Error() != "unable to load game" {
		t.Fatalf("the message is the internal one, got %q", err.Error())
	}
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := WithMetadata(CodePlayerNotFound, "no such player",
		map[string]string{"PlayerID": "abc"})
	outer := fmt.Errorf("loading snapshot: %w", inner)

	if got := GetCode(outer); got != CodePlayerNotFound {
		t.Fatalf("GetCode(%v) = %s", outer, got)
	}
	if !IsCode(outer, CodePlayerNotFound) {
		t.Fatal("IsCode should see through wrapping")
	}
	if md := GetMetadata(outer); md["PlayerID"] != "abc" {
		t.Fatalf("unexpected metadata %v", md)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("a plain error maps to %s", got)
	}
	if GetMetadata(stderrors.New("plain")) != nil {
		t.Fatal("a plain error has no metadata")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeInvalidPayment, codes.InvalidArgument},
		{CodeInvalidFilter, codes.InvalidArgument},
		{CodeInputWrongPlayer, codes.FailedPrecondition},
		{CodeGameOver, codes.FailedPrecondition},
		{CodeNotFound, codes.NotFound},
		{CodePlayerNotFound, codes.NotFound},
		{CodeUnknown, codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Errorf("%s maps to %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestHandleErrorBuildsLocalizedStatus(t *testing.T) {
	err := WithMetadata(CodeCardNotInHand, "cannot find selected card FARM in hand",
		map[string]string{"Card": "FARM"})

	st := status.Convert(HandleError(err, ""))
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("status code %v", st.Code())
	}
	if st.Message() != "cannot find selected card FARM in hand" {
		t.Fatalf("the status keeps the internal message, got %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.Reason != string(CodeCardNotInHand) || info.Domain != Domain {
		t.Fatalf("unexpected error info %v", info)
	}
	if localized == nil || localized.Locale != DefaultLocale {
		t.Fatalf("unexpected localized message %v", localized)
	}
	if localized.Message != "FARM is not in your hand" {
		t.Fatalf("the metadata should fill the template, got %q", localized.Message)
	}
}

func TestHandleErrorPassThroughs(t *testing.T) {
	if HandleError(nil, "en-US") != nil {
		t.Fatal("nil stays nil")
	}
	st := status.Convert(HandleError(stderrors.New("boom"), "en-US"))
	if st.Code() != codes.Internal {
		t.Fatalf("a plain error maps to %v", st.Code())
	}
	if st.Message() == "boom" {
		t.Fatal("internal details should not leak to clients")
	}
}
