package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefaultKind(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{CodeWalletProviderNotFound, KindWallet},
		{CodeSuggestionTimeout, KindSuggestion},
		{CodeInvalidSuggestion, KindSuggestion},
		{CodeModelAPIError, KindSuggestion},
		{CodeSubmissionInProgress, KindState},
		{CodeInvalidAmount, KindValidation},
		{CodeFormValidationFailed, KindValidation},
		{CodeCircuitOpen, KindExternal},
		{CodeInternalError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := New(tt.code).Kind; got != tt.want {
				t.Errorf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAppError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", External(CodeModelAPIError, "anthropic", cause))

	if !errors.Is(err, New(CodeModelAPIError)) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, New(CodeSuggestionTimeout)) {
		t.Error("errors.Is should not match a different code")
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if GetCode(err) != CodeModelAPIError {
		t.Errorf("GetCode = %s", GetCode(err))
	}
	if GetKind(err) != KindExternal {
		t.Errorf("GetKind = %s", GetKind(err))
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(CodeSuggestionInFlight)); got != "A suggestion is already being generated" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(New(CodeWalletConnectionFailed, WithMessage("custom"))); got != "custom" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q", got)
	}
}

func TestWrap_KeepsAppError(t *testing.T) {
	orig := New(CodeInvalidAmount)
	wrapped := Wrap(orig, CodeInternalError, "amountFrom")

	if wrapped != orig {
		t.Fatal("Wrap should return the existing AppError")
	}
	if wrapped.Context != "amountFrom" {
		t.Errorf("context = %q", wrapped.Context)
	}
	if Wrap(nil, CodeInternalError, "") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
