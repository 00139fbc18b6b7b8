package errors

import (
	stdErrors "errors"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()
	cause := stdErrors.New("boom")
	err := Wrap(CodeAmountUnresolved, cause, "resolution failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeAmountUnresolved {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsUnwrapsNestedError(t *testing.T) {
	t.Parallel()
	inner := New(CodeNotFound, "missing")
	wrapped := Wrap(CodeAmountUnresolved, inner, "cart references unknown product")

	typed := As(wrapped)
	if typed == nil || typed.Code() != CodeAmountUnresolved {
		t.Fatalf("expected outermost typed error, got %v", typed)
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors must not convert")
	}
}

func TestHasCode(t *testing.T) {
	t.Parallel()
	err := New(CodeValidation, "bad input")
	if !HasCode(err, CodeValidation) {
		t.Fatal("expected matching code")
	}
	if HasCode(err, CodeConflict) {
		t.Fatal("expected mismatching code to be false")
	}
	if HasCode(nil, CodeValidation) {
		t.Fatal("nil error has no code")
	}
}
