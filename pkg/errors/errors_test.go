package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeEmptyInput, "no diagram source provided")
	want := "EMPTY_INPUT: no diagram source provided"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := errors.New("boom")
	wrapped := Wrap(ErrCodeLayoutEngine, cause, "graphviz layout")
	if wrapped.Error() != "LAYOUT_ENGINE_FAILURE: graphviz layout: boom" {
		t.Errorf("wrapped Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeSerialization, "no ER content")
	if !Is(err, ErrCodeSerialization) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeEmptyInput) {
		t.Error("Is should not match a different code")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode should be empty for foreign errors")
	}

	// Codes survive fmt.Errorf wrapping.
	deep := fmt.Errorf("outer: %w", err)
	if GetCode(deep) != ErrCodeSerialization {
		t.Errorf("GetCode(wrapped) = %q, want %q", GetCode(deep), ErrCodeSerialization)
	}
}

func TestSyntaxError(t *testing.T) {
	err := Syntax(7, "unrecognized cardinality symbol %q", "XX--XX")
	want := `syntax error at line 7: unrecognized cardinality symbol "XX--XX"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if GetCode(err) != ErrCodeSyntax {
		t.Errorf("GetCode = %q, want %q", GetCode(err), ErrCodeSyntax)
	}

	wrapped := fmt.Errorf("parse: %w", err)
	se, ok := AsSyntax(wrapped)
	if !ok {
		t.Fatal("AsSyntax should find the SyntaxError through wrapping")
	}
	if se.Line != 7 {
		t.Errorf("Line = %d, want 7", se.Line)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeEmptyInput, "nothing to do")); got != "nothing to do" {
		t.Errorf("UserMessage = %q, want %q", got, "nothing to do")
	}
	if got := UserMessage(errors.New("raw")); got != "raw" {
		t.Errorf("UserMessage = %q, want %q", got, "raw")
	}
}
