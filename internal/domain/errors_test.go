package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	err := &OpError{Op: "payloadfile.read", Kind: KindNotFound, Path: "/tmp/x.json", Err: ErrNotFound}

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match the wrapped sentinel")
	}
	if !IsKind(fmt.Errorf("wrapped: %w", err), KindNotFound) {
		t.Fatalf("expected IsKind to see through fmt wrapping")
	}
	if IsKind(err, KindExecution) {
		t.Fatalf("unexpected kind match")
	}

	msg := err.Error()
	for _, want := range []string{"payloadfile.read", "not_found", "path=/tmp/x.json"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestOpErrorNil(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("unexpected nil message: %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}

func TestValidationError(t *testing.T) {
	ve := &ValidationError{Shape: "XmiStorey"}
	if ve.Err() != nil {
		t.Fatalf("empty validation error should be nil")
	}

	ve.Add("StoreyElevation", "required")
	ve.Add("", "bad record")
	err := ve.Err()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if got, want := err.Error(), "XmiStorey: StoreyElevation: required; bad record"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if !IsValidation(fmt.Errorf("ctx: %w", err)) {
		t.Fatalf("expected IsValidation through wrapping")
	}
}

func TestParseExportFormat(t *testing.T) {
	cases := map[string]ExportFormat{"": FormatJSON, "JSON": FormatJSON, "msgpack": FormatMsgpack}
	for in, want := range cases {
		got, err := ParseExportFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseExportFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseExportFormat("xml"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if FormatMsgpack.Ext() != ".msgpack" || FormatJSON.Ext() != ".json" {
		t.Fatalf("unexpected extensions")
	}
}
