package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseUserID_CanonicalForms(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want UserID
	}{
		{"int", 7, 7},
		{"int32", int32(7), 7},
		{"int64", int64(7), 7},
		{"float64 from jwt claims", float64(7), 7},
		{"json number", json.Number("7"), 7},
		{"decimal string", "7", 7},
		{"padded string", " 7 ", 7},
		{"already canonical", UserID(7), 7},
	}

	for _, tc := range cases {
		got, err := ParseUserID(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: want %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestParseUserID_FloatRangeEdges(t *testing.T) {
	got, err := ParseUserID(float64(math.MinInt64))
	if err != nil || got != UserID(math.MinInt64) {
		t.Fatalf("min int64: got %d, %v", got, err)
	}
	// The largest float64 below 2^63.
	below := math.Nextafter(1<<63, 0)
	got, err = ParseUserID(below)
	if err != nil || got != UserID(int64(below)) {
		t.Fatalf("largest float below 2^63: got %d, %v", got, err)
	}
}

func TestParseUserID_Rejects(t *testing.T) {
	for _, in := range []any{
		"abc", "", 7.5, nil, true, json.Number("1e400"),
		float64(1 << 63), math.Inf(1), math.Inf(-1), math.NaN(), -1e19,
	} {
		if _, err := ParseUserID(in); err == nil {
			t.Errorf("expected error for %#v", in)
		}
	}
}

// A string-typed owner field compared against a numeric token id used to
// produce false mismatches; both sides must resolve to the same value.
func TestCheckOwner_StringAndNumberOwnerMatch(t *testing.T) {
	stored, err := ParseUserID("42")
	if err != nil {
		t.Fatal(err)
	}
	fromToken, err := ParseUserID(float64(42))
	if err != nil {
		t.Fatal(err)
	}

	if err := CheckOwner(stored, fromToken); err != nil {
		t.Fatalf("expected owner match, got %v", err)
	}
	if err := CheckOwner(stored, UserID(43)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestValidationError_IsErrValidation(t *testing.T) {
	err := error(NewValidationError("text is required"))
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected ValidationError to match ErrValidation")
	}
	if err.Error() != "text is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
