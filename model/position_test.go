package model

import (
	"reflect"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected Position
	}{
		{input: "C", expected: POS_C},
		{input: "ss", expected: POS_SS},
		{input: " 1b ", expected: POS_1B},
		{input: "SP", expected: POS_P},
		{input: "rp", expected: POS_P},
		{input: "LF", expected: POS_OF},
		{input: "CF", expected: POS_OF},
		{input: "RF", expected: POS_OF},
		{input: "DH", expected: POS_UTIL},
		{input: "util", expected: POS_UTIL},
		{input: "bench", expected: POS_BENCH},
		{input: "XYZ", expected: Position("XYZ")},
		{input: "", expected: Position("")},
	}

	for _, tc := range tests {
		a := ParsePosition(tc.input)
		if a != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, a)
		}
	}
}

func TestNormalizePositions(t *testing.T) {
	tests := map[string]struct {
		input    []string
		expected []Position
	}{
		"aliases and dupes": {input: []string{"SP", "RP", "p"}, expected: []Position{POS_P}},
		"order is kept":     {input: []string{"SS", "2B", "DH"}, expected: []Position{POS_SS, POS_2B, POS_UTIL}},
		"blank entries":     {input: []string{"", "  ", "OF"}, expected: []Position{POS_OF}},
		"nothing usable":    {input: []string{"", " "}, expected: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := NormalizePositions(tc.input)
			if !reflect.DeepEqual(tc.expected, got) {
				t.Errorf("expected: %v, got: %v", tc.expected, got)
			}
		})
	}
}

func TestSplitPositions(t *testing.T) {
	got := SplitPositions("SS/2B, OF;DH | 1B  3B")
	expected := []string{"SS", "2B", "OF", "DH", "1B", "3B"}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("expected: %v, got: %v", expected, got)
	}

	if len(SplitPositions("   ")) != 0 {
		t.Errorf("expected no positions from a blank string")
	}
}
