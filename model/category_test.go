package model

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{input: "RUNS", expected: CAT_R},
		{input: "home_runs", expected: CAT_HR},
		{input: "STOLEN_BASES", expected: CAT_SB},
		{input: "BATTING_AVG", expected: CAT_AVG},
		{input: "ba", expected: CAT_AVG},
		{input: "WINS", expected: CAT_W},
		{input: "Saves", expected: CAT_SV},
		{input: "STRIKEOUTS", expected: CAT_K},
		{input: "SO", expected: CAT_K},
		{input: " era ", expected: CAT_ERA},
		{input: "QS", expected: Category("QS")},
		{input: "   ", expected: Category("")},
	}

	for _, tc := range tests {
		got := NormalizeCategory(tc.input)
		if got != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got: '%s'", tc.input, tc.expected, got)
		}
	}
}

func TestNormalizeCategories(t *testing.T) {
	got := NormalizeCategories([]Category{"wins", "W", "", "home_runs", "era"})
	expected := []Category{CAT_W, CAT_HR, CAT_ERA}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("expected: %v, got: %v", expected, got)
	}

	got = NormalizeCategories(nil)
	if !reflect.DeepEqual(DefaultScoringCategories, got) {
		t.Errorf("expected default categories, got: %v", got)
	}
}

func TestCategoryDirectionAndRate(t *testing.T) {
	if CAT_ERA.Direction() != -1 || CAT_WHIP.Direction() != -1 {
		t.Error("ERA and WHIP should be lower-is-better")
	}
	if CAT_HR.Direction() != 1 || CAT_AVG.Direction() != 1 {
		t.Error("HR and AVG should be higher-is-better")
	}
	for _, c := range []Category{CAT_AVG, CAT_OBP, CAT_SLG, CAT_OPS, CAT_ERA, CAT_WHIP} {
		if !c.IsRate() {
			t.Errorf("%s should be a rate category", c)
		}
	}
	for _, c := range []Category{CAT_R, CAT_HR, CAT_RBI, CAT_SB, CAT_W, CAT_SV, CAT_K} {
		if c.IsRate() {
			t.Errorf("%s should be a counting category", c)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := map[string]struct {
		input    any
		expected float64
		ok       bool
	}{
		"float":          {input: 3.5, expected: 3.5, ok: true},
		"int":            {input: 12, expected: 12, ok: true},
		"dollars":        {input: "$1,250", expected: 1250, ok: true},
		"percent":        {input: " 12.5% ", expected: 12.5, ok: true},
		"json number":    {input: json.Number("0.301"), expected: 0.301, ok: true},
		"empty string":   {input: "", ok: false},
		"only symbols":   {input: "$%", ok: false},
		"not a number":   {input: "n/a", ok: false},
		"nil":            {input: nil, ok: false},
		"infinite float": {input: math.Inf(1), ok: false},
		"nan":            {input: math.NaN(), ok: false},
		"bool":           {input: true, ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseNumber(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got ok=%v", tc.ok, ok)
			}
			if ok && got != tc.expected {
				t.Errorf("expected: %v, got: %v", tc.expected, got)
			}
		})
	}
}

func TestProjectionValue(t *testing.T) {
	projections := Projections{
		"WINS":      "15",
		"ERA":       "3.05",
		"SO":        "$210",
		"HR":        "",
		"HOME_RUNS": 30.0,
		"CUSTOM":    "7",
	}

	tests := map[string]struct {
		keys     []string
		expected float64
		ok       bool
	}{
		"alias of canonical":         {keys: []string{"W"}, expected: 15, ok: true},
		"raw alias is canonicalized": {keys: []string{"wins"}, expected: 15, ok: true},
		"strikeouts via SO":          {keys: []string{"K"}, expected: 210, ok: true},
		"unparseable alias skipped":  {keys: []string{"HR"}, expected: 30, ok: true},
		"unknown category raw key":   {keys: []string{"custom"}, expected: 7, ok: true},
		"first key wins":             {keys: []string{"ERA", "W"}, expected: 3.05, ok: true},
		"missing":                    {keys: []string{"SV"}, ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ProjectionValue(projections, tc.keys...)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got ok=%v", tc.ok, ok)
			}
			if ok && got != tc.expected {
				t.Errorf("expected: %v, got: %v", tc.expected, got)
			}
		})
	}

	if _, ok := ProjectionValue(nil, "HR"); ok {
		t.Error("expected no value from nil projections")
	}
}
