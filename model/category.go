package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Category string

const (
	CAT_R    Category = "R"
	CAT_HR   Category = "HR"
	CAT_RBI  Category = "RBI"
	CAT_SB   Category = "SB"
	CAT_AVG  Category = "AVG"
	CAT_OBP  Category = "OBP"
	CAT_SLG  Category = "SLG"
	CAT_OPS  Category = "OPS"
	CAT_W    Category = "W"
	CAT_SV   Category = "SV"
	CAT_K    Category = "K"
	CAT_ERA  Category = "ERA"
	CAT_WHIP Category = "WHIP"
)

// DefaultScoringCategories is used when a league has not configured any categories.
var DefaultScoringCategories = []Category{CAT_HR, CAT_RBI, CAT_SB, CAT_AVG, CAT_W, CAT_SV, CAT_K, CAT_ERA, CAT_WHIP}

var canonicalCategories = map[string]Category{
	"RUNS":         CAT_R,
	"HOME_RUNS":    CAT_HR,
	"STOLEN_BASES": CAT_SB,
	"BATTING_AVG":  CAT_AVG,
	"BA":           CAT_AVG,
	"WINS":         CAT_W,
	"SAVES":        CAT_SV,
	"STRIKEOUTS":   CAT_K,
	"SO":           CAT_K,
}

// Keys that may hold the value of a category in a projection map, tried in order.
var categoryAliases = map[Category][]string{
	CAT_R:    {"R", "RUNS"},
	CAT_HR:   {"HR", "HOME_RUNS"},
	CAT_RBI:  {"RBI"},
	CAT_SB:   {"SB", "STOLEN_BASES"},
	CAT_AVG:  {"AVG", "BA", "BATTING_AVG"},
	CAT_OBP:  {"OBP"},
	CAT_SLG:  {"SLG"},
	CAT_OPS:  {"OPS"},
	CAT_W:    {"W", "WINS"},
	CAT_SV:   {"SV", "SAVES"},
	CAT_K:    {"K", "SO", "STRIKEOUTS"},
	CAT_ERA:  {"ERA"},
	CAT_WHIP: {"WHIP"},
}

var rateCategories = map[Category]bool{
	CAT_AVG:  true,
	CAT_OBP:  true,
	CAT_SLG:  true,
	CAT_OPS:  true,
	CAT_ERA:  true,
	CAT_WHIP: true,
}

// NormalizeCategory maps a free-form key onto its canonical code. Keys without a
// known synonym are returned trimmed and upper-cased. Empty input returns "".
func NormalizeCategory(raw string) Category {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return ""
	}
	if c, found := canonicalCategories[upper]; found {
		return c
	}
	return Category(upper)
}

// NormalizeCategories canonicalizes, dedupes and drops empty entries. An empty
// result falls back to DefaultScoringCategories.
func NormalizeCategories(raw []Category) []Category {
	result := make([]Category, 0, len(raw))
	seen := make(map[Category]bool)
	for _, r := range raw {
		c := NormalizeCategory(string(r))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	if len(result) == 0 {
		return append([]Category(nil), DefaultScoringCategories...)
	}
	return result
}

// Direction is -1 for categories where lower values are better.
func (c Category) Direction() float64 {
	if c == CAT_ERA || c == CAT_WHIP {
		return -1
	}
	return 1
}

// IsRate reports whether team totals for c are averaged instead of summed.
func (c Category) IsRate() bool {
	return rateCategories[c]
}

// ParseNumber converts a projection value into a finite number. Strings may carry
// "$", "," and "%" characters which are ignored.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		return ParseNumber(n.String())
	case string:
		cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "", "%", "").Replace(n))
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ProjectionValue looks up the first parseable value for any of keys. For each key
// the alias list of its canonical category is tried first, then the raw key.
func ProjectionValue(projections Projections, keys ...string) (float64, bool) {
	if len(projections) == 0 {
		return 0, false
	}

	candidates := make([]string, 0, len(keys)*3)
	seen := make(map[string]bool)
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			candidates = append(candidates, k)
		}
	}
	for _, key := range keys {
		raw := strings.ToUpper(strings.TrimSpace(key))
		c := NormalizeCategory(raw)
		if aliases, found := categoryAliases[c]; found {
			for _, a := range aliases {
				add(a)
			}
		} else {
			add(string(c))
		}
		add(raw)
	}

	for _, k := range candidates {
		v, found := projections[k]
		if !found || v == nil {
			continue
		}
		if f, ok := ParseNumber(v); ok {
			return f, true
		}
	}
	return 0, false
}

// Value is ProjectionValue for a single category.
func (c Category) Value(projections Projections) (float64, bool) {
	return ProjectionValue(projections, string(c))
}
