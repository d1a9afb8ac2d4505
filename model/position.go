package model

import (
	"regexp"
	"strings"
)

type Position string

const (
	POS_C     Position = "C"
	POS_1B    Position = "1B"
	POS_2B    Position = "2B"
	POS_3B    Position = "3B"
	POS_SS    Position = "SS"
	POS_OF    Position = "OF"
	POS_UTIL  Position = "UTIL"
	POS_P     Position = "P"
	POS_BENCH Position = "BENCH"
)

// MainRosterPositions are the positions filled during the keeper and main rounds,
// in the order open slots are offered to a player.
var MainRosterPositions = []Position{POS_C, POS_1B, POS_2B, POS_3B, POS_SS, POS_OF, POS_UTIL, POS_P}

var positionAliases = map[string]Position{
	"SP": POS_P,
	"RP": POS_P,
	"LF": POS_OF,
	"CF": POS_OF,
	"RF": POS_OF,
	"DH": POS_UTIL,
}

var positionSeparators = regexp.MustCompile(`[\s,;/|]+`)

// ParsePosition upper-cases pos and resolves common aliases. Unknown codes are
// returned as-is so that leagues may carry positions outside the main set.
func ParsePosition(pos string) Position {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	if alias, found := positionAliases[pos]; found {
		return alias
	}
	return Position(pos)
}

func IsMainPosition(pos Position) bool {
	for _, p := range MainRosterPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// SplitPositions breaks a free-form list such as "SS/2B, OF" into its parts.
func SplitPositions(s string) []string {
	parts := positionSeparators.Split(s, -1)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// NormalizePositions parses every value, drops empties and removes duplicates
// while keeping the original order. Returns nil if nothing usable remains.
func NormalizePositions(raw []string) []Position {
	var result []Position
	seen := make(map[Position]bool)
	for _, r := range raw {
		p := ParsePosition(r)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		result = append(result, p)
	}
	return result
}
