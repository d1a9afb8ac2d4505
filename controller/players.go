package controller

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/valuation"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPlayerLimit = 1000
	MaxPlayerLimit     = 2000
	MaxImportRows      = 3000
)

type PlayerQuery struct {
	LeagueID string
	// Case insensitive substring of the player name.
	Query    string
	Position string
	Drafted  *bool
	Limit    int
}

// PlayerValue is a player priced against the current state of its league.
type PlayerValue struct {
	model.Player
	Valuation *valuation.Details `json:"valuation,omitempty"`
}

type CustomPlayer struct {
	LeagueID          string   `json:"leagueId"`
	Name              string   `json:"name"`
	MLBTeam           string   `json:"mlbTeam"`
	EligiblePositions []string `json:"eligiblePositions"`
	ProjectedValue    any      `json:"projectedValue"`
}

// ImportRow is one player of an import as the client sent it.
type ImportRow struct {
	Name              string         `json:"name"`
	MLBTeam           string         `json:"mlbTeam"`
	EligiblePositions PositionList   `json:"eligiblePositions"`
	ProjectedValue    any            `json:"projectedValue"`
	ADP               any            `json:"adp"`
	Projections       map[string]any `json:"projections"`
}

type ImportResult struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"importedCount"`
	SkippedCount  int    `json:"skippedCount"`
	TotalReceived int    `json:"totalReceived"`
}

// PositionList accepts either a JSON array or a single delimited string such as
// "SS/2B, OF".
type PositionList []string

func (l *PositionList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*l = model.SplitPositions(v)
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if item != nil {
				result = append(result, fmt.Sprint(item))
			}
		}
		*l = result
	default:
		*l = nil
	}
	return nil
}

func (c *controller) ListPlayers(ctx context.Context, q PlayerQuery) ([]PlayerValue, error) {
	if q.LeagueID == "" {
		return nil, model.Validationf("leagueId query param is required")
	}
	league, err := c.db.GetLeague(ctx, q.LeagueID)
	if err != nil {
		return nil, err
	}
	players, err := c.db.ListPlayers(ctx, q.LeagueID)
	if err != nil {
		return nil, err
	}
	teams, err := c.db.ListTeams(ctx, q.LeagueID)
	if err != nil {
		return nil, err
	}

	values := c.valuator.Value(valuation.Input{
		Players:   players,
		League:    league,
		TeamCount: len(teams),
		Teams:     teams,
	})

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	pos := model.ParsePosition(q.Position)
	results := make([]PlayerValue, 0, len(players))
	for _, p := range players {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if pos != "" && !p.IsEligible(pos) {
			continue
		}
		if q.Drafted != nil && p.IsDrafted != *q.Drafted {
			continue
		}

		pv := PlayerValue{Player: p}
		if v, found := values[p.ID]; found {
			projected := v.ProjectedValue
			pv.ProjectedValue = &projected
			pv.Valuation = &v.Valuation
		}
		results = append(results, pv)
	}

	slices.SortStableFunc(results, comparePlayerValues)
	return results[:min(len(results), clampLimit(q.Limit))], nil
}

// comparePlayerValues puts undrafted players first, then the most valuable, then
// orders by name.
func comparePlayerValues(a, b PlayerValue) int {
	if a.IsDrafted != b.IsDrafted {
		if a.IsDrafted {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(valueOf(b.ProjectedValue), valueOf(a.ProjectedValue)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

func valueOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func clampLimit(limit int) int {
	if limit == 0 {
		return DefaultPlayerLimit
	}
	return min(max(limit, 1), MaxPlayerLimit)
}

func (c *controller) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) AddCustomPlayer(ctx context.Context, in CustomPlayer) (*model.Player, error) {
	name := strings.TrimSpace(in.Name)
	if in.LeagueID == "" || name == "" {
		return nil, model.Validationf("leagueId and name are required")
	}
	positions := model.NormalizePositions(in.EligiblePositions)
	if len(positions) == 0 {
		return nil, model.Validationf("At least one eligible position is required")
	}

	p := model.Player{
		LeagueID:          in.LeagueID,
		Name:              name,
		MLBTeam:           strings.ToUpper(strings.TrimSpace(in.MLBTeam)),
		EligiblePositions: positions,
		Projections:       model.Projections{},
	}
	if in.ProjectedValue != nil {
		v, ok := model.ParseNumber(in.ProjectedValue)
		if !ok {
			return nil, model.Validationf("projectedValue must be a number")
		}
		p.ProjectedValue = roundedValue(v)
	}

	if _, err := c.db.GetLeague(ctx, in.LeagueID); err != nil {
		return nil, err
	}
	players := []model.Player{p}
	inserted, err := c.db.AddPlayers(ctx, players)
	if err != nil {
		return nil, fmt.Errorf("error saving player: %w", err)
	}
	if inserted == 0 {
		return nil, model.Conflictf("A player named %s (%s) already exists in this league", p.Name, p.MLBTeam)
	}
	return &players[0], nil
}

func (c *controller) ImportPlayers(ctx context.Context, leagueID string, rows []ImportRow) (*ImportResult, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId is required")
	}
	if len(rows) == 0 {
		return nil, model.Validationf("players array cannot be empty")
	}
	if len(rows) > MaxImportRows {
		return nil, model.Validationf("players array is too large (max %d rows per import)", MaxImportRows)
	}

	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	existing, err := c.db.ListPlayers(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(existing)+len(rows))
	for _, p := range existing {
		keys[model.PlayerDedupeKey(p.Name, p.MLBTeam)] = true
	}

	toInsert := make([]model.Player, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		p, ok := normalizeImportRow(row)
		if !ok {
			skipped++
			continue
		}
		key := model.PlayerDedupeKey(p.Name, p.MLBTeam)
		if keys[key] {
			skipped++
			continue
		}
		keys[key] = true
		p.LeagueID = leagueID
		toInsert = append(toInsert, p)
	}

	if len(toInsert) == 0 {
		return nil, model.Validationf("No valid players to import after validation and duplicate filtering.")
	}

	inserted, err := c.db.AddPlayers(ctx, toInsert)
	if err != nil {
		return nil, fmt.Errorf("error importing players: %w", err)
	}
	// rows that lost a race with a concurrent import
	skipped += len(toInsert) - inserted

	logrus.WithFields(logrus.Fields{
		"leagueID": leagueID,
		"imported": inserted,
		"skipped":  skipped,
	}).Info("players imported")

	plural := "s"
	if inserted == 1 {
		plural = ""
	}
	return &ImportResult{
		Message:       fmt.Sprintf("Imported %d player%s.", inserted, plural),
		ImportedCount: inserted,
		SkippedCount:  skipped,
		TotalReceived: len(rows),
	}, nil
}

// normalizeImportRow returns false for rows without a name.
func normalizeImportRow(row ImportRow) (model.Player, bool) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return model.Player{}, false
	}

	p := model.Player{
		Name:              name,
		MLBTeam:           strings.ToUpper(strings.TrimSpace(row.MLBTeam)),
		EligiblePositions: model.NormalizePositions(row.EligiblePositions),
		Projections:       normalizeProjections(row.Projections),
	}
	if len(p.EligiblePositions) == 0 {
		p.EligiblePositions = []model.Position{model.POS_UTIL}
	}
	if v, ok := model.ParseNumber(row.ProjectedValue); ok {
		p.ProjectedValue = roundedValue(v)
	}
	if v, ok := model.ParseNumber(row.ADP); ok {
		p.ADP = &v
	}
	return p, true
}

// normalizeProjections upper-cases keys, drops empty keys and values and turns
// numeric strings into numbers.
func normalizeProjections(raw map[string]any) model.Projections {
	result := make(model.Projections, len(raw))
	for k, v := range raw {
		key := strings.ToUpper(strings.TrimSpace(k))
		if key == "" || v == nil {
			continue
		}
		if n, ok := model.ParseNumber(v); ok {
			result[key] = n
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" {
			continue
		}
		result[key] = s
	}
	return result
}

func roundedValue(v float64) *int {
	r := int(math.Round(v))
	return &r
}

func playersByID(players []model.Player) map[string]*model.Player {
	result := make(map[string]*model.Player, len(players))
	for i := range players {
		result[players[i].ID] = &players[i]
	}
	return result
}

func teamsByID(teams []model.Team) map[string]*model.Team {
	result := make(map[string]*model.Team, len(teams))
	for i := range teams {
		result[teams[i].ID] = &teams[i]
	}
	return result
}
