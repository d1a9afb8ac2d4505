package controller

import (
	"context"
	"time"

	"github.com/jchen-way/DraftOptimizer/analysis"
	"github.com/jchen-way/DraftOptimizer/draft"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/roster"
	"github.com/sirupsen/logrus"
)

// HistoryLimit is the number of entries DraftHistory returns.
const HistoryLimit = 50

// DraftResult is the state of the player and team after a draft action.
type DraftResult struct {
	Team   *model.Team   `json:"team"`
	Player *model.Player `json:"player"`
}

type TaxiStatus struct {
	AlreadyActive bool             `json:"alreadyActive"`
	DraftPhase    model.DraftPhase `json:"draftPhase"`
	BenchSlots    int              `json:"benchSlots"`
}

// HistoryItem is a history entry with its player and team names resolved.
type HistoryItem struct {
	model.DraftHistoryEntry
	PlayerName string `json:"playerName"`
	OwnerName  string `json:"ownerName"`
	TeamName   string `json:"teamName"`
}

type DraftExport struct {
	LeagueID    string      `json:"leagueId"`
	GeneratedAt time.Time   `json:"generatedAt"`
	TotalPicks  int         `json:"totalPicks"`
	Picks       []ExportRow `json:"picks"`
}

type ExportRow struct {
	PickNumber int              `json:"pickNumber"`
	Timestamp  string           `json:"timestamp"`
	Phase      model.DraftPhase `json:"phase"`
	Player     string           `json:"player"`
	Team       string           `json:"team"`
	Amount     int              `json:"amount"`
}

func (c *controller) Bid(ctx context.Context, playerID, teamID string, amount *int) (*DraftResult, error) {
	if playerID == "" || teamID == "" {
		return nil, model.Validationf("playerId and teamId are required")
	}
	return c.acquire(ctx, playerID, teamID, func(s *draft.Snapshot) (*model.DraftMutation, error) {
		return c.machine.Bid(s, playerID, teamID, amount)
	})
}

func (c *controller) Keeper(ctx context.Context, playerID, teamID string, price *int) (*DraftResult, error) {
	if playerID == "" || teamID == "" || price == nil {
		return nil, model.Validationf("playerId, teamId and keeperPrice are required")
	}
	return c.acquire(ctx, playerID, teamID, func(s *draft.Snapshot) (*model.DraftMutation, error) {
		return c.machine.Keeper(s, playerID, teamID, price)
	})
}

// acquire runs a keeper or bid decision for the team's league and saves it.
func (c *controller) acquire(ctx context.Context, playerID, teamID string, decide func(s *draft.Snapshot) (*model.DraftMutation, error)) (*DraftResult, error) {
	team, err := c.db.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	var result *DraftResult
	err = c.withLeague(ctx, team.LeagueID, []string{playerID}, func(s *draft.Snapshot) error {
		m, err := decide(s)
		if err != nil {
			return err
		}
		if err := c.apply(ctx, m); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"leagueID": s.League.ID,
			"playerID": m.Player.ID,
			"teamID":   m.Team.ID,
			"amount":   m.AddHistory.Amount,
			"phase":    m.AddHistory.Phase,
		}).Info("player drafted")

		result = &DraftResult{Team: m.Team, Player: m.Player}
		return nil
	})
	return result, err
}

func (c *controller) UndoLast(ctx context.Context, leagueID string) (*model.DraftHistoryEntry, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId query param is required")
	}

	var undone *model.DraftHistoryEntry
	err := c.withLeague(ctx, leagueID, nil, func(s *draft.Snapshot) error {
		m, err := c.machine.Undo(s)
		if err != nil {
			return err
		}
		if err := c.apply(ctx, m); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"leagueID": leagueID,
			"playerID": m.RemoveHistory.PlayerID,
			"teamID":   m.RemoveHistory.TeamID,
		}).Info("last pick undone")

		undone = m.RemoveHistory
		return nil
	})
	return undone, err
}

func (c *controller) SwapPosition(ctx context.Context, playerID, newPosition string) (*DraftResult, error) {
	if playerID == "" || newPosition == "" {
		return nil, model.Validationf("playerId and newPosition are required")
	}
	p, err := c.db.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var result *DraftResult
	err = c.withLeague(ctx, p.LeagueID, []string{playerID}, func(s *draft.Snapshot) error {
		m, err := c.machine.SwapPosition(s, playerID, newPosition)
		if err != nil {
			return err
		}
		if err := c.apply(ctx, m); err != nil {
			return err
		}

		result = &DraftResult{Team: m.Team, Player: m.Player}
		if m.Empty() {
			result.Player = s.Players[playerID]
			if t, found := teamsByID(s.Teams)[result.Player.DraftedBy]; found {
				result.Team = t
			}
		}
		return nil
	})
	return result, err
}

func (c *controller) FinalizeKeepers(ctx context.Context, leagueID string) (*draft.KeeperSummary, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId is required")
	}

	var summary draft.KeeperSummary
	err := c.withLeague(ctx, leagueID, nil, func(s *draft.Snapshot) error {
		var m *model.DraftMutation
		m, summary = c.machine.FinalizeKeepers(s)
		return c.apply(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *controller) ReopenKeepers(ctx context.Context, leagueID string) error {
	if leagueID == "" {
		return model.Validationf("leagueId is required")
	}
	return c.withLeague(ctx, leagueID, nil, func(s *draft.Snapshot) error {
		m, err := c.machine.ReopenKeepers(s)
		if err != nil {
			return err
		}
		return c.apply(ctx, m)
	})
}

func (c *controller) StartTaxiRound(ctx context.Context, leagueID string) (*TaxiStatus, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId is required")
	}

	var status *TaxiStatus
	err := c.withLeague(ctx, leagueID, nil, func(s *draft.Snapshot) error {
		m, err := c.machine.StartTaxiRound(s)
		if err != nil {
			return err
		}
		if err := c.apply(ctx, m); err != nil {
			return err
		}
		status = &TaxiStatus{
			AlreadyActive: m == nil,
			DraftPhase:    model.PhaseTaxi,
			BenchSlots:    s.League.Bench(),
		}
		return nil
	})
	return status, err
}

func (c *controller) DraftHistory(ctx context.Context, leagueID string) ([]HistoryItem, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId query param is required")
	}
	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	history, err := c.db.ListHistory(ctx, leagueID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	players, teams, err := c.names(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(history))
	for _, e := range history {
		item := HistoryItem{DraftHistoryEntry: e}
		if p, found := players[e.PlayerID]; found {
			item.PlayerName = p.Name
		}
		if t, found := teams[e.TeamID]; found {
			item.OwnerName = t.OwnerName
			item.TeamName = t.TeamName
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *controller) ExportDraftLog(ctx context.Context, leagueID string) (*DraftExport, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId query param is required")
	}
	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	history, err := c.db.ListHistory(ctx, leagueID, 0)
	if err != nil {
		return nil, err
	}
	players, teams, err := c.names(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	log := analysis.DraftLog(history, players, teams)
	export := &DraftExport{
		LeagueID:    leagueID,
		GeneratedAt: c.clock.Now().UTC(),
		TotalPicks:  len(log),
		Picks:       make([]ExportRow, 0, len(log)),
	}
	for _, row := range log {
		team := row.TeamName
		if team == "" {
			team = row.TeamOwner
		}
		export.Picks = append(export.Picks, ExportRow{
			PickNumber: row.PickNumber,
			Timestamp:  row.Timestamp,
			Phase:      row.Phase,
			Player:     row.PlayerName,
			Team:       team,
			Amount:     row.Amount,
		})
	}
	return export, nil
}

func (c *controller) PostDraftAnalysis(ctx context.Context, leagueID string) (*analysis.Report, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId query param is required")
	}
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	teams, err := c.db.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	if len(teams) == 0 {
		return nil, model.Conflictf("Add at least one team before running post-draft analysis.")
	}
	if !roster.AllTeamsMainRostersFull(teams, league) {
		return nil, model.Conflictf("Post-draft analysis is available after every team fills the main draft roster.")
	}
	// leagues without bench slots never enter the taxi round
	if league.Bench() > 0 && !roster.TaxiRoundComplete(teams, league) {
		return nil, model.Conflictf("Post-draft analysis unlocks after taxi round is complete for all teams.")
	}

	players, err := c.db.ListPlayers(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	history, err := c.db.ListHistory(ctx, leagueID, 0)
	if err != nil {
		return nil, err
	}

	return analysis.Build(analysis.Input{
		League:  league,
		Teams:   teams,
		Players: players,
		History: history,
	}, c.clock.Now()), nil
}

// names loads the league's players and teams keyed by ID.
func (c *controller) names(ctx context.Context, leagueID string) (map[string]*model.Player, map[string]*model.Team, error) {
	players, err := c.db.ListPlayers(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	teams, err := c.db.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	return playersByID(players), teamsByID(teams), nil
}
