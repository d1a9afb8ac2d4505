package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/jchen-way/DraftOptimizer/draft"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/roster"
)

type TeamInput struct {
	LeagueID  string       `json:"leagueId"`
	OwnerName *string      `json:"ownerName"`
	TeamName  *string      `json:"teamName"`
	IsMyTeam  *bool        `json:"isMyTeam"`
	Budget    *BudgetInput `json:"budget"`
}

// BudgetInput only carries the total. Spending is changed by draft actions alone.
type BudgetInput struct {
	Total *int `json:"total"`
}

// RosterView is a team with the players on its roster resolved.
type RosterView struct {
	Team    *model.Team   `json:"team"`
	Entries []RosterEntry `json:"entries"`
	Guard   roster.Guard  `json:"guard"`
}

type RosterEntry struct {
	model.RosterSlot
	Player *model.Player `json:"player"`
}

func (c *controller) ListTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	if leagueID == "" {
		return nil, model.Validationf("leagueId query param is required")
	}
	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	return c.db.ListTeams(ctx, leagueID)
}

func (c *controller) AddTeam(ctx context.Context, in TeamInput) (*model.Team, error) {
	if in.LeagueID == "" || in.OwnerName == nil || in.TeamName == nil || in.Budget == nil || in.Budget.Total == nil {
		return nil, model.Validationf("leagueId, ownerName, teamName and budget.total are required")
	}
	if *in.Budget.Total < 0 {
		return nil, model.Validationf("budget.total must be a non-negative number")
	}
	owner := strings.TrimSpace(*in.OwnerName)
	if owner == "" {
		return nil, model.Validationf("ownerName cannot be empty")
	}

	var result *model.Team
	err := c.withLeague(ctx, in.LeagueID, nil, func(s *draft.Snapshot) error {
		t := &model.Team{
			LeagueID:  s.League.ID,
			OwnerName: owner,
			TeamName:  strings.TrimSpace(*in.TeamName),
			Budget:    model.Budget{Total: *in.Budget.Total},
			Roster:    []model.RosterSlot{},
		}
		if in.IsMyTeam != nil {
			t.IsMyTeam = *in.IsMyTeam
		}
		t.RecomputeBudget()

		if err := c.db.AddTeam(ctx, t); err != nil {
			return fmt.Errorf("error saving team: %w", err)
		}
		result = t
		return nil
	})
	return result, err
}

func (c *controller) UpdateTeam(ctx context.Context, id string, in TeamInput) (*model.Team, error) {
	current, err := c.db.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	var result *model.Team
	err = c.withLeague(ctx, current.LeagueID, nil, func(s *draft.Snapshot) error {
		t, err := c.db.GetTeam(ctx, id)
		if err != nil {
			return err
		}
		if in.OwnerName != nil {
			owner := strings.TrimSpace(*in.OwnerName)
			if owner == "" {
				return model.Validationf("ownerName cannot be empty")
			}
			t.OwnerName = owner
		}
		if in.TeamName != nil {
			t.TeamName = strings.TrimSpace(*in.TeamName)
		}
		if in.IsMyTeam != nil {
			t.IsMyTeam = *in.IsMyTeam
		}
		if in.Budget != nil && in.Budget.Total != nil {
			if *in.Budget.Total < 0 {
				return model.Validationf("budget.total must be a non-negative number")
			}
			if *in.Budget.Total < t.Budget.Spent {
				return model.Validationf("budget.total cannot be less than the $%d already spent", t.Budget.Spent)
			}
			t.Budget.Total = *in.Budget.Total
		}
		t.RecomputeBudget()

		if err := c.db.UpdateTeam(ctx, t); err != nil {
			return fmt.Errorf("error saving team: %w", err)
		}
		result = t
		return nil
	})
	return result, err
}

func (c *controller) DeleteTeam(ctx context.Context, id string) error {
	current, err := c.db.GetTeam(ctx, id)
	if err != nil {
		return err
	}

	return c.withLeague(ctx, current.LeagueID, nil, func(s *draft.Snapshot) error {
		t, err := c.db.GetTeam(ctx, id)
		if err != nil {
			return err
		}
		if len(t.Roster) > 0 {
			return model.Conflictf("Cannot delete a team after players have been assigned")
		}
		return c.db.DeleteTeam(ctx, id)
	})
}

func (c *controller) GetRoster(ctx context.Context, teamID string) (*RosterView, error) {
	t, err := c.db.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	league, err := c.db.GetLeague(ctx, t.LeagueID)
	if err != nil {
		return nil, err
	}

	players, err := c.db.ListPlayers(ctx, t.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}
	byID := playersByID(players)

	v := &RosterView{
		Team:    t,
		Entries: make([]RosterEntry, 0, len(t.Roster)),
		Guard:   roster.GuardFor(t, league, nil),
	}
	for _, slot := range t.Roster {
		v.Entries = append(v.Entries, RosterEntry{RosterSlot: slot, Player: byID[slot.PlayerID]})
	}
	return v, nil
}
