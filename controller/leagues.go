package controller

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jchen-way/DraftOptimizer/draft"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/sirupsen/logrus"
)

// LeagueSettings are the user editable settings of a league. Numeric values may
// arrive as numbers or numeric strings.
type LeagueSettings struct {
	Name              *string        `json:"name"`
	TotalBudget       any            `json:"totalBudget"`
	RosterSlots       map[string]any `json:"rosterSlots"`
	BenchSlots        any            `json:"benchSlots"`
	ScoringCategories []string       `json:"scoringCategories"`
}

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	return c.db.ListLeagues(ctx)
}

func (c *controller) GetLeague(ctx context.Context, id string) (*model.League, error) {
	return c.db.GetLeague(ctx, id)
}

func (c *controller) AddLeague(ctx context.Context, settings LeagueSettings) (*model.League, error) {
	if settings.Name == nil || strings.TrimSpace(*settings.Name) == "" {
		return nil, model.Validationf("name is required")
	}

	l := &model.League{
		TotalBudget: c.defaults.TotalBudget,
		BenchSlots:  c.defaults.BenchSlots,
	}
	if err := applySettings(l, settings); err != nil {
		return nil, err
	}
	l.ApplyDefaults()

	if err := c.db.AddLeague(ctx, l); err != nil {
		return nil, fmt.Errorf("error saving league: %w", err)
	}
	return l, nil
}

func (c *controller) UpdateLeague(ctx context.Context, id string, settings LeagueSettings) (*model.League, error) {
	if settings.Name != nil && strings.TrimSpace(*settings.Name) == "" {
		return nil, model.Validationf("name cannot be empty")
	}

	var result *model.League
	err := c.withLeague(ctx, id, nil, func(s *draft.Snapshot) error {
		l := *s.League
		if err := applySettings(&l, settings); err != nil {
			return err
		}
		l.ApplyDefaults()
		if err := c.db.UpdateLeague(ctx, &l); err != nil {
			return fmt.Errorf("error saving league: %w", err)
		}
		result = &l
		return nil
	})
	return result, err
}

func (c *controller) DeleteLeague(ctx context.Context, id string) error {
	unlock, err := c.locker.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := c.db.DeleteLeague(ctx, id); err != nil {
		return err
	}
	logrus.WithField("leagueID", id).Info("league deleted")
	return nil
}

func (c *controller) ClearPlayerPool(ctx context.Context, leagueID string) error {
	unlock, err := c.locker.Lock(ctx, leagueID)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return err
	}
	active, err := c.db.HasDraftActivity(ctx, leagueID)
	if err != nil {
		return err
	}
	if active {
		return model.Conflictf("Cannot clear player pool after keeper or draft picks exist.")
	}
	return c.db.ClearPlayers(ctx, leagueID)
}

// applySettings copies every set field of settings onto l. Bench slots that are
// negative or not a number leave the current value in place.
func applySettings(l *model.League, settings LeagueSettings) error {
	if settings.Name != nil {
		l.Name = strings.TrimSpace(*settings.Name)
	}
	if settings.TotalBudget != nil {
		budget, ok := model.ParseNumber(settings.TotalBudget)
		if !ok || budget < 1 {
			return model.Validationf("totalBudget must be a positive number")
		}
		l.TotalBudget = int(math.Floor(budget))
	}
	if settings.BenchSlots != nil {
		l.BenchSlots = parseCount(settings.BenchSlots, l.Bench())
	}
	if settings.RosterSlots != nil {
		l.RosterSlots = parseRosterSlots(settings.RosterSlots)
	}
	if settings.ScoringCategories != nil {
		categories := make([]model.Category, len(settings.ScoringCategories))
		for i, c := range settings.ScoringCategories {
			categories[i] = model.Category(c)
		}
		l.ScoringCategories = model.NormalizeCategories(categories)
	}
	return nil
}

// parseCount floors a non-negative number and returns fallback for anything else.
func parseCount(v any, fallback int) int {
	n, ok := model.ParseNumber(v)
	if !ok || n < 0 {
		return fallback
	}
	return int(math.Floor(n))
}

// parseRosterSlots keeps the main roster positions with a usable count. The
// remaining positions are resolved by model.NormalizeRosterSlots.
func parseRosterSlots(raw map[string]any) model.RosterSlots {
	slots := make(model.RosterSlots, len(raw))
	for key, v := range raw {
		pos := model.Position(strings.ToUpper(strings.TrimSpace(key)))
		if !model.IsMainPosition(pos) {
			continue
		}
		if count := parseCount(v, -1); count >= 0 {
			slots[pos] = count
		}
	}
	return model.NormalizeRosterSlots(slots)
}
