// Package draft decides whether a draft action is legal for a league and, if it is,
// which writes it produces. Every operation works on a Snapshot that the caller read
// while holding the league's lock and returns a model.DraftMutation that the caller
// must apply atomically. Nothing here talks to storage.
package draft

import (
	"slices"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/roster"
)

// Snapshot is a consistent view of one league.
type Snapshot struct {
	League  *model.League
	Teams   []model.Team
	History []model.DraftHistoryEntry
	// Players holds at least every player the operation refers to.
	Players map[string]*model.Player
}

func (s *Snapshot) State() State {
	return StateOf(s.League, s.History)
}

func (s *Snapshot) team(id string) *model.Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

type Machine struct {
	clock clock.Clock
}

func New(clock clock.Clock) *Machine {
	return &Machine{clock: clock}
}

// KeeperSummary describes the league once the keeper period is closed.
type KeeperSummary struct {
	TotalKeepers       int `json:"totalKeepers"`
	TotalKeeperSpend   int `json:"totalKeeperSpend"`
	MinRemainingBudget int `json:"minRemainingBudget"`
	MaxRemainingBudget int `json:"maxRemainingBudget"`
}

// Bid assigns a player to a team. During the main round amount is required and
// bounded by the team's max bid. Once the taxi round has started the pick is free
// and goes to the bench.
func (m *Machine) Bid(s *Snapshot, playerID, teamID string, amount *int) (*model.DraftMutation, error) {
	if playerID == "" || teamID == "" {
		return nil, model.Validationf("playerId and teamId are required")
	}

	state := s.State()
	if state == StateTaxi {
		return m.taxiPick(s, playerID, teamID)
	}
	if !Allowed(state, OpBid) {
		return nil, model.Conflictf("Bids are not accepted in the %s phase", state)
	}

	if amount == nil {
		return nil, model.Validationf("amount is required during main draft round")
	}
	if *amount < 1 {
		return nil, model.Validationf("amount must be at least 1")
	}

	player, team, err := s.pair(playerID, teamID)
	if err != nil {
		return nil, err
	}

	pos, err := s.claimMainSlot(player, team, *amount, "Maximum allowed bid", "Team main roster is already full for this round")
	if err != nil {
		return nil, err
	}
	return m.acquire(s, player, team, *amount, model.PhaseMain, pos), nil
}

func (m *Machine) taxiPick(s *Snapshot, playerID, teamID string) (*model.DraftMutation, error) {
	player, team, err := s.pair(playerID, teamID)
	if err != nil {
		return nil, err
	}
	if roster.TaxiSlotsLeft(team, s.League) <= 0 {
		return nil, model.Conflictf("Team bench is already full for taxi round")
	}
	return m.acquire(s, player, team, 0, model.PhaseTaxi, model.POS_BENCH), nil
}

// Keeper logs a kept player at the given price. It uses the same slot and budget
// checks as a main round bid but allows a price of zero.
func (m *Machine) Keeper(s *Snapshot, playerID, teamID string, price *int) (*model.DraftMutation, error) {
	if playerID == "" || teamID == "" || price == nil {
		return nil, model.Validationf("playerId, teamId and keeperPrice are required")
	}
	if *price < 0 {
		return nil, model.Validationf("keeperPrice must be a non-negative number")
	}

	if s.League.KeeperFinalized {
		return nil, model.Conflictf("Keeper period has been finalized")
	}
	if !Allowed(s.State(), OpKeeper) {
		return nil, model.Conflictf("Cannot add keeper entries after taxi round has started")
	}
	player, team, err := s.pair(playerID, teamID)
	if err != nil {
		return nil, err
	}

	pos, err := s.claimMainSlot(player, team, *price, "Maximum allowed keeper cost", "Team main roster is already full")
	if err != nil {
		return nil, err
	}
	return m.acquire(s, player, team, *price, model.PhaseKeeper, pos), nil
}

// Undo reverses the most recent history entry.
func (m *Machine) Undo(s *Snapshot) (*model.DraftMutation, error) {
	last := model.LatestEntry(s.History)
	if last == nil {
		return nil, model.NotFoundf("No draft history to undo")
	}
	if s.League.KeeperFinalized && last.Phase == model.PhaseKeeper {
		return nil, model.Conflictf("Keeper entries are finalized and cannot be undone")
	}

	p, found := s.Players[last.PlayerID]
	if !found || p == nil {
		return nil, model.Inconsistentf("player %s from the last pick no longer exists", last.PlayerID)
	}
	t := s.team(last.TeamID)
	if t == nil {
		return nil, model.Inconsistentf("team %s from the last pick no longer exists", last.TeamID)
	}
	idx := t.SlotIndex(last.PlayerID)
	if idx < 0 {
		return nil, model.Inconsistentf("player %s is not on the roster of team %s", last.PlayerID, last.TeamID)
	}

	player := p.Clone()
	player.ResetDraft()

	team := t.Clone()
	team.Roster = slices.Delete(team.Roster, idx, idx+1)
	team.Budget.Spent = max(0, team.Budget.Spent-last.Amount)
	team.RecomputeBudget()

	return &model.DraftMutation{
		Player:        player,
		Team:          team,
		RemoveHistory: last,
	}, nil
}

// FinalizeKeepers closes the keeper period. It is idempotent: the returned mutation
// is nil when the league was already finalized.
func (m *Machine) FinalizeKeepers(s *Snapshot) (*model.DraftMutation, KeeperSummary) {
	var mutation *model.DraftMutation
	if !s.League.KeeperFinalized {
		league := *s.League
		now := m.clock.Now().UTC()
		league.KeeperFinalized = true
		league.KeeperFinalizedAt = &now
		mutation = &model.DraftMutation{League: &league}
	}

	summary := KeeperSummary{}
	for _, e := range s.History {
		if e.Phase == model.PhaseKeeper {
			summary.TotalKeepers++
			summary.TotalKeeperSpend += e.Amount
		}
	}
	for i, t := range s.Teams {
		if i == 0 || t.Budget.Remaining < summary.MinRemainingBudget {
			summary.MinRemainingBudget = t.Budget.Remaining
		}
		if i == 0 || t.Budget.Remaining > summary.MaxRemainingBudget {
			summary.MaxRemainingBudget = t.Budget.Remaining
		}
	}
	return mutation, summary
}

// ReopenKeepers fails once a main round pick has been logged.
func (m *Machine) ReopenKeepers(s *Snapshot) (*model.DraftMutation, error) {
	if model.HasPhase(s.History, model.PhaseMain) {
		return nil, model.Conflictf("Cannot reopen keepers after main draft picks have been logged")
	}
	league := *s.League
	league.KeeperFinalized = false
	league.KeeperFinalizedAt = nil
	return &model.DraftMutation{League: &league}, nil
}

// StartTaxiRound moves the league into the taxi round. The mutation is nil when
// the taxi round is already active.
func (m *Machine) StartTaxiRound(s *Snapshot) (*model.DraftMutation, error) {
	if s.State() == StateTaxi {
		return nil, nil
	}
	if len(s.Teams) == 0 {
		return nil, model.Conflictf("Add at least one team before starting taxi round")
	}
	if !roster.AllTeamsMainRostersFull(s.Teams, s.League) {
		return nil, model.Conflictf("Cannot start taxi round until every team fills its main roster.")
	}
	if s.League.Bench() <= 0 {
		return nil, model.Conflictf("Bench slots are set to 0. Increase bench slots in league settings first.")
	}

	league := *s.League
	now := m.clock.Now().UTC()
	league.DraftPhase = model.PhaseTaxi
	league.TaxiRoundStartedAt = &now
	return &model.DraftMutation{League: &league}, nil
}

// SwapPosition moves a rostered player to another eligible main roster position.
// Moving a player to the position it already holds changes nothing.
func (m *Machine) SwapPosition(s *Snapshot, playerID string, newPosition string) (*model.DraftMutation, error) {
	if playerID == "" || newPosition == "" {
		return nil, model.Validationf("playerId and newPosition are required")
	}
	pos := model.ParsePosition(newPosition)
	if pos == "" {
		return nil, model.Validationf("newPosition is required")
	}

	p, found := s.Players[playerID]
	if !found || p == nil {
		return nil, model.NotFoundf("Player not found")
	}
	if !p.IsDrafted || p.DraftedBy == "" {
		return nil, model.Conflictf("Player is not on a team")
	}
	if !p.IsEligible(pos) {
		return nil, model.Validationf("newPosition must be in player eligiblePositions")
	}
	t := s.team(p.DraftedBy)
	if t == nil {
		return nil, model.NotFoundf("Team not found")
	}

	idx := t.SlotIndex(playerID)
	if idx < 0 {
		return nil, model.Inconsistentf("Player not found on team roster")
	}
	slot := t.Roster[idx]
	if slot.DraftPhase == model.PhaseTaxi {
		return nil, model.Conflictf("Taxi round players cannot be reassigned to main roster slots")
	}
	if slot.Position == pos {
		return &model.DraftMutation{}, nil
	}

	limit := s.League.Slots()[pos]
	if limit <= 0 {
		return nil, model.Conflictf("Position is not part of this league roster configuration")
	}
	taken := 0
	for _, other := range t.Roster {
		if other.PlayerID != playerID && other.Position == pos && other.DraftPhase != model.PhaseTaxi {
			taken++
		}
	}
	if taken >= limit {
		return nil, model.Conflictf("No open slot available for selected position")
	}

	team := t.Clone()
	team.Roster[idx].Position = pos
	player := p.Clone()
	player.ActivePosition = pos
	return &model.DraftMutation{Player: player, Team: team}, nil
}

// pair resolves the player and team of an acquisition and checks that both belong
// to the snapshot's league and that the player is still available.
func (s *Snapshot) pair(playerID, teamID string) (*model.Player, *model.Team, error) {
	player, found := s.Players[playerID]
	if !found || player == nil {
		return nil, nil, model.NotFoundf("Player not found")
	}
	team := s.team(teamID)
	if team == nil {
		return nil, nil, model.NotFoundf("Team not found")
	}
	if player.LeagueID != team.LeagueID || team.LeagueID != s.League.ID {
		return nil, nil, model.Validationf("Player and team must belong to the same league")
	}
	if player.IsDrafted {
		return nil, nil, model.Conflictf("Player is already drafted")
	}
	return player, team, nil
}

// claimMainSlot runs the constraint checks shared by keepers and bids and returns
// the position the player will occupy.
func (s *Snapshot) claimMainSlot(player *model.Player, team *model.Team, amount int, limitLabel, fullMessage string) (model.Position, error) {
	guard := roster.GuardFor(team, s.League, player.EligiblePositions)
	if guard.MainSlotsLeft <= 0 {
		return "", model.Conflictf("%s", fullMessage)
	}
	if len(guard.OpenPositions) == 0 {
		return "", model.Conflictf("No open roster slot is available for this player on the selected team.")
	}
	if amount > guard.MaxBid {
		return "", model.Conflictf("%s is $%d with %d roster spots left.", limitLabel, guard.MaxBid, guard.MainSlotsLeft)
	}
	return guard.OpenPositions[0], nil
}

func (m *Machine) acquire(s *Snapshot, p *model.Player, t *model.Team, amount int, phase model.DraftPhase, pos model.Position) *model.DraftMutation {
	player := p.Clone()
	player.MarkDrafted(t.ID, amount, phase, pos)

	team := t.Clone()
	if phase != model.PhaseTaxi {
		team.Budget.Spent += amount
	}
	team.Roster = append(team.Roster, model.RosterSlot{
		PlayerID:   player.ID,
		Position:   pos,
		Cost:       amount,
		DraftPhase: phase,
	})
	team.RecomputeBudget()

	return &model.DraftMutation{
		Player: player,
		Team:   team,
		AddHistory: &model.DraftHistoryEntry{
			ID:       uuid.NewString(),
			LeagueID: s.League.ID,
			PlayerID: player.ID,
			TeamID:   team.ID,
			Amount:   amount,
			Phase:    phase,
			Created:  m.clock.Now().UTC(),
		},
	}
}
