package testutils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jchen-way/DraftOptimizer/containers"
	"github.com/jchen-way/DraftOptimizer/db"
	"github.com/jchen-way/DraftOptimizer/model"
)

// StartTime is the time the TestDB clock starts at.
var StartTime = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

var (
	CalRaleigh     = hitter("Cal Raleigh", "SEA", []model.Position{model.POS_C}, 78, 38, 96, 4, 0.228, 120)
	AdleyRutschman = hitter("Adley Rutschman", "BAL", []model.Position{model.POS_C, model.POS_UTIL}, 80, 21, 80, 2, 0.262, 95)
	FreddieFreeman = hitter("Freddie Freeman", "LAD", []model.Position{model.POS_1B}, 95, 25, 95, 8, 0.290, 40)
	PeteAlonso     = hitter("Pete Alonso", "NYM", []model.Position{model.POS_1B}, 85, 36, 105, 3, 0.245, 60)
	AaronJudge     = hitter("Aaron Judge", "NYY", []model.Position{model.POS_OF}, 115, 48, 125, 8, 0.290, 2)
	JuanSoto       = hitter("Juan Soto", "NYM", []model.Position{model.POS_OF}, 118, 36, 105, 10, 0.285, 5)
	KyleTucker     = hitter("Kyle Tucker", "CHC", []model.Position{model.POS_OF}, 95, 30, 95, 20, 0.275, 12)
	MookieBetts    = hitter("Mookie Betts", "LAD", []model.Position{model.POS_SS, model.POS_OF}, 100, 24, 80, 12, 0.280, 30)
	TarikSkubal    = pitcher("Tarik Skubal", "DET", 15, 0, 225, 2.70, 0.98, 10)
	ZackWheeler    = pitcher("Zack Wheeler", "PHI", 14, 0, 210, 3.05, 1.02, 18)
	EmmanuelClase  = pitcher("Emmanuel Clase", "CLE", 4, 40, 70, 2.10, 0.95, 45)
	LoganWebb      = pitcher("Logan Webb", "SF", 13, 0, 185, 3.30, 1.12, 55)
)

var FixturePlayers = []model.Player{CalRaleigh, AdleyRutschman, FreddieFreeman, PeteAlonso, AaronJudge, JuanSoto,
	KyleTucker, MookieBetts, TarikSkubal, ZackWheeler, EmmanuelClase, LoganWebb}

var fixtureCategories = []model.Category{model.CAT_R, model.CAT_HR, model.CAT_RBI, model.CAT_SB, model.CAT_AVG,
	model.CAT_W, model.CAT_SV, model.CAT_K, model.CAT_ERA, model.CAT_WHIP}

func hitter(name, team string, positions []model.Position, r, hr, rbi, sb int, avg, adp float64) model.Player {
	return model.Player{
		Name:              name,
		MLBTeam:           team,
		EligiblePositions: positions,
		Projections: model.Projections{
			"R":   float64(r),
			"HR":  float64(hr),
			"RBI": float64(rbi),
			"SB":  float64(sb),
			"AVG": avg,
			"PA":  650.0,
		},
		ADP: &adp,
	}
}

func pitcher(name, team string, w, sv, k int, era, whip, adp float64) model.Player {
	return model.Player{
		Name:              name,
		MLBTeam:           team,
		EligiblePositions: []model.Position{model.POS_P},
		Projections: model.Projections{
			"W":    float64(w),
			"SV":   float64(sv),
			"K":    float64(k),
			"ERA":  era,
			"WHIP": whip,
			"IP":   180.0,
		},
		ADP: &adp,
	}
}

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(StartTime)

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// Fixture is a small two team league ready to draft. Every team has one slot at
// C, 1B, OF and P, a bench of one and a budget of $20.
type Fixture struct {
	League  *model.League
	MyTeam  *model.Team
	Rival   *model.Team
	Players map[string]*model.Player
}

// Player returns the fixture player with the given name.
func (f *Fixture) Player(name string) *model.Player {
	p, found := f.Players[name]
	if !found {
		panic(fmt.Sprintf("no fixture player named %s", name))
	}
	return p
}

func InsertFixture(d db.DB, name string) (*Fixture, error) {
	ctx := context.Background()

	l := &model.League{
		Name:        name,
		TotalBudget: 20,
		BenchSlots:  1,
		RosterSlots: model.RosterSlots{
			model.POS_C:    1,
			model.POS_1B:   1,
			model.POS_2B:   0,
			model.POS_3B:   0,
			model.POS_SS:   0,
			model.POS_OF:   1,
			model.POS_UTIL: 0,
			model.POS_P:    1,
		},
		ScoringCategories: fixtureCategories,
	}
	l.ApplyDefaults()
	if err := d.AddLeague(ctx, l); err != nil {
		return nil, fmt.Errorf("error adding fixture league: %w", err)
	}

	f := &Fixture{
		League:  l,
		MyTeam:  &model.Team{LeagueID: l.ID, OwnerName: "Alice", TeamName: "Sluggers", IsMyTeam: true, Budget: model.Budget{Total: 20}},
		Rival:   &model.Team{LeagueID: l.ID, OwnerName: "Bob", TeamName: "Aces", Budget: model.Budget{Total: 20}},
		Players: make(map[string]*model.Player, len(FixturePlayers)),
	}
	for _, t := range []*model.Team{f.MyTeam, f.Rival} {
		if err := d.AddTeam(ctx, t); err != nil {
			return nil, fmt.Errorf("error adding fixture team: %w", err)
		}
	}

	players := make([]model.Player, len(FixturePlayers))
	for i, p := range FixturePlayers {
		players[i] = *p.Clone()
		players[i].LeagueID = l.ID
	}
	if _, err := d.AddPlayers(ctx, players); err != nil {
		return nil, fmt.Errorf("error adding fixture players: %w", err)
	}
	for i := range players {
		f.Players[players[i].Name] = &players[i]
	}
	return f, nil
}
