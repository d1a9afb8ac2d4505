package draft

import "github.com/jchen-way/DraftOptimizer/model"

// State is the phase of a league's draft as seen by the state machine.
type State string

const (
	// StateKeeper is the keeper period: keepers are not finalized and no main
	// round pick has been logged yet.
	StateKeeper State = "KEEPER"
	StateMain   State = "MAIN"
	StateTaxi   State = "TAXI"
)

type Op string

const (
	OpKeeper          Op = "keeper"
	OpBid             Op = "bid"
	OpTaxiPick        Op = "taxi pick"
	OpUndo            Op = "undo"
	OpFinalizeKeepers Op = "finalize keepers"
	OpReopenKeepers   Op = "reopen keepers"
	OpStartTaxi       Op = "start taxi round"
	OpSwapPosition    Op = "swap position"
)

// transitions lists the operations each state accepts. Operation specific
// preconditions are checked by the operations themselves.
var transitions = map[State][]Op{
	StateKeeper: {OpKeeper, OpBid, OpUndo, OpFinalizeKeepers, OpReopenKeepers, OpStartTaxi, OpSwapPosition},
	StateMain:   {OpKeeper, OpBid, OpUndo, OpFinalizeKeepers, OpReopenKeepers, OpStartTaxi, OpSwapPosition},
	StateTaxi:   {OpTaxiPick, OpUndo, OpFinalizeKeepers, OpReopenKeepers, OpStartTaxi, OpSwapPosition},
}

// StateOf derives the current state from the league flags and its history.
func StateOf(league *model.League, history []model.DraftHistoryEntry) State {
	if league.Phase() == model.PhaseTaxi {
		return StateTaxi
	}
	if !league.KeeperFinalized && !model.HasPhase(history, model.PhaseMain) {
		return StateKeeper
	}
	return StateMain
}

// Allowed reports whether op may be attempted in state s.
func Allowed(s State, op Op) bool {
	for _, o := range transitions[s] {
		if o == op {
			return true
		}
	}
	return false
}
