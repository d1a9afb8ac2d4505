package web

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/jchen-way/DraftOptimizer/draft"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type bidRequest struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Amount   any    `json:"amount"`
}

type keeperRequest struct {
	PlayerID    string `json:"playerId"`
	TeamID      string `json:"teamId"`
	KeeperPrice any    `json:"keeperPrice"`
}

type positionRequest struct {
	PlayerID    string `json:"playerId"`
	NewPosition string `json:"newPosition"`
}

type leagueRequest struct {
	LeagueID string `json:"leagueId"`
}

type undoResponse struct {
	Message string     `json:"message"`
	Success bool       `json:"success"`
	Undone  undonePick `json:"undone"`
}

type undonePick struct {
	PlayerID string           `json:"playerId"`
	TeamID   string           `json:"teamId"`
	Amount   int              `json:"amount"`
	Phase    model.DraftPhase `json:"phase"`
}

type finalizeResponse struct {
	Message string              `json:"message"`
	Summary draft.KeeperSummary `json:"summary"`
}

type taxiResponse struct {
	Message    string           `json:"message"`
	DraftPhase model.DraftPhase `json:"draftPhase"`
	BenchSlots int              `json:"benchSlots"`
}

// amountParam turns a loosely typed amount into the pointer the controller expects.
// A value that is present but not a number becomes invalid so that the range checks
// reject it.
func amountParam(v any, invalid int) *int {
	if v == nil {
		return nil
	}
	n, ok := wholeNumber(v)
	if !ok {
		n = invalid
	}
	return &n
}

func bidHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bidRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		res, err := ctrl.Bid(r.Context(), req.PlayerID, req.TeamID, amountParam(req.Amount, 0))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func keeperHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req keeperRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		res, err := ctrl.Keeper(r.Context(), req.PlayerID, req.TeamID, amountParam(req.KeeperPrice, -1))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func undoHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := ctrl.UndoLast(r.Context(), r.URL.Query().Get("leagueId"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, undoResponse{
			Message: "Last pick undone",
			Success: true,
			Undone: undonePick{
				PlayerID: e.PlayerID,
				TeamID:   e.TeamID,
				Amount:   e.Amount,
				Phase:    e.Phase,
			},
		})
	}
}

func swapPositionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req positionRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		res, err := ctrl.SwapPosition(r.Context(), req.PlayerID, req.NewPosition)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func historyHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := ctrl.DraftHistory(r.Context(), r.URL.Query().Get("leagueId"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, history)
	}
}

func finalizeKeepersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req leagueRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		summary, err := ctrl.FinalizeKeepers(r.Context(), req.LeagueID)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, finalizeResponse{Message: "Keeper period finalized", Summary: *summary})
	}
}

func reopenKeepersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req leagueRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		if err := ctrl.ReopenKeepers(r.Context(), req.LeagueID); err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, messageResponse{Message: "Keeper period reopened"})
	}
}

func startTaxiHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req leagueRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		status, err := ctrl.StartTaxiRound(r.Context(), req.LeagueID)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		msg := "Taxi round started"
		if status.AlreadyActive {
			msg = "Taxi round is already active"
		}
		render.JSON(w, http.StatusOK, taxiResponse{Message: msg, DraftPhase: status.DraftPhase, BenchSlots: status.BenchSlots})
	}
}

func postAnalysisHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := ctrl.PostDraftAnalysis(r.Context(), r.URL.Query().Get("leagueId"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, report)
	}
}

var exportHeader = []string{"Pick #", "Timestamp", "Phase", "Player", "Team", "Amount"}

// exportHandler writes the draft log as CSV unless format=json is requested.
func exportHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := r.URL.Query().Get("leagueId")
		export, err := ctrl.ExportDraftLog(r.Context(), leagueID)
		if err != nil {
			writeError(w, r, render, err)
			return
		}

		if strings.EqualFold(r.URL.Query().Get("format"), "json") {
			render.JSON(w, http.StatusOK, export)
			return
		}

		b, err := draftLogCSV(export.Picks)
		if err != nil {
			writeError(w, r, render, fmt.Errorf("error writing csv: %w", err))
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="draft-log-%s.csv"`, leagueID))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(b); err != nil {
			logrus.WithError(err).Warn("error writing draft log export")
		}
	}
}

func draftLogCSV(picks []controller.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, p := range picks {
		record := []string{
			strconv.Itoa(p.PickNumber),
			p.Timestamp,
			string(p.Phase),
			p.Player,
			p.Team,
			strconv.Itoa(p.Amount),
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}
