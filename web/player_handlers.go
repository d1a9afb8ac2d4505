package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/unrolled/render"
)

func listPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		q := controller.PlayerQuery{
			LeagueID: params.Get("leagueId"),
			Query:    params.Get("q"),
			Position: params.Get("position"),
		}
		switch strings.ToLower(params.Get("drafted")) {
		case "true":
			drafted := true
			q.Drafted = &drafted
		case "false":
			drafted := false
			q.Drafted = &drafted
		}
		// an unparsable limit falls back to the default
		if limit, err := strconv.Atoi(params.Get("limit")); err == nil {
			q.Limit = limit
		}

		players, err := ctrl.ListPlayers(r.Context(), q)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, players)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func addCustomPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in controller.CustomPlayer
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, render, err)
			return
		}

		p, err := ctrl.AddCustomPlayer(r.Context(), in)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusCreated, p)
	}
}

type importRequest struct {
	LeagueID string                 `json:"leagueId"`
	Players  []controller.ImportRow `json:"players"`
}

func importPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, render, err)
			return
		}

		res, err := ctrl.ImportPlayers(r.Context(), req.LeagueID, req.Players)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusCreated, res)
	}
}
