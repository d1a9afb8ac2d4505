package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/unrolled/render"
)

func listTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := ctrl.ListTeams(r.Context(), r.URL.Query().Get("leagueId"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func addTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in controller.TeamInput
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, render, err)
			return
		}

		t, err := ctrl.AddTeam(r.Context(), in)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusCreated, t)
	}
}

func updateTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in controller.TeamInput
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, render, err)
			return
		}

		t, err := ctrl.UpdateTeam(r.Context(), chi.URLParam(r, "teamID"), in)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, t)
	}
}

func deleteTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, messageResponse{Message: "Team deleted"})
	}
}

func rosterHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ctrl.GetRoster(r.Context(), chi.URLParam(r, "teamID"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, v)
	}
}
