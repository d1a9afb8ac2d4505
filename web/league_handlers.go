package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/unrolled/render"
)

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := ctrl.GetLeague(r.Context(), chi.URLParam(r, "leagueID"))
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, l)
	}
}

func addLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings controller.LeagueSettings
		if err := decodeBody(w, r, &settings); err != nil {
			writeError(w, r, render, err)
			return
		}

		l, err := ctrl.AddLeague(r.Context(), settings)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusCreated, l)
	}
}

func updateLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings controller.LeagueSettings
		if err := decodeBody(w, r, &settings); err != nil {
			writeError(w, r, render, err)
			return
		}

		l, err := ctrl.UpdateLeague(r.Context(), chi.URLParam(r, "leagueID"), settings)
		if err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, l)
	}
}

func deleteLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteLeague(r.Context(), chi.URLParam(r, "leagueID")); err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, messageResponse{Message: "League and associated resources deleted"})
	}
}

func clearPlayerPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.ClearPlayerPool(r.Context(), chi.URLParam(r, "leagueID")); err != nil {
			writeError(w, r, render, err)
			return
		}
		render.JSON(w, http.StatusOK, messageResponse{Message: "Player pool cleared"})
	}
}
