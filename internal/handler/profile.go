package handler

import (
	"errors"
	"net/http"

	"github.com/ardra-p/Sustainability-Board-Game/internal/middleware"
	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
)

type profileResponse struct {
	Username   string             `json:"username"`
	Interest   string             `json:"interest"`
	Background string             `json:"background"`
	Completed  bool               `json:"completed"`
	Points     int                `json:"points"`
	History    []model.Submission `json:"history"`
}

// GetProfile retourne le profil, son état de complétion, le solde de points
// et l'historique complet des soumissions.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.GetUsername(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "could not resolve user")
		return
	}

	profile, err := h.store.GetProfile(r.Context(), username)
	if err != nil {
		if !errors.Is(err, store.ErrNoProfile) {
			utils.Error(w, http.StatusInternalServerError, "could not get profile", err)
			return
		}
		// Pas encore de profil : champs vides, completed=false.
		profile = &model.Profile{Username: username}
	}

	h.respondProfile(w, r, profile)
}

// UpdateProfile upsert le profil : insertion à la première écriture, mise à
// jour en place ensuite.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.GetUsername(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "could not resolve user")
		return
	}

	var req struct {
		Interest   string `json:"interest"`
		Background string `json:"background"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := h.store.UpsertProfile(r.Context(), username, req.Interest, req.Background)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update profile", err)
		return
	}

	h.respondProfile(w, r, profile)
}

func (h *Handler) respondProfile(w http.ResponseWriter, r *http.Request, profile *model.Profile) {
	account, err := h.store.GetAccount(r.Context(), profile.Username)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not get account", err)
		return
	}

	history, err := h.engine.History(r.Context(), profile.Username)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list submissions", err)
		return
	}

	utils.Success(w, profileResponse{
		Username:   profile.Username,
		Interest:   profile.Interest,
		Background: profile.Background,
		Completed:  profile.Completed(),
		Points:     account.Points,
		History:    history,
	})
}
