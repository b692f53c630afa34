package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ardra-p/Sustainability-Board-Game/internal/middleware"
	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
)

// GameView retourne les tâches du niveau demandé (vide s'il est verrouillé),
// le solde de points et les soumissions du jour.
func (h *Handler) GameView(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.GetUsername(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "could not resolve user")
		return
	}

	level := 1
	if raw := r.URL.Query().Get("level"); raw != "" {
		level, err = strconv.Atoi(raw)
		if err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, "invalid level parameter")
			return
		}
	}

	view, err := h.engine.GameView(r.Context(), username, level)
	if err != nil {
		if errors.Is(err, store.ErrNoAccount) {
			utils.ErrorSimple(w, http.StatusNotFound, "account not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not build game view", err)
		return
	}

	utils.Success(w, view)
}

// SubmitTask reçoit une soumission multipart : task_id, description et photo
// optionnelle. Les rejets de règle sont des réponses 200 avec accepted=false.
func (h *Handler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.GetUsername(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "could not resolve user")
		return
	}

	// Limiter la taille du fichier à 10MB
	r.ParseMultipartForm(10 << 20)

	taskID, err := strconv.Atoi(r.FormValue("task_id"))
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid or missing task_id")
		return
	}
	description := r.FormValue("description")

	var photo io.Reader
	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/jpg" {
			utils.ErrorSimple(w, http.StatusBadRequest, "only JPEG and PNG images are allowed")
			return
		}
		photo = file
	}

	outcome, err := h.engine.SubmitTask(r.Context(), username, taskID, description, photo)
	if err != nil {
		if errors.Is(err, store.ErrNoAccount) {
			utils.ErrorSimple(w, http.StatusNotFound, "account not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not apply submission", err)
		return
	}

	utils.Success(w, outcome)
}
