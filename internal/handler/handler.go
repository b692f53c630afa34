package handler

import (
	"net/http"

	"github.com/ardra-p/Sustainability-Board-Game/internal/game"
	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
)

// Handler regroupe les dépendances injectées des handlers HTTP.
type Handler struct {
	store  store.Store
	engine *game.Engine
}

func New(st store.Store, engine *game.Engine) *Handler {
	return &Handler{store: st, engine: engine}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
