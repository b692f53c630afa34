package api

import (
	"net/http"

	"github.com/ardra-p/Sustainability-Board-Game/internal/handler"
	"github.com/ardra-p/Sustainability-Board-Game/internal/middleware"
	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter(h *handler.Handler, sessions middleware.SessionResolver) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logger)

	// Routes publiques
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	// La déconnexion invalide le token quoi qu'il arrive, session valide ou
	// non : elle reste hors du sous-routeur authentifié.
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)

	// Tout le reste exige une session valide
	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.Auth(sessions))

	authenticatedRoutes.HandleFunc("/game", h.GameView).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/game/submit", h.SubmitTask).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/profile", h.UpdateProfile).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
