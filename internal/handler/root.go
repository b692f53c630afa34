package handler

import (
	"net/http"

	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
)

// Root affiche toutes les routes disponibles de l'API
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Sustainability Board Game API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/register", "description": "Inscription joueur"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion joueur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion joueur"},
			},
			"game": []map[string]string{
				{"method": "GET", "path": "/game", "description": "Tâches du niveau demandé, points et soumissions du jour (param: level)"},
				{"method": "POST", "path": "/game/submit", "description": "Soumettre une éco-tâche (multipart: task_id, description, photo)"},
			},
			"profile": []map[string]string{
				{"method": "GET", "path": "/profile", "description": "Profil, complétion, points et historique"},
				{"method": "POST", "path": "/profile", "description": "Créer ou mettre à jour le profil"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
