package handler

import (
	"errors"
	"net/http"
	"time"

	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

// SessionDuration durée de validité d'une session (24h)
const SessionDuration = 24 * time.Hour

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// verifyCredential est le seul point de comparaison du secret : changer
// l'algorithme de hachage ne touche aucun autre call site.
func verifyCredential(account *model.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil
}

// Register crée un compte avec 0 point, puis ouvre directement une session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	account, err := h.store.CreateAccount(r.Context(), req.Username, string(hashed))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			utils.ErrorSimple(w, http.StatusConflict, "username already exists")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not create account", err)
		return
	}

	token, err := h.openSession(r, account.Username)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  account,
		"token": token,
	})
}

// Login vérifie le couple username/mot de passe et lie une session fraîche.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	account, err := h.store.GetAccount(r.Context(), req.Username)
	if err != nil || !verifyCredential(account, req.Password) {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.openSession(r, account.Username)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  account,
		"token": token,
	})
}

// Logout invalide le token inconditionnellement : déconnecter une session
// déjà absente répond quand même 200.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token != "" {
		if err := h.store.DeleteSession(r.Context(), token); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not logout", err)
			return
		}
	}
	utils.Success(w, map[string]bool{"success": true})
}

func (h *Handler) openSession(r *http.Request, username string) (string, error) {
	now := time.Now()
	session := model.Session{
		Token:     uuid.NewString(),
		Username:  username,
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
		IsActive:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}
	if err := h.store.CreateSession(r.Context(), session); err != nil {
		return "", err
	}
	return session.Token, nil
}
