package store

import (
	"context"
	"errors"
	"time"

	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
)

// Erreurs sentinelles de la couche de persistance.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNoAccount         = errors.New("account not found")
	ErrNoProfile         = errors.New("profile not found")
	ErrNoSession         = errors.New("session not found")
)

// Store abstrait l'accès aux comptes, profils, soumissions et sessions.
// Les handlers et le moteur de jeu reçoivent cette interface en injection,
// jamais une connexion partagée.
type Store interface {
	// CreateAccount crée un compte avec 0 point.
	// Retourne ErrDuplicateUsername si le username est déjà pris.
	CreateAccount(ctx context.Context, username, passwordHash string) (*model.Account, error)
	GetAccount(ctx context.Context, username string) (*model.Account, error)

	// UpsertProfile insère ou met à jour le profil d'un joueur : une seule
	// ligne logique par username, jamais dupliquée.
	UpsertProfile(ctx context.Context, username, interest, background string) (*model.Profile, error)
	GetProfile(ctx context.Context, username string) (*model.Profile, error)

	ListSubmissions(ctx context.Context, username string) ([]model.Submission, error)
	// ListSubmissionsOn retourne les soumissions dont la date calendaire
	// (fuseau du serveur) correspond à celle de day.
	ListSubmissionsOn(ctx context.Context, username string, day time.Time) ([]model.Submission, error)

	// ApplySubmission insère l'enregistrement et crédite award points au
	// compte, atomiquement : les deux écritures réussissent ou aucune.
	// Retourne le solde de points rafraîchi.
	ApplySubmission(ctx context.Context, sub model.Submission, award int) (int, error)

	CreateSession(ctx context.Context, s model.Session) error
	// ResolveSession retourne le username lié à un token actif et non expiré,
	// ou ErrNoSession.
	ResolveSession(ctx context.Context, token string) (string, error)
	// DeleteSession invalide un token. Sans effet (et sans erreur) si aucune
	// session ne correspond.
	DeleteSession(ctx context.Context, token string) error
}
