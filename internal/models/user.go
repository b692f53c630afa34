package model

import (
	"time"
)

// Account représente un joueur inscrit : identifiant, secret et solde de points.
// Les points ne sont modifiés que par le moteur de soumission.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Profile contient les informations optionnelles d'un joueur.
// Une seule ligne par username, créée ou mise à jour par upsert.
type Profile struct {
	Username   string    `json:"username"`
	Interest   string    `json:"interest"`
	Background string    `json:"background"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// Completed indique si le profil est complet : les deux champs renseignés.
func (p Profile) Completed() bool {
	return p.Interest != "" && p.Background != ""
}

// Session lie un token opaque à un username.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	IP        string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
