package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implémente Store sur un pool pgx.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) CreateAccount(ctx context.Context, username, passwordHash string) (*model.Account, error) {
	var account model.Account
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users(username, password_hash, points, created_at)
		 VALUES($1, $2, 0, NOW())
		 RETURNING username, password_hash, points, created_at`,
		username, passwordHash,
	).Scan(&account.Username, &account.PasswordHash, &account.Points, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("could not create account: %w", err)
	}

	return &account, nil
}

func (s *Postgres) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	err := s.pool.QueryRow(ctx,
		`SELECT username, password_hash, points, created_at
		 FROM users WHERE username=$1`,
		username,
	).Scan(&account.Username, &account.PasswordHash, &account.Points, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoAccount
		}
		return nil, fmt.Errorf("could not get account: %w", err)
	}

	return &account, nil
}

func (s *Postgres) UpsertProfile(ctx context.Context, username, interest, background string) (*model.Profile, error) {
	var profile model.Profile
	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_profiles(username, interest, background, updated_at)
		 VALUES($1, $2, $3, NOW())
		 ON CONFLICT (username)
		 DO UPDATE SET interest=$2, background=$3, updated_at=NOW()
		 RETURNING username, interest, background, updated_at`,
		username, interest, background,
	).Scan(&profile.Username, &profile.Interest, &profile.Background, &profile.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("could not upsert profile: %w", err)
	}

	return &profile, nil
}

func (s *Postgres) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	var profile model.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT username, interest, background, updated_at
		 FROM user_profiles WHERE username=$1`,
		username,
	).Scan(&profile.Username, &profile.Interest, &profile.Background, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("could not get profile: %w", err)
	}

	return &profile, nil
}

func (s *Postgres) ListSubmissions(ctx context.Context, username string) ([]model.Submission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT username, task_id, task_title, submitted_at
		 FROM user_tasks WHERE username=$1
		 ORDER BY submitted_at ASC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

func (s *Postgres) ListSubmissionsOn(ctx context.Context, username string, day time.Time) ([]model.Submission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT username, task_id, task_title, submitted_at
		 FROM user_tasks
		 WHERE username=$1 AND submitted_at::date = $2::date
		 ORDER BY submitted_at ASC`,
		username, day.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("could not query submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// ApplySubmission exécute l'insertion et le crédit de points dans une même
// transaction : un échec de l'une annule l'autre.
func (s *Postgres) ApplySubmission(ctx context.Context, sub model.Submission, award int) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO user_tasks(username, task_id, task_title, submitted_at)
		 VALUES($1, $2, $3, $4)`,
		sub.Username, sub.TaskID, sub.TaskTitle, sub.SubmittedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("could not insert submission: %w", err)
	}

	var points int
	err = tx.QueryRow(ctx,
		`UPDATE users SET points = points + $1 WHERE username=$2 RETURNING points`,
		award, sub.Username,
	).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNoAccount
		}
		return 0, fmt.Errorf("could not credit points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("could not commit submission: %w", err)
	}

	return points, nil
}

func (s *Postgres) CreateSession(ctx context.Context, session model.Session) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions(token, username, ip_address, user_agent, is_active, created_at, expires_at)
		 VALUES($1, $2, $3, $4, true, $5, $6)`,
		session.Token, session.Username, session.IP, session.UserAgent,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}
	return nil
}

func (s *Postgres) ResolveSession(ctx context.Context, token string) (string, error) {
	var username string
	err := s.pool.QueryRow(ctx,
		`SELECT username FROM sessions
		 WHERE token=$1 AND is_active=true AND expires_at > NOW()`,
		token,
	).Scan(&username)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("could not resolve session: %w", err)
	}

	return username, nil
}

func (s *Postgres) DeleteSession(ctx context.Context, token string) error {
	// Invalidation inconditionnelle : 0 ligne touchée n'est pas une erreur.
	_, err := s.pool.Exec(ctx,
		`UPDATE sessions SET is_active=false WHERE token=$1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}

func scanSubmissions(rows pgx.Rows) ([]model.Submission, error) {
	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		if err := rows.Scan(&sub.Username, &sub.TaskID, &sub.TaskTitle, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("could not scan submission row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}
