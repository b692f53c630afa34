package store

import (
	"context"
	"sync"
	"time"

	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
)

// Memory est une implémentation en mémoire de Store, protégée par un RWMutex.
// Utilisée par les tests et comme repli de développement sans PostgreSQL.
type Memory struct {
	mu          sync.RWMutex
	accounts    map[string]model.Account
	profiles    map[string]model.Profile
	submissions map[string][]model.Submission
	sessions    map[string]model.Session
}

func NewMemory() *Memory {
	return &Memory{
		accounts:    make(map[string]model.Account),
		profiles:    make(map[string]model.Profile),
		submissions: make(map[string][]model.Submission),
		sessions:    make(map[string]model.Session),
	}
}

func (m *Memory) CreateAccount(ctx context.Context, username, passwordHash string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[username]; exists {
		return nil, ErrDuplicateUsername
	}

	account := model.Account{
		Username:     username,
		PasswordHash: passwordHash,
		Points:       0,
		CreatedAt:    time.Now(),
	}
	m.accounts[username] = account
	return &account, nil
}

func (m *Memory) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[username]
	if !ok {
		return nil, ErrNoAccount
	}
	return &account, nil
}

func (m *Memory) UpsertProfile(ctx context.Context, username, interest, background string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile := model.Profile{
		Username:   username,
		Interest:   interest,
		Background: background,
		UpdatedAt:  time.Now(),
	}
	m.profiles[username] = profile
	return &profile, nil
}

func (m *Memory) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[username]
	if !ok {
		return nil, ErrNoProfile
	}
	return &profile, nil
}

func (m *Memory) ListSubmissions(ctx context.Context, username string) ([]model.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subs := make([]model.Submission, len(m.submissions[username]))
	copy(subs, m.submissions[username])
	return subs, nil
}

func (m *Memory) ListSubmissionsOn(ctx context.Context, username string, day time.Time) ([]model.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var subs []model.Submission
	y, mo, d := day.Date()
	for _, sub := range m.submissions[username] {
		sy, smo, sd := sub.SubmittedAt.Date()
		if sy == y && smo == mo && sd == d {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (m *Memory) ApplySubmission(ctx context.Context, sub model.Submission, award int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[sub.Username]
	if !ok {
		return 0, ErrNoAccount
	}

	account.Points += award
	m.accounts[sub.Username] = account
	m.submissions[sub.Username] = append(m.submissions[sub.Username], sub)
	return account.Points, nil
}

func (m *Memory) CreateSession(ctx context.Context, session model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Token] = session
	return nil
}

func (m *Memory) ResolveSession(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]
	if !ok || !session.IsActive || !session.ExpiresAt.After(time.Now()) {
		return "", ErrNoSession
	}
	return session.Username, nil
}

func (m *Memory) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
