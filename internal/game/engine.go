package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ardra-p/Sustainability-Board-Game/internal/catalog"
	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/uploads"
	"github.com/ardra-p/Sustainability-Board-Game/internal/utils"
)

// Règles du jeu : deux soumissions par jour, 20 points par tâche acceptée.
const (
	DailyCap  = 2
	TaskAward = 20
)

// Reason explique pourquoi une soumission n'a pas été acceptée.
type Reason string

const (
	// ReasonDailyLimitOrDuplicate : plafond journalier atteint ou tâche déjà
	// soumise aujourd'hui. Rejet sans changement d'état, pas une erreur.
	ReasonDailyLimitOrDuplicate Reason = "daily_limit_or_duplicate"
	// ReasonUnknownOrLockedTask : id inconnu du catalogue ou niveau encore
	// verrouillé pour le solde de points courant.
	ReasonUnknownOrLockedTask Reason = "unknown_or_locked_task"
)

// Outcome est le résultat d'une soumission, accepté ou non.
type Outcome struct {
	Accepted       bool   `json:"accepted"`
	Reason         Reason `json:"reason,omitempty"`
	Points         int    `json:"points"`
	SubmittedToday []int  `json:"submittedToday"`
	UnlockedLevel  int    `json:"unlockedLevel"`
	PhotoURL       string `json:"photoUrl,omitempty"`
	// PhotoError signale un échec d'archivage de la photo. La soumission
	// reste acceptée : la photo est une preuve, pas l'état du jeu.
	PhotoError string `json:"photoError,omitempty"`
}

// View rassemble les données de la page de jeu pour un joueur.
type View struct {
	Username       string                 `json:"username"`
	Level          int                    `json:"level"`
	UnlockedLevel  int                    `json:"unlockedLevel"`
	Points         int                    `json:"points"`
	Tasks          []model.TaskDefinition `json:"tasks"`
	SubmittedToday []int                  `json:"submittedToday"`
	MaxSubmit      int                    `json:"maxSubmit"`
}

// Engine applique les règles de soumission au-dessus du Store injecté.
type Engine struct {
	store     store.Store
	artifacts uploads.Artifacts
	now       func() time.Time

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewEngine construit le moteur. artifacts peut être nil : les photos sont
// alors ignorées sans erreur.
func NewEngine(st store.Store, artifacts uploads.Artifacts) *Engine {
	return &Engine{
		store:     st,
		artifacts: artifacts,
		now:       time.Now,
		users:     make(map[string]*sync.Mutex),
	}
}

// userLock retourne le verrou propre à un joueur. Les soumissions d'un même
// joueur sont sérialisées ; des joueurs différents ne se bloquent pas.
func (e *Engine) userLock(username string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.users[username]
	if !ok {
		lock = &sync.Mutex{}
		e.users[username] = lock
	}
	return lock
}

// SubmitTask valide et applique la soumission d'une tâche.
//
// Les rejets de règle (plafond, doublon, niveau verrouillé) sont retournés
// dans l'Outcome ; une erreur non nulle signifie un échec de persistance,
// sans changement d'état partiel.
func (e *Engine) SubmitTask(ctx context.Context, username string, taskID int, description string, photo io.Reader) (*Outcome, error) {
	lock := e.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	account, err := e.store.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	now := e.now()
	todays, err := e.store.ListSubmissionsOn(ctx, username, now)
	if err != nil {
		return nil, err
	}

	// L'autorisation est re-dérivée du solde courant, jamais du niveau
	// demandé par le client.
	task, ok := catalog.FindUnlocked(taskID, account.Points)
	if !ok {
		return e.rejection(ReasonUnknownOrLockedTask, account.Points, todays), nil
	}

	if len(todays) >= DailyCap || containsTask(todays, taskID) {
		return e.rejection(ReasonDailyLimitOrDuplicate, account.Points, todays), nil
	}

	outcome := &Outcome{Accepted: true}

	if photo != nil && e.artifacts != nil {
		url, err := e.artifacts.SaveProofPhoto(ctx, photo, username, taskID, now)
		if err != nil {
			// Échec non fatal : la soumission est enregistrée quand même.
			utils.LogError("proof photo for %s task %d not stored: %v", username, taskID, err)
			outcome.PhotoError = err.Error()
		} else {
			outcome.PhotoURL = url
		}
	}

	sub := model.Submission{
		Username:    username,
		TaskID:      taskID,
		TaskTitle:   task.Title,
		SubmittedAt: now,
	}
	points, err := e.store.ApplySubmission(ctx, sub, TaskAward)
	if err != nil {
		return nil, fmt.Errorf("could not apply submission: %w", err)
	}

	outcome.Points = points
	outcome.UnlockedLevel = catalog.UnlockedLevel(points)
	outcome.SubmittedToday = taskIDs(append(todays, sub))
	return outcome, nil
}

// GameView assemble l'état de la page de jeu. Le niveau demandé n'est qu'un
// filtre d'affichage : un niveau verrouillé donne une liste vide.
func (e *Engine) GameView(ctx context.Context, username string, level int) (*View, error) {
	account, err := e.store.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	todays, err := e.store.ListSubmissionsOn(ctx, username, e.now())
	if err != nil {
		return nil, err
	}

	unlocked := catalog.UnlockedLevel(account.Points)
	var tasks []model.TaskDefinition
	if level <= unlocked {
		tasks = catalog.TasksForLevel(level)
	} else {
		tasks = []model.TaskDefinition{}
	}

	return &View{
		Username:       username,
		Level:          level,
		UnlockedLevel:  unlocked,
		Points:         account.Points,
		Tasks:          tasks,
		SubmittedToday: taskIDs(todays),
		MaxSubmit:      DailyCap,
	}, nil
}

// History retourne l'historique complet des soumissions d'un joueur.
func (e *Engine) History(ctx context.Context, username string) ([]model.Submission, error) {
	return e.store.ListSubmissions(ctx, username)
}

func (e *Engine) rejection(reason Reason, points int, todays []model.Submission) *Outcome {
	return &Outcome{
		Accepted:       false,
		Reason:         reason,
		Points:         points,
		UnlockedLevel:  catalog.UnlockedLevel(points),
		SubmittedToday: taskIDs(todays),
	}
}

func containsTask(subs []model.Submission, taskID int) bool {
	for _, sub := range subs {
		if sub.TaskID == taskID {
			return true
		}
	}
	return false
}

func taskIDs(subs []model.Submission) []int {
	ids := make([]int, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.TaskID)
	}
	return ids
}
