package model

import (
	"time"
)

// TaskDefinition décrit une éco-tâche du catalogue statique.
type TaskDefinition struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Details string `json:"details"`
	Level   int    `json:"level"`
}

// Submission enregistre une tâche acceptée pour un joueur.
// Le titre est une copie prise au moment de la soumission ; l'enregistrement
// n'est jamais modifié ni supprimé ensuite.
type Submission struct {
	Username    string    `json:"username"`
	TaskID      int       `json:"taskId"`
	TaskTitle   string    `json:"taskTitle"`
	SubmittedAt time.Time `json:"submittedAt"`
}
