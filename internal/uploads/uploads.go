package uploads

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Artifacts archive les photos de preuve des soumissions.
//
// La clé de stockage est dérivée de (username, taskId, date) : re-soumettre
// la même photo le même jour écrase la précédente.
type Artifacts interface {
	SaveProofPhoto(ctx context.Context, photo io.Reader, username string, taskID int, day time.Time) (string, error)
}

// proofKey construit le nom déterministe d'une photo de preuve.
func proofKey(username string, taskID int, day time.Time) string {
	return fmt.Sprintf("%s_%d_%s", username, taskID, day.Format("2006-01-02"))
}
