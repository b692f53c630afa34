package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Disk archive les photos de preuve sur le disque local. Repli de
// développement quand Cloudinary n'est pas configuré.
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (s *Disk) SaveProofPhoto(ctx context.Context, photo io.Reader, username string, taskID int, day time.Time) (string, error) {
	path := filepath.Join(s.dir, proofKey(username, taskID, day)+".jpg")

	// os.Create tronque un fichier existant : même sémantique d'écrasement
	// que Cloudinary.
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create proof photo file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, photo); err != nil {
		return "", fmt.Errorf("could not write proof photo: %w", err)
	}

	return path, nil
}
