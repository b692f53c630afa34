package uploads

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ardra-p/Sustainability-Board-Game/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary archive les photos de preuve sur Cloudinary.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cfg *config.Config) (*Cloudinary, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Cloudinary{cld: cld}, nil
}

// SaveProofPhoto upload la photo sous un PublicID déterministe ; la dernière
// écriture pour la même clé gagne.
func (s *Cloudinary) SaveProofPhoto(ctx context.Context, photo io.Reader, username string, taskID int, day time.Time) (string, error) {
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, photo, uploader.UploadParams{
		PublicID:     fmt.Sprintf("proofs/%s", proofKey(username, taskID, day)),
		Folder:       "ecogame/proofs",
		Overwrite:    &overwrite,
		ResourceType: "image",
		Format:       "jpg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload proof photo: %w", err)
	}

	return uploadResult.SecureURL, nil
}
