// Package intake collects the patient context the deliberation consumes:
// an oracle-driven inquiry dialogue, structured-field extraction, and
// medical image loading.
package intake

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smhong/meddebate/pkg/models"
)

// mediaTypes maps file extensions to MIME types for image evidence.
var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// LoadImage reads and base64-encodes a medical image for attachment to the
// patient context. Unknown extensions default to JPEG.
func LoadImage(path, caption string) (models.ImageEvidence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ImageEvidence{}, fmt.Errorf("read image: %w", err)
	}

	mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mediaType = "image/jpeg"
	}

	return models.ImageEvidence{
		Data:      base64.StdEncoding.EncodeToString(data),
		MediaType: mediaType,
		Filename:  filepath.Base(path),
		Caption:   caption,
	}, nil
}
