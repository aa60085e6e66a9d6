package filemgr

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"rihla/utils"

	"github.com/disintegration/imaging"
)

const (
	TripPicDir = "static/trippic"

	maxWidth   = 1600
	thumbWidth = 400
)

// SaveTripImage decodes the upload, bounds it to a sane width, writes the
// full image plus a thumbnail under static/trippic and returns the stored
// file name. The thumbnail gets a "thumb_" prefix.
func SaveTripImage(file multipart.File, header *multipart.FileHeader, tripID string) (string, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := utils.EnsureDir(TripPicDir); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(header.Filename)))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		ext = ".jpg"
	}
	name := tripID + ext

	if err := imaging.Save(img, filepath.Join(TripPicDir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(TripPicDir, "thumb_"+name)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return name, nil
}
