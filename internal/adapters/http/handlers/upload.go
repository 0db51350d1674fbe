package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"staffhub/internal/config"

	"github.com/gofiber/fiber/v2"
)

var errUnsupportedPhotoType = errors.New("only PNG, JPEG, JPG and WebP files are allowed")

var allowedPhotoExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// savePhoto stores an optional multipart photo under the upload dir with a
// timestamped name. Returns "" when no file was sent.
func savePhoto(c *fiber.Ctx, file *multipart.FileHeader, cfg *config.Config) (string, error) {
	if file == nil {
		return "", nil
	}

	if file.Size > cfg.Upload.MaxSizeBytes {
		return "", fmt.Errorf("photo exceeds %d bytes", cfg.Upload.MaxSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		return "", errUnsupportedPhotoType
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dest := filepath.Join(cfg.Upload.Dir, name)

	if err := c.SaveFile(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}
