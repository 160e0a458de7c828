package product

import (
	"errors"
	"path/filepath"
	"strings"
)

// MaxUploadBytes caps label images at 16MB.
const MaxUploadBytes = 16 << 20

var allowedExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ErrInvalidFileType is returned for extensions outside the allowed set.
var ErrInvalidFileType = errors.New("Invalid file type. Please upload an image (PNG, JPG, JPEG, GIF, WEBP)")

// ValidateImageExtension checks the upload's extension and returns the MIME
// type to transport the image with.
func ValidateImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", ErrInvalidFileType
	}

	mime, ok := allowedExt[ext]
	if !ok {
		return "", ErrInvalidFileType
	}
	return mime, nil
}
