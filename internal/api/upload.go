package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forkful/backend/internal/service"
)

// maxUploadBytes caps a single image upload at 2 MiB.
const maxUploadBytes = 2 << 20

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// saveUpload stores the "image" part of a multipart request and returns
// its public path. Returns "" when the request carries no file. The file
// is written before the owning record; an orphaned file on a later record
// failure is accepted.
func saveUpload(c *gin.Context, store service.ImageStore) (string, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", &service.ValidationError{Message: "Invalid image upload."}
	}

	if header.Size > maxUploadBytes {
		return "", &service.ValidationError{Message: "Image must be 2MB or smaller."}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", &service.ValidationError{Message: "Only image files are allowed."}
	}

	// Both the extension and the declared media type must look like an
	// image; either alone is trivial to spoof.
	contentType := header.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !allowedImageTypes[contentType] {
		return "", &service.ValidationError{Message: "Only image files are allowed."}
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return store.Save(c.Request.Context(), service.UploadFilename(header.Filename), contentType, data)
}
