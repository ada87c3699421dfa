// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	// Register the image decoders used for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
)

// checkUpload verifies the payload decodes as a supported image without
// touching the filesystem. It returns the extension to store the file under.
// Handlers call this during form validation and only write the file once the
// whole form is known to be valid, so a rejected submission leaves nothing
// behind in the media directory.
func checkUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Decode the image header only; a full decode is not needed to verify
	// the payload is a real image.
	_, format, err := image.DecodeConfig(src)
	if err != nil {
		return "", fmt.Errorf("not a supported image: %w", err)
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return format, nil
}

// saveUpload stores an already-validated image under the media directory.
// The returned path is relative to the media root (served at /media/); it is
// what gets persisted on the post.
func (s *Server) saveUpload(file *multipart.FileHeader, ext string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.config.MediaDir, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	return filepath.ToSlash(filepath.Join("posts", name)), nil
}
