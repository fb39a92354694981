package storage

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/youssefibrahim146/Volt/apperrors"
)

// UploadsRoute is the URL prefix the HTTP layer serves stored images under.
const UploadsRoute = "/uploads"

// ImageStore writes uploaded device images under a single directory with
// generated names so uploads cannot collide or traverse paths.
type ImageStore struct {
	Dir      string
	MaxBytes int64
}

func NewImageStore(dir string, maxBytes int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &ImageStore{Dir: dir, MaxBytes: maxBytes}, nil
}

// Save validates and stores the uploaded file, returning the stored
// filename. Only image/* content up to MaxBytes is accepted; the content
// type is sniffed from the bytes rather than taken from the client header.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.Validation("device image is required")
	}
	if s.MaxBytes > 0 && file.Size > s.MaxBytes {
		return "", apperrors.Validation(fmt.Sprintf("image must be at most %d bytes", s.MaxBytes))
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.Internal(err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", apperrors.Internal(err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.Validation("only image uploads are allowed")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.Internal(err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", apperrors.Internal(err)
	}
	return name, nil
}

// Remove deletes a stored image by filename or public path. Missing files
// are not an error.
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublicPath converts a stored filename into the path it is served at.
func (s *ImageStore) PublicPath(name string) string {
	return UploadsRoute + "/" + name
}
