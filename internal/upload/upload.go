// Package upload is the file-storage collaborator: it accepts an uploaded
// file and returns the reference string the owning entity stores.
package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Storage interface {
	// Store persists the uploaded file under the given path prefix
	// ("answers/", "questions/") and returns the stored reference.
	Store(file *multipart.FileHeader, prefix string) (string, error)
}

type diskStorage struct {
	root string
}

// NewDiskStorage stores uploads on the local filesystem under root.
func NewDiskStorage(root string) Storage {
	if root == "" {
		root = "storage/uploads"
	}
	return &diskStorage{root: root}
}

func (s *diskStorage) Store(file *multipart.FileHeader, prefix string) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	rel := path.Join(prefix, name)
	dest := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	log.Debug().Str("src", rel).Msg("Stored upload")
	return rel, nil
}
