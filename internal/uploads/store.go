package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes accepted uploads under
// {base}/{ownerID}/{productID}/{random}{ext}. Filenames are minted
// server-side, so client names never become path components.
type DiskStore struct {
	base string
}

func NewDiskStore(base string) *DiskStore {
	return &DiskStore{base: base}
}

// Save copies the upload to disk and returns the path relative to the
// store base, which is what gets persisted and served.
func (s *DiskStore) Save(ownerID, productID int64, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext
	rel := filepath.Join(
		fmt.Sprintf("%d", ownerID),
		fmt.Sprintf("%d", productID),
		name,
	)
	abs := filepath.Join(s.base, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(abs)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(abs)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(abs)
		return "", err
	}
	return rel, nil
}

// Remove is the compensating action when a database insert fails after
// the file already landed on disk.
func (s *DiskStore) Remove(rel string) error {
	return os.Remove(filepath.Join(s.base, rel))
}
