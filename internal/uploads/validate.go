package uploads

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrTooLarge     = errors.New("file exceeds size limit")
	ErrBadExtension = errors.New("file extension not allowed")
	ErrBadType      = errors.New("file content type not allowed")
)

// Rules gates what may be written to disk. Extension and sniffed
// content type are both required to pass; neither alone is trusted.
type Rules struct {
	MaxBytes    int64
	Extensions  map[string]bool
	ContentType map[string]bool
}

func DefaultRules(maxBytes int64) Rules {
	return Rules{
		MaxBytes: maxBytes,
		Extensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".webp": true,
		},
		ContentType: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/gif":  true,
			"image/webp": true,
		},
	}
}

// Validate runs all checks without writing anything. The size check
// comes first so an oversized file is rejected before it is even opened.
func (r Rules) Validate(fh *multipart.FileHeader) error {
	if fh.Size > r.MaxBytes {
		return ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !r.Extensions[ext] {
		return ErrBadExtension
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return err
	}
	sniffed := http.DetectContentType(head[:n])
	// DetectContentType appends parameters for some types
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	if !r.ContentType[sniffed] {
		return ErrBadType
	}
	return nil
}
