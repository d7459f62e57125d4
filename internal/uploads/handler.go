package uploads

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/auth"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/product"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/user"
)

// ImageStore is the slice of the product repo the upload path needs.
type ImageStore interface {
	Owner(ctx context.Context, productID int64) (int64, error)
	AddImage(ctx context.Context, productID int64, filePath string) (product.Image, error)
}

// FileStore is the disk side, mockable in tests.
type FileStore interface {
	Save(ownerID, productID int64, fh *multipart.FileHeader) (string, error)
	Remove(rel string) error
}

type Handler struct {
	images ImageStore
	files  FileStore
	rules  Rules
	log    *slog.Logger
}

func NewHandler(images ImageStore, files FileStore, rules Rules, log *slog.Logger) *Handler {
	return &Handler{images: images, files: files, rules: rules, log: log}
}

type fileResult struct {
	Filename string `json:"filename"`
	Stored   bool   `json:"stored"`
	Path     string `json:"path,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadImages handles a bulk multipart upload for one product. Each
// file is validated and stored independently; one bad file does not
// sink the batch.
func (h *Handler) UploadImages(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	userID, role := auth.Identity(c)
	ownerID, err := h.images.Owner(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if role != user.RoleAdmin && ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files in request"})
		return
	}

	results := make([]fileResult, 0, len(files))
	stored := 0
	for _, fh := range files {
		res := fileResult{Filename: fh.Filename}

		if err := h.rules.Validate(fh); err != nil {
			res.Error = validationMessage(err)
			results = append(results, res)
			continue
		}

		rel, err := h.files.Save(ownerID, productID, fh)
		if err != nil {
			h.log.Error("upload write failed", "product_id", productID, "err", err)
			res.Error = "failed to store file"
			results = append(results, res)
			continue
		}

		if _, err := h.images.AddImage(c.Request.Context(), productID, rel); err != nil {
			// disk must not reference a row that does not exist
			if rmErr := h.files.Remove(rel); rmErr != nil {
				h.log.Error("compensating delete failed", "path", rel, "err", rmErr)
			}
			res.Error = "failed to record file"
			results = append(results, res)
			continue
		}

		res.Stored = true
		res.Path = rel
		stored++
		results = append(results, res)
	}

	status := http.StatusOK
	if stored == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"stored": stored, "results": results})
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return "file too large"
	case errors.Is(err, ErrBadExtension):
		return "extension not allowed"
	case errors.Is(err, ErrBadType):
		return "content type not allowed"
	default:
		return "invalid file"
	}
}
