package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"tokobagus/internal/domain"
	"tokobagus/internal/service"

	"github.com/gin-gonic/gin"
)

// Client-facing upload rejections.
const (
	msgFileTooLarge   = "File too large"
	msgNotAnImage     = "Only image files are allowed"
	msgInvalidProduct = "Invalid product data"
)

// imageFile pulls the optional product image out of a multipart request and
// validates it. It returns a rejection message when the request must fail with
// 400, and a nil upload when no image was sent. The caller closes the file.
func imageFile(c *gin.Context, maxBytes int64) (*service.ImageUpload, multipart.File, string) {
	// Oversized files must still parse far enough to be reported as too large.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*maxBytes+1<<20)
	fh, err := c.FormFile(domain.ImageFieldName)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil, ""
		case errors.As(err, &tooBig), strings.Contains(err.Error(), "request body too large"):
			return nil, nil, msgFileTooLarge
		default:
			return nil, nil, msgInvalidProduct
		}
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), domain.ImageMIMEPrefix) {
		return nil, nil, msgNotAnImage
	}
	if fh.Size > maxBytes {
		return nil, nil, msgFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, msgInvalidProduct
	}
	return &service.ImageUpload{Filename: fh.Filename, Content: f}, f, ""
}
