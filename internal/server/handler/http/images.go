package http

import (
	"net/http"

	"github.com/serragrande/logsgb/internal/imageproc"
	"go.uber.org/zap"
)

// maxImageBytes caps uploaded image payloads.
const maxImageBytes = 10 << 20

// ImagesHandler normalizes uploaded entity photos.
type ImagesHandler struct {
	Log *zap.Logger
}

// Process handles POST /api/images. The request body is the raw image
// bytes; the response carries the normalized JPEG data URL.
func (h *ImagesHandler) Process(w http.ResponseWriter, r *http.Request) {
	dataURL, err := imageproc.ProcessImage(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		h.Log.Warn("image processing failed", zap.Error(err))
		http.Error(w, "unsupported image", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": dataURL})
}
