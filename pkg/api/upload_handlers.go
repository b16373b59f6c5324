package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/middleware"
	"github.com/cinevault/cinevault/pkg/observability"
	"github.com/cinevault/cinevault/pkg/uploads"
)

// multipart form overhead on top of the image itself
const uploadBodyLimit = uploads.MaxImageSize + 1<<20

// UploadHandlers serves the /api/upload routes.
type UploadHandlers struct {
	service UploadService
	authMW  *middleware.AuthMiddleware
	logger  *observability.Logger
}

// RegisterRoutes mounts the upload routes on the router.
func (h *UploadHandlers) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/upload/image", h.authMW.Handler(http.HandlerFunc(h.uploadImage))).Methods("POST")
}

// uploadImage handles POST /api/upload/image. Expects a multipart form with
// the image under the "image" field.
func (h *UploadHandlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)

	if err := r.ParseMultipartForm(uploadBodyLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.WriteErrorMessage(w, http.StatusRequestEntityTooLarge, "image must not exceed 5MB")
			return
		}
		httputil.WriteBadRequest(w, "request must be multipart/form-data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteBadRequest(w, "no image was provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	imageURL, err := h.service.Upload(r.Context(), file, contentType, header.Size)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessMessage(w, "image uploaded successfully", map[string]string{
		"imageUrl": imageURL,
	})
}
