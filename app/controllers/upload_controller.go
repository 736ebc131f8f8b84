package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/response"
)

type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Presign handles POST /api/admin/uploads/presign.
func (c *UploadController) Presign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContentType string `json:"contentType" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	presigned, err := c.uploads.Presign(r.Context(), body.ContentType)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, presigned)
}

// Direct handles POST /api/admin/uploads. Multipart field "file" carries
// the image.
func (c *UploadController) Direct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "expected multipart form data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.ValidationError(w, map[string]string{"file": "file is required"})
		return
	}
	defer file.Close()

	key, url, err := c.uploads.Direct(header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, map[string]string{"key": key, "url": url})
}

// Delete handles DELETE /api/admin/uploads/{key} where key arrives as a
// wildcard path segment.
func (c *UploadController) Delete(w http.ResponseWriter, r *http.Request) {
	key := param(r, "*")
	if err := c.uploads.Delete(key); err != nil {
		response.FromError(w, err)
		return
	}
	response.Message(w, "Image deleted")
}
