package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/storage"
)

const (
	presignExpiry  = 5 * time.Minute
	maxUploadBytes = 5 << 20 // 5 MB
)

// allowedImageTypes whitelists the MIME types a product image may have,
// mapped to the extension used for the stored key.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/avif": "avif",
}

// PresignedUpload is handed to the admin UI for a direct-to-bucket PUT.
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

// UploadService manages product image storage.
type UploadService struct{}

func NewUploadService() *UploadService { return &UploadService{} }

// imageKey builds the object key for a new upload: products/<uuid>.<ext>.
func imageKey(contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", apperr.Validation(map[string]string{"contentType": "unsupported image type"})
	}
	return fmt.Sprintf("products/%s.%s", uuid.NewString(), ext), nil
}

// Presign returns a short-lived direct-upload URL. Requires the S3 disk;
// local installs fall back to Direct uploads through the API.
func (s *UploadService) Presign(ctx context.Context, contentType string) (*PresignedUpload, error) {
	key, err := imageKey(contentType)
	if err != nil {
		return nil, err
	}
	if !storage.Has("s3") {
		return nil, apperr.ErrUnavailable
	}
	disk := storage.Use("s3")
	presigner, ok := disk.(storage.Presigner)
	if !ok {
		return nil, apperr.ErrUnavailable
	}

	uploadURL, err := presigner.PresignPut(ctx, key, contentType, presignExpiry)
	if err != nil {
		return nil, err
	}
	return &PresignedUpload{
		UploadURL: uploadURL,
		Key:       key,
		PublicURL: disk.URL(key),
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

// Direct stores an uploaded image through the API on the default disk and
// returns its public URL. Bodies over 5 MB are rejected.
func (s *UploadService) Direct(contentType string, size int64, r io.Reader) (string, string, error) {
	if size > maxUploadBytes {
		return "", "", apperr.Validation(map[string]string{"file": "image exceeds the 5 MB limit"})
	}
	key, err := imageKey(contentType)
	if err != nil {
		return "", "", err
	}
	if err := storage.PutStream(key, io.LimitReader(r, maxUploadBytes)); err != nil {
		return "", "", err
	}
	return key, storage.URL(key), nil
}

// Delete removes a stored image by key. Only keys under products/ are
// deletable through the API.
func (s *UploadService) Delete(key string) error {
	if !strings.HasPrefix(key, "products/") || strings.Contains(key, "..") {
		return apperr.Validation(map[string]string{"key": "invalid storage key"})
	}
	return storage.Delete(key)
}
