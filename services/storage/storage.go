package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores uploaded profile images and returns their public
// URLs.
type StorageService interface {
	UploadImage(ctx context.Context, file multipart.File, destFolder string) (string, error)
}

// StorageServiceImpl implements StorageService on Cloudinary.
type StorageServiceImpl struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	return &StorageServiceImpl{cld: cld}
}

// UploadImage uploads an image into the specified folder and returns its
// permanent secure URL.
func (s *StorageServiceImpl) UploadImage(ctx context.Context, file multipart.File, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("StorageServiceImpl: no URL returned")
	}
	return result.SecureURL, nil
}
