package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file any, name string) (string, error)
}

type CloudinaryUploader struct {
	Cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{Cld: cld, Folder: "restaurants"}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file any, name string) (string, error) {
	res, err := u.Cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.Folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}
