package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	profilePictureFolder = "doctors/profile"
	uploadTimeout        = 15 * time.Second
)

// UploadResult is the durable reference returned by the media host.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader proxies binary payloads to the external media host.
type Uploader interface {
	UploadProfilePicture(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) UploadProfilePicture(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	// Upload gets its own deadline so a slow media host cannot hold the
	// request indefinitely.
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: profilePictureFolder,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// DisabledUploader stands in when no media host is configured; uploads fail
// cleanly instead of panicking on a nil client.
type DisabledUploader struct{}

func (DisabledUploader) UploadProfilePicture(context.Context, io.Reader, string) (*UploadResult, error) {
	return nil, fmt.Errorf("media uploader not configured")
}
