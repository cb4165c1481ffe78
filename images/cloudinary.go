// Package images wraps the Cloudinary hosting service behind a small adapter so
// handlers and the janitor can be tested without the remote service.
package images

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/civicmap/civicmap-api/models"
)

// UploadError wraps a failed upload to the hosting service
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// DeleteError wraps a failed deletion of a hosted image
type DeleteError struct {
	PublicID string
	Err      error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("image delete failed for %s: %v", e.PublicID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// Uploader uploads and deletes hosted images
type Uploader interface {
	Upload(ctx context.Context, img models.NewImage) (models.ReportImage, error)
	Destroy(ctx context.Context, publicID string) error
}

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader builds an Uploader from a CLOUDINARY_URL style connection string
func NewCloudinaryUploader(cloudinaryURL string) (Uploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{cld: cld, folder: "civicmap/reports"}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, img models.NewImage) (models.ReportImage, error) {
	resp, err := u.cld.Upload.Upload(ctx, img.Data, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: img.Filename,
	})
	if err != nil {
		return models.ReportImage{}, &UploadError{Err: err}
	}
	// cloudinary-go reports some API failures in the body rather than as an error
	if resp.Error.Message != "" {
		return models.ReportImage{}, &UploadError{Err: fmt.Errorf("%s", resp.Error.Message)}
	}
	return models.ReportImage{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (u *cloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return &DeleteError{PublicID: publicID, Err: err}
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return &DeleteError{PublicID: publicID, Err: fmt.Errorf("unexpected result %q", resp.Result)}
	}
	return nil
}
