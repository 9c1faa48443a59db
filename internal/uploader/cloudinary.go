// Package uploader hosts image payloads on Cloudinary and hands back the
// hosted URLs.
package uploader

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	api "github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds an adapter from a CLOUDINARY_URL style credential
// string.
func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

// UploadMany uploads base64/data-URL payloads and returns the hosted URLs
// in the same order. The first failure aborts the batch.
func (u *Cloudinary) UploadMany(ctx context.Context, images []string) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		result, err := u.cld.Upload.Upload(ctx, image, api.UploadParams{Folder: u.folder})
		if err != nil {
			return nil, err
		}
		urls = append(urls, result.SecureURL)
	}
	return urls, nil
}

// UploadFile uploads a single file buffer, as received from a multipart
// form.
func (u *Cloudinary) UploadFile(ctx context.Context, file io.Reader) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, api.UploadParams{Folder: u.folder})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
