package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the cloud object storage used for remote source
// files and exported reports.
type ObjectStorage interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
