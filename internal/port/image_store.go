package port

import (
	"context"
	"io"
)

type ImageStore interface {
	// UploadImage stores the body and returns its public URL
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
