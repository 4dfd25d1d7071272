package storage

import (
	"context"
	"io"
)

// Uploader stores a blob under objectName and returns a publicly
// reachable URL for it. Files already stored under other names are
// never touched, so an aborted save leaves prior uploads intact.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (publicURL string, err error)
}
