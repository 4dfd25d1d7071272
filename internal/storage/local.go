package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes blobs under a base directory and serves them
// from a base URL. Development stand-in for the bucket.
type LocalUploader struct {
	basePath string
	baseURL  string
}

func NewLocalUploader(basePath, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	return &LocalUploader{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (u *LocalUploader) Upload(_ context.Context, objectName string, _ string, r io.Reader) (string, error) {
	dst := filepath.Join(u.basePath, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return u.baseURL + "/" + objectName, nil
}
