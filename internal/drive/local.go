package drive

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalUploader copies files into a directory served by the API under
// baseURL. It stands in for Drive when running against the sqlite store.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("NewLocalUploader(): failed to create upload directory: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload stores the file as <dir>/[<folder>/]<uuid>/<name>.
func (u *LocalUploader) Upload(ctx context.Context, localPath, folderID string) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("LocalUploader.Upload(): %w", err)
	}
	defer src.Close()

	id := uuid.NewString()
	name := filepath.Base(localPath)
	parts := []string{id}
	if folderID != "" {
		parts = []string{filepath.Base(folderID), id}
	}

	targetDir := filepath.Join(append([]string{u.dir}, parts...)...)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("LocalUploader.Upload(): %w", err)
	}
	dst, err := os.Create(filepath.Join(targetDir, name))
	if err != nil {
		return nil, fmt.Errorf("LocalUploader.Upload(): %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.RemoveAll(targetDir)
		return nil, fmt.Errorf("LocalUploader.Upload(): %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("LocalUploader.Upload(): %w", err)
	}

	escaped := make([]string, 0, len(parts)+1)
	for _, p := range append(parts, name) {
		escaped = append(escaped, url.PathEscape(p))
	}
	log.Printf("LocalUploader.Upload(): stored %s under %s", name, targetDir)
	return &UploadResult{FileID: id, Link: u.baseURL + "/" + strings.Join(escaped, "/")}, nil
}
