/**
* Name:        google.go
* Description: Google Drive 업로드 어댑터
* Workflow:    파일 스트리밍 업로드, anyone/reader 권한 부여, 공유 링크 생성
 */

package drive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	shareLinkFormat    = "https://drive.google.com/file/d/%s/view?usp=sharing"
	fallbackLinkFormat = "https://drive.google.com/uc?id=%s"
)

type GoogleUploader struct {
	svc           *gdrive.Service
	defaultFolder string
}

func NewGoogleUploader(ctx context.Context, defaultFolder string, opts ...option.ClientOption) (*GoogleUploader, error) {
	svc, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGoogleUploader(): failed to create drive service: %w", err)
	}
	return &GoogleUploader{svc: svc, defaultFolder: defaultFolder}, nil
}

// Upload streams localPath to Drive and shares it with anyone holding the
// link. A failed permission grant is not fatal; the file keeps a direct
// download link instead of the viewer link.
func (u *GoogleUploader) Upload(ctx context.Context, localPath, folderID string) (*UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("GoogleUploader.Upload(): %w", err)
	}
	defer f.Close()

	meta := &gdrive.File{Name: filepath.Base(localPath)}
	if folderID == "" {
		folderID = u.defaultFolder
	}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := u.svc.Files.Create(meta).
		Media(f).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("GoogleUploader.Upload(): failed to upload %s: %v", meta.Name, err)
		return nil, fmt.Errorf("GoogleUploader.Upload(): %w", err)
	}
	if created.Id == "" {
		return nil, errors.New("GoogleUploader.Upload(): drive returned no file id")
	}

	perm := &gdrive.Permission{
		Type:               "anyone",
		Role:               "reader",
		AllowFileDiscovery: false,
		ForceSendFields:    []string{"AllowFileDiscovery"},
	}
	link := fmt.Sprintf(shareLinkFormat, created.Id)
	if _, err := u.svc.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		log.Printf("GoogleUploader.Upload(): could not set permissions for %s: %v", created.Id, err)
		link = fmt.Sprintf(fallbackLinkFormat, created.Id)
	}

	log.Printf("GoogleUploader.Upload(): uploaded %s as %s", meta.Name, created.Id)
	return &UploadResult{FileID: created.Id, Link: link}, nil
}

// ListRecent returns up to n files visible to the service account.
func (u *GoogleUploader) ListRecent(ctx context.Context, n int) ([]*gdrive.File, error) {
	resp, err := u.svc.Files.List().
		PageSize(int64(n)).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("GoogleUploader.ListRecent(): %w", err)
	}
	return resp.Files, nil
}
