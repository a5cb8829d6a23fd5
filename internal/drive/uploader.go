package drive

import "context"

// UploadResult identifies an uploaded file and the link stored in the sheet.
type UploadResult struct {
	FileID string `json:"file_id"`
	Link   string `json:"link"`
}

// Uploader stores a local file in a blob store. folderID may be empty, in
// which case the implementation's default folder (or root) is used.
type Uploader interface {
	Upload(ctx context.Context, localPath, folderID string) (*UploadResult, error)
}
