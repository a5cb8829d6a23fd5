package inspection

import (
	"io"
	"mime/multipart"
	"sort"
	"strings"
)

// 폼 필드 규칙
const (
	FieldOrgName          = "saja_name"
	FieldInspectorName    = "vro_name"
	FieldRegistrationDate = "registration_date"

	fileFieldPrefix   = "file_"
	answerFieldPrefix = "q_"
	remarkFieldPrefix = "remark_"
)

// FileField is one file part of the submission form.
type FileField struct {
	Field    string
	FileName string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Form is a parsed submission: scalar fields and file parts.
type Form struct {
	Values map[string]string
	Files  []FileField
}

func (f Form) Value(key string) string {
	return f.Values[key]
}

func (f Form) Answer(questionID string) string {
	return f.Values[answerFieldPrefix+questionID]
}

func (f Form) Remark(questionID string) string {
	return f.Values[remarkFieldPrefix+questionID]
}

// UploadableFiles drops zero-byte parts and parts without a file name.
func (f Form) UploadableFiles() []FileField {
	var out []FileField
	for _, file := range f.Files {
		if file.Size <= 0 || file.FileName == "" {
			continue
		}
		out = append(out, file)
	}
	return out
}

// FormFromMultipart flattens a parsed multipart body. Only the first value of
// a repeated scalar field is kept; every file part is kept.
func FormFromMultipart(mf *multipart.Form) Form {
	form := Form{Values: map[string]string{}}
	if mf == nil {
		return form
	}
	for key, vals := range mf.Value {
		if len(vals) > 0 {
			form.Values[key] = vals[0]
		}
	}

	keys := make([]string, 0, len(mf.File))
	for key := range mf.File {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, fh := range mf.File[key] {
			fh := fh
			form.Files = append(form.Files, FileField{
				Field:    key,
				FileName: fh.Filename,
				Size:     fh.Size,
				Open:     func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
	}
	return form
}

// QuestionID strips the file field prefix: "file_3" -> "3".
func QuestionID(field string) string {
	return strings.TrimPrefix(field, fileFieldPrefix)
}
