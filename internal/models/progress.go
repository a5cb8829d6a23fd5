package models

import "time"

// 제출 진행 단계
const (
	StageReceived        = "received"
	StageFilesUploaded   = "files_uploaded"
	StageFilesRecorded   = "files_recorded"
	StageSummaryRecorded = "summary_recorded"
	StageAnswersRecorded = "answers_recorded"
	StageCompleted       = "completed"
	StageFailed          = "failed"
)

// SubmissionProgress is the last stage a submission reached. A submission
// stuck before "completed" may have orphaned uploads or partial rows.
type SubmissionProgress struct {
	InspectionID string    `json:"inspection_id"`
	Stage        string    `json:"stage"`
	Detail       string    `json:"detail"`
	UpdatedAt    time.Time `json:"updated_at"`
}
