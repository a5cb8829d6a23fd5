/**
* Name:        service.go
* Description: 점검 제출 오케스트레이터 및 조회
* Workflow:    ID 생성, 첨부 업로드(동시 실행 제한), 파일/요약/답변/준수 행 기록, 진행 단계 저널링
 */

package inspection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"VroDaptar_InspectionBackend/internal/drive"
	"VroDaptar_InspectionBackend/internal/events"
	"VroDaptar_InspectionBackend/internal/metrics"
	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
	"VroDaptar_InspectionBackend/internal/storage"
)

const (
	maxIDAttempts        = 3
	defaultMaxUploads    = 4
	scratchUploadPattern = "upload-*"
)

var (
	ErrIDExhausted        = errors.New("could not generate a unique inspection id")
	ErrInspectionNotFound = errors.New("inspection not found")
	ErrInvalidResolution  = errors.New("log_id and remark are required")
)

// ProgressJournal records the last stage a submission reached.
type ProgressJournal interface {
	Record(ctx context.Context, inspectionID, stage, detail string) error
	Get(ctx context.Context, inspectionID string) (*models.SubmissionProgress, error)
}

type ServiceConfig struct {
	Store                *sheets.Store
	Uploader             drive.Uploader
	Journal              ProgressJournal
	Events               *events.Hub
	Metrics              *metrics.Metrics
	DriveFolderID        string
	ScratchDir           string
	MaxConcurrentUploads int
	QuestionCacheTTL     time.Duration
}

// Service drives inspection submissions and the read paths over the row store.
type Service struct {
	store      *sheets.Store
	uploader   drive.Uploader
	journal    ProgressJournal
	events     *events.Hub
	metrics    *metrics.Metrics
	questions  *QuestionCatalog
	folderID   string
	scratchDir string
	maxUploads int

	now   func() time.Time
	newID func() (string, error)
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("NewService(): store is required")
	}
	if cfg.Uploader == nil {
		return nil, errors.New("NewService(): uploader is required")
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir()
	}
	if err := os.MkdirAll(cfg.ScratchDir, 0755); err != nil {
		return nil, fmt.Errorf("NewService(): failed to create scratch directory: %w", err)
	}
	if cfg.MaxConcurrentUploads <= 0 {
		cfg.MaxConcurrentUploads = defaultMaxUploads
	}

	return &Service{
		store:      cfg.Store,
		uploader:   cfg.Uploader,
		journal:    cfg.Journal,
		events:     cfg.Events,
		metrics:    cfg.Metrics,
		questions:  NewQuestionCatalog(cfg.Store, cfg.QuestionCacheTTL),
		folderID:   cfg.DriveFolderID,
		scratchDir: cfg.ScratchDir,
		maxUploads: cfg.MaxConcurrentUploads,
		now:        time.Now,
		newID:      NewID,
	}, nil
}

// Result is returned for a stored submission.
type Result struct {
	InspectionID string                  `json:"inspectionId"`
	Files        []models.FileAttachment `json:"files"`
}

// Submit stores one inspection form. Attachments upload concurrently (bounded
// by MaxConcurrentUploads); a failed upload is logged and skipped. Rows are
// then appended in order: files, summary, answers and compliance. Any store
// error aborts the submission; rows written before it are not rolled back,
// and the journal keeps the last stage reached.
func (s *Service) Submit(ctx context.Context, form Form) (*Result, error) {
	receivedAt := s.now()

	id, err := s.uniqueID(ctx)
	if err != nil {
		s.metrics.SubmissionResult(false)
		return nil, fmt.Errorf("Service.Submit(): %w", err)
	}
	s.record(ctx, id, models.StageReceived, "")

	res, err := s.submit(ctx, id, receivedAt, form)
	s.metrics.SubmissionResult(err == nil)
	if err != nil {
		s.record(ctx, id, models.StageFailed, err.Error())
		return nil, fmt.Errorf("Service.Submit(): inspection %s: %w", id, err)
	}

	s.record(ctx, id, models.StageCompleted, "")
	s.events.Publish(events.Event{Type: events.TypeSubmitted, InspectionID: id, Detail: form.Value(FieldOrgName)})
	log.Printf("Service.Submit(): inspection %s stored with %d file(s)", id, len(res.Files))
	return res, nil
}

func (s *Service) submit(ctx context.Context, id string, receivedAt time.Time, form Form) (*Result, error) {
	uploadable := form.UploadableFiles()
	files := s.uploadAll(ctx, id, uploadable)
	s.record(ctx, id, models.StageFilesUploaded, fmt.Sprintf("%d of %d uploaded", len(files), len(uploadable)))

	for _, f := range files {
		if _, err := s.store.AppendRow(ctx, models.FilesRange, f.Row()); err != nil {
			s.storeError("append_file", err)
			return nil, fmt.Errorf("append file row: %w", err)
		}
	}
	s.record(ctx, id, models.StageFilesRecorded, "")

	questions, fellBack := s.questions.Load(ctx)
	if fellBack {
		s.metrics.QuestionFallback()
	}

	primary := ""
	if len(files) > 0 {
		primary = files[0].FileURL
	}
	summary := models.InspectionSubmission{
		ID:               id,
		OrgName:          form.Value(FieldOrgName),
		InspectorName:    form.Value(FieldInspectorName),
		RegistrationDate: form.Value(FieldRegistrationDate),
		Timestamp:        receivedAt.Format(models.TimestampLayout),
		Status:           models.StatusPending,
		PrimaryLink:      primary,
	}
	if _, err := s.store.AppendRow(ctx, models.InspectionsRange, summary.Row()); err != nil {
		s.storeError("append_summary", err)
		return nil, fmt.Errorf("append summary row: %w", err)
	}
	s.record(ctx, id, models.StageSummaryRecorded, "")

	for _, q := range questions {
		answer := models.AnswerRecord{
			InspectionID: id,
			QuestionID:   q.ID,
			Answer:       form.Answer(q.ID),
			Remark:       form.Remark(q.ID),
		}
		if _, err := s.store.AppendRow(ctx, models.AnswersRange, answer.Row()); err != nil {
			s.storeError("append_answer", err)
			return nil, fmt.Errorf("append answer row for question %s: %w", q.ID, err)
		}
		if isBlank(answer.Remark) {
			continue
		}
		flag := models.ComplianceRecord{InspectionID: id, Remark: answer.Remark, Status: models.StatusPending}
		if _, err := s.store.AppendRow(ctx, models.ComplianceRange, flag.Row()); err != nil {
			s.storeError("append_compliance", err)
			return nil, fmt.Errorf("append compliance row for question %s: %w", q.ID, err)
		}
	}
	s.record(ctx, id, models.StageAnswersRecorded, fmt.Sprintf("%d question(s)", len(questions)))

	return &Result{InspectionID: id, Files: files}, nil
}

// uniqueID draws ids until one is not already in the summary sheet. The
// existing ids are read once; a failed read is logged and the first id wins.
func (s *Service) uniqueID(ctx context.Context) (string, error) {
	taken := map[string]bool{}
	values, err := s.store.ReadValues(ctx, models.InspectionIDRange)
	if err != nil {
		log.Printf("Service.uniqueID(): could not read existing ids, skipping check: %v", err)
	}
	for _, row := range values {
		if len(row) > 0 {
			taken[row[0]] = true
		}
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if !taken[id] {
			return id, nil
		}
		log.Printf("Service.uniqueID(): id %s already exists, retrying", id)
	}
	return "", ErrIDExhausted
}

// uploadAll returns the successful uploads in the order they settled.
func (s *Service) uploadAll(ctx context.Context, id string, files []FileField) []models.FileAttachment {
	var (
		mu      sync.Mutex
		settled []models.FileAttachment
		g       errgroup.Group
	)
	g.SetLimit(s.maxUploads)

	for _, f := range files {
		f := f
		g.Go(func() error {
			att, err := s.uploadOne(ctx, id, f)
			if err != nil {
				log.Printf("Service.uploadAll(): upload of %s (%s) failed: %v", f.FileName, f.Field, err)
				return nil
			}
			mu.Lock()
			settled = append(settled, *att)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return settled
}

func (s *Service) uploadOne(ctx context.Context, id string, f FileField) (att *models.FileAttachment, err error) {
	done := s.metrics.UploadStarted()
	defer func() { done(err == nil) }()

	dir, err := os.MkdirTemp(s.scratchDir, scratchUploadPattern)
	if err != nil {
		return nil, err
	}
	// 업로드 결과와 무관하게 임시 파일 삭제
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Printf("Service.uploadOne(): failed to remove scratch %s: %v", dir, rmErr)
		}
	}()

	path := filepath.Join(dir, scratchName(f.FileName))
	if err := writeScratch(path, f); err != nil {
		return nil, err
	}

	res, err := s.uploader.Upload(ctx, path, s.folderID)
	if err != nil {
		return nil, err
	}
	return &models.FileAttachment{
		InspectionID: id,
		QuestionID:   QuestionID(f.Field),
		FileName:     f.FileName,
		FileURL:      res.Link,
		FileID:       res.FileID,
	}, nil
}

func writeScratch(path string, f FileField) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func scratchName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload"
	}
	return base
}

// ListInspections returns every row of Inspections!A:G.
func (s *Service) ListInspections(ctx context.Context) ([]sheets.Record, error) {
	records, err := s.store.ReadRange(ctx, models.InspectionsRange)
	if err != nil {
		s.storeError("list_inspections", err)
		return nil, fmt.Errorf("Service.ListInspections(): %w", err)
	}
	return records, nil
}

// Questions returns the questions the form should render.
func (s *Service) Questions(ctx context.Context) []models.Question {
	qs, fellBack := s.questions.Load(ctx)
	if fellBack {
		s.metrics.QuestionFallback()
	}
	return qs
}

func (s *Service) Progress(ctx context.Context, inspectionID string) (*models.SubmissionProgress, error) {
	if s.journal == nil {
		return nil, storage.ErrProgressNotFound
	}
	return s.journal.Get(ctx, inspectionID)
}

// record never fails a submission; the journal is advisory.
func (s *Service) record(ctx context.Context, id, stage, detail string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), id, stage, detail); err != nil {
		log.Printf("Service.record(): failed to record %s for %s: %v", stage, id, err)
	}
}

func (s *Service) storeError(op string, err error) {
	s.metrics.StoreError(op, string(sheets.CodeOf(err)))
}
