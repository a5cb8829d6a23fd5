package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"VroDaptar_InspectionBackend/internal/models"
)

var ErrProgressNotFound = errors.New("submission progress not found")

// Journal records how far each submission got, so partial submissions can be
// found and cleaned up.
type Journal struct {
	db  *DB
	now func() time.Time
}

func NewJournal(db *DB) *Journal {
	return &Journal{db: db, now: time.Now}
}

func (j *Journal) Record(ctx context.Context, inspectionID, stage, detail string) error {
	_, err := j.db.sql.ExecContext(ctx, `
		INSERT INTO submission_progress(inspection_id, stage, detail, updated_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(inspection_id) DO UPDATE SET stage = excluded.stage, detail = excluded.detail, updated_at = excluded.updated_at
	`, inspectionID, stage, detail, j.now().UTC().Format(time.RFC3339Nano))
	return err
}

func (j *Journal) Get(ctx context.Context, inspectionID string) (*models.SubmissionProgress, error) {
	row := j.db.sql.QueryRowContext(ctx, `
		SELECT inspection_id, stage, detail, updated_at
		FROM submission_progress
		WHERE inspection_id = ?
	`, inspectionID)

	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

// Incomplete lists submissions that never reached the completed stage, oldest first.
func (j *Journal) Incomplete(ctx context.Context) ([]models.SubmissionProgress, error) {
	rows, err := j.db.sql.QueryContext(ctx, `
		SELECT inspection_id, stage, detail, updated_at
		FROM submission_progress
		WHERE stage <> ?
		ORDER BY updated_at ASC
	`, models.StageCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SubmissionProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(s scanner) (*models.SubmissionProgress, error) {
	var (
		p       models.SubmissionProgress
		detail  sql.NullString
		updated string
	)
	if err := s.Scan(&p.InspectionID, &p.Stage, &detail, &updated); err != nil {
		return nil, err
	}
	if detail.Valid {
		p.Detail = detail.String
	}
	// 파싱 실패 시 zero time 유지
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &p, nil
}
