/**
* Name:        bootstrap.go
* Description: 설정에 따라 Row Store, 업로더, 진행 저널 생성
* Workflow:    sqlite 열기, google 또는 sqlite 백엔드 선택, 시트 레이아웃 초기화
 */

package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"VroDaptar_InspectionBackend/internal/config"
	"VroDaptar_InspectionBackend/internal/drive"
	"VroDaptar_InspectionBackend/internal/gcp"
	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
	"VroDaptar_InspectionBackend/internal/storage"
)

// SampleQuestions seed an empty Master_Q sheet.
var SampleQuestions = []models.Question{
	{ID: "1", Section: "सामान्य माहिती", Text: "गाव नमुना ७/१२ अद्ययावत आहे का?", UploadRequired: "हो"},
	{ID: "2", Section: "दप्तर तपासणी", Text: "नोंदवही क्र. ६ पूर्ण आहे का?", UploadRequired: "नाही"},
}

// Deps are the long-lived clients shared by every request.
type Deps struct {
	DB       *storage.DB
	Store    *sheets.Store
	Uploader drive.Uploader
	Journal  *storage.Journal

	// Drive is set only for the google backend.
	Drive *drive.GoogleUploader
}

func (d *Deps) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Build wires the store and uploader selected by cfg.StoreBackend. The
// sqlite database is always opened because it holds the progress journal.
func Build(ctx context.Context, cfg *config.Config) (*Deps, error) {
	if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("Build(): failed to create %s: %w", dir, err)
		}
	}
	db, err := storage.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	deps := &Deps{DB: db, Journal: storage.NewJournal(db)}

	switch cfg.StoreBackend {
	case config.BackendGoogle:
		opts, err := gcp.ClientOptions(cfg.CredentialsJSON, cfg.CredentialsFile)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("Build(): %w", err)
		}
		backend, err := sheets.NewGoogleBackend(ctx, cfg.SheetID, opts...)
		if err != nil {
			db.Close()
			return nil, err
		}
		uploader, err := drive.NewGoogleUploader(ctx, cfg.DriveFolderID, opts...)
		if err != nil {
			db.Close()
			return nil, err
		}
		deps.Store = sheets.NewStore(backend)
		deps.Uploader = uploader
		deps.Drive = uploader

	case config.BackendSQLite:
		uploader, err := drive.NewLocalUploader(cfg.LocalUploadDir, cfg.FilesURL())
		if err != nil {
			db.Close()
			return nil, err
		}
		deps.Store = sheets.NewStore(storage.NewSheetBackend(db))
		deps.Uploader = uploader
		if _, err := InitSheets(ctx, deps.Store, true); err != nil {
			db.Close()
			return nil, err
		}

	default:
		db.Close()
		return nil, fmt.Errorf("Build(): unknown store backend %q", cfg.StoreBackend)
	}

	log.Printf("Build(): using %s store backend", cfg.StoreBackend)
	return deps, nil
}

// InitSheets creates every sheet in models.Layouts with its header row. When
// seed is set and Master_Q was just created, the sample questions are added.
// It returns the titles whose headers were written.
func InitSheets(ctx context.Context, store *sheets.Store, seed bool) ([]string, error) {
	var initialized []string
	for _, layout := range models.Layouts {
		wrote, err := store.EnsureSheet(ctx, layout.Title, layout.Headers)
		if err != nil {
			return initialized, fmt.Errorf("InitSheets(): %s: %w", layout.Title, err)
		}
		if !wrote {
			continue
		}
		initialized = append(initialized, layout.Title)
		log.Printf("InitSheets(): wrote headers to %s", layout.Title)

		if seed && layout.Title == "Master_Q" {
			for _, q := range SampleQuestions {
				if _, err := store.AppendRow(ctx, models.MasterQuestionRange, q.Row()); err != nil {
					return initialized, fmt.Errorf("InitSheets(): seed questions: %w", err)
				}
			}
		}
	}
	return initialized, nil
}
