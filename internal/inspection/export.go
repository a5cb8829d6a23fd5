package inspection

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"VroDaptar_InspectionBackend/internal/models"
)

const (
	summarySheet = "Summary"
	filesSheet   = "Files"
	remarksSheet = "Remarks"
)

// ExportInspection writes an XLSX report for one inspection: its summary
// fields, uploaded files and compliance remarks.
func (s *Service) ExportInspection(ctx context.Context, inspectionID string, w io.Writer) error {
	inspections, err := s.store.ReadValues(ctx, models.InspectionsRange)
	if err != nil {
		s.storeError("export", err)
		return fmt.Errorf("Service.ExportInspection(): %w", err)
	}
	if len(inspections) == 0 {
		return ErrInspectionNotFound
	}
	header := inspections[0]
	summary := firstRowWithID(dataRows(inspections), inspectionID)
	if summary == nil {
		return ErrInspectionNotFound
	}

	files, err := s.store.ReadValues(ctx, models.FilesRange)
	if err != nil {
		s.storeError("export", err)
		return fmt.Errorf("Service.ExportInspection(): %w", err)
	}
	compliance, err := s.store.ReadValues(ctx, models.ComplianceRange)
	if err != nil {
		s.storeError("export", err)
		return fmt.Errorf("Service.ExportInspection(): %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Service.ExportInspection(): failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	rows := [][]any{{"Field", "Value"}}
	for i, h := range header {
		rows = append(rows, []any{h, cell(summary, i)})
	}
	if err := writeSheet(f, summarySheet, rows); err != nil {
		return err
	}

	rows = [][]any{{"Question", "File", "Link"}}
	for _, row := range allRowsWithID(dataRows(files), inspectionID) {
		rows = append(rows, []any{cell(row, 1), cell(row, 2), cell(row, 3)})
	}
	if _, err := f.NewSheet(filesSheet); err != nil {
		return err
	}
	if err := writeSheet(f, filesSheet, rows); err != nil {
		return err
	}

	rows = [][]any{{"Remark", "Status", "Explanation", "Senior remark"}}
	for _, row := range allRowsWithID(dataRows(compliance), inspectionID) {
		rows = append(rows, []any{cell(row, 1), cell(row, models.ComplianceStatusCol), cell(row, 3), cell(row, 2)})
	}
	if _, err := f.NewSheet(remarksSheet); err != nil {
		return err
	}
	if err := writeSheet(f, remarksSheet, rows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("Service.ExportInspection(): %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}
	return nil
}

func firstRowWithID(rows [][]string, id string) []string {
	for _, row := range rows {
		if cell(row, 0) == id {
			return row
		}
	}
	return nil
}

func allRowsWithID(rows [][]string, id string) [][]string {
	var out [][]string
	for _, row := range rows {
		if cell(row, 0) == id {
			out = append(out, row)
		}
	}
	return out
}
