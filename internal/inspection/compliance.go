package inspection

import (
	"context"
	"fmt"
	"log"
	"strings"

	"VroDaptar_InspectionBackend/internal/events"
	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
)

// ComplianceUpdate resolves one compliance row, located by (LogID, Remark).
type ComplianceUpdate struct {
	LogID        string `json:"log_id" form:"log_id" example:"ab12cd34"`
	Remark       string `json:"remark" form:"remark" example:"नोंदवही अपूर्ण"`
	SeniorRemark string `json:"senior_remark" form:"senior_remark"`
	Explanation  string `json:"explanation" form:"explanation"`
	Status       string `json:"status" form:"status" example:"Completed"`
}

type Stats struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	PendingCompliance int `json:"pending_compliance"`
}

func (s *Service) ListCompliance(ctx context.Context) ([]sheets.Record, error) {
	records, err := s.store.ReadRange(ctx, models.ComplianceRange)
	if err != nil {
		s.storeError("list_compliance", err)
		return nil, fmt.Errorf("Service.ListCompliance(): %w", err)
	}
	return records, nil
}

// ResolveCompliance overwrites the senior remark, explanation and status of
// the first row matching (LogID, Remark). It returns sheets.ErrRowNotFound
// (wrapped) when no row matches.
func (s *Service) ResolveCompliance(ctx context.Context, upd ComplianceUpdate) error {
	if isBlank(upd.LogID) || isBlank(upd.Remark) {
		return ErrInvalidResolution
	}

	rec := models.ComplianceRecord{
		InspectionID: upd.LogID,
		Remark:       upd.Remark,
		SeniorRemark: upd.SeniorRemark,
		Explanation:  upd.Explanation,
		Status:       upd.Status,
	}
	row, err := s.store.UpdateMatchingRow(ctx, models.ComplianceRange,
		[]string{rec.InspectionID, rec.Remark}, models.ComplianceResolutionCol, rec.Resolution())
	if err != nil {
		s.storeError("resolve_compliance", err)
		return fmt.Errorf("Service.ResolveCompliance(): %w", err)
	}

	log.Printf("Service.ResolveCompliance(): updated compliance row %d for %s", row, upd.LogID)
	s.events.Publish(events.Event{Type: events.TypeResolved, InspectionID: upd.LogID, Detail: upd.Status})
	return nil
}

// Stats counts inspections whose status moved past Pending and compliance
// rows still Pending. Status cells are read by position, not header text.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	inspections, err := s.store.ReadValues(ctx, models.InspectionsRange)
	if err != nil {
		s.storeError("stats", err)
		return nil, fmt.Errorf("Service.Stats(): %w", err)
	}
	compliance, err := s.store.ReadValues(ctx, models.ComplianceRange)
	if err != nil {
		s.storeError("stats", err)
		return nil, fmt.Errorf("Service.Stats(): %w", err)
	}

	stats := &Stats{}
	for _, row := range dataRows(inspections) {
		stats.Total++
		if cell(row, models.InspectionStatusCol) != models.StatusPending {
			stats.Completed++
		}
	}
	for _, row := range dataRows(compliance) {
		if cell(row, models.ComplianceStatusCol) == models.StatusPending {
			stats.PendingCompliance++
		}
	}
	return stats, nil
}

func dataRows(values [][]string) [][]string {
	if len(values) < 2 {
		return nil
	}
	return values[1:]
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
