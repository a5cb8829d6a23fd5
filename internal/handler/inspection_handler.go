/**
* Name:        inspection_handler.go
* Description: Gin 프레임워크의 HTTP 핸들러
* Workflow:    점검 목록/제출, 질문 목록, 준수(compliance) 조회/처리, 통계, XLSX 내보내기, 진행 단계 조회
 */
package handler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"VroDaptar_InspectionBackend/internal/events"
	"VroDaptar_InspectionBackend/internal/inspection"
	"VroDaptar_InspectionBackend/internal/middleware"
	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
	"VroDaptar_InspectionBackend/internal/storage"
)

// 사용자 노출 메시지
const (
	msgSubmitted        = "तपासणी यशस्वीरित्या जतन केली आहे!"
	msgSubmitFailed     = "त्रुटी: तपासणी जतन करण्यात अयशस्वी."
	msgResolved         = "अनुपालन यशस्वीरित्या अपडेट केले आहे!"
	msgResolveFailed    = "त्रुटी: अपडेट अयशस्वी."
	msgListFailed       = "Failed to fetch inspections"
	msgInvalidForm      = "Invalid form data"
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultSubmitWindow = 2 * time.Minute
)

type Options struct {
	MaxUploadBytes int64
	SubmitTimeout  time.Duration
}

type Handler struct {
	svc  *inspection.Service
	hub  *events.Hub
	opts Options
}

func New(svc *inspection.Service, hub *events.Hub, opts Options) *Handler {
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = defaultSubmitWindow
	}
	return &Handler{svc: svc, hub: hub, opts: opts}
}

// RegisterRoutes mounts the API. submitLimit guards POST /api/inspect.
func (h *Handler) RegisterRoutes(r *gin.Engine, submitLimit gin.HandlerFunc) {
	if submitLimit == nil {
		submitLimit = func(c *gin.Context) { c.Next() }
	}
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/inspections", h.ListInspections)
		api.GET("/inspections/:id/export", h.ExportInspection)
		api.GET("/inspections/:id/progress", h.SubmissionProgress)
		api.POST("/inspect", submitLimit, h.SubmitInspection)
		api.GET("/questions", h.ListQuestions)
		api.GET("/compliance", h.ListCompliance)
		api.POST("/compliance", h.ResolveCompliance)
		api.GET("/reports", h.Reports)
	}

	r.GET("/ws/inspections", h.InspectionFeed)
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Failed to fetch inspections"`
}

type InspectionListResponse struct {
	Success     bool                `json:"success" example:"true"`
	Inspections []map[string]string `json:"inspections"`
}

type SubmitResponse struct {
	Success      bool   `json:"success" example:"true"`
	InspectionID string `json:"inspectionId" example:"ab12cd34"`
	Message      string `json:"message" example:"तपासणी यशस्वीरित्या जतन केली आहे!"`
}

type QuestionListResponse struct {
	Success   bool              `json:"success" example:"true"`
	Questions []models.Question `json:"questions"`
}

type ComplianceListResponse struct {
	Success    bool                `json:"success" example:"true"`
	Compliance []map[string]string `json:"compliance"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

type StatsResponse struct {
	Success bool             `json:"success" example:"true"`
	Stats   inspection.Stats `json:"stats"`
}

type ProgressResponse struct {
	Success  bool                      `json:"success" example:"true"`
	Progress models.SubmissionProgress `json:"progress"`
}

// Health godoc
// @Summary      헬스 체크
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListInspections godoc
// @Summary      점검 목록 조회
// @Description  Inspections 시트의 모든 행을 헤더 기준 레코드로 반환합니다. 페이지네이션 없음.
// @Tags         Inspection
// @Produce      json
// @Success      200 {object} handler.InspectionListResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/inspections [get]
func (h *Handler) ListInspections(c *gin.Context) {
	records, err := h.svc.ListInspections(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] ListInspections (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msgListFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inspections": records})
}

// SubmitInspection godoc
// @Summary      점검 제출
// @Description  multipart 폼으로 점검을 제출합니다. 파일 필드는 file_<질문ID>, 답변은 q_<질문ID>, 비고는 remark_<질문ID>.
// @Description  0바이트 파일은 무시되며, 개별 업로드 실패는 제출을 중단하지 않습니다.
// @Tags         Inspection
// @Accept       multipart/form-data
// @Produce      json
// @Param        saja_name          formData string false "सजा"
// @Param        vro_name           formData string false "अधिकारी नाव"
// @Param        registration_date  formData string false "नोंदणी तारीख"
// @Success      200 {object} handler.SubmitResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 multipart 본문"
// @Failure      429 {object} handler.ErrorResponse "요청 과다"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/inspect [post]
func (h *Handler) SubmitInspection(c *gin.Context) {
	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}
	mf, err := c.MultipartForm()
	if err != nil {
		log.Printf("[WARN] SubmitInspection (%s): invalid multipart body: %v", requestID(c), err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msgInvalidForm})
		return
	}
	defer mf.RemoveAll()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.SubmitTimeout)
	defer cancel()

	res, err := h.svc.Submit(ctx, inspection.FormFromMultipart(mf))
	if err != nil {
		log.Printf("[ERROR] SubmitInspection (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msgSubmitFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inspectionId": res.InspectionID, "message": msgSubmitted})
}

// ListQuestions godoc
// @Summary      질문 목록 조회
// @Description  Master_Q 시트의 질문을 반환합니다. 시트가 비었거나 읽기에 실패하면 기본 질문 2개를 반환합니다.
// @Tags         Inspection
// @Produce      json
// @Success      200 {object} handler.QuestionListResponse
// @Router       /api/questions [get]
func (h *Handler) ListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "questions": h.svc.Questions(c.Request.Context())})
}

// ListCompliance godoc
// @Summary      준수(compliance) 목록 조회
// @Tags         Compliance
// @Produce      json
// @Success      200 {object} handler.ComplianceListResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/compliance [get]
func (h *Handler) ListCompliance(c *gin.Context) {
	records, err := h.svc.ListCompliance(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] ListCompliance (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch compliance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "compliance": records})
}

// ResolveCompliance godoc
// @Summary      준수 항목 처리
// @Description  (log_id, remark)가 일치하는 첫 번째 행의 वरिष्ठ मत, स्पष्टीकरण, स्थिती 열을 갱신합니다.
// @Tags         Compliance
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body inspection.ComplianceUpdate true "처리 내용"
// @Success      200 {object} handler.MessageResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse "일치하는 행 없음"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/compliance [post]
func (h *Handler) ResolveCompliance(c *gin.Context) {
	var upd inspection.ComplianceUpdate
	if err := c.ShouldBind(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	err := h.svc.ResolveCompliance(c.Request.Context(), upd)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msgResolved})
	case errors.Is(err, inspection.ErrInvalidResolution):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, sheets.ErrRowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": msgResolveFailed})
	default:
		log.Printf("[ERROR] ResolveCompliance (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msgResolveFailed})
	}
}

// Reports godoc
// @Summary      통계 조회
// @Description  전체 점검 수, Pending이 아닌 점검 수, Pending 상태 준수 항목 수
// @Tags         Reports
// @Produce      json
// @Success      200 {object} handler.StatsResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/reports [get]
func (h *Handler) Reports(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] Reports (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ExportInspection godoc
// @Summary      점검 보고서 XLSX 다운로드
// @Tags         Reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "점검 ID"
// @Success      200 {file} file "Report_<id>.xlsx"
// @Failure      404 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/inspections/{id}/export [get]
func (h *Handler) ExportInspection(c *gin.Context) {
	id := c.Param("id")

	var buf bytes.Buffer
	if err := h.svc.ExportInspection(c.Request.Context(), id, &buf); err != nil {
		if errors.Is(err, inspection.ErrInspectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Inspection not found"})
			return
		}
		log.Printf("[ERROR] ExportInspection (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="Report_`+id+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// SubmissionProgress godoc
// @Summary      제출 진행 단계 조회
// @Description  제출이 마지막으로 도달한 단계. completed 이전에 멈춘 제출은 일부 행/파일만 기록되었을 수 있습니다.
// @Tags         Inspection
// @Produce      json
// @Param        id path string true "점검 ID"
// @Success      200 {object} handler.ProgressResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/inspections/{id}/progress [get]
func (h *Handler) SubmissionProgress(c *gin.Context) {
	p, err := h.svc.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrProgressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No progress recorded"})
			return
		}
		log.Printf("[ERROR] SubmissionProgress (%s): %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": p})
}

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}
