package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"VroDaptar_InspectionBackend/docs"
	"VroDaptar_InspectionBackend/internal/bootstrap"
	"VroDaptar_InspectionBackend/internal/config"
	"VroDaptar_InspectionBackend/internal/events"
	"VroDaptar_InspectionBackend/internal/handler"
	"VroDaptar_InspectionBackend/internal/inspection"
	"VroDaptar_InspectionBackend/internal/metrics"
	"VroDaptar_InspectionBackend/internal/middleware"
)

// @title        VRO Daptar Inspection API
// @version      1.0
// @description  ग्राम महसूल अधिकारी दप्तर तपासणी: 점검 제출, 준수 처리, 보고서
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main(): %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("main(): %v", err)
	}
	defer deps.Close()

	if pending, err := deps.Journal.Incomplete(ctx); err != nil {
		log.Printf("main(): failed to read submission journal: %v", err)
	} else if len(pending) > 0 {
		log.Printf("main(): %d submission(s) did not complete last run, see /api/inspections/<id>/progress", len(pending))
	}

	hub := events.NewHub()
	svc, err := inspection.NewService(inspection.ServiceConfig{
		Store:                deps.Store,
		Uploader:             deps.Uploader,
		Journal:              deps.Journal,
		Events:               hub,
		Metrics:              metrics.MustNewMetrics(prometheus.DefaultRegisterer),
		DriveFolderID:        cfg.DriveFolderID,
		ScratchDir:           cfg.ScratchDir,
		MaxConcurrentUploads: cfg.MaxConcurrentUploads,
		QuestionCacheTTL:     cfg.QuestionCacheTTL,
	})
	if err != nil {
		log.Fatalf("main(): %v", err)
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20

	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, "Content-Disposition", middleware.RequestIDHeader)
	router.Use(cors.New(corsConfig), middleware.RequestID())

	h := handler.New(svc, hub, handler.Options{
		MaxUploadBytes: cfg.MaxUploadMB << 20,
		SubmitTimeout:  cfg.SubmitTimeout,
	})
	h.RegisterRoutes(router, middleware.RateLimitByIP(cfg.RateLimitPerMin))

	// 로컬 모드에서는 업로드 파일을 직접 제공
	if cfg.StoreBackend == config.BackendSQLite {
		router.Static("/files", cfg.LocalUploadDir)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	docs.SwaggerInfo.Host = ""
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("main(): listening on :%s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
