package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"caseflow/app"
	"caseflow/internal"
	"caseflow/internal/batch"
)

// Version reported by the health and status endpoints.
const Version = "1.0.0"

// Server exposes the case decision flow over HTTP.
type Server struct {
	engine  *gin.Engine
	service *app.CaseService
	batch   *batch.Manager
	logger  *internal.Logger
	started time.Time
}

// NewServer builds the router. ginMode is one of gin's mode strings; empty
// keeps the current mode.
func NewServer(service *app.CaseService, batchMgr *batch.Manager, logger *internal.Logger, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		engine:  gin.New(),
		service: service,
		batch:   batchMgr,
		logger:  logger,
		started: time.Now(),
	}
	s.engine.Use(gin.Recovery(), requestLogger(logger))
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/health", s.handleHealth)
	r.GET("/workflow-status", s.handleWorkflowStatus)
	r.GET("/demo-scenarios", s.handleDemoScenarios)

	cases := r.Group("/", resolveUser(), requirePermission("process_service_cases"))
	cases.POST("/service-case", s.handleServiceCase)
	cases.POST("/service-case/report", s.handleServiceCaseReport)
	cases.POST("/batch/service-cases", s.handleBatchSubmit)
	cases.POST("/batch/upload", s.handleBatchUpload)

	r.GET("/batch/:job_id", s.handleBatchStatus)

	r.GET("/business-rules/summary", s.handleRulesSummary)
	r.POST("/business-rules/evaluate", s.handleRulesEvaluate)

	auth := r.Group("/user", bearerAuth())
	auth.GET("/profile", s.handleUserProfile)
}

// Run starts the HTTP listener and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("[API] listening on %s", addr)
	return s.engine.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}
