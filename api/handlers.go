package api

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"caseflow/domain/core"
	"caseflow/domain/servicecase"
	"caseflow/internal/batch"
	"caseflow/internal/errors"
	"caseflow/internal/report"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"version":        Version,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleWorkflowStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"workflow": "service-case-decision",
		"stages":   []string{"triage", "enrichment", "technical", "economic", "synthesis"},
		"parallel": []string{"technical", "economic"},
		"rules":    s.service.Rules(),
	})
}

func (s *Server) handleDemoScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": demoScenarios()})
}

func (s *Server) handleServiceCase(c *gin.Context) {
	req, ok := bindCase(c)
	if !ok {
		return
	}
	decision, err := s.service.Process(c.Request.Context(), req.toInputs())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

func (s *Server) handleServiceCaseReport(c *gin.Context) {
	req, ok := bindCase(c)
	if !ok {
		return
	}
	decision, err := s.service.Process(c.Request.Context(), req.toInputs())
	if err != nil {
		s.fail(c, err)
		return
	}
	md := report.Markdown(req.toInputs(), decision, time.Now())
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(md))
}

func (s *Server) handleBatchSubmit(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: errors.CodeInvalidInput})
		return
	}
	cases := make([]servicecase.CaseInputs, len(req.Cases))
	for i, r := range req.Cases {
		cases[i] = r.toInputs()
	}
	s.submitBatch(c, cases)
}

func (s *Server) handleBatchUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart field 'file' is required", Code: errors.CodeInvalidInput})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer f.Close()

	var cases []servicecase.CaseInputs
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		cases, err = batch.ParseCSV(f)
	case ".xlsx":
		cases, err = batch.ParseXLSX(f)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "only .csv and .xlsx uploads are supported", Code: errors.CodeInvalidInput})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.submitBatch(c, cases)
}

func (s *Server) submitBatch(c *gin.Context, cases []servicecase.CaseInputs) {
	jobID, err := s.batch.Submit(c.Request.Context(), cases)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"job_id":      jobID,
		"total_cases": len(cases),
		"status_url":  "/batch/" + jobID.String(),
	})
}

func (s *Server) handleBatchStatus(c *gin.Context) {
	id, err := core.ParseBatchJobID(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid job id", Code: errors.CodeInvalidInput})
		return
	}
	job, ok := s.batch.Job(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "batch job not found", Code: errors.CodeNotFound})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleRulesSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Rules())
}

func (s *Server) handleRulesEvaluate(c *gin.Context) {
	req, ok := bindCase(c)
	if !ok {
		return
	}
	outcome := s.service.EvaluateRules(c.Request.Context(), req.toInputs())
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) handleUserProfile(c *gin.Context) {
	user, _ := c.Get("user")
	c.JSON(http.StatusOK, user)
}

func bindCase(c *gin.Context) (CaseRequest, bool) {
	var req CaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: errors.CodeInvalidInput})
		return CaseRequest{}, false
	}
	return req, true
}

// fail maps application errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput, errors.CodeRuleInvalid:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeUnauthorized:
		status = http.StatusUnauthorized
	}
	s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func demoScenarios() []DemoScenario {
	return []DemoScenario{
		{
			Name:        "premium_repair",
			Description: "Young premium cooktop with a known error code",
			Request: CaseRequest{
				DeviceType:       "cooktop",
				Brand:            "V-Zug",
				Age:              3,
				ErrorDescription: "F7 E3 heating element not working",
			},
			Expected: string(servicecase.RecommendRepair),
		},
		{
			Name:        "aged_replacement",
			Description: "Fifteen-year-old oven with a major electronic failure",
			Request: CaseRequest{
				DeviceType:       "oven",
				Brand:            "Siemens",
				Age:              15,
				ErrorDescription: "Complete control board failure",
			},
			Expected: string(servicecase.RecommendReplace),
		},
		{
			Name:        "safety_escalation",
			Description: "Safety-critical fault routed straight to the manufacturer",
			Request: CaseRequest{
				DeviceType:       "dishwasher",
				Brand:            "V-Zug",
				Age:              5,
				ErrorDescription: "Smoke coming from the control panel",
			},
			Expected: string(servicecase.RecommendManufacturerReferral),
		},
		{
			Name:        "premium_dishwasher_repair",
			Description: "Gold-tier customer with a mid-life dishwasher seal leak",
			Request: CaseRequest{
				DeviceType:       "dishwasher",
				Brand:            "V-Zug",
				Age:              5,
				ErrorDescription: "Water leak from door seal",
			},
			Expected: string(servicecase.RecommendRepair),
		},
	}
}
