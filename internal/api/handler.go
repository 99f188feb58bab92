package api

import (
	"net/http"
	"strconv"

	"homerange/app"
	"homerange/domain/dataset"
	"homerange/domain/stats"
	"homerange/internal"
	"homerange/internal/errors"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 20

// AnalysisHandler serves the analysis endpoints
type AnalysisHandler struct {
	service  *app.AnalysisService
	defaults stats.Settings
	logger   *internal.Logger
}

// NewAnalysisHandler creates a handler; defaults fill any settings a request omits
func NewAnalysisHandler(service *app.AnalysisService, defaults stats.Settings) *AnalysisHandler {
	return &AnalysisHandler{
		service:  service,
		defaults: defaults,
		logger:   internal.DefaultLogger.WithComponent("API"),
	}
}

// SettingsRequest carries optional overrides of the server defaults
type SettingsRequest struct {
	Seed                  *int64   `json:"seed"`
	BootstrapReplicates   *int     `json:"bootstrap_replicates"`
	PermutationReplicates *int     `json:"permutation_replicates"`
	ConfidenceLevel       *float64 `json:"confidence_level"`
	GroupA                *string  `json:"group_a"`
	GroupB                *string  `json:"group_b"`
	Workers               *int     `json:"workers"`
}

// AnalysisRequest is the POST body for a new analysis
type AnalysisRequest struct {
	Records              []dataset.Record `json:"records" binding:"required"`
	Source               string           `json:"source"`
	Settings             SettingsRequest  `json:"settings"`
	IncludeDistributions bool             `json:"include_distributions"`
}

// apply overlays the request overrides on base
func (r SettingsRequest) apply(base stats.Settings) stats.Settings {
	if r.Seed != nil {
		base.Seed = *r.Seed
	}
	if r.BootstrapReplicates != nil {
		base.BootstrapReplicates = *r.BootstrapReplicates
	}
	if r.PermutationReplicates != nil {
		base.PermutationReplicates = *r.PermutationReplicates
	}
	if r.ConfidenceLevel != nil {
		base.ConfidenceLevel = *r.ConfidenceLevel
	}
	if r.GroupA != nil {
		base.GroupA = dataset.GroupLabel(*r.GroupA)
	}
	if r.GroupB != nil {
		base.GroupB = dataset.GroupLabel(*r.GroupB)
	}
	if r.Workers != nil {
		base.Workers = *r.Workers
	}
	return base
}

// CreateAnalysis runs an analysis over the posted records
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	ds, err := dataset.New(req.Records)
	if err != nil {
		h.respondError(c, errors.Wrap(err, "invalid records"))
		return
	}

	report, err := h.service.Analyze(c.Request.Context(), app.AnalysisRequest{
		Dataset:  ds,
		Source:   req.Source,
		Settings: req.Settings.apply(h.defaults),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !req.IncludeDistributions {
		report.StripDistributions()
	}
	c.JSON(http.StatusCreated, report)
}

// GetAnalysis returns one stored report
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	report, err := h.service.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if c.Query("include_distributions") != "true" {
		report.StripDistributions()
	}
	c.JSON(http.StatusOK, report)
}

// ListAnalyses returns stored report summaries, newest first
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summaries, err := h.service.ListReports(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": summaries, "limit": limit, "offset": offset})
}

// Health reports liveness
func (h *AnalysisHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AnalysisHandler) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	} else {
		h.logger.Debug("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func queryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.InvalidInput(key + " must be a non-negative integer")
	}
	return n, nil
}
