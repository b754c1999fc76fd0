package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"gobayes/app"
	"gobayes/domain/core"
	"gobayes/domain/regress"
	"gobayes/internal"
	"gobayes/internal/config"
	"gobayes/internal/errors"
	"gobayes/internal/report"
	"gobayes/ports"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Server exposes the analysis pipeline over HTTP: JSON for programmatic
// access and a rendered HTML report for browsers.
type Server struct {
	router   *gin.Engine
	analysis *app.AnalysisService
	repo     ports.RunRepository
	cfg      *config.Config
	logger   *internal.Logger

	// Reports are deterministic per (seed, prior), so identical requests
	// reuse the cached result instead of re-running the sampler.
	cacheMutex  sync.Mutex
	reportCache map[string]*regress.Report
}

// NewServer creates a web server wired to the analysis service.
// The repository may be nil when no database is configured.
func NewServer(analysis *app.AnalysisService, repo ports.RunRepository, cfg *config.Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:      gin.Default(),
		analysis:    analysis,
		repo:        repo,
		cfg:         cfg,
		logger:      logger,
		reportCache: make(map[string]*regress.Report),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/report", s.handleReportHTML)

	s.router.GET("/api/report", s.handleReportJSON)
	s.router.GET("/api/runs", s.handleListRuns)
	s.router.GET("/api/runs/:id", s.handleGetRun)
}

// Start begins serving on the given address, blocking until shutdown
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReportJSON(c *gin.Context) {
	result, err := s.runAnalysis(c)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleReportHTML(c *gin.Context) {
	result, err := s.runAnalysis(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	md := report.RenderMarkdown(result)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<title>Regression Comparison Report</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
%s
</body>
</html>`, body)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run persistence is not configured"})
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	runs, err := s.repo.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run persistence is not configured"})
		return
	}
	runID, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.repo.GetRun(c.Request.Context(), runID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// runAnalysis builds the request from config defaults plus query overrides
func (s *Server) runAnalysis(c *gin.Context) (*regress.Report, error) {
	req := app.AnalysisRequest{
		Seed:           s.cfg.Analysis.Seed,
		Rows:           s.cfg.Analysis.Rows,
		Chains:         s.cfg.Sampler.Chains,
		Iterations:     s.cfg.Sampler.Iterations,
		CredibleMass:   s.cfg.Analysis.CredibleMass,
		ROPEHalfWidth:  s.cfg.Analysis.ROPEHalfWidth,
		SamplerTimeout: s.cfg.Sampler.Timeout,
	}

	prior := regress.DefaultPrior()
	if family, err := regress.ParsePriorFamily(s.cfg.Sampler.PriorFamily); err == nil {
		prior.Family = family
	}
	prior.Location = s.cfg.Sampler.PriorLocation
	prior.Scale = s.cfg.Sampler.PriorScale
	prior.DF = s.cfg.Sampler.PriorDF

	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("invalid seed %q", v))
		}
		req.Seed = seed
	}
	if v := c.Query("prior"); v != "" {
		family, err := regress.ParsePriorFamily(v)
		if err != nil {
			return nil, err
		}
		prior.Family = family
	}
	req.Prior = prior

	cacheKey := fmt.Sprintf("%d/%s/%g/%g/%g", req.Seed, prior.Family, prior.Location, prior.Scale, prior.DF)
	s.cacheMutex.Lock()
	cached, ok := s.reportCache[cacheKey]
	s.cacheMutex.Unlock()
	if ok {
		return cached, nil
	}

	result, err := s.analysis.Run(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}

	s.cacheMutex.Lock()
	s.reportCache[cacheKey] = result
	s.cacheMutex.Unlock()
	return result, nil
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeInvalidPrior, errors.CodeSimulationInvalid:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeSamplerTimeout:
		status = http.StatusGatewayTimeout
	}
	s.logger.Error("request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
