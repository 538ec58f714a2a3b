// Package server is the thin HTTP adapter over the moderation core. It
// owns routing, request parsing, and status codes; every analysis decision
// lives in the core.
package server

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"modguard/internal/auditlog"
	"modguard/internal/moderation"
	"modguard/internal/sentiment"
)

type Server struct {
	svc   *moderation.Service
	audit *auditlog.Logger // optional
	log   *zap.Logger
}

// New builds the HTTP adapter. audit may be nil to disable decision logging.
func New(svc *moderation.Service, audit *auditlog.Logger, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, audit: audit, log: log}
}

// Router wires the routes. Shapes and status codes match the upstream
// moderation service contract.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)
	r.POST("/analyze", s.analyze)
	r.POST("/batch-analyze", s.batchAnalyze)
	r.POST("/moderate", s.moderate)
	r.POST("/batch-moderate", s.batchModerate)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"sentiment": s.svc.SentimentSource(),
		"intent":    s.svc.IntentAvailable(),
	})
}

type analyzeRequest struct {
	Text *string `json:"text"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'text' field in request"})
		return
	}

	result, err := s.svc.AnalyzeSentiment(c.Request.Context(), *req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":       *req.Text,
		"sentiment":  result.Label,
		"confidence": round4(result.Confidence),
		"source":     result.Source,
	})
}

type batchAnalyzeRequest struct {
	Texts *[]string `json:"texts"`
}

func (s *Server) batchAnalyze(c *gin.Context) {
	var req batchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Texts == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'texts' field in request"})
		return
	}

	results := make([]gin.H, 0, len(*req.Texts))
	for _, text := range *req.Texts {
		res, err := s.svc.AnalyzeSentiment(c.Request.Context(), text)
		if err != nil {
			// Empty elements degrade to the neutral empty-text signal; a
			// single malformed element never fails the batch.
			res = sentiment.EmptyText()
		}
		results = append(results, gin.H{
			"text":       text,
			"sentiment":  res.Label,
			"confidence": round4(res.Confidence),
			"source":     res.Source,
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type moderateRequest struct {
	Text             *string `json:"text"`
	IncludeSentiment *bool   `json:"include_sentiment"`
}

func (s *Server) moderate(c *gin.Context) {
	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'text' field in request"})
		return
	}

	includeSentiment := req.IncludeSentiment == nil || *req.IncludeSentiment

	result, err := s.svc.Moderate(c.Request.Context(), *req.Text, includeSentiment)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logDecision(result)
	c.JSON(http.StatusOK, roundResult(result))
}

type batchModerateRequest struct {
	Texts            *[]string `json:"texts"`
	IncludeSentiment *bool     `json:"include_sentiment"`
}

func (s *Server) batchModerate(c *gin.Context) {
	var req batchModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Texts == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'texts' field in request"})
		return
	}

	includeSentiment := req.IncludeSentiment == nil || *req.IncludeSentiment

	results, err := s.svc.BatchModerate(c.Request.Context(), *req.Texts, includeSentiment)
	if err != nil {
		// Cancelled mid-batch: the client is gone, nothing useful to write.
		c.Status(http.StatusRequestTimeout)
		return
	}

	rounded := make([]moderation.Result, len(results))
	for i, r := range results {
		s.logDecision(r)
		rounded[i] = roundResult(r)
	}

	c.JSON(http.StatusOK, gin.H{"results": rounded})
}

func (s *Server) writeError(c *gin.Context, err error) {
	if errors.Is(err, moderation.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	s.log.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (s *Server) logDecision(r moderation.Result) {
	if s.audit == nil {
		return
	}

	var tags []string
	for category, names := range r.SuggestedTags {
		for _, name := range names {
			tags = append(tags, category+"/"+name)
		}
	}

	if err := s.audit.Log(auditlog.Entry{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Text:           r.Text,
		Score:          round4(r.RiskAssessment.Score),
		Level:          string(r.RiskAssessment.Level),
		Tags:           tags,
		RequiresReview: r.RequiresReview,
		Source:         "http",
	}); err != nil {
		s.log.Warn("audit log write failed", zap.Error(err))
	}
}

// roundResult rounds scores to 4 decimals at the boundary, leaving the
// core's full-precision values untouched.
func roundResult(r moderation.Result) moderation.Result {
	r.RiskAssessment.Score = round4(r.RiskAssessment.Score)
	r.RiskAssessment.PatternScore = round4(r.RiskAssessment.PatternScore)
	if r.RiskAssessment.IntentScore != nil {
		v := round4(*r.RiskAssessment.IntentScore)
		r.RiskAssessment.IntentScore = &v
	}
	if r.Sentiment != nil {
		s := *r.Sentiment
		s.Confidence = round4(s.Confidence)
		r.Sentiment = &s
	}
	return r
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
