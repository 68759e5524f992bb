package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/pivot/internal/metrics"
	"github.com/muhammadolammi/pivot/internal/plan"
)

// MaxBodyBytes caps request bodies. Resume text can be large.
const MaxBodyBytes = 50 << 20

type Config struct {
	EnableCORS bool
	Debug      bool
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

// Server exposes the plan pipeline over HTTP.
type Server struct {
	handler *plan.Handler
	metrics *metrics.Metrics
	engine  *gin.Engine
	started time.Time
}

// New builds the router. m may be nil.
func New(h *plan.Handler, m *metrics.Metrics, cfg Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	s := &Server{
		handler: h,
		metrics: m,
		engine:  engine,
		started: time.Now(),
	}

	engine.Use(gin.Logger())
	// outside recovery so recovered panics are counted as 5xx
	if m != nil {
		engine.Use(s.observeRequests)
	}
	engine.Use(gin.CustomRecovery(recoverPanic))
	engine.Use(limitBody)

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		engine.Use(cors.New(corsConfig))
	}

	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg Config) {
	api := s.engine.Group("/api")

	api.POST("/upload-resume", s.uploadResume)
	api.GET("/resumes", s.listResumes)
	api.POST("/analyze-stored-resume", s.analyzeStoredResume)

	api.POST("/decision-breaker", s.decisionBreaker)
	api.POST("/interview-prep", s.interviewPrep)
	api.POST("/analyze-resume", s.analyzeResume)
	api.POST("/skill-gaps", s.skillGaps)

	api.GET("/health", s.health)
	api.GET("/db-setup", s.dbSetup)

	if cfg.MetricsHandler != nil {
		s.engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) observeRequests(c *gin.Context) {
	c.Next()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	s.metrics.ObserveRequest(route, c.Writer.Status())
}

func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	c.Next()
}

// recoverPanic reports a panic as a 500 envelope carrying only the error
// message.
func recoverPanic(c *gin.Context, recovered any) {
	log.Printf("unhandled panic on %s: %v", c.Request.URL.Path, recovered)
	msg := "Internal server error"
	if err, ok := recovered.(error); ok && err.Error() != "" {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, plan.ErrorEnvelope(errors.New(msg)))
}

// bindJSON decodes the request body into req. An empty body leaves req at
// its zero value so required-field validation reports the problem.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	c.JSON(http.StatusBadRequest, plan.ErrorEnvelope(fmt.Errorf("invalid request: %w", err)))
	return false
}

func fail(c *gin.Context, label string, err error) {
	status := plan.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s error: %v", label, err)
	}
	c.JSON(status, plan.ErrorEnvelope(err))
}
