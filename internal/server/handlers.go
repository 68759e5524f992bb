package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/pivot/internal/database"
	"github.com/muhammadolammi/pivot/internal/plan"
)

type blockerRequest struct {
	Blocker string `json:"blocker"`
}

type fearRequest struct {
	Fear string `json:"fear"`
}

type resumeTextRequest struct {
	ResumeText string `json:"resumeText"`
}

type skillGapRequest struct {
	CurrentSkills []string `json:"currentSkills"`
	TargetRole    string   `json:"targetRole"`
}

type uploadRequest struct {
	ResumeText string `json:"resumeText"`
	FileName   string `json:"fileName"`
	UserID     string `json:"userId"`
	ObjectKey  string `json:"objectKey"`
	Mime       string `json:"mime"`
}

type storedResumeRequest struct {
	ResumeID string `json:"resumeId"`
}

func (s *Server) decisionBreaker(c *gin.Context) {
	var req blockerRequest
	if !bindJSON(c, &req) {
		return
	}
	s.runTask(c, plan.DecisionBreaker, plan.Input{Blocker: req.Blocker})
}

func (s *Server) interviewPrep(c *gin.Context) {
	var req fearRequest
	if !bindJSON(c, &req) {
		return
	}
	s.runTask(c, plan.InterviewPrep, plan.Input{Fear: req.Fear})
}

func (s *Server) analyzeResume(c *gin.Context) {
	var req resumeTextRequest
	if !bindJSON(c, &req) {
		return
	}
	s.runTask(c, plan.ResumeAnalysisProse, plan.Input{ResumeText: req.ResumeText})
}

// skillGaps returns the provider text unparsed.
func (s *Server) skillGaps(c *gin.Context) {
	var req skillGapRequest
	if !bindJSON(c, &req) {
		return
	}
	s.runTask(c, plan.SkillGapAnalysis, plan.Input{CurrentSkills: req.CurrentSkills, TargetRole: req.TargetRole})
}

func (s *Server) runTask(c *gin.Context, task plan.Task, in plan.Input) {
	res, err := s.handler.Handle(c.Request.Context(), task, in)
	if err != nil {
		fail(c, string(task), err)
		return
	}
	c.JSON(http.StatusOK, res.Envelope())
}

func (s *Server) uploadResume(c *gin.Context) {
	var req uploadRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := s.handler.UploadResume(c.Request.Context(), plan.UploadInput{
		ResumeText: req.ResumeText,
		FileName:   req.FileName,
		UserID:     req.UserID,
		ObjectKey:  req.ObjectKey,
		Mime:       req.Mime,
	})
	if err != nil {
		fail(c, "resume upload", err)
		return
	}
	c.JSON(http.StatusOK, out.Envelope())
}

func (s *Server) listResumes(c *gin.Context) {
	if !s.handler.StoreConfigured() {
		c.JSON(http.StatusOK, plan.PersistenceUnavailableEnvelope())
		return
	}
	resumes, err := s.handler.ListResumes(c.Request.Context(), c.Query("userId"))
	if err != nil {
		fail(c, "list resumes", err)
		return
	}
	c.JSON(http.StatusOK, plan.ResumeListEnvelope(resumes))
}

func (s *Server) analyzeStoredResume(c *gin.Context) {
	var req storedResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	resume, err := s.handler.StoredResume(c.Request.Context(), req.ResumeID)
	if err != nil {
		fail(c, "analyze stored resume", err)
		return
	}
	c.JSON(http.StatusOK, plan.StoredResumeEnvelope(resume))
}

func (s *Server) health(c *gin.Context) {
	db := "Not configured"
	if s.handler.StoreConfigured() {
		db = "Connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "Server is running",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"database":  db,
	})
}

func (s *Server) dbSetup(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":            "Database Setup Instructions",
		"databaseConfigured": s.handler.StoreConfigured(),
		"requiredTables":     database.Tables,
		"instructions":       "Create these tables in Postgres, or start the server with DB_MIGRATE=true, to enable full database functionality",
	})
}
