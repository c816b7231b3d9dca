package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/service"
)

// Handlers contains the HTTP handlers of the gateway
type Handlers struct {
	authService    *service.AuthService
	monitorService *service.MonitorService
}

// NewHandlers creates new gateway handlers
func NewHandlers(authService *service.AuthService, monitorService *service.MonitorService) *Handlers {
	return &Handlers{
		authService:    authService,
		monitorService: monitorService,
	}
}

// Root handles the root request
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Sentinel security monitoring API",
		"version": "1.0.0",
		"health":  "/health",
	})
}

// Health reports service liveness
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "sentinel",
	})
}

// Info describes the system
func (h *Handlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"system":       "Sentinel",
		"architecture": "Zero Trust",
		"version":      "1.0.0",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Login handles the primary credential submission and issues a pending
// challenge. The response never discloses whether the subject exists, and
// never carries the second-factor code.
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	challenge, err := h.authService.BeginLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mfa_required":  true,
		"challenge_ref": challenge.Ref,
		"delivery_hint": "verification code sent to your registered device",
	})
}

// VerifyMFA handles the second-factor submission. Every issuance failure
// collapses to one uniform rejection so callers cannot enumerate cases.
func (h *Handlers) VerifyMFA(c *gin.Context) {
	var req struct {
		ChallengeRef string `json:"challenge_ref" binding:"required"`
		Code         string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.authService.VerifyChallenge(c.Request.Context(), req.ChallengeRef, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrChallengeNotFound),
			errors.Is(err, core.ErrChallengeExpired),
			errors.Is(err, core.ErrCodeMismatch),
			errors.Is(err, core.ErrChallengeLocked):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify challenge"})
		}
		return
	}

	session, err := h.authService.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(time.Until(session.ExpiresAt).Seconds()),
		"user": gin.H{
			"email":     session.Subject,
			"full_name": displayName(session.Subject),
			"role":      session.Role,
		},
	})
}

// Incidents lists recorded incidents for the authenticated caller
func (h *Handlers) Incidents(c *gin.Context) {
	filter := core.IncidentFilter{
		Status:      c.Query("status"),
		ThreatLevel: c.Query("threat_level"),
		Limit:       50,
	}

	if limit := c.Query("limit"); limit != "" {
		if err := bindLimit(limit, &filter.Limit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
	}

	incidents, err := h.monitorService.Incidents(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list incidents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incidents": incidents,
		"count":     len(incidents),
	})
}

// Detect scores a submitted log record
func (h *Handlers) Detect(c *gin.Context) {
	var logData map[string]any
	if err := c.ShouldBindJSON(&logData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	subject := c.GetString(ContextSubjectKey)

	result, err := h.monitorService.Detect(c.Request.Context(), subject, logData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze log record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detection_result": result,
		"log_analyzed":     logData,
	})
}

// Stats returns the dashboard snapshot
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.monitorService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func bindLimit(raw string, out *int) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("limit must not be negative")
	}
	*out = n
	return nil
}

func displayName(subject string) string {
	if at := strings.Index(subject, "@"); at > 0 {
		return subject[:at]
	}
	return subject
}
