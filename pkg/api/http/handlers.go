package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aescanero/videohub/pkg/domain"
)

// APIErrorResult is the body of a 400 response
type APIErrorResult struct {
	ErrorsMessages []domain.FieldError `json:"errorsMessages"`
}

// ErrorResponse represents an unexpected error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleListVideos returns every video
func (s *Server) handleListVideos(c *gin.Context) {
	videos, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// handleGetVideo returns a single video
func (s *Server) handleGetVideo(c *gin.Context) {
	id, ok := parseVideoID(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	video, err := s.catalog.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// handleCreateVideo validates and stores a new video
func (s *Server) handleCreateVideo(c *gin.Context) {
	body, ok := s.readJSONBody(c)
	if !ok {
		return
	}

	video, err := s.catalog.Create(c.Request.Context(), body)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// handleUpdateVideo replaces the mutable fields of a video
func (s *Server) handleUpdateVideo(c *gin.Context) {
	id, ok := parseVideoID(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	// Unknown ids answer 404 regardless of the body
	if _, err := s.catalog.Get(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}

	body, ok := s.readJSONBody(c)
	if !ok {
		return
	}

	if err := s.catalog.Update(c.Request.Context(), id, body); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleDeleteVideo removes a video
func (s *Server) handleDeleteVideo(c *gin.Context) {
	id, ok := parseVideoID(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	if err := s.catalog.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleDeleteAllData empties the catalog
func (s *Server) handleDeleteAllData(c *gin.Context) {
	if err := s.catalog.Reset(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// readJSONBody rejects non-JSON content types with 415
func (s *Server) readJSONBody(c *gin.Context) ([]byte, bool) {
	if ct := c.GetHeader("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || (mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json")) {
			c.Status(http.StatusUnsupportedMediaType)
			return nil, false
		}
	}

	body, err := c.GetRawData()
	if err != nil {
		s.logger.Warn("failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, malformedBody())
		return nil, false
	}

	return body, true
}

// writeError maps catalog errors to responses
func (s *Server) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, APIErrorResult{ErrorsMessages: verr.Errors})
	case errors.Is(err, domain.ErrMalformedBody):
		c.JSON(http.StatusBadRequest, malformedBody())
	default:
		s.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INTERNAL",
				Message: "internal server error",
			},
		})
	}
}

func malformedBody() APIErrorResult {
	return APIErrorResult{
		ErrorsMessages: []domain.FieldError{{
			Message: "Invalid JSON body",
			Field:   "body",
		}},
	}
}

// parseVideoID accepts only the canonical decimal form, so "007" does not match id 7
func parseVideoID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || strconv.FormatInt(id, 10) != raw {
		return 0, false
	}
	return id, true
}
