package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/statement-analyzer/internal/extract"
	"github.com/joseph-ayodele/statement-analyzer/internal/llm"
)

// handleHealth reports liveness.
func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Backend is running"})
}

// handleAnalyzeStatement accepts a multipart upload (file, optional password)
// and responds with the transaction array or {"detail": "<message>"}.
func (s *Service) handleAnalyzeStatement(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file field is required"})
		return
	}
	password := c.PostForm("password")

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read uploaded file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	transactions, err := s.AnalyzeStatement(c.Request.Context(), data, contentType, password)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// statusForError maps pipeline failures onto HTTP statuses: bad input is 400,
// an upstream timeout is 504, and everything else surfaces as 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFileType),
		errors.Is(err, extract.ErrInvalidPassword),
		errors.Is(err, extract.ErrEmptyExtraction):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
