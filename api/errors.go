package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hostforge/internal/errors"
)

// statusFor maps an error type to an HTTP status
func statusFor(t apperrors.Type) int {
	switch t {
	case apperrors.TypeValidation, apperrors.TypeParsing:
		return http.StatusBadRequest
	case apperrors.TypeDuplicateName, apperrors.TypeDuplicateCode:
		return http.StatusConflict
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c *gin.Context, code, message string, status int) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// fail writes err with the status of its type
func (s *Server) fail(c *gin.Context, err error) {
	t := apperrors.TypeOf(err)
	status := statusFor(t)
	message := err.Error()
	var details map[string]interface{}
	if appErr, ok := apperrors.As(err); ok {
		message = appErr.Message
		details = appErr.Context
	}
	if status >= http.StatusInternalServerError {
		s.logger.Sugar().Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	if len(details) == 0 {
		s.writeError(c, string(t), message, status)
		return
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    string(t),
			"message": message,
			"context": details,
		},
	})
}

// bind decodes the JSON body into v, writing INVALID_JSON on failure
func (s *Server) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.writeError(c, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
