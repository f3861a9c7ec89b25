package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleValidate handles POST /api/validate
func (s *Server) handleValidate(c *gin.Context) {
	var req HostnameRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, ValidateResponse{
		Hostname: req.Hostname,
		Report:   s.engine.Validate(req.Hostname),
	})
}

// handleValidateBatch handles POST /api/validate/batch
func (s *Server) handleValidateBatch(c *gin.Context) {
	var req HostnamesRequest
	if !s.bind(c, &req) {
		return
	}
	resp := BatchValidateResponse{Results: s.engine.ValidateMultiple(req.Hostnames)}
	for _, r := range resp.Results {
		if r.Validation.IsValid {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}
	c.JSON(http.StatusOK, resp)
}

// handleDuplicates handles POST /api/duplicates
func (s *Server) handleDuplicates(c *gin.Context) {
	var req HostnamesRequest
	if !s.bind(c, &req) {
		return
	}
	dups := s.engine.CheckDuplicates(req.Hostnames)
	c.JSON(http.StatusOK, DuplicatesResponse{Duplicates: dups, Count: len(dups)})
}

// handleSuggestions handles POST /api/suggestions
func (s *Server) handleSuggestions(c *gin.Context) {
	var req HostnameRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, SuggestionsResponse{
		Hostname:    req.Hostname,
		Suggestions: s.engine.Suggestions(req.Hostname),
	})
}
