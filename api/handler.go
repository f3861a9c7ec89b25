package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostforge/adapters/storage"
	"hostforge/core/catalog"
	"hostforge/core/generator"
	apperrors "hostforge/internal/errors"
)

// handleGenerate handles POST /api/generate
func (s *Server) handleGenerate(c *gin.Context) {
	var req generator.Request
	if !s.bind(c, &req) {
		return
	}

	result, err := s.engine.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// handleSectors handles GET /api/sectors
func (s *Server) handleSectors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sectors": s.engine.Sectors()})
}

// handleNext handles GET /api/sectors/:sector/next?count=N
func (s *Server) handleNext(c *gin.Context) {
	sector := c.Param("sector")
	resp := NextResponse{
		Sector: catalog.NormalizeName(sector),
		Next:   s.engine.NextAvailable(sector),
	}
	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 {
			s.fail(c, apperrors.Validationf("count must be a positive integer, got %q", raw))
			return
		}
		resp.Preview = s.engine.Preview(sector, count)
	}
	c.JSON(http.StatusOK, resp)
}

// handleDecode handles GET /api/decode/:hostname
func (s *Server) handleDecode(c *gin.Context) {
	hostname := c.Param("hostname")
	d, ok := s.engine.Decode(hostname)
	if !ok {
		s.fail(c, apperrors.Validationf("not a %s identifier: %s", s.engine.Prefix(), hostname))
		return
	}
	c.JSON(http.StatusOK, DecodeResponse{
		Decoded:   d,
		Complete:  d.Complete(),
		Allocated: s.engine.IsAllocated(hostname),
	})
}

// handleEncode handles POST /api/encode
func (s *Server) handleEncode(c *gin.Context) {
	var req generator.EncodeRequest
	if !s.bind(c, &req) {
		return
	}
	hostname, err := s.engine.Encode(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, EncodeResponse{
		Hostname:  hostname,
		Allocated: s.engine.IsAllocated(hostname),
	})
}

// handleSnapshot handles GET /api/snapshot
func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Snapshot())
}

// handleListCatalogs handles GET /api/catalogs
func (s *Server) handleListCatalogs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"catalogs": s.engine.Catalogs(),
		"stats":    s.engine.Stats(),
	})
}

// handleLint handles GET /api/catalogs/lint
func (s *Server) handleLint(c *gin.Context) {
	findings := s.engine.Lint()
	if findings == nil {
		findings = []catalog.Finding{}
	}
	c.JSON(http.StatusOK, gin.H{"findings": findings})
}

// handleAddEntry handles POST /api/catalogs/:kind
func (s *Server) handleAddEntry(c *gin.Context) {
	kind, err := catalog.ParseKind(c.Param("kind"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var req EntryRequest
	if !s.bind(c, &req) {
		return
	}
	if err := s.engine.AddEntry(c.Request.Context(), kind, req.Name, req.Code); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"kind": kind,
		"name": catalog.NormalizeName(req.Name),
		"code": req.Code,
	})
}

// handleRemoveEntry handles DELETE /api/catalogs/:kind/:name
func (s *Server) handleRemoveEntry(c *gin.Context) {
	kind, err := catalog.ParseKind(c.Param("kind"))
	if err != nil {
		s.fail(c, err)
		return
	}
	name := c.Param("name")
	removed, err := s.engine.RemoveEntry(c.Request.Context(), kind, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !removed {
		s.fail(c, apperrors.NotFound(string(kind), name))
		return
	}
	c.Status(http.StatusNoContent)
}

// handleListHistory handles GET /api/history?sector=&limit=&offset=
func (s *Server) handleListHistory(c *gin.Context) {
	filter := &storage.ListFilter{Sector: catalog.NormalizeName(c.Query("sector"))}
	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		s.fail(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		s.fail(c, err)
		return
	}

	batches, err := s.engine.History(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	if batches == nil {
		batches = []*storage.Batch{}
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches, "count": len(batches)})
}

// handleGetHistory handles GET /api/history/:id
func (s *Server) handleGetHistory(c *gin.Context) {
	batch, err := s.engine.Batch(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// handleDeleteHistory handles DELETE /api/history/:id
func (s *Server) handleDeleteHistory(c *gin.Context) {
	if err := s.engine.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.Validationf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}
