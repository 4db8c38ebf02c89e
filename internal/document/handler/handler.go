package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/service"
)

type saveRequest struct {
	ID      string           `json:"id"`
	Title   *string          `json:"title"`
	Content *string          `json:"content"`
	Author  *document.Author `json:"author"`
}

// RegisterDocumentRoutes mounts the document API. Handlers in protect run
// before the save route only.
func RegisterDocumentRoutes(r *gin.Engine, svc service.Service, protect ...gin.HandlerFunc) {
	save := append(append([]gin.HandlerFunc{}, protect...), func(c *gin.Context) {
		var req saveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d := &document.Document{ID: req.ID, Title: req.Title, Content: req.Content, Author: req.Author}
		saved, err := svc.Save(c.Request.Context(), d)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	})
	r.POST("/api/documents", save...)

	r.GET("/api/documents/:id", func(c *gin.Context) {
		d, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if d == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.POST("/api/documents/search", func(c *gin.Context) {
		var req document.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		docs, err := svc.Search(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})
}

// Exporter writes a snapshot of the store and returns its object key.
type Exporter interface {
	Export(ctx context.Context) (string, error)
}

// RegisterSnapshotRoutes mounts POST /api/snapshots. A nil exporter answers 503.
func RegisterSnapshotRoutes(r *gin.Engine, exp Exporter, protect ...gin.HandlerFunc) {
	h := append(append([]gin.HandlerFunc{}, protect...), func(c *gin.Context) {
		if exp == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage not configured"})
			return
		}
		key, err := exp.Export(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"key": key})
	})
	r.POST("/api/snapshots", h...)
}

func writeError(c *gin.Context, err error) {
	var dup *document.DuplicateIDError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "id": dup.ID})
	case errors.Is(err, document.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
