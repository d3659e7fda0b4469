package document

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abduss/pdfvault/internal/logger"
)

// RegisterRoutes mounts document operations under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/upload", handler.upload)
	group.GET("/records", handler.list)
	group.GET("/records/:id", handler.get)
	group.GET("/records/:id/content", handler.download)
	group.DELETE("/records/:id", handler.remove)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are accepted"})
		case errors.Is(err, ErrTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the maximum allowed size"})
		case errors.Is(err, ErrMissingFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		default:
			logger.L().Error("upload failed",
				zap.Error(err),
				zap.String("correlation_id", logger.CorrelationID(c)),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		}
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *httpHandler) list(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.L().Error("list failed",
			zap.Error(err),
			zap.String("correlation_id", logger.CorrelationID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list files"})
		return
	}
	if records == nil {
		records = []Record{}
	}

	c.JSON(http.StatusOK, records)
}

func (h *httpHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		logger.L().Error("get failed",
			zap.Error(err),
			zap.String("correlation_id", logger.CorrelationID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch file"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *httpHandler) download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	rec, reader, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		case errors.Is(err, ErrBlobMissing):
			// Orphan record: metadata survived a crashed or raced delete.
			logger.L().Warn("record has no backing blob",
				zap.String("id", rec.ID.String()),
				zap.String("stored_name", rec.StoredName),
				zap.String("correlation_id", logger.CorrelationID(c)),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		default:
			logger.L().Error("download failed",
				zap.Error(err),
				zap.String("correlation_id", logger.CorrelationID(c)),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to download file"})
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", rec.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.OriginalName))
	c.Header("Content-Length", fmt.Sprintf("%d", rec.SizeBytes))

	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}

func (h *httpHandler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		logger.L().Error("delete failed",
			zap.Error(err),
			zap.String("correlation_id", logger.CorrelationID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
