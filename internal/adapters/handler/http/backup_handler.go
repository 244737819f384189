package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

const maxBackupBytes = 64 << 20

type BackupHandler struct {
	svc *services.BackupService
}

func NewBackupHandler(svc *services.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

type restoreArchiveRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *BackupHandler) RegisterRoutes(r *gin.RouterGroup) {
	backup := r.Group("/backup")
	{
		backup.GET("", h.Export)
		backup.POST("", h.Import)
		backup.POST("/archive", h.Archive)
		backup.POST("/archive/restore", h.RestoreArchive)
	}
}

func (h *BackupHandler) Export(c *gin.Context) {
	data, err := h.svc.ExportBytes(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("capsule-%s.json", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// Import replaces the whole journal with the uploaded snapshot.
func (h *BackupHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBackupBytes)
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "backup too large"})
		return
	}

	if err := h.svc.ImportBytes(c.Request.Context(), data); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BackupHandler) Archive(c *gin.Context) {
	key, err := h.svc.ArchiveSnapshot(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *BackupHandler) RestoreArchive(c *gin.Context) {
	var req restoreArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.svc.RestoreArchived(c.Request.Context(), req.Key); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
