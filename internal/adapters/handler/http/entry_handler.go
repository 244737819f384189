package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
	"github.com/comitanigiacomo/capsule-journal/internal/core/workers"
	"github.com/comitanigiacomo/capsule-journal/internal/logger"
)

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

// entryRequest is shared by create and update. A missing date means now on
// create and "keep the current one" on update.
type entryRequest struct {
	Date    *time.Time `json:"date"`
	Mood    string     `json:"mood"`
	Content string     `json:"content"`
	Color   string     `json:"color"`
}

func (r entryRequest) date() time.Time {
	if r.Date == nil {
		return time.Time{}
	}
	return *r.Date
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
		entries.GET("/:id", h.Get)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), services.CreateEntryInput{
		Date:    req.date(),
		Mood:    req.Mood,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler) Update(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), services.UpdateEntryInput{
		ID:      c.Param("id"),
		Date:    req.date(),
		Mood:    req.Mood,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Get(c *gin.Context) {
	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns every entry, or only those of ?day=YYYY-MM-DD.
func (h *EntryHandler) List(c *gin.Context) {
	var (
		list []*domain.Entry
		err  error
	)

	if dayStr := c.Query("day"); dayStr != "" {
		day, parseErr := domain.ParseDay(dayStr)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day format, expected YYYY-MM-DD"})
			return
		}
		list, err = h.svc.FilterByDay(c.Request.Context(), day.Start(h.svc.Location()))
	} else {
		list, err = h.svc.List(c.Request.Context())
	}

	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})

	case errors.Is(err, domain.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": "entry already exists"})

	case errors.Is(err, domain.ErrArchiveNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "archived snapshot not found"})

	case errors.Is(err, domain.ErrUnknownUnit):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown purchasable unit"})

	case errors.Is(err, domain.ErrInvalidName):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrDecode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup", "details": err.Error()})

	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrArchiveDisabled), errors.Is(err, workers.ErrQueueFull):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		logger.Error("[ERROR] Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
