package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

const monthLayout = "2006-01"

type StatsHandler struct {
	svc *services.StatsService
	loc *time.Location
	now func() time.Time
}

// NewStatsHandler parses query dates in loc, which should match the service's.
func NewStatsHandler(svc *services.StatsService, loc *time.Location) *StatsHandler {
	if loc == nil {
		loc = time.Local
	}
	return &StatsHandler{svc: svc, loc: loc, now: time.Now}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetSummary)
	r.GET("/calendar", h.GetCalendar)
}

func (h *StatsHandler) GetSummary(c *gin.Context) {
	today := h.now()
	if s := c.Query("today"); s != "" {
		day, err := domain.ParseDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today format, expected YYYY-MM-DD"})
			return
		}
		today = day.Start(h.loc)
	}

	stats, err := h.svc.Summary(c.Request.Context(), today)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetCalendar(c *gin.Context) {
	month := h.now()
	if s := c.Query("month"); s != "" {
		parsed, err := time.ParseInLocation(monthLayout, s, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month format, expected YYYY-MM"})
			return
		}
		month = parsed
	}

	cal, err := h.svc.Calendar(c.Request.Context(), month)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}
