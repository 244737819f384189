package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

const maxAvatarBytes = 5 << 20

type PreferenceHandler struct {
	svc *services.PreferenceService
}

func NewPreferenceHandler(svc *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

type preferencesResponse struct {
	DarkMode    bool   `json:"dark_mode"`
	DisplayName string `json:"display_name"`
	HasAvatar   bool   `json:"has_avatar"`
}

func toPreferencesResponse(p domain.Preferences) preferencesResponse {
	return preferencesResponse{
		DarkMode:    p.DarkMode,
		DisplayName: p.DisplayName,
		HasAvatar:   p.HasAvatar(),
	}
}

type darkModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type displayNameRequest struct {
	Name string `json:"name"`
}

func (h *PreferenceHandler) RegisterRoutes(r *gin.RouterGroup) {
	prefs := r.Group("/preferences")
	{
		prefs.GET("", h.Get)
		prefs.PUT("/dark-mode", h.SetDarkMode)
		prefs.PUT("/display-name", h.SetDisplayName)
		prefs.GET("/avatar", h.GetAvatar)
		prefs.PUT("/avatar", h.SetAvatar)
		prefs.DELETE("/avatar", h.DeleteAvatar)
	}
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

func (h *PreferenceHandler) SetDarkMode(c *gin.Context) {
	var req darkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	prefs, err := h.svc.SetDarkMode(c.Request.Context(), *req.Enabled)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

func (h *PreferenceHandler) SetDisplayName(c *gin.Context) {
	var req displayNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	prefs, err := h.svc.SetDisplayName(c.Request.Context(), req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

// GetAvatar serves the stored bytes with a sniffed content type.
func (h *PreferenceHandler) GetAvatar(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if !prefs.HasAvatar() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no avatar set"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(prefs.Avatar), prefs.Avatar)
}

// SetAvatar stores the raw request body as the avatar.
func (h *PreferenceHandler) SetAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	image, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar too large"})
		return
	}
	if len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty avatar, use DELETE to remove it"})
		return
	}

	prefs, err := h.svc.SetAvatar(c.Request.Context(), image)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

func (h *PreferenceHandler) DeleteAvatar(c *gin.Context) {
	if _, err := h.svc.SetAvatar(c.Request.Context(), nil); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
