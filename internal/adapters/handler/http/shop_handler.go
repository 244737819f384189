package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

type ShopHandler struct {
	svc *services.ShopService
}

func NewShopHandler(svc *services.ShopService) *ShopHandler {
	return &ShopHandler{svc: svc}
}

type purchaseRequest struct {
	UnitID string `json:"unit_id" binding:"required"`
}

func (h *ShopHandler) RegisterRoutes(r *gin.RouterGroup) {
	shop := r.Group("/shop")
	{
		shop.GET("/catalog", h.Catalog)
		shop.GET("/balance", h.Balance)
		shop.POST("/purchases", h.Purchase)
		shop.DELETE("/purchases/:id", h.Cancel)
	}
}

func (h *ShopHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog())
}

func (h *ShopHandler) Balance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"balance": h.svc.Balance()})
}

// Purchase answers 202: the diamonds arrive later.
func (h *ShopHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	id, err := h.svc.Purchase(req.UnitID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"purchase_id": id})
}

func (h *ShopHandler) Cancel(c *gin.Context) {
	if !h.svc.Cancel(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase is not pending"})
		return
	}
	c.Status(http.StatusNoContent)
}
