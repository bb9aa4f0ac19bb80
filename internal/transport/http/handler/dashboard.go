package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-console/internal/feature/analysis"
	"go-admin-console/internal/feature/product"
)

type DashboardHandler struct {
	Products *product.Module
	Analyses *analysis.Module
	Log      *zap.Logger
}

func NewDashboardHandler(products *product.Module, analyses *analysis.Module, l *zap.Logger) *DashboardHandler {
	return &DashboardHandler{Products: products, Analyses: analyses, Log: l}
}

func (h *DashboardHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.Products.FindAll(ctx)
	if err != nil {
		h.fallback(c, err)
		return
	}
	recent, err := h.Analyses.ListNewestFirst(ctx)
	if err != nil {
		h.fallback(c, err)
		return
	}

	// valuation covers the whole inventory; the tables below show a slice
	stats := product.Valuate(products)
	if len(products) > 5 {
		products = products[:5]
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":           currentUser(c),
		"Products":       products,
		"RecentAnalyses": recent,
		"InventoryStats": stats,
	})
}

// fallback renders the dashboard shell with empty data instead of a hard
// failure page.
func (h *DashboardHandler) fallback(c *gin.Context, err error) {
	h.Log.Error("dashboard load failed", zap.Error(err))
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":           currentUser(c),
		"Products":       []product.Product{},
		"RecentAnalyses": []analysis.Saved{},
		"InventoryStats": product.Valuation{},
		"Error":          "Failed to load dashboard data",
	})
}
