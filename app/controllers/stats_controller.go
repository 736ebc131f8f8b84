package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/response"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Dashboard handles GET /api/admin/stats/dashboard.
func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Dashboard(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, stats)
}

// Inventory handles GET /api/admin/stats/inventory.
func (c *StatsController) Inventory(w http.ResponseWriter, r *http.Request) {
	byCategory, err := c.stats.InventoryByCategory(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, byCategory)
}

// Sales handles GET /api/admin/stats/sales?period=day|week|month|year.
func (c *StatsController) Sales(w http.ResponseWriter, r *http.Request) {
	points, err := c.stats.Sales(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, points)
}
