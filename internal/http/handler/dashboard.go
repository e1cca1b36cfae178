package handler

import (
	"net/http"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	crm app.CRM
}

func NewDashboardHandler(crm app.CRM) *DashboardHandler {
	return &DashboardHandler{crm: crm}
}

// Get returns the dashboard. ?refresh=true recomputes it and falls back to
// the last good snapshot when the store is unavailable.
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("refresh") == "true" {
		respond(c, http.StatusOK, h.crm.RefreshDashboard(ctx))
		return
	}
	respond(c, http.StatusOK, h.crm.GetDashboard(ctx))
}
