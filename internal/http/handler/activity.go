package handler

import (
	"net/http"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/http/dto"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	crm app.CRM
}

func NewActivityHandler(crm app.CRM) *ActivityHandler {
	return &ActivityHandler{crm: crm}
}

func (h *ActivityHandler) List(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, h.crm.GetActivities(c.Request.Context(), q))
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var in domain.Activity
	if !bindJSON(c, &in) {
		return
	}
	respond(c, http.StatusCreated, h.crm.LogActivity(c.Request.Context(), in))
}

func (h *ActivityHandler) UpdateStatus(c *gin.Context) {
	var req dto.ActivityStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.crm.UpdateActivityStatus(c.Request.Context(), c.Param("id"), req.Status))
}
