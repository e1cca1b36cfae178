package handler

import (
	"net/http"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/http/dto"
	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	crm app.CRM
}

func NewLeadHandler(crm app.CRM) *LeadHandler {
	return &LeadHandler{crm: crm}
}

func (h *LeadHandler) List(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, h.crm.GetLeads(c.Request.Context(), q))
}

func (h *LeadHandler) Create(c *gin.Context) {
	var in domain.Lead
	if !bindJSON(c, &in) {
		return
	}
	respond(c, http.StatusCreated, h.crm.CreateLead(c.Request.Context(), in))
}

func (h *LeadHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.crm.GetLead(c.Request.Context(), c.Param("id")))
}

func (h *LeadHandler) Update(c *gin.Context) {
	var patch domain.LeadPatch
	if !bindJSON(c, &patch) {
		return
	}
	respond(c, http.StatusOK, h.crm.UpdateLead(c.Request.Context(), c.Param("id"), patch))
}

func (h *LeadHandler) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.crm.DeleteLead(c.Request.Context(), c.Param("id")))
}

func (h *LeadHandler) ChangeStatus(c *gin.Context) {
	var req app.StatusChange
	if !bindJSON(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.crm.ChangeLeadStatus(c.Request.Context(), c.Param("id"), req))
}

func (h *LeadHandler) Convert(c *gin.Context) {
	var overrides domain.ConversionOverrides
	if !bindOptionalJSON(c, &overrides) {
		return
	}
	respond(c, http.StatusCreated, h.crm.ConvertLead(c.Request.Context(), c.Param("id"), overrides))
}

func (h *LeadHandler) History(c *gin.Context) {
	respond(c, http.StatusOK, h.crm.LeadHistory(c.Request.Context(), c.Param("id")))
}

func (h *LeadHandler) Score(c *gin.Context) {
	var req dto.ScoreLeadRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.crm.ScoreLead(c.Request.Context(), req.ToInput()))
}
