package handler

import (
	"net/http"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/gin-gonic/gin"
)

type OpportunityHandler struct {
	crm app.CRM
}

func NewOpportunityHandler(crm app.CRM) *OpportunityHandler {
	return &OpportunityHandler{crm: crm}
}

func (h *OpportunityHandler) List(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, h.crm.GetOpportunities(c.Request.Context(), q))
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	var in domain.Opportunity
	if !bindJSON(c, &in) {
		return
	}
	respond(c, http.StatusCreated, h.crm.CreateOpportunity(c.Request.Context(), in))
}

func (h *OpportunityHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.crm.GetOpportunity(c.Request.Context(), c.Param("id")))
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	var patch domain.OpportunityPatch
	if !bindJSON(c, &patch) {
		return
	}
	respond(c, http.StatusOK, h.crm.UpdateOpportunity(c.Request.Context(), c.Param("id"), patch))
}

func (h *OpportunityHandler) ChangeStage(c *gin.Context) {
	var req app.StageChange
	if !bindJSON(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.crm.MoveOpportunityStage(c.Request.Context(), c.Param("id"), req))
}
