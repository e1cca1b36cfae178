package handler_test

import (
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpportunityHandler", func() {
	var r *gin.Engine

	BeforeEach(func() {
		r = newRouter()
	})

	createOpportunity := func(body map[string]any) string {
		w := send(r, http.MethodPost, "/api/v1/opportunities", body)
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
		return data(w)["id"].(string)
	}

	It("creates an opportunity at prospecting with the stage default probability", func() {
		w := send(r, http.MethodPost, "/api/v1/opportunities", map[string]any{"name": "Warehouse move", "amount": 12000})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["message"]).To(Equal("opportunity OPP20260001 created"))
		opp := resp["data"].(map[string]any)
		Expect(opp["stage"]).To(Equal("prospecting"))
		Expect(opp["probability"]).To(BeNumerically("==", 10))
	})

	It("rejects a link to a missing lead", func() {
		w := send(r, http.MethodPost, "/api/v1/opportunities", map[string]any{"name": "Ghost", "leadId": "lead_missing"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorKind(w)).To(Equal("validation"))
	})

	It("moves forward through the pipeline and refuses to move back", func() {
		id := createOpportunity(map[string]any{"name": "Studio move", "amount": 3000})

		w := send(r, http.MethodPost, "/api/v1/opportunities/"+id+"/stage", map[string]any{"stage": "proposal"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(data(w)["probability"]).To(BeNumerically("==", 60))

		back := send(r, http.MethodPost, "/api/v1/opportunities/"+id+"/stage", map[string]any{"stage": "qualification"})
		Expect(back.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("closes as won with an explicit probability", func() {
		id := createOpportunity(map[string]any{"name": "Office move", "amount": 9000})

		w := send(r, http.MethodPost, "/api/v1/opportunities/"+id+"/stage", map[string]any{"stage": "closed_won", "probability": 100})
		Expect(w.Code).To(Equal(http.StatusOK))
		opp := data(w)
		Expect(opp["stage"]).To(Equal("closed_won"))
		Expect(opp).To(HaveKey("actualCloseDate"))

		final := send(r, http.MethodPost, "/api/v1/opportunities/"+id+"/stage", map[string]any{"stage": "negotiation"})
		Expect(final.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("updates fields and rejects an unknown stage", func() {
		id := createOpportunity(map[string]any{"name": "Piano", "amount": 800})

		w := send(r, http.MethodPatch, "/api/v1/opportunities/"+id, map[string]any{"amount": 950.0})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(data(w)["amount"]).To(BeNumerically("==", 950))

		bad := send(r, http.MethodPatch, "/api/v1/opportunities/"+id, map[string]any{"stage": "teleported"})
		Expect(bad.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists with a stage filter", func() {
		createOpportunity(map[string]any{"name": "One", "amount": 100})
		id := createOpportunity(map[string]any{"name": "Two", "amount": 200})
		send(r, http.MethodPost, "/api/v1/opportunities/"+id+"/stage", map[string]any{"stage": "negotiation"})

		w := send(r, http.MethodGet, "/api/v1/opportunities?stage=negotiation", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		items := decode(w)["data"].([]any)
		Expect(items).To(HaveLen(1))
		Expect(items[0].(map[string]any)["name"]).To(Equal("Two"))
	})

	It("returns 404 for an unknown opportunity", func() {
		w := send(r, http.MethodGet, "/api/v1/opportunities/opp_missing", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
