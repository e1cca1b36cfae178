package handler_test

import (
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LeadHandler", func() {
	var r *gin.Engine

	BeforeEach(func() {
		r = newRouter()
	})

	It("reports health", func() {
		w := send(r, http.MethodGet, "/health", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["status"]).To(Equal("ok"))
	})

	Describe("POST /leads", func() {
		It("creates a scored lead and stamps the actor header", func() {
			body := leadBody("dana")
			body["source"] = "referral"
			body["budget"] = 150000
			body["timeline"] = "immediate"
			body["decisionMaker"] = true
			body["company"] = "Acme"

			w := send(r, http.MethodPost, "/api/v1/leads", body, "X-Actor-ID", "rep-4")

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decode(w)
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["message"]).To(Equal("lead LEAD20260001 created"))
			lead := resp["data"].(map[string]any)
			Expect(lead["score"]).To(BeNumerically("==", 100))
			Expect(lead["rating"]).To(Equal("hot"))
			Expect(lead["createdBy"]).To(Equal("rep-4"))
			Expect(w.Header().Get("X-Request-ID")).NotTo(BeEmpty())
		})

		It("falls back to the configured actor", func() {
			w := send(r, http.MethodPost, "/api/v1/leads", leadBody("eli"))
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(data(w)["createdBy"]).To(Equal("api"))
		})

		It("returns 400 with field errors for an invalid lead", func() {
			w := send(r, http.MethodPost, "/api/v1/leads", map[string]any{"firstName": "x", "email": "nope"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			resp := decode(w)
			Expect(resp["success"]).To(BeFalse())
			Expect(resp).NotTo(HaveKey("data"))
			e := resp["error"].(map[string]any)
			Expect(e["kind"]).To(Equal("validation"))
			Expect(e["fields"]).NotTo(BeEmpty())
		})

		It("returns 400 on a malformed body", func() {
			w := send(r, http.MethodPost, "/api/v1/leads", `{`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(errorKind(w)).To(Equal("validation"))
		})
	})

	Describe("GET /leads/:id", func() {
		It("returns the lead with its timeline", func() {
			id := createLead(r, leadBody("fay"))

			w := send(r, http.MethodGet, "/api/v1/leads/"+id, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			detail := data(w)
			Expect(detail["lead"].(map[string]any)["id"]).To(Equal(id))
			Expect(detail["activities"]).To(HaveLen(1))
		})

		It("returns 404 for an unknown lead", func() {
			w := send(r, http.MethodGet, "/api/v1/leads/lead_missing", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(errorKind(w)).To(Equal("not_found"))
		})
	})

	Describe("GET /leads", func() {
		BeforeEach(func() {
			for _, name := range []string{"a", "b", "c", "d", "e"} {
				createLead(r, leadBody(name))
			}
			hot := leadBody("hot")
			hot["source"] = "referral"
			hot["budget"] = 200000
			hot["timeline"] = "immediate"
			createLead(r, hot)
		})

		It("paginates", func() {
			w := send(r, http.MethodGet, "/api/v1/leads?page=2&limit=4", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["data"]).To(HaveLen(2))
			p := resp["pagination"].(map[string]any)
			Expect(p["total"]).To(BeNumerically("==", 6))
			Expect(p["totalPages"]).To(BeNumerically("==", 2))
			Expect(p["hasNext"]).To(BeFalse())
			Expect(p["hasPrev"]).To(BeTrue())
		})

		It("returns an empty data array for a page far past the end", func() {
			w := send(r, http.MethodGet, "/api/v1/leads?page=9223372036854775807&limit=10", nil)
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
			resp := decode(w)
			Expect(resp["success"]).To(BeTrue())
			Expect(resp).To(HaveKeyWithValue("data", BeEmpty()))
			Expect(resp["pagination"].(map[string]any)["total"]).To(BeNumerically("==", 6))
		})

		It("treats unknown parameters as filters", func() {
			w := send(r, http.MethodGet, "/api/v1/leads?rating=hot", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			items := decode(w)["data"].([]any)
			Expect(items).To(HaveLen(1))
			Expect(items[0].(map[string]any)["firstName"]).To(Equal("hot"))
		})

		It("rejects an unknown filter key", func() {
			w := send(r, http.MethodGet, "/api/v1/leads?colour=red", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a non-numeric page", func() {
			w := send(r, http.MethodGet, "/api/v1/leads?page=two", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(errorKind(w)).To(Equal("validation"))
		})

		It("rejects an unknown sort field", func() {
			w := send(r, http.MethodGet, "/api/v1/leads?sortBy=shoeSize", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("status changes", func() {
		It("moves a lead forward and records history", func() {
			id := createLead(r, leadBody("gus"))

			w := send(r, http.MethodPost, "/api/v1/leads/"+id+"/status", map[string]any{"status": "contacted", "reason": "called back"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(data(w)["status"]).To(Equal("contacted"))

			h := send(r, http.MethodGet, "/api/v1/leads/"+id+"/history", nil)
			Expect(h.Code).To(Equal(http.StatusOK))
			Expect(decode(h)["data"]).To(HaveLen(2))
		})

		It("returns 422 when moving to converted directly", func() {
			id := createLead(r, leadBody("hal"))

			w := send(r, http.MethodPost, "/api/v1/leads/"+id+"/status", map[string]any{"status": "converted"})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(errorKind(w)).To(Equal("state"))
		})

		It("returns 409 on a stale version", func() {
			id := createLead(r, leadBody("ivy"))

			w := send(r, http.MethodPatch, "/api/v1/leads/"+id, map[string]any{"notes": "x", "version": 99})
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(errorKind(w)).To(Equal("conflict"))
		})
	})

	Describe("POST /leads/:id/convert", func() {
		It("converts with defaults and refuses a second conversion", func() {
			body := leadBody("jo")
			body["estimatedValue"] = 80000
			id := createLead(r, body)

			w := send(r, http.MethodPost, "/api/v1/leads/"+id+"/convert", nil)
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
			result := data(w)
			opp := result["opportunity"].(map[string]any)
			Expect(opp["amount"]).To(BeNumerically("==", 80000))
			Expect(opp["stage"]).To(Equal("qualification"))
			Expect(opp["probability"]).To(BeNumerically("==", 25))
			Expect(result["lead"].(map[string]any)["status"]).To(Equal("converted"))

			again := send(r, http.MethodPost, "/api/v1/leads/"+id+"/convert", nil)
			Expect(again.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("applies overrides from the body", func() {
			id := createLead(r, leadBody("kim"))

			w := send(r, http.MethodPost, "/api/v1/leads/"+id+"/convert", map[string]any{"amount": 1234.5, "name": "Office move"})
			Expect(w.Code).To(Equal(http.StatusCreated))
			opp := data(w)["opportunity"].(map[string]any)
			Expect(opp["amount"]).To(BeNumerically("==", 1234.5))
			Expect(opp["name"]).To(Equal("Office move"))
		})
	})

	It("previews a score without storing a lead", func() {
		w := send(r, http.MethodPost, "/api/v1/leads/score", map[string]any{
			"source": "social_media", "budget": 5000, "timeline": "flexible",
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(data(w)["score"]).To(BeNumerically("==", 10))

		list := send(r, http.MethodGet, "/api/v1/leads", nil)
		Expect(decode(list)["pagination"].(map[string]any)["total"]).To(BeNumerically("==", 0))
	})

	It("deletes a lead", func() {
		id := createLead(r, leadBody("lou"))

		w := send(r, http.MethodDelete, "/api/v1/leads/"+id, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["message"]).To(Equal("lead deleted"))

		Expect(send(r, http.MethodGet, "/api/v1/leads/"+id, nil).Code).To(Equal(http.StatusNotFound))
	})
})
