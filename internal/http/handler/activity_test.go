package handler_test

import (
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ActivityHandler", func() {
	var (
		r      *gin.Engine
		leadID string
	)

	BeforeEach(func() {
		r = newRouter()
		leadID = createLead(r, leadBody("meg"))
	})

	It("logs a scheduled activity against a lead", func() {
		w := send(r, http.MethodPost, "/api/v1/activities", map[string]any{
			"type": "call", "subject": "Walkthrough", "leadId": leadID,
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		act := data(w)
		Expect(act["status"]).To(Equal("scheduled"))
		Expect(act["leadId"]).To(Equal(leadID))
	})

	It("completes an activity and stamps the lead's last contact", func() {
		w := send(r, http.MethodPost, "/api/v1/activities", map[string]any{
			"type": "meeting", "subject": "Site survey", "leadId": leadID,
		})
		id := data(w)["id"].(string)

		done := send(r, http.MethodPost, "/api/v1/activities/"+id+"/status", map[string]any{"status": "completed"})
		Expect(done.Code).To(Equal(http.StatusOK))
		Expect(data(done)).To(HaveKey("completedDate"))

		lead := send(r, http.MethodGet, "/api/v1/leads/"+leadID, nil)
		Expect(data(lead)["lead"].(map[string]any)).To(HaveKey("lastContactedAt"))

		reopen := send(r, http.MethodPost, "/api/v1/activities/"+id+"/status", map[string]any{"status": "scheduled"})
		Expect(reopen.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("requires a status in the body", func() {
		w := send(r, http.MethodPost, "/api/v1/activities/act_1/status", map[string]any{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects an unknown activity type", func() {
		w := send(r, http.MethodPost, "/api/v1/activities", map[string]any{"type": "carrier_pigeon", "subject": "Hi"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorKind(w)).To(Equal("validation"))
	})

	It("filters activities by lead", func() {
		send(r, http.MethodPost, "/api/v1/activities", map[string]any{"type": "note", "subject": "Has a cat", "leadId": leadID})
		send(r, http.MethodPost, "/api/v1/activities", map[string]any{"type": "note", "subject": "Unlinked"})

		w := send(r, http.MethodGet, "/api/v1/activities?leadId="+leadID+"&type=note", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		items := decode(w)["data"].([]any)
		Expect(items).To(HaveLen(1))
		Expect(items[0].(map[string]any)["subject"]).To(Equal("Has a cat"))
	})
})
