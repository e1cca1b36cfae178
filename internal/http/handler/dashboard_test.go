package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/http/router"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type unavailableDashboard struct{}

func (unavailableDashboard) Stats(context.Context) (*service.DashboardStats, error) {
	return nil, domain.NewPersistenceError("loading leads", errors.New("connection refused"))
}

var _ = Describe("DashboardHandler", func() {
	It("aggregates the stored records", func() {
		r := newRouter()
		body := leadBody("ned")
		body["estimatedValue"] = 5000
		id := createLead(r, body)
		createLead(r, leadBody("ora"))
		Expect(send(r, http.MethodPost, "/api/v1/leads/"+id+"/convert", nil).Code).To(Equal(http.StatusCreated))

		w := send(r, http.MethodGet, "/api/v1/dashboard", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		stats := data(w)
		leads := stats["leads"].(map[string]any)
		Expect(leads["totalLeads"]).To(BeNumerically("==", 2))
		Expect(leads["convertedLeads"]).To(BeNumerically("==", 1))
		Expect(leads["conversionRate"]).To(BeNumerically("==", 50))
		opps := stats["opportunities"].(map[string]any)
		Expect(opps["totalValue"]).To(BeNumerically("==", 5000))
	})

	Context("when the store is unavailable", func() {
		var r *gin.Engine

		BeforeEach(func() {
			gin.SetMode(gin.TestMode)
			r = router.New(app.New(app.Deps{Dashboard: unavailableDashboard{}}), router.RouterConfig{})
		})

		It("returns 503", func() {
			w := send(r, http.MethodGet, "/api/v1/dashboard", nil)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(errorKind(w)).To(Equal("persistence"))
		})

		It("answers a refresh without a cached snapshot", func() {
			w := send(r, http.MethodGet, "/api/v1/dashboard?refresh=true", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["message"]).To(ContainSubstring("dashboard unavailable"))
		})
	})
})
