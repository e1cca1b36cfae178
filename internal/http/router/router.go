package router

import (
	"net/http"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/http/handler"
	"github.com/alexanderramin/leadflow/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	ServiceName string
	Tracing     bool
}

// New builds an engine with the standard middleware chain and all routes.
func New(crm app.CRM, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// OTel opens the span first so recovery and request logs carry its ids.
	if cfg.Tracing {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger("/health"))
	router.Use(middleware.Actor())

	SetupRoutes(router, crm)
	return router
}

func SetupRoutes(router *gin.Engine, crm app.CRM) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		LeadRouter(v1.Group("/leads"), handler.NewLeadHandler(crm))
		OpportunityRouter(v1.Group("/opportunities"), handler.NewOpportunityHandler(crm))
		ActivityRouter(v1.Group("/activities"), handler.NewActivityHandler(crm))
		DashboardRouter(v1.Group("/dashboard"), handler.NewDashboardHandler(crm))
	}
}

func LeadRouter(rg *gin.RouterGroup, h *handler.LeadHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/score", h.Score)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/status", h.ChangeStatus)
	rg.POST("/:id/convert", h.Convert)
	rg.GET("/:id/history", h.History)
}

func OpportunityRouter(rg *gin.RouterGroup, h *handler.OpportunityHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.POST("/:id/stage", h.ChangeStage)
}

func ActivityRouter(rg *gin.RouterGroup, h *handler.ActivityHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/:id/status", h.UpdateStatus)
}

func DashboardRouter(rg *gin.RouterGroup, h *handler.DashboardHandler) {
	rg.GET("", h.Get)
}
