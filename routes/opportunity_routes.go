package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_local/controllers"
	"github.com/BerniceZTT/crm_local/service"
)

// RegisterOpportunityRoutes 注册商机相关路由
func RegisterOpportunityRoutes(router *gin.Engine, svc *service.CRMService) {
	ctl := controllers.NewOpportunityController(svc)
	oppRoutes := router.Group("/api/opportunities")

	oppRoutes.GET("/", ctl.List)
	oppRoutes.POST("/", ctl.Create)
	oppRoutes.GET("/:id", ctl.Get)
	oppRoutes.PUT("/:id", ctl.Update)
	oppRoutes.DELETE("/:id", ctl.Delete)
	oppRoutes.POST("/:id/visits", ctl.AddVisit)
	oppRoutes.PUT("/:id/status", ctl.Transition)
	oppRoutes.POST("/:id/analysis", ctl.Analyze)
}
