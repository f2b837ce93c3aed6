package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_local/controllers"
	"github.com/BerniceZTT/crm_local/service"
)

// RegisterCustomerRoutes 注册客户相关路由
func RegisterCustomerRoutes(router *gin.Engine, svc *service.CRMService) {
	ctl := controllers.NewCustomerController(svc)
	customerRoutes := router.Group("/api/customers")

	customerRoutes.GET("/", ctl.List)
	customerRoutes.POST("/", ctl.Create)
	customerRoutes.GET("/:id", ctl.Get)
	customerRoutes.PUT("/:id", ctl.Update)
	customerRoutes.DELETE("/:id", ctl.Delete)
	customerRoutes.GET("/:id/emails", ctl.Emails)
}
