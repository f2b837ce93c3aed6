package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_local/middleware"
	"github.com/BerniceZTT/crm_local/service"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, svc *service.CRMService) {
	// 注册业务路由
	RegisterCustomerRoutes(router, svc)
	RegisterOpportunityRoutes(router, svc)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 存储状态检查路由
	router.GET("/api/db-status", func(c *gin.Context) {
		c.JSON(200, svc.StorageStatus())
	})

	// prometheus指标抓取路由
	router.GET("/metrics", middleware.MetricsHandler())
}
