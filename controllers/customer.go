package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/service"
	"github.com/BerniceZTT/crm_local/utils"
)

// CustomerController 客户相关接口
type CustomerController struct {
	svc *service.CRMService
}

// NewCustomerController 创建客户控制器
func NewCustomerController(svc *service.CRMService) *CustomerController {
	return &CustomerController{svc: svc}
}

// List 获取客户列表，按创建时间倒序（最新的在前）
func (ctl *CustomerController) List(c *gin.Context) {
	customers := ctl.svc.Customers()
	utils.LogInfo(map[string]interface{}{"count": len(customers)}, "获取客户列表")
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// Get 获取客户详情
func (ctl *CustomerController) Get(c *gin.Context) {
	customer, ok := ctl.svc.GetCustomer(c.Param("id"))
	if !ok {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// Create 创建客户
func (ctl *CustomerController) Create(c *gin.Context) {
	var input models.CustomerCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}

	customer := ctl.svc.AddCustomer(input)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "创建客户成功",
		"customer": customer,
	})
}

// Update 更新客户
//
// 仓库层对未知ID静默跳过，HTTP边界将其转换为404。
func (ctl *CustomerController) Update(c *gin.Context) {
	var input models.CustomerUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}

	if !ctl.svc.UpdateCustomer(c.Param("id"), input) {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}
	utils.SuccessResponse(c, nil, "更新客户成功")
}

// Delete 删除客户
//
// 不级联删除关联商机，商机上的冗余客户名保持原值。
func (ctl *CustomerController) Delete(c *gin.Context) {
	if !ctl.svc.DeleteCustomer(c.Param("id")) {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}
	utils.SuccessResponse(c, nil, "删除客户成功")
}

// Emails 拉取客户邮箱的往来邮件
func (ctl *CustomerController) Emails(c *gin.Context) {
	messages, ok := ctl.svc.FetchCustomerEmails(c.Param("id"))
	if !ok {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
