package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/service"
	"github.com/BerniceZTT/crm_local/utils"
)

// OpportunityController 商机相关接口
type OpportunityController struct {
	svc *service.CRMService
}

// NewOpportunityController 创建商机控制器
func NewOpportunityController(svc *service.CRMService) *OpportunityController {
	return &OpportunityController{svc: svc}
}

// List 获取商机列表，支持按阶段和客户过滤
func (ctl *OpportunityController) List(c *gin.Context) {
	status := c.Query("status")
	customerId := c.Query("customerId")

	opportunities := ctl.svc.Opportunities()
	if status != "" || customerId != "" {
		filtered := make([]models.Opportunity, 0, len(opportunities))
		for _, o := range opportunities {
			if status != "" && string(o.Status) != status {
				continue
			}
			if customerId != "" && o.CustomerId != customerId {
				continue
			}
			filtered = append(filtered, o)
		}
		opportunities = filtered
	}

	c.JSON(http.StatusOK, gin.H{"opportunities": opportunities})
}

// Get 获取商机详情
func (ctl *OpportunityController) Get(c *gin.Context) {
	opp, ok := ctl.svc.GetOpportunity(c.Param("id"))
	if !ok {
		utils.HandleError(c, utils.CreateNotFoundError("商机"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

// Create 创建商机
//
// customerId 必须指向已存在的客户。核心层对无法解析的客户静默跳过，
// HTTP边界将其报告为404。
func (ctl *OpportunityController) Create(c *gin.Context) {
	var input models.OpportunityCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}
	if input.Status != "" && !input.Status.IsKnown() {
		utils.HandleError(c, utils.CreateBadRequestError("无效的商机阶段"))
		return
	}

	opp, ok := ctl.svc.AddOpportunity(input)
	if !ok {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "创建商机成功",
		"opportunity": opp,
	})
}

// Update 更新商机
func (ctl *OpportunityController) Update(c *gin.Context) {
	var input models.OpportunityUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}
	if input.Status != nil && !input.Status.IsKnown() {
		utils.HandleError(c, utils.CreateBadRequestError("无效的商机阶段"))
		return
	}

	if !ctl.svc.UpdateOpportunity(c.Param("id"), input) {
		utils.HandleError(c, utils.CreateNotFoundError("商机"))
		return
	}
	utils.SuccessResponse(c, nil, "更新商机成功")
}

// Delete 删除商机，内嵌的拜访记录随之删除
func (ctl *OpportunityController) Delete(c *gin.Context) {
	if !ctl.svc.DeleteOpportunity(c.Param("id")) {
		utils.HandleError(c, utils.CreateNotFoundError("商机"))
		return
	}
	utils.SuccessResponse(c, nil, "删除商机成功")
}

// AddVisit 追加拜访记录
func (ctl *OpportunityController) AddVisit(c *gin.Context) {
	var input models.VisitRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}

	record, ok := ctl.svc.AddVisitRecord(c.Param("id"), input)
	if !ok {
		utils.HandleError(c, utils.CreateNotFoundError("商机"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "创建拜访记录成功",
		"record":  record,
	})
}

// Transition 商机阶段流转
//
// 看板拖拽调用此接口，任意阶段之间的流转都允许。
func (ctl *OpportunityController) Transition(c *gin.Context) {
	var input models.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}
	if !input.Status.IsKnown() {
		utils.HandleError(c, utils.CreateBadRequestError("无效的商机阶段"))
		return
	}

	if !ctl.svc.TransitionOpportunity(c.Param("id"), input.Status) {
		utils.HandleError(c, utils.CreateNotFoundError("商机"))
		return
	}
	utils.SuccessResponse(c, nil, "阶段流转成功")
}

// Analyze 请求AI分析商机
//
// 返回值永远是文本：外部调用失败时是兜底文案，不是错误。
func (ctl *OpportunityController) Analyze(c *gin.Context) {
	analysis, ok := ctl.svc.AnalyzeOpportunity(c.Request.Context(), c.Param("id"))
	if !ok {
		utils.HandleError(c, utils.CreateNotFoundError("商机"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
