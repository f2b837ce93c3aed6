package repository

import (
	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/utils"
)

// OpportunityRepository 商机仓库
//
// 与客户仓库相同的内存权威+写穿模型。拜访记录内嵌在商机上，
// 随商机一起持久化，没有独立的生命周期。
type OpportunityRepository struct {
	store         *SlotStore
	ids           *utils.IDGenerator
	clock         utils.Clock
	opportunities []models.Opportunity
}

// NewOpportunityRepository 创建商机仓库并加载已有数据
func NewOpportunityRepository(store *SlotStore, ids *utils.IDGenerator, clock utils.Clock) *OpportunityRepository {
	opportunities, _ := LoadCollection[models.Opportunity](store, OpportunitiesSlot)
	return &OpportunityRepository{
		store:         store,
		ids:           ids,
		clock:         clock,
		opportunities: opportunities,
	}
}

// Add 创建商机，新记录插入到最前
//
// customerName 由调用方在创建时从客户记录解析，此处只负责落库。
// status 为空时默认 INITIAL。
func (r *OpportunityRepository) Add(input models.OpportunityCreateInput, customerName string) models.Opportunity {
	status := input.Status
	if status == "" {
		status = models.OpportunityStatusINITIAL
	}

	now := utils.NowMillis(r.clock)
	opp := models.Opportunity{
		ID:           r.ids.NextID("OPP"),
		CustomerId:   input.CustomerId,
		CustomerName: customerName,
		Salesperson:  input.Salesperson,
		Status:       status,
		VisitRecords: []models.VisitRecord{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.opportunities = append([]models.Opportunity{opp}, r.opportunities...)
	r.persist()

	utils.LogInfo(map[string]interface{}{
		"opportunityId": opp.ID,
		"customerId":    opp.CustomerId,
		"status":        opp.Status,
	}, "创建商机成功")
	return opp
}

// Update 按ID合并更新商机字段
//
// 只要找到记录，无论哪些字段变化（包括空补丁），updatedAt 都会刷新。
// ID不存在时静默跳过。
func (r *OpportunityRepository) Update(id string, input models.OpportunityUpdateInput) bool {
	for i := range r.opportunities {
		if r.opportunities[i].ID != id {
			continue
		}

		o := &r.opportunities[i]
		if input.Salesperson != nil {
			o.Salesperson = *input.Salesperson
		}
		if input.Status != nil {
			o.Status = *input.Status
		}
		o.UpdatedAt = utils.NowMillis(r.clock)

		r.persist()
		return true
	}
	return false
}

// Transition 商机阶段流转
//
// 经过 IsValidTransition 判定，当前策略对任意流转放行。
// 商机不存在时静默跳过。
func (r *OpportunityRepository) Transition(id string, status models.OpportunityStatus) bool {
	for i := range r.opportunities {
		if r.opportunities[i].ID != id {
			continue
		}

		o := &r.opportunities[i]
		if !models.IsValidTransition(o.Status, status) {
			utils.LogInfo(map[string]interface{}{
				"opportunityId": id,
				"from":          o.Status,
				"to":            status,
			}, "阶段流转被拒绝")
			return false
		}

		o.Status = status
		o.UpdatedAt = utils.NowMillis(r.clock)
		r.persist()
		return true
	}
	return false
}

// AddVisit 为商机追加拜访记录
//
// 新记录插入到 visitRecords 最前，同时刷新商机的 updatedAt。
// 商机不存在时静默跳过。
func (r *OpportunityRepository) AddVisit(oppId string, input models.VisitRecordInput) (models.VisitRecord, bool) {
	for i := range r.opportunities {
		if r.opportunities[i].ID != oppId {
			continue
		}

		record := models.VisitRecord{
			ID:        r.ids.NextID("VISIT"),
			Date:      input.Date,
			Content:   input.Content,
			CreatedAt: utils.NowMillis(r.clock),
		}

		o := &r.opportunities[i]
		o.VisitRecords = append([]models.VisitRecord{record}, o.VisitRecords...)
		o.UpdatedAt = utils.NowMillis(r.clock)

		r.persist()
		return record, true
	}
	return models.VisitRecord{}, false
}

// Delete 按ID删除商机，内嵌的拜访记录随之删除
func (r *OpportunityRepository) Delete(id string) bool {
	for i := range r.opportunities {
		if r.opportunities[i].ID == id {
			r.opportunities = append(r.opportunities[:i:i], r.opportunities[i+1:]...)
			r.persist()
			utils.LogInfo(map[string]interface{}{"opportunityId": id}, "删除商机成功")
			return true
		}
	}
	return false
}

// SyncCustomerName 客户改名时同步所有引用该客户的商机上的冗余名称
//
// 由客户更新操作触发，返回同步的商机数量。
func (r *OpportunityRepository) SyncCustomerName(customerId, newName string) int {
	count := 0
	for i := range r.opportunities {
		if r.opportunities[i].CustomerId == customerId {
			r.opportunities[i].CustomerName = newName
			count++
		}
	}
	if count > 0 {
		r.persist()
		utils.LogInfo(map[string]interface{}{
			"customerId": customerId,
			"newName":    newName,
			"count":      count,
		}, "同步商机冗余客户名")
	}
	return count
}

// Get 按ID查找商机
func (r *OpportunityRepository) Get(id string) (models.Opportunity, bool) {
	for _, o := range r.opportunities {
		if o.ID == id {
			return cloneOpportunity(o), true
		}
	}
	return models.Opportunity{}, false
}

// List 返回当前商机集合的快照
func (r *OpportunityRepository) List() []models.Opportunity {
	out := make([]models.Opportunity, len(r.opportunities))
	for i, o := range r.opportunities {
		out[i] = cloneOpportunity(o)
	}
	return out
}

// cloneOpportunity 复制商机及内嵌的拜访记录切片，
// 避免调用方修改返回值影响仓库内的权威数据
func cloneOpportunity(o models.Opportunity) models.Opportunity {
	visits := make([]models.VisitRecord, len(o.VisitRecords))
	copy(visits, o.VisitRecords)
	o.VisitRecords = visits
	return o
}

// Replace 整体替换集合并持久化，用于首次启动时写入种子数据
func (r *OpportunityRepository) Replace(opportunities []models.Opportunity) {
	r.opportunities = opportunities
	r.persist()
}

func (r *OpportunityRepository) persist() {
	SaveCollection(r.store, OpportunitiesSlot, r.opportunities)
}
