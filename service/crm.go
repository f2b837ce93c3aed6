package service

import (
	"context"
	"sync"

	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/repository"
	"github.com/BerniceZTT/crm_local/utils"
)

// CRMService 应用门面
//
// 表现层只依赖这一个入口。持有两个仓库和外部协作方，
// 负责首次启动的种子数据写入，并在客户改名时协调两个集合的一致性。
// 所有变更在互斥锁内串行执行，保证单写者语义。
type CRMService struct {
	mu            sync.Mutex
	customers     *repository.CustomerRepository
	opportunities *repository.OpportunityRepository
	analyzer      OpportunityAnalyzer
	store         *repository.SlotStore
	clock         utils.Clock
}

// NewCRMService 创建应用门面并完成加载或种子初始化
func NewCRMService(store *repository.SlotStore, analyzer OpportunityAnalyzer, clock utils.Clock) *CRMService {
	ids := utils.NewIDGenerator(clock)
	s := &CRMService{
		customers:     repository.NewCustomerRepository(store, ids, clock),
		opportunities: repository.NewOpportunityRepository(store, ids, clock),
		analyzer:      analyzer,
		store:         store,
		clock:         clock,
	}
	s.seedIfEmpty()
	return s
}

// seedIfEmpty 任一集合为空时写入演示数据并立即持久化
func (s *CRMService) seedIfEmpty() {
	now := utils.NowMillis(s.clock)

	if len(s.customers.List()) == 0 {
		s.customers.Replace(SeedCustomers(now))
		utils.LogInfo(map[string]interface{}{"count": 2}, "客户集合为空，已写入种子数据")
	}
	if len(s.opportunities.List()) == 0 {
		s.opportunities.Replace(SeedOpportunities(now))
		utils.LogInfo(map[string]interface{}{"count": 2}, "商机集合为空，已写入种子数据")
	}
}

// Customers 客户集合快照
func (s *CRMService) Customers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.List()
}

// Opportunities 商机集合快照
func (s *CRMService) Opportunities() []models.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opportunities.List()
}

// GetCustomer 按ID查找客户
func (s *CRMService) GetCustomer(id string) (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.Get(id)
}

// GetOpportunity 按ID查找商机
func (s *CRMService) GetOpportunity(id string) (models.Opportunity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opportunities.Get(id)
}

// AddCustomer 创建客户
func (s *CRMService) AddCustomer(input models.CustomerCreateInput) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.Add(input)
}

// UpdateCustomer 更新客户
//
// 名称发生变化时，同步所有引用该客户的商机上的冗余客户名。
// 两个集合的写入在同一把锁内顺序完成，对调用方表现为原子操作。
func (s *CRMService) UpdateCustomer(id string, input models.CustomerUpdateInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, nameChanged := s.customers.Update(id, input)
	if found && nameChanged && input.Name != nil {
		s.opportunities.SyncCustomerName(id, *input.Name)
	}
	return found
}

// DeleteCustomer 删除客户，不级联删除商机
func (s *CRMService) DeleteCustomer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.Delete(id)
}

// AddOpportunity 创建商机
//
// customerId 必须指向已存在的客户，否则整个操作静默跳过。
// salesperson 为空时默认取客户的销售负责人。
func (s *CRMService) AddOpportunity(input models.OpportunityCreateInput) (models.Opportunity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers.Get(input.CustomerId)
	if !ok {
		utils.LogInfo(map[string]interface{}{
			"customerId": input.CustomerId,
		}, "客户不存在，跳过创建商机")
		return models.Opportunity{}, false
	}

	if input.Salesperson == "" {
		input.Salesperson = customer.Salesperson
	}
	return s.opportunities.Add(input, customer.Name), true
}

// UpdateOpportunity 更新商机
func (s *CRMService) UpdateOpportunity(id string, input models.OpportunityUpdateInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opportunities.Update(id, input)
}

// DeleteOpportunity 删除商机
func (s *CRMService) DeleteOpportunity(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opportunities.Delete(id)
}

// AddVisitRecord 为商机追加拜访记录
func (s *CRMService) AddVisitRecord(oppId string, input models.VisitRecordInput) (models.VisitRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opportunities.AddVisit(oppId, input)
}

// TransitionOpportunity 商机阶段流转
func (s *CRMService) TransitionOpportunity(id string, status models.OpportunityStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opportunities.Transition(id, status)
}

// AnalyzeOpportunity 请求AI分析商机
//
// 返回值永远是可展示的文本，协作方的失败已在内部转换为兜底文案。
// 商机不存在时返回 false。
func (s *CRMService) AnalyzeOpportunity(ctx context.Context, id string) (string, bool) {
	opp, ok := s.GetOpportunity(id)
	if !ok {
		return "", false
	}
	return s.analyzer.Analyze(ctx, opp), true
}

// FetchCustomerEmails 拉取客户的邮件往来记录
//
// 客户不存在时返回 false。
func (s *CRMService) FetchCustomerEmails(id string) ([]models.EmailMessage, bool) {
	customer, ok := s.GetCustomer(id)
	if !ok {
		return nil, false
	}
	return FetchOutlookEmails(customer.Email, s.clock), true
}

// StorageStatus 存储槽状态，用于状态检查接口
func (s *CRMService) StorageStatus() map[string]interface{} {
	return s.store.SlotStatus()
}
