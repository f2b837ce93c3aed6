package repository

import (
	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/utils"
)

// CustomerRepository 客户仓库
//
// 内存中的切片是权威数据，每次变更后整体写穿到存储槽。
// 仓库本身不做并发控制，由上层facade串行化所有变更。
type CustomerRepository struct {
	store     *SlotStore
	ids       *utils.IDGenerator
	clock     utils.Clock
	customers []models.Customer
}

// NewCustomerRepository 创建客户仓库并加载已有数据
func NewCustomerRepository(store *SlotStore, ids *utils.IDGenerator, clock utils.Clock) *CustomerRepository {
	customers, _ := LoadCollection[models.Customer](store, CustomersSlot)
	return &CustomerRepository{
		store:     store,
		ids:       ids,
		clock:     clock,
		customers: customers,
	}
}

// Add 创建客户，新记录插入到最前（最近创建的排在前面）
func (r *CustomerRepository) Add(input models.CustomerCreateInput) models.Customer {
	customer := models.Customer{
		ID:            r.ids.NextID("CUST"),
		Name:          input.Name,
		Address:       input.Address,
		Email:         input.Email,
		Wechat:        input.Wechat,
		ContactPerson: input.ContactPerson,
		Salesperson:   input.Salesperson,
		Source:        input.Source,
		CreatedAt:     utils.NowMillis(r.clock),
	}

	r.customers = append([]models.Customer{customer}, r.customers...)
	r.persist()

	utils.LogInfo(map[string]interface{}{
		"customerId": customer.ID,
		"name":       customer.Name,
	}, "创建客户成功")
	return customer
}

// Update 按ID合并更新客户字段
//
// ID不存在时静默跳过，不视为错误。返回是否找到记录，
// 以及名称是否发生变化（供上层同步商机上的冗余客户名）。
func (r *CustomerRepository) Update(id string, input models.CustomerUpdateInput) (found bool, nameChanged bool) {
	for i := range r.customers {
		if r.customers[i].ID != id {
			continue
		}

		c := &r.customers[i]
		if input.Name != nil && *input.Name != c.Name {
			c.Name = *input.Name
			nameChanged = true
		}
		if input.Address != nil {
			c.Address = *input.Address
		}
		if input.Email != nil {
			c.Email = *input.Email
		}
		if input.Wechat != nil {
			c.Wechat = *input.Wechat
		}
		if input.ContactPerson != nil {
			c.ContactPerson = *input.ContactPerson
		}
		if input.Salesperson != nil {
			c.Salesperson = *input.Salesperson
		}
		if input.Source != nil {
			c.Source = *input.Source
		}

		r.persist()
		return true, nameChanged
	}
	return false, false
}

// Delete 按ID删除客户
//
// 不级联处理引用该客户的商机，商机上的冗余客户名保持原值。
func (r *CustomerRepository) Delete(id string) bool {
	for i := range r.customers {
		if r.customers[i].ID == id {
			r.customers = append(r.customers[:i:i], r.customers[i+1:]...)
			r.persist()
			utils.LogInfo(map[string]interface{}{"customerId": id}, "删除客户成功")
			return true
		}
	}
	return false
}

// Get 按ID查找客户
func (r *CustomerRepository) Get(id string) (models.Customer, bool) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// List 返回当前客户集合的快照
func (r *CustomerRepository) List() []models.Customer {
	out := make([]models.Customer, len(r.customers))
	copy(out, r.customers)
	return out
}

// Replace 整体替换集合并持久化，用于首次启动时写入种子数据
func (r *CustomerRepository) Replace(customers []models.Customer) {
	r.customers = customers
	r.persist()
}

func (r *CustomerRepository) persist() {
	SaveCollection(r.store, CustomersSlot, r.customers)
}
