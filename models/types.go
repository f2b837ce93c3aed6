package models

// OpportunityStatus 商机阶段枚举
//
// 持久化时存储英文标识，展示时通过 Label() 取中文标签。
// 枚举顺序即看板列的展示顺序，不可调整，否则与既有数据不兼容。
type OpportunityStatus string

const (
	OpportunityStatusINITIAL       OpportunityStatus = "INITIAL"       // 初步接触
	OpportunityStatusNEED_ANALYSIS OpportunityStatus = "NEED_ANALYSIS" // 需求分析
	OpportunityStatusPROPOSAL      OpportunityStatus = "PROPOSAL"      // 方案提供
	OpportunityStatusNEGOTIATION   OpportunityStatus = "NEGOTIATION"   // 商务谈判
	OpportunityStatusCONTRACT      OpportunityStatus = "CONTRACT"      // 合同签订
	OpportunityStatusWON           OpportunityStatus = "WON"           // 赢单
	OpportunityStatusLOST          OpportunityStatus = "LOST"          // 输单
)

// AllStatuses 所有商机阶段，按看板展示顺序排列
var AllStatuses = []OpportunityStatus{
	OpportunityStatusINITIAL,
	OpportunityStatusNEED_ANALYSIS,
	OpportunityStatusPROPOSAL,
	OpportunityStatusNEGOTIATION,
	OpportunityStatusCONTRACT,
	OpportunityStatusWON,
	OpportunityStatusLOST,
}

// statusLabels 商机阶段的中文标签
var statusLabels = map[OpportunityStatus]string{
	OpportunityStatusINITIAL:       "初步接触",
	OpportunityStatusNEED_ANALYSIS: "需求分析",
	OpportunityStatusPROPOSAL:      "方案提供",
	OpportunityStatusNEGOTIATION:   "商务谈判",
	OpportunityStatusCONTRACT:      "合同签订",
	OpportunityStatusWON:           "赢单",
	OpportunityStatusLOST:          "输单",
}

// Label 返回阶段的中文标签，未知阶段原样返回
func (s OpportunityStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsKnown 判断是否为合法的阶段取值
func (s OpportunityStatus) IsKnown() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsValidTransition 判断阶段流转是否允许
//
// 看板允许销售自由修正阶段，包括回退（赢单 -> 初步接触）和原地不动，
// 因此任意两个阶段之间的流转都放行。收紧规则时只需修改此函数。
func IsValidTransition(from, to OpportunityStatus) bool {
	return true
}

// Customer 客户模型
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Wechat        string `json:"wechat"`
	ContactPerson string `json:"contactPerson"`
	Salesperson   string `json:"salesperson"`
	Source        string `json:"source"`
	CreatedAt     int64  `json:"createdAt"` // 毫秒时间戳
}

// VisitRecord 拜访记录，内嵌于商机，不可独立寻址
type VisitRecord struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

// Opportunity 商机模型
type Opportunity struct {
	ID           string            `json:"id"`
	CustomerId   string            `json:"customerId"`
	CustomerName string            `json:"customerName"` // 冗余存储客户名称，客户改名时同步
	Salesperson  string            `json:"salesperson"`
	Status       OpportunityStatus `json:"status"`
	VisitRecords []VisitRecord     `json:"visitRecords"` // 新记录在前
	CreatedAt    int64             `json:"createdAt"`
	UpdatedAt    int64             `json:"updatedAt"`
}

// EmailMessage 邮件消息
type EmailMessage struct {
	ID               string `json:"id"`
	Subject          string `json:"subject"`
	Sender           string `json:"sender"`
	ReceivedDateTime string `json:"receivedDateTime"`
	BodyPreview      string `json:"bodyPreview"`
	IsRead           bool   `json:"isRead"`
}

// CustomerCreateInput 创建客户的输入数据
type CustomerCreateInput struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Wechat        string `json:"wechat"`
	ContactPerson string `json:"contactPerson" binding:"required"`
	Salesperson   string `json:"salesperson" binding:"required"`
	Source        string `json:"source"`
}

// CustomerUpdateInput 更新客户的输入数据，nil 字段表示不修改
type CustomerUpdateInput struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	Email         *string `json:"email"`
	Wechat        *string `json:"wechat"`
	ContactPerson *string `json:"contactPerson"`
	Salesperson   *string `json:"salesperson"`
	Source        *string `json:"source"`
}

// OpportunityCreateInput 创建商机的输入数据
//
// salesperson 为空时默认取客户的销售负责人，status 为空时默认 INITIAL。
type OpportunityCreateInput struct {
	CustomerId  string            `json:"customerId" binding:"required"`
	Salesperson string            `json:"salesperson"`
	Status      OpportunityStatus `json:"status"`
}

// OpportunityUpdateInput 更新商机的输入数据，nil 字段表示不修改
type OpportunityUpdateInput struct {
	Salesperson *string            `json:"salesperson"`
	Status      *OpportunityStatus `json:"status"`
}

// VisitRecordInput 创建拜访记录的输入数据
type VisitRecordInput struct {
	Date    string `json:"date" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// TransitionInput 商机阶段流转的输入数据
type TransitionInput struct {
	Status OpportunityStatus `json:"status" binding:"required"`
}
