package service

import "github.com/BerniceZTT/crm_local/models"

// 种子数据：首次启动时让界面不至于一片空白

// SeedCustomers 演示用客户数据
func SeedCustomers(now int64) []models.Customer {
	return []models.Customer{
		{
			ID:            "CUST-001",
			Name:          "TechFlow Solutions",
			Address:       "123 Innovation Blvd, Shenzhen",
			Email:         "contact@techflow.example.com",
			Wechat:        "techflow_master",
			ContactPerson: "Alice Chen",
			Salesperson:   "John Doe",
			Source:        "官网",
			CreatedAt:     now,
		},
		{
			ID:            "CUST-002",
			Name:          "Global Logistics Corp",
			Address:       "456 Harbor Rd, Shanghai",
			Email:         "ops@globallog.example.com",
			Wechat:        "gl_ops_team",
			ContactPerson: "Bob Wang",
			Salesperson:   "Sarah Lee",
			Source:        "展会",
			CreatedAt:     now,
		},
	}
}

// SeedOpportunities 演示用商机数据
func SeedOpportunities(now int64) []models.Opportunity {
	return []models.Opportunity{
		{
			ID:           "OPP-001",
			CustomerId:   "CUST-001",
			CustomerName: "TechFlow Solutions",
			Salesperson:  "John Doe",
			Status:       models.OpportunityStatusPROPOSAL,
			CreatedAt:    now,
			UpdatedAt:    now,
			VisitRecords: []models.VisitRecord{
				{ID: "v1", Date: "2023-10-01", Content: "Initial meeting to discuss ERP needs.", CreatedAt: now},
				{ID: "v2", Date: "2023-10-15", Content: "Demo presentation. Client seemed interested in the reporting module.", CreatedAt: now},
			},
		},
		{
			ID:           "OPP-002",
			CustomerId:   "CUST-002",
			CustomerName: "Global Logistics Corp",
			Salesperson:  "Sarah Lee",
			Status:       models.OpportunityStatusINITIAL,
			CreatedAt:    now,
			UpdatedAt:    now,
			VisitRecords: []models.VisitRecord{},
		},
	}
}
