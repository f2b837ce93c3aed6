package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/repository"
	"github.com/BerniceZTT/crm_local/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type stubAnalyzer struct {
	out  string
	seen *models.Opportunity
}

func (s *stubAnalyzer) Analyze(ctx context.Context, opp models.Opportunity) string {
	s.seen = &opp
	return s.out
}

func tickingClock(startMs int64) utils.Clock {
	ms := startMs
	return func() time.Time {
		ms++
		return time.UnixMilli(ms)
	}
}

func strPtr(s string) *string {
	return &s
}

func newTestStore(t *testing.T) *repository.SlotStore {
	t.Helper()
	store, err := repository.NewSlotStore(filepath.Join(t.TempDir(), "crm_test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func newTestService(t *testing.T) *CRMService {
	t.Helper()
	return NewCRMService(newTestStore(t), &stubAnalyzer{out: "分析结果"}, tickingClock(1700000000000))
}

func TestSeedOnEmptyStorage(t *testing.T) {
	// 端到端：空存储 -> 初始化 -> 正好2个客户和2个商机
	svc := newTestService(t)

	customers := svc.Customers()
	if len(customers) != 2 {
		t.Fatalf("got %d customers, want 2", len(customers))
	}
	if customers[0].ID != "CUST-001" || customers[0].Name != "TechFlow Solutions" {
		t.Errorf("first seed customer = %+v", customers[0])
	}
	if customers[1].ID != "CUST-002" || customers[1].Name != "Global Logistics Corp" {
		t.Errorf("second seed customer = %+v", customers[1])
	}

	opportunities := svc.Opportunities()
	if len(opportunities) != 2 {
		t.Fatalf("got %d opportunities, want 2", len(opportunities))
	}
	if opportunities[0].ID != "OPP-001" || opportunities[0].Status != models.OpportunityStatusPROPOSAL {
		t.Errorf("first seed opportunity = %+v", opportunities[0])
	}
	if len(opportunities[0].VisitRecords) != 2 {
		t.Errorf("OPP-001 has %d visits, want 2", len(opportunities[0].VisitRecords))
	}
	if len(opportunities[1].VisitRecords) != 0 {
		t.Errorf("OPP-002 has %d visits, want 0", len(opportunities[1].VisitRecords))
	}
}

func TestSeedPersistsImmediately(t *testing.T) {
	store := newTestStore(t)
	NewCRMService(store, &stubAnalyzer{}, tickingClock(1700000000000))

	// 种子数据写入后必须立即可从存储读回
	customers, ok := repository.LoadCollection[models.Customer](store, repository.CustomersSlot)
	if !ok || len(customers) != 2 {
		t.Fatalf("seed customers not persisted: present=%v count=%d", ok, len(customers))
	}
}

func TestNoReseedWhenDataPresent(t *testing.T) {
	store := newTestStore(t)
	clock := tickingClock(1700000000000)

	svc := NewCRMService(store, &stubAnalyzer{}, clock)
	added := svc.AddCustomer(models.CustomerCreateInput{Name: "丙公司", ContactPerson: "王五", Salesperson: "赵六"})

	// 第二次初始化不能覆盖已有数据
	again := NewCRMService(store, &stubAnalyzer{}, clock)
	customers := again.Customers()
	if len(customers) != 3 {
		t.Fatalf("got %d customers, want 3", len(customers))
	}
	if customers[0].ID != added.ID {
		t.Error("existing data replaced by seed")
	}
}

func TestReseedAfterCorruptSlot(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(repository.CustomersSlot, []byte("{broken")); err != nil {
		t.Fatalf("save raw: %v", err)
	}

	// 损坏的槽位按无数据处理，触发重新种子化
	svc := NewCRMService(store, &stubAnalyzer{}, tickingClock(1700000000000))
	if len(svc.Customers()) != 2 {
		t.Errorf("got %d customers, want reseeded 2", len(svc.Customers()))
	}
}

func TestAddThenDeleteCustomer(t *testing.T) {
	svc := newTestService(t)

	added := svc.AddCustomer(models.CustomerCreateInput{Name: "丙公司", ContactPerson: "王五", Salesperson: "赵六"})
	customers := svc.Customers()
	if len(customers) != 3 {
		t.Fatalf("got %d customers, want 3", len(customers))
	}
	if customers[0].ID != added.ID {
		t.Error("new customer must be first")
	}

	if !svc.DeleteCustomer(added.ID) {
		t.Fatal("delete failed")
	}
	if len(svc.Customers()) != 2 {
		t.Errorf("got %d customers after delete, want 2", len(svc.Customers()))
	}
}

func TestRenamePropagatesToOpportunities(t *testing.T) {
	svc := newTestService(t)

	if !svc.UpdateCustomer("CUST-001", models.CustomerUpdateInput{Name: strPtr("TechFlow Global")}) {
		t.Fatal("update failed")
	}

	for _, o := range svc.Opportunities() {
		switch o.CustomerId {
		case "CUST-001":
			if o.CustomerName != "TechFlow Global" {
				t.Errorf("opportunity %s customerName = %q, want synced name", o.ID, o.CustomerName)
			}
		default:
			if o.CustomerName != "Global Logistics Corp" {
				t.Errorf("unrelated opportunity %s renamed to %q", o.ID, o.CustomerName)
			}
		}
	}
}

func TestDeleteCustomerKeepsOpportunityStale(t *testing.T) {
	svc := newTestService(t)

	if !svc.DeleteCustomer("CUST-001") {
		t.Fatal("delete failed")
	}

	// 商机既不被删除，冗余客户名也保持原值
	opp, ok := svc.GetOpportunity("OPP-001")
	if !ok {
		t.Fatal("opportunity removed by customer delete")
	}
	if opp.CustomerName != "TechFlow Solutions" {
		t.Errorf("customerName = %q, want stale original", opp.CustomerName)
	}
}

func TestAddOpportunityDefaultsSalesperson(t *testing.T) {
	svc := newTestService(t)

	// CUST-001 的销售负责人是 John Doe，空值时默认填充
	opp, ok := svc.AddOpportunity(models.OpportunityCreateInput{
		CustomerId:  "CUST-001",
		Salesperson: "",
		Status:      models.OpportunityStatusINITIAL,
	})
	if !ok {
		t.Fatal("add failed")
	}
	if opp.Salesperson != "John Doe" {
		t.Errorf("salesperson = %q, want %q", opp.Salesperson, "John Doe")
	}
	if opp.CustomerName != "TechFlow Solutions" {
		t.Errorf("customerName = %q", opp.CustomerName)
	}
}

func TestAddOpportunityUnknownCustomerIsNoOp(t *testing.T) {
	svc := newTestService(t)
	before := len(svc.Opportunities())

	if _, ok := svc.AddOpportunity(models.OpportunityCreateInput{CustomerId: "CUST-999999"}); ok {
		t.Error("unknown customer must make the operation a no-op")
	}
	if len(svc.Opportunities()) != before {
		t.Error("collection changed")
	}
}

func TestAnalyzeOpportunity(t *testing.T) {
	svc := newTestService(t)

	text, ok := svc.AnalyzeOpportunity(context.Background(), "OPP-001")
	if !ok {
		t.Fatal("expected opportunity found")
	}
	if text != "分析结果" {
		t.Errorf("analysis = %q", text)
	}

	if _, ok := svc.AnalyzeOpportunity(context.Background(), "OPP-999999"); ok {
		t.Error("unknown opportunity must report not found")
	}
}

func TestFetchCustomerEmails(t *testing.T) {
	svc := newTestService(t)

	messages, ok := svc.FetchCustomerEmails("CUST-001")
	if !ok {
		t.Fatal("expected customer found")
	}
	if len(messages) != 3 {
		t.Errorf("got %d messages, want 3", len(messages))
	}

	if _, ok := svc.FetchCustomerEmails("CUST-999999"); ok {
		t.Error("unknown customer must report not found")
	}
}
