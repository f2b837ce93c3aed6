package models

import "testing"

func TestStatusLabels(t *testing.T) {
	cases := map[OpportunityStatus]string{
		OpportunityStatusINITIAL:       "初步接触",
		OpportunityStatusNEED_ANALYSIS: "需求分析",
		OpportunityStatusPROPOSAL:      "方案提供",
		OpportunityStatusNEGOTIATION:   "商务谈判",
		OpportunityStatusCONTRACT:      "合同签订",
		OpportunityStatusWON:           "赢单",
		OpportunityStatusLOST:          "输单",
	}
	for status, want := range cases {
		if got := status.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", status, got, want)
		}
	}

	// 未知阶段原样返回
	if got := OpportunityStatus("SHIPPED").Label(); got != "SHIPPED" {
		t.Errorf("unknown label = %q", got)
	}
}

func TestStatusOrder(t *testing.T) {
	// 枚举顺序即看板列顺序，与既有持久化数据绑定，不可调整
	want := []OpportunityStatus{"INITIAL", "NEED_ANALYSIS", "PROPOSAL", "NEGOTIATION", "CONTRACT", "WON", "LOST"}
	if len(AllStatuses) != len(want) {
		t.Fatalf("got %d statuses, want %d", len(AllStatuses), len(want))
	}
	for i, s := range want {
		if AllStatuses[i] != s {
			t.Errorf("AllStatuses[%d] = %q, want %q", i, AllStatuses[i], s)
		}
	}
}

func TestIsKnown(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.IsKnown() {
			t.Errorf("%s must be known", s)
		}
	}
	if OpportunityStatus("SHIPPED").IsKnown() {
		t.Error("SHIPPED must be unknown")
	}
}

func TestIsValidTransitionAllowsEveryPair(t *testing.T) {
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			if !IsValidTransition(from, to) {
				t.Errorf("transition %s -> %s must be allowed", from, to)
			}
		}
	}
}
