package service

import (
	"testing"
	"time"
)

func TestFetchOutlookEmailsEmptyAddress(t *testing.T) {
	if got := FetchOutlookEmails("", nil); len(got) != 0 {
		t.Errorf("empty address: got %d messages, want 0", len(got))
	}
}

func TestFetchOutlookEmailsInvalidAddress(t *testing.T) {
	// 不含@的地址视为无效
	if got := FetchOutlookEmails("not-an-address", nil); len(got) != 0 {
		t.Errorf("invalid address: got %d messages, want 0", len(got))
	}
}

func TestFetchOutlookEmailsDemoSequence(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	clock := func() time.Time { return now }

	messages := FetchOutlookEmails("contact@techflow.example.com", clock)
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}

	for _, m := range messages {
		if m.Sender != "contact@techflow.example.com" {
			t.Errorf("sender = %q", m.Sender)
		}
	}
	if messages[0].ID != "msg_1" || !messages[0].IsRead {
		t.Errorf("first message = %+v", messages[0])
	}
	if messages[2].IsRead {
		t.Error("third message must be unread")
	}
	if messages[0].ReceivedDateTime != now.Format(time.RFC3339) {
		t.Errorf("receivedDateTime = %q", messages[0].ReceivedDateTime)
	}
	if messages[1].ReceivedDateTime != now.Add(-48*time.Hour).Format(time.RFC3339) {
		t.Errorf("second receivedDateTime = %q", messages[1].ReceivedDateTime)
	}
}
