package service

import (
	"strings"
	"time"

	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/utils"
)

// FetchOutlookEmails 拉取客户邮箱的往来邮件
//
// 目前是演示用的模拟实现：地址为空或不含@时返回空列表，
// 否则返回三封固定的演示邮件。接入真实的Microsoft Graph时
// 必须保持同样的返回结构和空地址规则。
func FetchOutlookEmails(customerEmail string, clock utils.Clock) []models.EmailMessage {
	if customerEmail == "" || !strings.Contains(customerEmail, "@") {
		return []models.EmailMessage{}
	}

	now := time.Now()
	if clock != nil {
		now = clock()
	}

	return []models.EmailMessage{
		{
			ID:               "msg_1",
			Subject:          "Re: Quotation for Q4 Project",
			Sender:           customerEmail,
			ReceivedDateTime: now.Format(time.RFC3339),
			BodyPreview:      "Hi John, thanks for the quotation. We are reviewing the pricing...",
			IsRead:           true,
		},
		{
			ID:               "msg_2",
			Subject:          "Meeting Confirmation",
			Sender:           customerEmail,
			ReceivedDateTime: now.Add(-48 * time.Hour).Format(time.RFC3339),
			BodyPreview:      "Confirmed. See you at our office on Tuesday at 2 PM.",
			IsRead:           true,
		},
		{
			ID:               "msg_3",
			Subject:          "Inquiry about API specs",
			Sender:           customerEmail,
			ReceivedDateTime: now.Add(-120 * time.Hour).Format(time.RFC3339),
			BodyPreview:      "Can you send over the updated API documentation?",
			IsRead:           false,
		},
	}
}
