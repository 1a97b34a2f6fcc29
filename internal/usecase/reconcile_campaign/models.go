package reconcile_campaign

import "github.com/whalechillz/mas-win-sub025/internal/domain"

type Request struct {
	CampaignID int64
}

// Response is the stored state after reconciliation. Updated is false when the
// gateway has not registered the messages yet and the row was left as is.
type Response struct {
	CampaignID   int64                 `json:"campaignId"`
	GroupIDs     []string              `json:"groupIds"`
	Status       domain.CampaignStatus `json:"status"`
	SentCount    int                   `json:"sentCount"`
	SuccessCount int                   `json:"successCount"`
	FailCount    int                   `json:"failCount"`
	SendingCount int                   `json:"sendingCount"`
	Updated      bool                  `json:"updated"`
}
