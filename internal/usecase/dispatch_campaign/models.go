package dispatch_campaign

import (
	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

type Request struct {
	CampaignID int64
	DryRun     bool
}

// Response describes what was (or, for a dry run, would be) sent
type Response struct {
	CampaignID  int64                 `json:"campaignId"`
	DryRun      bool                  `json:"dryRun"`
	MessageType domain.MessageType    `json:"messageType"`
	Text        string                `json:"text"`
	ImageID     string                `json:"imageId,omitempty"`
	Recipients  []string              `json:"recipients"`
	Skipped     Skipped               `json:"skipped"`
	GroupID     string                `json:"groupId,omitempty"`
	Rejected    []string              `json:"rejected,omitempty"`
	Status      domain.CampaignStatus `json:"status"`
	SentCount   int                   `json:"sentCount"`
}

// Skipped counts recipients filtered out before sending
type Skipped struct {
	Invalid     int `json:"invalid"`
	OptedOut    int `json:"optedOut"`
	AlreadySent int `json:"alreadySent"`
}
